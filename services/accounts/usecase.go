package accounts

import (
	"context"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/camride/camride/services/accounts AccountUC

// AccountUC represents the account usecase interface
type AccountUC interface {
	// registration and verification
	RegisterStudent(ctx context.Context, req *models.RegisterStudentRequest) (*models.Student, error)
	RegisterDriver(ctx context.Context, req *models.RegisterDriverRequest) (*models.Driver, error)
	VerifyEmail(ctx context.Context, role models.Role, req *models.VerifyEmailRequest) error
	ResendOTP(ctx context.Context, role models.Role, req *models.ResendOTPRequest) error

	// authentication
	Login(ctx context.Context, role models.Role, req *models.LoginRequest) (*models.AuthResponse, error)

	// profiles
	GetStudentProfile(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetDriverProfile(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	UpdateStudentProfile(ctx context.Context, id uuid.UUID, req *models.UpdateStudentProfileRequest) (*models.Student, error)
	UpdateDriverProfile(ctx context.Context, id uuid.UUID, req *models.UpdateDriverProfileRequest) (*models.Driver, error)
	SetDriverAvailability(ctx context.Context, id uuid.UUID, available bool) error
}
