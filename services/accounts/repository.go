package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/camride/camride/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/camride/camride/services/accounts AccountRepo

// AccountRepo defines the account repository interface
type AccountRepo interface {
	// Student management
	CreateStudent(ctx context.Context, student *models.Student) error
	GetStudentByID(ctx context.Context, id uuid.UUID) (*models.Student, error)
	GetStudentByEmail(ctx context.Context, email string) (*models.Student, error)
	GetStudentByMatricNo(ctx context.Context, matricNo string) (*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error

	// Driver management
	CreateDriver(ctx context.Context, driver *models.Driver) error
	GetDriverByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	GetDriverByEmail(ctx context.Context, email string) (*models.Driver, error)
	UpdateDriver(ctx context.Context, driver *models.Driver) error
	SetDriverAvailability(ctx context.Context, id uuid.UUID, available bool) error

	// OTP management
	SetOTP(ctx context.Context, role models.Role, email, code string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, role models.Role, email string) error
}
