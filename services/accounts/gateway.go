package accounts

import (
	"context"

	"github.com/camride/camride/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/camride/camride/services/accounts AccountGW

// AccountGW defines the account gateways interface
type AccountGW interface {
	// NATS Gateway. Delivery is best-effort; a publish failure never
	// fails the request that triggered it.
	PublishOTPNotification(ctx context.Context, role models.Role, email, fullName, otp string) error
	PublishLoginNotification(ctx context.Context, role models.Role, auth *models.AuthResponse) error
}
