package gateway

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camride/camride/internal/pkg/constants"
	"github.com/camride/camride/internal/pkg/models"
	natspkg "github.com/camride/camride/internal/pkg/nats"
)

// AccountGW publishes account notification events to NATS
type AccountGW struct {
	client *natspkg.Client
}

// NewAccountGW creates a new account gateway instance
func NewAccountGW(client *natspkg.Client) *AccountGW {
	return &AccountGW{
		client: client,
	}
}

// PublishOTPNotification publishes an OTP email request to NATS
func (g *AccountGW) PublishOTPNotification(ctx context.Context, role models.Role, email, fullName, otp string) error {
	event := models.OTPNotificationEvent{
		Email:      email,
		FullName:   fullName,
		Role:       role,
		OTP:        otp,
		OccurredAt: time.Now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.client.Publish(constants.SubjectNotifyOTP, data)
}

// PublishLoginNotification publishes a login event to NATS
func (g *AccountGW) PublishLoginNotification(ctx context.Context, role models.Role, auth *models.AuthResponse) error {
	event := models.LoginNotificationEvent{
		UserID:     auth.UserID,
		Email:      auth.Email,
		Role:       role,
		OccurredAt: time.Now(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return g.client.Publish(constants.SubjectNotifyLogin, data)
}
