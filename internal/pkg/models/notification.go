package models

import "time"

// OTPNotificationEvent asks the notification consumer to email a
// verification code to an account.
type OTPNotificationEvent struct {
	Email      string    `json:"email"`
	FullName   string    `json:"fullname"`
	Role       Role      `json:"role"`
	OTP        string    `json:"otp"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LoginNotificationEvent records a successful login for the
// notification consumer.
type LoginNotificationEvent struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}
