package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/models"
)

func tableForRole(role models.Role) string {
	if role == models.RoleDriver {
		return "drivers"
	}
	return "students"
}

// SetOTP stores a fresh OTP on the account row, replacing any previous
// code so only the latest one is ever valid.
func (r *AccountRepo) SetOTP(ctx context.Context, role models.Role, email, code string, expiresAt time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET otp_code = $1, otp_expires_at = $2, updated_at = $3
		WHERE email = $4
	`, tableForRole(role))

	result, err := r.db.ExecContext(ctx, query, code, expiresAt, time.Now(), email)
	if err != nil {
		return fmt.Errorf("failed to set OTP: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}

// MarkVerified flips the verification flag and clears the stored OTP
func (r *AccountRepo) MarkVerified(ctx context.Context, role models.Role, email string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET is_verified = TRUE, otp_code = NULL, otp_expires_at = NULL, updated_at = $1
		WHERE email = $2
	`, tableForRole(role))

	result, err := r.db.ExecContext(ctx, query, time.Now(), email)
	if err != nil {
		return fmt.Errorf("failed to mark account verified: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}
