package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/camride/camride/internal/pkg/errs"
	"github.com/camride/camride/internal/pkg/jwt"
	"github.com/camride/camride/internal/pkg/logger"
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/internal/utils"
)

// RegisterStudent creates an unverified student account, provisions its
// wallet and emails a verification OTP.
func (uc *AccountUC) RegisterStudent(ctx context.Context, req *models.RegisterStudentRequest) (*models.Student, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.MatricNo = strings.TrimSpace(req.MatricNo)

	if !utils.ValidateEmail(req.Email) {
		return nil, errs.Validation("a valid email is required")
	}
	if !utils.ValidateMatricNo(req.MatricNo) {
		return nil, errs.Validation("a valid matric number is required")
	}
	if req.FullName == "" {
		return nil, errs.Validation("fullname is required")
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, errs.Validation("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Internal(err)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, errs.Internal(err)
	}
	expiresAt := time.Now().Add(otpTTL * time.Minute)

	student := &models.Student{
		FullName:     req.FullName,
		MatricNo:     req.MatricNo,
		Email:        req.Email,
		PhoneNo:      req.PhoneNo,
		Password:     string(hash),
		IsVerified:   false,
		OTPCode:      &otp,
		OTPExpiresAt: &expiresAt,
	}

	if err := uc.accountRepo.CreateStudent(ctx, student); err != nil {
		return nil, err
	}

	if err := uc.accountGW.PublishOTPNotification(ctx, models.RoleStudent, student.Email, student.FullName, otp); err != nil {
		logger.Warn("Failed to publish OTP notification",
			logger.String("email", student.Email),
			logger.Err(err))
	}

	logger.Info("Student registered",
		logger.String("student_id", student.ID.String()),
		logger.String("matric_no", student.MatricNo))
	return student, nil
}

// RegisterDriver creates an unverified driver account, provisions its
// wallet and emails a verification OTP.
func (uc *AccountUC) RegisterDriver(ctx context.Context, req *models.RegisterDriverRequest) (*models.Driver, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !utils.ValidateEmail(req.Email) {
		return nil, errs.Validation("a valid email is required")
	}
	if req.FullName == "" {
		return nil, errs.Validation("fullname is required")
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, errs.Validation("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Internal(err)
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return nil, errs.Internal(err)
	}
	expiresAt := time.Now().Add(otpTTL * time.Minute)

	driver := &models.Driver{
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNo:      req.PhoneNo,
		Password:     string(hash),
		IsVerified:   false,
		OTPCode:      &otp,
		OTPExpiresAt: &expiresAt,
	}

	if err := uc.accountRepo.CreateDriver(ctx, driver); err != nil {
		return nil, err
	}

	if err := uc.accountGW.PublishOTPNotification(ctx, models.RoleDriver, driver.Email, driver.FullName, otp); err != nil {
		logger.Warn("Failed to publish OTP notification",
			logger.String("email", driver.Email),
			logger.Err(err))
	}

	logger.Info("Driver registered",
		logger.String("driver_id", driver.ID.String()))
	return driver, nil
}

// VerifyEmail checks the submitted OTP against the stored one and marks
// the account verified. Expired or mismatched codes are rejected.
func (uc *AccountUC) VerifyEmail(ctx context.Context, role models.Role, req *models.VerifyEmailRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.OTP == "" {
		return errs.Validation("email and otp are required")
	}

	verified, otpCode, otpExpiresAt, err := uc.lookupOTPState(ctx, role, email)
	if err != nil {
		return err
	}
	if verified {
		return errs.ErrAlreadyVerified
	}
	if otpCode == nil || *otpCode != req.OTP {
		return errs.ErrInvalidOTP
	}
	if otpExpiresAt == nil || time.Now().After(*otpExpiresAt) {
		return errs.ErrOTPExpired
	}

	if err := uc.accountRepo.MarkVerified(ctx, role, email); err != nil {
		return err
	}

	logger.Info("Email verified",
		logger.String("email", email),
		logger.String("role", string(role)))
	return nil
}

// ResendOTP issues a fresh OTP, replacing the previous one
func (uc *AccountUC) ResendOTP(ctx context.Context, role models.Role, req *models.ResendOTPRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return errs.Validation("email is required")
	}

	verified, _, _, err := uc.lookupOTPState(ctx, role, email)
	if err != nil {
		return err
	}
	if verified {
		return errs.ErrAlreadyVerified
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		return errs.Internal(err)
	}
	expiresAt := time.Now().Add(otpTTL * time.Minute)

	if err := uc.accountRepo.SetOTP(ctx, role, email, otp, expiresAt); err != nil {
		return err
	}

	fullName := uc.fullName(ctx, role, email)
	if err := uc.accountGW.PublishOTPNotification(ctx, role, email, fullName, otp); err != nil {
		logger.Warn("Failed to publish OTP notification",
			logger.String("email", email),
			logger.Err(err))
	}
	return nil
}

// Login authenticates by email (students may also use their matric
// number) and returns a signed JWT. Unverified accounts cannot log in.
func (uc *AccountUC) Login(ctx context.Context, role models.Role, req *models.LoginRequest) (*models.AuthResponse, error) {
	if req.Password == "" {
		return nil, errs.Validation("password is required")
	}

	var (
		id       string
		email    string
		fullName string
		hash     string
		verified bool
	)

	switch role {
	case models.RoleStudent:
		student, err := uc.findStudent(ctx, req)
		if err != nil {
			return nil, err
		}
		id, email, fullName = student.ID.String(), student.Email, student.FullName
		hash, verified = student.Password, student.IsVerified
	case models.RoleDriver:
		if req.Email == "" {
			return nil, errs.Validation("email is required")
		}
		driver, err := uc.accountRepo.GetDriverByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			return nil, err
		}
		id, email, fullName = driver.ID.String(), driver.Email, driver.FullName
		hash, verified = driver.Password, driver.IsVerified
	default:
		return nil, errs.Validation("unknown role")
	}

	if !verified {
		return nil, errs.ErrNotVerified
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, errs.ErrInvalidCredential
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.Internal(err)
	}

	token, expiresAt, err := jwt.GenerateToken(userID, email, role, uc.cfg.JWT)
	if err != nil {
		return nil, errs.Internal(err)
	}

	auth := &models.AuthResponse{
		Token:     token,
		UserID:    id,
		Role:      role,
		ExpiresAt: expiresAt,
		FullName:  fullName,
		Email:     email,
		IssuedAt:  time.Now(),
	}

	if err := uc.accountGW.PublishLoginNotification(ctx, role, auth); err != nil {
		logger.Warn("Failed to publish login notification",
			logger.String("email", email),
			logger.Err(err))
	}

	logger.Info("Login successful",
		logger.String("user_id", id),
		logger.String("role", string(role)))
	return auth, nil
}

func (uc *AccountUC) findStudent(ctx context.Context, req *models.LoginRequest) (*models.Student, error) {
	if req.Email != "" {
		return uc.accountRepo.GetStudentByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	}
	if req.MatricNo != "" {
		return uc.accountRepo.GetStudentByMatricNo(ctx, strings.TrimSpace(req.MatricNo))
	}
	return nil, errs.Validation("email or matric number is required")
}

func (uc *AccountUC) lookupOTPState(ctx context.Context, role models.Role, email string) (bool, *string, *time.Time, error) {
	switch role {
	case models.RoleStudent:
		student, err := uc.accountRepo.GetStudentByEmail(ctx, email)
		if err != nil {
			return false, nil, nil, err
		}
		return student.IsVerified, student.OTPCode, student.OTPExpiresAt, nil
	case models.RoleDriver:
		driver, err := uc.accountRepo.GetDriverByEmail(ctx, email)
		if err != nil {
			return false, nil, nil, err
		}
		return driver.IsVerified, driver.OTPCode, driver.OTPExpiresAt, nil
	default:
		return false, nil, nil, errs.Validation("unknown role")
	}
}

func (uc *AccountUC) fullName(ctx context.Context, role models.Role, email string) string {
	switch role {
	case models.RoleStudent:
		if student, err := uc.accountRepo.GetStudentByEmail(ctx, email); err == nil {
			return student.FullName
		}
	case models.RoleDriver:
		if driver, err := uc.accountRepo.GetDriverByEmail(ctx, email); err == nil {
			return driver.FullName
		}
	}
	return ""
}
