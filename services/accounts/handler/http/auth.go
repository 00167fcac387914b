package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/internal/utils"
	"github.com/camride/camride/services/accounts"
)

// AuthHandler exposes registration and authentication endpoints
type AuthHandler struct {
	accountUC accounts.AccountUC
	jwtCfg    models.JWTConfig
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(accountUC accounts.AccountUC, jwtCfg models.JWTConfig) *AuthHandler {
	return &AuthHandler{accountUC: accountUC, jwtCfg: jwtCfg}
}

// RegisterStudent handles student sign-up requests
func (h *AuthHandler) RegisterStudent(c echo.Context) error {
	var request models.RegisterStudentRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	student, err := h.accountUC.RegisterStudent(c.Request().Context(), &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated,
		"Registration successful, check your email for the verification code", student)
}

// RegisterDriver handles driver sign-up requests
func (h *AuthHandler) RegisterDriver(c echo.Context) error {
	var request models.RegisterDriverRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	driver, err := h.accountUC.RegisterDriver(c.Request().Context(), &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated,
		"Registration successful, check your email for the verification code", driver)
}

// VerifyEmail handles OTP verification requests
func (h *AuthHandler) VerifyEmail(role models.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var request models.VerifyEmailRequest
		if err := c.Bind(&request); err != nil {
			return utils.BadRequestResponse(c, "Invalid request payload")
		}

		if err := h.accountUC.VerifyEmail(c.Request().Context(), role, &request); err != nil {
			return utils.DomainErrorResponse(c, err)
		}

		return utils.SuccessResponse(c, http.StatusOK, "Email verified successfully", nil)
	}
}

// ResendOTP handles requests for a fresh verification code
func (h *AuthHandler) ResendOTP(role models.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var request models.ResendOTPRequest
		if err := c.Bind(&request); err != nil {
			return utils.BadRequestResponse(c, "Invalid request payload")
		}

		if err := h.accountUC.ResendOTP(c.Request().Context(), role, &request); err != nil {
			return utils.DomainErrorResponse(c, err)
		}

		return utils.SuccessResponse(c, http.StatusOK, "Verification code sent", nil)
	}
}

// Login handles authentication requests
func (h *AuthHandler) Login(role models.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var request models.LoginRequest
		if err := c.Bind(&request); err != nil {
			return utils.BadRequestResponse(c, "Invalid request payload")
		}

		auth, err := h.accountUC.Login(c.Request().Context(), role, &request)
		if err != nil {
			return utils.DomainErrorResponse(c, err)
		}

		c.SetCookie(&http.Cookie{
			Name:     h.jwtCfg.CookieName,
			Value:    auth.Token,
			Path:     "/",
			Expires:  time.Unix(auth.ExpiresAt, 0),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		return utils.SuccessResponse(c, http.StatusOK, "Login successful", auth)
	}
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.jwtCfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}
