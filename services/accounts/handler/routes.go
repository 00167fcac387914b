package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/camride/camride/internal/pkg/database"
	"github.com/camride/camride/internal/pkg/middleware"
	"github.com/camride/camride/internal/pkg/models"
	accounthttp "github.com/camride/camride/services/accounts/handler/http"
)

// Handler coordinates the HTTP handlers for the accounts service
type Handler struct {
	authHandler    *accounthttp.AuthHandler
	profileHandler *accounthttp.ProfileHandler
	cfg            *models.Config
	redisClient    *database.RedisClient
}

// NewHandler creates and initializes the accounts handler
func NewHandler(
	authHandler *accounthttp.AuthHandler,
	profileHandler *accounthttp.ProfileHandler,
	cfg *models.Config,
	redisClient *database.RedisClient,
) *Handler {
	return &Handler{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		cfg:            cfg,
		redisClient:    redisClient,
	}
}

// RegisterRoutes wires the accounts endpoints onto the Echo instance
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	otpLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RedisClient: h.redisClient.Client,
		Resource:    "otp",
		Limit:       5,
		Period:      10 * time.Minute,
	})
	loginLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RedisClient: h.redisClient.Client,
		Resource:    "login",
		Limit:       10,
		Period:      time.Minute,
	})

	auth := e.Group("/api/v1/auth")
	auth.POST("/logout", h.authHandler.Logout)

	student := auth.Group("/student")
	student.POST("/register", h.authHandler.RegisterStudent)
	student.POST("/verify", h.authHandler.VerifyEmail(models.RoleStudent), otpLimiter)
	student.POST("/resend-otp", h.authHandler.ResendOTP(models.RoleStudent), otpLimiter)
	student.POST("/login", h.authHandler.Login(models.RoleStudent), loginLimiter)

	driver := auth.Group("/driver")
	driver.POST("/register", h.authHandler.RegisterDriver)
	driver.POST("/verify", h.authHandler.VerifyEmail(models.RoleDriver), otpLimiter)
	driver.POST("/resend-otp", h.authHandler.ResendOTP(models.RoleDriver), otpLimiter)
	driver.POST("/login", h.authHandler.Login(models.RoleDriver), loginLimiter)

	jwtGuard := middleware.JWTAuthMiddleware(h.cfg.JWT)

	students := e.Group("/api/v1/students", jwtGuard, middleware.RequireRole(models.RoleStudent))
	students.GET("/profile", h.profileHandler.GetStudentProfile)
	students.PUT("/profile", h.profileHandler.UpdateStudentProfile)

	drivers := e.Group("/api/v1/drivers", jwtGuard, middleware.RequireRole(models.RoleDriver))
	drivers.GET("/profile", h.profileHandler.GetDriverProfile)
	drivers.PUT("/profile", h.profileHandler.UpdateDriverProfile)
	drivers.PUT("/availability", h.profileHandler.SetAvailability)
}
