package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/camride/camride/internal/pkg/middleware"
	"github.com/camride/camride/internal/pkg/models"
	ridehttp "github.com/camride/camride/services/rides/handler/http"
)

// Handler coordinates the HTTP handlers for the rides service
type Handler struct {
	rideHandler *ridehttp.RideHandler
	cfg         *models.Config
}

// NewHandler creates and initializes the rides handler
func NewHandler(rideHandler *ridehttp.RideHandler, cfg *models.Config) *Handler {
	return &Handler{
		rideHandler: rideHandler,
		cfg:         cfg,
	}
}

// RegisterRoutes wires the ride endpoints onto the Echo instance
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	jwtGuard := middleware.JWTAuthMiddleware(h.cfg.JWT)
	studentOnly := middleware.RequireRole(models.RoleStudent)
	driverOnly := middleware.RequireRole(models.RoleDriver)

	rides := e.Group("/api/v1/rides", jwtGuard)

	rides.POST("", h.rideHandler.BookRide, studentOnly)
	rides.GET("/available", h.rideHandler.ListAvailableRides, driverOnly)
	rides.GET("/mine", h.rideHandler.ListMyRides)
	rides.GET("/:id", h.rideHandler.GetRide)

	rides.PUT("/:id/accept", h.rideHandler.AcceptRide, driverOnly)
	rides.PUT("/:id/start", h.rideHandler.StartRide, driverOnly)
	rides.PUT("/:id/complete", h.rideHandler.CompleteRide, driverOnly)
	rides.PUT("/:id/cancel", h.rideHandler.CancelRide)
	rides.POST("/:id/rate", h.rideHandler.RateRide, studentOnly)
}
