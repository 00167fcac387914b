package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/camride/camride/internal/pkg/middleware"
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/internal/utils"
	"github.com/camride/camride/services/rides"
)

// RideHandler exposes the ride lifecycle endpoints
type RideHandler struct {
	rideUC rides.RideUC
}

// NewRideHandler creates a new ride handler instance
func NewRideHandler(rideUC rides.RideUC) *RideHandler {
	return &RideHandler{rideUC: rideUC}
}

// BookRide creates a pending ride for the authenticated student
func (h *RideHandler) BookRide(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var request models.BookRideRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	ride, err := h.rideUC.BookRide(c.Request().Context(), userID, &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Ride booked successfully", ride)
}

// ListAvailableRides returns pending rides for drivers to claim
func (h *RideHandler) ListAvailableRides(c echo.Context) error {
	rideList, err := h.rideUC.ListAvailableRides(c.Request().Context())
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", rideList)
}

// AcceptRide lets the authenticated driver claim a pending ride
func (h *RideHandler) AcceptRide(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.rideUC.AcceptRide(c.Request().Context(), userID, rideID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ride accepted", ride)
}

// StartRide moves the driver's accepted ride to ongoing
func (h *RideHandler) StartRide(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.rideUC.StartRide(c.Request().Context(), userID, rideID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ride started", ride)
}

// CompleteRide finishes the driver's ongoing ride
func (h *RideHandler) CompleteRide(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	var request models.CompleteRideRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	ride, err := h.rideUC.CompleteRide(c.Request().Context(), userID, rideID, &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ride completed", ride)
}

// CancelRide cancels a non-terminal ride for either participant
func (h *RideHandler) CancelRide(c echo.Context) error {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	var request models.CancelRideRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	ride, err := h.rideUC.CancelRide(c.Request().Context(), userID, role, rideID, &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ride cancelled", ride)
}

// RateRide records the student's rating of a completed ride
func (h *RideHandler) RateRide(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	var request models.RateRideRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	ride, err := h.rideUC.RateRide(c.Request().Context(), userID, rideID, &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Ride rated", ride)
}

// GetRide returns a single ride to one of its participants
func (h *RideHandler) GetRide(c echo.Context) error {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}
	rideID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid ride ID")
	}

	ride, err := h.rideUC.GetRide(c.Request().Context(), userID, role, rideID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", ride)
}

// ListMyRides returns the caller's ride history, optionally filtered
// with the status query parameter
func (h *RideHandler) ListMyRides(c echo.Context) error {
	userID, role, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var status *models.RideStatus
	if s := c.QueryParam("status"); s != "" {
		rideStatus := models.RideStatus(s)
		status = &rideStatus
	}

	var (
		rideList []models.Ride
		err      error
	)
	if role == models.RoleDriver {
		rideList, err = h.rideUC.ListDriverRides(c.Request().Context(), userID, status)
	} else {
		rideList, err = h.rideUC.ListStudentRides(c.Request().Context(), userID, status)
	}
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", rideList)
}
