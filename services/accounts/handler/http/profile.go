package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/camride/camride/internal/pkg/middleware"
	"github.com/camride/camride/internal/pkg/models"
	"github.com/camride/camride/internal/utils"
	"github.com/camride/camride/services/accounts"
)

// ProfileHandler exposes profile endpoints for authenticated accounts
type ProfileHandler struct {
	accountUC accounts.AccountUC
}

// NewProfileHandler creates a new profile handler instance
func NewProfileHandler(accountUC accounts.AccountUC) *ProfileHandler {
	return &ProfileHandler{accountUC: accountUC}
}

// GetStudentProfile returns the authenticated student's profile
func (h *ProfileHandler) GetStudentProfile(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	student, err := h.accountUC.GetStudentProfile(c.Request().Context(), userID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", student)
}

// UpdateStudentProfile applies profile changes for the authenticated student
func (h *ProfileHandler) UpdateStudentProfile(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var request models.UpdateStudentProfileRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	student, err := h.accountUC.UpdateStudentProfile(c.Request().Context(), userID, &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Profile updated", student)
}

// GetDriverProfile returns the authenticated driver's profile
func (h *ProfileHandler) GetDriverProfile(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	driver, err := h.accountUC.GetDriverProfile(c.Request().Context(), userID)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "", driver)
}

// UpdateDriverProfile applies profile and vehicle changes for the
// authenticated driver
func (h *ProfileHandler) UpdateDriverProfile(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var request models.UpdateDriverProfileRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	driver, err := h.accountUC.UpdateDriverProfile(c.Request().Context(), userID, &request)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Profile updated", driver)
}

// SetAvailability toggles the authenticated driver's availability
func (h *ProfileHandler) SetAvailability(c echo.Context) error {
	userID, _, ok := middleware.CallerIdentity(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "")
	}

	var request models.SetAvailabilityRequest
	if err := c.Bind(&request); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if err := h.accountUC.SetDriverAvailability(c.Request().Context(), userID, request.IsAvailable); err != nil {
		return utils.DomainErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Availability updated", map[string]bool{
		"is_available": request.IsAvailable,
	})
}
