package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tphappenings/campus-events/internal/dto"
	"github.com/tphappenings/campus-events/internal/middleware"
	"github.com/tphappenings/campus-events/internal/models"
	"github.com/tphappenings/campus-events/internal/service"
)

type RegistrationHandler struct {
	svc service.RegistrationService
}

func NewRegistrationHandler(svc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/registrations")
	g.GET("", h.ListRegistrations)
	g.GET("/:id", h.GetRegistration)
	g.POST("", h.CreateRegistration, auth)
	g.PUT("/:id", h.UpdateRegistration, auth)
	g.DELETE("/:id", h.DeleteRegistration, auth)
}

func (h *RegistrationHandler) CreateRegistration(c echo.Context) error {
	var req dto.CreateRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims := middleware.ClaimsFrom(c)

	reg, err := h.svc.Register(c.Request().Context(), req.EventID, claims.UserID, service.RegistrationDetails{
		FullName:         req.FullName,
		Email:            req.Email,
		AdminNo:          req.AdminNo,
		Course:           req.Course,
		YearOfStudy:      req.YearOfStudy,
		Reasons:          req.Reasons,
		RegistrationDate: req.RegistrationDate,
		ReceiveUpdates:   req.ReceiveUpdates,
		ConsentPhoto:     req.ConsentPhoto,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrCapacityExceeded),
			errors.Is(err, service.ErrDuplicateRegistration):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
	}
	return c.JSON(http.StatusCreated, reg)
}

// UpdateRegistration marks or unmarks attendance. Marking requires the
// event's current attendance key; unmarking is an organiser-only correction.
func (h *RegistrationHandler) UpdateRegistration(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var reg *models.Registration
	if *req.Attended {
		reg, err = h.svc.MarkAttended(c.Request().Context(), id, req.AttendanceKey)
	} else {
		claims := middleware.ClaimsFrom(c)
		if claims.UserType != models.UserTypeOrganiser {
			return echo.NewHTTPError(http.StatusForbidden, "organiser access required")
		}
		reg, err = h.svc.UnmarkAttended(c.Request().Context(), id)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegistrationNotFound),
			errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidAttendanceKey):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrNoAttendanceKey),
			errors.Is(err, service.ErrAlreadyAttended),
			errors.Is(err, service.ErrNotAttended):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
	}
	return c.JSON(http.StatusOK, reg)
}

// DeleteRegistration unregisters. Students can only remove their own
// registration; organisers can remove any.
func (h *RegistrationHandler) DeleteRegistration(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	claims := middleware.ClaimsFrom(c)
	existing, err := h.svc.GetRegistration(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "registration not found")
	}
	if claims.UserType != models.UserTypeOrganiser && existing.UserID != claims.UserID {
		return echo.NewHTTPError(http.StatusForbidden, "cannot remove another user's registration")
	}

	if _, err := h.svc.Unregister(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Registration deleted"})
}

func (h *RegistrationHandler) GetRegistration(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	reg, err := h.svc.GetRegistration(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "registration not found")
	}
	return c.JSON(http.StatusOK, reg)
}

func (h *RegistrationHandler) ListRegistrations(c echo.Context) error {
	eventID := parseQueryID(c.QueryParam("eventId"))
	userID := parseQueryID(c.QueryParam("userId"))

	regs, err := h.svc.ListRegistrations(c.Request().Context(), eventID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	if regs == nil {
		regs = []models.Registration{}
	}
	return c.JSON(http.StatusOK, regs)
}

func parseQueryID(s string) uint {
	if s == "" {
		return 0
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
