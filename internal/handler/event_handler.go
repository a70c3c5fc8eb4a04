package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/tphappenings/campus-events/internal/dto"
	"github.com/tphappenings/campus-events/internal/middleware"
	"github.com/tphappenings/campus-events/internal/models"
	"github.com/tphappenings/campus-events/internal/schedule"
	"github.com/tphappenings/campus-events/internal/service"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/events")
	g.GET("", h.ListEvents)
	g.GET("/:id", h.GetEvent)
	g.POST("/:id/notify", h.NotifyMe)
	g.POST("", h.CreateEvent, auth, middleware.RequireOrganiser)
	g.PUT("/:id", h.UpdateEvent, auth, middleware.RequireOrganiser)
	g.DELETE("/:id", h.DeleteEvent, auth, middleware.RequireOrganiser)
	g.POST("/:id/attendance-key", h.GenerateAttendanceKey, auth, middleware.RequireOrganiser)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func eventHTTPError(err error) error {
	var belowDemand *service.CapacityBelowDemandError
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &belowDemand),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, service.ErrDateInPast),
		errors.Is(err, service.ErrEventNotFull),
		errors.Is(err, schedule.ErrInvalidDate),
		errors.Is(err, schedule.ErrInvalidTimeRange),
		errors.Is(err, schedule.ErrEndBeforeStart):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	claims := middleware.ClaimsFrom(c)

	event := &models.Event{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		Category:        models.EventCategory(req.Category),
		MaxParticipants: req.MaxParticipants,
		Organizer:       req.Organizer,
		OrganizerID:     claims.UserID,
		OrganizerAvatar: req.OrganizerAvatar,
		Image:           req.Image,
	}

	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return eventHTTPError(err)
	}
	return c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return eventHTTPError(err)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context(), c.QueryParam("category"), c.QueryParam("search"))
	if err != nil {
		return eventHTTPError(err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	update := service.EventUpdate{
		Title:           req.Title,
		Description:     req.Description,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		Image:           req.Image,
	}
	if req.Category != nil {
		category := models.EventCategory(*req.Category)
		update.Category = &category
	}

	event, err := h.svc.UpdateEvent(c.Request().Context(), id, update)
	if err != nil {
		return eventHTTPError(err)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), id); err != nil {
		return eventHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Event deleted successfully"})
}

func (h *EventHandler) GenerateAttendanceKey(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	key, err := h.svc.GenerateAttendanceKey(c.Request().Context(), id)
	if err != nil {
		return eventHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.AttendanceKeyResponse{EventID: id, AttendanceKey: key})
}

func (h *EventHandler) NotifyMe(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.NotifyMeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	notify, err := h.svc.RequestNotify(c.Request().Context(), id, req.Email)
	if err != nil {
		return eventHTTPError(err)
	}
	return c.JSON(http.StatusCreated, notify)
}
