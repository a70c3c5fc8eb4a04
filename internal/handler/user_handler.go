package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tphappenings/campus-events/internal/dto"
	"github.com/tphappenings/campus-events/internal/middleware"
	"github.com/tphappenings/campus-events/internal/models"
	"github.com/tphappenings/campus-events/internal/service"
)

type UserHandler struct {
	svc     service.UserService
	dashSvc service.DashboardService
}

func NewUserHandler(svc service.UserService, dashSvc service.DashboardService) *UserHandler {
	return &UserHandler{svc: svc, dashSvc: dashSvc}
}

func (h *UserHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/users")
	g.GET("", h.ListUsers)
	g.POST("", h.Signup)
	g.POST("/login", h.Login)
	g.GET("/:id", h.GetUser)
	g.PUT("/:id", h.UpdateUser, auth)
	g.DELETE("/:id", h.DeleteUser, auth)
	g.GET("/:id/dashboard", h.Dashboard, auth)
}

func (h *UserHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		UserType:    models.UserType(req.UserType),
		AdminNo:     req.AdminNo,
		Course:      req.Course,
		YearOfStudy: req.YearOfStudy,
	}

	if err := h.svc.Signup(c.Request().Context(), user, req.Password); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.svc.Login(c.Request().Context(), req.Email, req.Password, models.UserType(req.UserType))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{User: user, Token: token})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	if users == nil {
		users = []models.User{}
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if claims := middleware.ClaimsFrom(c); claims.UserID != id {
		return echo.NewHTTPError(http.StatusForbidden, "cannot modify another user")
	}

	var req dto.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, service.UserUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		AdminNo:     req.AdminNo,
		Course:      req.Course,
		YearOfStudy: req.YearOfStudy,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "server error")
		}
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if claims := middleware.ClaimsFrom(c); claims.UserID != id {
		return echo.NewHTTPError(http.StatusForbidden, "cannot delete another user")
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
}

func (h *UserHandler) Dashboard(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if claims := middleware.ClaimsFrom(c); claims.UserID != id {
		return echo.NewHTTPError(http.StatusForbidden, "cannot view another user's dashboard")
	}

	dash, err := h.dashSvc.Dashboard(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusOK, dash)
}
