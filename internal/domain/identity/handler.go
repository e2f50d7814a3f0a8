package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wellport/wellport/internal/platform/audit"
	"github.com/wellport/wellport/internal/platform/auth"
)

type Handler struct {
	svc   *Service
	audit audit.Recorder
}

func NewHandler(svc *Service, recorder audit.Recorder) *Handler {
	return &Handler{svc: svc, audit: recorder}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)

	users := e.Group("/users", guard)
	users.GET("/profile", h.GetProfile)
	users.PUT("/profile", h.UpdateProfile)
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.svc.Register(c.Request().Context(), &req)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, vErr.Reason)
		case errors.Is(err, ErrEmailTaken):
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
		}
	}
	return c.JSON(http.StatusOK, token)
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.svc.Login(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, ErrBadCredentials) {
			c.Response().Header().Set("WWW-Authenticate", "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	return c.JSON(http.StatusOK, token)
}

func (h *Handler) GetProfile(c echo.Context) error {
	principal := auth.PrincipalFromContext(c.Request().Context())

	// The audit entry must land before the response; a recorder failure
	// fails the request rather than dropping the record.
	err := h.audit.Record(c.Request().Context(), &audit.Entry{
		UserID:    principal.Email,
		Action:    "profile_viewed",
		IPAddress: c.RealIP(),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "audit logging failed")
	}

	profile, err := h.svc.Profile(c.Request().Context(), principal.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load profile")
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	principal := auth.PrincipalFromContext(c.Request().Context())

	var patch ProfileUpdate
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Empty patch: no store write and no audit entry.
	if len(patch.Fields()) == 0 {
		return c.JSON(http.StatusOK, map[string]string{"message": "No changes made"})
	}

	err := h.audit.Record(c.Request().Context(), &audit.Entry{
		UserID:    principal.Email,
		Action:    "profile_updated",
		IPAddress: c.RealIP(),
		Details:   map[string]interface{}{"fields": patch.FieldNames()},
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "audit logging failed")
	}

	updated, err := h.svc.UpdateProfile(c.Request().Context(), principal.Email, &patch)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update profile")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":        "Profile updated successfully",
		"updated_fields": updated,
	})
}
