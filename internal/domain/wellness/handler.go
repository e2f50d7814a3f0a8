package wellness

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wellport/wellport/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/patient", guard, auth.RequireRole("patient"))
	g.GET("/dashboard", h.Dashboard)
	g.POST("/goals", h.UpdateGoals)
	g.POST("/daily-log", h.LogDailyProgress)
}

func (h *Handler) Dashboard(c echo.Context) error {
	p := auth.PrincipalFromContext(c.Request().Context())
	dash, err := h.svc.Dashboard(c.Request().Context(), p.Email, p.FullName)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load dashboard")
	}
	return c.JSON(http.StatusOK, dash)
}

func (h *Handler) UpdateGoals(c echo.Context) error {
	var in GoalInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p := auth.PrincipalFromContext(c.Request().Context())
	if _, err := h.svc.UpsertGoal(c.Request().Context(), p.Email, &in); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, verr.Reason)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save goals")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Goals updated successfully"})
}

func (h *Handler) LogDailyProgress(c echo.Context) error {
	var in DailyLogInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p := auth.PrincipalFromContext(c.Request().Context())
	log, err := h.svc.SaveDailyLog(c.Request().Context(), p.Email, &in)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, verr.Reason)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save daily log")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Daily log saved successfully",
		"data":    log,
	})
}
