package care

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wellport/wellport/internal/platform/audit"
	"github.com/wellport/wellport/internal/platform/auth"
	"github.com/wellport/wellport/pkg/pagination"
)

type Handler struct {
	svc   *Service
	audit audit.Recorder
}

func NewHandler(svc *Service, recorder audit.Recorder) *Handler {
	return &Handler{svc: svc, audit: recorder}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, guard echo.MiddlewareFunc) {
	g := e.Group("/doctor", guard, auth.RequireRole("doctor"))
	g.GET("/patients", h.ListPatients)
	g.GET("/patient/:email", h.PatientDetail)
}

func (h *Handler) ListPatients(c echo.Context) error {
	params := pagination.FromContext(c)
	summaries, err := h.svc.ListPatients(c.Request().Context(), params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list patients")
	}
	return c.JSON(http.StatusOK, summaries)
}

func (h *Handler) PatientDetail(c echo.Context) error {
	p := auth.PrincipalFromContext(c.Request().Context())
	email := c.Param("email")

	// Chart access is recorded before any data leaves the store.
	entry := &audit.Entry{
		UserID:    p.Email,
		Action:    "patient_chart_viewed",
		IPAddress: c.RealIP(),
		Details:   map[string]interface{}{"patient": email},
	}
	if err := h.audit.Record(c.Request().Context(), entry); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to record audit entry")
	}

	detail, err := h.svc.PatientDetail(c.Request().Context(), email)
	if errors.Is(err, ErrPatientNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Patient not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load patient")
	}
	return c.JSON(http.StatusOK, detail)
}
