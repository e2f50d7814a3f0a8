package care

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/wellport/wellport/internal/domain/wellness"
	"github.com/wellport/wellport/internal/platform/audit"
	"github.com/wellport/wellport/internal/platform/auth"
)

type capturingRecorder struct {
	entries []*audit.Entry
	err     error
}

func (r *capturingRecorder) Record(_ context.Context, entry *audit.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func doctorContext(e *echo.Echo, path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	p := &auth.Principal{Email: "doc@x.com", Role: "doctor", FullName: "Dr. D"}
	req = req.WithContext(auth.ContextWithPrincipal(req.Context(), p))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_ListPatients(t *testing.T) {
	svc, users, _, logs := newTestCare()
	h := NewHandler(svc, &capturingRecorder{})
	e := echo.New()

	addPatient(users, "a@x.com", "Alice")
	logs.logs["a@x.com|2025-06-15"] = &wellness.DailyLog{UserID: "a@x.com", Date: "2025-06-15", Steps: 6000}

	c, rec := doctorContext(e, "/doctor/patients")
	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var summaries []PatientSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summaries); err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected bare array with 1 patient, got %d", len(summaries))
	}
	if summaries[0].ComplianceStatus != "Goal Met" {
		t.Errorf("unexpected summary: %+v", summaries[0])
	}
}

func TestHandler_PatientDetail(t *testing.T) {
	svc, users, _, _ := newTestCare()
	auditRec := &capturingRecorder{}
	h := NewHandler(svc, auditRec)
	e := echo.New()

	addPatient(users, "a@x.com", "Alice")

	c, rec := doctorContext(e, "/doctor/patient/a@x.com")
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")
	if err := h.PatientDetail(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var detail PatientDetail
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatal(err)
	}
	if detail.Email != "a@x.com" {
		t.Errorf("unexpected detail: %+v", detail)
	}

	if len(auditRec.entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(auditRec.entries))
	}
	entry := auditRec.entries[0]
	if entry.UserID != "doc@x.com" || entry.Action != "patient_chart_viewed" {
		t.Errorf("unexpected audit entry: %+v", entry)
	}
	if entry.Details["patient"] != "a@x.com" {
		t.Errorf("expected viewed patient in audit details, got %v", entry.Details)
	}
}

func TestHandler_PatientDetail_NotFound(t *testing.T) {
	svc, _, _, _ := newTestCare()
	h := NewHandler(svc, &capturingRecorder{})
	e := echo.New()

	c, _ := doctorContext(e, "/doctor/patient/ghost@x.com")
	c.SetParamNames("email")
	c.SetParamValues("ghost@x.com")
	err := h.PatientDetail(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_PatientDetail_AuditFailureAborts(t *testing.T) {
	svc, users, _, _ := newTestCare()
	h := NewHandler(svc, &capturingRecorder{err: errors.New("audit store down")})
	e := echo.New()

	addPatient(users, "a@x.com", "Alice")

	c, _ := doctorContext(e, "/doctor/patient/a@x.com")
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")
	err := h.PatientDetail(c)

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 when audit recording fails, got %v", err)
	}
}
