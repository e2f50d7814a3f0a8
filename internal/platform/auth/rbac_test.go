package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runRequireRole(t *testing.T, principal *Principal, roles ...string) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if principal != nil {
		req = req.WithContext(ContextWithPrincipal(req.Context(), principal))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}
	return RequireRole(roles...)(handler)(c)
}

func TestRequireRole_Match(t *testing.T) {
	err := runRequireRole(t, &Principal{Email: "a@x.com", Role: "patient"}, "patient")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequireRole_Mismatch(t *testing.T) {
	err := runRequireRole(t, &Principal{Email: "a@x.com", Role: "patient"}, "doctor")

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", httpErr.Code)
	}
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	err := runRequireRole(t, &Principal{Email: "d@x.com", Role: "doctor"}, "patient", "doctor")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequireRole_NoPrincipal(t *testing.T) {
	err := runRequireRole(t, nil, "patient")

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}
