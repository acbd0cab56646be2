package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, RoleFromContext(c.Request().Context()))
}

func TestMiddlewareAcceptsBearerToken(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 168*time.Hour)
	token, err := issuer.IssueAccess(uuid.New(), "reception")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Middleware(issuer, nil)
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	if rec.Body.String() != "reception" {
		t.Errorf("role on context = %q, want reception", rec.Body.String())
	}
}

func TestMiddlewareRejects(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 168*time.Hour)
	pair, err := issuer.IssuePair(uuid.New(), "doctor")
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer garbage"},
		{"refresh instead of access", "Bearer " + pair.Refresh},
	}

	mw := Middleware(issuer, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			err := mw(okHandler)(c)
			httpErr, ok := err.(*echo.HTTPError)
			if !ok || httpErr.Code != http.StatusUnauthorized {
				t.Errorf("got %v, want 401", err)
			}
		})
	}
}

func TestMiddlewareSkipsPublicPaths(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, 15*time.Minute, 168*time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/v1/auth/login")

	mw := Middleware(issuer, Skipper)
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("public path rejected: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
