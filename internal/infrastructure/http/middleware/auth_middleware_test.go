package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edumeet/notifier/pkg/jwt"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(okHandler)(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestEchoAuthValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateServiceToken("meetbot", "reports:read")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	rec := doRequest(t, EchoAuth(manager), "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestEchoAuthMissingToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	rec := doRequest(t, EchoAuth(manager), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestEchoAuthInvalidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	rec := doRequest(t, EchoAuth(manager), "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireScope(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	token, err := manager.GenerateServiceToken("accounts", "emails:send")
	if err != nil {
		t.Fatalf("token generation failed: %v", err)
	}

	e := echo.New()
	chain := EchoAuth(manager)(RequireScope("reports:write")(okHandler))

	req := httptest.NewRequest(http.MethodPost, "/v1/reports", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := chain(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for missing scope, got %d", rec.Code)
	}
}
