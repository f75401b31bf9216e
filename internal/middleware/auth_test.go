package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/maynoewai/ABC-car-sale-BE/internal/auth"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/config"
	"github.com/maynoewai/ABC-car-sale-BE/pkg/jwtutil"
)

func callWithAuth(t *testing.T, header string) (*httptest.ResponseRecorder, *auth.Identity) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured *auth.Identity
	h := AuthMiddleware(func(c echo.Context) error {
		captured = auth.CurrentIdentity(c)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware returned %v", err)
	}
	return rec, captured
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec, identity := callWithAuth(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if identity != nil {
		t.Fatal("no identity should be set")
	}
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	rec, _ := callWithAuth(t, "Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "middleware-test-key", ExpirationHours: 1})
	rec, _ := callWithAuth(t, "Bearer not-a-token")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareResolvesIdentity(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "middleware-test-key", ExpirationHours: 1})
	token, err := jwtutil.GenerateToken("dana@example.com", 11, "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	rec, identity := callWithAuth(t, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if identity == nil {
		t.Fatal("expected identity on context")
	}
	if identity.UserID != 11 || identity.Email != "dana@example.com" || identity.Role != "admin" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if !identity.IsAdmin() {
		t.Fatal("expected admin identity")
	}
}
