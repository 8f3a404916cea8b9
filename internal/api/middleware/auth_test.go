package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/bookshelf/storefront/internal/core/domain"
)

func sign(t *testing.T, claims jwt.Claims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims(role domain.Role) *Claims {
	return &Claims{
		UserID: 7,
		Email:  "alice@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, c
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	rec, called, c := runAuth(t, "Bearer "+sign(t, validClaims(domain.RoleAdmin), "secret"))

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get(KeyUserID) != int64(7) {
		t.Fatalf("user_id not set: %v", c.Get(KeyUserID))
	}
	if c.Get(KeyRole) != domain.RoleAdmin {
		t.Fatalf("role not set: %v", c.Get(KeyRole))
	}
}

func TestAuthMiddleware_MissingRoleIsUser(t *testing.T) {
	_, called, c := runAuth(t, "Bearer "+sign(t, validClaims(""), "secret"))

	if !called {
		t.Fatalf("next not called")
	}
	if c.Get(KeyRole) != domain.RoleUser {
		t.Fatalf("expected USER, got %v", c.Get(KeyRole))
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired := validClaims(domain.RoleUser)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noExpiry := validClaims(domain.RoleUser)
	noExpiry.ExpiresAt = nil

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"garbage":        "Bearer not-a-token",
		"wrong secret":   "Bearer " + sign(t, validClaims(domain.RoleUser), "other"),
		"expired":        "Bearer " + sign(t, expired, "secret"),
		"no expiry":      "Bearer " + sign(t, noExpiry, "secret"),
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called, _ := runAuth(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
