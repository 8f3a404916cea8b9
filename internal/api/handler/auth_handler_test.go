package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookshelf/storefront/internal/core/domain"
)

type stubSession struct {
	loginFn    func(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	registerFn func(ctx context.Context, profile domain.Profile) (*domain.User, error)
	current    domain.Session
	logouts    int
}

func (s *stubSession) Initialize(context.Context) error { return nil }

func (s *stubSession) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubSession) Register(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	return s.registerFn(ctx, profile)
}

func (s *stubSession) Logout(context.Context) error {
	s.logouts++
	s.current = domain.Session{}
	return nil
}

func (s *stubSession) Current() domain.Session { return s.current }

func newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec, e
}

// serve runs h and renders any returned error the way echo would.
func serve(t *testing.T, h echo.HandlerFunc, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	c, rec, e := newContext(method, path, body)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubSession{
		registerFn: func(ctx context.Context, p domain.Profile) (*domain.User, error) {
			if p.Email != "alice@example.com" || p.FullName != "Alice" || p.Password != "secret1" {
				t.Fatalf("unexpected args: %+v", p)
			}
			return &domain.User{ID: 4, Email: p.Email, FullName: p.FullName, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := serve(t, handler.Register, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"secret1","fullName":"Alice"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var user map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if user["email"] != "alice@example.com" || user["role"] != "USER" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if stub.current.Authenticated {
		t.Fatalf("register must not log in")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubSession{
		registerFn: func(context.Context, domain.Profile) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	tests := map[string]struct {
		body string
		code int
	}{
		"not json":       {"not-json", http.StatusBadRequest},
		"bad email":      {`{"email":"nope","password":"secret1","fullName":"A"}`, http.StatusUnprocessableEntity},
		"short password": {`{"email":"a@b.co","password":"123","fullName":"A"}`, http.StatusUnprocessableEntity},
		"missing name":   {`{"email":"a@b.co","password":"secret1"}`, http.StatusUnprocessableEntity},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := serve(t, handler.Register, http.MethodPost, "/api/auth/register", tt.body)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}
}

func TestAuthHandler_Register_MessageUsesJSONNames(t *testing.T) {
	handler := NewAuthHandler(&stubSession{})

	rec := serve(t, handler.Register, http.MethodPost, "/api/auth/register", `{"email":"a@b.co","password":"secret1"}`)

	if !strings.Contains(rec.Body.String(), "fullName is required") {
		t.Fatalf("unexpected message: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubSession{
		loginFn: func(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
			if creds.Email != "alice@example.com" || creds.Password != "secret" {
				t.Fatalf("unexpected args: %+v", creds)
			}
			return &domain.LoginResult{Token: "token123", User: domain.User{ID: 1, Email: creds.Email}}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := serve(t, handler.Login, http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "token123") {
		t.Fatalf("token leaked to client: %s", rec.Body.String())
	}
	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user"]["role"] != "USER" {
		t.Fatalf("expected defaulted role, got %+v", resp["user"])
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubSession{
		loginFn: func(context.Context, domain.Credentials) (*domain.LoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := serve(t, handler.Login, http.MethodPost, "/api/auth/login", "{")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout_Idempotent(t *testing.T) {
	stub := &stubSession{current: domain.Session{Authenticated: true, User: &domain.User{ID: 1}}}
	handler := NewAuthHandler(stub)

	for i := 0; i < 2; i++ {
		rec := serve(t, handler.Logout, http.MethodPost, "/api/auth/logout", "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	}
	if stub.logouts != 2 {
		t.Fatalf("expected 2 logouts, got %d", stub.logouts)
	}
}

func TestAuthHandler_Session_HidesAnonymousDetails(t *testing.T) {
	stub := &stubSession{current: domain.Session{Loading: true}}
	handler := NewAuthHandler(stub)

	rec := serve(t, handler.Session, http.MethodGet, "/api/session", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Authenticated || !resp.Loading || resp.User != nil {
		t.Fatalf("unexpected session: %+v", resp)
	}
}
