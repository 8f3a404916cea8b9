package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubStore struct {
	mu       sync.Mutex
	session  *domain.PersistedSession
	loadErr  error
	saveErr  error
	clearErr error
	saves    int
	clears   int
}

func (s *stubStore) Load(_ context.Context) (*domain.PersistedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.session == nil {
		return nil, nil
	}
	cp := *s.session
	return &cp, nil
}

func (s *stubStore) Save(_ context.Context, ps domain.PersistedSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.session = &ps
	return nil
}

func (s *stubStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.session = nil
	s.loadErr = nil
	return nil
}

func (s *stubStore) stored() *domain.PersistedSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

type stubAuth struct {
	loginFn    func(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	registerFn func(ctx context.Context, profile domain.Profile) (*domain.User, error)
}

func (a *stubAuth) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	return a.loginFn(ctx, creds)
}

func (a *stubAuth) Register(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	return a.registerFn(ctx, profile)
}

type stubBills struct {
	mu       sync.Mutex
	createFn func(ctx context.Context, token string, req domain.TransactionRequest) (*domain.Bill, error)
	requests []domain.TransactionRequest
	tokens   []string
}

func (b *stubBills) CreateBill(ctx context.Context, token string, req domain.TransactionRequest) (*domain.Bill, error) {
	b.mu.Lock()
	b.requests = append(b.requests, req)
	b.tokens = append(b.tokens, token)
	b.mu.Unlock()
	return b.createFn(ctx, token, req)
}

func (b *stubBills) GetBill(_ context.Context, _ string, id int64) (*domain.Bill, error) {
	return &domain.Bill{ID: id}, nil
}

func (b *stubBills) ListUserBills(_ context.Context, _ string, userID int64) ([]domain.Bill, error) {
	return []domain.Bill{{ID: 1, User: domain.UserRef{ID: userID}}}, nil
}

func (b *stubBills) ListAllBills(_ context.Context, _ string) ([]domain.Bill, error) {
	return nil, nil
}

// fixedSession is a SessionService frozen in one state.
type fixedSession struct {
	session domain.Session
	logouts int
}

func (f *fixedSession) Initialize(context.Context) error { return nil }
func (f *fixedSession) Login(context.Context, domain.Credentials) (*domain.LoginResult, error) {
	return nil, nil
}
func (f *fixedSession) Register(context.Context, domain.Profile) (*domain.User, error) {
	return nil, nil
}
func (f *fixedSession) Logout(context.Context) error {
	f.logouts++
	f.session = domain.Session{}
	return nil
}
func (f *fixedSession) Current() domain.Session { return f.session }

func authenticatedAs(id int64, role domain.Role) *fixedSession {
	return &fixedSession{session: domain.Session{
		Token:         "tok-" + string(role),
		User:          &domain.User{ID: id, Role: role},
		Role:          role,
		Authenticated: true,
	}}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// signToken issues an HS256 token expiring at exp.
func signToken(t *testing.T, exp time.Time, extra jwt.MapClaims) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "1", "exp": exp.Unix()}
	for k, v := range extra {
		claims[k] = v
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func book(id int64, price, rental float64) domain.Book {
	return domain.Book{ID: id, Title: "Book", Price: price, RentalPrice: rental, Stock: 10}
}

func signTokenWithoutExpiry(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
