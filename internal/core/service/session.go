package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
)

var errNoExpiry = errors.New("token carries no expiry claim")

// SessionManager owns the authentication state of the running storefront.
// It is safe for concurrent use.
type SessionManager struct {
	store ports.SessionStore
	auth  ports.AuthBackend
	log   zerolog.Logger
	now   func() time.Time

	// opMu serializes transitions that write the store.
	opMu sync.Mutex

	mu      sync.RWMutex
	token   string
	user    *domain.User
	expiry  time.Time
	loading bool
}

// SessionOption customises a SessionManager.
type SessionOption func(*SessionManager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

func NewSessionManager(store ports.SessionStore, auth ports.AuthBackend, log zerolog.Logger, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		store:   store,
		auth:    auth,
		log:     log,
		now:     time.Now,
		loading: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize restores the persisted session. Expired, undecodable or corrupt
// sessions are cleared and leave the manager unauthenticated without an
// error; only a failing store is reported.
func (m *SessionManager) Initialize(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	m.opMu.Lock()
	defer m.opMu.Unlock()

	persisted, err := m.store.Load(ctx)
	if errors.Is(err, domain.ErrCorruptSession) {
		m.log.Warn().Err(err).Msg("discarding unreadable persisted session")
		return m.discardLocked(ctx)
	}
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}
	if persisted == nil || persisted.Token == "" {
		return nil
	}
	if persisted.User.ID == 0 {
		m.log.Warn().Msg("discarding persisted token without a user record")
		return m.discardLocked(ctx)
	}

	expiry, err := decodeExpiry(persisted.Token)
	if err != nil {
		m.log.Warn().Err(err).Msg("discarding undecodable session token")
		return m.discardLocked(ctx)
	}
	if !expiry.After(m.now()) {
		m.log.Info().Time("expired_at", expiry).Msg("persisted session expired")
		return m.discardLocked(ctx)
	}

	user := persisted.User
	user.Role = user.Role.Normalize()

	m.mu.Lock()
	m.token = persisted.Token
	m.user = &user
	m.expiry = expiry
	m.mu.Unlock()

	m.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("session restored")
	return nil
}

// Login authenticates against the backend and persists the returned session.
// On any failure the current state is left untouched.
func (m *SessionManager) Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error) {
	res, err := m.auth.Login(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if res == nil || res.Token == "" {
		return nil, fmt.Errorf("login: backend returned no token: %w", domain.ErrInvalidCredentials)
	}

	expiry, err := decodeExpiry(res.Token)
	if err != nil {
		return nil, fmt.Errorf("login: unreadable token: %w", err)
	}

	user := res.User
	user.Role = user.Role.Normalize()

	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.store.Save(ctx, domain.PersistedSession{Token: res.Token, User: user}); err != nil {
		return nil, fmt.Errorf("login: persist session: %w", err)
	}

	m.mu.Lock()
	m.token = res.Token
	m.user = &user
	m.expiry = expiry
	m.mu.Unlock()

	m.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("logged in")

	out := *res
	out.User = user
	return &out, nil
}

// Register creates an account. It never logs the new user in.
func (m *SessionManager) Register(ctx context.Context, profile domain.Profile) (*domain.User, error) {
	user, err := m.auth.Register(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	m.log.Info().Str("email", profile.Email).Msg("account registered")
	return user, nil
}

// Logout resets the in-memory state and clears the store. It is idempotent;
// the in-memory state is reset even when the store fails.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.reset()
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	m.log.Info().Msg("logged out")
	return nil
}

// Current returns a snapshot of the session. A token found expired at read
// time is cleared before the snapshot is taken.
func (m *SessionManager) Current() domain.Session {
	m.mu.RLock()
	token := m.token
	expired := token != "" && !m.expiry.After(m.now())
	m.mu.RUnlock()

	if expired {
		m.log.Info().Msg("session expired")
		if err := m.expire(context.Background(), token); err != nil {
			m.log.Warn().Err(err).Msg("failed to clear expired session")
		}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	s := domain.Session{Loading: m.loading}
	if m.token == "" || m.user == nil {
		return s
	}
	user := *m.user
	s.Token = m.token
	s.User = &user
	s.Role = user.Role
	s.Authenticated = true
	return s
}

// Token returns the bearer token, or "" when unauthenticated.
func (m *SessionManager) Token() string { return m.Current().Token }

// IsAuthenticated reports whether a valid session is held.
func (m *SessionManager) IsAuthenticated() bool { return m.Current().Authenticated }

// IsAdmin reports whether the session user carries the ADMIN role.
func (m *SessionManager) IsAdmin() bool {
	s := m.Current()
	return s.Authenticated && s.Role == domain.RoleAdmin
}

// expire clears the session only if token is still the one found expired;
// a login that landed in between is kept.
func (m *SessionManager) expire(ctx context.Context, token string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.mu.RLock()
	current := m.token
	m.mu.RUnlock()
	if current != token {
		return nil
	}
	return m.discardLocked(ctx)
}

// discardLocked resets memory and clears the store. Callers hold opMu.
func (m *SessionManager) discardLocked(ctx context.Context) error {
	m.reset()
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (m *SessionManager) reset() {
	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.expiry = time.Time{}
	m.mu.Unlock()
}

// decodeExpiry reads the exp claim without verifying the signature.
func decodeExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}
