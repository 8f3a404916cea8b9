// Package memory keeps the storefront session in process memory only.
package memory

import (
	"context"
	"sync"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// SessionStore forgets everything when the process exits.
type SessionStore struct {
	mu      sync.Mutex
	session *domain.PersistedSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (s *SessionStore) Load(_ context.Context) (*domain.PersistedSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, nil
	}
	cp := *s.session
	return &cp, nil
}

func (s *SessionStore) Save(_ context.Context, ps domain.PersistedSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &ps
	return nil
}

func (s *SessionStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
