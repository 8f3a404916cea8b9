package ports

import (
	"context"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// SessionStore persists the bearer token and user record between runs.
// Load returns (nil, nil) when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context) (*domain.PersistedSession, error)
	Save(ctx context.Context, s domain.PersistedSession) error
	Clear(ctx context.Context) error
}
