package ports

import (
	"context"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// AuthBackend is the authentication half of the library backend.
type AuthBackend interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	Register(ctx context.Context, profile domain.Profile) (*domain.User, error)
}
