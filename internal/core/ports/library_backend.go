package ports

import (
	"context"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// Every method takes the caller's bearer token; an empty token sends an
// anonymous request and leaves rejection to the backend.

// BookBackend covers the catalog resource.
type BookBackend interface {
	ListBooks(ctx context.Context, token string) ([]domain.Book, error)
	GetBook(ctx context.Context, token string, id int64) (*domain.Book, error)
	CreateBook(ctx context.Context, token string, in domain.BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, token string, id int64, in domain.BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, token string, id int64) error
}

// BillBackend covers the bills (transactions) resource.
type BillBackend interface {
	CreateBill(ctx context.Context, token string, req domain.TransactionRequest) (*domain.Bill, error)
	GetBill(ctx context.Context, token string, id int64) (*domain.Bill, error)
	ListUserBills(ctx context.Context, token string, userID int64) ([]domain.Bill, error)
	ListAllBills(ctx context.Context, token string) ([]domain.Bill, error)
}

// UserBackend covers the profile and user administration resources.
type UserBackend interface {
	GetProfile(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, token string, in domain.ProfileUpdate) (*domain.User, error)
	DeleteProfile(ctx context.Context, token string) error
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	GetUser(ctx context.Context, token string, id int64) (*domain.User, error)
	DeleteUser(ctx context.Context, token string, id int64) error
	UpdateUserRole(ctx context.Context, token string, id int64, role domain.Role) (*domain.User, error)
	ListUserBooks(ctx context.Context, token string, id int64) ([]domain.Book, error)
}

// LibraryBackend is the full REST surface consumed by the storefront.
type LibraryBackend interface {
	AuthBackend
	BookBackend
	BillBackend
	UserBackend
}
