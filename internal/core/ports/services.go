package ports

import (
	"context"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// SessionService is the single source of truth for who is acting.
type SessionService interface {
	Initialize(ctx context.Context) error
	Login(ctx context.Context, creds domain.Credentials) (*domain.LoginResult, error)
	Register(ctx context.Context, profile domain.Profile) (*domain.User, error)
	Logout(ctx context.Context) error
	Current() domain.Session
}

// CartService accumulates purchase and loan intents before checkout.
type CartService interface {
	AddPurchase(book domain.Book, quantity int) error
	AddLoan(book domain.Book) error
	Remove(kind domain.CartKind, bookID int64) error
	Clear() error
	Total() float64
	Contents() domain.CartContents
}

// CheckoutService turns the cart into a bill.
type CheckoutService interface {
	Checkout(ctx context.Context) (*domain.Bill, error)
	State() domain.CheckoutState
	LastOutcome() domain.CheckoutState
}

// CatalogService browses and administers books.
type CatalogService interface {
	ListBooks(ctx context.Context) ([]domain.Book, error)
	GetBook(ctx context.Context, id int64) (*domain.Book, error)
	CreateBook(ctx context.Context, in domain.BookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, id int64, in domain.BookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// BillingService reads bills.
type BillingService interface {
	MyBills(ctx context.Context) ([]domain.Bill, error)
	GetBill(ctx context.Context, id int64) (*domain.Bill, error)
	AllBills(ctx context.Context) ([]domain.Bill, error)
}

// AccountService manages the current profile and, for admins, other users.
type AccountService interface {
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.User, error)
	DeleteProfile(ctx context.Context) error
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ChangeRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error)
	UserBills(ctx context.Context, id int64) ([]domain.Bill, error)
	UserBooks(ctx context.Context, id int64) ([]domain.Book, error)
}
