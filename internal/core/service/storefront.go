package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
)

// Storefront is the application root: it owns one session, one cart and one
// checkout coordinator and hands them to whichever surface needs them.
type Storefront struct {
	Session  *SessionManager
	Cart     *CartManager
	Checkout *CheckoutCoordinator
	Catalog  *CatalogService
	Billing  *BillingService
	Account  *AccountService
}

// New wires every component around a single backend and session store.
func New(backend ports.LibraryBackend, store ports.SessionStore, log zerolog.Logger, opts ...SessionOption) *Storefront {
	session := NewSessionManager(store, backend, log.With().Str("component", "session").Logger(), opts...)
	cart := NewCartManager(log.With().Str("component", "cart").Logger())
	return &Storefront{
		Session:  session,
		Cart:     cart,
		Checkout: NewCheckoutCoordinator(session, cart, backend, log.With().Str("component", "checkout").Logger()),
		Catalog:  NewCatalogService(session, backend, log.With().Str("component", "catalog").Logger()),
		Billing:  NewBillingService(session, backend),
		Account:  NewAccountService(session, backend, backend, log.With().Str("component", "account").Logger()),
	}
}

// AddPurchase looks the book up and adds quantity copies to the cart. Only
// authenticated users may fill a cart, and quantity must lie within stock.
func (s *Storefront) AddPurchase(ctx context.Context, bookID int64, quantity int) (*domain.Book, error) {
	if !s.Session.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	book, err := s.Catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if quantity < 1 || quantity > book.Stock {
		return nil, fmt.Errorf("add %d of book %d (stock %d): %w", quantity, bookID, book.Stock, domain.ErrInvalidQuantity)
	}
	if err := s.Cart.AddPurchase(*book, quantity); err != nil {
		return nil, err
	}
	return book, nil
}

// AddLoan looks the book up and adds one rental of it to the cart.
func (s *Storefront) AddLoan(ctx context.Context, bookID int64) (*domain.Book, error) {
	if !s.Session.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	book, err := s.Catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := s.Cart.AddLoan(*book); err != nil {
		return nil, err
	}
	return book, nil
}

// CartView is the cart as presented to a user.
type CartView struct {
	Purchases []domain.PurchaseEntry `json:"purchases"`
	Loans     []LoanView             `json:"loans"`
	Total     string                 `json:"total"`
	Locked    bool                   `json:"locked"`
}

// LoanView is a loan line with its due date.
type LoanView struct {
	domain.LoanEntry
	DueDate time.Time `json:"dueDate"`
}

// View renders the cart with loan due dates computed from now.
func (s *Storefront) View(now time.Time) CartView {
	contents := s.Cart.Contents()
	loans := make([]LoanView, 0, len(contents.Loans))
	for _, l := range contents.Loans {
		loans = append(loans, LoanView{LoanEntry: l, DueDate: l.DueDate(now)})
	}
	return CartView{
		Purchases: contents.Purchases,
		Loans:     loans,
		Total:     domain.FormatAmount(cartTotal(contents.Purchases, contents.Loans)),
		Locked:    s.Cart.Locked(),
	}
}
