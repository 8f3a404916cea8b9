package service

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bookshelf/storefront/internal/core/domain"
)

// CartManager holds pending purchase and loan lines for a single checkout.
// Sequences are replaced on every mutation; entries are never edited in
// place. While a checkout is submitting the cart is locked and every
// mutation fails with domain.ErrCartLocked.
type CartManager struct {
	log zerolog.Logger

	mu        sync.RWMutex
	purchases []domain.PurchaseEntry
	loans     []domain.LoanEntry
	locked    bool
}

func NewCartManager(log zerolog.Logger) *CartManager {
	return &CartManager{log: log}
}

// AddPurchase appends a purchase line. Lines for the same book are not
// merged, and quantity is the caller's to validate.
func (c *CartManager) AddPurchase(book domain.Book, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return domain.ErrCartLocked
	}

	next := make([]domain.PurchaseEntry, len(c.purchases), len(c.purchases)+1)
	copy(next, c.purchases)
	c.purchases = append(next, domain.PurchaseEntry{BookID: book.ID, Quantity: quantity, Book: book})

	c.log.Debug().Int64("book_id", book.ID).Int("quantity", quantity).Msg("purchase added to cart")
	return nil
}

// AddLoan appends a loan line. Repeated loans of one book stay separate.
func (c *CartManager) AddLoan(book domain.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return domain.ErrCartLocked
	}

	next := make([]domain.LoanEntry, len(c.loans), len(c.loans)+1)
	copy(next, c.loans)
	c.loans = append(next, domain.LoanEntry{BookID: book.ID, Book: book})

	c.log.Debug().Int64("book_id", book.ID).Msg("loan added to cart")
	return nil
}

// Remove drops every line of kind for bookID. Unknown ids are a no-op.
func (c *CartManager) Remove(kind domain.CartKind, bookID int64) error {
	if !kind.Valid() {
		return domain.ErrUnknownCartKind
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return domain.ErrCartLocked
	}

	switch kind {
	case domain.KindPurchases:
		next := make([]domain.PurchaseEntry, 0, len(c.purchases))
		for _, p := range c.purchases {
			if p.BookID != bookID {
				next = append(next, p)
			}
		}
		c.purchases = next
	case domain.KindLoans:
		next := make([]domain.LoanEntry, 0, len(c.loans))
		for _, l := range c.loans {
			if l.BookID != bookID {
				next = append(next, l)
			}
		}
		c.loans = next
	}

	c.log.Debug().Str("kind", string(kind)).Int64("book_id", bookID).Msg("removed from cart")
	return nil
}

// Clear empties both sequences.
func (c *CartManager) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return domain.ErrCartLocked
	}
	c.clearLocked()
	return nil
}

// Total is price × quantity over purchases plus rental price over loans,
// rounded to cents. It is recomputed on every call.
func (c *CartManager) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cartTotal(c.purchases, c.loans)
}

// Contents returns a copy of both sequences.
func (c *CartManager) Contents() domain.CartContents {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Locked reports whether a checkout currently holds the cart.
func (c *CartManager) Locked() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locked
}

// acquire locks the cart for a checkout and returns what is being submitted.
func (c *CartManager) acquire() (domain.CartContents, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return domain.CartContents{}, domain.ErrCartLocked
	}
	c.locked = true
	return c.snapshotLocked(), nil
}

// release unlocks the cart, emptying it when the submission succeeded.
func (c *CartManager) release(submitted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if submitted {
		c.clearLocked()
	}
	c.locked = false
}

func (c *CartManager) clearLocked() {
	c.purchases = []domain.PurchaseEntry{}
	c.loans = []domain.LoanEntry{}
}

func (c *CartManager) snapshotLocked() domain.CartContents {
	out := domain.CartContents{
		Purchases: make([]domain.PurchaseEntry, len(c.purchases)),
		Loans:     make([]domain.LoanEntry, len(c.loans)),
	}
	copy(out.Purchases, c.purchases)
	copy(out.Loans, c.loans)
	return out
}

func cartTotal(purchases []domain.PurchaseEntry, loans []domain.LoanEntry) float64 {
	var sum float64
	for _, p := range purchases {
		sum += p.Subtotal()
	}
	for _, l := range loans {
		sum += l.Book.RentalPrice
	}
	return roundCents(sum)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
