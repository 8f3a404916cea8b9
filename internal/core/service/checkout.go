package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bookshelf/storefront/internal/core/domain"
	"github.com/bookshelf/storefront/internal/core/ports"
)

// CheckoutCoordinator submits the cart as one bill.
//
//	idle → submitting → completed → idle (cart emptied)
//	                  ↘ failed    → idle (cart untouched)
type CheckoutCoordinator struct {
	session ports.SessionService
	cart    *CartManager
	bills   ports.BillBackend
	log     zerolog.Logger

	mu    sync.Mutex
	state domain.CheckoutState
	last  domain.CheckoutState
}

func NewCheckoutCoordinator(session ports.SessionService, cart *CartManager, bills ports.BillBackend, log zerolog.Logger) *CheckoutCoordinator {
	return &CheckoutCoordinator{
		session: session,
		cart:    cart,
		bills:   bills,
		log:     log,
		state:   domain.CheckoutIdle,
		last:    domain.CheckoutIdle,
	}
}

// Checkout builds the transaction request from the cart, submits it once and
// empties the cart on success. On failure the cart is left exactly as it was
// and the backend error is returned; nothing is retried.
func (c *CheckoutCoordinator) Checkout(ctx context.Context) (*domain.Bill, error) {
	sess := c.session.Current()
	if !sess.Authenticated || sess.User == nil {
		return nil, domain.ErrUnauthenticated
	}

	c.mu.Lock()
	if c.state == domain.CheckoutSubmitting {
		c.mu.Unlock()
		return nil, domain.ErrCheckoutInProgress
	}
	contents, err := c.cart.acquire()
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if contents.IsEmpty() {
		c.cart.release(false)
		c.mu.Unlock()
		return nil, domain.ErrEmptyCart
	}
	c.state = domain.CheckoutSubmitting
	c.mu.Unlock()

	req := BuildTransactionRequest(sess.User.ID, contents)
	bill, err := c.bills.CreateBill(ctx, sess.Token, req)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.cart.release(false)
		c.last = domain.CheckoutFailed
		c.state = domain.CheckoutIdle
		c.log.Error().Err(err).
			Int64("user_id", sess.User.ID).
			Int("lines", contents.Len()).
			Msg("checkout failed")
		return nil, fmt.Errorf("checkout: %w", err)
	}

	c.cart.release(true)
	c.last = domain.CheckoutCompleted
	c.state = domain.CheckoutIdle

	logEvent := c.log.Info().Int64("user_id", sess.User.ID).Int("lines", contents.Len())
	if bill != nil {
		logEvent = logEvent.Int64("bill_id", bill.ID).Float64("total", bill.Total)
	}
	logEvent.Msg("checkout completed")

	return bill, nil
}

// State is the current state machine position: idle or submitting.
func (c *CheckoutCoordinator) State() domain.CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastOutcome is completed or failed for the most recent attempt, or idle
// before the first one.
func (c *CheckoutCoordinator) LastOutcome() domain.CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// BuildTransactionRequest maps cart contents to the bills payload: one
// purchase sub-transaction carrying every purchase line (unmerged), followed
// by one loan sub-transaction per loan line, in cart order.
func BuildTransactionRequest(userID int64, contents domain.CartContents) domain.TransactionRequest {
	req := domain.TransactionRequest{
		User:         domain.UserRef{ID: userID},
		Transactions: make([]domain.SubTransaction, 0, len(contents.Loans)+1),
	}

	if len(contents.Purchases) > 0 {
		items := make([]domain.TransactionItem, 0, len(contents.Purchases))
		for _, p := range contents.Purchases {
			items = append(items, domain.TransactionItem{
				Book:     domain.BookRef{ID: p.BookID},
				Quantity: p.Quantity,
			})
		}
		req.Transactions = append(req.Transactions, domain.SubTransaction{
			Type:  domain.TransactionPurchase,
			Items: items,
		})
	}

	for _, l := range contents.Loans {
		req.Transactions = append(req.Transactions, domain.SubTransaction{
			Type: domain.TransactionLoan,
			Book: &domain.BookRef{ID: l.BookID},
		})
	}

	return req
}
