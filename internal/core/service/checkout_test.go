package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bookshelf/storefront/internal/core/domain"
)

func newCheckout(session *fixedSession, bills *stubBills) (*CheckoutCoordinator, *CartManager) {
	cart := newCart()
	return NewCheckoutCoordinator(session, cart, bills, zerolog.Nop()), cart
}

func TestBuildTransactionRequest_WireShape(t *testing.T) {
	contents := domain.CartContents{
		Purchases: []domain.PurchaseEntry{{BookID: 1, Quantity: 3}},
		Loans:     []domain.LoanEntry{{BookID: 2}, {BookID: 2}},
	}

	data, err := json.Marshal(BuildTransactionRequest(7, contents))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"user": {"id": 7},
		"transactions": [
			{"type": "purchase", "items": [{"book": {"id": 1}, "quantity": 3}]},
			{"type": "loan", "book": {"id": 2}},
			{"type": "loan", "book": {"id": 2}}
		]
	}`, string(data))
}

func TestBuildTransactionRequest_PurchaseLinesAreNotMerged(t *testing.T) {
	contents := domain.CartContents{
		Purchases: []domain.PurchaseEntry{{BookID: 1, Quantity: 1}, {BookID: 1, Quantity: 2}},
	}

	req := BuildTransactionRequest(1, contents)

	require.Len(t, req.Transactions, 1)
	require.Len(t, req.Transactions[0].Items, 2)
	assert.Equal(t, 1, req.Transactions[0].Items[0].Quantity)
	assert.Equal(t, 2, req.Transactions[0].Items[1].Quantity)
}

func TestBuildTransactionRequest_LoansOnly(t *testing.T) {
	req := BuildTransactionRequest(1, domain.CartContents{Loans: []domain.LoanEntry{{BookID: 4}}})

	require.Len(t, req.Transactions, 1)
	assert.Equal(t, domain.TransactionLoan, req.Transactions[0].Type)
	assert.Nil(t, req.Transactions[0].Items)
}

func TestBuildTransactionRequest_Shape(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		nPurchases := rapid.IntRange(0, 8).Draw(t, "purchases")
		nLoans := rapid.IntRange(0, 8).Draw(t, "loans")
		var contents domain.CartContents
		for i := 0; i < nPurchases; i++ {
			contents.Purchases = append(contents.Purchases, domain.PurchaseEntry{
				BookID:   rapid.Int64Range(1, 3).Draw(t, "pid"),
				Quantity: rapid.IntRange(1, 5).Draw(t, "qty"),
			})
		}
		for i := 0; i < nLoans; i++ {
			contents.Loans = append(contents.Loans, domain.LoanEntry{BookID: rapid.Int64Range(1, 3).Draw(t, "lid")})
		}

		req := BuildTransactionRequest(42, contents)

		want := nLoans
		if nPurchases > 0 {
			want++
		}
		if len(req.Transactions) != want {
			t.Fatalf("got %d sub-transactions, want %d", len(req.Transactions), want)
		}
		loans := req.Transactions
		if nPurchases > 0 {
			if req.Transactions[0].Type != domain.TransactionPurchase || len(req.Transactions[0].Items) != nPurchases {
				t.Fatalf("first sub-transaction must aggregate every purchase line")
			}
			loans = req.Transactions[1:]
		}
		for i, l := range loans {
			if l.Type != domain.TransactionLoan || l.Book == nil || l.Book.ID != contents.Loans[i].BookID {
				t.Fatalf("loan %d out of order or malformed: %+v", i, l)
			}
		}
		if req.User.ID != 42 {
			t.Fatalf("user id not attached")
		}
	})
}

func TestCheckout_IdleBeforeFirstAttempt(t *testing.T) {
	co, _ := newCheckout(authenticatedAs(7, domain.RoleUser), &stubBills{})

	assert.Equal(t, domain.CheckoutIdle, co.State())
	assert.Equal(t, domain.CheckoutIdle, co.LastOutcome())

	_, err := co.Checkout(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Equal(t, domain.CheckoutIdle, co.LastOutcome())
}

func TestCheckout_SuccessClearsCart(t *testing.T) {
	bills := &stubBills{createFn: func(context.Context, string, domain.TransactionRequest) (*domain.Bill, error) {
		return &domain.Bill{ID: 501, Total: 25}, nil
	}}
	co, cart := newCheckout(authenticatedAs(7, domain.RoleUser), bills)
	require.NoError(t, cart.AddPurchase(domain.Book{ID: 1, Price: 10}, 2))
	require.NoError(t, cart.AddLoan(domain.Book{ID: 2, RentalPrice: 5}))

	bill, err := co.Checkout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(501), bill.ID)
	assert.Empty(t, cart.Contents().Purchases)
	assert.Empty(t, cart.Contents().Loans)
	assert.False(t, cart.Locked())
	assert.Equal(t, domain.CheckoutIdle, co.State())
	assert.Equal(t, domain.CheckoutCompleted, co.LastOutcome())

	require.Len(t, bills.requests, 1)
	assert.Equal(t, int64(7), bills.requests[0].User.ID)
	assert.Equal(t, "tok-USER", bills.tokens[0])
}

func TestCheckout_FailureLeavesCartIntact(t *testing.T) {
	backendErr := errors.New("stock exhausted")
	bills := &stubBills{createFn: func(context.Context, string, domain.TransactionRequest) (*domain.Bill, error) {
		return nil, backendErr
	}}
	co, cart := newCheckout(authenticatedAs(7, domain.RoleUser), bills)
	require.NoError(t, cart.AddPurchase(book(1, 10, 1), 2))
	require.NoError(t, cart.AddLoan(book(2, 3, 5)))
	before := cart.Contents()

	_, err := co.Checkout(context.Background())

	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, before, cart.Contents())
	assert.False(t, cart.Locked())
	assert.Equal(t, domain.CheckoutFailed, co.LastOutcome())

	// a retry resubmits the full cart
	bills.createFn = func(context.Context, string, domain.TransactionRequest) (*domain.Bill, error) {
		return &domain.Bill{ID: 1}, nil
	}
	_, err = co.Checkout(context.Background())
	require.NoError(t, err)
	require.Len(t, bills.requests, 2)
	assert.Equal(t, bills.requests[0], bills.requests[1])
}

func TestCheckout_RequiresAuthentication(t *testing.T) {
	bills := &stubBills{}
	co, cart := newCheckout(&fixedSession{}, bills)
	require.NoError(t, cart.AddLoan(book(1, 1, 1)))

	_, err := co.Checkout(context.Background())

	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Empty(t, bills.requests)
	assert.Len(t, cart.Contents().Loans, 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	bills := &stubBills{}
	co, cart := newCheckout(authenticatedAs(1, domain.RoleUser), bills)

	_, err := co.Checkout(context.Background())

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, bills.requests)
	assert.False(t, cart.Locked())
}

func TestCheckout_CartLockedWhileSubmitting(t *testing.T) {
	entered := make(chan struct{})
	proceed := make(chan struct{})
	bills := &stubBills{createFn: func(context.Context, string, domain.TransactionRequest) (*domain.Bill, error) {
		close(entered)
		<-proceed
		return &domain.Bill{ID: 9}, nil
	}}
	co, cart := newCheckout(authenticatedAs(1, domain.RoleUser), bills)
	require.NoError(t, cart.AddPurchase(book(1, 2, 1), 1))

	done := make(chan error, 1)
	go func() {
		_, err := co.Checkout(context.Background())
		done <- err
	}()
	<-entered

	assert.Equal(t, domain.CheckoutSubmitting, co.State())
	assert.ErrorIs(t, cart.AddLoan(book(2, 1, 1)), domain.ErrCartLocked)
	_, err := co.Checkout(context.Background())
	assert.ErrorIs(t, err, domain.ErrCheckoutInProgress)

	close(proceed)
	require.NoError(t, <-done)

	assert.True(t, cart.Contents().IsEmpty())
	require.NoError(t, cart.AddLoan(book(2, 1, 1)), "cart unlocks after submission")
}
