package service

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bookshelf/storefront/internal/core/domain"
)

func newCart() *CartManager {
	return NewCartManager(zerolog.Nop())
}

func TestCart_TotalOfPurchaseAndLoan(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddPurchase(domain.Book{ID: 1, Price: 10}, 2))
	require.NoError(t, c.AddLoan(domain.Book{ID: 2, RentalPrice: 5}))

	assert.Equal(t, 25.0, c.Total())
	assert.Equal(t, "25.00", domain.FormatAmount(c.Total()))
}

func TestCart_TotalRoundsToCents(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddPurchase(domain.Book{ID: 1, Price: 0.1}, 3))
	require.NoError(t, c.AddLoan(domain.Book{ID: 2, RentalPrice: 0.2}))

	assert.Equal(t, 0.5, c.Total())
}

func TestCart_DuplicatesStaySeparate(t *testing.T) {
	c := newCart()
	b := book(1, 4, 1)
	require.NoError(t, c.AddPurchase(b, 1))
	require.NoError(t, c.AddPurchase(b, 2))
	require.NoError(t, c.AddLoan(b))
	require.NoError(t, c.AddLoan(b))

	got := c.Contents()
	require.Len(t, got.Purchases, 2)
	require.Len(t, got.Loans, 2)
	assert.Equal(t, 1, got.Purchases[0].Quantity)
	assert.Equal(t, 2, got.Purchases[1].Quantity)
	assert.Equal(t, 14.0, c.Total())
}

func TestCart_RemoveDropsEveryMatchingLineOfOneKind(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddPurchase(book(1, 5, 1), 1))
	require.NoError(t, c.AddPurchase(book(2, 7, 1), 1))
	require.NoError(t, c.AddPurchase(book(1, 5, 1), 3))
	require.NoError(t, c.AddLoan(book(1, 5, 1)))

	require.NoError(t, c.Remove(domain.KindPurchases, 1))

	got := c.Contents()
	require.Len(t, got.Purchases, 1)
	assert.Equal(t, int64(2), got.Purchases[0].BookID)
	require.Len(t, got.Loans, 1, "loans of the same book are untouched")
}

func TestCart_RemoveTwiceIsIdempotent(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddPurchase(book(1, 5, 1), 1))
	require.NoError(t, c.AddPurchase(book(2, 5, 1), 1))

	require.NoError(t, c.Remove(domain.KindPurchases, 1))
	before := c.Contents()
	require.NoError(t, c.Remove(domain.KindPurchases, 1))

	assert.Equal(t, before, c.Contents())
}

func TestCart_RemoveUnknownKind(t *testing.T) {
	c := newCart()
	assert.ErrorIs(t, c.Remove("wishlist", 1), domain.ErrUnknownCartKind)
}

func TestCart_ClearIsIdempotent(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddPurchase(book(1, 5, 1), 4))
	require.NoError(t, c.AddLoan(book(2, 5, 3)))

	require.NoError(t, c.Clear())
	require.NoError(t, c.Clear())

	assert.Equal(t, 0.0, c.Total())
	assert.Equal(t, "0.00", domain.FormatAmount(c.Total()))
	assert.True(t, c.Contents().IsEmpty())
}

func TestCart_ContentsIsACopy(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddPurchase(book(1, 5, 1), 1))

	snap := c.Contents()
	snap.Purchases[0].Quantity = 99

	assert.Equal(t, 1, c.Contents().Purchases[0].Quantity)
}

func TestCart_LockedWhileAcquired(t *testing.T) {
	c := newCart()
	require.NoError(t, c.AddLoan(book(1, 5, 2)))

	_, err := c.acquire()
	require.NoError(t, err)
	assert.True(t, c.Locked())

	assert.ErrorIs(t, c.AddPurchase(book(2, 1, 1), 1), domain.ErrCartLocked)
	assert.ErrorIs(t, c.AddLoan(book(2, 1, 1)), domain.ErrCartLocked)
	assert.ErrorIs(t, c.Remove(domain.KindLoans, 1), domain.ErrCartLocked)
	assert.ErrorIs(t, c.Clear(), domain.ErrCartLocked)
	_, err = c.acquire()
	assert.ErrorIs(t, err, domain.ErrCartLocked)

	c.release(false)
	assert.False(t, c.Locked())
	assert.Len(t, c.Contents().Loans, 1)
}

// cartOp is one generated mutation.
type cartOp struct {
	kind     int // 0 purchase, 1 loan, 2 remove purchases, 3 remove loans
	book     domain.Book
	quantity int
}

func genBook() *rapid.Generator[domain.Book] {
	return rapid.Custom(func(t *rapid.T) domain.Book {
		return domain.Book{
			ID:          rapid.Int64Range(1, 5).Draw(t, "id"),
			Price:       float64(rapid.IntRange(0, 10000).Draw(t, "price_cents")) / 100,
			RentalPrice: float64(rapid.IntRange(0, 5000).Draw(t, "rental_cents")) / 100,
			Stock:       10,
		}
	})
}

func genOp() *rapid.Generator[cartOp] {
	return rapid.Custom(func(t *rapid.T) cartOp {
		return cartOp{
			kind:     rapid.IntRange(0, 3).Draw(t, "kind"),
			book:     genBook().Draw(t, "book"),
			quantity: rapid.IntRange(1, 10).Draw(t, "quantity"),
		}
	})
}

// TestCart_TotalMatchesModel replays random mutations against a plain model
// and checks the manager's total equals the model's pure sum.
func TestCart_TotalMatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := newCart()
		var purchases []domain.PurchaseEntry
		var loans []domain.LoanEntry

		for _, op := range rapid.SliceOfN(genOp(), 0, 40).Draw(t, "ops") {
			switch op.kind {
			case 0:
				_ = c.AddPurchase(op.book, op.quantity)
				purchases = append(purchases, domain.PurchaseEntry{BookID: op.book.ID, Quantity: op.quantity, Book: op.book})
			case 1:
				_ = c.AddLoan(op.book)
				loans = append(loans, domain.LoanEntry{BookID: op.book.ID, Book: op.book})
			case 2:
				_ = c.Remove(domain.KindPurchases, op.book.ID)
				kept := purchases[:0:0]
				for _, p := range purchases {
					if p.BookID != op.book.ID {
						kept = append(kept, p)
					}
				}
				purchases = kept
			case 3:
				_ = c.Remove(domain.KindLoans, op.book.ID)
				kept := loans[:0:0]
				for _, l := range loans {
					if l.BookID != op.book.ID {
						kept = append(kept, l)
					}
				}
				loans = kept
			}
		}

		var want float64
		for _, p := range purchases {
			want += p.Book.Price * float64(p.Quantity)
		}
		for _, l := range loans {
			want += l.Book.RentalPrice
		}
		want = math.Round(want*100) / 100

		if got := c.Total(); got != want {
			t.Fatalf("total %v, model %v", got, want)
		}
		if got := c.Total(); got < 0 {
			t.Fatalf("negative total %v", got)
		}
		if n := c.Contents().Len(); n != len(purchases)+len(loans) {
			t.Fatalf("cart has %d lines, model %d", n, len(purchases)+len(loans))
		}
	})
}
