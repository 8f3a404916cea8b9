package domain

import (
	"fmt"
	"time"
)

// CartKind names one of the two cart sequences.
type CartKind string

const (
	KindPurchases CartKind = "purchases"
	KindLoans     CartKind = "loans"
)

// Valid reports whether k names a cart sequence.
func (k CartKind) Valid() bool {
	return k == KindPurchases || k == KindLoans
}

// RentalPeriod is the fixed length of one loan.
const RentalPeriod = 1 // months

// PurchaseEntry is a cart line for buying Quantity copies of a book.
type PurchaseEntry struct {
	BookID   int64 `json:"bookId"`
	Quantity int   `json:"quantity"`
	Book     Book  `json:"book"`
}

// Subtotal is price times quantity.
func (p PurchaseEntry) Subtotal() float64 {
	return p.Book.Price * float64(p.Quantity)
}

// LoanEntry is a cart line for renting one copy of a book for one rental period.
type LoanEntry struct {
	BookID int64 `json:"bookId"`
	Book   Book  `json:"book"`
}

// DueDate returns the date a loan taken at from would be due.
func (l LoanEntry) DueDate(from time.Time) time.Time {
	return from.AddDate(0, RentalPeriod, 0)
}

// CartContents is a snapshot of both cart sequences.
type CartContents struct {
	Purchases []PurchaseEntry `json:"purchases"`
	Loans     []LoanEntry     `json:"loans"`
}

// Len is the number of lines across both sequences.
func (c CartContents) Len() int {
	return len(c.Purchases) + len(c.Loans)
}

// IsEmpty reports whether the cart holds no lines.
func (c CartContents) IsEmpty() bool {
	return c.Len() == 0
}

// FormatAmount renders a monetary amount with two decimals.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
