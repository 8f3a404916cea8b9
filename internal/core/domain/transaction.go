package domain

import "time"

// TransactionType discriminates sub-transactions of a bill.
type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionLoan     TransactionType = "loan"
)

// TransactionItem is one purchase line of a purchase sub-transaction.
type TransactionItem struct {
	Book     BookRef `json:"book"`
	Quantity int     `json:"quantity"`
}

// SubTransaction is either a purchase (Items set) or a loan (Book set).
type SubTransaction struct {
	Type  TransactionType   `json:"type"`
	Items []TransactionItem `json:"items,omitempty"`
	Book  *BookRef          `json:"book,omitempty"`
}

// TransactionRequest is the checkout payload accepted by the bills resource.
type TransactionRequest struct {
	User         UserRef          `json:"user"`
	Transactions []SubTransaction `json:"transactions"`
}

// BillStatus is the backend's processing state of a bill.
type BillStatus string

const (
	BillPending   BillStatus = "PENDING"
	BillCompleted BillStatus = "COMPLETED"
	BillCancelled BillStatus = "CANCELLED"
)

// BillItem is a purchased line on a persisted bill.
type BillItem struct {
	ID       int64   `json:"id,omitempty"`
	Book     Book    `json:"book"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price,omitempty"`
}

// BillTransaction is a persisted sub-transaction.
type BillTransaction struct {
	ID       int64           `json:"id,omitempty"`
	Type     TransactionType `json:"type"`
	Items    []BillItem      `json:"items,omitempty"`
	Book     *Book           `json:"book,omitempty"`
	Deadline *time.Time      `json:"deadline,omitempty"`
}

// Bill is the backend record created by a successful checkout.
type Bill struct {
	ID           int64             `json:"id"`
	User         UserRef           `json:"user"`
	Date         time.Time         `json:"date"`
	Status       BillStatus        `json:"status,omitempty"`
	Total        float64           `json:"total"`
	Transactions []BillTransaction `json:"transactions,omitempty"`
}

// CheckoutState is the checkout coordinator's state machine position.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutCompleted  CheckoutState = "completed"
	CheckoutFailed     CheckoutState = "failed"
)
