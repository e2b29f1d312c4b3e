// internal/domain/models/billing.go
package models

import "time"

// CreditTransaction is one signed adjustment to a user's credit balance.
// The balance itself lives on the user document and is $inc-ed in the same
// request that records the transaction.
type CreditTransaction struct {
	TransactionID string    `bson:"transaction_id" json:"transaction_id"`
	UserID        string    `bson:"user_id" json:"user_id"`
	Amount        int64     `bson:"amount" json:"amount"`
	Reason        string    `bson:"reason,omitempty" json:"reason,omitempty"`
	AdjustedBy    string    `bson:"adjusted_by" json:"adjusted_by"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// Invoice statuses.
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceVoid    = "void"
)

// Invoice bills a student.
type Invoice struct {
	InvoiceID   string    `bson:"invoice_id" json:"invoice_id"`
	StudentID   string    `bson:"student_id" json:"student_id"`
	Amount      int64     `bson:"amount" json:"amount"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Status      string    `bson:"status" json:"status"` // pending | paid | void
	CreatedBy   string    `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
