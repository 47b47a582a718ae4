package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction by the direction of money movement.
type TransactionType string

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"
)

// Transaction represents a single financial movement on an account.
// The amount is signed: positive for inflows, negative for outflows.
// A non-nil TransferAccountID marks the transaction as one leg of a
// transfer between the user's own accounts; such transactions are
// excluded from all spending and income analysis.
type Transaction struct {
	TransactionID     string          `json:"transactionID"`     // Primary Key (UUID)
	AccountID         string          `json:"accountID"`         // FK -> Account.accountID (Not Null)
	CategoryID        *string         `json:"categoryID"`        // FK -> Category.categoryID (Nullable)
	TransferAccountID *string         `json:"transferAccountID"` // FK -> Account.accountID (Nullable)
	Amount            decimal.Decimal `json:"amount"`            // Signed; positive = income, negative = expense
	Description       string          `json:"description"`       // Free text, may be empty
	TransactionDate   time.Time       `json:"transactionDate"`
	Notes             string          `json:"notes"`
	IsRecurring       bool            `json:"isRecurring"`
	RecurrencePattern string          `json:"recurrencePattern"` // monthly, weekly, etc.
	AuditFields
}

// Type derives the transaction type from the transfer marker and amount sign.
func (t Transaction) Type() TransactionType {
	if t.TransferAccountID != nil {
		return Transfer
	}
	if t.Amount.Sign() >= 0 {
		return Income
	}
	return Expense
}

// TransactionFilter narrows a transaction listing. Nil/zero fields are ignored.
type TransactionFilter struct {
	AccountID  string
	CategoryID string
	StartDate  *time.Time
	EndDate    *time.Time
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	Type       TransactionType
	Limit      int
	Offset     int

	// Cursor pagination; both set when resuming from a page token.
	// Rows strictly before (CursorDate, CursorCreatedAt) in the
	// date-descending ordering are returned.
	CursorDate      *time.Time
	CursorCreatedAt *time.Time
}
