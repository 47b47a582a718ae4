package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table.
// Amount is signed: positive for income, negative for expense. A non-null
// transfer_account_id marks one leg of an inter-account transfer.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	AccountID         string          `db:"account_id"`
	CategoryID        sql.NullString  `db:"category_id"`
	TransferAccountID sql.NullString  `db:"transfer_account_id"`
	Amount            decimal.Decimal `db:"amount"`
	Description       string          `db:"description"`
	TransactionDate   time.Time       `db:"transaction_date"`
	Notes             string          `db:"notes"`
	IsRecurring       bool            `db:"is_recurring"`
	RecurrencePattern sql.NullString  `db:"recurrence_pattern"`
	AuditFields
}
