package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Account mirrors the accounts table.
type Account struct {
	AccountID    string          `db:"account_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	AccountType  string          `db:"account_type"`
	Institution  sql.NullString  `db:"institution"`
	Balance      decimal.Decimal `db:"balance"`
	CurrencyCode string          `db:"currency_code"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
