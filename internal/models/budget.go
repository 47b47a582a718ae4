package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget mirrors the budgets table.
type Budget struct {
	BudgetID     string          `db:"budget_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      time.Time       `db:"end_date"`
	TotalLimit   decimal.Decimal `db:"total_limit"`
	CurrencyCode string          `db:"currency_code"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}

// BudgetItem mirrors the budget_items table.
type BudgetItem struct {
	BudgetItemID string          `db:"budget_item_id"`
	BudgetID     string          `db:"budget_id"`
	CategoryID   string          `db:"category_id"`
	Amount       decimal.Decimal `db:"amount"`
	AuditFields
}
