package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a financial plan for a specific period.
type Budget struct {
	BudgetID     string          `json:"budgetID"` // Primary Key (UUID)
	UserID       string          `json:"userID"`   // FK -> User.userID (Not Null)
	Name         string          `json:"name"`
	StartDate    time.Time       `json:"startDate"`
	EndDate      time.Time       `json:"endDate"`
	TotalLimit   decimal.Decimal `json:"totalLimit"`
	CurrencyCode string          `json:"currencyCode"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

// BudgetItem allocates an amount to a single category within a budget.
type BudgetItem struct {
	BudgetItemID string          `json:"budgetItemID"` // Primary Key (UUID)
	BudgetID     string          `json:"budgetID"`     // FK -> Budget.budgetID (Not Null)
	CategoryID   string          `json:"categoryID"`   // FK -> Category.categoryID (Not Null)
	Amount       decimal.Decimal `json:"amount"`
	AuditFields
}
