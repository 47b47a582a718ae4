package domain

import (
	"github.com/shopspring/decimal"
)

// AnalysisStatus reports whether an analysis produced results or lacked data.
// insufficient_data is a normal outcome carried in the success payload, not an error.
type AnalysisStatus string

const (
	AnalysisSuccess          AnalysisStatus = "success"
	AnalysisInsufficientData AnalysisStatus = "insufficient_data"
)

// CategorySpending is one row of a spending-by-category breakdown.
// TotalAmount is the absolute value of category expenses in the window;
// Percentage is this category's share of total spend, rounded to 2 places.
type CategorySpending struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// MonthlyTrend is one month's row of the spending trend series.
// Categories carries a column for every category seen anywhere in the
// analysis window; months where a category had no spend hold zero.
type MonthlyTrend struct {
	Month       string                     `json:"month"` // YYYY-MM label
	TotalAmount decimal.Decimal            `json:"totalAmount"`
	Categories  map[string]decimal.Decimal `json:"categories"`
}

// ExpenseDetail describes a single expense transaction in analysis output.
// Amount is the absolute value of the (negative) transaction amount.
type ExpenseDetail struct {
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Date          string          `json:"date"` // YYYY-MM-DD
}

// BudgetComparisonRow compares one category's budget allocation against
// actual spend during the budget period. Categories with spend but no
// allocation carry Unbudgeted=true; their share of the zero allocation is
// unbounded, so Percentage is left at zero and callers must consult the
// flag instead. Difference is BudgetAmount - ActualAmount, so negative
// values mean the category is over budget.
type BudgetComparisonRow struct {
	Category     string          `json:"category"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
	Difference   decimal.Decimal `json:"difference"`
	Percentage   decimal.Decimal `json:"percentage"`
	Unbudgeted   bool            `json:"unbudgeted"`
}
