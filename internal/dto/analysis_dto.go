package dto

import (
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategorySpendingResponse represents one category row in the spending breakdown response
type CategorySpendingResponse struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Percentage  decimal.Decimal `json:"percentage"`
}

// SpendingByCategoryResponse represents the spending-by-category report response
type SpendingByCategoryResponse struct {
	StartDate  string                     `json:"startDate,omitempty"`
	EndDate    string                     `json:"endDate,omitempty"`
	Categories []CategorySpendingResponse `json:"categories"`
	Total      decimal.Decimal            `json:"total"`
}

// MonthlyTrendResponse represents one month's row in the spending trends response
type MonthlyTrendResponse struct {
	Month       string                     `json:"month"`
	TotalAmount decimal.Decimal            `json:"totalAmount"`
	Categories  map[string]decimal.Decimal `json:"categories"`
}

// MonthlyTrendsResponse represents the spending trends report response
type MonthlyTrendsResponse struct {
	Months []MonthlyTrendResponse `json:"months"`
}

// ExpenseDetailResponse represents one expense in the largest-expenses response
type ExpenseDetailResponse struct {
	TransactionID string          `json:"transactionID"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
}

// LargestExpensesResponse represents the largest-expenses report response
type LargestExpensesResponse struct {
	Expenses []ExpenseDetailResponse `json:"expenses"`
}

// BudgetComparisonRowResponse represents one category row in the budget comparison response
type BudgetComparisonRowResponse struct {
	Category     string          `json:"category"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
	Difference   decimal.Decimal `json:"difference"`
	Percentage   decimal.Decimal `json:"percentage"`
	Unbudgeted   bool            `json:"unbudgeted"`
}

// BudgetComparisonResponse represents the budget comparison report response
type BudgetComparisonResponse struct {
	BudgetID string                        `json:"budgetID"`
	Rows     []BudgetComparisonRowResponse `json:"rows"`
}

// ToSpendingByCategoryResponse converts domain category spending rows to a DTO response
func ToSpendingByCategoryResponse(rows []domain.CategorySpending, from, to *time.Time) SpendingByCategoryResponse {
	response := SpendingByCategoryResponse{
		Categories: make([]CategorySpendingResponse, len(rows)),
	}
	if from != nil {
		response.StartDate = from.Format("2006-01-02")
	}
	if to != nil {
		response.EndDate = to.Format("2006-01-02")
	}

	total := decimal.Zero
	for i, row := range rows {
		response.Categories[i] = CategorySpendingResponse{
			Category:    row.Category,
			TotalAmount: row.TotalAmount,
			Percentage:  row.Percentage,
		}
		total = total.Add(row.TotalAmount)
	}
	response.Total = total

	return response
}

// ToMonthlyTrendsResponse converts domain monthly trend rows to a DTO response
func ToMonthlyTrendsResponse(trends []domain.MonthlyTrend) MonthlyTrendsResponse {
	response := MonthlyTrendsResponse{
		Months: make([]MonthlyTrendResponse, len(trends)),
	}
	for i, trend := range trends {
		response.Months[i] = MonthlyTrendResponse{
			Month:       trend.Month,
			TotalAmount: trend.TotalAmount,
			Categories:  trend.Categories,
		}
	}
	return response
}

// ToLargestExpensesResponse converts domain expense details to a DTO response
func ToLargestExpensesResponse(expenses []domain.ExpenseDetail) LargestExpensesResponse {
	response := LargestExpensesResponse{
		Expenses: make([]ExpenseDetailResponse, len(expenses)),
	}
	for i, exp := range expenses {
		response.Expenses[i] = ExpenseDetailResponse{
			TransactionID: exp.TransactionID,
			Amount:        exp.Amount,
			Description:   exp.Description,
			Category:      exp.Category,
			Date:          exp.Date,
		}
	}
	return response
}

// ToBudgetComparisonResponse converts domain budget comparison rows to a DTO response
func ToBudgetComparisonResponse(budgetID string, rows []domain.BudgetComparisonRow) BudgetComparisonResponse {
	response := BudgetComparisonResponse{
		BudgetID: budgetID,
		Rows:     make([]BudgetComparisonRowResponse, len(rows)),
	}
	for i, row := range rows {
		response.Rows[i] = BudgetComparisonRowResponse{
			Category:     row.Category,
			BudgetAmount: row.BudgetAmount,
			ActualAmount: row.ActualAmount,
			Difference:   row.Difference,
			Percentage:   row.Percentage,
			Unbudgeted:   row.Unbudgeted,
		}
	}
	return response
}
