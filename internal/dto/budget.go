package dto

import (
	"time"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetItemRequest allocates an amount to a category within a budget request.
type BudgetItemRequest struct {
	CategoryID string          `json:"categoryID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// CreateBudgetRequest defines the data needed to create a new budget.
type CreateBudgetRequest struct {
	Name         string              `json:"name" binding:"required"`
	StartDate    time.Time           `json:"startDate" binding:"required"`
	EndDate      time.Time           `json:"endDate" binding:"required"`
	TotalLimit   decimal.Decimal     `json:"totalLimit"`
	CurrencyCode string              `json:"currencyCode" binding:"required,len=3"`
	Items        []BudgetItemRequest `json:"items" binding:"dive"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
// A non-nil Items slice replaces the budget's allocations wholesale.
type UpdateBudgetRequest struct {
	Name       *string             `json:"name"`
	StartDate  *time.Time          `json:"startDate"`
	EndDate    *time.Time          `json:"endDate"`
	TotalLimit *decimal.Decimal    `json:"totalLimit"`
	IsActive   *bool               `json:"isActive"`
	Items      []BudgetItemRequest `json:"items" binding:"omitempty,dive"`
}

// BudgetItemResponse defines the data returned for a budget allocation.
type BudgetItemResponse struct {
	BudgetItemID string          `json:"budgetItemID"`
	CategoryID   string          `json:"categoryID"`
	Amount       decimal.Decimal `json:"amount"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID     string               `json:"budgetID"`
	Name         string               `json:"name"`
	StartDate    time.Time            `json:"startDate"`
	EndDate      time.Time            `json:"endDate"`
	TotalLimit   decimal.Decimal      `json:"totalLimit"`
	CurrencyCode string               `json:"currencyCode"`
	IsActive     bool                 `json:"isActive"`
	Items        []BudgetItemResponse `json:"items,omitempty"`
}

// ToBudgetResponse converts a domain.Budget and its items to BudgetResponse DTO
func ToBudgetResponse(budget *domain.Budget, items []domain.BudgetItem) BudgetResponse {
	res := BudgetResponse{
		BudgetID:     budget.BudgetID,
		Name:         budget.Name,
		StartDate:    budget.StartDate,
		EndDate:      budget.EndDate,
		TotalLimit:   budget.TotalLimit,
		CurrencyCode: budget.CurrencyCode,
		IsActive:     budget.IsActive,
	}
	if len(items) > 0 {
		res.Items = make([]BudgetItemResponse, len(items))
		for i, item := range items {
			res.Items[i] = BudgetItemResponse{
				BudgetItemID: item.BudgetItemID,
				CategoryID:   item.CategoryID,
				Amount:       item.Amount,
			}
		}
	}
	return res
}

// ToListBudgetResponse converts a slice of domain.Budget to a slice of BudgetResponse DTOs
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b, nil)
	}
	return res
}

// ListBudgetsResponse wraps the list of budgets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}
