package services

import (
	"context"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/fintrackhq/fintrack/internal/dto"
)

// BudgetSvcFacade defines operations for managing budgets and their
// per-category allocations.
type BudgetSvcFacade interface {
	// CreateBudget persists a new budget with its items.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)

	// GetBudgetByID retrieves a budget with its items, enforcing ownership.
	GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, []domain.BudgetItem, error)

	// ListBudgets retrieves all budgets owned by the user.
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)

	// UpdateBudget updates mutable fields and optionally replaces the item set.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)

	// DeleteBudget removes a budget and its items.
	DeleteBudget(ctx context.Context, budgetID string, userID string) error
}
