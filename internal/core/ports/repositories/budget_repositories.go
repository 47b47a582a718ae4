package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack/internal/core/domain"
)

// BudgetRepository defines persistence operations for budgets and their items.
type BudgetRepository interface {
	// SaveBudget inserts a budget together with its initial items.
	SaveBudget(ctx context.Context, budget domain.Budget, items []domain.BudgetItem) error

	// FindBudgetByIDForUser retrieves a budget scoped to its owner; returns
	// apperrors.ErrNotFound when no budget matches both id and user.
	FindBudgetByIDForUser(ctx context.Context, budgetID string, userID string) (*domain.Budget, error)

	// FindBudgetItems retrieves the items of a budget.
	FindBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error)

	// ListBudgetsByUser retrieves all budgets owned by a user.
	ListBudgetsByUser(ctx context.Context, userID string) ([]domain.Budget, error)

	// UpdateBudget persists mutable budget fields.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// ReplaceBudgetItems swaps the full item set of a budget.
	ReplaceBudgetItems(ctx context.Context, budgetID string, items []domain.BudgetItem) error

	// DeleteBudget removes a budget and its items.
	DeleteBudget(ctx context.Context, budgetID string) error
}
