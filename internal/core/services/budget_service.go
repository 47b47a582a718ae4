package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack/internal/apperrors"
	"github.com/fintrackhq/fintrack/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack/internal/core/ports/services"
	"github.com/fintrackhq/fintrack/internal/dto"
	"github.com/google/uuid"
)

// budgetService implements the BudgetSvcFacade interface
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepository
	categoryRepo portsrepo.CategoryRepository
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepository, categoryRepo portsrepo.CategoryRepository) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Ensure budgetService implements the BudgetSvcFacade interface
var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// buildItems validates item categories and converts request items to domain items.
func (s *budgetService) buildItems(ctx context.Context, budgetID string, reqItems []dto.BudgetItemRequest, userID string, now time.Time) ([]domain.BudgetItem, error) {
	items := make([]domain.BudgetItem, len(reqItems))
	for i, reqItem := range reqItems {
		if !reqItem.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: budget item amount must be positive", apperrors.ErrValidation)
		}
		category, err := s.categoryRepo.FindCategoryByID(ctx, reqItem.CategoryID)
		if err != nil {
			return nil, err
		}
		if category.UserID != userID {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, reqItem.CategoryID)
		}
		items[i] = domain.BudgetItem{
			BudgetItemID: uuid.NewString(),
			BudgetID:     budgetID,
			CategoryID:   reqItem.CategoryID,
			Amount:       reqItem.Amount,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}
	return items, nil
}

// CreateBudget persists a new budget with its items.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: budget end date must be after start date", apperrors.ErrValidation)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TotalLimit:   req.TotalLimit,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	items, err := s.buildItems(ctx, budget.BudgetID, req.Items, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget, items); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created",
		slog.String("budget_id", budget.BudgetID),
		slog.Int("item_count", len(items)))
	return &budget, nil
}

// GetBudgetByID retrieves a budget with its items, enforcing ownership.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string, userID string) (*domain.Budget, []domain.BudgetItem, error) {
	budget, err := s.budgetRepo.FindBudgetByIDForUser(ctx, budgetID, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.budgetRepo.FindBudgetItems(ctx, budgetID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to retrieve budget items: %w", err)
	}
	return budget, items, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

// UpdateBudget updates mutable fields and optionally replaces the item set.
func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByIDForUser(ctx, budgetID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		budget.EndDate = *req.EndDate
	}
	if !budget.EndDate.After(budget.StartDate) {
		return nil, fmt.Errorf("%w: budget end date must be after start date", apperrors.ErrValidation)
	}
	if req.TotalLimit != nil {
		budget.TotalLimit = *req.TotalLimit
	}
	if req.IsActive != nil {
		budget.IsActive = *req.IsActive
	}
	now := time.Now()
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	if req.Items != nil {
		items, err := s.buildItems(ctx, budgetID, req.Items, userID, now)
		if err != nil {
			return nil, err
		}
		if err := s.budgetRepo.ReplaceBudgetItems(ctx, budgetID, items); err != nil {
			s.LogError(ctx, err, "Failed to replace budget items", slog.String("budget_id", budgetID))
			return nil, fmt.Errorf("failed to replace budget items: %w", err)
		}
	}

	return budget, nil
}

// DeleteBudget removes a budget and its items.
func (s *budgetService) DeleteBudget(ctx context.Context, budgetID string, userID string) error {
	if _, err := s.budgetRepo.FindBudgetByIDForUser(ctx, budgetID, userID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}
