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

// maxCategoryDepth bounds parent-chain walks so malformed data cannot loop.
const maxCategoryDepth = 16

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

// Ensure categoryService implements the CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) findOwnedCategory(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.UserID != userID {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	return category, nil
}

// validateParent checks that a prospective parent exists, belongs to the same
// user, and does not close a cycle back to categoryID.
func (s *categoryService) validateParent(ctx context.Context, parentID string, categoryID string, userID string) error {
	current := parentID
	for depth := 0; depth < maxCategoryDepth; depth++ {
		parent, err := s.findOwnedCategory(ctx, current, userID)
		if err != nil {
			return err
		}
		if parent.CategoryID == categoryID {
			return fmt.Errorf("%w: category parent chain must not form a cycle", apperrors.ErrValidation)
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
	return fmt.Errorf("%w: category parent chain too deep", apperrors.ErrValidation)
}

// CreateCategory persists a new category owned by userID.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error) {
	now := time.Now()
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		CategoryType: req.CategoryType,
		Color:        req.Color,
		Icon:         req.Icon,
		ParentID:     req.ParentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if req.ParentID != nil {
		if err := s.validateParent(ctx, *req.ParentID, category.CategoryID, userID); err != nil {
			return nil, err
		}
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

// CreateDefaultCategories seeds the fixed default taxonomy for a new user.
func (s *categoryService) CreateDefaultCategories(ctx context.Context, userID string) error {
	now := time.Now()
	categories := make([]domain.Category, len(domain.DefaultCategories))
	for i, seed := range domain.DefaultCategories {
		categories[i] = domain.Category{
			CategoryID:   uuid.NewString(),
			UserID:       userID,
			Name:         seed.Name,
			CategoryType: seed.CategoryType,
			Color:        seed.Color,
			Icon:         seed.Icon,
			IsSystem:     true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.categoryRepo.SaveCategories(ctx, categories); err != nil {
		s.LogError(ctx, err, "Failed to seed default categories", slog.String("user_id", userID))
		return fmt.Errorf("failed to seed default categories: %w", err)
	}

	s.LogInfo(ctx, "Default categories seeded",
		slog.String("user_id", userID),
		slog.Int("count", len(categories)))
	return nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error) {
	return s.findOwnedCategory(ctx, categoryID, userID)
}

func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// ListSubcategories retrieves the direct children of a category.
func (s *categoryService) ListSubcategories(ctx context.Context, categoryID string, userID string) ([]domain.Category, error) {
	if _, err := s.findOwnedCategory(ctx, categoryID, userID); err != nil {
		return nil, err
	}
	children, err := s.categoryRepo.FindChildCategories(ctx, categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list subcategories", slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}
	return children, nil
}

// UpdateCategory updates mutable fields of a category.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error) {
	category, err := s.findOwnedCategory(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.ParentID != nil {
		if err := s.validateParent(ctx, *req.ParentID, categoryID, userID); err != nil {
			return nil, err
		}
		category.ParentID = req.ParentID
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return category, nil
}

// DeleteCategory removes a non-system category.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string, userID string) error {
	category, err := s.findOwnedCategory(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	if category.IsSystem {
		return fmt.Errorf("%w: system categories cannot be deleted", apperrors.ErrValidation)
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}
