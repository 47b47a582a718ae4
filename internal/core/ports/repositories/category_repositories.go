package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	// SaveCategory inserts a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// SaveCategories inserts a batch of categories (used for default seeding).
	SaveCategories(ctx context.Context, categories []domain.Category) error

	// FindCategoryByID retrieves a single category; returns apperrors.ErrNotFound if absent.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// FindCategoriesByIDs retrieves categories keyed by id; missing ids are absent from the map.
	FindCategoriesByIDs(ctx context.Context, categoryIDs []string) (map[string]domain.Category, error)

	// ListCategoriesByUser retrieves all categories owned by a user.
	ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error)

	// FindChildCategories retrieves the direct children of a category.
	FindChildCategories(ctx context.Context, parentID string) ([]domain.Category, error)

	// UpdateCategory persists mutable category fields.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category; returns apperrors.ErrValidation for system categories.
	DeleteCategory(ctx context.Context, categoryID string) error
}
