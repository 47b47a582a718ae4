package services

import (
	"context"

	"github.com/fintrackhq/fintrack/internal/core/domain"
	"github.com/fintrackhq/fintrack/internal/dto"
)

// CategorySvcFacade defines operations for managing transaction categories.
type CategorySvcFacade interface {
	// CreateCategory persists a new category owned by userID.
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, userID string) (*domain.Category, error)

	// CreateDefaultCategories seeds the fixed default taxonomy for a new user.
	CreateDefaultCategories(ctx context.Context, userID string) error

	// GetCategoryByID retrieves a category, enforcing ownership.
	GetCategoryByID(ctx context.Context, categoryID string, userID string) (*domain.Category, error)

	// ListCategories retrieves all categories owned by the user.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)

	// ListSubcategories retrieves the direct children of a category.
	ListSubcategories(ctx context.Context, categoryID string, userID string) ([]domain.Category, error)

	// UpdateCategory updates mutable fields of a category.
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, userID string) (*domain.Category, error)

	// DeleteCategory removes a non-system category.
	DeleteCategory(ctx context.Context, categoryID string, userID string) error
}
