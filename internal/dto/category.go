package dto

import (
	"github.com/fintrackhq/fintrack/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name         string              `json:"name" binding:"required"`
	CategoryType domain.CategoryType `json:"categoryType" binding:"required,oneof=income expense transfer"`
	Color        string              `json:"color"`    // Optional hex color
	Icon         string              `json:"icon"`     // Optional icon name
	ParentID     *string             `json:"parentID"` // Optional, use pointer for nullability
}

// UpdateCategoryRequest defines the data allowed for updating a category.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCategoryRequest struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
	ParentID *string `json:"parentID"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID   string              `json:"categoryID"`
	Name         string              `json:"name"`
	CategoryType domain.CategoryType `json:"categoryType"`
	Color        string              `json:"color"`
	Icon         string              `json:"icon"`
	ParentID     *string             `json:"parentID"`
	IsSystem     bool                `json:"isSystem"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:   cat.CategoryID,
		Name:         cat.Name,
		CategoryType: cat.CategoryType,
		Color:        cat.Color,
		Icon:         cat.Icon,
		ParentID:     cat.ParentID,
		IsSystem:     cat.IsSystem,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to a slice of CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}

// ListCategoriesResponse wraps the list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
