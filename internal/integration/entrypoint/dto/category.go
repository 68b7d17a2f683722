package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name     string         `json:"name"`
	ParentID *uuid.UUID     `json:"parentId,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// BulkCreateSubcategoriesRequest represents the request body for creating several children.
type BulkCreateSubcategoriesRequest struct {
	Names []string `json:"names"`
}

// UpdateCategoryRequest represents the request body for category update.
// "parentId": null moves the category to the top level.
type UpdateCategoryRequest struct {
	Name     *string             `json:"name,omitempty"`
	Meta     *map[string]any     `json:"meta,omitempty"`
	ParentID Optional[uuid.UUID] `json:"parentId"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	ParentID  *string            `json:"parentId"`
	Meta      map[string]any     `json:"meta,omitempty"`
	Parent    *CategoryRef       `json:"parent,omitempty"`
	Children  []CategoryResponse `json:"children,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// BulkCreateSubcategoriesResponse reports how many children were created.
type BulkCreateSubcategoriesResponse struct {
	Parent   CategoryResponse   `json:"parent"`
	Children []CategoryResponse `json:"children"`
	Created  int                `json:"created"`
}

// DeleteCategoryResponse reports what a delete removed.
type DeleteCategoryResponse struct {
	Cascaded            bool  `json:"cascaded"`
	CategoriesDeleted   int64 `json:"categoriesDeleted"`
	TransactionsDeleted int64 `json:"transactionsDeleted"`
}

// CategoryDependentsDetails is the details payload of a blocked delete.
type CategoryDependentsDetails struct {
	SubcategoriesCount int   `json:"subcategoriesCount"`
	LinkedTransactions int64 `json:"linkedTransactions"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
// Loaded children are included recursively.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:        cat.ID.String(),
		Name:      cat.Name,
		ParentID:  uuidString(cat.ParentID),
		Meta:      cat.Meta,
		Parent:    toCategoryRef(cat.Parent),
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
	if cat.Children != nil {
		resp.Children = ToCategoryResponses(cat.Children)
	}
	return resp
}

// ToCategoryResponses converts a slice of categories.
func ToCategoryResponses(cats []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		out[i] = ToCategoryResponse(c)
	}
	return out
}

func toCategoryRef(cat *entity.Category) *CategoryRef {
	if cat == nil {
		return nil
	}
	return &CategoryRef{ID: cat.ID.String(), Name: cat.Name}
}
