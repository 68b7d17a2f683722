// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	TopOnly         bool
	IncludeChildren bool
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase handles listing categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute lists categories ordered by name.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindAll(ctx, adapter.CategoryListOptions{
		TopOnly:         input.TopOnly,
		IncludeChildren: input.IncludeChildren,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &ListCategoriesOutput{
		Categories: categories,
	}, nil
}

// ListSubcategoriesInput represents the input for listing the children of a category.
type ListSubcategoriesInput struct {
	ParentID uuid.UUID
}

// ListSubcategoriesOutput represents the output of listing subcategories.
type ListSubcategoriesOutput struct {
	Parent        *entity.Category
	Subcategories []*entity.Category
}

// ListSubcategoriesUseCase handles listing the direct children of a category.
type ListSubcategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListSubcategoriesUseCase creates a new ListSubcategoriesUseCase instance.
func NewListSubcategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListSubcategoriesUseCase {
	return &ListSubcategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute lists the children of the parent ordered by name.
func (uc *ListSubcategoriesUseCase) Execute(ctx context.Context, input ListSubcategoriesInput) (*ListSubcategoriesOutput, error) {
	parent, err := uc.categoryRepo.FindByID(ctx, input.ParentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeParentNotFound,
				"parent category not found",
				domainerror.ErrParentCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find parent category: %w", err)
	}

	children, err := uc.categoryRepo.FindChildren(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subcategories: %w", err)
	}

	return &ListSubcategoriesOutput{
		Parent:        parent,
		Subcategories: children,
	}, nil
}
