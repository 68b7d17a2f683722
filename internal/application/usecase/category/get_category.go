// Package category contains category-related use cases.
package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// GetCategoryInput represents the input for fetching one category.
type GetCategoryInput struct {
	CategoryID uuid.UUID
}

// GetCategoryOutput holds the category with its parent and immediate children.
type GetCategoryOutput struct {
	Category *entity.Category
}

// GetCategoryUseCase handles single category retrieval.
type GetCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewGetCategoryUseCase creates a new GetCategoryUseCase instance.
func NewGetCategoryUseCase(categoryRepo adapter.CategoryRepository) *GetCategoryUseCase {
	return &GetCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute retrieves the category.
func (uc *GetCategoryUseCase) Execute(ctx context.Context, input GetCategoryInput) (*GetCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByIDWithRelations(ctx, input.CategoryID)
	if err != nil {
		return nil, categoryNotFound(err)
	}

	return &GetCategoryOutput{
		Category: category,
	}, nil
}
