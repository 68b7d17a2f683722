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

// UpdateCategoryInput represents the input for category update.
type UpdateCategoryInput struct {
	CategoryID uuid.UUID
	Name       *string         // Optional
	Meta       *map[string]any // Optional; replaces the whole map

	// SetParent marks ParentID as part of the patch. A nil ParentID then moves
	// the category to the top level.
	SetParent bool
	ParentID  *uuid.UUID
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles renames, meta edits and re-parenting.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, categoryNotFound(err)
	}

	if input.SetParent && input.ParentID != nil {
		if err := uc.validateNewParent(ctx, category.ID, *input.ParentID); err != nil {
			return nil, err
		}
	}

	name := category.Name
	if input.Name != nil {
		if name, err = normalizeName(*input.Name); err != nil {
			return nil, err
		}
	}
	parentID := category.ParentID
	if input.SetParent {
		parentID = input.ParentID
	}

	if name != category.Name || !sameParent(parentID, category.ParentID) {
		if err := ensureUniqueName(ctx, uc.categoryRepo, name, parentID, &category.ID); err != nil {
			return nil, err
		}
	}

	category.Name = name
	category.ParentID = parentID
	if input.Meta != nil {
		category.Meta = *input.Meta
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}

// validateNewParent rejects a parent that is the category itself, missing, or
// inside the category's own subtree.
func (uc *UpdateCategoryUseCase) validateNewParent(ctx context.Context, categoryID, parentID uuid.UUID) error {
	if parentID == categoryID {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategorySelfParent,
			"category cannot be its own parent",
			domainerror.ErrCategorySelfParent,
		)
	}

	if _, err := uc.categoryRepo.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeParentNotFound,
				"parent category not found",
				domainerror.ErrParentCategoryNotFound,
			)
		}
		return fmt.Errorf("failed to find parent category: %w", err)
	}

	cycle, err := isDescendant(ctx, uc.categoryRepo, categoryID, parentID)
	if err != nil {
		return fmt.Errorf("failed to walk category ancestry: %w", err)
	}
	if cycle {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryCycle,
			"cannot set a descendant as parent",
			domainerror.ErrCategoryCycle,
		)
	}
	return nil
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
