// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
)

// BulkCreateSubcategoriesInput represents the input for creating several children at once.
type BulkCreateSubcategoriesInput struct {
	ParentID uuid.UUID
	Names    []string
}

// BulkCreateSubcategoriesOutput holds the parent and its freshly loaded children.
type BulkCreateSubcategoriesOutput struct {
	Parent   *entity.Category
	Children []*entity.Category
	Created  int
}

// BulkCreateSubcategoriesUseCase handles bulk child creation.
type BulkCreateSubcategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewBulkCreateSubcategoriesUseCase creates a new BulkCreateSubcategoriesUseCase instance.
func NewBulkCreateSubcategoriesUseCase(categoryRepo adapter.CategoryRepository) *BulkCreateSubcategoriesUseCase {
	return &BulkCreateSubcategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute creates one child per name. Names already used under the parent are skipped.
func (uc *BulkCreateSubcategoriesUseCase) Execute(
	ctx context.Context,
	input BulkCreateSubcategoriesInput,
) (*BulkCreateSubcategoriesOutput, error) {
	names := make([]string, 0, len(input.Names))
	for _, raw := range input.Names {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		name, err := normalizeName(raw)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeEmptySubcategoryNames,
			"names must be a non-empty list",
			domainerror.ErrEmptySubcategoryNames,
		)
	}

	parent, err := uc.categoryRepo.FindByID(ctx, input.ParentID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidParent,
				"parent category does not exist",
				domainerror.ErrInvalidParent,
			)
		}
		return nil, fmt.Errorf("failed to find parent category: %w", err)
	}

	created, err := uc.categoryRepo.CreateChildren(ctx, parent.ID, names)
	if err != nil {
		return nil, fmt.Errorf("failed to create subcategories: %w", err)
	}

	children, err := uc.categoryRepo.FindChildren(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load subcategories: %w", err)
	}

	return &BulkCreateSubcategoriesOutput{
		Parent:   parent,
		Children: children,
		Created:  created,
	}, nil
}
