// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	Force      bool
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Dependents          entity.CategoryDependents
	Cascaded            bool
	CategoriesDeleted   int64
	TransactionsDeleted int64
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute deletes the category. Without Force, a category that has children or
// linked transactions is left untouched and a has-dependents error reports both counts.
// With Force, the subtree and every transaction referencing it are removed atomically.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, categoryNotFound(err)
	}

	descendants, direct, err := collectDescendants(ctx, uc.categoryRepo, category.ID)
	if err != nil {
		return nil, err
	}

	linked, err := uc.transactionRepo.CountByCategoryIDs(ctx, append([]uuid.UUID{category.ID}, descendants...))
	if err != nil {
		return nil, fmt.Errorf("failed to count linked transactions: %w", err)
	}

	deps := entity.CategoryDependents{
		SubcategoriesCount: direct,
		LinkedTransactions: linked,
	}

	if deps.IsEmpty() {
		if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
			return nil, fmt.Errorf("failed to delete category: %w", err)
		}
		return &DeleteCategoryOutput{
			Dependents:        deps,
			CategoriesDeleted: 1,
		}, nil
	}

	if !input.Force {
		return nil, domainerror.NewCategoryHasDependentsError(deps)
	}

	res, err := uc.categoryRepo.DeleteCascade(ctx, category.ID, descendants)
	if err != nil {
		return nil, fmt.Errorf("failed to force delete category: %w", err)
	}

	slog.Info("Category force deleted",
		"category_id", category.ID,
		"name", category.Name,
		"categories_deleted", res.CategoriesDeleted,
		"transactions_deleted", res.TransactionsDeleted,
	)

	return &DeleteCategoryOutput{
		Dependents:          deps,
		Cascaded:            true,
		CategoriesDeleted:   res.CategoriesDeleted,
		TransactionsDeleted: res.TransactionsDeleted,
	}, nil
}
