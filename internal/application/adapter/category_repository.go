// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// CategoryListOptions controls which categories are listed and how much is loaded.
type CategoryListOptions struct {
	TopOnly         bool
	IncludeChildren bool
}

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// CreateChildren creates one child of parentID per name, skipping names that
	// already exist under the parent. Returns the number of rows created.
	CreateChildren(ctx context.Context, parentID uuid.UUID, names []string) (int, error)

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByIDWithRelations retrieves a category with its parent and children ordered by name.
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindAll retrieves categories ordered by name.
	FindAll(ctx context.Context, opts CategoryListOptions) ([]*entity.Category, error)

	// FindChildren retrieves the direct children of a category ordered by name.
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Category, error)

	// FindChildIDs retrieves the IDs of the direct children of any of parentIDs.
	FindChildIDs(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error)

	// FindParentID returns the parent of a category, nil for a top-level category.
	FindParentID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)

	// ExistsByNameAndParent checks whether a sibling with the given name exists,
	// ignoring excludeID when set.
	ExistsByNameAndParent(ctx context.Context, name string, parentID *uuid.UUID, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteCascade removes every transaction referencing the category or any of
	// descendantIDs, then the descendants, then the category, as one atomic unit.
	DeleteCascade(ctx context.Context, id uuid.UUID, descendantIDs []uuid.UUID) (*CascadeDeleteResult, error)
}

// CascadeDeleteResult counts the rows removed by a cascading delete.
type CascadeDeleteResult struct {
	TransactionsDeleted int64
	CategoriesDeleted   int64
}
