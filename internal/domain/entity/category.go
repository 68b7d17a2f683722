// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a node in the expense classification tree.
// A category without a parent is top-level; one with a parent is a subcategory.
type Category struct {
	ID        uuid.UUID
	Name      string
	ParentID  *uuid.UUID
	Meta      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time

	// Loaded on demand by the store.
	Parent   *Category
	Children []*Category
}

// NewCategory creates a new Category entity.
func NewCategory(name string, parentID *uuid.UUID, meta map[string]any) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		ParentID:  parentID,
		Meta:      meta,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}

// IsChildOf reports whether the category is a direct child of parentID.
func (c *Category) IsChildOf(parentID uuid.UUID) bool {
	return c.ParentID != nil && *c.ParentID == parentID
}

// CategoryDependents counts what blocks a non-forced category delete.
type CategoryDependents struct {
	SubcategoriesCount int
	LinkedTransactions int64
}

// IsEmpty reports whether nothing depends on the category.
func (d CategoryDependents) IsEmpty() bool {
	return d.SubcategoriesCount == 0 && d.LinkedTransactions == 0
}
