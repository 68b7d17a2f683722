// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_parent_name,priority:2"`
	ParentID  *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_categories_parent_name,priority:1"`
	Meta      string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Parent   *CategoryModel  `gorm:"foreignKey:ParentID;references:ID"`
	Children []CategoryModel `gorm:"foreignKey:ParentID;references:ID"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
// Preloaded parent and children are converted as well.
func (m *CategoryModel) ToEntity() *entity.Category {
	category := &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		ParentID:  m.ParentID,
		Meta:      decodeAttributes(m.Meta),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}

	if m.Parent != nil {
		category.Parent = m.Parent.ToEntity()
	}
	if m.Children != nil {
		category.Children = make([]*entity.Category, len(m.Children))
		for i := range m.Children {
			category.Children[i] = m.Children[i].ToEntity()
		}
	}

	return category
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        category.ID,
		Name:      category.Name,
		ParentID:  category.ParentID,
		Meta:      encodeAttributes(category.Meta),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}
