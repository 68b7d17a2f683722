// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateChildren creates the missing children of a parent in one transaction.
func (r *categoryRepository) CreateChildren(ctx context.Context, parentID uuid.UUID, names []string) (int, error) {
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&model.CategoryModel{}).
			Where("parent_id = ?", parentID).
			Pluck("name", &existing).Error; err != nil {
			return err
		}

		seen := make(map[string]struct{}, len(existing)+len(names))
		for _, name := range existing {
			seen[name] = struct{}{}
		}

		var rows []*model.CategoryModel
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			pid := parentID
			rows = append(rows, model.CategoryFromEntity(entity.NewCategory(name, &pid, nil)))
		}
		if len(rows) == 0 {
			return nil
		}

		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		created = len(rows)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByIDWithRelations retrieves a category with its parent and children.
func (r *categoryRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Preload("Parent").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		}).
		Where("id = ?", id).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}

	category := categoryModel.ToEntity()
	if category.Children == nil {
		category.Children = []*entity.Category{}
	}
	return category, nil
}

// FindAll retrieves categories ordered by name.
func (r *categoryRepository) FindAll(ctx context.Context, opts adapter.CategoryListOptions) ([]*entity.Category, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if opts.TopOnly {
		query = query.Where("parent_id IS NULL")
	}
	if opts.IncludeChildren {
		query = query.Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		})
	}

	var categoryModels []model.CategoryModel
	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
		if opts.IncludeChildren && categories[i].Children == nil {
			categories[i].Children = []*entity.Category{}
		}
	}
	return categories, nil
}

// FindChildren retrieves the direct children of a category ordered by name.
func (r *categoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// FindChildIDs retrieves the IDs of the direct children of any of parentIDs.
func (r *categoryRepository) FindChildIDs(ctx context.Context, parentIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	var ids []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("parent_id IN ?", parentIDs).
		Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}
	return ids, nil
}

// FindParentID returns the parent of a category.
func (r *categoryRepository) FindParentID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Select("id", "parent_id").
		Where("id = ?", id).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ParentID, nil
}

// ExistsByNameAndParent checks whether a sibling with the given name exists.
func (r *categoryRepository) ExistsByNameAndParent(
	ctx context.Context,
	name string,
	parentID *uuid.UUID,
	excludeID *uuid.UUID,
) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.CategoryModel{}).Where("name = ?", name)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	category.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":       category.Name,
			"parent_id":  category.ParentID,
			"meta":       model.CategoryFromEntity(category).Meta,
			"updated_at": category.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category from the database.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// DeleteCascade removes the category, its descendants and every transaction
// referencing any of them. Nothing is removed if any step fails.
func (r *categoryRepository) DeleteCascade(
	ctx context.Context,
	id uuid.UUID,
	descendantIDs []uuid.UUID,
) (*adapter.CascadeDeleteResult, error) {
	ids := append([]uuid.UUID{id}, descendantIDs...)
	res := &adapter.CascadeDeleteResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txResult := tx.
			Where("category_id IN ? OR subcategory_id IN ?", ids, ids).
			Delete(&model.TransactionModel{})
		if txResult.Error != nil {
			return txResult.Error
		}
		res.TransactionsDeleted = txResult.RowsAffected

		if len(descendantIDs) > 0 {
			childResult := tx.Where("id IN ?", descendantIDs).Delete(&model.CategoryModel{})
			if childResult.Error != nil {
				return childResult.Error
			}
			res.CategoriesDeleted += childResult.RowsAffected
		}

		selfResult := tx.Where("id = ?", id).Delete(&model.CategoryModel{})
		if selfResult.Error != nil {
			return selfResult.Error
		}
		if selfResult.RowsAffected == 0 {
			return domainerror.ErrCategoryNotFound
		}
		res.CategoriesDeleted += selfResult.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
