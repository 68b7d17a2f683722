package persistence_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/db/dbtest"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence/model"
)

func TestCategoryRepository_CreateChildrenSkipsDuplicates(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewCategoryRepository(db)

	travel := f.category("Travel", nil)
	f.category("Hotels", travel)

	created, err := repo.CreateChildren(f.ctx, travel.ID, []string{"Flights", "Hotels", "Flights", "Taxi"})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	children, err := repo.FindChildren(f.ctx, travel.ID)
	require.NoError(t, err)
	names := make([]string, len(children))
	for i, c := range children {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Flights", "Hotels", "Taxi"}, names)
}

func TestCategoryRepository_FindAll(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewCategoryRepository(db)

	travel := f.category("Travel", nil)
	f.category("Office", nil)
	f.category("Flights", travel)

	all, err := repo.FindAll(f.ctx, adapter.CategoryListOptions{IncludeChildren: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Flights", all[0].Name)
	assert.Equal(t, "Travel", all[2].Name)
	require.Len(t, all[2].Children, 1)
	assert.NotNil(t, all[1].Children)

	top, err := repo.FindAll(f.ctx, adapter.CategoryListOptions{TopOnly: true})
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Office", top[0].Name)
	assert.Nil(t, top[1].Children)
}

func TestCategoryRepository_FindByIDWithRelations(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewCategoryRepository(db)

	travel := f.category("Travel", nil)
	flights := f.category("Flights", travel)
	f.category("Airline fees", flights)

	got, err := repo.FindByIDWithRelations(f.ctx, flights.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Parent)
	assert.Equal(t, "Travel", got.Parent.Name)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "Airline fees", got.Children[0].Name)

	_, err = repo.FindByIDWithRelations(f.ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
}

func TestCategoryRepository_ExistsByNameAndParent(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewCategoryRepository(db)

	travel := f.category("Travel", nil)
	flights := f.category("Flights", travel)

	exists, err := repo.ExistsByNameAndParent(f.ctx, "Travel", nil, nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNameAndParent(f.ctx, "Flights", &travel.ID, &flights.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByNameAndParent(f.ctx, "Flights", nil, nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCategoryRepository_DeleteCascade(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewCategoryRepository(db)

	travel := f.category("Travel", nil)
	flights := f.category("Flights", travel)
	hotels := f.category("Hotels", travel)
	office := f.category("Office", nil)
	f.transaction("10.00", travel)
	f.transaction("20.00", travel, withSubcategory(flights))
	f.transaction("30.00", travel, withSubcategory(hotels))
	f.transaction("40.00", travel, withSubcategory(flights))
	f.transaction("50.00", travel)
	kept := f.transaction("60.00", office)

	res, err := repo.DeleteCascade(f.ctx, travel.ID, []uuid.UUID{flights.ID, hotels.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(5), res.TransactionsDeleted)
	assert.Equal(t, int64(3), res.CategoriesDeleted)

	var categories, transactions int64
	require.NoError(t, db.Model(&model.CategoryModel{}).Count(&categories).Error)
	require.NoError(t, db.Model(&model.TransactionModel{}).Count(&transactions).Error)
	assert.Equal(t, int64(1), categories)
	assert.Equal(t, int64(1), transactions)

	_, err = persistence.NewTransactionRepository(db).FindByID(f.ctx, kept.ID)
	assert.NoError(t, err)
}

func TestCategoryRepository_DeleteCascadeRollsBackOnFailure(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewCategoryRepository(db)

	travel := f.category("Travel", nil)
	flights := f.category("Flights", travel)
	hotels := f.category("Hotels", travel)
	for i := 0; i < 5; i++ {
		f.transaction("12.50", travel, withSubcategory(flights))
	}

	injected := errors.New("injected failure")
	require.NoError(t, db.Callback().Delete().Before("gorm:delete").Register("test:fail_category_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "categories" {
			_ = tx.AddError(injected)
		}
	}))
	t.Cleanup(func() { _ = db.Callback().Delete().Remove("test:fail_category_delete") })

	_, err := repo.DeleteCascade(f.ctx, travel.ID, []uuid.UUID{flights.ID, hotels.ID})
	require.ErrorIs(t, err, injected)

	var categories, transactions int64
	require.NoError(t, db.Model(&model.CategoryModel{}).Count(&categories).Error)
	require.NoError(t, db.Model(&model.TransactionModel{}).Count(&transactions).Error)
	assert.Equal(t, int64(3), categories)
	assert.Equal(t, int64(5), transactions)
}
