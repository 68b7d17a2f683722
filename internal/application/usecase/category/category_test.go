package category_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/category"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/db/dbtest"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence"
)

type suite struct {
	ctx          context.Context
	db           *gorm.DB
	categoryRepo adapter.CategoryRepository
	txnRepo      adapter.TransactionRepository
	user         *entity.User

	create *category.CreateCategoryUseCase
	bulk   *category.BulkCreateSubcategoriesUseCase
	get    *category.GetCategoryUseCase
	list   *category.ListCategoriesUseCase
	subs   *category.ListSubcategoriesUseCase
	update *category.UpdateCategoryUseCase
	delete *category.DeleteCategoryUseCase
}

func newSuite(t *testing.T) *suite {
	t.Helper()
	db := dbtest.Open(t)
	s := &suite{
		ctx:          context.Background(),
		db:           db,
		categoryRepo: persistence.NewCategoryRepository(db),
		txnRepo:      persistence.NewTransactionRepository(db),
	}
	s.create = category.NewCreateCategoryUseCase(s.categoryRepo)
	s.bulk = category.NewBulkCreateSubcategoriesUseCase(s.categoryRepo)
	s.get = category.NewGetCategoryUseCase(s.categoryRepo)
	s.list = category.NewListCategoriesUseCase(s.categoryRepo)
	s.subs = category.NewListSubcategoriesUseCase(s.categoryRepo)
	s.update = category.NewUpdateCategoryUseCase(s.categoryRepo)
	s.delete = category.NewDeleteCategoryUseCase(s.categoryRepo, s.txnRepo)

	s.user = entity.NewUser("Ledger Admin", "admin@example.com", "hash", entity.UserRoleAdmin)
	require.NoError(t, persistence.NewUserRepository(db).Create(s.ctx, s.user))
	return s
}

func (s *suite) mustCreate(t *testing.T, name string, parent *entity.Category) *entity.Category {
	t.Helper()
	input := category.CreateCategoryInput{Name: name}
	if parent != nil {
		input.ParentID = &parent.ID
	}
	out, err := s.create.Execute(s.ctx, input)
	require.NoError(t, err)
	return out.Category
}

func (s *suite) mustTransaction(t *testing.T, cat, sub *entity.Category) {
	t.Helper()
	txn := entity.NewTransaction(entity.TransactionTypeDebit, decimal.RequireFromString("250.00"), cat.ID, s.user.ID, time.Time{})
	if sub != nil {
		txn.SubcategoryID = &sub.ID
	}
	require.NoError(t, s.txnRepo.Create(s.ctx, txn))
}

func categoryCode(t *testing.T, err error) domainerror.CategoryErrorCode {
	t.Helper()
	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr), "expected CategoryError, got %v", err)
	return catErr.Code
}

func TestCreateCategory(t *testing.T) {
	s := newSuite(t)
	travel := s.mustCreate(t, "  Travel ", nil)
	assert.Equal(t, "Travel", travel.Name)
	assert.True(t, travel.IsTopLevel())

	missing := uuid.New()
	tests := []struct {
		name     string
		input    category.CreateCategoryInput
		wantErr  error
		wantCode domainerror.CategoryErrorCode
	}{
		{
			name:     "empty name",
			input:    category.CreateCategoryInput{Name: "   "},
			wantErr:  domainerror.ErrCategoryNameRequired,
			wantCode: domainerror.ErrCodeMissingCategoryFields,
		},
		{
			name:     "unknown parent",
			input:    category.CreateCategoryInput{Name: "Flights", ParentID: &missing},
			wantErr:  domainerror.ErrInvalidParent,
			wantCode: domainerror.ErrCodeInvalidParent,
		},
		{
			name:     "duplicate top-level name",
			input:    category.CreateCategoryInput{Name: "Travel"},
			wantErr:  domainerror.ErrCategoryNameExists,
			wantCode: domainerror.ErrCodeCategoryNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.create.Execute(s.ctx, tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, categoryCode(t, err))
		})
	}

	t.Run("same name under different parents", func(t *testing.T) {
		office := s.mustCreate(t, "Office", nil)
		s.mustCreate(t, "Misc", travel)
		s.mustCreate(t, "Misc", office)
	})
}

func TestBulkCreateSubcategories(t *testing.T) {
	s := newSuite(t)
	travel := s.mustCreate(t, "Travel", nil)
	s.mustCreate(t, "Hotels", travel)

	out, err := s.bulk.Execute(s.ctx, category.BulkCreateSubcategoriesInput{
		ParentID: travel.ID,
		Names:    []string{"Taxi", "Hotels", "Flights", "", "Taxi"},
	})
	require.NoError(t, err)
	assert.Equal(t, travel.ID, out.Parent.ID)
	assert.Equal(t, 2, out.Created)
	require.Len(t, out.Children, 3)
	assert.Equal(t, "Flights", out.Children[0].Name)
	assert.Equal(t, "Hotels", out.Children[1].Name)
	assert.Equal(t, "Taxi", out.Children[2].Name)

	_, err = s.bulk.Execute(s.ctx, category.BulkCreateSubcategoriesInput{ParentID: travel.ID})
	assert.ErrorIs(t, err, domainerror.ErrEmptySubcategoryNames)

	_, err = s.bulk.Execute(s.ctx, category.BulkCreateSubcategoriesInput{ParentID: uuid.New(), Names: []string{"X"}})
	assert.ErrorIs(t, err, domainerror.ErrInvalidParent)
}

func TestGetAndListCategories(t *testing.T) {
	s := newSuite(t)
	travel := s.mustCreate(t, "Travel", nil)
	s.mustCreate(t, "Office", nil)
	s.mustCreate(t, "Hotels", travel)
	s.mustCreate(t, "Flights", travel)

	got, err := s.get.Execute(s.ctx, category.GetCategoryInput{CategoryID: travel.ID})
	require.NoError(t, err)
	assert.Nil(t, got.Category.Parent)
	require.Len(t, got.Category.Children, 2)
	assert.Equal(t, "Flights", got.Category.Children[0].Name)

	_, err = s.get.Execute(s.ctx, category.GetCategoryInput{CategoryID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)

	top, err := s.list.Execute(s.ctx, category.ListCategoriesInput{TopOnly: true, IncludeChildren: true})
	require.NoError(t, err)
	require.Len(t, top.Categories, 2)
	assert.Equal(t, "Office", top.Categories[0].Name)
	assert.Len(t, top.Categories[1].Children, 2)

	all, err := s.list.Execute(s.ctx, category.ListCategoriesInput{})
	require.NoError(t, err)
	assert.Len(t, all.Categories, 4)

	subs, err := s.subs.Execute(s.ctx, category.ListSubcategoriesInput{ParentID: travel.ID})
	require.NoError(t, err)
	assert.Len(t, subs.Subcategories, 2)

	_, err = s.subs.Execute(s.ctx, category.ListSubcategoriesInput{ParentID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrParentCategoryNotFound)
}

func TestUpdateCategory_Hierarchy(t *testing.T) {
	s := newSuite(t)
	root := s.mustCreate(t, "Root", nil)
	child := s.mustCreate(t, "Child", root)
	grandchild := s.mustCreate(t, "Grandchild", child)
	missing := uuid.New()

	tests := []struct {
		name     string
		input    category.UpdateCategoryInput
		wantErr  error
		wantCode domainerror.CategoryErrorCode
	}{
		{
			name:     "self parent",
			input:    category.UpdateCategoryInput{CategoryID: root.ID, SetParent: true, ParentID: &root.ID},
			wantErr:  domainerror.ErrCategorySelfParent,
			wantCode: domainerror.ErrCodeCategorySelfParent,
		},
		{
			name:     "missing parent",
			input:    category.UpdateCategoryInput{CategoryID: root.ID, SetParent: true, ParentID: &missing},
			wantErr:  domainerror.ErrParentCategoryNotFound,
			wantCode: domainerror.ErrCodeParentNotFound,
		},
		{
			name:     "direct child as parent",
			input:    category.UpdateCategoryInput{CategoryID: root.ID, SetParent: true, ParentID: &child.ID},
			wantErr:  domainerror.ErrCategoryCycle,
			wantCode: domainerror.ErrCodeCategoryCycle,
		},
		{
			name:     "grandchild as parent",
			input:    category.UpdateCategoryInput{CategoryID: root.ID, SetParent: true, ParentID: &grandchild.ID},
			wantErr:  domainerror.ErrCategoryCycle,
			wantCode: domainerror.ErrCodeCategoryCycle,
		},
		{
			name:     "unknown category",
			input:    category.UpdateCategoryInput{CategoryID: missing},
			wantErr:  domainerror.ErrCategoryNotFound,
			wantCode: domainerror.ErrCodeCategoryNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.update.Execute(s.ctx, tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, categoryCode(t, err))
		})
	}

	t.Run("move to top level and rename", func(t *testing.T) {
		name := "Standalone"
		meta := map[string]any{"costCenter": "CC-12"}
		out, err := s.update.Execute(s.ctx, category.UpdateCategoryInput{
			CategoryID: grandchild.ID,
			Name:       &name,
			Meta:       &meta,
			SetParent:  true,
		})
		require.NoError(t, err)
		assert.True(t, out.Category.IsTopLevel())

		stored, err := s.categoryRepo.FindByID(s.ctx, grandchild.ID)
		require.NoError(t, err)
		assert.Equal(t, "Standalone", stored.Name)
		assert.Nil(t, stored.ParentID)
		assert.Equal(t, "CC-12", stored.Meta["costCenter"])
	})

	t.Run("sibling name clash on reparent", func(t *testing.T) {
		s.mustCreate(t, "Child", nil)
		_, err := s.update.Execute(s.ctx, category.UpdateCategoryInput{CategoryID: child.ID, SetParent: true})
		assert.ErrorIs(t, err, domainerror.ErrCategoryNameExists)
	})
}

func TestUpdateCategory_RandomReparentsStayAcyclic(t *testing.T) {
	s := newSuite(t)
	rng := rand.New(rand.NewSource(7))

	var nodes []*entity.Category
	for i := 0; i < 25; i++ {
		var parent *entity.Category
		if len(nodes) > 0 && rng.Intn(3) > 0 {
			parent = nodes[rng.Intn(len(nodes))]
		}
		nodes = append(nodes, s.mustCreate(t, uuid.NewString()[:8], parent))
	}

	for i := 0; i < 200; i++ {
		target := nodes[rng.Intn(len(nodes))]
		input := category.UpdateCategoryInput{CategoryID: target.ID, SetParent: true}
		if rng.Intn(5) > 0 {
			input.ParentID = &nodes[rng.Intn(len(nodes))].ID
		}
		_, err := s.update.Execute(s.ctx, input)
		if err != nil {
			var catErr *domainerror.CategoryError
			require.True(t, errors.As(err, &catErr), "unexpected failure: %v", err)
		}
	}

	for _, n := range nodes {
		current := n.ID
		steps := 0
		for {
			parentID, err := s.categoryRepo.FindParentID(s.ctx, current)
			require.NoError(t, err)
			if parentID == nil {
				break
			}
			current = *parentID
			steps++
			require.LessOrEqual(t, steps, len(nodes), "parent chain from %s loops", n.ID)
		}
	}
}

func TestDeleteCategory_DependentsAndForce(t *testing.T) {
	s := newSuite(t)
	travel := s.mustCreate(t, "Travel", nil)
	flights := s.mustCreate(t, "Flights", travel)
	s.mustTransaction(t, travel, flights)

	_, err := s.delete.Execute(s.ctx, category.DeleteCategoryInput{CategoryID: travel.ID})
	require.ErrorIs(t, err, domainerror.ErrCategoryHasDependents)

	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr))
	require.NotNil(t, catErr.Dependents)
	assert.Equal(t, 1, catErr.Dependents.SubcategoriesCount)
	assert.Equal(t, int64(1), catErr.Dependents.LinkedTransactions)

	_, err = s.categoryRepo.FindByID(s.ctx, travel.ID)
	require.NoError(t, err)

	out, err := s.delete.Execute(s.ctx, category.DeleteCategoryInput{CategoryID: travel.ID, Force: true})
	require.NoError(t, err)
	assert.True(t, out.Cascaded)
	assert.Equal(t, int64(2), out.CategoriesDeleted)
	assert.Equal(t, int64(1), out.TransactionsDeleted)

	for _, id := range []uuid.UUID{travel.ID, flights.ID} {
		_, err := s.categoryRepo.FindByID(s.ctx, id)
		assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
	}
	count, err := s.txnRepo.CountByCategoryIDs(s.ctx, []uuid.UUID{travel.ID, flights.ID})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteCategory_ForceRemovesWholeSubtree(t *testing.T) {
	s := newSuite(t)
	root := s.mustCreate(t, "Root", nil)
	child := s.mustCreate(t, "Child", root)
	grandchild := s.mustCreate(t, "Grandchild", child)
	s.mustTransaction(t, grandchild, nil)

	_, err := s.delete.Execute(s.ctx, category.DeleteCategoryInput{CategoryID: root.ID})
	var catErr *domainerror.CategoryError
	require.True(t, errors.As(err, &catErr))
	assert.Equal(t, 1, catErr.Dependents.SubcategoriesCount)
	assert.Equal(t, int64(1), catErr.Dependents.LinkedTransactions)

	out, err := s.delete.Execute(s.ctx, category.DeleteCategoryInput{CategoryID: root.ID, Force: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.CategoriesDeleted)

	all, err := s.list.Execute(s.ctx, category.ListCategoriesInput{})
	require.NoError(t, err)
	assert.Empty(t, all.Categories)
}

func TestDeleteCategory_WithoutDependents(t *testing.T) {
	s := newSuite(t)
	lonely := s.mustCreate(t, "Lonely", nil)

	out, err := s.delete.Execute(s.ctx, category.DeleteCategoryInput{CategoryID: lonely.ID})
	require.NoError(t, err)
	assert.False(t, out.Cascaded)
	assert.Equal(t, int64(1), out.CategoriesDeleted)

	_, err = s.delete.Execute(s.ctx, category.DeleteCategoryInput{CategoryID: lonely.ID})
	assert.ErrorIs(t, err, domainerror.ErrCategoryNotFound)
}
