package persistence_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/db/dbtest"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 12, 0, 0, 0, time.UTC)
}

func TestTransactionRepository_FindByFilter(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewTransactionRepository(db)

	travel := f.category("Travel", nil)
	flights := f.category("Flights", travel)
	office := f.category("Office Supplies", nil)
	inv := f.invoice("INV-1", "500.00")

	f.transaction("250.00", travel, withSubcategory(flights), withDate(day(1)), withNote("Berlin trip"))
	f.transaction("12.40", office, withDate(day(2)), withNote("paper"))
	f.transaction("300.00", travel, withDate(day(3)), withType(entity.TransactionTypeCredit), withInvoice(inv))
	f.transaction("5.00", office, withDate(day(4)), withNote("pens"))

	tests := []struct {
		name      string
		filter    entity.TransactionFilter
		wantTotal int64
		wantFirst string
	}{
		{
			name:      "default sort is date descending",
			filter:    entity.TransactionFilter{Limit: 50},
			wantTotal: 4,
			wantFirst: "5.00",
		},
		{
			name:      "sort by amount ascending",
			filter:    entity.TransactionFilter{SortBy: entity.TransactionSortByAmount, SortAsc: true, Limit: 50},
			wantTotal: 4,
			wantFirst: "5.00",
		},
		{
			name:      "sort by amount descending",
			filter:    entity.TransactionFilter{SortBy: entity.TransactionSortByAmount, Limit: 50},
			wantTotal: 4,
			wantFirst: "300.00",
		},
		{
			name:      "pagination keeps total",
			filter:    entity.TransactionFilter{Limit: 1, Skip: 1},
			wantTotal: 4,
			wantFirst: "300.00",
		},
		{
			name:      "search matches note case-insensitively",
			filter:    entity.TransactionFilter{Search: "BERLIN", Limit: 50},
			wantTotal: 1,
			wantFirst: "250.00",
		},
		{
			name:      "search matches category name",
			filter:    entity.TransactionFilter{Search: "supplies", Limit: 50},
			wantTotal: 2,
			wantFirst: "5.00",
		},
		{
			name:      "search matches subcategory name",
			filter:    entity.TransactionFilter{Search: "flig", Limit: 50},
			wantTotal: 1,
			wantFirst: "250.00",
		},
		{
			name:      "search matches creator name",
			filter:    entity.TransactionFilter{Search: "asha", Limit: 50},
			wantTotal: 4,
			wantFirst: "5.00",
		},
		{
			name: "date range",
			filter: entity.TransactionFilter{
				From:  ptr(day(2)),
				To:    ptr(day(3)),
				Limit: 50,
			},
			wantTotal: 2,
			wantFirst: "300.00",
		},
		{
			name:      "by type",
			filter:    entity.TransactionFilter{Type: ptr(entity.TransactionTypeCredit), Limit: 50},
			wantTotal: 1,
			wantFirst: "300.00",
		},
		{
			name:      "by invoice",
			filter:    entity.TransactionFilter{InvoiceID: &inv.ID, Limit: 50},
			wantTotal: 1,
			wantFirst: "300.00",
		},
		{
			name:      "by subcategory",
			filter:    entity.TransactionFilter{SubcategoryID: &flights.ID, Limit: 50},
			wantTotal: 1,
			wantFirst: "250.00",
		},
		{
			name:      "by category",
			filter:    entity.TransactionFilter{CategoryID: &office.ID, Limit: 50},
			wantTotal: 2,
			wantFirst: "5.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.FindByFilter(f.ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, page.Total)
			require.NotEmpty(t, page.Transactions)
			first := page.Transactions[0]
			assert.Equal(t, tt.wantFirst, first.Amount.StringFixed(2))
			require.NotNil(t, first.Category)
			require.NotNil(t, first.CreatedBy)
			assert.Equal(t, "Asha Rao", first.CreatedBy.Name)
		})
	}
}

func TestTransactionRepository_FindByFilterNoMatch(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewTransactionRepository(db)
	f.transaction("1.00", f.category("Misc", nil))

	page, err := repo.FindByFilter(f.ctx, entity.TransactionFilter{Search: "nothing-like-this", Limit: 50})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Transactions)
}

func TestTransactionRepository_FindByIDWithRelations(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewTransactionRepository(db)

	travel := f.category("Travel", nil)
	flights := f.category("Flights", travel)
	inv := f.invoice("INV-7", "100.00")
	txn := f.transaction("99.99", travel, withSubcategory(flights), withInvoice(inv))

	got, err := repo.FindByIDWithRelations(f.ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Travel", got.Category.Name)
	assert.Equal(t, "Flights", got.Subcategory.Name)
	assert.Equal(t, "INV-7", got.Invoice.InvoiceNumber)
	assert.Equal(t, "99.99", got.Amount.StringFixed(2))

	_, err = repo.FindByIDWithRelations(f.ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}

func TestTransactionRepository_CountAndDelete(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewTransactionRepository(db)

	travel := f.category("Travel", nil)
	flights := f.category("Flights", travel)
	f.transaction("1.00", travel)
	txn := f.transaction("2.00", travel, withSubcategory(flights))

	count, err := repo.CountByCategoryIDs(f.ctx, []uuid.UUID{flights.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountByCategoryIDs(f.ctx, []uuid.UUID{travel.ID, flights.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.Delete(f.ctx, txn.ID))
	assert.ErrorIs(t, repo.Delete(f.ctx, txn.ID), domainerror.ErrTransactionNotFound)
}

func ptr[T any](v T) *T {
	return &v
}

func TestTransactionRepository_SearchMatchesWildcardsLiterally(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewTransactionRepository(db)

	misc := f.category("Misc", nil)
	percent := f.transaction("1.00", misc, withNote("10% discount"))
	f.transaction("2.00", misc, withNote("plain taxi"))
	underscore := f.transaction("3.00", misc, withNote("a_b code"))
	backslash := f.transaction("4.00", misc, withNote(`C:\temp`))

	tests := []struct {
		search string
		want   uuid.UUID
	}{
		{search: "%", want: percent.ID},
		{search: "0% d", want: percent.ID},
		{search: "_", want: underscore.ID},
		{search: "A_B", want: underscore.ID},
		{search: `\`, want: backslash.ID},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			page, err := repo.FindByFilter(f.ctx, entity.TransactionFilter{Search: tt.search, Limit: 50})
			require.NoError(t, err)
			assert.Equal(t, int64(1), page.Total)
			require.Len(t, page.Transactions, 1)
			assert.Equal(t, tt.want, page.Transactions[0].ID)
		})
	}
}

func TestTransactionRepository_UpdateDoesNotResurrect(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewTransactionRepository(db)

	txn := f.transaction("5.00", f.category("Misc", nil), withNote("before"))
	txn.Note = "after"
	require.NoError(t, repo.Update(f.ctx, txn))

	stored, err := repo.FindByID(f.ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", stored.Note)

	require.NoError(t, repo.Delete(f.ctx, txn.ID))
	assert.ErrorIs(t, repo.Update(f.ctx, txn), domainerror.ErrTransactionNotFound)

	_, err = repo.FindByID(f.ctx, txn.ID)
	assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
}
