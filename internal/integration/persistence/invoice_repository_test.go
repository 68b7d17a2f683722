package persistence_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/db/dbtest"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence/model"
)

func TestInvoiceRepository_FindAllWithPayments(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewInvoiceRepository(db)

	sales := f.category("Sales", nil)
	first := f.invoice("INV-1", "30.30")
	f.invoice("INV-2", "10.00")
	for i := 0; i < 3; i++ {
		f.transaction("10.10", sales, withInvoice(first), withType(entity.TransactionTypeCredit))
	}

	invoices, err := repo.FindAllWithPayments(f.ctx)
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	byNumber := map[string]*entity.Invoice{}
	for _, inv := range invoices {
		byNumber[inv.InvoiceNumber] = inv
	}
	assert.Len(t, byNumber["INV-1"].Payments, 3)
	assert.Empty(t, byNumber["INV-2"].Payments)
}

func TestInvoiceRepository_DeleteDetachingPayments(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewInvoiceRepository(db)

	sales := f.category("Sales", nil)
	inv := f.invoice("INV-9", "100.00")
	p1 := f.transaction("40.00", sales, withInvoice(inv))
	p2 := f.transaction("60.00", sales, withInvoice(inv))

	detached, err := repo.DeleteDetachingPayments(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detached)

	for _, id := range []uuid.UUID{p1.ID, p2.ID} {
		var m model.TransactionModel
		require.NoError(t, db.First(&m, "id = ?", id).Error)
		assert.Nil(t, m.InvoiceID)
	}

	_, err = repo.FindByID(f.ctx, inv.ID)
	assert.ErrorIs(t, err, domainerror.ErrInvoiceNotFound)

	_, err = repo.DeleteDetachingPayments(f.ctx, inv.ID)
	assert.ErrorIs(t, err, domainerror.ErrInvoiceNotFound)
}

func TestInvoiceRepository_UpsertByExternalID(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewInvoiceRepository(db)

	ext := "42"
	inv := entity.NewInvoice("INV-42", decimal.RequireFromString("120.00"), "Acme", nil)
	inv.ExternalID = &ext

	created, err := repo.UpsertByExternalID(f.ctx, inv)
	require.NoError(t, err)
	assert.True(t, created)
	firstID := inv.ID

	again := entity.NewInvoice("INV-42-R", decimal.RequireFromString("125.50"), "Acme Corp", nil)
	again.ExternalID = &ext
	created, err = repo.UpsertByExternalID(f.ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, firstID, again.ID)

	var count int64
	require.NoError(t, db.Model(&model.InvoiceModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindByID(f.ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, "INV-42-R", stored.InvoiceNumber)
	assert.Equal(t, "125.50", stored.ExpectedAmount.StringFixed(2))
	assert.Equal(t, "Acme Corp", stored.ClientName)
}

func TestInvoiceRepository_ExistsByInvoiceNumber(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewInvoiceRepository(db)
	inv := f.invoice("INV-1", "1.00")

	exists, err := repo.ExistsByInvoiceNumber(f.ctx, "INV-1", nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByInvoiceNumber(f.ctx, "INV-1", &inv.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestInvoiceRepository_UpdateDoesNotResurrect(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewInvoiceRepository(db)

	inv := f.invoice("INV-1", "10.00")
	inv.ClientName = "Globex"
	require.NoError(t, repo.Update(f.ctx, inv))

	stored, err := repo.FindByID(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Globex", stored.ClientName)

	_, err = repo.DeleteDetachingPayments(f.ctx, inv.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Update(f.ctx, inv), domainerror.ErrInvoiceNotFound)

	var count int64
	require.NoError(t, db.Model(&model.InvoiceModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInvoiceRepository_DuplicateNumberIsTranslated(t *testing.T) {
	db := dbtest.Open(t)
	f := newFixtures(t, db)
	repo := persistence.NewInvoiceRepository(db)

	f.invoice("INV-1", "10.00")
	second := f.invoice("INV-2", "20.00")

	err := repo.Create(f.ctx, entity.NewInvoice("INV-1", decimal.RequireFromString("1.00"), "", nil))
	assert.ErrorIs(t, err, domainerror.ErrInvoiceNumberExists)

	second.InvoiceNumber = "INV-1"
	assert.ErrorIs(t, repo.Update(f.ctx, second), domainerror.ErrInvoiceNumberExists)
}
