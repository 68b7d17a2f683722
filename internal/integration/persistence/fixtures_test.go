package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence"
)

type fixtures struct {
	t    *testing.T
	ctx  context.Context
	db   *gorm.DB
	user *entity.User
}

func newFixtures(t *testing.T, db *gorm.DB) *fixtures {
	t.Helper()
	f := &fixtures{t: t, ctx: context.Background(), db: db}
	f.user = entity.NewUser("Asha Rao", "asha@example.com", "hash", entity.UserRoleAdmin)
	require.NoError(t, persistence.NewUserRepository(db).Create(f.ctx, f.user))
	return f
}

func (f *fixtures) category(name string, parent *entity.Category) *entity.Category {
	f.t.Helper()
	var parentID *uuid.UUID
	if parent != nil {
		parentID = &parent.ID
	}
	c := entity.NewCategory(name, parentID, nil)
	require.NoError(f.t, persistence.NewCategoryRepository(f.db).Create(f.ctx, c))
	return c
}

func (f *fixtures) invoice(number, expected string) *entity.Invoice {
	f.t.Helper()
	inv := entity.NewInvoice(number, decimal.RequireFromString(expected), "Acme Ltd", nil)
	require.NoError(f.t, persistence.NewInvoiceRepository(f.db).Create(f.ctx, inv))
	return inv
}

type txnOption func(*entity.Transaction)

func withSubcategory(c *entity.Category) txnOption {
	return func(t *entity.Transaction) { t.SubcategoryID = &c.ID }
}

func withInvoice(inv *entity.Invoice) txnOption {
	return func(t *entity.Transaction) { t.InvoiceID = &inv.ID }
}

func withNote(note string) txnOption {
	return func(t *entity.Transaction) { t.Note = note }
}

func withDate(d time.Time) txnOption {
	return func(t *entity.Transaction) { t.Date = d }
}

func withType(tt entity.TransactionType) txnOption {
	return func(t *entity.Transaction) { t.Type = tt }
}

func (f *fixtures) transaction(amount string, category *entity.Category, opts ...txnOption) *entity.Transaction {
	f.t.Helper()
	txn := entity.NewTransaction(entity.TransactionTypeDebit, decimal.RequireFromString(amount), category.ID, f.user.ID, time.Time{})
	for _, opt := range opts {
		opt(txn)
	}
	require.NoError(f.t, persistence.NewTransactionRepository(f.db).Create(f.ctx, txn))
	return txn
}
