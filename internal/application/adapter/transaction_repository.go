// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID without associations.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDWithRelations retrieves a transaction with category, subcategory, creator and invoice attached.
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves one page of matching transactions and the total match count.
	FindByFilter(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionPage, error)

	// FindByInvoiceID retrieves the payments of an invoice, newest first, with relations attached.
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*entity.Transaction, error)

	// CountByCategoryIDs counts transactions referencing any of ids as category or subcategory.
	CountByCategoryIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
