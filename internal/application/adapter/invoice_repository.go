// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// InvoiceRepository defines the interface for invoice persistence operations.
type InvoiceRepository interface {
	// Create creates a new invoice in the database.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindByID retrieves an invoice by its ID without payments.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)

	// FindAllWithPayments retrieves every invoice, newest first, with payment amounts loaded.
	FindAllWithPayments(ctx context.Context) ([]*entity.Invoice, error)

	// ExistsByInvoiceNumber checks whether an invoice number is taken, ignoring excludeID when set.
	ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing invoice in the database.
	Update(ctx context.Context, invoice *entity.Invoice) error

	// DeleteDetachingPayments clears invoiceId on the invoice's payments and deletes
	// the invoice as one atomic unit. Returns the number of payments detached.
	DeleteDetachingPayments(ctx context.Context, id uuid.UUID) (int64, error)

	// UpsertByExternalID updates the invoice carrying the same external ID or
	// creates it. Reports whether a row was created.
	UpsertByExternalID(ctx context.Context, invoice *entity.Invoice) (bool, error)
}
