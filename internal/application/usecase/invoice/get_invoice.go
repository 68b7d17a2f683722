package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
)

// GetInvoiceInput represents the input for invoice detail retrieval.
type GetInvoiceInput struct {
	InvoiceID uuid.UUID
}

// GetInvoiceOutput carries the invoice with its payments, newest first.
type GetInvoiceOutput struct {
	Invoice InvoiceWithStatus
}

// GetInvoiceUseCase handles invoice detail retrieval.
type GetInvoiceUseCase struct {
	invoiceRepo     adapter.InvoiceRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetInvoiceUseCase creates a new GetInvoiceUseCase instance.
func NewGetInvoiceUseCase(invoiceRepo adapter.InvoiceRepository, transactionRepo adapter.TransactionRepository) *GetInvoiceUseCase {
	return &GetInvoiceUseCase{
		invoiceRepo:     invoiceRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute loads the invoice and its payments with category, subcategory and creator attached.
func (uc *GetInvoiceUseCase) Execute(ctx context.Context, input GetInvoiceInput) (*GetInvoiceOutput, error) {
	inv, err := uc.invoiceRepo.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, invoiceNotFound(err)
	}

	payments, err := uc.transactionRepo.FindByInvoiceID(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice payments: %w", err)
	}
	inv.Payments = payments

	return &GetInvoiceOutput{
		Invoice: withStatus(inv),
	}, nil
}
