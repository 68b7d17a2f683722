package invoice

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
)

// DeleteInvoiceInput represents the input for invoice deletion.
type DeleteInvoiceInput struct {
	InvoiceID uuid.UUID
}

// DeleteInvoiceOutput reports how many payments were detached.
type DeleteInvoiceOutput struct {
	PaymentsDetached int64
}

// DeleteInvoiceUseCase handles invoice deletion logic.
type DeleteInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewDeleteInvoiceUseCase creates a new DeleteInvoiceUseCase instance.
func NewDeleteInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *DeleteInvoiceUseCase {
	return &DeleteInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute deletes the invoice. Its payments are kept with their invoice reference cleared.
func (uc *DeleteInvoiceUseCase) Execute(ctx context.Context, input DeleteInvoiceInput) (*DeleteInvoiceOutput, error) {
	detached, err := uc.invoiceRepo.DeleteDetachingPayments(ctx, input.InvoiceID)
	if err != nil {
		return nil, invoiceNotFound(err)
	}

	if detached > 0 {
		slog.Info("invoice deleted, payments detached",
			"invoice_id", input.InvoiceID,
			"payments_detached", detached,
		)
	}

	return &DeleteInvoiceOutput{PaymentsDetached: detached}, nil
}
