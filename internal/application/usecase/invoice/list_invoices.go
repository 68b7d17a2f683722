package invoice

import (
	"context"
	"fmt"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/valueobject"
)

// ListInvoicesOutput holds invoices newest first, each with its payment status.
type ListInvoicesOutput struct {
	Invoices []InvoiceWithStatus
}

// ListInvoicesUseCase returns every invoice.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(invoiceRepo adapter.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute lists all invoices. Totals are recomputed from the current payments.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context) (*ListInvoicesOutput, error) {
	invoices, err := uc.invoiceRepo.FindAllWithPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	out := make([]InvoiceWithStatus, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, withStatus(inv))
	}

	return &ListInvoicesOutput{Invoices: out}, nil
}

// ListOpenInvoicesUseCase returns invoices still owing more than the tolerance.
type ListOpenInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	config      valueobject.ReconciliationConfig
}

// NewListOpenInvoicesUseCase creates a new ListOpenInvoicesUseCase instance.
func NewListOpenInvoicesUseCase(invoiceRepo adapter.InvoiceRepository, config valueobject.ReconciliationConfig) *ListOpenInvoicesUseCase {
	return &ListOpenInvoicesUseCase{
		invoiceRepo: invoiceRepo,
		config:      config,
	}
}

// Execute lists open invoices.
func (uc *ListOpenInvoicesUseCase) Execute(ctx context.Context) (*ListInvoicesOutput, error) {
	invoices, err := uc.invoiceRepo.FindAllWithPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	out := make([]InvoiceWithStatus, 0)
	for _, inv := range invoices {
		s := withStatus(inv)
		if uc.config.IsOpen(s.Status) {
			out = append(out, s)
		}
	}

	return &ListInvoicesOutput{Invoices: out}, nil
}
