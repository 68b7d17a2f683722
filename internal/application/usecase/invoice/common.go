// Package invoice contains invoice reconciliation use cases.
package invoice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/valueobject"
)

// InvoiceWithStatus is an invoice annotated with its derived payment status.
type InvoiceWithStatus struct {
	Invoice *entity.Invoice
	Status  valueobject.PaymentStatus
}

func withStatus(inv *entity.Invoice) InvoiceWithStatus {
	return InvoiceWithStatus{
		Invoice: inv,
		Status:  valueobject.ComputePaymentStatus(inv.ExpectedAmount, inv.PaymentAmounts()),
	}
}

func invoiceNotFound(err error) error {
	if errors.Is(err, domainerror.ErrInvoiceNotFound) {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotFound,
			"invoice not found",
			domainerror.ErrInvoiceNotFound,
		)
	}
	return fmt.Errorf("failed to find invoice: %w", err)
}

func duplicateNumber(number string) error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeInvoiceNumberExists,
		fmt.Sprintf("invoice number %q already exists", number),
		domainerror.ErrInvoiceNumberExists,
	)
}

func invalidExpectedAmount() error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeInvalidExpectedAmount,
		"expectedAmount must be zero or positive with at most two decimal places",
		domainerror.ErrInvalidExpectedAmount,
	)
}

func missingFields(names []string) error {
	return domainerror.NewInvoiceError(
		domainerror.ErrCodeMissingInvoiceFields,
		"missing required fields: "+strings.Join(names, ", "),
		domainerror.ErrMissingInvoiceFields,
	)
}
