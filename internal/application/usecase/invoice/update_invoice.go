package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
)

// UpdateInvoiceInput is a partial invoice update. Nil fields are left untouched.
type UpdateInvoiceInput struct {
	InvoiceID      uuid.UUID
	InvoiceNumber  *string
	ExpectedAmount *decimal.Decimal
	ClientName     *string

	// SetDueDate marks the due date as part of the patch; a nil DueDate clears it.
	SetDueDate bool
	DueDate    *time.Time
}

// UpdateInvoiceOutput represents the output of invoice update.
type UpdateInvoiceOutput struct {
	Invoice InvoiceWithStatus
}

// UpdateInvoiceUseCase handles invoice update logic.
type UpdateInvoiceUseCase struct {
	invoiceRepo     adapter.InvoiceRepository
	transactionRepo adapter.TransactionRepository
}

// NewUpdateInvoiceUseCase creates a new UpdateInvoiceUseCase instance.
func NewUpdateInvoiceUseCase(invoiceRepo adapter.InvoiceRepository, transactionRepo adapter.TransactionRepository) *UpdateInvoiceUseCase {
	return &UpdateInvoiceUseCase{
		invoiceRepo:     invoiceRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute applies the fields present in the input.
func (uc *UpdateInvoiceUseCase) Execute(ctx context.Context, input UpdateInvoiceInput) (*UpdateInvoiceOutput, error) {
	inv, err := uc.invoiceRepo.FindByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, invoiceNotFound(err)
	}

	if input.InvoiceNumber != nil {
		number := strings.TrimSpace(*input.InvoiceNumber)
		if number == "" {
			return nil, missingFields([]string{"invoiceNumber"})
		}
		if number != inv.InvoiceNumber {
			exists, err := uc.invoiceRepo.ExistsByInvoiceNumber(ctx, number, &inv.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to check invoice number: %w", err)
			}
			if exists {
				return nil, duplicateNumber(number)
			}
		}
		inv.InvoiceNumber = number
	}
	if input.ExpectedAmount != nil {
		if !validExpectedAmount(*input.ExpectedAmount) {
			return nil, invalidExpectedAmount()
		}
		inv.ExpectedAmount = *input.ExpectedAmount
	}
	if input.ClientName != nil {
		inv.ClientName = strings.TrimSpace(*input.ClientName)
	}
	if input.SetDueDate {
		if input.DueDate != nil {
			d := input.DueDate.UTC()
			inv.DueDate = &d
		} else {
			inv.DueDate = nil
		}
	}

	if err := uc.invoiceRepo.Update(ctx, inv); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrInvoiceNumberExists):
			return nil, duplicateNumber(inv.InvoiceNumber)
		case errors.Is(err, domainerror.ErrInvoiceNotFound):
			return nil, invoiceNotFound(err)
		}
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	payments, err := uc.transactionRepo.FindByInvoiceID(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice payments: %w", err)
	}
	inv.Payments = payments

	return &UpdateInvoiceOutput{
		Invoice: withStatus(inv),
	}, nil
}
