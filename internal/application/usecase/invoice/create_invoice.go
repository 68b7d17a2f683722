package invoice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/valueobject"
)

// CreateInvoiceInput represents the input for invoice creation.
type CreateInvoiceInput struct {
	InvoiceNumber  string
	ExpectedAmount *decimal.Decimal
	ClientName     string
	DueDate        *time.Time
}

// CreateInvoiceOutput represents the output of invoice creation.
type CreateInvoiceOutput struct {
	Invoice InvoiceWithStatus
}

// CreateInvoiceUseCase handles invoice creation logic.
type CreateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase instance.
func NewCreateInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
	}
}

// Execute validates and persists a new invoice. It starts with no payments.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceOutput, error) {
	number := strings.TrimSpace(input.InvoiceNumber)

	var missing []string
	if number == "" {
		missing = append(missing, "invoiceNumber")
	}
	if input.ExpectedAmount == nil {
		missing = append(missing, "expectedAmount")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	if !validExpectedAmount(*input.ExpectedAmount) {
		return nil, invalidExpectedAmount()
	}

	exists, err := uc.invoiceRepo.ExistsByInvoiceNumber(ctx, number, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check invoice number: %w", err)
	}
	if exists {
		return nil, duplicateNumber(number)
	}

	var dueDate *time.Time
	if input.DueDate != nil {
		d := input.DueDate.UTC()
		dueDate = &d
	}

	inv := entity.NewInvoice(number, *input.ExpectedAmount, strings.TrimSpace(input.ClientName), dueDate)
	if err := uc.invoiceRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNumberExists) {
			return nil, duplicateNumber(number)
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return &CreateInvoiceOutput{
		Invoice: withStatus(inv),
	}, nil
}

func validExpectedAmount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(valueobject.MoneyPlaces))
}
