// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
// Pointer fields are optional at the transport level; the use case decides
// which of them are required.
type CreateTransactionInput struct {
	CreatedByID        *uuid.UUID
	Type               string
	Amount             *decimal.Decimal
	CategoryID         *uuid.UUID
	SubcategoryID      *uuid.UUID
	InvoiceID          *uuid.UUID
	Date               *time.Time // nil defaults to now
	Note               string
	Employee           string
	Reference          string
	ReconciliationNote string
	ExtraDetails       map[string]any
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	refs            referenceValidator
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	userRepo adapter.UserRepository,
	categoryRepo adapter.CategoryRepository,
	invoiceRepo adapter.InvoiceRepository,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		refs: referenceValidator{
			userRepo:     userRepo,
			categoryRepo: categoryRepo,
			invoiceRepo:  invoiceRepo,
		},
	}
}

// Execute validates the input and persists the transaction. The stored row is
// returned with category, subcategory, creator and invoice attached.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	var missing []string
	if input.CreatedByID == nil {
		missing = append(missing, "createdById")
	}
	if input.Type == "" {
		missing = append(missing, "type")
	}
	if input.Amount == nil {
		missing = append(missing, "amount")
	}
	if input.CategoryID == nil {
		missing = append(missing, "categoryId")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	txnType, err := parseType(input.Type)
	if err != nil {
		return nil, err
	}
	if err := validateAmount(*input.Amount); err != nil {
		return nil, err
	}
	if err := validateNote("note", input.Note); err != nil {
		return nil, err
	}
	if err := validateNote("reconciliationNote", input.ReconciliationNote); err != nil {
		return nil, err
	}

	if err := uc.refs.user(ctx, *input.CreatedByID); err != nil {
		return nil, err
	}
	if err := uc.refs.category(ctx, *input.CategoryID); err != nil {
		return nil, err
	}
	if input.SubcategoryID != nil {
		if err := uc.refs.subcategory(ctx, *input.CategoryID, *input.SubcategoryID); err != nil {
			return nil, err
		}
	}
	if input.InvoiceID != nil {
		if err := uc.refs.invoice(ctx, *input.InvoiceID); err != nil {
			return nil, err
		}
	}

	var date time.Time
	if input.Date != nil {
		date = *input.Date
	}

	txn := entity.NewTransaction(txnType, *input.Amount, *input.CategoryID, *input.CreatedByID, date)
	txn.SubcategoryID = input.SubcategoryID
	txn.InvoiceID = input.InvoiceID
	txn.Note = input.Note
	txn.Employee = input.Employee
	txn.Reference = input.Reference
	txn.ReconciliationNote = input.ReconciliationNote
	txn.ExtraDetails = input.ExtraDetails

	if err := uc.transactionRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	stored, err := uc.transactionRepo.FindByIDWithRelations(ctx, txn.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: stored,
	}, nil
}
