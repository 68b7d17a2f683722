// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
)

// UpdateTransactionInput represents a partial transaction update.
// Nil fields are left untouched.
type UpdateTransactionInput struct {
	TransactionID      uuid.UUID
	CreatedByID        *uuid.UUID
	Type               *string
	Amount             *decimal.Decimal
	CategoryID         *uuid.UUID
	Date               *time.Time
	Note               *string
	Employee           *string
	Reference          *string
	ReconciliationNote *string
	ExtraDetails       *map[string]any

	// SetSubcategory and SetInvoice mark the reference as part of the patch;
	// a nil value then clears it.
	SetSubcategory bool
	SubcategoryID  *uuid.UUID
	SetInvoice     bool
	InvoiceID      *uuid.UUID
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	refs            referenceValidator
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	userRepo adapter.UserRepository,
	categoryRepo adapter.CategoryRepository,
	invoiceRepo adapter.InvoiceRepository,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		refs: referenceValidator{
			userRepo:     userRepo,
			categoryRepo: categoryRepo,
			invoiceRepo:  invoiceRepo,
		},
	}
}

// Execute applies the patch. References present in the patch are re-validated;
// when either the category or the subcategory changes, the resulting pair is
// checked so the subcategory stays a direct child of the category.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	txn, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		return nil, transactionNotFound(err)
	}

	if input.Type != nil {
		t, err := parseType(*input.Type)
		if err != nil {
			return nil, err
		}
		txn.Type = t
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		txn.Amount = *input.Amount
	}
	if input.Note != nil {
		if err := validateNote("note", *input.Note); err != nil {
			return nil, err
		}
		txn.Note = *input.Note
	}
	if input.ReconciliationNote != nil {
		if err := validateNote("reconciliationNote", *input.ReconciliationNote); err != nil {
			return nil, err
		}
		txn.ReconciliationNote = *input.ReconciliationNote
	}

	if input.CreatedByID != nil {
		if err := uc.refs.user(ctx, *input.CreatedByID); err != nil {
			return nil, err
		}
		txn.CreatedByID = *input.CreatedByID
	}
	if input.CategoryID != nil {
		if err := uc.refs.category(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		txn.CategoryID = *input.CategoryID
	}
	if input.SetSubcategory {
		txn.SubcategoryID = input.SubcategoryID
	}
	if (input.CategoryID != nil || input.SetSubcategory) && txn.SubcategoryID != nil {
		if err := uc.refs.subcategory(ctx, txn.CategoryID, *txn.SubcategoryID); err != nil {
			return nil, err
		}
	}
	if input.SetInvoice {
		if input.InvoiceID != nil {
			if err := uc.refs.invoice(ctx, *input.InvoiceID); err != nil {
				return nil, err
			}
		}
		txn.InvoiceID = input.InvoiceID
	}

	if input.Date != nil {
		txn.Date = input.Date.UTC()
	}
	if input.Employee != nil {
		txn.Employee = *input.Employee
	}
	if input.Reference != nil {
		txn.Reference = *input.Reference
	}
	if input.ExtraDetails != nil {
		txn.ExtraDetails = *input.ExtraDetails
	}

	if err := uc.transactionRepo.Update(ctx, txn); err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, transactionNotFound(err)
		}
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	stored, err := uc.transactionRepo.FindByIDWithRelations(ctx, txn.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load updated transaction: %w", err)
	}

	return &UpdateTransactionOutput{
		Transaction: stored,
	}, nil
}
