// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/valueobject"
)

const (
	// MaxNoteLength is the maximum allowed length for notes.
	MaxNoteLength = 2000
)

// referenceValidator checks that a transaction only points at rows that exist
// and that its subcategory is a direct child of its category. Every write path
// goes through it.
type referenceValidator struct {
	userRepo     adapter.UserRepository
	categoryRepo adapter.CategoryRepository
	invoiceRepo  adapter.InvoiceRepository
}

func (v referenceValidator) user(ctx context.Context, id uuid.UUID) error {
	if _, err := v.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	return nil
}

func (v referenceValidator) category(ctx context.Context, id uuid.UUID) error {
	if _, err := v.categoryRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return fmt.Errorf("failed to find category: %w", err)
	}
	return nil
}

// subcategory verifies subcategoryID exists and hangs directly under categoryID.
func (v referenceValidator) subcategory(ctx context.Context, categoryID, subcategoryID uuid.UUID) error {
	sub, err := v.categoryRepo.FindByID(ctx, subcategoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnSubcategoryNotFound,
				"subcategory not found",
				domainerror.ErrSubcategoryNotFound,
			)
		}
		return fmt.Errorf("failed to find subcategory: %w", err)
	}

	if !sub.IsChildOf(categoryID) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnHierarchyMismatch,
			"subcategory does not belong to the selected category",
			domainerror.ErrSubcategoryHierarchyMismatch,
		)
	}
	return nil
}

func (v referenceValidator) invoice(ctx context.Context, id uuid.UUID) error {
	if _, err := v.invoiceRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, domainerror.ErrInvoiceNotFound) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTxnInvoiceNotFound,
				"invoice not found",
				domainerror.ErrInvoiceNotFound,
			)
		}
		return fmt.Errorf("failed to find invoice: %w", err)
	}
	return nil
}

// parseType accepts exactly CREDIT or DEBIT.
func parseType(raw string) (entity.TransactionType, error) {
	t := entity.TransactionType(raw)
	if !t.IsValid() {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be CREDIT or DEBIT",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return t, nil
}

func validateAmount(amount decimal.Decimal) error {
	if !valueobject.IsValidAmount(amount) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero with at most two decimal places",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateNote(field, value string) error {
	if len(value) > MaxNoteLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNoteTooLong,
			fmt.Sprintf("%s must not exceed %d characters", field, MaxNoteLength),
			domainerror.ErrNoteTooLong,
		)
	}
	return nil
}

func missingFields(names []string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeMissingTransactionFields,
		"missing required fields: "+strings.Join(names, ", "),
		domainerror.ErrMissingTransactionFields,
	)
}

// transactionNotFound wraps a lookup failure of the transaction being operated on.
func transactionNotFound(err error) error {
	if errors.Is(err, domainerror.ErrTransactionNotFound) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return fmt.Errorf("failed to find transaction: %w", err)
}
