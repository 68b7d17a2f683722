// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
)

const (
	// DefaultLimit is the page size used when none is given.
	DefaultLimit = 50
	// MaxLimit caps the page size.
	MaxLimit = 500
)

// ListTransactionsInput represents the filter, search, sort and pagination options.
type ListTransactionsInput struct {
	CreatedByID   *uuid.UUID
	From          *time.Time
	To            *time.Time
	Type          string
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	InvoiceID     *uuid.UUID
	Search        string
	SortBy        string // date (default), amount or type
	SortOrder     string // asc or desc (default)
	Limit         int
	Skip          int
}

// ListTransactionsOutput holds one page and the total number of matches.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Total        int64
	Limit        int
	Skip         int
}

// ListTransactionsUseCase handles transaction listing.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute lists matching transactions.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter := entity.TransactionFilter{
		CreatedByID:   input.CreatedByID,
		From:          input.From,
		To:            input.To,
		CategoryID:    input.CategoryID,
		SubcategoryID: input.SubcategoryID,
		InvoiceID:     input.InvoiceID,
		Search:        strings.TrimSpace(input.Search),
		SortBy:        entity.TransactionSortByDate,
		SortAsc:       strings.EqualFold(input.SortOrder, "asc"),
		Limit:         input.Limit,
		Skip:          input.Skip,
	}

	if input.Type != "" {
		t, err := parseType(input.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = &t
	}

	if input.SortBy != "" {
		field := entity.TransactionSortField(strings.ToLower(input.SortBy))
		if !field.IsValid() {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidSortField,
				"sortBy must be date, amount or type",
				domainerror.ErrInvalidSortField,
			)
		}
		filter.SortBy = field
	}

	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}

	page, err := uc.transactionRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: page.Transactions,
		Total:        page.Total,
		Limit:        filter.Limit,
		Skip:         filter.Skip,
	}, nil
}
