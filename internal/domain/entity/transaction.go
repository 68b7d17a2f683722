// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// IsValid checks if the transaction type is exactly CREDIT or DEBIT.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

// Transaction represents a single ledger entry.
type Transaction struct {
	ID                 uuid.UUID
	Type               TransactionType
	Amount             decimal.Decimal
	CategoryID         uuid.UUID
	SubcategoryID      *uuid.UUID
	CreatedByID        uuid.UUID
	InvoiceID          *uuid.UUID
	Date               time.Time
	Note               string
	Employee           string
	Reference          string
	ReconciliationNote string
	ExtraDetails       map[string]any
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Associations attached on reads.
	Category    *Category
	Subcategory *Category
	CreatedBy   *User
	Invoice     *Invoice
}

// NewTransaction creates a new Transaction entity. A zero date defaults to now.
func NewTransaction(
	transactionType TransactionType,
	amount decimal.Decimal,
	categoryID uuid.UUID,
	createdByID uuid.UUID,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}

	return &Transaction{
		ID:          uuid.New(),
		Type:        transactionType,
		Amount:      amount,
		CategoryID:  categoryID,
		CreatedByID: createdByID,
		Date:        date.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransactionSortField is a column transactions can be ordered by.
type TransactionSortField string

const (
	TransactionSortByDate   TransactionSortField = "date"
	TransactionSortByAmount TransactionSortField = "amount"
	TransactionSortByType   TransactionSortField = "type"
)

// IsValid checks if the sort field is supported.
func (f TransactionSortField) IsValid() bool {
	switch f {
	case TransactionSortByDate, TransactionSortByAmount, TransactionSortByType:
		return true
	}
	return false
}

// TransactionFilter holds the filter, search, sort and pagination options for listing transactions.
type TransactionFilter struct {
	CreatedByID   *uuid.UUID
	From          *time.Time
	To            *time.Time
	Type          *TransactionType
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	InvoiceID     *uuid.UUID
	Search        string
	SortBy        TransactionSortField
	SortAsc       bool
	Limit         int
	Skip          int
}

// TransactionPage is one page of transactions plus the total match count.
type TransactionPage struct {
	Transactions []*Transaction
	Total        int64
}
