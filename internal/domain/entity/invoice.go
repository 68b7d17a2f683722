// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice represents a billable document whose payment state is derived
// from the transactions linked to it.
type Invoice struct {
	ID             uuid.UUID
	InvoiceNumber  string
	ExpectedAmount decimal.Decimal
	ClientName     string
	DueDate        *time.Time
	ExternalID     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Payments are the transactions referencing the invoice. Loaded on demand.
	Payments []*Transaction
}

// NewInvoice creates a new Invoice entity.
func NewInvoice(invoiceNumber string, expectedAmount decimal.Decimal, clientName string, dueDate *time.Time) *Invoice {
	now := time.Now().UTC()

	return &Invoice{
		ID:             uuid.New(),
		InvoiceNumber:  invoiceNumber,
		ExpectedAmount: expectedAmount,
		ClientName:     clientName,
		DueDate:        dueDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// PaymentAmounts returns the amounts of the loaded payments.
func (i *Invoice) PaymentAmounts() []decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(i.Payments))
	for _, p := range i.Payments {
		amounts = append(amounts, p.Amount)
	}
	return amounts
}

// ExternalInvoice is an invoice record as supplied by the upstream feed.
type ExternalInvoice struct {
	ExternalID    string
	InvoiceNumber string
	TotalAmount   *decimal.Decimal
	ClientName    string
	ClientAddress string
	InvoiceDate   *time.Time
}
