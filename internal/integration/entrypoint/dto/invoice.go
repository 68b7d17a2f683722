package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/invoice"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/invoicesync"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/valueobject"
)

// CreateInvoiceRequest represents the request body for invoice creation.
type CreateInvoiceRequest struct {
	InvoiceNumber  string           `json:"invoiceNumber"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount"`
	ClientName     string           `json:"clientName,omitempty"`
	DueDate        *Date            `json:"dueDate,omitempty"`
}

// ToInput converts the request to use case input.
func (r CreateInvoiceRequest) ToInput() invoice.CreateInvoiceInput {
	return invoice.CreateInvoiceInput{
		InvoiceNumber:  r.InvoiceNumber,
		ExpectedAmount: r.ExpectedAmount,
		ClientName:     r.ClientName,
		DueDate:        timePtr(r.DueDate),
	}
}

// UpdateInvoiceRequest represents the request body for invoice update.
// "dueDate": null clears the due date.
type UpdateInvoiceRequest struct {
	InvoiceNumber  *string          `json:"invoiceNumber,omitempty"`
	ExpectedAmount *decimal.Decimal `json:"expectedAmount,omitempty"`
	ClientName     *string          `json:"clientName,omitempty"`
	DueDate        Optional[Date]   `json:"dueDate"`
}

// ToInput converts the request to use case input.
func (r UpdateInvoiceRequest) ToInput(id uuid.UUID) invoice.UpdateInvoiceInput {
	return invoice.UpdateInvoiceInput{
		InvoiceID:      id,
		InvoiceNumber:  r.InvoiceNumber,
		ExpectedAmount: r.ExpectedAmount,
		ClientName:     r.ClientName,
		SetDueDate:     r.DueDate.Set,
		DueDate:        timePtr(r.DueDate.Value),
	}
}

// InvoiceResponse represents an invoice with its derived payment status.
// Money fields are decimal strings with two fractional digits.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	InvoiceNumber  string                `json:"invoiceNumber"`
	ExpectedAmount string                `json:"expectedAmount"`
	ClientName     string                `json:"clientName"`
	DueDate        *time.Time            `json:"dueDate"`
	ExternalID     *string               `json:"externalId"`
	TotalPaid      string                `json:"totalPaid"`
	BalanceDue     string                `json:"balanceDue"`
	IsPaid         bool                  `json:"isPaid"`
	PaymentCount   int                   `json:"paymentCount"`
	Payments       []TransactionResponse `json:"payments,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

// InvoiceListResponse represents the response for listing invoices.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// DeleteInvoiceResponse reports how many payments were detached.
type DeleteInvoiceResponse struct {
	PaymentsDetached int64 `json:"paymentsDetached"`
}

// SyncFailureResponse is one record that could not be synced.
type SyncFailureResponse struct {
	ExternalID    string `json:"externalId"`
	InvoiceNumber string `json:"invoiceNumber"`
	Reason        string `json:"reason"`
}

// SyncInvoicesResponse reports a sync run.
type SyncInvoicesResponse struct {
	Message string                `json:"message"`
	Fetched int                   `json:"fetched"`
	Synced  int                   `json:"synced"`
	Created int                   `json:"created"`
	Updated int                   `json:"updated"`
	Rounded int                   `json:"rounded"`
	Failed  []SyncFailureResponse `json:"failed"`
}

// ToInvoiceResponse converts an invoice with status. Payments are included
// only when withPayments is set.
func ToInvoiceResponse(item invoice.InvoiceWithStatus, withPayments bool) InvoiceResponse {
	inv := item.Invoice
	resp := InvoiceResponse{
		ID:             inv.ID.String(),
		InvoiceNumber:  inv.InvoiceNumber,
		ExpectedAmount: valueobject.FormatMoney(inv.ExpectedAmount),
		ClientName:     inv.ClientName,
		DueDate:        inv.DueDate,
		ExternalID:     inv.ExternalID,
		TotalPaid:      valueobject.FormatMoney(item.Status.TotalPaid),
		BalanceDue:     valueobject.FormatMoney(item.Status.BalanceDue),
		IsPaid:         item.Status.IsPaid,
		PaymentCount:   item.Status.PaymentCount,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
	if withPayments {
		resp.Payments = ToTransactionResponses(inv.Payments)
	}
	return resp
}

// ToInvoiceListResponse converts invoices without their payments.
func ToInvoiceListResponse(items []invoice.InvoiceWithStatus) InvoiceListResponse {
	out := make([]InvoiceResponse, len(items))
	for i, item := range items {
		out[i] = ToInvoiceResponse(item, false)
	}
	return InvoiceListResponse{Invoices: out}
}

// ToSyncInvoicesResponse converts a sync outcome.
func ToSyncInvoicesResponse(out *invoicesync.SyncInvoicesOutput) SyncInvoicesResponse {
	failed := make([]SyncFailureResponse, len(out.Failures))
	for i, f := range out.Failures {
		failed[i] = SyncFailureResponse{ExternalID: f.ExternalID, InvoiceNumber: f.InvoiceNumber, Reason: f.Reason}
	}
	msg := "Sync complete"
	if len(failed) > 0 {
		msg = "Sync completed with failures"
	}
	return SyncInvoicesResponse{
		Message: msg,
		Fetched: out.Fetched,
		Synced:  out.Synced,
		Created: out.Created,
		Updated: out.Updated,
		Rounded: out.Rounded,
		Failed:  failed,
	}
}
