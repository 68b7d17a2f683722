package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/transaction"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/valueobject"
)

// CategoryRef, UserRef and InvoiceRef are the compact forms attached to transactions.
type (
	CategoryRef struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	UserRef struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	InvoiceRef struct {
		ID            string `json:"id"`
		InvoiceNumber string `json:"invoiceNumber"`
	}
)

// CreateTransactionRequest represents the request body for transaction creation.
// Amount accepts a JSON string or number. CreatedByID defaults to the caller.
type CreateTransactionRequest struct {
	Type               string           `json:"type"`
	Amount             *decimal.Decimal `json:"amount"`
	CategoryID         *uuid.UUID       `json:"categoryId"`
	SubcategoryID      *uuid.UUID       `json:"subcategoryId,omitempty"`
	InvoiceID          *uuid.UUID       `json:"invoiceId,omitempty"`
	CreatedByID        *uuid.UUID       `json:"createdById,omitempty"`
	Date               *Date            `json:"date,omitempty"`
	Note               string           `json:"note,omitempty"`
	Employee           string           `json:"employee,omitempty"`
	Reference          string           `json:"reference,omitempty"`
	ReconciliationNote string           `json:"reconciliationNote,omitempty"`
	ExtraDetails       map[string]any   `json:"extraDetails,omitempty"`
}

// ToInput converts the request to use case input.
func (r CreateTransactionRequest) ToInput(callerID uuid.UUID) transaction.CreateTransactionInput {
	createdBy := r.CreatedByID
	if createdBy == nil {
		createdBy = &callerID
	}
	return transaction.CreateTransactionInput{
		CreatedByID:        createdBy,
		Type:               r.Type,
		Amount:             r.Amount,
		CategoryID:         r.CategoryID,
		SubcategoryID:      r.SubcategoryID,
		InvoiceID:          r.InvoiceID,
		Date:               timePtr(r.Date),
		Note:               r.Note,
		Employee:           r.Employee,
		Reference:          r.Reference,
		ReconciliationNote: r.ReconciliationNote,
		ExtraDetails:       r.ExtraDetails,
	}
}

// UpdateTransactionRequest represents the request body for transaction update.
// subcategoryId and invoiceId may be null to clear them.
type UpdateTransactionRequest struct {
	Type               *string             `json:"type,omitempty"`
	Amount             *decimal.Decimal    `json:"amount,omitempty"`
	CategoryID         *uuid.UUID          `json:"categoryId,omitempty"`
	SubcategoryID      Optional[uuid.UUID] `json:"subcategoryId"`
	InvoiceID          Optional[uuid.UUID] `json:"invoiceId"`
	CreatedByID        *uuid.UUID          `json:"createdById,omitempty"`
	Date               *Date               `json:"date,omitempty"`
	Note               *string             `json:"note,omitempty"`
	Employee           *string             `json:"employee,omitempty"`
	Reference          *string             `json:"reference,omitempty"`
	ReconciliationNote *string             `json:"reconciliationNote,omitempty"`
	ExtraDetails       *map[string]any     `json:"extraDetails,omitempty"`
}

// ToInput converts the request to use case input.
func (r UpdateTransactionRequest) ToInput(id uuid.UUID) transaction.UpdateTransactionInput {
	return transaction.UpdateTransactionInput{
		TransactionID:      id,
		CreatedByID:        r.CreatedByID,
		Type:               r.Type,
		Amount:             r.Amount,
		CategoryID:         r.CategoryID,
		Date:               timePtr(r.Date),
		Note:               r.Note,
		Employee:           r.Employee,
		Reference:          r.Reference,
		ReconciliationNote: r.ReconciliationNote,
		ExtraDetails:       r.ExtraDetails,
		SetSubcategory:     r.SubcategoryID.Set,
		SubcategoryID:      r.SubcategoryID.Value,
		SetInvoice:         r.InvoiceID.Set,
		InvoiceID:          r.InvoiceID.Value,
	}
}

// ListTransactionsQuery represents the query string of GET /transactions.
type ListTransactionsQuery struct {
	CreatedByID   string `form:"createdById"`
	From          string `form:"from"`
	To            string `form:"to"`
	Type          string `form:"type"`
	CategoryID    string `form:"categoryId"`
	SubcategoryID string `form:"subcategoryId"`
	InvoiceID     string `form:"invoiceId"`
	Search        string `form:"search"`
	SortBy        string `form:"sortBy"`
	SortOrder     string `form:"sortOrder"`
	Limit         int    `form:"limit"`
	Skip          int    `form:"skip"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                 string         `json:"id"`
	Type               string         `json:"type"`
	Amount             string         `json:"amount"`
	Date               time.Time      `json:"date"`
	CategoryID         string         `json:"categoryId"`
	SubcategoryID      *string        `json:"subcategoryId"`
	InvoiceID          *string        `json:"invoiceId"`
	CreatedByID        string         `json:"createdById"`
	Note               string         `json:"note"`
	Employee           string         `json:"employee"`
	Reference          string         `json:"reference"`
	ReconciliationNote string         `json:"reconciliationNote"`
	ExtraDetails       map[string]any `json:"extraDetails,omitempty"`
	Category           *CategoryRef   `json:"category,omitempty"`
	Subcategory        *CategoryRef   `json:"subcategory,omitempty"`
	CreatedBy          *UserRef       `json:"createdBy,omitempty"`
	Invoice            *InvoiceRef    `json:"invoice,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// TransactionListResponse represents one page of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Skip         int                   `json:"skip"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:                 t.ID.String(),
		Type:               string(t.Type),
		Amount:             valueobject.FormatMoney(t.Amount),
		Date:               t.Date,
		CategoryID:         t.CategoryID.String(),
		SubcategoryID:      uuidString(t.SubcategoryID),
		InvoiceID:          uuidString(t.InvoiceID),
		CreatedByID:        t.CreatedByID.String(),
		Note:               t.Note,
		Employee:           t.Employee,
		Reference:          t.Reference,
		ReconciliationNote: t.ReconciliationNote,
		ExtraDetails:       t.ExtraDetails,
		Category:           toCategoryRef(t.Category),
		Subcategory:        toCategoryRef(t.Subcategory),
		CreatedBy:          toUserRef(t.CreatedBy),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
	if t.Invoice != nil {
		resp.Invoice = &InvoiceRef{ID: t.Invoice.ID.String(), InvoiceNumber: t.Invoice.InvoiceNumber}
	}
	return resp
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		out[i] = ToTransactionResponse(t)
	}
	return out
}

func toUserRef(u *entity.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID.String(), Name: u.Name, Email: u.Email}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
