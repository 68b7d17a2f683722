// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// InvoiceModel represents the invoices table in the database.
type InvoiceModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceNumber  string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	ExpectedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ClientName     string          `gorm:"type:varchar(500)"`
	DueDate        *time.Time
	ExternalID     *string   `gorm:"type:varchar(100);uniqueIndex"`
	CreatedAt      time.Time `gorm:"not null;index"`
	UpdatedAt      time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Payments []TransactionModel `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for the InvoiceModel.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToEntity converts an InvoiceModel to a domain Invoice entity.
func (m *InvoiceModel) ToEntity() *entity.Invoice {
	invoice := &entity.Invoice{
		ID:             m.ID,
		InvoiceNumber:  m.InvoiceNumber,
		ExpectedAmount: m.ExpectedAmount,
		ClientName:     m.ClientName,
		DueDate:        m.DueDate,
		ExternalID:     m.ExternalID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.Payments != nil {
		invoice.Payments = make([]*entity.Transaction, len(m.Payments))
		for i := range m.Payments {
			invoice.Payments[i] = m.Payments[i].ToEntity()
		}
	}

	return invoice
}

// InvoiceFromEntity creates an InvoiceModel from a domain Invoice entity.
func InvoiceFromEntity(invoice *entity.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:             invoice.ID,
		InvoiceNumber:  invoice.InvoiceNumber,
		ExpectedAmount: invoice.ExpectedAmount,
		ClientName:     invoice.ClientName,
		DueDate:        invoice.DueDate,
		ExternalID:     invoice.ExternalID,
		CreatedAt:      invoice.CreatedAt,
		UpdatedAt:      invoice.UpdatedAt,
	}
}
