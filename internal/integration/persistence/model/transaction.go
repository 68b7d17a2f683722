// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Type               string          `gorm:"type:varchar(10);not null;index"`
	Amount             decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubcategoryID      *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedByID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvoiceID          *uuid.UUID      `gorm:"type:uuid;index"`
	Date               time.Time       `gorm:"not null;index"`
	Note               string          `gorm:"type:text"`
	Employee           string          `gorm:"type:varchar(255)"`
	Reference          string          `gorm:"type:varchar(255)"`
	ReconciliationNote string          `gorm:"type:text"`
	ExtraDetails       string          `gorm:"type:text"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category    *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	Subcategory *CategoryModel `gorm:"foreignKey:SubcategoryID;references:ID"`
	CreatedBy   *UserModel     `gorm:"foreignKey:CreatedByID;references:ID"`
	Invoice     *InvoiceModel  `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	transaction := &entity.Transaction{
		ID:                 m.ID,
		Type:               entity.TransactionType(m.Type),
		Amount:             m.Amount,
		CategoryID:         m.CategoryID,
		SubcategoryID:      m.SubcategoryID,
		CreatedByID:        m.CreatedByID,
		InvoiceID:          m.InvoiceID,
		Date:               m.Date,
		Note:               m.Note,
		Employee:           m.Employee,
		Reference:          m.Reference,
		ReconciliationNote: m.ReconciliationNote,
		ExtraDetails:       decodeAttributes(m.ExtraDetails),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}

	if m.Category != nil {
		transaction.Category = m.Category.ToEntity()
	}
	if m.Subcategory != nil {
		transaction.Subcategory = m.Subcategory.ToEntity()
	}
	if m.CreatedBy != nil {
		transaction.CreatedBy = m.CreatedBy.ToEntity()
	}
	if m.Invoice != nil {
		transaction.Invoice = m.Invoice.ToEntity()
	}

	return transaction
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                 transaction.ID,
		Type:               string(transaction.Type),
		Amount:             transaction.Amount,
		CategoryID:         transaction.CategoryID,
		SubcategoryID:      transaction.SubcategoryID,
		CreatedByID:        transaction.CreatedByID,
		InvoiceID:          transaction.InvoiceID,
		Date:               transaction.Date,
		Note:               transaction.Note,
		Employee:           transaction.Employee,
		Reference:          transaction.Reference,
		ReconciliationNote: transaction.ReconciliationNote,
		ExtraDetails:       encodeAttributes(transaction.ExtraDetails),
		CreatedAt:          transaction.CreatedAt,
		UpdatedAt:          transaction.UpdatedAt,
	}
}
