// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence/model"
)

// invoiceRepository implements the adapter.InvoiceRepository interface.
type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository instance.
func NewInvoiceRepository(db *gorm.DB) adapter.InvoiceRepository {
	return &invoiceRepository{
		db: db,
	}
}

// Create creates a new invoice in the database. A taken invoice number
// yields domainerror.ErrInvoiceNumberExists.
func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceModel := model.InvoiceFromEntity(invoice)
	result := r.db.WithContext(ctx).Create(invoiceModel)
	if result.Error != nil {
		return translateInvoiceError(result.Error)
	}
	return nil
}

// translateInvoiceError maps unique violations onto the duplicate number error.
func translateInvoiceError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domainerror.ErrInvoiceNumberExists, err)
	}
	return err
}

// FindByID retrieves an invoice by its ID.
func (r *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceModel model.InvoiceModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&invoiceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvoiceNotFound
		}
		return nil, result.Error
	}
	return invoiceModel.ToEntity(), nil
}

// FindAllWithPayments retrieves every invoice, newest first, with payment amounts loaded.
func (r *invoiceRepository) FindAllWithPayments(ctx context.Context) ([]*entity.Invoice, error) {
	var invoiceModels []model.InvoiceModel
	result := r.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "invoice_id", "amount", "type", "date")
		}).
		Order("created_at DESC").
		Find(&invoiceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	invoices := make([]*entity.Invoice, len(invoiceModels))
	for i := range invoiceModels {
		invoices[i] = invoiceModels[i].ToEntity()
	}
	return invoices, nil
}

// ExistsByInvoiceNumber checks whether an invoice number is taken.
func (r *invoiceRepository) ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.InvoiceModel{}).Where("invoice_number = ?", invoiceNumber)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update writes the mutable columns of an existing invoice.
// An invoice removed since it was read is reported as not found.
func (r *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.InvoiceModel{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"invoice_number":  invoice.InvoiceNumber,
			"expected_amount": invoice.ExpectedAmount,
			"client_name":     invoice.ClientName,
			"due_date":        invoice.DueDate,
			"external_id":     invoice.ExternalID,
			"updated_at":      invoice.UpdatedAt,
		})
	if result.Error != nil {
		return translateInvoiceError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrInvoiceNotFound
	}
	return nil
}

// DeleteDetachingPayments clears invoice_id on the payments and deletes the invoice.
func (r *invoiceRepository) DeleteDetachingPayments(ctx context.Context, id uuid.UUID) (int64, error) {
	var detached int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.TransactionModel{}).
			Where("invoice_id = ?", id).
			Updates(map[string]interface{}{
				"invoice_id": nil,
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		detached = result.RowsAffected

		result = tx.Delete(&model.InvoiceModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrInvoiceNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return detached, nil
}

// UpsertByExternalID updates the invoice with the same external ID or creates it.
// On update the local ID and creation time are kept.
func (r *invoiceRepository) UpsertByExternalID(ctx context.Context, invoice *entity.Invoice) (bool, error) {
	if invoice.ExternalID == nil {
		return false, errors.New("external id is required for upsert")
	}

	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.InvoiceModel
		result := tx.Where("external_id = ?", *invoice.ExternalID).First(&existing)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(model.InvoiceFromEntity(invoice)).Error
		}

		invoice.ID = existing.ID
		invoice.CreatedAt = existing.CreatedAt
		invoice.UpdatedAt = time.Now().UTC()
		return tx.Model(&existing).Updates(map[string]interface{}{
			"invoice_number":  invoice.InvoiceNumber,
			"expected_amount": invoice.ExpectedAmount,
			"client_name":     invoice.ClientName,
			"due_date":        invoice.DueDate,
			"updated_at":      invoice.UpdatedAt,
		}).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
