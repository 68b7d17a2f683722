// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence/model"
)

// sortColumns maps sort fields onto qualified columns.
var sortColumns = map[entity.TransactionSortField]string{
	entity.TransactionSortByDate:   "transactions.date",
	entity.TransactionSortByAmount: "transactions.amount",
	entity.TransactionSortByType:   "transactions.type",
}

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// withRelations preloads the associations returned with every read.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Subcategory").
		Preload("CreatedBy").
		Preload("Invoice")
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDWithRelations retrieves a transaction with its associations attached.
func (r *transactionRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := withRelations(r.db.WithContext(ctx)).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// filtered builds a fresh query with every filter of the list applied.
func (r *transactionRepository) filtered(ctx context.Context, filter entity.TransactionFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	if filter.CreatedByID != nil {
		query = query.Where("transactions.created_by_id = ?", *filter.CreatedByID)
	}
	if filter.From != nil {
		query = query.Where("transactions.date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("transactions.date <= ?", filter.To.UTC())
	}
	if filter.Type != nil {
		query = query.Where("transactions.type = ?", string(*filter.Type))
	}
	if filter.CategoryID != nil {
		query = query.Where("transactions.category_id = ?", *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		query = query.Where("transactions.subcategory_id = ?", *filter.SubcategoryID)
	}
	if filter.InvoiceID != nil {
		query = query.Where("transactions.invoice_id = ?", *filter.InvoiceID)
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(search)
		const like = " LIKE ? ESCAPE '\\'"
		query = query.Where(
			r.db.
				Where("LOWER(transactions.note)"+like, pattern).
				Or("LOWER(transactions.employee)"+like, pattern).
				Or("LOWER(transactions.reference)"+like, pattern).
				Or("LOWER(transactions.reconciliation_note)"+like, pattern).
				Or("transactions.created_by_id IN (?)",
					r.db.Model(&model.UserModel{}).Select("id").Where("LOWER(name)"+like, pattern)).
				Or("transactions.category_id IN (?)",
					r.db.Model(&model.CategoryModel{}).Select("id").Where("LOWER(name)"+like, pattern)).
				Or("transactions.subcategory_id IN (?)",
					r.db.Model(&model.CategoryModel{}).Select("id").Where("LOWER(name)"+like, pattern)),
		)
	}

	return query
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for LIKE ... ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// FindByFilter retrieves one page of transactions and the total match count.
// The page and the count are queried concurrently.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionPage, error) {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		column = sortColumns[entity.TransactionSortByDate]
	}
	direction := " DESC"
	if filter.SortAsc {
		direction = " ASC"
	}

	var (
		total             int64
		transactionModels []model.TransactionModel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.filtered(gctx, filter).Count(&total).Error
	})
	g.Go(func() error {
		return withRelations(r.filtered(gctx, filter)).
			Order(column + direction).
			Order("transactions.created_at" + direction).
			Offset(filter.Skip).
			Limit(filter.Limit).
			Find(&transactionModels).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}

	return &entity.TransactionPage{
		Transactions: transactions,
		Total:        total,
	}, nil
}

// FindByInvoiceID retrieves the payments of an invoice, newest first.
func (r *transactionRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Subcategory").
		Preload("CreatedBy").
		Where("invoice_id = ?", invoiceID).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = transactionModels[i].ToEntity()
	}
	return transactions, nil
}

// CountByCategoryIDs counts transactions referencing any of ids as category or subcategory.
func (r *transactionRepository) CountByCategoryIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("category_id IN ? OR subcategory_id IN ?", ids, ids).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Update writes every mutable column of an existing transaction.
// A transaction removed since it was read is reported as not found.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transaction.UpdatedAt = time.Now().UTC()
	m := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Updates(map[string]interface{}{
			"type":                m.Type,
			"amount":              m.Amount,
			"category_id":         m.CategoryID,
			"subcategory_id":      m.SubcategoryID,
			"created_by_id":       m.CreatedByID,
			"invoice_id":          m.InvoiceID,
			"date":                m.Date,
			"note":                m.Note,
			"employee":            m.Employee,
			"reference":           m.Reference,
			"reconciliation_note": m.ReconciliationNote,
			"extra_details":       m.ExtraDetails,
			"updated_at":          m.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete removes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}
