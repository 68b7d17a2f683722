// Package model defines database models for persistence layer.
package model

// All returns every model in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&InvoiceModel{},
		&TransactionModel{},
	}
}
