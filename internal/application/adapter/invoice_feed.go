// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// InvoiceFeed defines the interface for reading invoices from the upstream system.
type InvoiceFeed interface {
	// FetchInvoices retrieves the full upstream invoice list.
	FetchInvoices(ctx context.Context) ([]entity.ExternalInvoice, error)
}
