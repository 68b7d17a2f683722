// Package invoicesync contains the upstream invoice feed synchronisation use case.
package invoicesync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/valueobject"
)

// SyncInvoicesOutput reports the outcome of one sync run.
// Synced is the number of upserts performed (Created + Updated). Rounded counts
// synced records whose upstream total carried more than two fractional digits.
type SyncInvoicesOutput struct {
	Fetched  int
	Synced   int
	Created  int
	Updated  int
	Rounded  int
	Failures []adapter.SyncFailure
}

// SyncInvoicesUseCase upserts upstream invoices matched by external id.
type SyncInvoicesUseCase struct {
	feed        adapter.InvoiceFeed
	invoiceRepo adapter.InvoiceRepository
	notifier    adapter.SyncReportNotifier
}

// NewSyncInvoicesUseCase creates a new SyncInvoicesUseCase instance.
// feed may be nil when no upstream is configured; notifier may be nil.
func NewSyncInvoicesUseCase(
	feed adapter.InvoiceFeed,
	invoiceRepo adapter.InvoiceRepository,
	notifier adapter.SyncReportNotifier,
) *SyncInvoicesUseCase {
	return &SyncInvoicesUseCase{
		feed:        feed,
		invoiceRepo: invoiceRepo,
		notifier:    notifier,
	}
}

// Execute fetches the full upstream list and upserts each record.
// A failed fetch aborts with no writes. A failing record is reported and
// the batch continues.
func (uc *SyncInvoicesUseCase) Execute(ctx context.Context) (*SyncInvoicesOutput, error) {
	if uc.feed == nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceFeedNotConfigured,
			"invoice feed is not configured",
			domainerror.ErrInvoiceFeedNotConfigured,
		)
	}

	startedAt := time.Now().UTC()
	records, err := uc.feed.FetchInvoices(ctx)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceFeedUnavailable,
			"failed to fetch upstream invoices",
			errors.Join(domainerror.ErrInvoiceFeedUnavailable, err),
		)
	}

	out := &SyncInvoicesOutput{
		Fetched:  len(records),
		Failures: []adapter.SyncFailure{},
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		inv, err := toInvoice(rec)
		if err != nil {
			out.Failures = append(out.Failures, failure(rec, err))
			continue
		}

		created, err := uc.invoiceRepo.UpsertByExternalID(ctx, inv)
		if err != nil {
			out.Failures = append(out.Failures, failure(rec, fmt.Errorf("failed to upsert invoice: %w", err)))
			continue
		}
		if !inv.ExpectedAmount.Equal(*rec.TotalAmount) {
			out.Rounded++
			slog.Warn("upstream invoice total rounded to cents",
				"external_id", *inv.ExternalID,
				"invoice_number", inv.InvoiceNumber,
				"upstream_total", rec.TotalAmount.String(),
				"stored_total", valueobject.FormatMoney(inv.ExpectedAmount),
			)
		}
		if created {
			out.Created++
		} else {
			out.Updated++
		}
	}
	out.Synced = out.Created + out.Updated

	slog.Info("invoice sync completed",
		"fetched", out.Fetched,
		"created", out.Created,
		"updated", out.Updated,
		"rounded", out.Rounded,
		"failed", len(out.Failures),
	)

	if len(out.Failures) > 0 && uc.notifier != nil {
		report := adapter.SyncReport{
			StartedAt: startedAt,
			Fetched:   out.Fetched,
			Created:   out.Created,
			Updated:   out.Updated,
			Failures:  out.Failures,
		}
		if err := uc.notifier.NotifySyncFailures(ctx, report); err != nil {
			slog.Warn("failed to send invoice sync report", "error", err)
		}
	}

	return out, nil
}

// toInvoice maps an upstream record onto a local invoice.
func toInvoice(rec entity.ExternalInvoice) (*entity.Invoice, error) {
	externalID := strings.TrimSpace(rec.ExternalID)
	number := strings.TrimSpace(rec.InvoiceNumber)

	switch {
	case externalID == "":
		return nil, errors.New("record has no id")
	case number == "":
		return nil, errors.New("record has no invoice number")
	case rec.TotalAmount == nil:
		return nil, errors.New("record has no total amount")
	case rec.TotalAmount.IsNegative():
		return nil, fmt.Errorf("total amount %s is negative", rec.TotalAmount.String())
	}

	var dueDate *time.Time
	if rec.InvoiceDate != nil {
		d := rec.InvoiceDate.UTC()
		dueDate = &d
	}

	inv := entity.NewInvoice(number, rec.TotalAmount.Round(valueobject.MoneyPlaces), ClientDisplayName(rec.ClientName, rec.ClientAddress), dueDate)
	inv.ExternalID = &externalID
	return inv, nil
}

// ClientDisplayName joins the client name and address on separate lines, dropping empty parts.
func ClientDisplayName(name, address string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{name, address} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}

func failure(rec entity.ExternalInvoice, err error) adapter.SyncFailure {
	return adapter.SyncFailure{
		ExternalID:    rec.ExternalID,
		InvoiceNumber: rec.InvoiceNumber,
		Reason:        err.Error(),
	}
}
