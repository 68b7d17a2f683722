package invoicesync_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/invoicesync"
	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
	domainerror "github.com/slogsolutions/Audit-Management-Platform/internal/domain/error"
	"github.com/slogsolutions/Audit-Management-Platform/internal/infra/db/dbtest"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/persistence"
)

type stubFeed struct {
	records []entity.ExternalInvoice
	err     error
	calls   int
}

func (f *stubFeed) FetchInvoices(ctx context.Context) ([]entity.ExternalInvoice, error) {
	f.calls++
	return f.records, f.err
}

type recordingNotifier struct {
	reports []adapter.SyncReport
	err     error
}

func (n *recordingNotifier) NotifySyncFailures(ctx context.Context, report adapter.SyncReport) error {
	n.reports = append(n.reports, report)
	return n.err
}

func amount(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func record(id, number, total string) entity.ExternalInvoice {
	date := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	return entity.ExternalInvoice{
		ExternalID:    id,
		InvoiceNumber: number,
		TotalAmount:   amount(total),
		ClientName:    "Globex",
		ClientAddress: "12 Harbour Rd",
		InvoiceDate:   &date,
	}
}

func TestSyncInvoices_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewInvoiceRepository(dbtest.Open(t))
	feed := &stubFeed{records: []entity.ExternalInvoice{
		record("101", "EXT-101", "500.00"),
		record("102", "EXT-102", "75.25"),
	}}
	notifier := &recordingNotifier{}
	uc := invoicesync.NewSyncInvoicesUseCase(feed, repo, notifier)

	first, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Fetched)
	assert.Equal(t, 2, first.Created)
	assert.Equal(t, 2, first.Synced)
	assert.Empty(t, first.Failures)

	before, err := repo.FindAllWithPayments(ctx)
	require.NoError(t, err)

	second, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 2, second.Updated)
	assert.Equal(t, 2, second.Synced)

	after, err := repo.FindAllWithPayments(ctx)
	require.NoError(t, err)
	require.Len(t, after, 2)

	ids := map[string]string{}
	for _, inv := range before {
		ids[*inv.ExternalID] = inv.ID.String()
	}
	for _, inv := range after {
		assert.Equal(t, ids[*inv.ExternalID], inv.ID.String(), "rows are matched by external id")
		assert.Equal(t, "Globex\n12 Harbour Rd", inv.ClientName)
		require.NotNil(t, inv.DueDate)
	}
	assert.Empty(t, notifier.reports)
}

func TestSyncInvoices_MatchesByExternalIDNotNumber(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewInvoiceRepository(dbtest.Open(t))
	feed := &stubFeed{records: []entity.ExternalInvoice{record("7", "EXT-7", "10.00")}}
	uc := invoicesync.NewSyncInvoicesUseCase(feed, repo, nil)

	_, err := uc.Execute(ctx)
	require.NoError(t, err)

	feed.records = []entity.ExternalInvoice{record("7", "EXT-7-RENUMBERED", "12.50")}
	out, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Updated)

	all, err := repo.FindAllWithPayments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "EXT-7-RENUMBERED", all[0].InvoiceNumber)
	assert.Equal(t, "12.50", all[0].ExpectedAmount.StringFixed(2))
}

func TestSyncInvoices_ReportsRoundedTotals(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	ctx := context.Background()
	repo := persistence.NewInvoiceRepository(dbtest.Open(t))
	feed := &stubFeed{records: []entity.ExternalInvoice{
		record("1", "EXT-1", "99.999"),
		record("2", "EXT-2", "40.10"),
		record("3", "EXT-3", "12.5000"),
	}}

	out, err := invoicesync.NewSyncInvoicesUseCase(feed, repo, nil).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Synced)
	assert.Equal(t, 1, out.Rounded)
	assert.Empty(t, out.Failures)

	all, err := repo.FindAllWithPayments(ctx)
	require.NoError(t, err)
	stored := map[string]string{}
	for _, inv := range all {
		stored[inv.InvoiceNumber] = inv.ExpectedAmount.StringFixed(2)
	}
	assert.Equal(t, "100.00", stored["EXT-1"])
	assert.Equal(t, "12.50", stored["EXT-3"])

	assert.Contains(t, logs.String(), `"msg":"upstream invoice total rounded to cents"`)
	assert.Contains(t, logs.String(), `"upstream_total":"99.999"`)
	assert.Contains(t, logs.String(), `"stored_total":"100.00"`)
}

func TestSyncInvoices_PartialFailure(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewInvoiceRepository(dbtest.Open(t))

	local := entity.NewInvoice("LOCAL-1", decimal.RequireFromString("5.00"), "Walk-in", nil)
	require.NoError(t, repo.Create(ctx, local))

	noTotal := record("3", "EXT-3", "0")
	noTotal.TotalAmount = nil

	feed := &stubFeed{records: []entity.ExternalInvoice{
		record("1", "EXT-1", "100.00"),
		record("", "EXT-NOID", "1.00"),
		noTotal,
		record("4", "LOCAL-1", "9.00"),
		record("5", "EXT-5", "-3.00"),
		record("6", "EXT-6", "60.00"),
	}}
	notifier := &recordingNotifier{err: errors.New("mail down")}
	uc := invoicesync.NewSyncInvoicesUseCase(feed, repo, notifier)

	out, err := uc.Execute(ctx)
	require.NoError(t, err, "record failures do not abort the batch")
	assert.Equal(t, 6, out.Fetched)
	assert.Equal(t, 2, out.Created)
	assert.Equal(t, 2, out.Synced)
	require.Len(t, out.Failures, 4)

	failed := map[string]bool{}
	for _, f := range out.Failures {
		failed[f.InvoiceNumber] = true
		assert.NotEmpty(t, f.Reason)
	}
	assert.True(t, failed["EXT-NOID"])
	assert.True(t, failed["EXT-3"])
	assert.True(t, failed["LOCAL-1"], "number clash with a local invoice fails that record only")
	assert.True(t, failed["EXT-5"])

	require.Len(t, notifier.reports, 1)
	assert.Equal(t, 6, notifier.reports[0].Fetched)
	assert.Len(t, notifier.reports[0].Failures, 4)

	all, err := repo.FindAllWithPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSyncInvoices_FetchFailure(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewInvoiceRepository(dbtest.Open(t))
	uc := invoicesync.NewSyncInvoicesUseCase(&stubFeed{err: errors.New("connection refused")}, repo, nil)

	_, err := uc.Execute(ctx)
	require.ErrorIs(t, err, domainerror.ErrInvoiceFeedUnavailable)

	var invErr *domainerror.InvoiceError
	require.True(t, errors.As(err, &invErr))
	assert.Equal(t, domainerror.ErrCodeInvoiceFeedUnavailable, invErr.Code)

	all, err := repo.FindAllWithPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSyncInvoices_NotConfigured(t *testing.T) {
	uc := invoicesync.NewSyncInvoicesUseCase(nil, nil, nil)
	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, domainerror.ErrInvoiceFeedNotConfigured)
}

func TestClientDisplayName(t *testing.T) {
	tests := []struct {
		name, client, address, want string
	}{
		{"both", "Globex", "12 Harbour Rd", "Globex\n12 Harbour Rd"},
		{"name only", "Globex", "", "Globex"},
		{"address only", " ", "12 Harbour Rd", "12 Harbour Rd"},
		{"neither", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, invoicesync.ClientDisplayName(tt.client, tt.address))
		})
	}
}
