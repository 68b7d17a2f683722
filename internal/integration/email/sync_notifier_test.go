package email_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/email"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/email/templates"
)

func sampleReport() adapter.SyncReport {
	return adapter.SyncReport{
		StartedAt: time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC),
		Fetched:   3,
		Created:   1,
		Updated:   1,
		Failures: []adapter.SyncFailure{
			{ExternalID: "44", InvoiceNumber: "EXT-44", Reason: "total amount -1.00 is negative"},
		},
	}
}

func TestSyncReportMailer(t *testing.T) {
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	t.Run("sends rendered report", func(t *testing.T) {
		sender := email.NewMockEmailSender()
		mailer := email.NewSyncReportMailer(sender, renderer, "finance@example.com")

		require.NoError(t, mailer.NotifySyncFailures(context.Background(), sampleReport()))
		require.Len(t, sender.SentEmails, 1)

		sent := sender.SentEmails[0]
		assert.Equal(t, "finance@example.com", sent.To)
		assert.Equal(t, "Invoice sync: 1 record(s) failed", sent.Subject)
		assert.Contains(t, sent.HTML, "EXT-44")
		assert.Contains(t, sent.Text, "- 44 EXT-44: total amount -1.00 is negative")
		assert.Contains(t, sent.Text, "Fetched 3, created 1, updated 1")
	})

	t.Run("propagates send failure", func(t *testing.T) {
		sender := email.NewMockEmailSender()
		sender.FailError = errors.New("429 rate limited")
		mailer := email.NewSyncReportMailer(sender, renderer, "finance@example.com")

		err := mailer.NotifySyncFailures(context.Background(), sampleReport())
		assert.ErrorIs(t, err, sender.FailError)
	})
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	notifier := email.NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	require.NoError(t, notifier.NotifySyncFailures(context.Background(), sampleReport()))
	assert.Contains(t, buf.String(), `"external_id":"44"`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}
