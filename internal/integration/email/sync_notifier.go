package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/adapter"
	"github.com/slogsolutions/Audit-Management-Platform/internal/integration/email/templates"
)

// SyncReportMailer sends invoice sync failure reports by email.
type SyncReportMailer struct {
	sender    adapter.EmailSender
	renderer  *templates.Renderer
	recipient string
}

// NewSyncReportMailer creates a new SyncReportMailer.
func NewSyncReportMailer(sender adapter.EmailSender, renderer *templates.Renderer, recipient string) *SyncReportMailer {
	return &SyncReportMailer{
		sender:    sender,
		renderer:  renderer,
		recipient: recipient,
	}
}

// NotifySyncFailures renders the report and sends it to the configured recipient.
func (m *SyncReportMailer) NotifySyncFailures(ctx context.Context, report adapter.SyncReport) error {
	data := templates.SyncReportData{
		StartedAt: report.StartedAt,
		Fetched:   report.Fetched,
		Created:   report.Created,
		Updated:   report.Updated,
		Failures:  make([]templates.SyncFailureRow, 0, len(report.Failures)),
	}
	for _, f := range report.Failures {
		data.Failures = append(data.Failures, templates.SyncFailureRow(f))
	}

	html, text, err := m.renderer.Render(templates.TemplateSyncReport, data)
	if err != nil {
		return err
	}

	result, err := m.sender.Send(ctx, adapter.SendEmailInput{
		To:      m.recipient,
		Subject: fmt.Sprintf("Invoice sync: %d record(s) failed", len(report.Failures)),
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return fmt.Errorf("failed to send sync report: %w", err)
	}

	slog.Info("invoice sync report sent", "resend_id", result.ResendID, "failures", len(report.Failures))
	return nil
}

// LogNotifier writes sync failures to the structured log. Used when no
// email provider is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger means slog.Default().
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// NotifySyncFailures logs one line per failed record.
func (n *LogNotifier) NotifySyncFailures(ctx context.Context, report adapter.SyncReport) error {
	for _, f := range report.Failures {
		n.logger.WarnContext(ctx, "invoice sync record failed",
			"external_id", f.ExternalID,
			"invoice_number", f.InvoiceNumber,
			"reason", f.Reason,
		)
	}
	return nil
}

var (
	_ adapter.SyncReportNotifier = (*SyncReportMailer)(nil)
	_ adapter.SyncReportNotifier = (*LogNotifier)(nil)
)
