// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// SyncFailure describes one upstream record that could not be upserted.
type SyncFailure struct {
	ExternalID    string
	InvoiceNumber string
	Reason        string
}

// SyncReport summarises an invoice feed sync.
type SyncReport struct {
	StartedAt time.Time
	Fetched   int
	Created   int
	Updated   int
	Failures  []SyncFailure
}

// SyncReportNotifier defines the interface for reporting sync runs with failed records.
type SyncReportNotifier interface {
	// NotifySyncFailures delivers a report listing the failed records.
	NotifySyncFailures(ctx context.Context, report SyncReport) error
}
