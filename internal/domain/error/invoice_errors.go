// Package error defines domain-specific errors for the expense ledger.
package error

import "errors"

// Invoice domain errors.
var (
	// ErrInvoiceNotFound is returned when an invoice is not found in the system.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrMissingInvoiceFields is returned when invoiceNumber or expectedAmount is absent.
	ErrMissingInvoiceFields = errors.New("invoiceNumber and expectedAmount are required")

	// ErrInvoiceNumberExists is returned when the invoice number is already taken.
	ErrInvoiceNumberExists = errors.New("invoice number already exists")

	// ErrInvalidExpectedAmount is returned when the expected amount is negative.
	ErrInvalidExpectedAmount = errors.New("expected amount cannot be negative")

	// ErrInvoiceFeedUnavailable is returned when the upstream invoice feed cannot be read.
	ErrInvoiceFeedUnavailable = errors.New("invoice feed unavailable")

	// ErrInvoiceFeedNotConfigured is returned when sync is requested without a feed URL.
	ErrInvoiceFeedNotConfigured = errors.New("invoice feed is not configured")
)

// InvoiceErrorCode defines error codes for invoice errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvoiceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingInvoiceFields  InvoiceErrorCode = "INV-010001"
	ErrCodeInvoiceNumberExists   InvoiceErrorCode = "INV-010002"
	ErrCodeInvalidExpectedAmount InvoiceErrorCode = "INV-010003"
	ErrCodeInvoiceNotFound       InvoiceErrorCode = "INV-010004"

	// Sync errors (02XXXX)
	ErrCodeInvoiceFeedUnavailable   InvoiceErrorCode = "INV-020001"
	ErrCodeInvoiceFeedNotConfigured InvoiceErrorCode = "INV-020002"
)

// InvoiceError represents an invoice error with code and message.
type InvoiceError struct {
	Code    InvoiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceError creates a new InvoiceError with the given code and message.
func NewInvoiceError(code InvoiceErrorCode, message string, err error) *InvoiceError {
	return &InvoiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
