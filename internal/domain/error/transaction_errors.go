// Package error defines domain-specific errors for the expense ledger.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrMissingTransactionFields is returned when createdById, type, amount or categoryId is absent.
	ErrMissingTransactionFields = errors.New("missing required transaction fields")

	// ErrInvalidTransactionType is returned when the type is not CREDIT or DEBIT.
	ErrInvalidTransactionType = errors.New("type must be CREDIT or DEBIT")

	// ErrInvalidTransactionAmount is returned when the amount is not positive or has more than two decimals.
	ErrInvalidTransactionAmount = errors.New("amount must be positive with at most two decimal places")

	// ErrSubcategoryNotFound is returned when the referenced subcategory does not exist.
	ErrSubcategoryNotFound = errors.New("subcategory not found")

	// ErrSubcategoryHierarchyMismatch is returned when the subcategory is not a direct child of the category.
	ErrSubcategoryHierarchyMismatch = errors.New("subcategory does not belong to the selected category")

	// ErrNoteTooLong is returned when a note exceeds the maximum length.
	ErrNoteTooLong = errors.New("note too long")

	// ErrInvalidSortField is returned when the list is sorted by an unsupported column.
	ErrInvalidSortField = errors.New("sortBy must be date, amount or type")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidSortField         TransactionErrorCode = "TXN-010005"
	ErrCodeNoteTooLong              TransactionErrorCode = "TXN-010006"

	// Reference errors (02XXXX)
	ErrCodeTxnUserNotFound        TransactionErrorCode = "TXN-020001"
	ErrCodeTxnCategoryNotFound    TransactionErrorCode = "TXN-020002"
	ErrCodeTxnSubcategoryNotFound TransactionErrorCode = "TXN-020003"
	ErrCodeTxnHierarchyMismatch   TransactionErrorCode = "TXN-020004"
	ErrCodeTxnInvoiceNotFound     TransactionErrorCode = "TXN-020005"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
