// Package error defines domain-specific errors for the expense ledger.
package error

import (
	"errors"
	"fmt"

	"github.com/slogsolutions/Audit-Management-Platform/internal/domain/entity"
)

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found in the system.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameRequired is returned when a category is created or renamed with an empty name.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrCategoryNameExists is returned when a sibling with the same name already exists.
	ErrCategoryNameExists = errors.New("category name already exists under this parent")

	// ErrInvalidParent is returned when a create references a parent that does not exist.
	ErrInvalidParent = errors.New("parent category does not exist")

	// ErrParentCategoryNotFound is returned when an update moves a category under a missing parent.
	ErrParentCategoryNotFound = errors.New("parent category not found")

	// ErrEmptySubcategoryNames is returned when a bulk create receives no names.
	ErrEmptySubcategoryNames = errors.New("subcategory names cannot be empty")

	// ErrCategorySelfParent is returned when a category would become its own parent.
	ErrCategorySelfParent = errors.New("category cannot be its own parent")

	// ErrCategoryCycle is returned when a re-parent would make a category its own ancestor.
	ErrCategoryCycle = errors.New("cannot set a descendant as parent")

	// ErrCategoryHasDependents is returned when a delete is blocked by children or transactions.
	ErrCategoryHasDependents = errors.New("category has subcategories or linked transactions")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010001"
	ErrCodeEmptySubcategoryNames CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidParent         CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010005"
	ErrCodeParentNotFound        CategoryErrorCode = "CAT-010006"
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010007"

	// Hierarchy errors (02XXXX)
	ErrCodeCategorySelfParent CategoryErrorCode = "CAT-020001"
	ErrCodeCategoryCycle      CategoryErrorCode = "CAT-020002"

	// Delete errors (03XXXX)
	ErrCodeCategoryHasDependents CategoryErrorCode = "CAT-030001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error

	// Dependents is set for ErrCodeCategoryHasDependents.
	Dependents *entity.CategoryDependents
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewCategoryHasDependentsError reports the dependents that block a delete.
func NewCategoryHasDependentsError(deps entity.CategoryDependents) *CategoryError {
	return &CategoryError{
		Code: ErrCodeCategoryHasDependents,
		Message: fmt.Sprintf(
			"category has %d subcategories and %d linked transactions; retry with force to delete them",
			deps.SubcategoriesCount, deps.LinkedTransactions,
		),
		Err:        ErrCategoryHasDependents,
		Dependents: &deps,
	}
}
