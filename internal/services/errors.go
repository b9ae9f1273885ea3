package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error kinds. Every service error matches exactly one of these with errors.Is,
// and handlers map kinds to HTTP statuses.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// kindError is a domain sentinel belonging to one kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// --- Custom Service Errors ---
var (
	ErrInvalidQuantity        = newKindError(ErrValidation, "quantity must be positive")
	ErrInvalidTransactionType = newKindError(ErrValidation, "invalid type, must be IN, OUT, or ADJUST")
	ErrProductNotFound        = newKindError(ErrNotFound, "product not found")
	ErrSKUExists              = newKindError(ErrConflict, "SKU already exists")
	ErrCategoryNotFound       = newKindError(ErrNotFound, "category not found")
	ErrUnknownCategory        = newKindError(ErrValidation, "category does not exist")
	ErrCategoryNameExists     = newKindError(ErrConflict, "category name already exists")
	ErrCategoryHasProducts    = newKindError(ErrConflict, "cannot delete category with existing products")
	ErrUserNotFound           = newKindError(ErrNotFound, "user not found")
	ErrEmailExists            = newKindError(ErrConflict, "email already exists")
	ErrInvalidCredentials     = newKindError(ErrValidation, "invalid email or password")
	ErrInvalidImage           = newKindError(ErrValidation, "only image files are allowed")
	ErrImageTooLarge          = newKindError(ErrValidation, "file too large")
)

// validationError carries a field-specific message of kind ErrValidation.
func validationError(format string, args ...interface{}) error {
	return newKindError(ErrValidation, fmt.Sprintf(format, args...))
}

// InsufficientStockError reports an OUT movement larger than the stock on hand.
type InsufficientStockError struct {
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("cannot remove %s units, only %s available", e.Requested.String(), e.Available.String())
}

// Is makes errors.Is(err, ErrInsufficientStock) hold.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
