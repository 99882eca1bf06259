package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("access denied")
	ErrConflict          = errors.New("conflict with current state")
)

// InsufficientStockError reports how far a FEFO allocation fell short.
// errors.Is(err, ErrInsufficientStock) holds for it.
type InsufficientStockError struct {
	ItemID    string
	Requested int64
	Available int64
}

// Shortfall is the number of units that could not be covered.
func (e *InsufficientStockError) Shortfall() int64 {
	return e.Requested - e.Available
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d, short by %d",
		e.ItemID, e.Requested, e.Available, e.Shortfall())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ValidationError names the offending field. errors.Is(err, ErrValidation) holds for it.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// QuantityError explains why a quantity was rejected. errors.Is(err, ErrInvalidQuantity) holds for it.
type QuantityError struct {
	Reason string
}

// NewQuantityError builds a QuantityError.
func NewQuantityError(format string, args ...any) *QuantityError {
	return &QuantityError{Reason: fmt.Sprintf(format, args...)}
}

func (e *QuantityError) Error() string { return "invalid quantity: " + e.Reason }

func (e *QuantityError) Unwrap() error { return ErrInvalidQuantity }
