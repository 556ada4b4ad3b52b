package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so that errors.Is works against the
// sentinel values below even for errors carrying a specific message
// (e.g. an insufficient-stock error naming the short product).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidRate         = NewDomainError("INVALID_RATE", "Exchange rate must be positive")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrPartialFailure      = NewDomainError("PARTIAL_FAILURE", "Operation failed after partial side effects")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)

// NewInsufficientStockError creates an insufficient-stock error naming the
// product that came up short
func NewInsufficientStockError(productName string) *DomainError {
	return NewDomainError("INSUFFICIENT_STOCK", fmt.Sprintf("Insufficient stock for %s", productName))
}

// NewPartialFailureError wraps an error that occurred after earlier steps of
// a multi-step operation already took effect
func NewPartialFailureError(step string, cause error) *DomainError {
	return NewDomainError("PARTIAL_FAILURE", fmt.Sprintf("%s failed after prior side effects: %v", step, cause))
}
