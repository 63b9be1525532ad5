package document

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDocument is returned when a document file cannot be decoded or
	// fails validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrUnknownMechanism is returned for a payment mechanism other than lunas or termin.
	ErrUnknownMechanism = errors.New("unknown payment mechanism")
)

// ValidationError describes one field of a document that failed validation.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is lets every ValidationError match ErrInvalidDocument.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
