package service

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidQuantity         = errors.New("quantity must be a positive number")
	ErrEmptyOrder              = errors.New("cannot place an order without items")
	ErrInvalidStatusTransition = errors.New("order status transition not allowed")
)

// FieldError describes one invalid input field
type FieldError struct {
	Field   string
	Message string
	Code    string
}

// ValidationError rejects a request before anything is written
type ValidationError struct {
	Message string
	Fields  []FieldError
	cause   error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Unwrap exposes the sentinel that caused the rejection, if any
func (e *ValidationError) Unwrap() error {
	return e.cause
}

func invalidField(cause error, field, message, code string) *ValidationError {
	return &ValidationError{
		Message: "Invalid request data",
		Fields:  []FieldError{{Field: field, Message: message, Code: code}},
		cause:   cause,
	}
}
