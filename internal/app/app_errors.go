package app

import (
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied = errors.New("notification permission denied")
	ErrDeliveryFailure  = errors.New("notification delivery failure")
	ErrInternalError    = errors.New("internal error")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

func IsValidationError(err error) bool {
	var validationErr *ValidationError

	return errors.As(err, &validationErr)
}
