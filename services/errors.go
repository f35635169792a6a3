package services

import "errors"

// ErrApplicationNotFound is returned when no application matches a tracking ID.
var ErrApplicationNotFound = errors.New("application not found")

// ValidationError marks failures caused by bad client input. Controllers map
// it to HTTP 400; everything else before the durable write maps to 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given client-visible message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
