package models

import (
	"errors"
	"fmt"
)

var (
	ErrMissingConfiguration = errors.New("missing configuration")
	ErrAdapterUnavailable   = errors.New("adapter unavailable")
	ErrMalformedResponse    = errors.New("malformed response")
	ErrFatalPlanning        = errors.New("no trip plan could be produced")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrRunNotFound          = errors.New("trip run not found")
	ErrInvalidTransition    = errors.New("invalid phase transition")
)

// ValidationError is missing or malformed user input. It is surfaced before
// any network call and never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
