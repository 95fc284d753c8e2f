// Package apperr defines the error kinds surfaced by the service core.
// Handlers map them to HTTP statuses; nothing below the transport layer
// knows about status codes.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidToken       = errors.New("invalid token")
	ErrQuotaExceeded      = errors.New("demo accounts can only create 3 memories")
	ErrImmutableDemo      = errors.New("demo accounts cannot be updated or deleted")
	ErrEmailTaken         = errors.New("user already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateKey is returned by stores when a unique index rejects an
	// insert. Services translate it (email conflict, link retry).
	ErrDuplicateKey = errors.New("duplicate key")
)

// ValidationError reports the first field that violated its constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validation builds a ValidationError for the given field.
func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
