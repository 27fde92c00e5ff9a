package errors

import (
	"errors"
	"fmt"
)

// Identity errors
var ErrUnauthorized = errors.New("user is not authorized")
var ErrInvalidCredential = errors.New("invalid credentials")
var ErrDuplicateUsername = errors.New("username already exists")

// Authorization and lookup errors
var ErrForbidden = errors.New("operation is forbidden for user")
var ErrNotFound = errors.New("entity not found")

// Lifecycle precondition errors
var ErrAlreadyRequested = errors.New("user already has a request on this ticket")
var ErrNoSuchRequest = errors.New("user has no request on this ticket")
var ErrTicketUnavailable = errors.New("ticket is no longer available")
var ErrTicketSold = errors.New("ticket is sold")

// ErrConflict signals a stale read detected at save time; the caller may
// retry the whole read-modify-write cycle.
var ErrConflict = errors.New("concurrent modification detected")

// ValidationError reports malformed input on a specific field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for a field.
func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
