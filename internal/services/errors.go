package services

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map every service error onto one of these.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInternal        = errors.New("internal error")
	ErrUnauthenticated = errors.New("authentication required")
)

// Absent, soft-deleted and foreign records all report the same error.
var (
	ErrUserNotFound         = kindError("user not found", ErrNotFound)
	ErrPersonNotFound       = kindError("person not found", ErrNotFound)
	ErrRelationshipNotFound = kindError("relationship not found", ErrNotFound)
	ErrEventNotFound        = kindError("event not found", ErrNotFound)

	ErrUsernameTaken = kindError("username already exists", ErrConflict)
	ErrEmailTaken    = kindError("email already exists", ErrConflict)

	ErrInvalidCredentials = kindError("invalid username or password", ErrUnauthenticated)
)

type sentinelError struct {
	msg  string
	kind error
}

func kindError(msg string, kind error) error {
	return &sentinelError{msg: msg, kind: kind}
}

func (e *sentinelError) Error() string { return e.msg }

func (e *sentinelError) Unwrap() error { return e.kind }

// ValidationError reports malformed or missing input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// storageError hides the driver error from errors.Is/As so callers only ever
// see ErrInternal; the cause stays in the message for logging.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrInternal, err)
}
