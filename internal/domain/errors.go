package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrSessionNotFound = errors.New("session_not_found")
	ErrUnknownField    = errors.New("unknown_field")
	ErrOverflow        = errors.New("overflow")
)

// Field validation failures. Every parse error returned by the engine wraps
// exactly one of these.
var (
	ErrEmpty      = errors.New("empty")
	ErrNotANumber = errors.New("not_a_number")
)

// ErrorKind tags why a field failed validation.
type ErrorKind string

const (
	KindEmpty      ErrorKind = "EMPTY"
	KindNotANumber ErrorKind = "NOT_A_NUMBER"
)

// Message returns the text shown next to an invalid field.
func (k ErrorKind) Message() string {
	switch k {
	case KindEmpty:
		return "Must not be empty."
	case KindNotANumber:
		return "Must be a number."
	}
	return string(k)
}

// KindOf classifies a parse error. Anything that is not ErrEmpty is
// reported as NOT_A_NUMBER.
func KindOf(err error) ErrorKind {
	if errors.Is(err, ErrEmpty) {
		return KindEmpty
	}
	return KindNotANumber
}

// FieldError attaches a validation failure to the input that caused it.
type FieldError struct {
	Field Field
	Kind  ErrorKind
	Cause error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Kind.Message())
}

func (e FieldError) Unwrap() error {
	return e.Cause
}
