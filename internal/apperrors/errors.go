// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error. The API layer maps kinds to HTTP
// statuses; services use them to keep the failure taxonomy uniform.
type Kind string

const (
	KindValidation    Kind = "validation_error"
	KindNotFound      Kind = "not_found"
	KindConfiguration Kind = "configuration_error"
	KindProvider      Kind = "provider_error"
	KindUnsupported   Kind = "unsupported"
	KindInternal      Kind = "internal_error"
)

// Error is a typed application error with an optional wrapped cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Validation creates a validation error (bad caller input).
func Validation(message string, cause error) *Error {
	return New(KindValidation, message, cause)
}

// NotFound creates a lookup-miss error.
func NotFound(message string, cause error) *Error {
	return New(KindNotFound, message, cause)
}

// Configuration creates a missing/invalid-credentials error.
func Configuration(message string, cause error) *Error {
	return New(KindConfiguration, message, cause)
}

// Provider creates an error for a failed upstream AI call.
func Provider(message string, cause error) *Error {
	return New(KindProvider, message, cause)
}

// Unsupported creates an error for inputs the system cannot process.
func Unsupported(message string, cause error) *Error {
	return New(KindUnsupported, message, cause)
}

// Internal creates an unexpected-failure error.
func Internal(message string, cause error) *Error {
	return New(KindInternal, message, cause)
}

// KindOf extracts the kind from an error chain, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether any error in the chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
