package apperr

import (
	"errors"
	"fmt"
)

// Kind is a stable, machine-readable error code. Handlers map each kind to an
// HTTP status; everything else in the process matches on kinds, never on
// message text.
type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindNotFound           Kind = "not_found"
	KindUnsupportedFormat  Kind = "unsupported_format"
	KindFileTooLarge       Kind = "file_too_large"
	KindStorageUnavailable Kind = "storage_unavailable"
	KindConsistency        Kind = "consistency_error"
	KindInternal           Kind = "internal_error"
)

// Error carries a kind, a user-safe message and an optional internal cause.
// Message is what callers may show to users; the cause (filesystem errno, SDK
// error, SQL error) only ever reaches logs.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps cause for the logs while presenting only message to callers.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf returns the kind of err, or KindInternal for errors that did not
// originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
