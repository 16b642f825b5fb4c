package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure for callers that branch on outcome
// rather than on the underlying driver error.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindDuplicate   Kind = "duplicate"
	KindConflict    Kind = "conflict"
	KindValidation  Kind = "validation"
	KindTransaction Kind = "transaction"
)

// Error carries a kind, a caller-facing message, and the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Duplicate(message string, cause error) error {
	return &Error{Kind: KindDuplicate, Message: message, Cause: cause}
}

func Conflict(message string, cause error) error {
	return &Error{Kind: KindConflict, Message: message, Cause: cause}
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// Transaction wraps a failure that occurred after a transaction was opened.
// The transaction is guaranteed to have been rolled back by the time the
// wrapped error is returned.
func Transaction(message string, cause error) error {
	return &Error{Kind: KindTransaction, Message: message, Cause: cause}
}

// KindOf returns the kind of err, or "" when err is not an apperr.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// MessageOf returns the caller-facing message of err, falling back to
// err.Error() for foreign errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
