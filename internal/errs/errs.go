// Package errs defines the five error kinds shared across the commercial
// document core. Every validator, repository and service returns one of
// these instead of an ad-hoc error, so callers at the transport boundary can
// map kinds to protocol status without inspecting messages.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an Error into one of five equivalence classes that the
// transport layer maps to protocol status codes.
type Kind int

const (
	// InvalidInput is a field-level validation failure or structural
	// violation. Never retryable.
	InvalidInput Kind = iota
	// NotFound means the referenced aggregate does not exist.
	NotFound
	// Conflict is a uniqueness violation, invariant breach, or store-level
	// lock-wait timeout/deadlock. Some Conflicts are retryable (see
	// Error.Retryable).
	Conflict
	// Unsupported is an operation requested on an entity that does not
	// declare the required capability.
	Unsupported
	// Internal is any unexpected store or system failure.
	Internal
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Unsupported:
		return "unsupported"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the core's single error type. Code is a short English
// machine-readable identifier (e.g. "duplicate_trigram"); Message is a
// free-text detail intended for logs, not end users (transport layers
// translate to the caller's language).
type Error struct {
	Kind      Kind
	Code      string
	Message   string
	Field     string // set for InvalidInput when a single field is at fault
	Details   map[string]any
	Cause     error
	retryable bool
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s[%s]: %s (field=%s)", e.Kind, e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Retryable reports whether the caller may safely retry the operation that
// produced this error (lock-wait timeouts and deadlocks surfaced as Conflict).
func (e *Error) Retryable() bool { return e.retryable }

// WithDetails returns a copy of e with the given details merged in.
func (e *Error) WithDetails(details map[string]any) *Error {
	cp := *e
	cp.Details = mergeDetails(e.Details, details)
	return &cp
}

func mergeDetails(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func newError(kind Kind, code, message string, details map[string]any) *Error {
	return &Error{Kind: kind, Code: code, Message: message, Details: details}
}

// Field builds an InvalidInput error scoped to a single field name.
func Field(field, code, message string) *Error {
	e := newError(InvalidInput, code, message, nil)
	e.Field = field
	return e
}

// InvalidInputf builds an InvalidInput error without a specific field.
func InvalidInputf(code, format string, args ...any) *Error {
	return newError(InvalidInput, code, fmt.Sprintf(format, args...), nil)
}

// NotFoundf builds a NotFound error naming the entity kind and id.
func NotFoundf(entityKind string, id any) *Error {
	return newError(NotFound, "not_found", fmt.Sprintf("%s not found", entityKind), map[string]any{
		"entity": entityKind,
		"id":     id,
	})
}

// Conflictf builds a non-retryable Conflict error.
func Conflictf(code, format string, args ...any) *Error {
	return newError(Conflict, code, fmt.Sprintf(format, args...), nil)
}

// RetryableConflictf builds a Conflict error the caller may retry (lock-wait
// timeout, deadlock).
func RetryableConflictf(code, format string, args ...any) *Error {
	e := newError(Conflict, code, fmt.Sprintf(format, args...), nil)
	e.retryable = true
	return e
}

// Unsupportedf builds an Unsupported error naming the missing capability.
func Unsupportedf(entityKind, capability string) *Error {
	return newError(Unsupported, "unsupported_capability", fmt.Sprintf("%s does not support %s", entityKind, capability), map[string]any{
		"entity":     entityKind,
		"capability": capability,
	})
}

// Internalf wraps an unexpected failure, chaining the original cause.
func Internalf(cause error, format string, args ...any) *Error {
	e := newError(Internal, "internal_error", fmt.Sprintf(format, args...), nil)
	e.Cause = cause
	return e
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// As is a thin convenience wrapper over errors.As for *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
