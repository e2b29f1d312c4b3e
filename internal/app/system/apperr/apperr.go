// Package apperr defines the request-level error taxonomy.
//
// Store packages return sentinel errors (duplicate key, no documents);
// feature handlers translate those into one of these kinds, and webjson
// maps the kind to a status code exactly once at the boundary.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	Internal Kind = iota
	Validation
	Unauthenticated
	Forbidden
	NotFound
	Conflict
)

// Error carries a kind and a client-safe message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // optional wrapped cause, never shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// E builds a client-facing error of the given kind.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a client-facing error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Status returns the HTTP status for err. Unclassified errors are 500.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case Validation:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Detail returns the client-safe message for err. Unclassified errors get a
// generic message so internals never leak.
func Detail(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "Internal server error"
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
