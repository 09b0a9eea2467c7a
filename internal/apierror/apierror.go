// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// Kind classifies a domain error so the handler layer can map it to an HTTP
// status without string matching.
type Kind int

const (
	// KindInvalid: client-correctable input: bad field, empty line list,
	// cross-tenant reference, unknown sort column, invalid status value.
	KindInvalid Kind = iota
	// KindNotFound: entity absent, or present under a different tenant
	// (both cases are indistinguishable to the caller).
	KindNotFound
	// KindConflict: the operation violates a lifecycle invariant: void an
	// already-voided purchase, receive twice, would-be-negative stock.
	KindConflict
	// KindIntegrity: store-level uniqueness violation, surfaced as a conflict
	// naming the duplicated value.
	KindIntegrity
)

// Error is the domain error type returned by the service layer.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func Invalid(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalid, Detail: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Detail: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Detail: fmt.Sprintf(format, args...)}
}

func Integrity(format string, args ...interface{}) *Error {
	return &Error{Kind: KindIntegrity, Detail: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from an error chain. ok is false for errors that
// did not originate in the service layer (those map to 500).
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}
