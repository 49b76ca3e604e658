// Package domainerrors defines coded errors shared between services and the
// HTTP layer. Services create or wrap errors with a Code; the transport layer
// translates codes to HTTP statuses without inspecting error strings.
//
// For infrastructure facts (record not found, conflict on insert) stores
// return pkg/platform/sentinel errors instead; services translate those into
// domain errors at the boundary.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the class of failure. The string value doubles as the
// machine-readable error code in HTTP responses.
type Code string

const (
	CodeBadRequest   Code = "bad_request"
	CodeInvalidInput Code = "invalid_input"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal_error"
)

// DomainError carries a code, a human-readable message, and optionally the
// underlying cause.
type DomainError struct {
	Code    Code
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error { return e.cause }

// Is reports equality by code and message so tests can use errors.Is against
// a freshly constructed expectation.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return e.Code == de.Code && e.Message == de.Message
}

// New creates a domain error with the given code and message.
func New(code Code, message string) error {
	return &DomainError{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &DomainError{Code: code, Message: message, cause: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is a readability alias for HasCode used at call sites that branch on a
// code rather than on a specific error value.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that did not originate in a service.
func CodeOf(err error) Code {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the human-readable message, empty for non-domain errors.
func MessageOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
