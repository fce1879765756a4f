// Package domainerrors carries code-classified errors across layers so
// services and transports can translate failures without string matching.
//
// Core code taxonomy:
//   - CodeInvalidInput: null/non-object record or malformed caller input;
//     fatal for the call that received it.
//   - CodeEncryptionFailure: a field could not be encrypted; callers degrade
//     to plaintext rather than failing the whole processing pass.
//   - CodeDecryptionFailure: authentication tag or key mismatch; always
//     fatal for the decrypt call, never degraded.
//   - CodeMissingConsent: queryable state used by collaborators to gate
//     access; not a processing failure.
//
// Infra facts (store not reachable, entity missing) use pkg/platform/sentinel
// instead; wrap them with CodeInternal/CodeNotFound at the service boundary.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for programmatic handling.
type Code string

const (
	CodeInvalidInput       Code = "invalid_input"
	CodeEncryptionFailure  Code = "encryption_failure"
	CodeDecryptionFailure  Code = "decryption_failure"
	CodeMissingConsent     Code = "missing_consent"
	CodeBadRequest         Code = "bad_request"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeTimeout            Code = "timeout"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInternal           Code = "internal"
)

// Error is the concrete error type carrying a code and a human-readable
// message. Use New/Wrap to construct; compare with Is.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap annotates an underlying error with a domain code and message. The
// cause stays reachable through errors.Unwrap / errors.Is.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site brevity.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf extracts the domain code from err, defaulting to CodeInternal for
// unclassified errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a domain code to the HTTP status the transport layer
// should answer with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput, CodeBadRequest:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeMissingConsent, CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeInvariantViolation, CodeEncryptionFailure, CodeDecryptionFailure, CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
