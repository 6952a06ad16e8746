// Package errors provides structured error types for hierpart.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and HTTP server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_A_SUBSET, OVERLAP, UNIVERSE_MISMATCH: hierarchy construction and
//     comparison violations
//   - NOT_FOUND_*: Resource not found
//   - NETWORK_*: Network-related errors (remote caches)
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.Wrap(errors.ErrCodeOverlap, hierpart.ErrOverlap, "element %v already in module %d", e, id)
//	if errors.Is(err, errors.ErrCodeOverlap) {
//	    // Handle construction error
//	}
//
// Package-level sentinels are kept as the Cause, so the standard library
// errors.Is works against them as well.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidUniverse Code = "INVALID_UNIVERSE"
	ErrCodeInvalidElement  Code = "INVALID_ELEMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Hierarchy violations
	ErrCodeNotASubset       Code = "NOT_A_SUBSET"
	ErrCodeOverlap          Code = "OVERLAP"
	ErrCodeUniverseMismatch Code = "UNIVERSE_MISMATCH"
	ErrCodeUnknownModule    Code = "UNKNOWN_MODULE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsInvalidInput reports whether err was caused by bad caller input rather
// than an environment or internal failure. The HTTP server maps these to
// client errors.
func IsInvalidInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidUniverse, ErrCodeInvalidElement,
		ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeNotASubset,
		ErrCodeOverlap, ErrCodeUniverseMismatch, ErrCodeUnknownModule:
		return true
	}
	return false
}
