// Package errors provides structured error types for the locktower application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Malformed input (dependency strings, checksums, sources)
//   - *_SECTION: Structural problems in the lockfile document
//   - *_DEPENDENCY: Graph resolution failures
//   - IO_FAILURE: Filesystem errors surfaced from load/write
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingSection, "missing section: %q", "package")
//	if errors.Is(err, errors.ErrCodeMissingSection) {
//	    // Handle structural error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIOFailure, origErr, "failed to read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Document structure errors
	ErrCodeDuplicateSection Code = "DUPLICATE_SECTION"
	ErrCodeMissingSection   Code = "MISSING_SECTION"
	ErrCodeFormatConflict   Code = "FORMAT_CONFLICT"

	// Malformed input errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidDependency Code = "INVALID_DEPENDENCY"
	ErrCodeInvalidChecksum   Code = "INVALID_CHECKSUM"
	ErrCodeInvalidSource     Code = "INVALID_SOURCE"
	ErrCodeInvalidVersion    Code = "INVALID_VERSION"
	ErrCodeInvalidDocument   Code = "INVALID_DOCUMENT"

	// Graph resolution errors
	ErrCodeUnresolvedDependency Code = "UNRESOLVED_DEPENDENCY"
	ErrCodeAmbiguousDependency  Code = "AMBIGUOUS_DEPENDENCY"
	ErrCodePackageNotFound      Code = "PACKAGE_NOT_FOUND"

	// Filesystem errors
	ErrCodeIOFailure Code = "IO_FAILURE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
