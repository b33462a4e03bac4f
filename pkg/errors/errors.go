// Package errors provides structured error types for the tilelay engine and
// its hosts.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_* / MISSING_*: Input validation failures (fail fast, no output)
//   - *_NOT_FOUND: Catalog or resource lookups that came back empty
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingInput, "surface outline is empty")
//	if errors.Is(err, errors.ErrCodeMissingInput) {
//	    // Reject the request before any lattice work
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidCatalog, origErr, "decode %s", path)
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeMissingInput     Code = "MISSING_INPUT_DATA"
	ErrCodeInvalidGeometry  Code = "INVALID_GEOMETRY"
	ErrCodeInvalidCatalog   Code = "INVALID_CATALOG"
	ErrCodeInvalidPlacement Code = "INVALID_PLACEMENT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound           Code = "NOT_FOUND"
	ErrCodePatternNotFound    Code = "PATTERN_NOT_FOUND"
	ErrCodeProportionNotFound Code = "PROPORTION_NOT_FOUND"
	ErrCodeWallNotFound       Code = "WALL_NOT_FOUND"
	ErrCodeFileNotFound       Code = "FILE_NOT_FOUND"

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

// IsNotFound reports whether err carries one of the *_NOT_FOUND codes.
func IsNotFound(err error) bool {
	switch GetCode(err) {
	case ErrCodeNotFound, ErrCodePatternNotFound, ErrCodeProportionNotFound,
		ErrCodeWallNotFound, ErrCodeFileNotFound:
		return true
	}
	return false
}
