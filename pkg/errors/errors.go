// Package errors provides structured error types for imagemix.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP surfaces
//   - Machine-readable error codes for per-entry batch reports
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes split into two families that drive batch error policy:
//   - Entry-scoped codes (UNKNOWN_*, AMBIGUOUS_LAYER, ASSET_NOT_FOUND,
//     DECODE_ERROR, WRITE_ERROR) fail a single layout entry.
//   - Run-scoped codes (INVALID_TEMPLATE, FONT_LOAD_ERROR, INTERNAL_ERROR)
//     fail the whole batch.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownLayer, "layer %q not defined", id)
//	if errors.Is(err, errors.ErrCodeUnknownLayer) {
//	    // Handle unresolved layer reference
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDecode, origErr, "decode %s", filename)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the composition engine.
const (
	// Template and shared-setup errors (fatal for the whole run)
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeFontLoad        Code = "FONT_LOAD_ERROR"
	ErrCodeInternal        Code = "INTERNAL_ERROR"

	// Entry-scoped errors (fail one layout entry, not the batch)
	ErrCodeUnknownCanvas  Code = "UNKNOWN_CANVAS"
	ErrCodeUnknownLayer   Code = "UNKNOWN_LAYER"
	ErrCodeAmbiguousLayer Code = "AMBIGUOUS_LAYER"
	ErrCodeAssetNotFound  Code = "ASSET_NOT_FOUND"
	ErrCodeDecode         Code = "DECODE_ERROR"
	ErrCodeWrite          Code = "WRITE_ERROR"
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

// IsFatal reports whether err is scoped to the whole run rather than a single
// layout entry. Errors without a code are treated as fatal.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeUnknownCanvas, ErrCodeUnknownLayer, ErrCodeAmbiguousLayer,
		ErrCodeAssetNotFound, ErrCodeDecode, ErrCodeWrite:
		return false
	}
	return true
}
