// Package errors provides structured error types for chaostower.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engines, CLI and API
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Two codes come from the generators themselves:
//   - CONFIGURATION_ERROR: inconsistent engine input detected before iterating
//   - NUMERIC_ERROR: a non-finite coordinate produced while iterating
//
// The remaining codes are raised at the input boundary (text parsing, presets, lookups).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "jump vector has %d entries, want %d", len(j), n)
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    // Handle configuration error
//	}
//
//	// Numeric errors carry the partial sequence
//	var nf *errors.NonFiniteError
//	if stderrors.As(err, &nf) {
//	    use(nf.Partial)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Engine errors
	ErrCodeConfiguration Code = "CONFIGURATION_ERROR"
	ErrCodeNumeric       Code = "NUMERIC_ERROR"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPreset Code = "INVALID_PRESET"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// Configuration is shorthand for New(ErrCodeConfiguration, ...).
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
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

// NonFiniteError records where an iteration produced an infinite or NaN coordinate.
// Partial holds the points generated before the offending step, start point included.
type NonFiniteError struct {
	Step    int
	X, Y    float64
	Partial any
}

// Error implements the error interface.
func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("non-finite point (%v, %v) at step %d", e.X, e.Y, e.Step)
}

// Numeric wraps a NonFiniteError in an *Error with ErrCodeNumeric.
func Numeric(step int, x, y float64, partial any) *Error {
	return Wrap(ErrCodeNumeric, &NonFiniteError{Step: step, X: x, Y: y, Partial: partial}, "iteration diverged")
}
