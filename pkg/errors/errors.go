// Package errors provides structured error types for gatesketch.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages with the offending column, when known
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Parse failures use one code per failure kind so callers can reject input
// before attempting to render it:
//   - EMPTY_EXPRESSION: nothing left after whitespace removal
//   - UNMATCHED_PARENTHESIS: a parenthesis without its partner
//   - INSUFFICIENT_OPERANDS: an operator whose arity cannot be satisfied
//   - MALFORMED_EXPRESSION: everything else that cannot form a single tree
//
// The remaining codes follow a hierarchical naming convention:
//   - INVALID_*: option or request validation failures
//   - NOT_FOUND: resource not found
//   - INTERNAL_*: unexpected internal errors
//
// # Usage
//
//	err := errors.At(errors.ErrCodeUnmatchedParen, 4, "no matching '(' for ')'")
//	if errors.Is(err, errors.ErrCodeUnmatchedParen) {
//	    col := errors.Position(err) // 4
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "render %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Parse errors
	ErrCodeEmptyExpression      Code = "EMPTY_EXPRESSION"
	ErrCodeUnmatchedParen       Code = "UNMATCHED_PARENTHESIS"
	ErrCodeInsufficientOperands Code = "INSUFFICIENT_OPERANDS"
	ErrCodeMalformedExpression  Code = "MALFORMED_EXPRESSION"

	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle   Code = "INVALID_STYLE"
	ErrCodeInvalidVizType Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidLayout  Code = "INVALID_LAYOUT"
	ErrCodeLayoutTooDeep  Code = "LAYOUT_TOO_DEEP"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Pos     int    // 1-based column of the offending character (0 if unknown)
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Pos > 0 {
		msg = fmt.Sprintf("%s (column %d)", msg, e.Pos)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
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

// At creates a new Error that points at a column of the input.
func At(code Code, pos int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
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

// Position returns the input column carried by err, or 0.
func Position(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Pos
	}
	return 0
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

// IsParseError reports whether err belongs to the parse taxonomy.
func IsParseError(err error) bool {
	switch GetCode(err) {
	case ErrCodeEmptyExpression, ErrCodeUnmatchedParen,
		ErrCodeInsufficientOperands, ErrCodeMalformedExpression:
		return true
	}
	return false
}
