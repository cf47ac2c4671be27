// Package errors provides structured error types for Tompkins.
//
// Every failure the CLI or the HTTP server reports carries a machine-readable
// [Code]. The two kinds a caller usually cares about are
// [ErrCodeInvalidParameter] (bad k, n, highlight or format; nothing was
// computed) and [ErrCodeRenderFailed] (the triangle was generated but no image
// could be produced or written).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidParameter, "k must be >= 3, got %d", k)
//	if errors.Is(err, errors.ErrCodeInvalidParameter) {
//	    // exit 2
//	}
//
//	err := errors.Wrap(errors.ErrCodeRenderFailed, origErr, "write %s", path)
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
	ErrCodeInvalidParameter Code = "INVALID_PARAMETER"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"

	// Computation errors
	ErrCodeOverflow Code = "OVERFLOW"

	// Output errors
	ErrCodeRenderFailed Code = "RENDER_FAILED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

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

// Is reports whether any *Error in err's chain carries code, so a
// RENDER_FAILED wrapping an INVALID_PATH matches both.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
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
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// IsInput reports whether err was caused by bad caller input rather than a
// failure while producing output.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidParameter, ErrCodeInvalidFormat, ErrCodeInvalidPath, ErrCodeInvalidConfig, ErrCodeOverflow:
		return true
	}
	return false
}
