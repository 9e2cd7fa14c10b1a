// Package errors defines common error types for the psgraph pipeline.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown      = "UNKNOWN_ERROR"
	CodeIOError      = "IO_ERROR"
	CodeParseError   = "PARSE_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotSpanning  = "NOT_SPANNING"
	CodeInternal     = "INTERNAL_ERROR"
	CodeConfigError  = "CONFIG_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrIOError      = New(CodeIOError, "I/O error")
	ErrParseError   = New(CodeParseError, "parse error")
	ErrInvalidInput = New(CodeInvalidInput, "invalid input")
	ErrNotSpanning  = New(CodeNotSpanning, "tree does not span the graph")
	ErrInternal     = New(CodeInternal, "internal invariant violated")
	ErrConfigError  = New(CodeConfigError, "configuration error")
)

// IsParseError checks if the error is a parse error.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParseError)
}

// IsNotSpanning checks if the error reports a non-spanning tree.
func IsNotSpanning(err error) bool {
	return errors.Is(err, ErrNotSpanning)
}

// IsInternal checks if the error reports a broken internal invariant.
// Internal errors indicate a bug in the pipeline itself, not bad input,
// and the CLI treats them as fatal with no retry.
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
