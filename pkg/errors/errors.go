// Package errors defines the structured error type used across dotpatch.
//
// Every error carries a stable ErrorCode so callers and tests can tell a
// malformed fragment from an unsupported target format or an I/O failure
// without matching on message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"

	// Parse and merge errors
	ErrEmptyDocument     ErrorCode = "EMPTY_DOCUMENT"
	ErrUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrIncompatibleTypes ErrorCode = "INCOMPATIBLE_TYPES"
	ErrParse             ErrorCode = "PARSE"

	// Path errors
	ErrStripPrefix ErrorCode = "STRIP_PREFIX"

	// FileSystem errors
	ErrFileOpen  ErrorCode = "FILE_OPEN"
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrDirList   ErrorCode = "DIR_LIST"
)

// PatchError represents a structured error with code and details
type PatchError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PatchError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PatchError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a PatchError with the same code
func (e *PatchError) Is(target error) bool {
	var targetErr *PatchError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PatchError with the given code and message
func New(code ErrorCode, message string) *PatchError {
	return &PatchError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PatchError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PatchError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with a PatchError. It returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *PatchError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PatchError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *PatchError) WithDetail(key string, value interface{}) *PatchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if any error in the chain has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var patchErr *PatchError
		if !errors.As(err, &patchErr) {
			return false
		}
		if patchErr.Code == code {
			return true
		}
		err = patchErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if err is not a PatchError
func GetErrorCode(err error) ErrorCode {
	var patchErr *PatchError
	if errors.As(err, &patchErr) {
		return patchErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PatchError
func GetErrorDetails(err error) map[string]interface{} {
	var patchErr *PatchError
	if errors.As(err, &patchErr) {
		return patchErr.Details
	}
	return nil
}
