package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors
	ErrConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigParse    ErrorCode = "CONFIG_PARSE"
	ErrConfigValid    ErrorCode = "CONFIG_INVALID"

	// Run precondition errors
	ErrRequiredPath ErrorCode = "REQUIRED_PATH_MISSING"

	// Hook errors
	ErrHookFailure ErrorCode = "HOOK_FAILURE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
)

// FpsyncError represents a structured error with code and details
type FpsyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *FpsyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *FpsyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *FpsyncError) Is(target error) bool {
	var targetErr *FpsyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new FpsyncError with the given code and message
func New(code ErrorCode, message string) *FpsyncError {
	return &FpsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new FpsyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *FpsyncError {
	return &FpsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a FpsyncError
func Wrap(err error, code ErrorCode, message string) *FpsyncError {
	if err == nil {
		return nil
	}
	return &FpsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *FpsyncError {
	if err == nil {
		return nil
	}
	return &FpsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *FpsyncError) WithDetail(key string, value interface{}) *FpsyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var fpsyncErr *FpsyncError
	if errors.As(err, &fpsyncErr) {
		return fpsyncErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a FpsyncError
func GetErrorCode(err error) ErrorCode {
	var fpsyncErr *FpsyncError
	if errors.As(err, &fpsyncErr) {
		return fpsyncErr.Code
	}
	return ErrUnknown
}
