package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents an error code
type ErrorCode string

const (
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeStorage       ErrorCode = "STORAGE_ERROR"
	ErrCodeStartup       ErrorCode = "STARTUP_ERROR"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap wraps an error with an AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation creates a validation error carrying the offending field errors.
func Validation(message string, err error) *AppError {
	return Wrap(ErrCodeValidation, message, err)
}

// Storage wraps a persistence failure.
func Storage(message string, err error) *AppError {
	return Wrap(ErrCodeStorage, message, err)
}

// Startup wraps a failure that must stop the process before it serves traffic.
func Startup(message string, err error) *AppError {
	return Wrap(ErrCodeStartup, message, err)
}

// CodeOf returns the code of the first AppError in err's chain, or
// ErrCodeInternalError when there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternalError
}

// IsValidation checks if error is a validation error
func IsValidation(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeValidation
}

// IsStorage checks if error is a storage error
func IsStorage(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeStorage
}

// IsStartup checks if error is a startup error
func IsStartup(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeStartup
}

// PublicMessage returns the text shown to API clients. Validation errors
// expose only their message, everything else its full description.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code == ErrCodeValidation {
		return appErr.Message
	}
	return err.Error()
}
