package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeDataLoad    ErrorType = "DATA_LOAD"
	ErrTypeEmptyResult ErrorType = "EMPTY_RESULT"
	ErrTypeConfig      ErrorType = "CONFIG"
	ErrTypeStorage     ErrorType = "STORAGE"
	ErrTypeInput       ErrorType = "INPUT"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type with no message,
// which lets the package sentinels match any error of their type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Message == "" || t.Message == e.Message {
		return t.Type == e.Type
	}
	return false
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewDataLoadError creates an error for a dataset that could not be read or parsed
func NewDataLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataLoad, message, cause)
}

// NewEmptyResultError creates an error for a selection with no matching rows
func NewEmptyResultError(message string) *AppError {
	return NewAppError(ErrTypeEmptyResult, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewInputError creates an error for a failed read from the interactive input
func NewInputError(message string, cause error) *AppError {
	return NewAppError(ErrTypeInput, message, cause)
}
