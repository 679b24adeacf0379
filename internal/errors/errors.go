package errors

import (
	stderrors "errors"
)

// Predefined errors for conditions the session loop reacts to.
// Match them with errors.Is; any AppError of the same type matches.
var (
	// ErrEmptyResult is returned by aggregate computations over a table with no rows.
	ErrEmptyResult = &AppError{Type: ErrTypeEmptyResult}

	// ErrInputClosed is returned by prompts once the input stream is exhausted.
	ErrInputClosed = &AppError{Type: ErrTypeInput, Message: "input closed"}

	// ErrDataLoad matches any dataset loading failure.
	ErrDataLoad = &AppError{Type: ErrTypeDataLoad}
)

// IsType reports whether err, or any error it wraps, is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "" if none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}
