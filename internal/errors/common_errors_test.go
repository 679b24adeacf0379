package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		errType  ErrorType
		expected string
	}{
		{ErrTypeValidation, "VALIDATION"},
		{ErrTypeDataLoad, "DATA_LOAD"},
		{ErrTypeEmptyResult, "EMPTY_RESULT"},
		{ErrTypeConfig, "CONFIG"},
		{ErrTypeStorage, "STORAGE"},
		{ErrTypeInput, "INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeValidation,
				Message: "invalid month",
			},
			wantMessage: "[VALIDATION] invalid month",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeDataLoad,
				Message: "failed to open data file",
				Cause:   fmt.Errorf("no such file or directory"),
			},
			wantMessage: "[DATA_LOAD] failed to open data file: no such file or directory",
		},
		{
			name:        "error with empty message",
			appError:    &AppError{Type: ErrTypeStorage},
			wantMessage: "[STORAGE] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("failed to write report", cause)

	assert.Same(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, NewEmptyResultError("nothing").Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := NewDataLoadError("invalid value", nil).
		WithContext("file", "chicago.csv").
		WithContext("line", 12)

	require.Len(t, err.Context, 2)
	assert.Equal(t, "chicago.csv", err.Context["file"])
	assert.Equal(t, 12, err.Context["line"])

	t.Run("nil context is created", func(t *testing.T) {
		bare := &AppError{Type: ErrTypeConfig, Message: "bad override"}
		bare.WithContext("city", "boston")
		assert.Equal(t, "boston", bare.Context["city"])
	})

	t.Run("existing key is overwritten", func(t *testing.T) {
		err := NewInputError("read failed", nil).WithContext("k", 1).WithContext("k", 2)
		assert.Equal(t, 2, err.Context["k"])
	})
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantErr  error
	}{
		{"validation", NewValidationError("bad", cause), ErrTypeValidation, cause},
		{"data load", NewDataLoadError("bad", cause), ErrTypeDataLoad, cause},
		{"empty result", NewEmptyResultError("bad"), ErrTypeEmptyResult, nil},
		{"config", NewConfigError("bad", cause), ErrTypeConfig, cause},
		{"storage", NewStorageError("bad", cause), ErrTypeStorage, cause},
		{"input", NewInputError("bad", cause), ErrTypeInput, cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, "bad", tt.err.Message)
			assert.Equal(t, tt.wantErr, tt.err.Cause)
			assert.NotNil(t, tt.err.Context)
		})
	}
}
