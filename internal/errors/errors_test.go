package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{"empty result matches by type", NewEmptyResultError("no trips in june"), ErrEmptyResult, true},
		{"data load matches by type", NewDataLoadError("failed to open data file", nil), ErrDataLoad, true},
		{"wrapped data load", fmt.Errorf("session: %w", NewDataLoadError("x", nil)), ErrDataLoad, true},
		{"input closed matches itself", ErrInputClosed, ErrInputClosed, true},
		{"wrapped input closed", fmt.Errorf("asking city: %w", ErrInputClosed), ErrInputClosed, true},
		{"other input error is not closed", NewInputError("read failed", nil), ErrInputClosed, false},
		{"type mismatch", NewStorageError("x", nil), ErrDataLoad, false},
		{"plain error", errors.New("x"), ErrEmptyResult, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.sentinel))
		})
	}
}

func TestIsTypeAndTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("export: %w", NewStorageError("failed", nil))

	assert.True(t, IsType(wrapped, ErrTypeStorage))
	assert.False(t, IsType(wrapped, ErrTypeConfig))
	assert.False(t, IsType(errors.New("plain"), ErrTypeStorage))
	assert.False(t, IsType(nil, ErrTypeStorage))

	assert.Equal(t, ErrTypeStorage, TypeOf(wrapped))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
}
