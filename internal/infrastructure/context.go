package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// GenerateSessionID creates a new unique session ID using UUID v4
func GenerateSessionID() string {
	return uuid.New().String()
}

// ContextWithSessionID creates a new context with a generated session ID.
// The explorer starts a new session for every pass through the filter prompt.
func ContextWithSessionID(ctx context.Context) context.Context {
	return WithSessionID(ctx, GenerateSessionID())
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With("component", component)
}

// WithError creates a logger with an error field
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With("error", err.Error())
}
