package logger

import (
	"context"

	"github.com/google/uuid"
)

type runIDKey struct{}

// NewRunID generates an identifier for one analysis run
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID adds a run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunID retrieves the run ID from context
func RunID(ctx context.Context) string {
	if runID, ok := ctx.Value(runIDKey{}).(string); ok {
		return runID
	}
	return ""
}
