package events

import (
	"context"
)

type contextKey int

const (
	loggerKey contextKey = iota
	notebookIDKey
	noteIDKey
)

// FromContext extracts logger from context.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(loggerKey).(*Logger); ok {
		return l
	}
	// Return default logger
	return defaultLogger
}

// WithLogger adds logger to context.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithNotebookID adds the notebook ID to context.
func WithNotebookID(ctx context.Context, id string) context.Context {
	logger := FromContext(ctx).WithField("notebook_id", id)
	ctx = context.WithValue(ctx, notebookIDKey, id)
	return WithLogger(ctx, logger)
}

// WithNoteID adds the note ID to context.
func WithNoteID(ctx context.Context, id string) context.Context {
	logger := FromContext(ctx).WithField("note_id", id)
	ctx = context.WithValue(ctx, noteIDKey, id)
	return WithLogger(ctx, logger)
}

// GetNotebookID retrieves the notebook ID from context.
func GetNotebookID(ctx context.Context) string {
	if id, ok := ctx.Value(notebookIDKey).(string); ok {
		return id
	}
	return ""
}

// GetNoteID retrieves the note ID from context.
func GetNoteID(ctx context.Context) string {
	if id, ok := ctx.Value(noteIDKey).(string); ok {
		return id
	}
	return ""
}

var defaultLogger = NewNopLogger()

// SetDefault sets the default logger.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}
