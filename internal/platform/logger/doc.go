// Package logger configures the application's structured logging (slog)
// and provides helpers for propagating request-scoped loggers through
// context.Context.
package logger
