package http

import (
	"context"
	"log/slog"

	"github.com/example/appointment-scheduler/internal/logging"
)

type contextKey string

const (
	scheduleIDContextKey contextKey = "schedule_id"
	dateContextKey       contextKey = "date"
)

// ContextWithScheduleID injects the slot identifier resolved from the request path.
func ContextWithScheduleID(ctx context.Context, scheduleID int64) context.Context {
	return context.WithValue(ctx, scheduleIDContextKey, scheduleID)
}

// ScheduleIDFromContext extracts a slot identifier previously associated with the context.
func ScheduleIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(scheduleIDContextKey).(int64)
	return id, ok
}

// ContextWithDate injects the calendar date resolved from the request path.
func ContextWithDate(ctx context.Context, date string) context.Context {
	return context.WithValue(ctx, dateContextKey, date)
}

// DateFromContext extracts a calendar date previously associated with the context.
func DateFromContext(ctx context.Context) (string, bool) {
	date, ok := ctx.Value(dateContextKey).(string)
	return date, ok
}

// ContextWithLogger attaches a request-scoped logger to the context.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext extracts the request-scoped logger, if any.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
