package logging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// contextKey is the key type used to store the logger in a context.
// Using a custom type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")

// NewReportLogger returns a logger enriched with a unique run identifier so
// that all log lines emitted while building one report can be correlated.
func NewReportLogger(base *slog.Logger, reportType string) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	return base.With(
		slog.String("run_id", uuid.NewString()),
		slog.String("report_type", reportType),
	)
}

// WithLogger stores a logger in the context for downstream services.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the scoped logger from the context.
// It returns the default logger if none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	logger, ok := ctx.Value(loggerKey).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}
