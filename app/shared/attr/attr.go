// Package attr provides slog attribute helpers used across service and
// handler logging so log keys stay consistent between modules.
package attr

import (
	"context"
	"log/slog"
)

type correlationIDKey struct{}

// WithCorrelationID returns a context carrying a correlation ID for log
// extraction in downstream operations.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// ExtractCorrelationID pulls the correlation ID off the context, or returns
// an empty attribute when none was set.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		return slog.String("correlation_id", id)
	}
	return slog.Attr{}
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

// GameID tags a log record with the game identifier.
func GameID(key string, id string) slog.Attr { return slog.String(key, id) }

// HoleNum tags a log record with a hole number.
func HoleNum(key string, hole int) slog.Attr { return slog.Int(key, hole) }
