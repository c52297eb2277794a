package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Attr aliases slog.Attr so callers can stay within this package.
type Attr = slog.Attr

// String constructs a string attribute.
func String(key, value string) Attr { return slog.String(key, value) }

// Int constructs an int attribute.
func Int(key string, value int) Attr { return slog.Int(key, value) }

// Int64 constructs an int64 attribute.
func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

// Bool constructs a bool attribute.
func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

// Duration constructs a duration attribute.
func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

// Error returns an attribute for the provided error under the "error" key.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Any("error", err)
}

// Args converts attributes into the variadic form accepted by slog.
func Args(attrs ...Attr) []any {
	out := make([]any, len(attrs))
	for i, attr := range attrs {
		out[i] = attr
	}
	return out
}

// NewNop returns a logger that discards all output.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 8}))
}

// NewComponentLogger returns a child logger tagged with the component name.
// A nil base yields a no-op logger.
func NewComponentLogger(base *slog.Logger, component string) *slog.Logger {
	if base == nil {
		return NewNop()
	}
	component = strings.TrimSpace(component)
	if component == "" {
		return base
	}
	return base.With(String(FieldComponent, component))
}

// WarnWithContext logs a warning that carries the run and stage from ctx.
func WarnWithContext(ctx context.Context, logger *slog.Logger, msg string, attrs ...Attr) {
	if logger == nil {
		return
	}
	WithContext(ctx, logger).Warn(msg, Args(attrs...)...)
}
