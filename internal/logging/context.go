package logging

import (
	"context"
	"log/slog"

	"gfyup/internal/services"
)

// Standard field keys used across log lines.
const (
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldStage      = "stage"
	FieldIdentifier = "gfyname"
	FieldPath       = "path"
	FieldEventType  = "event_type"
	FieldErrorKind  = "error_kind"
)

// ContextFields extracts the run identifier and stage from ctx as attributes.
func ContextFields(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	var fields []Attr
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, String(FieldRunID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		fields = append(fields, String(FieldStage, stage))
	}
	return fields
}

// WithContext returns a logger enriched with context fields.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
