package logging

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	traceIDKey     contextKey = "trace_id"
	auditLoggerKey contextKey = "audit_logger"
)

// FromContext returns the logger stored on ctx with zerolog's WithContext,
// or a disabled logger when none is present. A trace ID on ctx is attached
// as the trace_id field.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := zerolog.Nop()
		return &l
	}
	l := zerolog.Ctx(ctx)
	if id := TraceIDFromContext(ctx); id != "" && l.GetLevel() != zerolog.Disabled {
		withTrace := l.With().Str("trace_id", id).Logger()
		return &withTrace
	}
	return l
}

// ContextWithTraceID stores a trace ID on ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace ID on ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey).(string)
	return id
}

// GetOrGenerateTraceID returns the trace ID on ctx, or a fresh ULID.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return ulid.Make().String()
}

// ContextWithAuditLogger stores an audit logger on ctx.
func ContextWithAuditLogger(ctx context.Context, a AuditLogger) context.Context {
	return context.WithValue(ctx, auditLoggerKey, a)
}

// AuditLoggerFromContext returns the audit logger on ctx, or a no-op logger.
func AuditLoggerFromContext(ctx context.Context) AuditLogger {
	if ctx != nil {
		if a, ok := ctx.Value(auditLoggerKey).(AuditLogger); ok && a != nil {
			return a
		}
	}
	return nopAuditLogger{}
}
