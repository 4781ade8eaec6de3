package logger

import (
	"context"
	"time"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey struct{}

// logContextKey is the key for LogContext in context.Context
var logContextKey = contextKey{}

// LogContext holds call-scoped logging context: which bearer and which
// direction (tx/rx) a PDCP operation is acting on, threaded through
// context.Context so every log line emitted while handling one PDU carries
// it automatically.
type LogContext struct {
	TraceID   string    // OpenTelemetry trace ID
	SpanID    string    // OpenTelemetry span ID
	BearerID  uint32    // Bearer identifier
	LCID      uint32    // Logical channel ID
	Direction string    // "tx" or "rx"
	RunID     string    // Simulation run correlation ID
	StartTime time.Time // For duration calculation
}

// WithContext returns a new context with the given LogContext
func WithContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey, lc)
}

// FromContext retrieves the LogContext from context, or nil if not present
func FromContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey).(*LogContext)
	return lc
}

// NewLogContext creates a new LogContext for the given bearer.
func NewLogContext(bearerID, lcid uint32) *LogContext {
	return &LogContext{
		BearerID:  bearerID,
		LCID:      lcid,
		StartTime: time.Now(),
	}
}

// Clone creates a copy of the LogContext
func (lc *LogContext) Clone() *LogContext {
	if lc == nil {
		return nil
	}
	return &LogContext{
		TraceID:   lc.TraceID,
		SpanID:    lc.SpanID,
		BearerID:  lc.BearerID,
		LCID:      lc.LCID,
		Direction: lc.Direction,
		RunID:     lc.RunID,
		StartTime: lc.StartTime,
	}
}

// WithDirection returns a copy with the direction set.
func (lc *LogContext) WithDirection(direction string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.Direction = direction
	}
	return clone
}

// WithRunID returns a copy with the run ID set.
func (lc *LogContext) WithRunID(runID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.RunID = runID
	}
	return clone
}

// WithTrace returns a copy with trace info set
func (lc *LogContext) WithTrace(traceID, spanID string) *LogContext {
	clone := lc.Clone()
	if clone != nil {
		clone.TraceID = traceID
		clone.SpanID = spanID
	}
	return clone
}

// DurationMs returns the duration since StartTime in milliseconds
func (lc *LogContext) DurationMs() float64 {
	if lc == nil || lc.StartTime.IsZero() {
		return 0
	}
	return float64(time.Since(lc.StartTime).Microseconds()) / 1000.0
}
