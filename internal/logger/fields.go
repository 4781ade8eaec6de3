package logger

import "log/slog"

// Standard field keys for structured logging. Use these keys consistently
// across all log statements for log aggregation and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Bearer Identification
	// ========================================================================
	KeyBearerID = "bearer_id" // Numeric bearer identifier
	KeyLCID     = "lcid"      // Logical channel ID
	KeyRBType   = "rb_type"   // SRB or DRB
	KeyRLCMode  = "rlc_mode"  // UM or AM (DRB only)
	KeyRBName   = "rb_name"   // Human-readable bearer name from RRC

	// ========================================================================
	// PDCP Protocol State
	// ========================================================================
	KeyDirection = "direction" // tx or rx
	KeySN        = "sn"        // PDCP sequence number
	KeyHFN       = "hfn"       // Hyper-frame number
	KeyCount     = "count"     // Reconstructed/assigned 32-bit COUNT

	// ========================================================================
	// Discard & Error Reporting
	// ========================================================================
	KeyDiscarded     = "discarded"      // Whether a PDU was silently dropped
	KeyDiscardReason = "discard_reason" // Why a PDU was dropped
	KeyStatus        = "status"         // Operation status code
	KeyStatusMsg     = "status_msg"     // Human-readable status message

	// ========================================================================
	// I/O
	// ========================================================================
	KeyBytesIn  = "bytes_in"  // Size of a PDU/SDU before transformation
	KeyBytesOut = "bytes_out" // Size of a PDU/SDU after transformation

	// ========================================================================
	// Correlation
	// ========================================================================
	KeyRunID = "run_id" // Simulation run / scenario correlation ID

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyErrorCode  = "error_code"  // Numeric error code
	KeyOperation  = "operation"   // Lifecycle operation: init, reset, reestablish
)

// ============================================================================
// Field constructors for type safety
// ============================================================================

// TraceID returns a slog.Attr for OpenTelemetry trace ID.
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID.
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// BearerID returns a slog.Attr for the bearer identifier.
func BearerID(id uint32) slog.Attr {
	return slog.Any(KeyBearerID, id)
}

// LCID returns a slog.Attr for the logical channel ID.
func LCID(id uint32) slog.Attr {
	return slog.Any(KeyLCID, id)
}

// RBType returns a slog.Attr for the radio bearer type.
func RBType(t string) slog.Attr {
	return slog.String(KeyRBType, t)
}

// RLCMode returns a slog.Attr for the RLC mode.
func RLCMode(m string) slog.Attr {
	return slog.String(KeyRLCMode, m)
}

// RBName returns a slog.Attr for a human-readable bearer name.
func RBName(name string) slog.Attr {
	return slog.String(KeyRBName, name)
}

// Direction returns a slog.Attr for tx/rx direction.
func Direction(dir string) slog.Attr {
	return slog.String(KeyDirection, dir)
}

// SN returns a slog.Attr for a PDCP sequence number.
func SN(sn uint32) slog.Attr {
	return slog.Any(KeySN, sn)
}

// HFN returns a slog.Attr for a hyper-frame number.
func HFN(hfn uint32) slog.Attr {
	return slog.Any(KeyHFN, hfn)
}

// Count returns a slog.Attr for a reconstructed or assigned COUNT.
func Count(count uint32) slog.Attr {
	return slog.Any(KeyCount, count)
}

// Discarded returns a slog.Attr indicating whether a PDU was dropped.
func Discarded(d bool) slog.Attr {
	return slog.Bool(KeyDiscarded, d)
}

// DiscardReason returns a slog.Attr naming why a PDU was dropped.
func DiscardReason(reason string) slog.Attr {
	return slog.String(KeyDiscardReason, reason)
}

// Status returns a slog.Attr for an operation status code.
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// StatusMsg returns a slog.Attr for a human-readable status message.
func StatusMsg(msg string) slog.Attr {
	return slog.String(KeyStatusMsg, msg)
}

// BytesIn returns a slog.Attr for the size of a PDU/SDU before
// transformation.
func BytesIn(n int) slog.Attr {
	return slog.Int(KeyBytesIn, n)
}

// BytesOut returns a slog.Attr for the size of a PDU/SDU after
// transformation.
func BytesOut(n int) slog.Attr {
	return slog.Int(KeyBytesOut, n)
}

// RunID returns a slog.Attr for a simulation run correlation ID.
func RunID(id string) slog.Attr {
	return slog.String(KeyRunID, id)
}

// DurationMs returns a slog.Attr for duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// ErrorCode returns a slog.Attr for a numeric error code.
func ErrorCode(code int) slog.Attr {
	return slog.Int(KeyErrorCode, code)
}

// Operation returns a slog.Attr for a lifecycle operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}
