package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for PDCP spans. These follow OpenTelemetry semantic
// convention style (dotted, lowercase) scoped to this package's domain.
const (
	AttrBearerID      = "pdcp.bearer_id"
	AttrLCID          = "pdcp.lcid"
	AttrRBType        = "pdcp.rb_type"
	AttrRLCMode       = "pdcp.rlc_mode"
	AttrDirection     = "pdcp.direction"
	AttrSN            = "pdcp.sn"
	AttrHFN           = "pdcp.hfn"
	AttrCount         = "pdcp.count"
	AttrDiscarded     = "pdcp.discarded"
	AttrDiscardReason = "pdcp.discard_reason"
	AttrBytes         = "pdcp.bytes"
	AttrScenarioName  = "pdcpsim.scenario"
)

// Span names for PDCP operations.
const (
	SpanTXWriteSDU   = "pdcp.write_sdu"
	SpanRXSRBPDU     = "pdcp.handle_srb_pdu"
	SpanRXUMDRBPDU   = "pdcp.handle_um_drb_pdu"
	SpanRXAMDRBPDU   = "pdcp.handle_am_drb_pdu"
	SpanSimRun       = "pdcpsim.run"
	SpanSimBearerRun = "pdcpsim.run_bearer"
)

// BearerID returns an attribute for the numeric bearer identifier.
func BearerID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrBearerID, int64(id))
}

// LCID returns an attribute for the logical channel ID.
func LCID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrLCID, int64(id))
}

// RBType returns an attribute for the radio bearer type (SRB/DRB).
func RBType(t string) attribute.KeyValue {
	return attribute.String(AttrRBType, t)
}

// RLCMode returns an attribute for the RLC mode (UM/AM).
func RLCMode(m string) attribute.KeyValue {
	return attribute.String(AttrRLCMode, m)
}

// Direction returns an attribute for tx/rx direction.
func Direction(dir string) attribute.KeyValue {
	return attribute.String(AttrDirection, dir)
}

// SN returns an attribute for a PDCP sequence number.
func SN(sn uint32) attribute.KeyValue {
	return attribute.Int64(AttrSN, int64(sn))
}

// HFN returns an attribute for a hyper-frame number.
func HFN(hfn uint32) attribute.KeyValue {
	return attribute.Int64(AttrHFN, int64(hfn))
}

// Count returns an attribute for a reconstructed or assigned COUNT.
func Count(count uint32) attribute.KeyValue {
	return attribute.Int64(AttrCount, int64(count))
}

// Discarded returns an attribute indicating whether a PDU was dropped.
func Discarded(d bool) attribute.KeyValue {
	return attribute.Bool(AttrDiscarded, d)
}

// DiscardReason returns an attribute naming why a PDU was dropped.
func DiscardReason(reason string) attribute.KeyValue {
	return attribute.String(AttrDiscardReason, reason)
}

// Bytes returns an attribute for a PDU/SDU byte count.
func Bytes(n int) attribute.KeyValue {
	return attribute.Int(AttrBytes, n)
}

// ScenarioName returns an attribute for the running scenario's name.
func ScenarioName(name string) attribute.KeyValue {
	return attribute.String(AttrScenarioName, name)
}

// StartBearerSpan starts a span scoped to one bearer, tagging it with the
// bearer/LCID/type/mode identifying attributes every PDCP span needs.
func StartBearerSpan(ctx context.Context, name string, bearerID, lcid uint32, rbType, rlcMode string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		BearerID(bearerID),
		LCID(lcid),
		RBType(rbType),
		RLCMode(rlcMode),
	}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, name, trace.WithAttributes(allAttrs...))
}
