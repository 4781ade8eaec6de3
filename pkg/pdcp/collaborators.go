package pdcp

import "context"

// RLC is the lower-layer collaborator the TX path hands finished PDUs to,
// and that the entity consults to determine its RX-path variant for DRBs.
type RLC interface {
	// WriteSDU hands a PDU to RLC for the given logical channel. If
	// blocking is true the call waits for space; if false it may drop
	// and return a non-nil error, which the caller of WriteSDU observes.
	// PDCP does not retry above RLC.
	WriteSDU(ctx context.Context, lcid uint32, buf *Buffer, blocking bool) error
	// IsUM reports whether the given logical channel is mapped onto
	// RLC-UM (true) or RLC-AM (false).
	IsUM(lcid uint32) bool
}

// RRC is the control-plane collaborator that SRB PDUs are delivered to on
// RX and the PDCP status reports are named after.
type RRC interface {
	// WritePDU delivers a decoded SRB SDU upward.
	WritePDU(ctx context.Context, lcid uint32, buf *Buffer)
	// RBName returns a human-readable bearer name for logging and
	// status.
	RBName(lcid uint32) string
}

// GW is the user-plane collaborator that DRB PDUs are delivered to on RX.
type GW interface {
	// WritePDU delivers a decoded DRB SDU upward.
	WritePDU(ctx context.Context, lcid uint32, buf *Buffer)
}
