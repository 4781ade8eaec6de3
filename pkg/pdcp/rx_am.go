package pdcp

import (
	"context"

	"github.com/marmos91/ltepdcp/internal/logger"
)

// handleAMDRBPDULocked implements the DRB RX path over RLC-AM without
// reordering. Called with the entity mutex held.
//
// This does not implement the full TS 36.323 reorder queue; it implements
// COUNT reconstruction and window-based duplicate/stale discard, delivering
// PDUs out of order. The guard order below is load-bearing, including the
// asymmetric sign tests in the first case (see DESIGN.md); reordering the
// cases produces silent COUNT drift.
func (e *Entity) handleAMDRBPDULocked(ctx context.Context, buf *Buffer) {
	cfg := e.cfg
	hdrLen := cfg.HdrLenBytes()

	if buf.Len() <= hdrLen {
		e.recordDiscard("too_short")
		buf.Release()
		return
	}

	var sn uint32
	if cfg.SNLen == 12 {
		sn = unpackLongDataHeader(buf.Msg()[0], buf.Msg()[1])
	} else {
		sn = unpackShortDataHeader(buf.Msg()[0])
	}
	buf.Consume(hdrLen)

	window := int32(cfg.ReorderingWindow())
	snI := int32(sn)
	lastI := int32(e.state.lastSubmittedPDCPRxSN)
	nextI := int32(e.state.nextPDCPRxSN)

	a := lastI - snI
	b := snI - lastI
	c := snI - nextI

	var count uint32

	switch {
	case (b >= 0 && b > window) || (a >= 0 && a < window):
		// Duplicate/stale: informational COUNT only, no state advance.
		if sn > e.state.nextPDCPRxSN {
			count = makeCOUNT(e.state.rxHFN-1, sn, cfg.SNLen)
		} else {
			count = makeCOUNT(e.state.rxHFN, sn, cfg.SNLen)
		}
		e.recordDiscard("am_window_duplicate")
		logger.Debug("pdcp rx am drb discard",
			logger.BearerID(cfg.BearerID),
			logger.LCID(cfg.LCID),
			logger.SN(sn),
			logger.Count(count),
			logger.Discarded(true),
			logger.DiscardReason("am_window_duplicate"),
		)
		buf.Release()
		return

	case (nextI - snI) > window:
		// HFN wrap forward.
		e.state.rxHFN++
		e.recordHFNWrap()
		count = makeCOUNT(e.state.rxHFN, sn, cfg.SNLen)
		e.state.nextPDCPRxSN = sn + 1

	case c >= window:
		// Stale from previous HFN; next_pdcp_rx_sn does not move.
		count = makeCOUNT(e.state.rxHFN-1, sn, cfg.SNLen)

	case sn >= e.state.nextPDCPRxSN:
		// In-order forward.
		count = makeCOUNT(e.state.rxHFN, sn, cfg.SNLen)
		next, wrapped := wrapSN(sn, cfg.MaximumPDCPSN())
		e.state.nextPDCPRxSN = next
		if wrapped {
			e.state.rxHFN++
			e.recordHFNWrap()
		}

	default:
		// Late-but-in-window; next_pdcp_rx_sn does not move.
		count = makeCOUNT(e.state.rxHFN, sn, cfg.SNLen)
	}

	if cfg.DoEncryption {
		ciphertext := buf.Msg()
		plaintext, err := e.cipher.Decrypt(ciphertext, count)
		if err == nil {
			copy(ciphertext, plaintext)
		}
	}

	e.state.lastSubmittedPDCPRxSN = sn
	e.state.rxCount = count

	e.recordRX(buf.Len())
	logger.Debug("pdcp rx am drb",
		logger.BearerID(cfg.BearerID),
		logger.LCID(cfg.LCID),
		logger.Direction("rx"),
		logger.SN(sn),
		logger.HFN(e.state.rxHFN),
		logger.Count(count),
	)

	e.gw.WritePDU(ctx, cfg.LCID, buf)
}
