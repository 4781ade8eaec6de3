package pdcp

import (
	"context"

	"github.com/marmos91/ltepdcp/internal/logger"
)

// handleSRBPDULocked implements the SRB receive path. Called with the
// entity mutex held.
func (e *Entity) handleSRBPDULocked(ctx context.Context, buf *Buffer) {
	cfg := e.cfg

	if buf.Len() <= cfg.HdrLenBytes() {
		e.recordDiscard("too_short")
		buf.Release()
		return
	}

	b0 := buf.Msg()[0]
	sn := unpackControlHeader(b0)

	// Estimate COUNT, anticipating an imminent HFN wrap if sn has wrapped
	// behind next_pdcp_rx_sn.
	hfn := e.state.rxHFN
	lookaheadWrap := sn < e.state.nextPDCPRxSN
	if lookaheadWrap {
		hfn++
	}
	count := makeCOUNT(hfn, sn, cfg.SNLen)

	if cfg.DoEncryption {
		ciphertext := buf.Msg()[1:]
		plaintext, err := e.cipher.Decrypt(ciphertext, count)
		if err == nil {
			copy(ciphertext, plaintext)
		}
	}

	if buf.Len() < 4 {
		e.recordDiscard("too_short")
		buf.Release()
		return
	}
	mac := [4]byte{}
	copy(mac[:], buf.Msg()[buf.Len()-4:])
	buf.Shrink(4)

	if cfg.DoIntegrity {
		ok, err := e.integrity.Verify(buf.Msg(), count, mac)
		if err != nil || !ok {
			// State is NOT updated; the HFN lookahead above is
			// discarded along with the PDU.
			e.recordDiscard("integrity_failure")
			logger.Warn("pdcp srb integrity failure",
				logger.BearerID(cfg.BearerID),
				logger.LCID(cfg.LCID),
				logger.SN(sn),
				logger.Discarded(true),
				logger.DiscardReason("integrity_failure"),
			)
			buf.Release()
			return
		}
	}

	buf.Consume(1)

	if lookaheadWrap {
		e.state.rxHFN++
		e.recordHFNWrap()
	}
	next, wrapped := wrapSN(sn, cfg.MaximumPDCPSN())
	e.state.nextPDCPRxSN = next
	if wrapped {
		e.state.rxHFN++
		e.recordHFNWrap()
	}
	e.state.rxCount = count

	e.recordRX(buf.Len())
	logger.Debug("pdcp rx srb",
		logger.BearerID(cfg.BearerID),
		logger.LCID(cfg.LCID),
		logger.Direction("rx"),
		logger.SN(sn),
		logger.HFN(e.state.rxHFN),
		logger.Count(count),
	)

	e.rrc.WritePDU(ctx, cfg.LCID, buf)
}
