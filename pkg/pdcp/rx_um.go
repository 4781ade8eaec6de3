package pdcp

import (
	"context"

	"github.com/marmos91/ltepdcp/internal/logger"
)

// handleUMDRBPDULocked implements the DRB RX path over RLC-UM. Called with
// the entity mutex held. No reordering, no duplicate suppression, no
// integrity check: UM below tolerates loss, so this path does too.
func (e *Entity) handleUMDRBPDULocked(ctx context.Context, buf *Buffer) {
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

	if sn < e.state.nextPDCPRxSN {
		e.state.rxHFN++
		e.recordHFNWrap()
	}
	count := makeCOUNT(e.state.rxHFN, sn, cfg.SNLen)

	if cfg.DoEncryption {
		ciphertext := buf.Msg()
		plaintext, err := e.cipher.Decrypt(ciphertext, count)
		if err == nil {
			copy(ciphertext, plaintext)
		}
	}

	next, wrapped := wrapSN(sn, cfg.MaximumPDCPSN())
	e.state.nextPDCPRxSN = next
	if wrapped {
		e.state.rxHFN++
		e.recordHFNWrap()
	}
	e.state.rxCount = count

	e.recordRX(buf.Len())
	logger.Debug("pdcp rx um drb",
		logger.BearerID(cfg.BearerID),
		logger.LCID(cfg.LCID),
		logger.Direction("rx"),
		logger.SN(sn),
		logger.HFN(e.state.rxHFN),
		logger.Count(count),
	)

	e.gw.WritePDU(ctx, cfg.LCID, buf)
}
