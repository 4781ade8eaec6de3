package pdcp

import (
	"context"

	"github.com/marmos91/ltepdcp/internal/logger"
)

// WriteSDU implements the transmit path. buf must have at least 2 bytes of
// headroom and 4 bytes of tailroom (DefaultHeadroom/DefaultTailroom satisfy
// this). The entity mutex is released before handing the finished PDU to
// RLC: no RLC call happens while holding the lock.
func (e *Entity) WriteSDU(ctx context.Context, buf *Buffer, blocking bool) error {
	e.mu.Lock()
	if !e.state.active {
		e.mu.Unlock()
		buf.Release()
		return ErrNotActive
	}

	cfg := e.cfg
	count := e.state.txCount // value observed before increment; used for MAC and cipher

	switch cfg.RBType {
	case RBTypeSRB:
		sn := count & cfg.MaximumPDCPSN()
		packControlHeader(buf, sn)
		if cfg.DoIntegrity {
			macData := buf.Msg()[:buf.Len()-4]
			mac, err := e.integrity.Generate(macData, count)
			if err == nil {
				copy(buf.Msg()[buf.Len()-4:], mac[:])
			}
		}
	default:
		sn := count & cfg.MaximumPDCPSN()
		if cfg.SNLen == 12 {
			packLongDataHeader(buf, sn)
		} else {
			packShortDataHeader(buf, sn)
		}
	}

	if cfg.DoEncryption {
		hdrLen := cfg.HdrLenBytes()
		plaintext := buf.Msg()[hdrLen:]
		ciphertext, err := e.cipher.Encrypt(plaintext, count)
		if err == nil {
			copy(plaintext, ciphertext)
		}
	}

	e.state.txCount++
	lcid := cfg.LCID
	rlc := e.rlc
	e.mu.Unlock()

	e.recordTX(buf.Len())
	logger.Debug("pdcp tx",
		logger.BearerID(cfg.BearerID),
		logger.LCID(lcid),
		logger.Direction("tx"),
		logger.Count(count),
		logger.BytesOut(buf.Len()),
	)

	return rlc.WriteSDU(ctx, lcid, buf, blocking)
}
