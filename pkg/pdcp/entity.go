package pdcp

import (
	"context"
	"sync"

	"github.com/marmos91/ltepdcp/internal/logger"
)

// Entity is a single per-bearer PDCP instance. It is created inert,
// configured exactly once by Init, and then driven by WriteSDU/WritePDU
// under its own mutex until Reset or the owning bearer is torn down.
//
// The bearer type and RLC mode selected at Init act as a tagged variant:
// WritePDU dispatches on cfg.RBType/cfg.RLCMode rather than through a type
// hierarchy.
type Entity struct {
	mu sync.Mutex

	cfg   BearerConfig
	state state

	rlc RLC
	rrc RRC
	gw  GW

	integrity Integrity
	cipher    Cipher

	metrics Metrics
}

// NewEntity constructs an inert entity with the given collaborators. Any of
// rrc/gw may be nil if the entity will only ever be configured as the other
// bearer type; Init validates this against the configured RBType.
// integrity/cipher default to no-op implementations if nil.
func NewEntity(rlc RLC, rrc RRC, gw GW, integrity Integrity, cipher Cipher, metrics Metrics) *Entity {
	if integrity == nil {
		integrity = NullIntegrity{}
	}
	if cipher == nil {
		cipher = NullCipher{}
	}
	return &Entity{
		rlc:       rlc,
		rrc:       rrc,
		gw:        gw,
		integrity: integrity,
		cipher:    cipher,
		metrics:   metrics,
	}
}

// Init configures the entity exactly once: stores cfg, resets all
// counters to zero, computes the derived sn-width constants, sets
// last_submitted_pdcp_rx_sn to the "nothing yet delivered" sentinel, and
// marks the entity active.
func (e *Entity) Init(cfg BearerConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.active {
		return ErrAlreadyInitialized
	}
	if err := cfg.Validate(); err != nil {
		return ErrInvalidConfig
	}
	if e.rlc == nil {
		return ErrNilCollaborator
	}
	if cfg.RBType == RBTypeSRB && e.rrc == nil {
		return ErrNilCollaborator
	}
	if cfg.RBType == RBTypeDRB && e.gw == nil {
		return ErrNilCollaborator
	}

	if cfg.RBType == RBTypeDRB {
		if um := e.rlc.IsUM(cfg.LCID); um != (cfg.RLCMode == RLCModeUM) {
			logger.Warn("pdcp bearer RLC mode disagrees with lower layer",
				logger.BearerID(cfg.BearerID),
				logger.LCID(cfg.LCID),
				logger.RLCMode(cfg.RLCMode.String()),
			)
		}
	}

	e.cfg = cfg
	e.state = state{
		active:                true,
		lastSubmittedPDCPRxSN: cfg.MaximumPDCPSN(),
	}

	logger.Info("pdcp entity initialized",
		logger.BearerID(cfg.BearerID),
		logger.LCID(cfg.LCID),
		logger.RBType(cfg.RBType.String()),
		logger.RLCMode(cfg.RLCMode.String()),
		logger.Operation("init"),
	)
	return nil
}

// Reset clears active, leaving all counters intact. The entity
// rejects traffic until Init or Reestablish runs again.
func (e *Entity) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.active = false
	logger.Info("pdcp entity reset",
		logger.BearerID(e.cfg.BearerID),
		logger.Operation("reset"),
	)
}

// Reestablish implements TS 36.323 §5.2 reestablishment: SRB and
// UM-mapped DRB counters are zeroed; AM-mapped DRB counters are left
// intact for the upper layer to drive recovery.
func (e *Entity) Reestablish() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cfg.RBType == RBTypeSRB || (e.cfg.RBType == RBTypeDRB && e.cfg.RLCMode == RLCModeUM) {
		e.state.txCount = 0
		e.state.rxCount = 0
		e.state.rxHFN = 0
		e.state.nextPDCPRxSN = 0
	}
	e.state.active = true

	logger.Info("pdcp entity reestablished",
		logger.BearerID(e.cfg.BearerID),
		logger.RBType(e.cfg.RBType.String()),
		logger.RLCMode(e.cfg.RLCMode.String()),
		logger.Operation("reestablish"),
	)
}

// ULCount returns tx_count, the next COUNT to be assigned on transmission.
func (e *Entity) ULCount() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.txCount
}

// DLCount returns rx_count, the last COUNT observed on reception.
func (e *Entity) DLCount() uint32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.rxCount
}

// BearerStatus splits tx_count/rx_count into (SN, HFN) halves using the
// bearer's SN width, matching the TS 36.323 bearer context report fields.
func (e *Entity) BearerStatus() (dlSN, dlHFN, ulSN, ulHFN uint32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	dlHFN, dlSN = splitCOUNT(e.state.rxCount, e.cfg.SNLen)
	ulHFN, ulSN = splitCOUNT(e.state.txCount, e.cfg.SNLen)
	return dlSN, dlHFN, ulSN, ulHFN
}

// Config returns a copy of the entity's bearer configuration.
func (e *Entity) Config() BearerConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// WritePDU delivers a received PDU to the entity, dispatching on the
// entity's tagged variant: SRB, DRB/UM, or DRB/AM. Malformed input and
// discard decisions never surface as an error; the return value only
// reports usage errors (entity not active).
func (e *Entity) WritePDU(ctx context.Context, buf *Buffer) error {
	e.mu.Lock()
	if !e.state.active {
		e.mu.Unlock()
		buf.Release()
		return ErrNotActive
	}
	cfg := e.cfg

	switch {
	case cfg.RBType == RBTypeSRB:
		e.handleSRBPDULocked(ctx, buf)
	case cfg.RLCMode == RLCModeUM:
		e.handleUMDRBPDULocked(ctx, buf)
	default:
		e.handleAMDRBPDULocked(ctx, buf)
	}
	e.mu.Unlock()
	return nil
}
