// Package simtransport provides in-memory RLC/RRC/GW stand-ins that wire
// two pdcp.Entity values together for the scenario-driven simulation
// harness (cmd/pdcpsim). These are production components of the harness,
// not test doubles: they are the "radio link" a scenario file runs PDUs
// across, including configurable PDU loss so loss-tolerance scenarios can
// be expressed declaratively.
package simtransport

import (
	"context"
	"fmt"
	"sync"

	"github.com/marmos91/ltepdcp/internal/logger"
	"github.com/marmos91/ltepdcp/pkg/pdcp"
)

// Channel implements pdcp.RLC by handing every submitted PDU directly to a
// peer entity's WritePDU, simulating a lossless or lossy radio link
// depending on configured drops. One Channel instance is the RLC
// collaborator for exactly one direction of one bearer pair.
type Channel struct {
	mu   sync.Mutex
	peer *pdcp.Entity
	um   bool

	seq     int
	dropSeq map[int]bool
}

// NewChannel constructs a Channel that delivers PDUs to peer. um selects
// the RX-path variant the far end's entity should treat this link as
// (reported through IsUM); it has no effect on delivery itself.
func NewChannel(peer *pdcp.Entity, um bool) *Channel {
	return &Channel{
		peer:    peer,
		um:      um,
		dropSeq: make(map[int]bool),
	}
}

// DropAt marks the PDUs at the given zero-based submission indices (in
// order of WriteSDU calls on this channel) to be silently dropped instead
// of delivered, modeling radio-link loss for UM-DRB gap scenarios.
func (c *Channel) DropAt(indices ...int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, idx := range indices {
		c.dropSeq[idx] = true
	}
}

// WriteSDU implements pdcp.RLC. It delivers buf to the peer entity unless
// the current submission index was marked for drop via DropAt.
func (c *Channel) WriteSDU(ctx context.Context, lcid uint32, buf *pdcp.Buffer, _ bool) error {
	c.mu.Lock()
	idx := c.seq
	c.seq++
	drop := c.dropSeq[idx]
	c.mu.Unlock()

	if drop {
		logger.DebugCtx(ctx, "simtransport: dropping PDU", logger.LCID(lcid), "seq", idx)
		buf.Release()
		return nil
	}

	if err := c.peer.WritePDU(ctx, buf); err != nil {
		return fmt.Errorf("simtransport: peer rejected PDU: %w", err)
	}
	return nil
}

// IsUM implements pdcp.RLC.
func (c *Channel) IsUM(_ uint32) bool {
	return c.um
}

// NullRLC implements pdcp.RLC by discarding everything submitted to it. It
// satisfies Entity.Init's requirement of a non-nil RLC collaborator for
// entities the harness only ever receives on (the far end of a one-way
// scenario), which never call WriteSDU themselves.
type NullRLC struct{ um bool }

// NewNullRLC constructs a NullRLC reporting um for IsUM.
func NewNullRLC(um bool) NullRLC {
	return NullRLC{um: um}
}

// WriteSDU implements pdcp.RLC by releasing buf and returning nil.
func (NullRLC) WriteSDU(_ context.Context, _ uint32, buf *pdcp.Buffer, _ bool) error {
	buf.Release()
	return nil
}

// IsUM implements pdcp.RLC.
func (n NullRLC) IsUM(_ uint32) bool {
	return n.um
}
