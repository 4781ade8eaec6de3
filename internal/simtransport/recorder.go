package simtransport

import (
	"context"
	"sync"

	"github.com/marmos91/ltepdcp/pkg/pdcp"
)

// Delivery is one SDU handed upward through a Recorder, captured for
// scenario result inspection.
type Delivery struct {
	LCID uint32
	Data []byte
}

// Recorder implements both pdcp.RRC and pdcp.GW, standing in for the
// control-plane and user-plane peers a real PDCP entity would deliver
// decoded SDUs to. The simulation harness reads back Deliveries() to
// compare against the scenario's expectations.
type Recorder struct {
	mu         sync.Mutex
	name       string
	deliveries []Delivery
}

// NewRecorder constructs a Recorder identified by name for logging and the
// RBName status field.
func NewRecorder(name string) *Recorder {
	return &Recorder{name: name}
}

// WritePDU implements pdcp.RRC and pdcp.GW. The buffer's contents are
// copied out and released immediately; Recorder does not retain buffer
// ownership beyond the call.
func (r *Recorder) WritePDU(_ context.Context, lcid uint32, buf *pdcp.Buffer) {
	data := append([]byte(nil), buf.Msg()...)
	buf.Release()

	r.mu.Lock()
	r.deliveries = append(r.deliveries, Delivery{LCID: lcid, Data: data})
	r.mu.Unlock()
}

// RBName implements pdcp.RRC.
func (r *Recorder) RBName(_ uint32) string {
	return r.name
}

// Deliveries returns a snapshot of everything delivered so far, in order.
func (r *Recorder) Deliveries() []Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Delivery, len(r.deliveries))
	copy(out, r.deliveries)
	return out
}

// Reset clears recorded deliveries, for reuse across scenario runs within
// one process.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = nil
}
