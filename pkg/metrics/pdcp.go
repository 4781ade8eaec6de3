package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/marmos91/ltepdcp/pkg/pdcp"
)

// pdcpMetrics is the Prometheus-backed implementation of pdcp.Metrics.
type pdcpMetrics struct {
	pdusTransmitted *prometheus.CounterVec
	bytesTx         *prometheus.CounterVec
	pdusReceived    *prometheus.CounterVec
	bytesRx         *prometheus.CounterVec
	discards        *prometheus.CounterVec
	hfnWraps        *prometheus.CounterVec
}

var (
	sharedMu  sync.Mutex
	sharedFor *prometheus.Registry
	shared    *pdcpMetrics
)

// NewPDCPMetrics returns the Prometheus-backed pdcp.Metrics instance for the
// active registry. The counter vectors register once per registry; repeated
// calls return the same instance, so per-bearer entities can each request a
// metrics collaborator without tripping duplicate registration.
//
// Returns nil if metrics are not enabled (InitRegistry not called). A nil
// pdcp.Metrics is valid: pkg/pdcp nil-checks before every call, so entities
// can be constructed without a metrics backend in tests or disabled
// deployments at zero overhead.
func NewPDCPMetrics() pdcp.Metrics {
	if !IsEnabled() {
		return nil
	}

	reg := GetRegistry()

	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared != nil && sharedFor == reg {
		return shared
	}

	m := &pdcpMetrics{
		pdusTransmitted: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdcp_pdus_transmitted_total",
				Help: "Total number of PDCP PDUs handed to RLC by bearer.",
			},
			[]string{"bearer_id"},
		),
		bytesTx: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdcp_bytes_transmitted_total",
				Help: "Total number of PDCP PDU bytes handed to RLC by bearer.",
			},
			[]string{"bearer_id"},
		),
		pdusReceived: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdcp_pdus_received_total",
				Help: "Total number of PDCP PDUs delivered upward by bearer.",
			},
			[]string{"bearer_id"},
		),
		bytesRx: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdcp_bytes_received_total",
				Help: "Total number of PDCP SDU bytes delivered upward by bearer.",
			},
			[]string{"bearer_id"},
		),
		discards: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdcp_pdus_discarded_total",
				Help: "Total number of PDCP PDUs silently discarded by bearer and reason.",
			},
			[]string{"bearer_id", "reason"},
		),
		hfnWraps: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdcp_hfn_wraps_total",
				Help: "Total number of receive-direction HFN increments by bearer.",
			},
			[]string{"bearer_id"},
		),
	}
	shared = m
	sharedFor = reg
	return m
}

func (m *pdcpMetrics) PDUTransmitted(bearerID uint32, bytes int) {
	label := bearerIDLabel(bearerID)
	m.pdusTransmitted.WithLabelValues(label).Inc()
	m.bytesTx.WithLabelValues(label).Add(float64(bytes))
}

func (m *pdcpMetrics) PDUReceived(bearerID uint32, bytes int) {
	label := bearerIDLabel(bearerID)
	m.pdusReceived.WithLabelValues(label).Inc()
	m.bytesRx.WithLabelValues(label).Add(float64(bytes))
}

func (m *pdcpMetrics) PDUDiscarded(bearerID uint32, reason string) {
	m.discards.WithLabelValues(bearerIDLabel(bearerID), reason).Inc()
}

func (m *pdcpMetrics) HFNWrapped(bearerID uint32) {
	m.hfnWraps.WithLabelValues(bearerIDLabel(bearerID)).Inc()
}

func bearerIDLabel(bearerID uint32) string {
	return strconv.FormatUint(uint64(bearerID), 10)
}
