package handlers

import (
	"net/http"
	"time"

	"github.com/marmos91/ltepdcp/pkg/pdcp"
)

// processStart anchors the uptime reported by Liveness.
var processStart = time.Now()

// HealthHandler handles health and bearer-status endpoints.
//
// Health endpoints are unauthenticated and provide:
//   - Liveness probe: Is the server process running?
//   - Bearer status: per-LCID COUNT/SN/HFN snapshot from the PDCP registry
type HealthHandler struct {
	registry *pdcp.Registry
}

// NewHealthHandler creates a new health handler.
//
// The registry parameter may be nil, in which case bearer status reports
// zero registered bearers rather than failing.
func NewHealthHandler(registry *pdcp.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. This endpoint is designed
// for Kubernetes liveness probes and should always succeed as long as the
// HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(processStart)
	writeJSON(w, http.StatusOK, healthyResponse(map[string]interface{}{
		"service":    "pdcpsim",
		"started_at": processStart.UTC().Format(time.RFC3339),
		"uptime":     uptime.Round(time.Second).String(),
		"uptime_sec": int64(uptime.Seconds()),
	}))
}

// BearerStatusEntry is the per-bearer snapshot returned by Bearers.
type BearerStatusEntry struct {
	BearerID uint32 `json:"bearer_id"`
	LCID     uint32 `json:"lcid"`
	RBType   string `json:"rb_type"`
	RLCMode  string `json:"rlc_mode"`
	DLSN     uint32 `json:"dl_sn"`
	DLHFN    uint32 `json:"dl_hfn"`
	ULSN     uint32 `json:"ul_sn"`
	ULHFN    uint32 `json:"ul_hfn"`
}

// Bearers handles GET /health/bearers - a snapshot of every registered
// PDCP entity's COUNT state, split into SN/HFN halves.
//
// Returns 200 OK with an empty list if no registry is wired or no bearers
// are registered; this endpoint never reports unhealthy, since an idle
// simulation with zero bearers is a valid state.
func (h *HealthHandler) Bearers(w http.ResponseWriter, r *http.Request) {
	entries := make([]BearerStatusEntry, 0)

	if h.registry != nil {
		for _, lcid := range h.registry.LCIDs() {
			entity := h.registry.Get(lcid)
			if entity == nil {
				continue
			}
			cfg := entity.Config()
			dlSN, dlHFN, ulSN, ulHFN := entity.BearerStatus()
			entries = append(entries, BearerStatusEntry{
				BearerID: cfg.BearerID,
				LCID:     lcid,
				RBType:   cfg.RBType.String(),
				RLCMode:  cfg.RLCMode.String(),
				DLSN:     dlSN,
				DLHFN:    dlHFN,
				ULSN:     ulSN,
				ULHFN:    ulHFN,
			})
		}
	}

	writeJSON(w, http.StatusOK, healthyResponse(map[string]interface{}{
		"bearers": entries,
	}))
}
