// Package metrics provides the Prometheus registry indirection used by the
// simulation harness and HTTP debug server. Metrics are off unless
// InitRegistry is called; constructors return nil when disabled so callers
// can wire a metrics collaborator unconditionally at zero overhead.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	mu       sync.RWMutex
	registry *prometheus.Registry
	enabled  bool
)

// InitRegistry creates a fresh Prometheus registry and marks metrics as
// enabled. Calling it again replaces the registry with a new, empty one,
// which is only useful in tests that want isolated metric namespaces.
func InitRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	registry = prometheus.NewRegistry()
	enabled = true
	return registry
}

// IsEnabled reports whether InitRegistry has been called. Metric
// constructors elsewhere in this package return nil when it has not, so
// that callers can wire a metrics collaborator unconditionally with zero
// overhead when metrics are off.
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// GetRegistry returns the active Prometheus registry. It returns nil if
// InitRegistry has not been called; callers should check IsEnabled first.
func GetRegistry() *prometheus.Registry {
	mu.RLock()
	defer mu.RUnlock()
	return registry
}

// Reset disables metrics and drops the registry. Used by tests that need
// to exercise both the enabled and disabled paths in the same process.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = nil
	enabled = false
}
