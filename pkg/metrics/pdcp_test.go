package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func TestNewPDCPMetrics_DisabledReturnsNil(t *testing.T) {
	Reset()
	m := NewPDCPMetrics()
	assert.Nil(t, m)
}

func TestNewPDCPMetrics_EnabledRecords(t *testing.T) {
	InitRegistry()
	defer Reset()

	m := NewPDCPMetrics()
	require.NotNil(t, m)

	m.PDUTransmitted(5, 15)
	m.PDUReceived(5, 10)
	m.PDUDiscarded(5, "too_short")
	m.HFNWrapped(5)

	families, err := GetRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]*dto.MetricFamily, len(families))
	for _, fam := range families {
		names[fam.GetName()] = fam
	}

	require.Contains(t, names, "pdcp_pdus_transmitted_total")
	require.Contains(t, names, "pdcp_pdus_discarded_total")
	require.Contains(t, names, "pdcp_hfn_wraps_total")

	tx := names["pdcp_pdus_transmitted_total"]
	require.Len(t, tx.Metric, 1)
	assert.Equal(t, float64(1), tx.Metric[0].GetCounter().GetValue())
}

func TestNewPDCPMetrics_SharedAcrossCalls(t *testing.T) {
	InitRegistry()
	defer Reset()

	first := NewPDCPMetrics()
	second := NewPDCPMetrics()
	require.NotNil(t, first)
	assert.Same(t, first, second, "one registry must back a single metrics instance")

	// A fresh registry gets a fresh instance registered against it.
	InitRegistry()
	third := NewPDCPMetrics()
	require.NotNil(t, third)
	assert.NotSame(t, first, third)
}

func TestIsEnabled(t *testing.T) {
	Reset()
	assert.False(t, IsEnabled())
	InitRegistry()
	assert.True(t, IsEnabled())
	Reset()
	assert.False(t, IsEnabled())
}
