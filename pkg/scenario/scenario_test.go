package scenario

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/ltepdcp/pkg/pdcp"
)

func TestBearerScenario_ParsedRBType(t *testing.T) {
	srb := BearerScenario{RBType: "srb"}
	rbType, err := srb.ParsedRBType()
	require.NoError(t, err)
	assert.Equal(t, pdcp.RBTypeSRB, rbType)

	drb := BearerScenario{RBType: "DRB"}
	rbType, err = drb.ParsedRBType()
	require.NoError(t, err)
	assert.Equal(t, pdcp.RBTypeDRB, rbType)

	_, err = BearerScenario{RBType: "bogus"}.ParsedRBType()
	assert.Error(t, err)
}

func TestBearerScenario_ParsedRLCMode(t *testing.T) {
	um, err := BearerScenario{RLCMode: ""}.ParsedRLCMode()
	require.NoError(t, err)
	assert.Equal(t, pdcp.RLCModeUM, um)

	am, err := BearerScenario{RLCMode: "am"}.ParsedRLCMode()
	require.NoError(t, err)
	assert.Equal(t, pdcp.RLCModeAM, am)

	_, err = BearerScenario{RLCMode: "bogus"}.ParsedRLCMode()
	assert.Error(t, err)
}

func TestBearerScenario_BearerConfig(t *testing.T) {
	bs := BearerScenario{
		BearerID: 1,
		LCID:     2,
		RBType:   "DRB",
		RLCMode:  "AM",
		SNLen:    12,
	}
	cfg, err := bs.BearerConfig()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), cfg.BearerID)
	assert.Equal(t, uint32(2), cfg.LCID)
	assert.Equal(t, pdcp.RBTypeDRB, cfg.RBType)
	assert.Equal(t, pdcp.RLCModeAM, cfg.RLCMode)
	assert.Equal(t, uint8(12), cfg.SNLen)
}

func TestScenario_ValidateRejectsEmptyBearers(t *testing.T) {
	s := &Scenario{Name: "empty"}
	assert.Error(t, s.Validate())
}

func TestScenario_ValidateAcceptsWellFormed(t *testing.T) {
	s := &Scenario{
		Name: "srb-echo",
		Bearers: []BearerScenario{
			{Name: "srb0", BearerID: 1, LCID: 1, RBType: "SRB", SNLen: 5, SDUCount: 1, SDUSize: 10},
		},
	}
	assert.NoError(t, s.Validate())
}

func TestRun_SRBEchoNoLoss(t *testing.T) {
	s := &Scenario{
		Name: "srb-echo",
		Bearers: []BearerScenario{
			{Name: "srb0", BearerID: 1, LCID: 1, RBType: "SRB", SNLen: 5, SDUCount: 10, SDUSize: 8},
		},
	}
	registry := pdcp.NewRegistry()
	result, err := Run(context.Background(), s, registry)
	require.NoError(t, err)
	require.Len(t, result.Bearers, 1)

	br := result.Bearers[0]
	assert.Equal(t, 10, br.Submitted)
	assert.Equal(t, 10, br.Delivered)
	assert.Equal(t, 0, br.Dropped)
	// tx_count is the next COUNT to assign; rx_count is the COUNT of the
	// last delivered PDU, one behind it on a lossless link.
	assert.Equal(t, uint32(10), br.ULSN)
	assert.Equal(t, uint32(9), br.DLSN)
}

func TestRun_UMDRBWithDrops(t *testing.T) {
	s := &Scenario{
		Name: "um-gap",
		Bearers: []BearerScenario{
			{
				Name: "drb0", BearerID: 2, LCID: 2, RBType: "DRB", RLCMode: "UM", SNLen: 12,
				SDUCount: 4, SDUSize: 4, DropAt: []int{1, 2},
			},
		},
	}
	registry := pdcp.NewRegistry()
	result, err := Run(context.Background(), s, registry)
	require.NoError(t, err)

	br := result.Bearers[0]
	assert.Equal(t, 4, br.Submitted)
	assert.Equal(t, 2, br.Delivered)
	assert.Equal(t, 2, br.Dropped)
}

func TestRun_RegistersBearersInRegistry(t *testing.T) {
	s := &Scenario{
		Name: "single",
		Bearers: []BearerScenario{
			{Name: "srb0", BearerID: 5, LCID: 9, RBType: "SRB", SNLen: 5, SDUCount: 1, SDUSize: 4},
		},
	}
	registry := pdcp.NewRegistry()
	_, err := Run(context.Background(), s, registry)
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Count())
	assert.NotNil(t, registry.Get(9))
}

func TestRunConcurrent_MultipleBearers(t *testing.T) {
	s := &Scenario{
		Name: "multi",
		Bearers: []BearerScenario{
			{Name: "srb0", BearerID: 1, LCID: 1, RBType: "SRB", SNLen: 5, SDUCount: 3, SDUSize: 4},
			{Name: "drb0", BearerID: 2, LCID: 2, RBType: "DRB", RLCMode: "UM", SNLen: 12, SDUCount: 3, SDUSize: 4},
		},
	}
	registry := pdcp.NewRegistry()
	result, err := RunConcurrent(context.Background(), s, registry)
	require.NoError(t, err)
	require.Len(t, result.Bearers, 2)
	for _, br := range result.Bearers {
		assert.Equal(t, 3, br.Delivered)
	}
}

func TestResult_RowsMatchBearerCount(t *testing.T) {
	result := &Result{
		Bearers: []BearerResult{
			{Name: "a", BearerID: 1},
			{Name: "b", BearerID: 2},
		},
	}
	assert.Len(t, result.Rows(), 2)
	assert.Len(t, result.Headers(), 8)
}
