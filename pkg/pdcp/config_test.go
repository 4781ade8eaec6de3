package pdcp

import "testing"

func TestBearerConfigDerivedConstants(t *testing.T) {
	cases := []struct {
		name      string
		cfg       BearerConfig
		hdrLen    int
		maximumSN uint32
		window    uint32
	}{
		{
			name:      "SRB",
			cfg:       BearerConfig{RBType: RBTypeSRB, SNLen: 5},
			hdrLen:    1,
			maximumSN: 31,
			window:    0,
		},
		{
			name:      "DRB short SN",
			cfg:       BearerConfig{RBType: RBTypeDRB, SNLen: 7},
			hdrLen:    1,
			maximumSN: 127,
			window:    64,
		},
		{
			name:      "DRB long SN",
			cfg:       BearerConfig{RBType: RBTypeDRB, SNLen: 12},
			hdrLen:    2,
			maximumSN: 4095,
			window:    2048,
		},
	}
	for _, c := range cases {
		if got := c.cfg.HdrLenBytes(); got != c.hdrLen {
			t.Errorf("%s: HdrLenBytes() = %d, want %d", c.name, got, c.hdrLen)
		}
		if got := c.cfg.MaximumPDCPSN(); got != c.maximumSN {
			t.Errorf("%s: MaximumPDCPSN() = %d, want %d", c.name, got, c.maximumSN)
		}
		if got := c.cfg.ReorderingWindow(); got != c.window {
			t.Errorf("%s: ReorderingWindow() = %d, want %d", c.name, got, c.window)
		}
	}
}

func TestBearerConfigValidate(t *testing.T) {
	valid := BearerConfig{BearerID: 1, LCID: 1, RBType: RBTypeSRB, RLCMode: RLCModeUM, SNLen: 5}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid config to pass, got %v", err)
	}

	invalid := BearerConfig{BearerID: 1, LCID: 1, RBType: RBTypeSRB, RLCMode: RLCModeUM, SNLen: 6}
	if err := invalid.Validate(); err == nil {
		t.Error("expected sn_len=6 to fail validation")
	}

	missingBearerID := BearerConfig{LCID: 1, RBType: RBTypeSRB, RLCMode: RLCModeUM, SNLen: 5}
	if err := missingBearerID.Validate(); err == nil {
		t.Error("expected missing bearer_id to fail validation")
	}
}
