package pdcp

import "github.com/go-playground/validator/v10"

// RBType is the radio bearer type: signaling or data.
type RBType int

const (
	// RBTypeSRB is a signaling radio bearer (control plane).
	RBTypeSRB RBType = iota
	// RBTypeDRB is a data radio bearer (user plane).
	RBTypeDRB
)

func (t RBType) String() string {
	switch t {
	case RBTypeSRB:
		return "SRB"
	case RBTypeDRB:
		return "DRB"
	default:
		return "UNKNOWN"
	}
}

// RLCMode selects the RX-path variant for a DRB; meaningless for SRBs.
type RLCMode int

const (
	// RLCModeUM is unacknowledged mode: lossy, no reorder, no duplicate
	// suppression.
	RLCModeUM RLCMode = iota
	// RLCModeAM is acknowledged mode: window-based duplicate/stale
	// discard without full reordering.
	RLCModeAM
)

func (m RLCMode) String() string {
	switch m {
	case RLCModeUM:
		return "UM"
	case RLCModeAM:
		return "AM"
	default:
		return "UNKNOWN"
	}
}

// BearerConfig is the immutable-after-init configuration of one PDCP
// entity. validator tags enforce the SN-width and bearer/RLC-mode
// combinations the entity assumes hold.
type BearerConfig struct {
	// BearerID identifies the bearer for logging and status correlation.
	BearerID uint32 `validate:"required" mapstructure:"bearer_id"`
	// LCID is the logical channel ID this entity is registered under.
	LCID uint32 `validate:"required" mapstructure:"lcid"`
	// RBType is SRB or DRB.
	RBType RBType `validate:"oneof=0 1" mapstructure:"rb_type"`
	// RLCMode selects the RX path for a DRB; ignored for SRB.
	RLCMode RLCMode `validate:"oneof=0 1" mapstructure:"rlc_mode"`
	// SNLen is the sequence-number bit width: 5 for SRB, 7 or 12 for DRB.
	SNLen uint8 `validate:"oneof=5 7 12" mapstructure:"sn_len"`
	// DoIntegrity enables MAC-I generation/verification (SRB only in
	// practice, but the flag itself is orthogonal to bearer type).
	DoIntegrity bool `mapstructure:"do_integrity"`
	// DoEncryption enables ciphering of the payload.
	DoEncryption bool `mapstructure:"do_encryption"`
}

// HdrLenBytes returns the header length implied by SNLen: 1 byte for 5/7-bit
// SNs, 2 bytes for the 12-bit long SN.
func (c BearerConfig) HdrLenBytes() int {
	if c.SNLen == 12 {
		return 2
	}
	return 1
}

// MaximumPDCPSN returns (1 << sn_len) - 1.
func (c BearerConfig) MaximumPDCPSN() uint32 {
	return (uint32(1) << c.SNLen) - 1
}

// ReorderingWindow returns 0 for SRB, 2^(sn_len-1) for DRB.
func (c BearerConfig) ReorderingWindow() uint32 {
	if c.RBType == RBTypeSRB {
		return 0
	}
	return uint32(1) << (c.SNLen - 1)
}

var configValidator = validator.New()

// Validate checks the bearer configuration against the combinations the
// entity requires. It does not check RBType/SNLen cross-consistency beyond
// what the struct tags capture: an SRB configured with sn_len 7 or 12 passes,
// and Init stores SNLen as given.
func (c BearerConfig) Validate() error {
	return configValidator.Struct(c)
}
