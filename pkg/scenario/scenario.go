// Package scenario loads and runs scenario files for the pdcpsim harness: a
// declarative description of one or more bearers, each driving a number of
// SDUs across a simulated radio link with optional PDU loss.
package scenario

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/marmos91/ltepdcp/pkg/pdcp"
)

// BearerScenario describes one simulated bearer and the traffic driven
// across it.
type BearerScenario struct {
	// Name labels this bearer in results and logs.
	Name string `mapstructure:"name" yaml:"name" validate:"required"`
	// BearerID identifies the bearer in logs and results.
	BearerID uint32 `mapstructure:"bearer_id" yaml:"bearer_id" validate:"required"`
	// LCID is the logical channel ID the bearer is registered under.
	LCID uint32 `mapstructure:"lcid" yaml:"lcid" validate:"required"`
	// RBType is "SRB" or "DRB".
	RBType string `mapstructure:"rb_type" yaml:"rb_type" validate:"required,oneof=SRB DRB"`
	// RLCMode is "UM" or "AM"; ignored for SRB.
	RLCMode string `mapstructure:"rlc_mode" yaml:"rlc_mode" validate:"omitempty,oneof=UM AM"`
	// SNLen is the sequence-number bit width: 5, 7, or 12.
	SNLen uint8 `mapstructure:"sn_len" yaml:"sn_len" validate:"required,oneof=5 7 12"`
	// DoIntegrity enables the simcrypto HMAC-based MAC-I suite.
	DoIntegrity bool `mapstructure:"do_integrity" yaml:"do_integrity"`
	// DoEncryption enables the simcrypto AES-CTR cipher suite.
	DoEncryption bool `mapstructure:"do_encryption" yaml:"do_encryption"`
	// SDUCount is the number of SDUs to submit on TX.
	SDUCount int `mapstructure:"sdu_count" yaml:"sdu_count" validate:"required,gt=0"`
	// SDUSize is the byte length of each submitted SDU.
	SDUSize int `mapstructure:"sdu_size" yaml:"sdu_size" validate:"required,gt=0"`
	// DropAt lists zero-based submission indices to drop in transit,
	// modeling radio-link loss for UM-DRB/AM-DRB scenarios.
	DropAt []int `mapstructure:"drop_at" yaml:"drop_at"`
}

// ParsedRBType returns the bearer type as a pdcp.RBType.
func (b BearerScenario) ParsedRBType() (pdcp.RBType, error) {
	switch strings.ToUpper(b.RBType) {
	case "SRB":
		return pdcp.RBTypeSRB, nil
	case "DRB":
		return pdcp.RBTypeDRB, nil
	default:
		return 0, fmt.Errorf("scenario: unknown rb_type %q", b.RBType)
	}
}

// ParsedRLCMode returns the RLC mode as a pdcp.RLCMode.
func (b BearerScenario) ParsedRLCMode() (pdcp.RLCMode, error) {
	switch strings.ToUpper(b.RLCMode) {
	case "", "UM":
		return pdcp.RLCModeUM, nil
	case "AM":
		return pdcp.RLCModeAM, nil
	default:
		return 0, fmt.Errorf("scenario: unknown rlc_mode %q", b.RLCMode)
	}
}

// BearerConfig builds the pdcp.BearerConfig this scenario drives its entity
// pair with.
func (b BearerScenario) BearerConfig() (pdcp.BearerConfig, error) {
	rbType, err := b.ParsedRBType()
	if err != nil {
		return pdcp.BearerConfig{}, err
	}
	rlcMode, err := b.ParsedRLCMode()
	if err != nil {
		return pdcp.BearerConfig{}, err
	}
	return pdcp.BearerConfig{
		BearerID:     b.BearerID,
		LCID:         b.LCID,
		RBType:       rbType,
		RLCMode:      rlcMode,
		SNLen:        b.SNLen,
		DoIntegrity:  b.DoIntegrity,
		DoEncryption: b.DoEncryption,
	}, nil
}

// Scenario is the top-level description of a pdcpsim run.
type Scenario struct {
	// Name labels this scenario run in logs and status output.
	Name string `mapstructure:"name" yaml:"name" validate:"required"`
	// SessionSecret seeds simcrypto.DeriveKeys for every bearer in this
	// scenario that has do_integrity or do_encryption enabled.
	SessionSecret string `mapstructure:"session_secret" yaml:"session_secret"`
	// Bearers is the set of bearers this scenario drives, independently
	// and (when run through RunConcurrent) concurrently.
	Bearers []BearerScenario `mapstructure:"bearers" yaml:"bearers" validate:"required,min=1,dive"`
}

var scenarioValidator = validator.New()

// Validate checks the scenario against its struct tags.
func (s *Scenario) Validate() error {
	return scenarioValidator.Struct(s)
}

// Load reads a scenario file (YAML, or anything viper's AutomaticEnv-aware
// reader supports) from path and validates it.
func Load(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("PDCPSIM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	var s Scenario
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("scenario: unmarshal %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario: invalid: %w", err)
	}

	return &s, nil
}
