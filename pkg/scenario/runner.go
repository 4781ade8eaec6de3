package scenario

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/marmos91/ltepdcp/internal/logger"
	"github.com/marmos91/ltepdcp/internal/simcrypto"
	"github.com/marmos91/ltepdcp/internal/simtransport"
	"github.com/marmos91/ltepdcp/internal/telemetry"
	"github.com/marmos91/ltepdcp/pkg/metrics"
	"github.com/marmos91/ltepdcp/pkg/pdcp"
)

// BearerResult captures one bearer's outcome after a scenario run.
type BearerResult struct {
	Name        string
	BearerID    uint32
	LCID        uint32
	RBType      string
	RLCMode     string
	Submitted   int
	Delivered   int
	Dropped     int
	DLSN, DLHFN uint32
	ULSN, ULHFN uint32
}

// Headers implements output.TableRenderer.
func (BearerResult) Headers() []string {
	return []string{"BEARER", "NAME", "TYPE", "SUBMITTED", "DELIVERED", "DROPPED", "UL (HFN/SN)", "DL (HFN/SN)"}
}

// Result is the outcome of running a Scenario.
type Result struct {
	RunID   string
	Name    string
	Bearers []BearerResult
}

// Headers implements output.TableRenderer for a Result (delegates to its
// bearers' row shape).
func (r Result) Headers() []string {
	return BearerResult{}.Headers()
}

// Rows implements output.TableRenderer.
func (r Result) Rows() [][]string {
	rows := make([][]string, 0, len(r.Bearers))
	for _, b := range r.Bearers {
		rows = append(rows, []string{
			fmt.Sprintf("%d", b.BearerID),
			b.Name,
			fmt.Sprintf("%s/%s", b.RBType, b.RLCMode),
			fmt.Sprintf("%d", b.Submitted),
			fmt.Sprintf("%d", b.Delivered),
			fmt.Sprintf("%d", b.Dropped),
			fmt.Sprintf("%d/%d", b.ULHFN, b.ULSN),
			fmt.Sprintf("%d/%d", b.DLHFN, b.DLSN),
		})
	}
	return rows
}

// Run executes every bearer in the scenario sequentially against registry,
// registering each bearer's receive-side entity under its LCID so the API
// server can report live status.
func Run(ctx context.Context, s *Scenario, registry *pdcp.Registry) (*Result, error) {
	runID := uuid.NewString()
	ctx = logger.WithContext(ctx, &logger.LogContext{RunID: runID})
	logger.InfoCtx(ctx, "scenario run starting", "name", s.Name, "bearers", len(s.Bearers))

	result := &Result{RunID: runID, Name: s.Name}
	for _, bs := range s.Bearers {
		br, err := runBearer(ctx, s.SessionSecret, bs, registry)
		if err != nil {
			return nil, fmt.Errorf("scenario: bearer %s: %w", bs.Name, err)
		}
		result.Bearers = append(result.Bearers, *br)
	}
	return result, nil
}

// RunConcurrent is identical to Run but drives every bearer on its own
// goroutine and returns the first error any bearer reports. A failing
// bearer does not stop the others; the error is returned once all have
// finished.
func RunConcurrent(ctx context.Context, s *Scenario, registry *pdcp.Registry) (*Result, error) {
	runID := uuid.NewString()
	ctx = logger.WithContext(ctx, &logger.LogContext{RunID: runID})
	logger.InfoCtx(ctx, "scenario run starting (concurrent)", "name", s.Name, "bearers", len(s.Bearers))

	results := make([]BearerResult, len(s.Bearers))
	g, gctx := errgroup.WithContext(ctx)
	for i, bs := range s.Bearers {
		i, bs := i, bs
		g.Go(func() error {
			br, err := runBearer(gctx, s.SessionSecret, bs, registry)
			if err != nil {
				return fmt.Errorf("scenario: bearer %s: %w", bs.Name, err)
			}
			results[i] = *br
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{RunID: runID, Name: s.Name, Bearers: results}, nil
}

// runBearer builds a TX/RX entity pair for one bearer scenario, drives
// SDUCount SDUs across a simtransport.Channel with the configured drops,
// and summarizes the outcome.
func runBearer(ctx context.Context, sessionSecret string, bs BearerScenario, registry *pdcp.Registry) (*BearerResult, error) {
	cfg, err := bs.BearerConfig()
	if err != nil {
		return nil, err
	}

	var suite *simcrypto.Suite
	if cfg.DoIntegrity || cfg.DoEncryption {
		suite, err = simcrypto.NewSuite([]byte(sessionSecret), cfg.BearerID, cfg.LCID)
		if err != nil {
			return nil, fmt.Errorf("derive session keys: %w", err)
		}
	} else {
		suite = simcrypto.NullSuite()
	}

	pdcpMetrics := metrics.NewPDCPMetrics()

	rxRecorder := simtransport.NewRecorder(bs.Name)
	rxEntity := pdcp.NewEntity(simtransport.NewNullRLC(cfg.RLCMode == pdcp.RLCModeUM), rxRecorder, rxRecorder, suite.Integrity, suite.Cipher, pdcpMetrics)
	if err := rxEntity.Init(cfg); err != nil {
		return nil, fmt.Errorf("init rx entity: %w", err)
	}

	channel := simtransport.NewChannel(rxEntity, cfg.RLCMode == pdcp.RLCModeUM)
	channel.DropAt(bs.DropAt...)

	txEntity := pdcp.NewEntity(channel, rxRecorder, rxRecorder, suite.Integrity, suite.Cipher, pdcpMetrics)
	if err := txEntity.Init(cfg); err != nil {
		return nil, fmt.Errorf("init tx entity: %w", err)
	}

	if registry != nil {
		if err := registry.Register(cfg.LCID, rxEntity); err != nil {
			return nil, fmt.Errorf("register bearer: %w", err)
		}
	}

	ctx, span := telemetry.StartBearerSpan(ctx, telemetry.SpanSimBearerRun, cfg.BearerID, cfg.LCID, cfg.RBType.String(), cfg.RLCMode.String())
	defer span.End()

	for i := 0; i < bs.SDUCount; i++ {
		buf := pdcp.NewBufferWithHeadroom(bs.SDUSize, pdcp.DefaultHeadroom, pdcp.DefaultTailroom)
		fillPattern(buf.Msg(), i)
		if err := txEntity.WriteSDU(ctx, buf, true); err != nil {
			return nil, fmt.Errorf("write sdu %d: %w", i, err)
		}
	}

	dlSN, dlHFN, _, _ := rxEntity.BearerStatus()
	_, _, ulSN, ulHFN := txEntity.BearerStatus()

	return &BearerResult{
		Name:      bs.Name,
		BearerID:  cfg.BearerID,
		LCID:      cfg.LCID,
		RBType:    cfg.RBType.String(),
		RLCMode:   cfg.RLCMode.String(),
		Submitted: bs.SDUCount,
		Delivered: len(rxRecorder.Deliveries()),
		Dropped:   bs.SDUCount - len(rxRecorder.Deliveries()),
		DLSN:      dlSN,
		DLHFN:     dlHFN,
		ULSN:      ulSN,
		ULHFN:     ulHFN,
	}, nil
}

// fillPattern writes a deterministic, index-dependent byte pattern into buf
// so delivered SDUs can be checked for content as well as count.
func fillPattern(buf []byte, index int) {
	for i := range buf {
		buf[i] = byte(index + i)
	}
}
