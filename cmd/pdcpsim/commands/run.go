package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marmos91/ltepdcp/internal/cli/output"
	"github.com/marmos91/ltepdcp/internal/logger"
	"github.com/marmos91/ltepdcp/internal/telemetry"
	"github.com/marmos91/ltepdcp/pkg/api"
	"github.com/marmos91/ltepdcp/pkg/metrics"
	"github.com/marmos91/ltepdcp/pkg/pdcp"
	"github.com/marmos91/ltepdcp/pkg/scenario"
)

var (
	runConcurrent bool
	runServe      bool
)

var runCmd = &cobra.Command{
	Use:   "run <scenario-file>",
	Short: "Run a scenario file against simulated PDCP bearers",
	Long: `run loads a scenario file describing one or more bearers and the SDUs
to submit on each, drives them across an in-memory simulated radio link,
and reports the resulting per-bearer COUNT/SN/HFN state.

Examples:
  pdcpsim run scenarios/srb-echo.yaml
  pdcpsim run scenarios/um-gap.yaml --concurrent -o json
  pdcpsim run scenarios/am-window.yaml --serve`,
	Args: cobra.ExactArgs(1),
	RunE: runScenario,
}

func init() {
	runCmd.Flags().BoolVar(&runConcurrent, "concurrent", false, "Run all bearers concurrently instead of sequentially")
	runCmd.Flags().BoolVar(&runServe, "serve", false, "Keep the bearer-status API server running after the scenario completes, until interrupted")
}

func runScenario(cmd *cobra.Command, args []string) error {
	if err := logger.Init(logger.Config{Level: Flags.LogLevel, Format: Flags.LogFormat}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if Flags.MetricsOn {
		metrics.InitRegistry()
		logger.Info("metrics enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryShutdown, err := telemetry.Init(ctx, telemetry.DefaultConfig())
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	s, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	registry := pdcp.NewRegistry()

	var apiServer *api.Server
	if !Flags.APIDisabled {
		enabled := true
		apiServer = api.NewServer(api.APIConfig{Enabled: &enabled, Port: Flags.APIPort}, registry)
		go func() {
			if err := apiServer.Start(ctx); err != nil {
				logger.Error("api server error", "error", err)
			}
		}()
	}

	var result *scenario.Result
	if runConcurrent {
		result, err = scenario.RunConcurrent(ctx, s, registry)
	} else {
		result, err = scenario.Run(ctx, s, registry)
	}
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(Flags.Output)
	if err != nil {
		return err
	}
	printer := output.NewPrinter(os.Stdout, format, true)
	if err := printer.Print(result); err != nil {
		return err
	}

	if runServe && apiServer != nil {
		printer.Println()
		printer.Printf("bearer-status API serving on :%d, press Ctrl+C to stop\n", apiServer.Port())

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		signal.Stop(sigChan)
	}

	return nil
}
