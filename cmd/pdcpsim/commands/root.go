// Package commands implements the pdcpsim CLI commands.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information injected at build time by main.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Flags holds the persistent flag values synced in PersistentPreRun, read
// by subcommands instead of querying cobra directly.
var Flags struct {
	LogLevel    string
	LogFormat   string
	Output      string
	MetricsOn   bool
	APIPort     int
	APIDisabled bool
}

var rootCmd = &cobra.Command{
	Use:   "pdcpsim",
	Short: "PDCP bearer simulation harness",
	Long: `pdcpsim drives scenario files through simulated PDCP bearers.

Each scenario configures one or more bearers (SRB/DRB, UM/AM) and submits
a batch of SDUs across an in-memory radio link with optional PDU loss,
then reports the resulting COUNT/SN/HFN state on both ends.

Use "pdcpsim [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Flags.LogLevel, _ = cmd.Flags().GetString("log-level")
		Flags.LogFormat, _ = cmd.Flags().GetString("log-format")
		Flags.Output, _ = cmd.Flags().GetString("output")
		Flags.MetricsOn, _ = cmd.Flags().GetBool("metrics")
		Flags.APIPort, _ = cmd.Flags().GetInt("api-port")
		Flags.APIDisabled, _ = cmd.Flags().GetBool("no-api")
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text|json)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Result output format (table|json|yaml)")
	rootCmd.PersistentFlags().Bool("metrics", false, "Enable Prometheus metrics collection")
	rootCmd.PersistentFlags().Int("api-port", 8080, "Port for the bearer-status debug API")
	rootCmd.PersistentFlags().Bool("no-api", false, "Disable the bearer-status debug API server")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}
