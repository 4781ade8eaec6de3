package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/marmos91/ltepdcp/internal/cli/output"
	"github.com/marmos91/ltepdcp/internal/cli/timeutil"
)

var statusAPIAddr string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query a running pdcpsim bearer-status API",
	Long: `status polls a running "pdcpsim run --serve" instance's debug API and
displays the liveness and per-bearer COUNT/SN/HFN snapshot it reports.

Examples:
  pdcpsim status
  pdcpsim status --api-addr localhost:9090 -o json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusAPIAddr, "api-addr", "localhost:8080", "Address of the bearer-status debug API to query")
}

// healthEnvelope mirrors pkg/api.Response without importing the server
// package, so the CLI decodes the health envelope independently of the
// server's internal types.
type healthEnvelope struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
}

type bearerEntry struct {
	BearerID uint32 `json:"bearer_id"`
	LCID     uint32 `json:"lcid"`
	RBType   string `json:"rb_type"`
	RLCMode  string `json:"rlc_mode"`
	DLSN     uint32 `json:"dl_sn"`
	DLHFN    uint32 `json:"dl_hfn"`
	ULSN     uint32 `json:"ul_sn"`
	ULHFN    uint32 `json:"ul_hfn"`
}

type bearersData struct {
	Bearers []bearerEntry `json:"bearers"`
}

type livenessData struct {
	Service   string `json:"service"`
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime"`
}

// bearerStatusResult adapts the decoded bearer list to output.TableRenderer.
type bearerStatusResult struct {
	Reachable bool          `json:"reachable" yaml:"reachable"`
	Addr      string        `json:"addr" yaml:"addr"`
	Service   string        `json:"service,omitempty" yaml:"service,omitempty"`
	StartedAt string        `json:"started_at,omitempty" yaml:"started_at,omitempty"`
	Uptime    string        `json:"uptime,omitempty" yaml:"uptime,omitempty"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
	Bearers   []bearerEntry `json:"bearers" yaml:"bearers"`
}

// Headers implements output.TableRenderer.
func (bearerStatusResult) Headers() []string {
	return []string{"BEARER", "LCID", "TYPE", "UL (HFN/SN)", "DL (HFN/SN)"}
}

// Rows implements output.TableRenderer.
func (r bearerStatusResult) Rows() [][]string {
	rows := make([][]string, 0, len(r.Bearers))
	for _, b := range r.Bearers {
		rows = append(rows, []string{
			fmt.Sprintf("%d", b.BearerID),
			fmt.Sprintf("%d", b.LCID),
			fmt.Sprintf("%s/%s", b.RBType, b.RLCMode),
			fmt.Sprintf("%d/%d", b.ULHFN, b.ULSN),
			fmt.Sprintf("%d/%d", b.DLHFN, b.DLSN),
		})
	}
	return rows
}

func runStatus(cmd *cobra.Command, args []string) error {
	result := bearerStatusResult{Addr: statusAPIAddr}

	client := &http.Client{Timeout: 5 * time.Second}

	if resp, err := client.Get(fmt.Sprintf("http://%s/health", statusAPIAddr)); err == nil {
		var env healthEnvelope
		if json.NewDecoder(resp.Body).Decode(&env) == nil && env.Status == "healthy" {
			var data livenessData
			if json.Unmarshal(env.Data, &data) == nil {
				result.Service = data.Service
				result.StartedAt = data.StartedAt
				result.Uptime = data.Uptime
			}
		}
		_ = resp.Body.Close()
	}

	resp, err := client.Get(fmt.Sprintf("http://%s/health/bearers", statusAPIAddr))
	if err != nil {
		result.Error = err.Error()
	} else {
		defer func() { _ = resp.Body.Close() }()

		var env healthEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			result.Error = fmt.Sprintf("failed to parse response: %v", err)
		} else if env.Status != "healthy" {
			result.Error = env.Error
		} else {
			result.Reachable = true
			var data bearersData
			if err := json.Unmarshal(env.Data, &data); err == nil {
				result.Bearers = data.Bearers
			}
		}
	}

	format, err := output.ParseFormat(Flags.Output)
	if err != nil {
		return err
	}
	printer := output.NewPrinter(os.Stdout, format, true)

	if format == output.FormatTable {
		if result.Reachable {
			printer.Success(fmt.Sprintf("bearer-status API at %s is reachable", result.Addr))
		} else {
			printer.Error(fmt.Sprintf("bearer-status API at %s is unreachable: %s", result.Addr, result.Error))
		}
		if result.StartedAt != "" {
			printer.Printf("  Started:  %s\n", timeutil.FormatTime(result.StartedAt))
		}
		if result.Uptime != "" {
			printer.Printf("  Uptime:   %s\n", timeutil.FormatUptime(result.Uptime))
		}
		printer.Println()
	}

	return printer.Print(result)
}
