// Command pdcpsim drives scenario files through pdcp.Entity pairs over an
// in-memory simulated radio link and reports per-bearer COUNT/SN/HFN
// outcomes.
package main

import (
	"github.com/marmos91/ltepdcp/cmd/pdcpsim/commands"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.Version = version
	commands.Commit = commit
	commands.Date = date

	if err := commands.Execute(); err != nil {
		commands.Exit("%v", err)
	}
}
