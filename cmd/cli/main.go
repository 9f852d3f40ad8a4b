// Ridescope - Session Log Connectivity Diagnostics
//
// Ridescope reads a cycling training session log and produces a compact
// diagnostic narrative: what happened, what went wrong, and the likely
// root cause.
package main

import (
	"os"

	"github.com/ridescope/ridescope/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
