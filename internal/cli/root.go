// Package cli provides the command-line interface for Ridescope.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridescope/ridescope/internal/cli/commands"
	"github.com/ridescope/ridescope/internal/logger"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "ridescope",
		Short: "Diagnose connectivity problems in cycling session logs",
		Long: `Ridescope reads a session log from a cycling training application and
produces a compact diagnostic narrative.

It separates meaningful connectivity events (device pairing, transport
errors, server reconnects) from high-volume operational noise, reconstructs
a chronological timeline, and applies a rule-based diagnosis to determine
whether the session had connectivity problems and their likely root cause.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewFilterCommand())
	rootCmd.AddCommand(commands.NewDevicesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
