package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridescope/ridescope/pkg/devices"
	"github.com/ridescope/ridescope/pkg/parser"
)

// NewDevicesCommand creates the devices command.
func NewDevicesCommand() *cobra.Command {
	var exclude []string

	cmd := &cobra.Command{
		Use:   "devices <session-log>...",
		Short: "List devices auto-detected from session logs",
		Long: `Scan session logs' connection-status lines and list the paired
device names in order of first appearance. This is the same detection the
diagnose command uses when no explicit --device patterns are given.

Arguments may be file paths or glob patterns, so a whole log directory can
be inventoried at once.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := parser.ExpandGlobs(args)
			if err != nil {
				return err
			}

			var lines []string
			for _, file := range files {
				fileLines, err := parser.LoadLines(file)
				if err != nil {
					return fmt.Errorf("loading session log: %w", err)
				}
				lines = append(lines, fileLines...)
			}

			detected := devices.Detect(lines)
			if len(detected) == 0 {
				fmt.Println("No devices detected; diagnosis would fall back to defaults:")
				for _, name := range devices.DefaultPatterns {
					fmt.Printf("  %s\n", name)
				}
				return nil
			}

			resolved := devices.Resolve(lines, nil, exclude)
			kept := make(map[string]bool, len(resolved))
			for _, name := range resolved {
				kept[name] = true
			}

			for _, name := range detected {
				if kept[name] {
					fmt.Println(name)
				} else {
					fmt.Printf("%s (excluded)\n", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&exclude, "exclude-device", nil, "Exclude devices matching this literal (can be repeated)")

	return cmd
}
