package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ridescope/ridescope/pkg/devices"
	"github.com/ridescope/ridescope/pkg/filter"
	"github.com/ridescope/ridescope/pkg/parser"
)

// FilterOptions holds command-line options for the filter command.
type FilterOptions struct {
	Devices      []string
	Exclude      []string
	ShowExcluded bool
	CountsOnly   bool
	KeptFile     string
	ExcludedFile string
}

// NewFilterCommand creates the filter command.
func NewFilterCommand() *cobra.Command {
	opts := &FilterOptions{}

	cmd := &cobra.Command{
		Use:   "filter <session-log>",
		Short: "Filter a session log down to connectivity-relevant lines",
		Long: `Run only the device resolver and noise filter, without diagnosis.

Prints the kept line sequence to stdout (or the excluded one with
--excluded) so the raw evidence behind a diagnosis can be inspected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Devices, "device", nil, "Explicit device pattern (can be repeated; disables auto-detect)")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude-device", nil, "Exclude auto-detected devices matching this literal (can be repeated)")
	cmd.Flags().BoolVar(&opts.ShowExcluded, "excluded", false, "Print the excluded lines instead of the kept ones")
	cmd.Flags().BoolVar(&opts.CountsOnly, "counts", false, "Print only the kept/excluded counts")
	cmd.Flags().StringVar(&opts.KeptFile, "kept-file", "", "Write the kept line sequence to this file")
	cmd.Flags().StringVar(&opts.ExcludedFile, "excluded-file", "", "Write the excluded line sequence to this file")

	return cmd
}

func runFilter(ctx context.Context, logFile string, opts *FilterOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	lines, err := parser.LoadLines(logFile)
	if err != nil {
		return fmt.Errorf("loading session log: %w", err)
	}

	patterns := devices.Resolve(lines, opts.Devices, opts.Exclude)
	result := filter.Apply(lines, devices.NewMatcher(patterns))

	if err := writeLineFile(opts.KeptFile, result.Kept); err != nil {
		return err
	}
	if err := writeLineFile(opts.ExcludedFile, result.Excluded); err != nil {
		return err
	}

	if opts.CountsOnly {
		fmt.Printf("%d total, %d kept, %d excluded\n",
			result.TotalCount(), result.KeptCount(), result.ExcludedCount())
		return nil
	}

	out := result.Kept
	if opts.ShowExcluded {
		out = result.Excluded
	}
	for _, line := range out {
		fmt.Fprintln(os.Stdout, line)
	}

	return nil
}
