package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ridescope/ridescope/internal/logger"
	"github.com/ridescope/ridescope/pkg/analyzer"
	"github.com/ridescope/ridescope/pkg/config"
	"github.com/ridescope/ridescope/pkg/output"
	"github.com/ridescope/ridescope/pkg/parser"
	"github.com/ridescope/ridescope/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// DiagnoseOptions holds command-line options for the diagnose command.
type DiagnoseOptions struct {
	Config       string
	Output       string
	Devices      []string
	Exclude      []string
	KeptFile     string
	ExcludedFile string
	Verbose      bool
	Quiet        bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewDiagnoseCommand creates the diagnose command.
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <session-log>",
		Short: "Diagnose a session log for connectivity problems",
		Long: `Run the full diagnostic pipeline over one session log.

The log is filtered down to connectivity-relevant lines, parsed into a
timeline of typed events, and diagnosed: session boundaries, seamless vs.
disruptive server reconnects, and a root cause for the earliest problem.

Exit codes:
  0 - Session had no connectivity problems
  1 - Connectivity problems detected
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "Config file (YAML, optional)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringSliceVar(&opts.Devices, "device", nil, "Explicit device pattern (can be repeated; disables auto-detect)")
	cmd.Flags().StringSliceVar(&opts.Exclude, "exclude-device", nil, "Exclude auto-detected devices matching this literal (can be repeated)")
	cmd.Flags().StringVar(&opts.KeptFile, "kept-file", "", "Write the kept line sequence to this file")
	cmd.Flags().StringVar(&opts.ExcludedFile, "excluded-file", "", "Write the excluded line sequence to this file")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show resolved devices and timing")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no narrative")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_problems", "When to fire webhook (on_problems|always|never)")

	return cmd
}

func runDiagnose(cmd *cobra.Command, args []string, opts *DiagnoseOptions) error {
	logFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Quiet {
		logger.InitQuiet()
	}

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return err
	}

	lines, err := parser.LoadLines(logFile)
	if err != nil {
		return fmt.Errorf("loading session log: %w", err)
	}
	logger.Debug().Int("lines", len(lines)).Str("file", logFile).Msg("session log loaded")

	a := analyzer.New(cfg,
		analyzer.WithDevicePatterns(opts.Devices),
		analyzer.WithExcludePatterns(opts.Exclude),
	)

	result, err := a.Analyze(ctx, lines)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := output.NewReport(result, logFile)

	if err := writeLineFile(opts.KeptFile, result.Filter.Kept); err != nil {
		return err
	}
	if err := writeLineFile(opts.ExcludedFile, result.Filter.Excluded); err != nil {
		return err
	}

	formatter, err := createFormatter(opts.Output, opts.Verbose, opts.Quiet)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, os.Stdout); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail analysis)
	sendWebhooks(ctx, cfg, opts, report)

	// Set exit code based on results
	if report.HasProblems() {
		ExitCode = 1
	}

	return nil
}

// loadConfig loads the YAML config when given, defaults otherwise.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		if err := config.Validate(cfg); err != nil {
			return nil, fmt.Errorf("validating default config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// writeLineFile writes one line sequence to a flat report file.
func writeLineFile(path string, lines []string) error {
	if path == "" {
		return nil
	}

	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306 -- report files are not sensitive
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func createFormatter(format string, verbose, quiet bool) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: verbose,
		Quiet:   quiet,
	}

	switch format {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", format)
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged but don't fail the analysis.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *DiagnoseOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasProblems()) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			logger.Info().Str("webhook", name).Int("status", resp.StatusCode).Dur("duration", resp.Duration).Msg("webhook sent")
		} else {
			logger.Warn().Str("webhook", name).Err(resp.Error).Msg("webhook failed")
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *DiagnoseOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnProblems
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire for this report.
func shouldFireWebhook(trigger config.WebhookTrigger, hasProblems bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasProblems
	}
}
