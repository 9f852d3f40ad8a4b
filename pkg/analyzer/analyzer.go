// Package analyzer orchestrates the session diagnostic pipeline: device
// resolution, noise filtering, event parsing, timeline analysis, and
// diagnosis. Each stage consumes the prior stage's complete output; nothing
// mutates a predecessor's result.
package analyzer

import (
	"context"
	"time"

	"github.com/ridescope/ridescope/pkg/config"
	"github.com/ridescope/ridescope/pkg/devices"
	"github.com/ridescope/ridescope/pkg/diagnose"
	"github.com/ridescope/ridescope/pkg/events"
	"github.com/ridescope/ridescope/pkg/filter"
	"github.com/ridescope/ridescope/pkg/timeline"
)

// Analyzer runs the full diagnostic pipeline over one session log.
type Analyzer struct {
	cfg *config.Config

	// Options
	explicitDevices []string
	excludeDevices  []string
}

// Option configures analyzer behavior.
type Option func(*Analyzer)

// WithDevicePatterns supplies an explicit device list, bypassing
// auto-detection. An empty list leaves the config file's patterns in place.
func WithDevicePatterns(patterns []string) Option {
	return func(a *Analyzer) {
		if len(patterns) > 0 {
			a.explicitDevices = patterns
		}
	}
}

// WithExcludePatterns removes auto-detected device names matching these
// literals. Only applied in auto-detect mode; an empty list leaves the
// config file's excludes in place.
func WithExcludePatterns(patterns []string) Option {
	return func(a *Analyzer) {
		if len(patterns) > 0 {
			a.excludeDevices = patterns
		}
	}
}

// New creates an analyzer from configuration. CLI options layer on top of
// the config file's device settings.
func New(cfg *config.Config, opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:             cfg,
		explicitDevices: cfg.Devices.Patterns,
		excludeDevices:  cfg.Devices.Exclude,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Result is the complete pipeline output.
type Result struct {
	// Patterns is the resolved device pattern set. Never empty.
	Patterns []string

	// Filter holds the kept/excluded partition of the raw lines.
	Filter *filter.Result

	// Events is the chronological event timeline parsed from kept lines.
	Events []events.Event

	// Timeline is the grouped and classified view of the events.
	Timeline *timeline.Analysis

	// Diagnosis is the terminal output: problem flag, root cause, and
	// narrative.
	Diagnosis *diagnose.Diagnosis

	// Timing metadata. Not consumed by any pipeline stage, so repeated
	// runs over identical input still produce identical kept, excluded,
	// and narrative sequences.
	StartTime time.Time
	EndTime   time.Time
}

// Analyze runs the pipeline over the raw line sequence of one session.
// The only error it can return is context cancellation between stages; the
// core itself degrades gracefully on ill-formed input rather than failing.
func (a *Analyzer) Analyze(ctx context.Context, lines []string) (*Result, error) {
	result := &Result{StartTime: time.Now()}

	patterns := devices.Resolve(lines, a.explicitDevices, a.excludeDevices)
	matcher := devices.NewMatcher(patterns)
	result.Patterns = patterns

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Filter = filter.Apply(lines, matcher)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := events.NewParser(matcher, a.cfg.Tunables)
	result.Events = parser.Parse(result.Filter.Kept)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Timeline = timeline.Analyze(result.Events, a.cfg.Tunables.SeamlessThresholdSeconds())
	result.Diagnosis = diagnose.Run(result.Timeline, a.cfg.Tunables)

	result.EndTime = time.Now()

	return result, nil
}
