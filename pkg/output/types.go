// Package output provides report assembly and formatting for session
// diagnostics.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridescope/ridescope/pkg/analyzer"
	"github.com/ridescope/ridescope/pkg/diagnose"
)

// Report is the complete diagnostic output handed to formatters, report
// files, and webhooks.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Diagnosis is the structured diagnosis including the narrative.
	Diagnosis *diagnose.Diagnosis `json:"diagnosis"`

	// Metadata provides context about the run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// LinesTotal is the number of raw lines in the session log.
	LinesTotal int `json:"lines_total"`

	// LinesKept and LinesExcluded partition the raw lines.
	LinesKept     int `json:"lines_kept"`
	LinesExcluded int `json:"lines_excluded"`

	// EventCount is the number of typed events on the timeline.
	EventCount int `json:"event_count"`

	// HasProblems reports whether the session had connectivity problems.
	HasProblems bool `json:"has_problems"`

	// RootCause is the diagnosed root-cause category, "none" when clean.
	RootCause diagnose.Cause `json:"root_cause"`
}

// Metadata provides context about the run. Nothing here feeds back into the
// pipeline, so narrative and partition outputs stay reproducible.
type Metadata struct {
	// LogFile is the session log that was analyzed.
	LogFile string `json:"log_file"`

	// ReportID uniquely identifies this run.
	ReportID string `json:"report_id"`

	// DevicePatterns is the resolved device pattern set.
	DevicePatterns []string `json:"device_patterns"`

	// AnalyzedAt is when the analysis was performed.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from pipeline results.
func NewReport(result *analyzer.Result, logFile string) *Report {
	return &Report{
		Summary: Summary{
			LinesTotal:    result.Filter.TotalCount(),
			LinesKept:     result.Filter.KeptCount(),
			LinesExcluded: result.Filter.ExcludedCount(),
			EventCount:    len(result.Events),
			HasProblems:   result.Diagnosis.HasProblems,
			RootCause:     result.Diagnosis.RootCause,
		},
		Diagnosis: result.Diagnosis,
		Metadata: Metadata{
			LogFile:        logFile,
			ReportID:       uuid.NewString(),
			DevicePatterns: result.Patterns,
			AnalyzedAt:     result.EndTime,
			Duration:       result.EndTime.Sub(result.StartTime),
		},
	}
}

// HasProblems returns true if the session had connectivity problems.
func (r *Report) HasProblems() bool {
	return r.Summary.HasProblems
}

// HasSession returns true if the log contained a recognizable session.
// A session-less log produces an empty narrative by design.
func (r *Report) HasSession() bool {
	return len(r.Diagnosis.Narrative) > 0
}
