package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	status := "no connection problems"
	if report.HasProblems() {
		status = fmt.Sprintf("problems detected (root cause: %s)", report.Summary.RootCause)
	}
	if !report.HasSession() {
		status = "no recognizable session"
	}
	fmt.Fprintf(w, "Ridescope: %d lines scanned, %d kept, %s\n",
		report.Summary.LinesTotal,
		report.Summary.LinesKept,
		status)
	return nil
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== Ridescope Session Report ===")
	fmt.Fprintln(w)

	if !report.HasSession() {
		fmt.Fprintln(w, "No recognizable session in this log (no server hello found).")
	} else {
		for _, line := range report.Diagnosis.Narrative {
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d lines scanned, %d kept, %d excluded, %d events\n",
		report.Summary.LinesTotal,
		report.Summary.LinesKept,
		report.Summary.LinesExcluded,
		report.Summary.EventCount)

	if f.opts.Verbose {
		fmt.Fprintf(w, "Devices: %s\n", strings.Join(report.Metadata.DevicePatterns, ", "))
		fmt.Fprintf(w, "Report ID: %s\n", report.Metadata.ReportID)
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}
