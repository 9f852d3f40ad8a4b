package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter renders reports as indented JSON for machine consumption
// (webhooks receive the same Report shape, unindented).
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format encodes the report to w. In quiet mode only the summary block is
// emitted; verbose has no effect since the full report already carries
// metadata.
func (f *JSONFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if f.opts.Quiet {
		return enc.Encode(report.Summary)
	}
	return enc.Encode(report)
}
