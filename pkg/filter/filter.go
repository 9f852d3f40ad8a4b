package filter

import (
	"strings"

	"github.com/ridescope/ridescope/pkg/devices"
)

// Result is the two-way partition of the raw line sequence. Order within
// each slice preserves source order, and every input line appears in exactly
// one of the two.
type Result struct {
	Kept     []string
	Excluded []string
}

// KeptCount returns the number of kept lines.
func (r *Result) KeptCount() int { return len(r.Kept) }

// ExcludedCount returns the number of excluded lines.
func (r *Result) ExcludedCount() int { return len(r.Excluded) }

// TotalCount returns the number of input lines.
func (r *Result) TotalCount() int { return len(r.Kept) + len(r.Excluded) }

// Apply classifies each raw line as kept or excluded.
//
// Per-line decision, in order:
//  1. Candidate gate: the line must mention a transport token, a shutdown
//     token, or a resolved device pattern; everything else is excluded.
//  2. Force-exclude: known high-frequency noise markers drop the line
//     unconditionally. Checked first among candidates because they
//     eliminate the largest volume cheaply.
//  3. Force-include: device mentions and graceful-shutdown markers are
//     always kept, overriding the standard exclusion list.
//  4. Standard exclusions: remaining candidates from unrelated subsystems
//     are dropped.
func Apply(lines []string, m *devices.Matcher) *Result {
	r := &Result{}

	for _, line := range lines {
		if keep(line, m) {
			r.Kept = append(r.Kept, line)
		} else {
			r.Excluded = append(r.Excluded, line)
		}
	}

	return r
}

func keep(line string, m *devices.Matcher) bool {
	if !isCandidate(line, m) {
		return false
	}

	if containsAny(line, forceExcludeMarkers) {
		return false
	}

	if m.MatchString(line) || containsAny(line, gracefulMarkers) {
		return true
	}

	return !containsAny(line, standardExclusions)
}

func isCandidate(line string, m *devices.Matcher) bool {
	return containsAny(line, transportTokens) ||
		containsAny(line, shutdownTokens) ||
		m.MatchString(line)
}

func containsAny(line string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(line, t) {
			return true
		}
	}
	return false
}
