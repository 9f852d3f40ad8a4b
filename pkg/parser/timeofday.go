package parser

import "regexp"

// timestampPattern matches the [HH:MM:SS] prefix the training application
// stamps on every log line. Compiled once; shared by all pipeline stages.
var timestampPattern = regexp.MustCompile(`^\[(\d{2}):(\d{2}):(\d{2})\]`)

// ParseTimeOfDay extracts the leading [HH:MM:SS] timestamp from a log line.
// Returns ok=false when the prefix is absent or the components are out of
// range; callers skip such lines rather than treating them as errors.
func ParseTimeOfDay(line string) (TimeOfDay, bool) {
	m := timestampPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}

	h := digits2(m[1])
	min := digits2(m[2])
	s := digits2(m[3])
	if h > 23 || min > 59 || s > 59 {
		return 0, false
	}

	return Clock(h, min, s), true
}

// HasTimestamp reports whether the line starts with a [HH:MM:SS] prefix.
func HasTimestamp(line string) bool {
	_, ok := ParseTimeOfDay(line)
	return ok
}

// SameTimestamp reports whether both lines carry the same [HH:MM:SS] prefix.
func SameTimestamp(a, b string) bool {
	ta, ok := ParseTimeOfDay(a)
	if !ok {
		return false
	}
	tb, ok := ParseTimeOfDay(b)
	if !ok {
		return false
	}
	return ta == tb
}

// digits2 converts a two-digit string already validated by the regexp.
func digits2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
