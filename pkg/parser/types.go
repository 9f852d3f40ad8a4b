// Package parser provides log file reading and time-of-day parsing.
package parser

import "fmt"

// TimeOfDay is a wall-clock time within one day, stored as seconds since
// midnight. Valid logs carry times in [00:00:00, 23:59:59]; numeric ordering
// of TimeOfDay values agrees with lexical ordering of their String forms.
type TimeOfDay int

// EndOfDay is a sentinel strictly greater than any real time of day.
// It stands in for "the session never ended" so that comparisons like
// t < end hold trivially when no shutdown was recorded.
const EndOfDay TimeOfDay = 24 * 60 * 60

// Clock builds a TimeOfDay from hour, minute, and second components.
func Clock(h, m, s int) TimeOfDay {
	return TimeOfDay(h*3600 + m*60 + s)
}

// String renders the time as zero-padded HH:MM:SS.
// The sentinel renders as "never".
func (t TimeOfDay) String() string {
	if t >= EndOfDay {
		return "never"
	}
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

// Sub returns the elapsed seconds from other to t.
func (t TimeOfDay) Sub(other TimeOfDay) int {
	return int(t) - int(other)
}
