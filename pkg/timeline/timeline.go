// Package timeline groups connectivity events, establishes session
// boundaries, and classifies transport disconnects as seamless or
// disruptive.
package timeline

import (
	"github.com/ridescope/ridescope/pkg/events"
	"github.com/ridescope/ridescope/pkg/parser"
)

// Window is the session's time boundaries: the first server hello and, when
// the session ended gracefully, the first shutdown event. When no shutdown
// was recorded Ended is false and every real time counts as before the end.
type Window struct {
	Start parser.TimeOfDay
	End   parser.TimeOfDay
	Ended bool
}

// AfterStart reports whether t falls strictly after the session start.
func (w Window) AfterStart(t parser.TimeOfDay) bool {
	return t > w.Start
}

// BeforeEnd reports whether t falls strictly before the session end.
// Vacuously true when the session never ended.
func (w Window) BeforeEnd(t parser.TimeOfDay) bool {
	return !w.Ended || t < w.End
}

// EndTime returns the end as a comparable time-of-day, using the end-of-day
// sentinel when the session never ended.
func (w Window) EndTime() parser.TimeOfDay {
	if !w.Ended {
		return parser.EndOfDay
	}
	return w.End
}

// Disconnect is a classified transport-level disconnect.
type Disconnect struct {
	Event events.Event

	// Seamless is true when the next server hello arrived within the
	// reconnect threshold.
	Seamless bool

	// Recovered is true when any server hello followed the disconnect.
	// RecoveredAt is only meaningful when Recovered is true.
	Recovered   bool
	RecoveredAt parser.TimeOfDay
}

// Analysis is the timeline analyzer's complete output, consumed by the
// diagnoser.
type Analysis struct {
	// Groups holds all events partitioned by kind, chronological within
	// each group.
	Groups map[events.Kind][]events.Event

	Window Window

	// HasSession is true when at least one server hello was seen. Without
	// one there is no recognizable session and nothing to diagnose.
	HasSession bool

	// Post-start problem candidates. Pre-session startup noise is
	// discounted: errors during app initialization are not ride-relevant.
	Errors    []events.Event
	Timeouts  []events.Event
	DNSErrors []events.Event

	// DeviceDisconnects are device drops strictly before the session end.
	// Drops at or after a graceful shutdown are expected, not problems.
	DeviceDisconnects []events.Event

	// Disruptive and Seamless partition the post-start transport
	// disconnects by reconnection latency.
	Disruptive []Disconnect
	Seamless   []Disconnect

	HasProblems bool
}

// Analyze runs the timeline analysis over a chronological event sequence.
// seamlessThreshold is the maximum reconnect latency, in seconds, for a
// disconnect to count as seamless.
func Analyze(timeline []events.Event, seamlessThreshold int) *Analysis {
	a := &Analysis{Groups: make(map[events.Kind][]events.Event)}

	for _, ev := range timeline {
		a.Groups[ev.Kind] = append(a.Groups[ev.Kind], ev)
	}

	hellos := a.Groups[events.KindServerHello]
	a.HasSession = len(hellos) > 0
	if a.HasSession {
		a.Window.Start = hellos[0].Time
	}
	if shutdowns := a.Groups[events.KindShutdownStarted]; len(shutdowns) > 0 {
		a.Window.End = shutdowns[0].Time
		a.Window.Ended = true
	}

	a.Errors = afterStart(a.Groups[events.KindTransportError], a.Window)
	a.Timeouts = afterStart(a.Groups[events.KindConnectionTimeout], a.Window)
	a.DNSErrors = afterStart(a.Groups[events.KindDNSError], a.Window)

	for _, ev := range a.Groups[events.KindDeviceDisconnected] {
		if a.Window.BeforeEnd(ev.Time) {
			a.DeviceDisconnects = append(a.DeviceDisconnects, ev)
		}
	}

	for _, ev := range afterStart(a.Groups[events.KindTransportDisconnected], a.Window) {
		d := classify(ev, hellos, seamlessThreshold)
		if d.Seamless {
			a.Seamless = append(a.Seamless, d)
		} else {
			a.Disruptive = append(a.Disruptive, d)
		}
	}

	a.HasProblems = len(a.Errors) > 0 ||
		len(a.Timeouts) > 0 ||
		len(a.Disruptive) > 0 ||
		len(a.DeviceDisconnects) > 0

	return a
}

// classify decides seamless vs. disruptive for one transport disconnect.
// Hellos are chronological, so the first one at or after the disconnect is
// the closest; no later hello can beat it. No hello at all means the
// connection never recovered.
func classify(ev events.Event, hellos []events.Event, threshold int) Disconnect {
	d := Disconnect{Event: ev}

	for _, hello := range hellos {
		if hello.Time < ev.Time {
			continue
		}
		d.Recovered = true
		d.RecoveredAt = hello.Time
		d.Seamless = hello.Time.Sub(ev.Time) <= threshold
		break
	}

	return d
}

func afterStart(evts []events.Event, w Window) []events.Event {
	var out []events.Event
	for _, ev := range evts {
		if w.AfterStart(ev.Time) {
			out = append(out, ev)
		}
	}
	return out
}
