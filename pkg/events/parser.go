package events

import (
	"strings"

	"github.com/ridescope/ridescope/pkg/config"
	"github.com/ridescope/ridescope/pkg/devices"
	"github.com/ridescope/ridescope/pkg/parser"
)

// Parser converts kept lines into events. It holds the compiled device
// matcher and the context-window sizes for connection-medium disambiguation.
type Parser struct {
	matcher        *devices.Matcher
	linesBefore    int
	linesAfter     int
	maxErrorDetail int
}

// NewParser creates an event parser bound to a resolved device matcher.
func NewParser(m *devices.Matcher, tunables config.Tunables) *Parser {
	return &Parser{
		matcher:        m,
		linesBefore:    tunables.ContextLinesBefore,
		linesAfter:     tunables.ContextLinesAfter,
		maxErrorDetail: tunables.MaxErrorDetailLength,
	}
}

// Parse walks the kept-line sequence in order and emits at most one event
// per line. Lines without a parseable timestamp are skipped; lines matching
// no recognizer contribute nothing (they were kept for human context only).
// Output order equals input order, which is chronological.
func (p *Parser) Parse(kept []string) []Event {
	var timeline []Event

	for i, line := range kept {
		t, ok := parser.ParseTimeOfDay(line)
		if !ok {
			continue
		}

		for _, rec := range recognizers {
			ev, matched := rec.match(p, kept, i, t)
			if matched {
				timeline = append(timeline, ev)
				break
			}
		}
	}

	return timeline
}

// recognizer pairs an event kind with its line predicate/constructor.
// The set is ordered and first match wins; in practice the recognizers
// target distinct substrings and are mutually exclusive.
type recognizer struct {
	kind  Kind
	match func(p *Parser, kept []string, i int, t parser.TimeOfDay) (Event, bool)
}

var recognizers = []recognizer{
	{KindDeviceConnected, matchDeviceConnected},
	{KindDeviceDisconnected, matchDeviceDisconnected},
	{KindTransportError, matchTransportError},
	{KindTransportDisconnected, matchTransportDisconnected},
	{KindDNSError, matchDNSError},
	{KindConnectionTimeout, matchConnectionTimeout},
	{KindServerHello, matchServerHello},
	{KindShutdownStarted, matchShutdownStarted},
}

func matchDeviceConnected(p *Parser, kept []string, i int, t parser.TimeOfDay) (Event, bool) {
	line := kept[i]
	if !strings.Contains(line, connectedStatus) || !p.matcher.MatchString(line) {
		return Event{}, false
	}

	name, _ := devices.DeviceName(line)
	medium := "BLE"
	if p.directConnectNearby(kept, i, t) {
		medium = DirectConnectMarker
	}

	return Event{Time: t, Kind: KindDeviceConnected, Details: name + " via " + medium}, true
}

func matchDeviceDisconnected(p *Parser, kept []string, i int, t parser.TimeOfDay) (Event, bool) {
	line := kept[i]
	if !strings.Contains(line, disconnectedStatus) || !p.matcher.MatchString(line) {
		return Event{}, false
	}

	name, _ := devices.DeviceName(line)
	return Event{Time: t, Kind: KindDeviceDisconnected, Details: name}, true
}

func matchTransportError(p *Parser, kept []string, i int, t parser.TimeOfDay) (Event, bool) {
	line := kept[i]
	if !strings.Contains(line, errorTag) || !p.matcher.MatchString(line) {
		return Event{}, false
	}
	if !containsAnyPhrase(line, errorPhrases) {
		return Event{}, false
	}

	return Event{Time: t, Kind: KindTransportError, Details: truncate(detail(line), p.maxErrorDetail)}, true
}

func matchTransportDisconnected(_ *Parser, kept []string, i int, t parser.TimeOfDay) (Event, bool) {
	if !strings.Contains(kept[i], transportLostMarker) {
		return Event{}, false
	}
	return Event{Time: t, Kind: KindTransportDisconnected, Details: detail(kept[i])}, true
}

func matchDNSError(_ *Parser, kept []string, i int, t parser.TimeOfDay) (Event, bool) {
	if !strings.Contains(kept[i], dnsFailureMarker) {
		return Event{}, false
	}
	return Event{Time: t, Kind: KindDNSError, Details: detail(kept[i])}, true
}

func matchConnectionTimeout(_ *Parser, kept []string, i int, t parser.TimeOfDay) (Event, bool) {
	if !strings.Contains(kept[i], timeoutMarker) {
		return Event{}, false
	}
	return Event{Time: t, Kind: KindConnectionTimeout, Details: detail(kept[i])}, true
}

func matchServerHello(_ *Parser, kept []string, i int, t parser.TimeOfDay) (Event, bool) {
	if !strings.Contains(kept[i], serverHelloMarker) {
		return Event{}, false
	}
	return Event{Time: t, Kind: KindServerHello, Details: detail(kept[i])}, true
}

func matchShutdownStarted(_ *Parser, kept []string, i int, t parser.TimeOfDay) (Event, bool) {
	if !strings.Contains(kept[i], shutdownMarker) {
		return Event{}, false
	}
	return Event{Time: t, Kind: KindShutdownStarted, Details: detail(kept[i])}, true
}

// directConnectNearby inspects a bounded index range of the kept slice
// around line i for a DirectConnect marker carrying the same timestamp.
// The slice is fully materialized and immutable by parse time, so random
// access here is safe.
func (p *Parser) directConnectNearby(kept []string, i int, t parser.TimeOfDay) bool {
	lo := i - p.linesBefore
	if lo < 0 {
		lo = 0
	}
	hi := i + p.linesAfter
	if hi > len(kept)-1 {
		hi = len(kept) - 1
	}

	for j := lo; j <= hi; j++ {
		if !strings.Contains(kept[j], DirectConnectMarker) {
			continue
		}
		if tj, ok := parser.ParseTimeOfDay(kept[j]); ok && tj == t {
			return true
		}
	}
	return false
}

// detail strips the [HH:MM:SS] prefix and surrounding whitespace.
func detail(line string) string {
	if len(line) > 10 && line[0] == '[' && line[9] == ']' {
		return strings.TrimSpace(line[10:])
	}
	return strings.TrimSpace(line)
}

// truncate caps s at max characters, never splitting a multibyte rune.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}

	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}

func containsAnyPhrase(line string, phrases []string) bool {
	for _, ph := range phrases {
		if strings.Contains(line, ph) {
			return true
		}
	}
	return false
}
