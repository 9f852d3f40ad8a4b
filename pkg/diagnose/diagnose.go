// Package diagnose selects the root cause of a session's connectivity
// problems and composes the diagnostic narrative.
package diagnose

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ridescope/ridescope/pkg/config"
	"github.com/ridescope/ridescope/pkg/events"
	"github.com/ridescope/ridescope/pkg/parser"
	"github.com/ridescope/ridescope/pkg/timeline"
)

// Cause is the diagnosed root-cause category.
type Cause string

const (
	CauseNone             Cause = "none"
	CauseInternetLost     Cause = "internet_connectivity_lost"
	CauseServiceRejected  Cause = "direct_connect_rejected"
	CauseDeviceFailure    Cause = "device_connection_failure"
	CauseServerDisruption Cause = "server_disruption"
	CauseNetworkLatency   Cause = "network_latency"
)

// Category labels a normalized problem candidate.
type Category string

const (
	CategoryTransportError       Category = "device connection error"
	CategoryTimeout              Category = "transport timeout"
	CategoryDisruptiveDisconnect Category = "disruptive server disconnection"
	CategoryDNSError             Category = "DNS failure"
	CategoryDeviceDisconnect     Category = "unexpected device disconnect"
)

// Problem is a normalized problem candidate used during analysis and in the
// problems-detected narrative section.
type Problem struct {
	Time     parser.TimeOfDay
	Category Category
	Source   string
}

// Diagnosis is the terminal output of the core pipeline.
type Diagnosis struct {
	HasProblems      bool             `json:"has_problems"`
	RootCause        Cause            `json:"root_cause"`
	FirstProblemTime parser.TimeOfDay `json:"first_problem_time,omitempty"`
	Narrative        []string         `json:"narrative,omitempty"`
}

// Run diagnoses a session from the timeline analysis. It never fails: a log
// with no recognizable session yields an empty narrative, and every other
// branch has a fallback textual explanation.
func Run(a *timeline.Analysis, tunables config.Tunables) *Diagnosis {
	if !a.HasSession {
		return &Diagnosis{RootCause: CauseNone}
	}

	d := &Diagnosis{HasProblems: a.HasProblems, RootCause: CauseNone}

	if !a.HasProblems {
		d.Narrative = cleanNarrative(a)
		return d
	}

	root := selectRootCandidate(a)
	d.FirstProblemTime = root.Time
	d.RootCause = mapRootCause(a, root)

	res := findResolution(a, d.RootCause, root)
	d.Narrative = problemNarrative(a, d, root, res, tunables.ProximityWindowSeconds())

	return d
}

// selectRootCandidate picks the earliest problem among the first post-start
// transport error, the first post-start timeout, and the first disruptive
// disconnect. Ties go to the earlier-listed category: error beats timeout
// beats disruptive disconnect. Ties are rare and any deterministic order is
// acceptable; this one is fixed here so repeated runs agree.
func selectRootCandidate(a *timeline.Analysis) Problem {
	var candidates []Problem

	if len(a.Errors) > 0 {
		candidates = append(candidates, Problem{a.Errors[0].Time, CategoryTransportError, a.Errors[0].Details})
	}
	if len(a.Timeouts) > 0 {
		candidates = append(candidates, Problem{a.Timeouts[0].Time, CategoryTimeout, a.Timeouts[0].Details})
	}
	if len(a.Disruptive) > 0 {
		ev := a.Disruptive[0].Event
		candidates = append(candidates, Problem{ev.Time, CategoryDisruptiveDisconnect, ev.Details})
	}

	if len(candidates) == 0 {
		// Only unexpected device disconnects remain.
		ev := a.DeviceDisconnects[0]
		return Problem{ev.Time, CategoryDeviceDisconnect, ev.Details}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Time < best.Time {
			best = c
		}
	}
	return best
}

// mapRootCause applies the ordered diagnosis rules; the first matching rule
// wins.
func mapRootCause(a *timeline.Analysis, root Problem) Cause {
	// A failing DNS lookup trumps everything else: nothing downstream can
	// work without name resolution.
	if len(a.DNSErrors) > 0 {
		return CauseInternetLost
	}

	switch root.Category {
	case CategoryTransportError:
		if strings.Contains(root.Source, events.ActivelyRefusedMarker) &&
			strings.Contains(root.Source, events.DirectConnectMarker) {
			return CauseServiceRejected
		}
		return CauseDeviceFailure
	case CategoryDisruptiveDisconnect:
		return CauseServerDisruption
	case CategoryTimeout:
		return CauseNetworkLatency
	default:
		return CauseDeviceFailure
	}
}

// resolution describes how (or whether) the connection recovered after the
// first problem.
type resolution struct {
	found    bool
	time     parser.TimeOfDay
	details  string
	fellBack bool // recovered over BLE after a DirectConnect failure
}

// findResolution searches the timeline after the first problem for recovery
// evidence: a later server hello for internet-level causes, a later
// device-connected event for device-level causes.
func findResolution(a *timeline.Analysis, cause Cause, root Problem) resolution {
	var res resolution

	var candidates []events.Event
	switch cause {
	case CauseServiceRejected, CauseDeviceFailure:
		candidates = a.Groups[events.KindDeviceConnected]
	default:
		candidates = a.Groups[events.KindServerHello]
	}

	for _, ev := range candidates {
		if ev.Time <= root.Time {
			continue
		}
		res.found = true
		res.time = ev.Time
		res.details = ev.Details
		break
	}

	if res.found &&
		strings.Contains(root.Source, events.DirectConnectMarker) &&
		!strings.Contains(res.details, events.DirectConnectMarker) {
		res.fellBack = true
	}

	return res
}

// collectProblems merges every problem event across categories, time-sorted,
// for the problems-detected section. Seamless reconnects near the first
// transport error are folded in as context; routine seamless reconnects stay
// out of the narrative.
func collectProblems(a *timeline.Analysis, proximityWindow int) []Problem {
	var problems []Problem

	for _, ev := range a.Errors {
		problems = append(problems, Problem{ev.Time, CategoryTransportError, ev.Details})
	}
	for _, ev := range a.Timeouts {
		problems = append(problems, Problem{ev.Time, CategoryTimeout, ev.Details})
	}
	for _, ev := range a.DNSErrors {
		problems = append(problems, Problem{ev.Time, CategoryDNSError, ev.Details})
	}
	for _, d := range a.Disruptive {
		problems = append(problems, Problem{d.Event.Time, CategoryDisruptiveDisconnect, d.Event.Details})
	}
	for _, ev := range a.DeviceDisconnects {
		problems = append(problems, Problem{ev.Time, CategoryDeviceDisconnect, ev.Details})
	}

	if len(a.Errors) > 0 {
		firstErr := a.Errors[0].Time
		for _, d := range a.Seamless {
			gap := d.Event.Time.Sub(firstErr)
			if gap < 0 {
				gap = -gap
			}
			if gap <= proximityWindow {
				problems = append(problems, Problem{
					d.Event.Time,
					"seamless server reconnect",
					"recovered in " + strconv.Itoa(d.RecoveredAt.Sub(d.Event.Time)) + "s",
				})
			}
		}
	}

	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Time < problems[j].Time
	})

	return problems
}

