package diagnose

import (
	"fmt"

	"github.com/ridescope/ridescope/pkg/timeline"
)

// Narrative section headers. The narrative is an ordered sequence of lines
// grouped into fixed sections; empty sections are omitted entirely.
const (
	sectionWhatHappened = "What happened:"
	sectionProblems     = "Problems detected:"
	sectionResolution   = "Resolution:"
	sectionConclusions  = "Conclusions:"
)

func cleanNarrative(a *timeline.Analysis) []string {
	lines := whatHappened(a)

	lines = append(lines, sectionConclusions)
	if a.Window.Ended {
		lines = append(lines, fmt.Sprintf("  The session ran without connection issues and ended gracefully at %s.", a.Window.End))
	} else {
		lines = append(lines, "  The session ran without connection issues but did not record a graceful shutdown.")
	}

	return lines
}

func problemNarrative(a *timeline.Analysis, d *Diagnosis, root Problem, res resolution, proximityWindow int) []string {
	lines := whatHappened(a)

	lines = append(lines, sectionProblems)
	for _, p := range collectProblems(a, proximityWindow) {
		lines = append(lines, fmt.Sprintf("  - %s %s: %s", p.Time, p.Category, p.Source))
	}

	lines = append(lines, sectionResolution)
	lines = append(lines, resolutionLines(d.RootCause, res)...)

	lines = append(lines, sectionConclusions)
	lines = append(lines, conclusionLines(d.RootCause, root)...)

	return lines
}

func whatHappened(a *timeline.Analysis) []string {
	lines := []string{
		sectionWhatHappened,
		fmt.Sprintf("  Session started at %s (first server hello).", a.Window.Start),
	}
	if a.Window.Ended {
		lines = append(lines, fmt.Sprintf("  Session ended gracefully at %s.", a.Window.End))
	} else {
		lines = append(lines, "  Session never ended gracefully; no shutdown was recorded.")
	}
	return lines
}

func resolutionLines(cause Cause, res resolution) []string {
	if !res.found {
		return []string{"  No recovery detected."}
	}

	var lines []string
	switch cause {
	case CauseServiceRejected, CauseDeviceFailure:
		lines = append(lines, fmt.Sprintf("  Device reconnected at %s (%s).", res.time, res.details))
	default:
		lines = append(lines, fmt.Sprintf("  Server connection recovered at %s.", res.time))
	}

	if res.fellBack {
		lines = append(lines, "  The device fell back from DirectConnect to standard wireless (BLE).")
	}

	return lines
}

func conclusionLines(cause Cause, root Problem) []string {
	switch cause {
	case CauseInternetLost:
		return []string{
			"  DNS resolution failed during the session: internet connectivity was lost.",
			"  Check the local network and router; the training app and devices were not at fault.",
		}
	case CauseServiceRejected:
		return []string{
			fmt.Sprintf("  The device's DirectConnect service actively refused the connection at %s.", root.Time),
			"  This is a service-level failure on the device; power-cycle it to restore DirectConnect.",
		}
	case CauseDeviceFailure:
		return []string{
			fmt.Sprintf("  A device connection failed at %s over its direct or wireless link.", root.Time),
			"  Check device pairing, signal strength, and any DirectConnect cabling.",
		}
	case CauseServerDisruption:
		return []string{
			fmt.Sprintf("  The server connection was disrupted at %s.", root.Time),
			"  This is typically a transient service-side problem; no local action needed unless it recurs.",
		}
	case CauseNetworkLatency:
		return []string{
			fmt.Sprintf("  The transport connection timed out at %s.", root.Time),
			"  This points to network latency or packet loss between this machine and the service.",
		}
	default:
		return []string{
			fmt.Sprintf("  An unexpected device disconnect occurred at %s.", root.Time),
			"  Check device batteries, signal strength, and pairing.",
		}
	}
}
