// Package devices resolves which trainer/sensor names matter for a session
// log and builds a compiled matcher over them.
package devices

import (
	"regexp"
	"strings"
)

// statusPattern matches the connection-status lines the training application
// logs whenever a paired device changes state.
var statusPattern = regexp.MustCompile(`Device: "([^"]+)" has new connection status`)

// DefaultPatterns is the fallback device set used when auto-detection finds
// nothing: a smart trainer and a heart-rate monitor.
var DefaultPatterns = []string{"KICKR CORE", "TICKR"}

// Resolve determines the device-name patterns relevant to one session.
//
// An explicit list is used verbatim. Otherwise device names are collected
// from the log's own connection-status lines in order of first appearance,
// minus any name containing an exclusion literal. The result is never empty:
// when nothing is detected, DefaultPatterns is returned.
func Resolve(lines []string, explicit []string, exclude []string) []string {
	if len(explicit) > 0 {
		out := make([]string, len(explicit))
		copy(out, explicit)
		return out
	}

	seen := make(map[string]bool)
	var detected []string
	for _, line := range lines {
		m := statusPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if seen[name] || excluded(name, exclude) {
			continue
		}
		seen[name] = true
		detected = append(detected, name)
	}

	if len(detected) == 0 {
		out := make([]string, len(DefaultPatterns))
		copy(out, DefaultPatterns)
		return out
	}

	return detected
}

// Detect returns the device names found in the log's connection-status
// lines, in order of first appearance, without exclusions or fallback.
// Used by the devices command to show the user what auto-detection sees.
func Detect(lines []string) []string {
	seen := make(map[string]bool)
	var detected []string
	for _, line := range lines {
		m := statusPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if !seen[m[1]] {
			seen[m[1]] = true
			detected = append(detected, m[1])
		}
	}
	return detected
}

// DeviceName extracts the quoted device name from a connection-status line.
func DeviceName(line string) (string, bool) {
	m := statusPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func excluded(name string, exclude []string) bool {
	for _, e := range exclude {
		if e != "" && strings.Contains(name, e) {
			return true
		}
	}
	return false
}
