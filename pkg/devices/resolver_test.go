package devices

import (
	"reflect"
	"testing"
)

func statusLine(name, status string) string {
	return `[10:00:00] Device: "` + name + `" has new connection status: ` + status
}

func TestResolve_ExplicitListUsedVerbatim(t *testing.T) {
	lines := []string{statusLine("KICKR CORE", "connected")}
	explicit := []string{"Elite Direto", "HRM-Dual"}

	got := Resolve(lines, explicit, nil)
	if !reflect.DeepEqual(got, explicit) {
		t.Errorf("Resolve() = %v, want explicit list %v", got, explicit)
	}
}

func TestResolve_AutoDetectOrderAndDedup(t *testing.T) {
	lines := []string{
		statusLine("KICKR CORE", "connected"),
		"[10:00:01] some other line",
		statusLine("TICKR", "connected"),
		statusLine("KICKR CORE", "disconnected"), // repeat, must not duplicate
	}

	got := Resolve(lines, nil, nil)
	want := []string{"KICKR CORE", "TICKR"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v (order of first appearance)", got, want)
	}
}

func TestResolve_Exclusions(t *testing.T) {
	lines := []string{
		statusLine("KICKR CORE", "connected"),
		statusLine("Apple Watch", "connected"),
	}

	got := Resolve(lines, nil, []string{"Watch"})
	want := []string{"KICKR CORE"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
}

func TestResolve_FallbackWhenEmpty(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		exclude []string
	}{
		{"no status lines", []string{"[10:00:00] nothing relevant"}, nil},
		{"everything excluded", []string{statusLine("KICKR CORE", "connected")}, []string{"KICKR"}},
		{"empty log", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.lines, nil, tt.exclude)
			if !reflect.DeepEqual(got, DefaultPatterns) {
				t.Errorf("Resolve() = %v, want default fallback %v", got, DefaultPatterns)
			}
			if len(got) == 0 {
				t.Error("Resolve() returned empty set; guarantee violated")
			}
		})
	}
}

func TestDeviceName(t *testing.T) {
	name, ok := DeviceName(statusLine("KICKR CORE", "connected"))
	if !ok || name != "KICKR CORE" {
		t.Errorf("DeviceName() = %q, %v; want %q, true", name, ok, "KICKR CORE")
	}

	if _, ok := DeviceName("[10:00:00] unrelated"); ok {
		t.Error("DeviceName() matched an unrelated line")
	}
}
