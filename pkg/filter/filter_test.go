package filter

import (
	"reflect"
	"testing"

	"github.com/ridescope/ridescope/pkg/devices"
)

func testMatcher() *devices.Matcher {
	return devices.NewMatcher([]string{"KICKR CORE", "TICKR"})
}

func TestApply_Partition(t *testing.T) {
	lines := []string{
		"[10:00:00] NETCLIENT:[TCP] Received server hello",
		"[10:00:01] FPS 60, elevation 102",
		`[10:00:05] Device: "KICKR CORE" has new connection status: connected`,
		"[10:01:30] BLE: Battery level for TICKR: 85%",
		"[10:02:00] VideoCapture: socket opened for capture device",
		"[11:00:00] Shutting down gracefully",
	}

	r := Apply(lines, testMatcher())

	// Every line lands in exactly one partition, order preserved.
	if r.TotalCount() != len(lines) {
		t.Errorf("TotalCount() = %d, want %d", r.TotalCount(), len(lines))
	}

	merged := make(map[string]int)
	for _, l := range r.Kept {
		merged[l]++
	}
	for _, l := range r.Excluded {
		merged[l]++
	}
	for _, l := range lines {
		if merged[l] != 1 {
			t.Errorf("line %q appears %d times across partitions, want exactly 1", l, merged[l])
		}
	}
}

func TestApply_PartitionReconstructsInput(t *testing.T) {
	lines := []string{
		"[10:00:00] NETCLIENT:[TCP] Received server hello",
		"[10:00:01] random noise",
		"[10:00:02] UDP heartbeat sent",
		"[10:00:03] more noise",
	}

	r := Apply(lines, testMatcher())

	// Merge the two partitions back in original order.
	var rebuilt []string
	ki, ei := 0, 0
	for _, l := range lines {
		switch {
		case ki < len(r.Kept) && r.Kept[ki] == l:
			rebuilt = append(rebuilt, r.Kept[ki])
			ki++
		case ei < len(r.Excluded) && r.Excluded[ei] == l:
			rebuilt = append(rebuilt, r.Excluded[ei])
			ei++
		}
	}
	if !reflect.DeepEqual(rebuilt, lines) {
		t.Errorf("partitions do not reconstruct input:\nkept=%v\nexcluded=%v", r.Kept, r.Excluded)
	}
}

func TestApply_CandidateGate(t *testing.T) {
	tests := []struct {
		name string
		line string
		kept bool
	}{
		{"transport token TCP", "[10:00:00] Lost TCP connection to server", true},
		{"transport token BLE", "[10:00:00] BLE scan started", true},
		{"transport token mDNS", "[10:00:00] mDNS responder active", true},
		{"shutdown token", "[11:00:00] Shutting down gracefully", true},
		{"watchdog token", "[11:00:01] Watchdog destroyed", true},
		{"device pattern", "[10:00:00] TICKR heart rate 140", true},
		{"no token at all", "[10:00:00] FPS 60, elevation 102", false},
		{"empty line", "", false},
	}

	m := testMatcher()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Apply([]string{tt.line}, m)
			if got := len(r.Kept) == 1; got != tt.kept {
				t.Errorf("kept = %v, want %v", got, tt.kept)
			}
		})
	}
}

func TestApply_ForceExclude(t *testing.T) {
	// Both lines are candidates (BLE token), but carry high-frequency
	// noise markers that drop them before any keep rule runs.
	lines := []string{
		"[10:01:30] BLE: Battery level for sensor: 85%",
		"[10:01:31] BLE: Advertising characteristic 0x2a63",
	}

	r := Apply(lines, testMatcher())
	if len(r.Kept) != 0 {
		t.Errorf("Kept = %v, want none (force-excluded noise)", r.Kept)
	}
}

// Lines mentioning a resolved device pattern are always kept, even when a
// standard exclusion marker is also present.
func TestApply_DeviceForceInclude(t *testing.T) {
	lines := []string{
		"[10:00:00] Steering: KICKR CORE steering input ignored",
		"[10:00:01] UI_GroupRide: TICKR widget refreshed",
	}

	r := Apply(lines, testMatcher())
	if len(r.Kept) != len(lines) {
		t.Errorf("Kept = %v, want all %d device lines kept", r.Kept, len(lines))
	}
}

func TestApply_GracefulShutdownForceInclude(t *testing.T) {
	line := "[11:00:00] GroupEvents: Shutting down gracefully"

	r := Apply([]string{line}, testMatcher())
	if len(r.Kept) != 1 {
		t.Error("graceful-shutdown line must survive standard exclusions")
	}
}

func TestApply_StandardExclusions(t *testing.T) {
	tests := []string{
		"[10:02:00] VideoCapture: socket opened for capture device",
		"[10:02:01] Loading asset bundle via TCP mirror",
		"[10:02:02] Steering: BLE steering angle 3.5",
		"[10:02:03] UI_HUD: WiFi indicator refreshed",
	}

	r := Apply(tests, testMatcher())
	if len(r.Excluded) != len(tests) {
		t.Errorf("Excluded = %d lines, want %d (subsystem noise)", len(r.Excluded), len(tests))
	}
}

func TestApply_Counts(t *testing.T) {
	lines := []string{
		"[10:00:00] Lost TCP connection to server",
		"[10:00:01] nothing relevant",
	}

	r := Apply(lines, testMatcher())
	if r.KeptCount() != 1 || r.ExcludedCount() != 1 || r.TotalCount() != 2 {
		t.Errorf("counts = %d/%d/%d, want 1/1/2",
			r.KeptCount(), r.ExcludedCount(), r.TotalCount())
	}
}
