package devices

import "testing"

func TestMatcher_LiteralMatching(t *testing.T) {
	m := NewMatcher([]string{"KICKR CORE", "TICKR"})

	tests := []struct {
		line string
		want bool
	}{
		{`[10:00:00] Device: "KICKR CORE" has new connection status: connected`, true},
		{`[10:00:00] TICKR battery report`, true},
		{`[10:00:00] unrelated noise`, false},
		{``, false},
	}

	for _, tt := range tests {
		if got := m.MatchString(tt.line); got != tt.want {
			t.Errorf("MatchString(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

// Device names with regexp metacharacters must match literally, not as
// patterns.
func TestMatcher_MetacharactersQuoted(t *testing.T) {
	m := NewMatcher([]string{"ANT+ Stick (USB)"})

	if !m.MatchString("[10:00:00] ANT+ Stick (USB) attached") {
		t.Error("MatchString() = false for literal name containing metacharacters")
	}
	if m.MatchString("[10:00:00] ANTT Stick USBB attached") {
		t.Error("MatchString() = true; metacharacters were interpreted as regexp syntax")
	}
}

func TestMatcher_EmptySetMatchesNothing(t *testing.T) {
	m := NewMatcher(nil)
	if m.MatchString("anything at all") {
		t.Error("empty matcher must match nothing")
	}
}

func TestMatcher_Patterns(t *testing.T) {
	patterns := []string{"KICKR CORE", "TICKR"}
	m := NewMatcher(patterns)

	got := m.Patterns()
	if len(got) != 2 || got[0] != "KICKR CORE" || got[1] != "TICKR" {
		t.Errorf("Patterns() = %v, want %v", got, patterns)
	}
}
