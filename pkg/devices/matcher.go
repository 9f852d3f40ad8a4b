package devices

import (
	"regexp"
	"strings"
)

// Matcher is a compiled-once matcher over a resolved device pattern set.
// Patterns are treated as literal substrings (quoted before compilation) so
// names containing regexp metacharacters, like "ANT+ Stick", match exactly.
// Built at pipeline start and passed explicitly between stages.
type Matcher struct {
	patterns []string
	re       *regexp.Regexp
}

// NewMatcher compiles a matcher from the given pattern set.
// A nil or empty set yields a matcher that matches nothing.
func NewMatcher(patterns []string) *Matcher {
	m := &Matcher{patterns: append([]string(nil), patterns...)}

	if len(patterns) == 0 {
		return m
	}

	quoted := make([]string, len(patterns))
	for i, p := range patterns {
		quoted[i] = regexp.QuoteMeta(p)
	}
	m.re = regexp.MustCompile(strings.Join(quoted, "|"))

	return m
}

// MatchString reports whether the line mentions any resolved device pattern.
func (m *Matcher) MatchString(line string) bool {
	return m.re != nil && m.re.MatchString(line)
}

// Patterns returns the pattern set the matcher was compiled from.
func (m *Matcher) Patterns() []string {
	return m.patterns
}
