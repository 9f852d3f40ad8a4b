package parser

import (
	"fmt"
	"path/filepath"
	"sort"
)

// ExpandGlobs expands file paths and glob patterns into a deduplicated list
// of matching paths. Patterns that match nothing are passed through as-is so
// the caller can report file-not-found with the original argument.
func ExpandGlobs(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			matches = []string{pattern}
		}

		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				result = append(result, match)
			}
		}
	}

	// Sort for deterministic ordering
	sort.Strings(result)

	return result, nil
}
