package parser

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLines reads an entire session log into memory as an ordered slice of
// lines. The whole file is materialized up front because later stages
// re-scan the same data (device auto-detection, context-window lookups)
// without re-reading it.
func LoadLines(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size

	for scanner.Scan() {
		// Session logs from Windows clients carry CRLF endings.
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return lines, nil
}
