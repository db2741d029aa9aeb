package testutil

import (
	"fmt"
	"strings"
)

// TestMessages contains generic JSON messages for testing.
var TestMessages = []string{
	`{"id": 1, "value": "foo", "timestamp": 1234567890, "count": 42}`,
	`{"id": 2, "value": "bar", "timestamp": 1234567891, "count": 43}`,
	`{"id": 3, "value": "baz", "timestamp": 1234567892, "count": 44}`,
	`{"id": 4, "value": "qux", "timestamp": 1234567893, "count": 45}`,
	`{"id": 5, "value": "quux", "timestamp": 1234567894, "count": 46}`,
}

// LogLines returns n numbered lines: "line 1" through "line n".
func LogLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return lines
}

// LogText joins lines with trailing newlines, as a tailed file would read.
func LogText(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
