package parser

import (
	"bytes"
	"strings"
)

var bom = []byte("\ufeff")

// Lines strips a leading byte-order mark, normalizes line endings, trims
// every line and drops blank lines and comments. The result is what Parse
// expects.
func Lines(content []byte) []string {
	content = bytes.TrimPrefix(content, bom)
	raw := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, trimmed)
	}
	return lines
}

// Parse assembles pre-processed lines into a Feature. It returns nil and no
// error when there are no lines at all.
func Parse(lines []string) (*Feature, error) {
	if len(lines) == 0 {
		return nil, nil
	}

	m := &fileMachine{}
	for _, line := range lines {
		if err := m.feed(line); err != nil {
			return nil, err
		}
	}
	return m.build()
}

// ParseBytes parses the raw content of a .feature file.
func ParseBytes(content []byte) (*Feature, error) {
	return Parse(Lines(content))
}
