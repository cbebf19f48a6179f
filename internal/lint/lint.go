// Package lint checks .feature files against the full Gherkin grammar and
// flags constructs the lenient parser drops.
package lint

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	gherkin "github.com/cucumber/gherkin/go/v26"
	messages "github.com/cucumber/messages/go/v21"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type Problem struct {
	Line     int // 1-based, 0 when unknown
	Severity Severity
	Message  string
}

var locatedError = regexp.MustCompile(`^\((\d+):\d+\): (.*)$`)

// ignored lists line prefixes the parser does not understand
// and silently skips.
var ignored = []struct {
	prefix  string
	message string
}{
	{"But ", "But steps are ignored"},
	{"* ", "* steps are ignored"},
	{"Rule:", "Rule blocks are ignored"},
	{`"""`, "doc strings are not supported; their lines are parsed as ordinary lines"},
	{"```", "doc strings are not supported; their lines are parsed as ordinary lines"},
}

// Only the last Examples: table of an outline is expanded.
const repeatedExamples = "repeated Examples: replaces the earlier table of this outline"

func startsBlock(trimmed string) bool {
	for _, p := range []string{"Feature:", "Background:", "Scenario:", "Scenario Outline:", "Rule:"} {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// Check returns the grammar errors and ignored constructs in content,
// grammar errors first.
func Check(content []byte) []Problem {
	var problems []Problem

	_, err := gherkin.ParseGherkinDocument(bytes.NewReader(content), (&messages.Incrementing{}).NewId)
	if err != nil {
		problems = append(problems, grammarProblems(err)...)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	examples := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case startsBlock(trimmed):
			examples = 0
		case strings.HasPrefix(trimmed, "Examples:"):
			examples++
			if examples > 1 {
				problems = append(problems, Problem{Line: i + 1, Severity: SeverityWarning, Message: repeatedExamples})
			}
			continue
		}
		for _, ig := range ignored {
			if strings.HasPrefix(trimmed, ig.prefix) {
				problems = append(problems, Problem{Line: i + 1, Severity: SeverityWarning, Message: ig.message})
				break
			}
		}
	}
	return problems
}

func grammarProblems(err error) []Problem {
	var problems []Problem
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == "Parser errors:" {
			continue
		}
		p := Problem{Severity: SeverityError, Message: line}
		if m := locatedError.FindStringSubmatch(line); m != nil {
			p.Line, _ = strconv.Atoi(m[1])
			p.Message = m[2]
		}
		problems = append(problems, p)
	}
	return problems
}

// HasErrors reports whether any problem is a grammar error.
func HasErrors(problems []Problem) bool {
	for _, p := range problems {
		if p.Severity == SeverityError {
			return true
		}
	}
	return false
}
