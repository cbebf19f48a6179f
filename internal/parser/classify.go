package parser

import "strings"

// Tag identifies the kind of a pre-processed line.
type Tag int

const (
	TagUnknown Tag = iota
	TagFeature
	TagBackground
	TagScenario
	TagOutline
	TagExamples
	TagTableRow
	TagGiven
	TagWhen
	TagThen
	TagAnd
	TagAnnotation
)

// vocabulary is checked in order and the first matching prefix wins.
var vocabulary = []struct {
	tag    Tag
	prefix string
}{
	{TagFeature, "Feature:"},
	{TagBackground, "Background:"},
	{TagScenario, "Scenario:"},
	{TagOutline, "Scenario Outline:"},
	{TagExamples, "Examples:"},
	{TagTableRow, "|"},
	{TagGiven, "Given"},
	{TagWhen, "When"},
	{TagThen, "Then"},
	{TagAnd, "And"},
	{TagAnnotation, "@"},
}

// Classify maps a trimmed line to its tag and the remainder of the line with
// the prefix and surrounding whitespace removed. Lines matching no prefix are
// TagUnknown and are returned as is.
func Classify(line string) (Tag, string) {
	for _, v := range vocabulary {
		if rest, ok := strings.CutPrefix(line, v.prefix); ok {
			return v.tag, strings.TrimSpace(rest)
		}
	}
	return TagUnknown, line
}

// String returns the literal prefix the tag matches.
func (t Tag) String() string {
	for _, v := range vocabulary {
		if v.tag == t {
			return v.prefix
		}
	}
	return "unknown"
}

func (t Tag) IsStep() bool {
	return t == TagGiven || t == TagWhen || t == TagThen || t == TagAnd
}
