package parser

import (
	"fmt"
	"strings"
)

type fileState int

const (
	noFeature fileState = iota
	inFeature
)

// fileMachine drives the parse of one file. It buffers annotations seen
// before the Feature: line and owns the feature once one is declared.
type fileMachine struct {
	state       fileState
	feature     *featureMachine
	annotations []string
}

func (m *fileMachine) feed(line string) error {
	tag, rest := Classify(line)
	switch {
	case tag == TagFeature:
		return m.onFeature(rest)
	case tag == TagAnnotation:
		for _, a := range strings.Fields(rest) {
			if strings.HasPrefix(a, "#") {
				// the rest of the line is a comment
				break
			}
			m.onAnnotation(strings.TrimPrefix(a, "@"))
		}
		return nil
	case m.state == noFeature:
		// Everything else needs a feature to attach to.
		return nil
	}

	switch tag {
	case TagBackground:
		return m.feature.onBlock(true, rest)
	case TagScenario, TagOutline:
		return m.feature.onBlock(false, rest)
	case TagExamples:
		m.feature.onExamples()
	case TagTableRow:
		m.feature.onExampleLine(line)
	case TagGiven, TagWhen, TagThen, TagAnd:
		m.feature.onStep(tag.String(), rest)
	}
	return nil
}

func (m *fileMachine) onAnnotation(text string) {
	switch m.state {
	case noFeature:
		m.annotations = append(m.annotations, text)
	case inFeature:
		m.feature.onAnnotation(text)
	}
}

func (m *fileMachine) onFeature(description string) error {
	if m.state == inFeature {
		return fmt.Errorf("%w: %q", ErrDuplicateFeature, description)
	}
	m.feature = newFeatureMachine(description)
	m.state = inFeature
	return nil
}

func (m *fileMachine) build() (*Feature, error) {
	if m.state == noFeature {
		return nil, ErrNoFeature
	}
	f, err := m.feature.build(m.annotations)
	*m = fileMachine{}
	return f, err
}
