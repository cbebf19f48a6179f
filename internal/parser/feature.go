package parser

import "fmt"

type blockState int

const (
	noBlock blockState = iota
	inBlock
)

// block is the scenario or background currently being assembled.
type block struct {
	isBackground bool
	annotations  []string
	description  string
	steps        []Step
	table        *exampleTable
}

// featureMachine assembles the blocks of one feature.
type featureMachine struct {
	description string
	index       int
	scenarios   []Scenario
	background  *Scenario

	// pendingAnnotations belong to the next block to open, never to the
	// one currently open.
	pendingAnnotations []string

	state blockState
	open  block
}

func newFeatureMachine(description string) *featureMachine {
	return &featureMachine{description: description}
}

func (m *featureMachine) onAnnotation(text string) {
	m.pendingAnnotations = append(m.pendingAnnotations, text)
}

func (m *featureMachine) onBlock(isBackground bool, description string) error {
	if err := m.flush(); err != nil {
		return err
	}
	if isBackground && m.background != nil {
		return fmt.Errorf("%w in feature %q", ErrDuplicateBackground, m.description)
	}

	m.open = block{
		isBackground: isBackground,
		annotations:  m.pendingAnnotations,
		description:  description,
		steps:        []Step{},
	}
	m.pendingAnnotations = nil
	m.state = inBlock
	return nil
}

func (m *featureMachine) onStep(keyword, text string) {
	switch m.state {
	case noBlock:
		// Steps before the first Scenario: or Background: are dropped.
	case inBlock:
		m.open.steps = append(m.open.steps, Step{Keyword: keyword, Text: text})
	}
}

func (m *featureMachine) onExamples() {
	switch m.state {
	case noBlock:
	case inBlock:
		m.open.table = &exampleTable{}
	}
}

func (m *featureMachine) onExampleLine(text string) {
	if m.state == noBlock || m.open.table == nil {
		return
	}
	m.open.table.addRow(text)
}

// flush closes the open block, if any, and records its scenarios.
func (m *featureMachine) flush() error {
	if m.state == noBlock {
		return nil
	}
	b := m.open
	m.open = block{}
	m.state = noBlock

	scenario := Scenario{
		Annotations:  b.annotations,
		Description:  b.description,
		Steps:        b.steps,
		Index:        m.index,
		IsBackground: b.isBackground,
	}
	if b.isBackground {
		m.background = &scenario
		return nil
	}

	produced := []Scenario{scenario}
	if b.table != nil {
		var err error
		produced, err = b.table.expand(scenario, m.index)
		if err != nil {
			return err
		}
	}
	m.scenarios = append(m.scenarios, produced...)
	m.index += len(produced)
	return nil
}

func (m *featureMachine) build(annotations []string) (*Feature, error) {
	if err := m.flush(); err != nil {
		return nil, err
	}
	return &Feature{
		Annotations: annotations,
		Description: m.description,
		Scenarios:   m.scenarios,
		Background:  m.background,
	}, nil
}
