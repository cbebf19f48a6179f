package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// exampleTable buffers the pipe-delimited rows of one Examples: section.
type exampleTable struct {
	rows []string
}

func (t *exampleTable) addRow(line string) {
	t.rows = append(t.rows, line)
}

// expand materializes one scenario per data row of the table. With no data
// rows the template is returned unchanged.
func (t *exampleTable) expand(tmpl Scenario, base int) ([]Scenario, error) {
	if len(t.rows) < 2 {
		return []Scenario{tmpl}, nil
	}

	header := splitRow(t.rows[0])
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if name == "" || seen[name] {
			return nil, fmt.Errorf("%w: header %q in %q", ErrMalformedTable, name, tmpl.Description)
		}
		seen[name] = true
	}

	scenarios := make([]Scenario, 0, len(t.rows)-1)
	for k, row := range t.rows[1:] {
		cells := splitRow(row)
		if len(cells) != len(header) {
			return nil, fmt.Errorf("%w: row %d of %q has %d cells, header has %d",
				ErrMalformedTable, k+1, tmpl.Description, len(cells), len(header))
		}

		steps := make([]Step, len(tmpl.Steps))
		for i, step := range tmpl.Steps {
			text := step.Text
			for col, name := range header {
				text = strings.ReplaceAll(text, "<"+name+">", cells[col])
			}
			steps[i] = Step{Keyword: step.Keyword, Text: text}
		}

		scenarios = append(scenarios, Scenario{
			Annotations: append([]string(nil), tmpl.Annotations...),
			Description: tmpl.Description + "Example" + strconv.Itoa(k+1),
			Steps:       steps,
			Index:       base + k,
		})
	}

	t.rows = nil
	return scenarios, nil
}

// splitRow splits a table row on "|" and trims each cell. One leading and one
// trailing pipe are dropped so "| a | b |" yields two cells.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")

	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
