package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/chriserin/gherk/internal/ident"
	"github.com/chriserin/gherk/internal/lint"
	"github.com/chriserin/gherk/internal/parser"
)

// Feature prints a parsed feature as an indented tree. Each scenario line
// ends with the test function name generated for it.
func Feature(w io.Writer, path string, f *parser.Feature) {
	fmt.Fprintln(w, dimStyle.Render(path))
	fmt.Fprintln(w, keywordStyle.Render("Feature:")+" "+f.Description+tags(f.Annotations))

	if f.Background != nil {
		fmt.Fprintln(w, "  "+keywordStyle.Render("Background:")+" "+f.Background.Description)
		steps(w, f.Background.Steps)
	}
	for _, s := range f.Scenarios {
		fmt.Fprintf(w, "  %s %s %s%s  %s\n",
			dimStyle.Render(fmt.Sprintf("[%d]", s.Index)),
			keywordStyle.Render("Scenario:"),
			s.Description,
			tags(s.Annotations),
			dimStyle.Render(ident.TestFunc(f.Description, s.Description)))
		steps(w, s.Steps)
	}
}

func steps(w io.Writer, steps []parser.Step) {
	for _, st := range steps {
		fmt.Fprintln(w, "    "+keywordStyle.Render(st.Keyword)+" "+st.Text)
	}
}

func tags(annotations []string) string {
	if len(annotations) == 0 {
		return ""
	}
	rendered := make([]string, len(annotations))
	for i, a := range annotations {
		rendered[i] = tagStyle.Render("@" + a)
	}
	return "  " + strings.Join(rendered, " ")
}

func ListRow(w io.Writer, id int64, fileName, name string, annotations []string, idWidth, fileWidth int) {
	fmt.Fprintf(w, "%-*s  %-*s  %s%s\n",
		idWidth, fmt.Sprintf("#%d", id),
		fileWidth, fileName,
		name, tags(annotations))
}

func ProblemLine(w io.Writer, path string, p lint.Problem) {
	label := warnStyle.Render(string(p.Severity))
	if p.Severity == lint.SeverityError {
		label = errorStyle.Render(string(p.Severity))
	}
	fmt.Fprintf(w, "%s:%d: %s %s\n", path, p.Line, label, p.Message)
}
