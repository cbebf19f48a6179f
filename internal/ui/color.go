package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	updStyle     = lipgloss.NewStyle().Faint(true)
	goneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	keywordStyle = lipgloss.NewStyle().Bold(true)
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func NewLine(w io.Writer, path string) {
	fmt.Fprintln(w, newStyle.Render("new")+"  "+path)
}

func UpdLine(w io.Writer, path string) {
	fmt.Fprintln(w, updStyle.Render("upd")+"  "+path)
}

func GoneLine(w io.Writer, path string) {
	fmt.Fprintln(w, goneStyle.Render("del")+"  "+path)
}

func SummaryLine(w io.Writer, count int) {
	fmt.Fprintf(w, "synced %d files\n", count)
}
