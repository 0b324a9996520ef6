package search

import (
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// printer formats selected lines and counts the way grep does:
// "name:line" or "name:count", with the name left out for a single input.
// Only the name, the separator and counts are styled; matched lines are
// written byte for byte.
type printer struct {
	withName bool
	color    bool
	name     lipgloss.Style
	sep      lipgloss.Style
	count    lipgloss.Style
}

func newPrinter(withName, color bool) printer {
	return printer{
		withName: withName,
		color:    color,
		name:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		sep:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		count:    lipgloss.NewStyle().Bold(true),
	}
}

func (p printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

func (p printer) prefix(w io.Writer, name string) {
	if !p.withName {
		return
	}
	io.WriteString(w, p.render(p.name, name))
	io.WriteString(w, p.render(p.sep, ":"))
}

func (p printer) line(w io.Writer, name, line string) {
	p.prefix(w, name)
	io.WriteString(w, line)
	io.WriteString(w, "\n")
}

func (p printer) total(w io.Writer, name string, n int64) {
	p.prefix(w, name)
	io.WriteString(w, p.render(p.count, strconv.FormatInt(n, 10)))
	io.WriteString(w, "\n")
}
