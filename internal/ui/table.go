package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Table is a plain aligned text table. Columns are sized by terminal cell
// width so wide runes in keys stay aligned.
type Table struct {
	Header []string
	Rows   [][]string
	// Styled renders the header bold when the output is a color terminal.
	Styled bool
}

// Render lays the table out with two spaces between columns.
func (t Table) Render() string {
	widths := make([]int, len(t.Header))
	measure := func(row []string) {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	measure(t.Header)
	for _, row := range t.Rows {
		measure(row)
	}

	var b strings.Builder
	if len(t.Header) > 0 {
		line := t.line(t.Header, widths)
		if t.Styled {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	for _, row := range t.Rows {
		b.WriteString(t.line(row, widths))
		b.WriteString("\n")
	}
	return b.String()
}

func (t Table) line(row []string, widths []int) string {
	cells := make([]string, len(row))
	for i, cell := range row {
		if i == len(row)-1 {
			cells[i] = cell
			continue
		}
		cells[i] = PadRight(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(cells, "  "), " ")
}
