// Package view renders datasets and their analysis as terminal tables.
package view

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// MaxCellWidth bounds a column's display width; longer cells are truncated.
const MaxCellWidth = 32

// Table is a simple left-aligned text table.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Append adds a row.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Widths returns the display width of each column.
func (t *Table) Widths() []int {
	widths := make([]int, len(t.Headers))
	measure := func(row []string) {
		for i, c := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(fit(c)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}
	return widths
}

// Render writes the table with a header rule. Cells wider than MaxCellWidth
// are truncated with an ellipsis.
func (t *Table) Render(w io.Writer) error {
	widths := t.Widths()
	var b strings.Builder
	if t.Title != "" {
		b.WriteString(t.Title)
		b.WriteString("\n")
	}
	writeRow(&b, t.Headers, widths)
	rule := make([]string, len(widths))
	for i, n := range widths {
		rule[i] = strings.Repeat("-", n)
	}
	writeRow(&b, rule, widths)
	for _, r := range t.Rows {
		writeRow(&b, r, widths)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	for i, width := range widths {
		c := ""
		if i < len(cells) {
			c = fit(cells[i])
		}
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(widths)-1 {
			b.WriteString(c)
		} else {
			b.WriteString(runewidth.FillRight(c, width))
		}
	}
	b.WriteString("\n")
}

func fit(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.Truncate(s, MaxCellWidth, "…")
}
