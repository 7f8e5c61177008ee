// Package table lays out short strings in aligned columns.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Gap separates adjacent columns.
const Gap = "  "

// Format pads each row to the widest cell of its column. Widths are measured
// in terminal cells, ignoring escape sequences. Rows may be ragged; trailing
// padding is trimmed.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				widths = append(widths, 0)
			}
			if w := ansi.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(Gap)
			}
			pad := widths[c] - ansi.StringWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", max(pad, 0)))
		}
		out[i] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// Grid arranges items top to bottom, then left to right, in the given
// number of columns. Fewer than one column yields a single column.
func Grid(items []string, columns int) [][]string {
	if len(items) == 0 {
		return nil
	}
	if columns < 1 {
		columns = 1
	}
	height := (len(items) + columns - 1) / columns
	rows := make([][]string, height)
	for i, item := range items {
		r := i % height
		rows[r] = append(rows[r], item)
	}
	return rows
}
