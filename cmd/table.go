package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// boxTable prints the box-drawing tables used by the session views. Cells
// are padded by rune count, so they must not carry color codes.
type boxTable struct {
	indent string
	widths []int
}

func newBoxTable(widths ...int) boxTable {
	return boxTable{indent: "   ", widths: widths}
}

func (t boxTable) border(left, mid, right string) string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = strings.Repeat("─", w)
	}
	return t.indent + left + strings.Join(parts, mid) + right
}

func (t boxTable) row(cells ...string) string {
	var b strings.Builder
	b.WriteString(t.indent + "│")
	for i, w := range t.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if n := utf8.RuneCountInString(cell); n > w {
			cell = string([]rune(cell)[:w-1]) + "…"
		}
		fmt.Fprintf(&b, "%s%s│", cell, strings.Repeat(" ", w-utf8.RuneCountInString(cell)))
	}
	return b.String()
}

func (t boxTable) printHeader(cells ...string) {
	fmt.Println(t.border("┌", "┬", "┐"))
	fmt.Println(t.row(cells...))
	fmt.Println(t.border("├", "┼", "┤"))
}

func (t boxTable) printRow(cells ...string) {
	fmt.Println(t.row(cells...))
}

func (t boxTable) printFooter() {
	fmt.Println(t.border("└", "┴", "┘"))
}
