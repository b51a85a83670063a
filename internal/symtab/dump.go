package symtab

import (
	"fmt"
	"strings"
)

// All returns every symbol currently in the table, head (most recently
// declared) first. Used only by the `analyze` debug subcommand's symbol
// table dump (§6); nothing in the analyzer itself iterates the table this
// way.
func (t *Table) All() []Symbol {
	var out []Symbol
	for s := t.head; s != nil; s = s.next {
		out = append(out, *s)
	}
	return out
}

// Dump renders the table as the fixed-column format named in §6:
// "Identifier | Type | Namespace | Initialized | Mutable | Location".
func Dump(t *Table) string {
	rows := t.All()

	header := []string{"Identifier", "Type", "Namespace", "Initialized", "Mutable", "Location"}
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}

	cells := make([][]string, len(rows))
	for i, s := range rows {
		cells[i] = []string{
			s.Name,
			s.Type,
			fmt.Sprintf("%d", s.Namespace),
			fmt.Sprintf("%t", s.Initialized),
			fmt.Sprintf("%t", s.Mutable),
			s.Pos.String(),
		}
		for j, c := range cells[i] {
			if len(c) > widths[j] {
				widths[j] = len(c)
			}
		}
	}

	var sb strings.Builder
	writeRow(&sb, header, widths)
	for _, row := range cells {
		writeRow(&sb, row, widths)
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, cols []string, widths []int) {
	for i, c := range cols {
		if i > 0 {
			sb.WriteString(" | ")
		}
		fmt.Fprintf(sb, "%-*s", widths[i], c)
	}
	sb.WriteByte('\n')
}
