// Package token defines the token model shared by the lexer and parser:
// token kinds, source positions, and the bounded lexeme buffer.
package token

import "fmt"

// Position identifies a single point in a source file. Both Line and
// Column are 1-indexed. Column counts Unicode code points from the start
// of the line, not bytes — a multi-byte rune (e.g. "Δ") still advances
// the column by one, matching the rune-counting convention used
// throughout the lexer.
type Position struct {
	Line   int
	Column int
}

// String renders the position as "L:C", the format every diagnostic in
// this module uses to pin a message to source.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Less reports whether p sorts strictly before other in source order.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}
