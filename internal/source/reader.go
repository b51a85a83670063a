// Package source implements the buffered byte/rune stream the lexer reads
// from: non-destructive peek, destructive consume, and line/column
// tracking (§4.1 of the specification).
package source

import (
	"unicode/utf8"

	"github.com/opuslang/opusc/internal/token"
)

// EOF is the sentinel rune returned by Peek/Consume once the stream is
// exhausted.
const EOF rune = 0

// Reader is a forward-only rune stream over a source file's contents,
// tracking 1-indexed line/column as runes are consumed. It keeps exactly
// the peek/consume separation the specification calls load-bearing: Peek
// never advances position, only Consume does.
type Reader struct {
	input  string
	offset int
	line   int
	column int
}

// New wraps src for tokenization. Line/column start at 1/0 so the first
// Consume call lands on column 1.
func New(src string) *Reader {
	return &Reader{input: src, line: 1, column: 0}
}

// Peek returns the next rune without consuming it. Repeated calls return
// the same rune until Consume is called. Returns EOF when the stream is
// exhausted.
func (r *Reader) Peek() rune {
	if r.offset >= len(r.input) {
		return EOF
	}
	ch, _ := utf8.DecodeRuneInString(r.input[r.offset:])
	return ch
}

// PeekAt returns the rune n positions past the next one without
// consuming anything (PeekAt(0) == Peek()).
func (r *Reader) PeekAt(n int) rune {
	pos := r.offset
	for i := 0; i < n && pos < len(r.input); i++ {
		_, size := utf8.DecodeRuneInString(r.input[pos:])
		pos += size
	}
	if pos >= len(r.input) {
		return EOF
	}
	ch, _ := utf8.DecodeRuneInString(r.input[pos:])
	return ch
}

// Consume advances past the next rune, updating line/column, and returns
// it. Consuming past EOF is a no-op that keeps returning EOF.
func (r *Reader) Consume() rune {
	if r.offset >= len(r.input) {
		return EOF
	}
	ch, size := utf8.DecodeRuneInString(r.input[r.offset:])
	r.offset += size
	if ch == '\n' {
		r.line++
		r.column = 0
	} else {
		r.column++
	}
	return ch
}

// AtEOF reports whether the stream is exhausted.
func (r *Reader) AtEOF() bool {
	return r.offset >= len(r.input)
}

// Pos returns the position of the rune Peek() would return next.
func (r *Reader) Pos() token.Position {
	line, column := r.line, r.column+1
	if line == 1 && r.column == 0 {
		column = 1
	}
	return token.Position{Line: line, Column: column}
}

// isWhitespace reports whether ch is lexically insignificant whitespace.
// Newline is deliberately excluded: it is a Delimiter outside brackets
// and must never be silently skipped here.
func isWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\v', '\r', '\f':
		return true
	default:
		return false
	}
}

// SkipWhitespace consumes runs of whitespace (as defined above) and
// `//`-to-end-of-line comments, stopping at the first byte of the next
// token, a newline, or EOF.
func (r *Reader) SkipWhitespace() {
	for {
		ch := r.Peek()
		if isWhitespace(ch) {
			r.Consume()
			continue
		}
		if ch == '/' && r.PeekAt(1) == '/' {
			r.SkipLineComment()
			continue
		}
		return
	}
}

// SkipLineComment consumes a `//` comment through (but not including)
// the terminating newline or EOF.
func (r *Reader) SkipLineComment() {
	for r.Peek() != '\n' && r.Peek() != EOF {
		r.Consume()
	}
}
