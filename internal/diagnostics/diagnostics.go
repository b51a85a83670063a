// Package diagnostics implements the compiler's shared error-reporting
// type and its three wire formats (lexer, parser, analyzer — §6 of the
// specification), grounded on the teacher's CompilerError/Format pattern
// but colorized with a real ANSI-color library instead of hand-rolled
// escape codes.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/opuslang/opusc/internal/token"
)

// Stage identifies which layer of the compiler raised a Diagnostic. Each
// stage has its own wire format.
type Stage int

const (
	LexerStage Stage = iota
	ParserStage
	AnalyzerStage
)

// Diagnostic is one reported problem, pinned to a source location.
type Diagnostic struct {
	Stage   Stage
	Kind    string // e.g. "missing-identifier", "redeclared-variable"
	Message string
	Pos     token.Position

	// Lexer-only fields.
	Lexeme    string
	ErrorKind token.ErrorKind
}

var errPrefix = color.New(color.FgRed, color.Bold).SprintFunc()

// Format renders d in the stage-specific wire format from §6.
func (d Diagnostic) Format() string {
	switch d.Stage {
	case LexerStage:
		return fmt.Sprintf("<%s:%s, Lexeme:%q> at location %s",
			errPrefix("ERROR"), d.ErrorKind, d.Lexeme, d.Pos)
	case ParserStage:
		return fmt.Sprintf("Parsing Error at %s\n[%s] %s", d.Pos, errPrefix("ERROR"), d.Message)
	case AnalyzerStage:
		return fmt.Sprintf("[%s] %s at location %s", errPrefix("ERROR"), d.Message, d.Pos)
	default:
		return fmt.Sprintf("[%s] %s at %s", errPrefix("ERROR"), d.Message, d.Pos)
	}
}

// FormatAll renders a batch of diagnostics, one per line (parser
// diagnostics occupy two lines each). Diagnostics are stable-sorted into
// source order first, so combining streams from different layers (e.g.
// parser diagnostics and the lexer's end-of-stream findings) still prints
// in the order a reader scanning the file top to bottom would hit them.
func FormatAll(diags []Diagnostic) string {
	ordered := make([]Diagnostic, len(diags))
	copy(ordered, diags)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Pos.Less(ordered[j].Pos)
	})

	var sb strings.Builder
	for _, d := range ordered {
		sb.WriteString(d.Format())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Lexer builds a LexerStage diagnostic from a lexer error token.
func Lexer(errKind token.ErrorKind, lexeme string, pos token.Position) Diagnostic {
	return Diagnostic{Stage: LexerStage, ErrorKind: errKind, Lexeme: lexeme, Pos: pos}
}

// Parser builds a ParserStage diagnostic.
func Parser(kind, message string, pos token.Position) Diagnostic {
	return Diagnostic{Stage: ParserStage, Kind: kind, Message: message, Pos: pos}
}

// Analyzer builds an AnalyzerStage diagnostic.
func Analyzer(kind, message string, pos token.Position) Diagnostic {
	return Diagnostic{Stage: AnalyzerStage, Kind: kind, Message: message, Pos: pos}
}
