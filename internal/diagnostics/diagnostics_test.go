package diagnostics

import (
	"strings"
	"testing"

	"github.com/opuslang/opusc/internal/token"
)

func TestParserFormatIsTwoLines(t *testing.T) {
	d := Parser("missing-colon-for-type-annotation", "Expecting ':' after 'quizGrade'", token.Position{Line: 1, Column: 10})
	lines := strings.Split(d.Format(), "\n")
	if len(lines) != 2 {
		t.Fatalf("Format() produced %d lines, want 2:\n%s", len(lines), d.Format())
	}
	if !strings.HasPrefix(lines[0], "Parsing Error at 1:10") {
		t.Fatalf("first line = %q, want prefix %q", lines[0], "Parsing Error at 1:10")
	}
	if !strings.Contains(lines[1], "Expecting ':' after 'quizGrade'") {
		t.Fatalf("second line = %q, missing message", lines[1])
	}
}

func TestAnalyzerFormatEmbedsLocationInOneLine(t *testing.T) {
	d := Analyzer("redeclared-variable", "Redeclared symbol 'x'", token.Position{Line: 3, Column: 5})
	got := d.Format()
	if strings.Contains(got, "\n") {
		t.Fatalf("analyzer Format() should be one line, got %q", got)
	}
	if !strings.Contains(got, "Redeclared symbol 'x' at location 3:5") {
		t.Fatalf("Format() = %q, want it to contain the message and location", got)
	}
}

func TestLexerFormatEscapesNewlineInLexeme(t *testing.T) {
	d := Lexer(token.UnterminatedString, "a\nb", token.Position{Line: 1, Column: 1})
	got := d.Format()
	if !strings.Contains(got, `\n`) {
		t.Fatalf("Format() = %q, want the literal newline escaped as \\n", got)
	}
	if strings.ContainsRune(got, '\n') {
		t.Fatalf("Format() = %q, contains an actual newline byte", got)
	}
}

func TestFormatAllSortsByPosition(t *testing.T) {
	late := Analyzer("redeclared-variable", "Redeclared symbol 'x'", token.Position{Line: 5, Column: 1})
	early := Lexer(token.UnclosedBracket, "(", token.Position{Line: 1, Column: 1})

	got := FormatAll([]Diagnostic{late, early})

	earlyIdx := strings.Index(got, "1:1")
	lateIdx := strings.Index(got, "5:1")
	if earlyIdx == -1 || lateIdx == -1 {
		t.Fatalf("FormatAll() = %q, missing an expected location", got)
	}
	if earlyIdx > lateIdx {
		t.Fatalf("FormatAll() = %q, want the 1:1 diagnostic before the 5:1 one", got)
	}
}

func TestFormatAllStableForEqualPositions(t *testing.T) {
	first := Lexer(token.MalformedNumeric, "1.2.3", token.Position{Line: 2, Column: 1})
	second := Analyzer("type-mismatch", "expected Int, got Bool", token.Position{Line: 2, Column: 1})

	got := FormatAll([]Diagnostic{first, second})

	firstIdx := strings.Index(got, "1.2.3")
	secondIdx := strings.Index(got, "expected Int, got Bool")
	if firstIdx == -1 || secondIdx == -1 {
		t.Fatalf("FormatAll() = %q, missing an expected diagnostic", got)
	}
	if firstIdx > secondIdx {
		t.Fatalf("FormatAll() = %q, want input order preserved for equal positions", got)
	}
}
