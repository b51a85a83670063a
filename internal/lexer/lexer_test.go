package lexer

import (
	"testing"

	"github.com/opuslang/opusc/internal/token"
)

type expectedTok struct {
	kind   token.Kind
	lexeme string
}

func collect(t *testing.T, input string) []token.Token {
	t.Helper()
	l := New(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks
}

func assertKinds(t *testing.T, input string, want []expectedTok) {
	t.Helper()
	got := collect(t, input)
	if len(got) != len(want) {
		t.Fatalf("%q: got %d tokens, want %d\ngot=%+v", input, len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Kind != w.kind {
			t.Fatalf("%q: token[%d].Kind = %s, want %s (lexeme=%q)", input, i, got[i].Kind, w.kind, got[i].Lexeme)
		}
		if w.lexeme != "" && got[i].Lexeme != w.lexeme {
			t.Fatalf("%q: token[%d].Lexeme = %q, want %q", input, i, got[i].Lexeme, w.lexeme)
		}
	}
}

func TestDeclarationWithAssignment(t *testing.T) {
	assertKinds(t, "let quizGrade: Int = 100\n", []expectedTok{
		{token.Let, "let"},
		{token.Identifier, "quizGrade"},
		{token.Colon, ":"},
		{token.Identifier, "Int"},
		{token.Assign, "="},
		{token.Numeric, "100"},
		{token.Delimiter, "\n"},
		{token.EOF, ""},
	})
}

func TestFactorialVsLogicalNot(t *testing.T) {
	assertKinds(t, "5!", []expectedTok{
		{token.Numeric, "5"},
		{token.Factorial, "!"},
		{token.EOF, ""},
	})
	assertKinds(t, "!5", []expectedTok{
		{token.Not, "!"},
		{token.Numeric, "5"},
		{token.EOF, ""},
	})
	assertKinds(t, "x!", []expectedTok{
		{token.Identifier, "x"},
		{token.Factorial, "!"},
		{token.EOF, ""},
	})
}

func TestNotEqualIsSingleToken(t *testing.T) {
	assertKinds(t, "x != y", []expectedTok{
		{token.Identifier, "x"},
		{token.NotEq, "!="},
		{token.Identifier, "y"},
		{token.EOF, ""},
	})
	// Even right after an identifier, `!=` must win over (Factorial, Assign).
	assertKinds(t, "x!=y", []expectedTok{
		{token.Identifier, "x"},
		{token.NotEq, "!="},
		{token.Identifier, "y"},
		{token.EOF, ""},
	})
}

func TestNewlineOutsideBracketsIsDelimiter(t *testing.T) {
	assertKinds(t, "x\ny", []expectedTok{
		{token.Identifier, "x"},
		{token.Delimiter, "\n"},
		{token.Identifier, "y"},
		{token.EOF, ""},
	})
}

func TestNewlineInsideParensIsWhitespace(t *testing.T) {
	assertKinds(t, "(\n1\n+\n2\n)", []expectedTok{
		{token.LParen, "("},
		{token.Numeric, "1"},
		{token.Plus, "+"},
		{token.Numeric, "2"},
		{token.RParen, ")"},
		{token.EOF, ""},
	})
}

func TestNewlineInsideBracesIsDelimiter(t *testing.T) {
	assertKinds(t, "{\nx\n}", []expectedTok{
		{token.LBrace, "{"},
		{token.Delimiter, "\n"},
		{token.Identifier, "x"},
		{token.Delimiter, "\n"},
		{token.RBrace, "}"},
		{token.EOF, ""},
	})
}

func TestNewlineInsideSquareIsWhitespace(t *testing.T) {
	assertKinds(t, "[\n1\n]", []expectedTok{
		{token.LBracket, "["},
		{token.Numeric, "1"},
		{token.RBracket, "]"},
		{token.EOF, ""},
	})
}

func TestOrphanUnderscore(t *testing.T) {
	assertKinds(t, "_", []expectedTok{
		{token.Error, "_"},
		{token.EOF, ""},
	})
	toks := collect(t, "_")
	if toks[0].ErrorKind != token.OrphanUnderscore {
		t.Fatalf("ErrorKind = %s, want OrphanUnderscore", toks[0].ErrorKind)
	}
}

func TestDoubleUnderscoreIsValidIdentifier(t *testing.T) {
	assertKinds(t, "__", []expectedTok{
		{token.Identifier, "__"},
		{token.EOF, ""},
	})
}

func TestMalformedNumericTwoDots(t *testing.T) {
	toks := collect(t, "1.2.3 ")
	if toks[0].Kind != token.Error || toks[0].ErrorKind != token.MalformedNumeric {
		t.Fatalf("got %+v, want MalformedNumeric error", toks[0])
	}
}

func TestUnterminatedString(t *testing.T) {
	toks := collect(t, `"abc`)
	if toks[0].Kind != token.Error || toks[0].ErrorKind != token.UnterminatedString {
		t.Fatalf("got %+v, want UnterminatedString error", toks[0])
	}
}

func TestStringEscapesPreservedLiterally(t *testing.T) {
	toks := collect(t, `"a\nb"`)
	if toks[0].Kind != token.String {
		t.Fatalf("got %+v, want String", toks[0])
	}
	if toks[0].Lexeme != `a\nb` {
		t.Fatalf("Lexeme = %q, want `a\\nb` (escape preserved literally)", toks[0].Lexeme)
	}
}

func TestUndefinedOperatorRun(t *testing.T) {
	toks := collect(t, "<==")
	if toks[0].Kind != token.Error || toks[0].ErrorKind != token.UndefinedOperator {
		t.Fatalf("got %+v, want UndefinedOperator error", toks[0])
	}
	if toks[0].Lexeme != "<==" {
		t.Fatalf("Lexeme = %q, want \"<==\"", toks[0].Lexeme)
	}
}

func TestMultiCharOperators(t *testing.T) {
	assertKinds(t, "-> == != <= >= && ||", []expectedTok{
		{token.Arrow, "->"},
		{token.EqEq, "=="},
		{token.NotEq, "!="},
		{token.Le, "<="},
		{token.Ge, ">="},
		{token.And, "&&"},
		{token.Or, "||"},
		{token.EOF, ""},
	})
}

func TestLoneAmpersandIsUnrecognizable(t *testing.T) {
	toks := collect(t, "& x")
	if toks[0].Kind != token.Error || toks[0].ErrorKind != token.Unrecognizable {
		t.Fatalf("got %+v, want Unrecognizable error", toks[0])
	}
}

func TestBracketVectorUnclosedAtEOF(t *testing.T) {
	l := New("(1")
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	errs := l.StreamErrors()
	if len(errs) != 1 {
		t.Fatalf("StreamErrors() = %v, want exactly one unclosed-bracket error", errs)
	}
	if errs[0].ErrorKind != token.UnclosedBracket {
		t.Fatalf("StreamErrors()[0].ErrorKind = %s, want %s", errs[0].ErrorKind, token.UnclosedBracket)
	}
	if errs[0].Lexeme != "(" {
		t.Fatalf("StreamErrors()[0].Lexeme = %q, want %q", errs[0].Lexeme, "(")
	}
}

func TestBracketVectorReportsOneErrorPerUnclosedKind(t *testing.T) {
	l := New("({[1")
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	errs := l.StreamErrors()
	if len(errs) != 3 {
		t.Fatalf("StreamErrors() = %v, want exactly three unclosed-bracket errors", errs)
	}
	wantLexemes := map[string]bool{"(": true, "{": true, "[": true}
	for _, e := range errs {
		if e.ErrorKind != token.UnclosedBracket {
			t.Fatalf("StreamErrors() entry ErrorKind = %s, want %s", e.ErrorKind, token.UnclosedBracket)
		}
		if !wantLexemes[e.Lexeme] {
			t.Fatalf("StreamErrors() entry Lexeme = %q, unexpected", e.Lexeme)
		}
		delete(wantLexemes, e.Lexeme)
	}
	if len(wantLexemes) != 0 {
		t.Fatalf("StreamErrors() missing lexemes: %v", wantLexemes)
	}
}

func TestBracketVectorClosedNoError(t *testing.T) {
	l := New("(1)")
	for {
		tok := l.NextToken()
		if tok.Kind == token.EOF {
			break
		}
	}
	if errs := l.StreamErrors(); len(errs) != 0 {
		t.Fatalf("StreamErrors() = %v, want none", errs)
	}
}

func TestKeywordsRecognized(t *testing.T) {
	assertKinds(t, "var let if else repeat until for in return func class struct true false",
		[]expectedTok{
			{token.Var, "var"},
			{token.Let, "let"},
			{token.If, "if"},
			{token.Else, "else"},
			{token.Repeat, "repeat"},
			{token.Until, "until"},
			{token.For, "for"},
			{token.In, "in"},
			{token.Return, "return"},
			{token.Func, "func"},
			{token.Class, "class"},
			{token.Struct, "struct"},
			{token.Boolean, "true"},
			{token.Boolean, "false"},
			{token.EOF, ""},
		})
}

func TestLineComment(t *testing.T) {
	assertKinds(t, "x // a comment\ny", []expectedTok{
		{token.Identifier, "x"},
		{token.Delimiter, "\n"},
		{token.Identifier, "y"},
		{token.EOF, ""},
	})
}

func TestNoTrailingNewlineStillTerminates(t *testing.T) {
	assertKinds(t, "x", []expectedTok{
		{token.Identifier, "x"},
		{token.EOF, ""},
	})
}
