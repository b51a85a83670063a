package ast

import (
	"strings"
	"testing"

	"github.com/opuslang/opusc/internal/token"
)

func tok(kind token.Kind, lexeme string) token.Token {
	return token.New(kind, lexeme, token.Position{Line: 1, Column: 1})
}

func TestExprMetaDefaultsToAnyAndFoldable(t *testing.T) {
	id := NewIdentifier(tok(token.Identifier, "x"))
	if id.Type() != "Any" {
		t.Fatalf("Type() = %q, want Any before analysis", id.Type())
	}
	if !id.Foldable() {
		t.Fatal("Foldable() = false, want true before any operand proves otherwise")
	}
}

func TestSetFoldedImpliesFoldable(t *testing.T) {
	n := NewNumericLiteral(tok(token.Numeric, "3"))
	n.MarkUnfoldable()
	if n.Foldable() {
		t.Fatal("Foldable() = true after MarkUnfoldable")
	}
	n.SetFolded(int64(3))
	if !n.Foldable() || n.FoldedValue() != int64(3) {
		t.Fatalf("SetFolded did not restore foldability: foldable=%v value=%v", n.Foldable(), n.FoldedValue())
	}
}

func TestNumericLiteralDistinguishesIntFromFloat(t *testing.T) {
	i := NewNumericLiteral(tok(token.Numeric, "42"))
	if i.IsFloat {
		t.Fatal("42 parsed as float")
	}
	if i.IntVal != 42 {
		t.Fatalf("IntVal = %d, want 42", i.IntVal)
	}

	f := NewNumericLiteral(tok(token.Numeric, "4.5"))
	if !f.IsFloat {
		t.Fatal("4.5 not parsed as float")
	}
	if f.FltVal != 4.5 {
		t.Fatalf("FltVal = %v, want 4.5", f.FltVal)
	}
}

func TestAssignmentLeftMayBeADeclaration(t *testing.T) {
	decl := &ConstantDeclaration{
		Tok:      tok(token.Let, "let"),
		Name:     NewIdentifier(tok(token.Identifier, "quizGrade")),
		TypeName: NewTypeAnnotation(tok(token.Identifier, "Int")),
	}
	rhs := NewNumericLiteral(tok(token.Numeric, "100"))
	assign := &Assignment{Tok: tok(token.Assign, "="), Left: decl, Right: rhs, ExprMeta: NewExprMeta()}

	if assign.Pos() != decl.Pos() {
		t.Fatal("Assignment.Pos() should delegate to its left child")
	}
	if !strings.Contains(assign.String(), "quizGrade") {
		t.Fatalf("Assignment.String() = %q, want it to mention the declared name", assign.String())
	}
}

func TestErrorNodeImplementsBothInterfaces(t *testing.T) {
	e := NewErrorNode(tok(token.Error, "?"), "unexpected token")
	var _ Statement = e
	var _ Expression = e
	if e.Kind() != "Error" {
		t.Fatalf("Kind() = %q, want Error", e.Kind())
	}
}

func TestDumpRendersNestedStructure(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&ExpressionStatement{
				Expr: &Binary{
					Tok:      tok(token.Plus, "+"),
					Operator: "+",
					Left:     NewNumericLiteral(tok(token.Numeric, "1")),
					Right:    NewNumericLiteral(tok(token.Numeric, "2")),
					ExprMeta: NewExprMeta(),
				},
			},
		},
	}
	out := Dump(prog)
	for _, want := range []string{"Program", "Binary", "Literal"} {
		if !strings.Contains(out, want) {
			t.Fatalf("Dump() missing %q:\n%s", want, out)
		}
	}
}
