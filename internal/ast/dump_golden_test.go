package ast

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/opuslang/opusc/internal/token"
)

// TestDumpGoldenSnapshot pins the exact box-drawing rendering from §6 for a
// small but structurally varied program (declaration, nested conditional,
// binary expression) against a committed snapshot, the way the teacher
// pins whole fixture outputs with go-snaps rather than asserting on
// substrings alone.
func TestDumpGoldenSnapshot(t *testing.T) {
	prog := &Program{
		Statements: []Statement{
			&ConstantDeclaration{
				Tok:      tok(token.Let, "let"),
				Name:     NewIdentifier(tok(token.Identifier, "threshold")),
				TypeName: NewTypeAnnotation(tok(token.Identifier, "Int")),
			},
			&ConditionalStatement{
				Tok: tok(token.If, "if"),
				Condition: &Binary{
					Tok:      tok(token.Gt, ">"),
					Operator: ">",
					Left:     NewIdentifier(tok(token.Identifier, "threshold")),
					Right:    NewNumericLiteral(tok(token.Numeric, "0")),
					ExprMeta: NewExprMeta(),
				},
				Then: &CodeBlock{
					Statements: []Statement{
						&ExpressionStatement{
							Expr: NewIdentifier(tok(token.Identifier, "threshold")),
						},
					},
				},
			},
		},
	}

	snaps.MatchSnapshot(t, "dump_golden", Dump(prog))
}
