package ast

import (
	"fmt"

	"github.com/opuslang/opusc/internal/token"
)

// VariableDeclaration introduces a mutable binding (`var name: Type`).
// When the source includes an inline initializer, the parser instead
// produces an Assignment whose Left is this node (§3); a bare
// declaration with no initializer is a Statement in its own right.
type VariableDeclaration struct {
	Tok      token.Token // 'var'
	Name     *Identifier
	TypeName *TypeAnnotation // nil if the type is to be inferred
}

func (v *VariableDeclaration) Kind() string         { return "VariableDeclaration" }
func (v *VariableDeclaration) TokenLiteral() string { return v.Tok.Lexeme }
func (v *VariableDeclaration) Pos() token.Position  { return v.Tok.Pos }
func (v *VariableDeclaration) statementNode()       {}
func (v *VariableDeclaration) String() string {
	if v.TypeName == nil {
		return fmt.Sprintf("var %s", v.Name.Name)
	}
	return fmt.Sprintf("var %s: %s", v.Name.Name, v.TypeName.Name)
}

// ConstantDeclaration introduces an immutable binding (`let name: Type`).
type ConstantDeclaration struct {
	Tok      token.Token // 'let'
	Name     *Identifier
	TypeName *TypeAnnotation
}

func (c *ConstantDeclaration) Kind() string         { return "ConstantDeclaration" }
func (c *ConstantDeclaration) TokenLiteral() string { return c.Tok.Lexeme }
func (c *ConstantDeclaration) Pos() token.Position  { return c.Tok.Pos }
func (c *ConstantDeclaration) statementNode()       {}
func (c *ConstantDeclaration) String() string {
	if c.TypeName == nil {
		return fmt.Sprintf("let %s", c.Name.Name)
	}
	return fmt.Sprintf("let %s: %s", c.Name.Name, c.TypeName.Name)
}

// ExpressionStatement wraps an expression used as a full statement: a
// bare assignment, a bare function call, or any other expression whose
// value is discarded.
type ExpressionStatement struct {
	Expr Expression
}

func (e *ExpressionStatement) Kind() string         { return e.Expr.Kind() }
func (e *ExpressionStatement) TokenLiteral() string { return e.Expr.TokenLiteral() }
func (e *ExpressionStatement) Pos() token.Position  { return e.Expr.Pos() }
func (e *ExpressionStatement) String() string       { return e.Expr.String() }
func (e *ExpressionStatement) statementNode()       {}
