package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opuslang/opusc/internal/token"
)

// Identifier is a bare name reference.
type Identifier struct {
	Tok  token.Token
	Name string
	ExprMeta
}

func NewIdentifier(tok token.Token) *Identifier {
	return &Identifier{Tok: tok, Name: tok.Lexeme, ExprMeta: NewExprMeta()}
}

func (i *Identifier) Kind() string         { return "Identifier" }
func (i *Identifier) TokenLiteral() string { return i.Tok.Lexeme }
func (i *Identifier) Pos() token.Position  { return i.Tok.Pos }
func (i *Identifier) String() string       { return i.Name }
func (i *Identifier) expressionNode()      {}

// NumericLiteral is a numeric constant token (§3). Whether it denotes an
// Int or a Float is decided purely by the presence of a decimal point in
// the source lexeme, per the lexer's own numeric grammar.
type NumericLiteral struct {
	Tok     token.Token
	IsFloat bool
	IntVal  int64
	FltVal  float64
	ExprMeta
}

// NewNumericLiteral parses tok's lexeme into an Int or Float literal. The
// lexer guarantees the lexeme is well-formed (at most one '.', digits
// otherwise) and that it fits int64 when there is no dot; a malformed or
// overflowing literal never reaches the parser as a Numeric token.
func NewNumericLiteral(tok token.Token) *NumericLiteral {
	n := &NumericLiteral{Tok: tok, ExprMeta: NewExprMeta()}
	if strings.Contains(tok.Lexeme, ".") {
		n.IsFloat = true
		n.FltVal, _ = strconv.ParseFloat(tok.Lexeme, 64)
	} else {
		n.IntVal, _ = strconv.ParseInt(tok.Lexeme, 10, 64)
	}
	return n
}

func (n *NumericLiteral) Kind() string         { return "Literal" }
func (n *NumericLiteral) TokenLiteral() string { return n.Tok.Lexeme }
func (n *NumericLiteral) Pos() token.Position  { return n.Tok.Pos }
func (n *NumericLiteral) String() string       { return n.Tok.Lexeme }
func (n *NumericLiteral) expressionNode()      {}

// StringLiteral is a quoted string constant; Value holds the lexeme with
// its surrounding quotes already stripped by the lexer.
type StringLiteral struct {
	Tok   token.Token
	Value string
	ExprMeta
}

func NewStringLiteral(tok token.Token) *StringLiteral {
	return &StringLiteral{Tok: tok, Value: tok.Lexeme, ExprMeta: NewExprMeta()}
}

func (s *StringLiteral) Kind() string         { return "Literal" }
func (s *StringLiteral) TokenLiteral() string { return s.Tok.Lexeme }
func (s *StringLiteral) Pos() token.Position  { return s.Tok.Pos }
func (s *StringLiteral) String() string       { return strconv.Quote(s.Value) }
func (s *StringLiteral) expressionNode()      {}

// BooleanLiteral is the `true` / `false` keyword literal.
type BooleanLiteral struct {
	Tok   token.Token
	Value bool
	ExprMeta
}

func NewBooleanLiteral(tok token.Token) *BooleanLiteral {
	return &BooleanLiteral{Tok: tok, Value: tok.Lexeme == "true", ExprMeta: NewExprMeta()}
}

func (b *BooleanLiteral) Kind() string         { return "BooleanLiteral" }
func (b *BooleanLiteral) TokenLiteral() string { return b.Tok.Lexeme }
func (b *BooleanLiteral) Pos() token.Position  { return b.Tok.Pos }
func (b *BooleanLiteral) String() string       { return b.Tok.Lexeme }
func (b *BooleanLiteral) expressionNode()      {}

// Binary is a two-operand infix expression (arithmetic, comparison,
// equality, or logical).
type Binary struct {
	Tok      token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
	ExprMeta
}

func (b *Binary) Kind() string         { return "Binary" }
func (b *Binary) TokenLiteral() string { return b.Tok.Lexeme }
func (b *Binary) Pos() token.Position  { return b.Tok.Pos }
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), b.Operator, b.Right.String())
}
func (b *Binary) expressionNode() {}

// Unary is a single-operand prefix expression: unary minus or logical not.
type Unary struct {
	Tok      token.Token
	Operator string
	Operand  Expression
	ExprMeta
}

func (u *Unary) Kind() string         { return "Unary" }
func (u *Unary) TokenLiteral() string { return u.Tok.Lexeme }
func (u *Unary) Pos() token.Position  { return u.Tok.Pos }
func (u *Unary) String() string       { return fmt.Sprintf("(%s%s)", u.Operator, u.Operand.String()) }
func (u *Unary) expressionNode()      {}

// Postfix is the postfix factorial operator.
type Postfix struct {
	Tok     token.Token
	Operand Expression
	ExprMeta
}

func (p *Postfix) Kind() string         { return "Postfix" }
func (p *Postfix) TokenLiteral() string { return p.Tok.Lexeme }
func (p *Postfix) Pos() token.Position  { return p.Tok.Pos }
func (p *Postfix) String() string       { return fmt.Sprintf("(%s!)", p.Operand.String()) }
func (p *Postfix) expressionNode()      {}

// Argument is one labeled-or-positional actual argument in a call.
// It is a plain Node (not an Expression) since it carries no value of
// its own beyond the expression it wraps.
type Argument struct {
	Tok   token.Token // the label token, or the value's anchor if positional
	Label string      // "" if positional
	Value Expression
}

func (a *Argument) Kind() string         { return "Argument" }
func (a *Argument) TokenLiteral() string { return a.Tok.Lexeme }
func (a *Argument) Pos() token.Position  { return a.Tok.Pos }
func (a *Argument) String() string {
	if a.Label == "" {
		return a.Value.String()
	}
	return a.Label + ": " + a.Value.String()
}

// FunctionCall invokes Callee with a labeled/positional argument list.
type FunctionCall struct {
	Tok    token.Token // '('
	Callee *Identifier
	Args   []*Argument
	ExprMeta
}

func (f *FunctionCall) Kind() string         { return "FunctionCall" }
func (f *FunctionCall) TokenLiteral() string { return f.Tok.Lexeme }
func (f *FunctionCall) Pos() token.Position  { return f.Callee.Pos() }
func (f *FunctionCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Callee.Name, strings.Join(parts, ", "))
}
func (f *FunctionCall) expressionNode() {}

// Assignment binds Right to Left. Left is either a bare Identifier (a
// plain re-assignment) or a VariableDeclaration/ConstantDeclaration (a
// declaration with an inline initializer), per §3: "an Assignment node
// whose left child is the declaration".
//
// Assignment implements Expression so it can appear wherever the grammar
// produces an assignment mid-expression (identifier followed by '='); at
// the statement level it is wrapped, like any other expression, in an
// ExpressionStatement.
type Assignment struct {
	Tok   token.Token // '='
	Left  Node
	Right Expression
	ExprMeta
}

func (a *Assignment) Kind() string         { return "Assignment" }
func (a *Assignment) TokenLiteral() string { return a.Tok.Lexeme }
func (a *Assignment) Pos() token.Position  { return a.Left.Pos() }
func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Left.String(), a.Right.String())
}
func (a *Assignment) expressionNode() {}

// TypeAnnotation names a declared or return type. It is a plain Node: it
// never produces a runtime value.
type TypeAnnotation struct {
	Tok  token.Token
	Name string
}

func NewTypeAnnotation(tok token.Token) *TypeAnnotation {
	return &TypeAnnotation{Tok: tok, Name: tok.Lexeme}
}

func (t *TypeAnnotation) Kind() string         { return "TypeAnnotation" }
func (t *TypeAnnotation) TokenLiteral() string { return t.Tok.Lexeme }
func (t *TypeAnnotation) Pos() token.Position  { return t.Tok.Pos }
func (t *TypeAnnotation) String() string       { return t.Name }
