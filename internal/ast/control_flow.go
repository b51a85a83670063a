package ast

import (
	"github.com/opuslang/opusc/internal/token"
)

// ConditionalStatement is an if/else-if/else chain. Else holds either
// another ConditionalStatement (an "else if") or a plain CodeBlock (a
// final "else"); both are nil for a bare `if`.
type ConditionalStatement struct {
	Tok       token.Token // 'if'
	Condition Expression
	Then      *CodeBlock
	ElseIf    *ConditionalStatement
	Else      *CodeBlock
}

func (c *ConditionalStatement) Kind() string         { return "ConditionalStatement" }
func (c *ConditionalStatement) TokenLiteral() string { return c.Tok.Lexeme }
func (c *ConditionalStatement) Pos() token.Position  { return c.Tok.Pos }
func (c *ConditionalStatement) statementNode()       {}
func (c *ConditionalStatement) String() string {
	s := "if " + c.Condition.String() + " " + c.Then.String()
	if c.ElseIf != nil {
		s += " else " + c.ElseIf.String()
	} else if c.Else != nil {
		s += " else " + c.Else.String()
	}
	return s
}

// RepeatUntilStatement is a post-condition loop: the body runs at least
// once, then repeats until Condition is true.
type RepeatUntilStatement struct {
	Tok       token.Token // 'repeat'
	Body      *CodeBlock
	Condition Expression
}

func (r *RepeatUntilStatement) Kind() string         { return "RepeatUntilStatement" }
func (r *RepeatUntilStatement) TokenLiteral() string { return r.Tok.Lexeme }
func (r *RepeatUntilStatement) Pos() token.Position  { return r.Tok.Pos }
func (r *RepeatUntilStatement) statementNode()       {}
func (r *RepeatUntilStatement) String() string {
	return "repeat " + r.Body.String() + " until " + r.Condition.String()
}

// ForInStatement iterates Var over Iterable, running Body once per
// element. The loop variable's scope is the loop body alone.
type ForInStatement struct {
	Tok      token.Token // 'for'
	Var      *Identifier
	Iterable Expression
	Body     *CodeBlock
}

func (f *ForInStatement) Kind() string         { return "ForInStatement" }
func (f *ForInStatement) TokenLiteral() string { return f.Tok.Lexeme }
func (f *ForInStatement) Pos() token.Position  { return f.Tok.Pos }
func (f *ForInStatement) statementNode()       {}
func (f *ForInStatement) String() string {
	return "for " + f.Var.Name + " in " + f.Iterable.String() + " " + f.Body.String()
}
