// Package ast defines the abstract syntax tree produced by the parser.
//
// The specification's design note (§9) allows either literal cons-cell
// sequences or ordered-children slices for list-shaped constructs
// (programs, blocks, parameter/argument lists); this implementation takes
// the slice form, the "more ergonomic" option the note explicitly
// sanctions (see SPEC_FULL.md Open Question 6). Node kinds otherwise
// follow §3 of the specification one-to-one.
package ast

import (
	"strings"

	"github.com/opuslang/opusc/internal/token"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the anchor token's lexeme.
	TokenLiteral() string
	// Pos returns the anchor token's source position.
	Pos() token.Position
	// Kind names the node's AST kind, e.g. "BinaryExpression", for dumps
	// and diagnostics.
	Kind() string
	// String renders the node for debugging and golden-file tests.
	String() string
}

// Expression is any node that produces a value and therefore carries
// type-inference and constant-folding metadata, written by the semantic
// analyzer (§3 invariant 1: every non-error node has a non-empty
// inferred type after analysis, "Any" being the pre-analysis sentinel).
type Expression interface {
	Node
	expressionNode()
	Type() string
	SetType(string)
	Foldable() bool
	FoldedValue() any
	SetFolded(value any)
	MarkUnfoldable()
}

// Statement is a node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// ExprMeta carries the inferred-type / constant-folding annotations
// shared by every expression node. It is embedded by value so each
// concrete node type gets the Expression metadata methods for free.
//
// Foldable starts true (an unanalyzed leaf is optimistically foldable
// until proven otherwise, mirroring the uniform-constructor default in
// §4.3); SetFolded both records a value and implies foldability, while
// MarkUnfoldable is used the instant any operand turns out not to be a
// compile-time constant.
type ExprMeta struct {
	inferredType string
	foldable     bool
	foldedValue  any
}

// NewExprMeta returns the initial metadata state for a freshly
// constructed expression node: inferred type "Any", foldable.
func NewExprMeta() ExprMeta {
	return ExprMeta{inferredType: "Any", foldable: true}
}

func (m *ExprMeta) Type() string {
	if m.inferredType == "" {
		return "Any"
	}
	return m.inferredType
}

func (m *ExprMeta) SetType(t string) { m.inferredType = t }

func (m *ExprMeta) Foldable() bool { return m.foldable }

func (m *ExprMeta) FoldedValue() any { return m.foldedValue }

func (m *ExprMeta) SetFolded(value any) {
	m.foldable = true
	m.foldedValue = value
}

func (m *ExprMeta) MarkUnfoldable() {
	m.foldable = false
	m.foldedValue = nil
}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Kind() string { return "Program" }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}
func (p *Program) String() string {
	var sb strings.Builder
	for _, s := range p.Statements {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// CodeBlock is a brace-delimited sequence of statements, used as the
// body of functions, conditionals, repeat-until loops, and for-in loops.
type CodeBlock struct {
	Tok        token.Token // the '{' token
	Statements []Statement
}

func (b *CodeBlock) Kind() string           { return "CodeBlock" }
func (b *CodeBlock) TokenLiteral() string   { return b.Tok.Lexeme }
func (b *CodeBlock) Pos() token.Position    { return b.Tok.Pos }
func (b *CodeBlock) statementNode()         {}
func (b *CodeBlock) String() string {
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range b.Statements {
		sb.WriteString("  ")
		sb.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// ErrorNode substitutes for the failed production in panic-mode recovery
// (§4.4). It implements both Statement and Expression so the parser can
// splice it in wherever a production failed.
type ErrorNode struct {
	Tok        token.Token
	Diagnostic string
	ExprMeta
}

func (e *ErrorNode) Kind() string         { return "Error" }
func (e *ErrorNode) TokenLiteral() string { return e.Tok.Lexeme }
func (e *ErrorNode) Pos() token.Position  { return e.Tok.Pos }
func (e *ErrorNode) String() string       { return "<error: " + e.Diagnostic + ">" }
func (e *ErrorNode) statementNode()       {}
func (e *ErrorNode) expressionNode()      {}

// NewErrorNode builds an ErrorNode anchored at tok, carrying diagnostic
// as a human-readable description of what production failed.
func NewErrorNode(tok token.Token, diagnostic string) *ErrorNode {
	return &ErrorNode{Tok: tok, Diagnostic: diagnostic, ExprMeta: NewExprMeta()}
}
