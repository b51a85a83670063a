package ast

import (
	"fmt"
	"strings"
)

// Dump renders node as a box-drawing-prefixed tree, one line per node,
// in the form the `opusc parse`/`opusc analyze` subcommands print and
// go-snaps golden files pin (§6): depth-indented with a "├──" (or "└──"
// for the last child of its parent) prefix, naming the kind and, where
// applicable, the anchor token's lexeme in parentheses. It exists purely
// for debugging and test fixtures; it is never consulted by the parser
// or analyzer.
func Dump(node Node) string {
	var sb strings.Builder
	writeLine(&sb, node, "", "")
	writeChildren(&sb, node, "")
	return sb.String()
}

// writeLine renders one node's own line: prefix, branch glyph, kind,
// position, inferred type (expressions only), and lexeme.
func writeLine(sb *strings.Builder, node Node, prefix, branch string) {
	pos := node.Pos()
	fmt.Fprintf(sb, "%s%s%s @%d:%d", prefix, branch, node.Kind(), pos.Line, pos.Column)
	if expr, ok := node.(Expression); ok {
		fmt.Fprintf(sb, " [%s]", expr.Type())
	}
	if lex := node.TokenLiteral(); lex != "" {
		fmt.Fprintf(sb, " (%s)", lex)
	}
	sb.WriteByte('\n')
}

// writeChildren renders every descendant of node under prefix, using
// "├── "/"└── " branch glyphs and extending prefix with "│   "/"    "
// for grandchildren depending on whether each child is the last sibling.
func writeChildren(sb *strings.Builder, node Node, prefix string) {
	kids := children(node)
	for i, child := range kids {
		if child == nil {
			continue
		}
		last := i == len(kids)-1
		branch, nextPrefix := "├── ", prefix+"│   "
		if last {
			branch, nextPrefix = "└── ", prefix+"    "
		}
		writeLine(sb, child, prefix, branch)
		writeChildren(sb, child, nextPrefix)
	}
}

// children enumerates a node's direct descendants for the tree dump.
// Leaf nodes (identifiers, literals, type annotations) return nil.
func children(node Node) []Node {
	switch n := node.(type) {
	case *Program:
		out := make([]Node, len(n.Statements))
		for i, s := range n.Statements {
			out[i] = s
		}
		return out
	case *CodeBlock:
		out := make([]Node, len(n.Statements))
		for i, s := range n.Statements {
			out[i] = s
		}
		return out
	case *ExpressionStatement:
		return []Node{n.Expr}
	case *VariableDeclaration:
		out := []Node{n.Name}
		if n.TypeName != nil {
			out = append(out, n.TypeName)
		}
		return out
	case *ConstantDeclaration:
		out := []Node{n.Name}
		if n.TypeName != nil {
			out = append(out, n.TypeName)
		}
		return out
	case *Assignment:
		return []Node{n.Left, n.Right}
	case *Binary:
		return []Node{n.Left, n.Right}
	case *Unary:
		return []Node{n.Operand}
	case *Postfix:
		return []Node{n.Operand}
	case *FunctionCall:
		out := []Node{n.Callee}
		for _, a := range n.Args {
			out = append(out, a)
		}
		return out
	case *Argument:
		return []Node{n.Value}
	case *ReturnStatement:
		if n.Value != nil {
			return []Node{n.Value}
		}
		return nil
	case *ConditionalStatement:
		out := []Node{n.Condition, n.Then}
		if n.ElseIf != nil {
			out = append(out, n.ElseIf)
		} else if n.Else != nil {
			out = append(out, n.Else)
		}
		return out
	case *RepeatUntilStatement:
		return []Node{n.Body, n.Condition}
	case *ForInStatement:
		return []Node{n.Var, n.Iterable, n.Body}
	case *FunctionDefinition:
		out := make([]Node, 0, len(n.Params)+1)
		for _, p := range n.Params {
			out = append(out, p)
		}
		if n.ReturnType != nil {
			out = append(out, n.ReturnType)
		}
		return out
	case *FunctionImplementation:
		return []Node{n.Signature, n.Body}
	case *Parameter:
		out := []Node{n.Name}
		if n.TypeName != nil {
			out = append(out, n.TypeName)
		}
		return out
	default:
		return nil
	}
}
