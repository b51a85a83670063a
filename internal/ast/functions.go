package ast

import (
	"fmt"
	"strings"

	"github.com/opuslang/opusc/internal/token"
)

// Parameter is one formal parameter in a function signature: an optional
// external label, an internal name, and a declared type.
type Parameter struct {
	Tok      token.Token // the internal-name token
	Label    string      // external label; equals Name.Name if unlabeled
	Name     *Identifier
	TypeName *TypeAnnotation
}

func (p *Parameter) Kind() string         { return "Parameter" }
func (p *Parameter) TokenLiteral() string { return p.Tok.Lexeme }
func (p *Parameter) Pos() token.Position  { return p.Tok.Pos }
func (p *Parameter) String() string {
	if p.Label == p.Name.Name {
		return fmt.Sprintf("%s: %s", p.Name.Name, p.TypeName.Name)
	}
	return fmt.Sprintf("%s %s: %s", p.Label, p.Name.Name, p.TypeName.Name)
}

// FunctionDefinition is a function's signature: its name, parameter
// list, and return type (absent for a function returning no value).
type FunctionDefinition struct {
	Tok        token.Token // 'func'
	Name       *Identifier
	Params     []*Parameter
	ReturnType *TypeAnnotation // nil if the function returns nothing
}

func (f *FunctionDefinition) Kind() string         { return "FunctionDefinition" }
func (f *FunctionDefinition) TokenLiteral() string { return f.Tok.Lexeme }
func (f *FunctionDefinition) Pos() token.Position  { return f.Tok.Pos }
func (f *FunctionDefinition) statementNode()       {}
func (f *FunctionDefinition) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	ret := ""
	if f.ReturnType != nil {
		ret = " -> " + f.ReturnType.Name
	}
	return fmt.Sprintf("func %s(%s)%s", f.Name.Name, strings.Join(parts, ", "), ret)
}

// FunctionImplementation pairs a signature with its body.
type FunctionImplementation struct {
	Signature *FunctionDefinition
	Body      *CodeBlock
}

func (f *FunctionImplementation) Kind() string         { return "FunctionImplementation" }
func (f *FunctionImplementation) TokenLiteral() string { return f.Signature.TokenLiteral() }
func (f *FunctionImplementation) Pos() token.Position  { return f.Signature.Pos() }
func (f *FunctionImplementation) statementNode()       {}
func (f *FunctionImplementation) String() string {
	return f.Signature.String() + " " + f.Body.String()
}

// ReturnStatement optionally carries the function's return value.
type ReturnStatement struct {
	Tok   token.Token // 'return'
	Value Expression  // nil for a bare `return`
}

func (r *ReturnStatement) Kind() string         { return "ReturnStatement" }
func (r *ReturnStatement) TokenLiteral() string { return r.Tok.Lexeme }
func (r *ReturnStatement) Pos() token.Position  { return r.Tok.Pos }
func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}
