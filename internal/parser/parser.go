// Package parser implements the recursive-descent, precedence-climbing
// parser described in §4.4 of the specification. Errors never abort
// parsing: each failed production records a diagnostic, synchronizes at
// the next statement delimiter, and splices an *ast.ErrorNode into the
// tree in place of whatever failed to parse — grounded on the teacher's
// panic/recover synchronize pattern in `internal/parser/error_recovery.go`.
package parser

import (
	"fmt"

	"github.com/opuslang/opusc/internal/ast"
	"github.com/opuslang/opusc/internal/diagnostics"
	"github.com/opuslang/opusc/internal/lexer"
	"github.com/opuslang/opusc/internal/token"
)

// parseError is the panic payload used to unwind from a failed
// production back to the nearest statement boundary.
type parseError struct {
	diag diagnostics.Diagnostic
}

// Parser consumes tokens from a lexer and builds an *ast.Program.
type Parser struct {
	lex *lexer.Lexer

	cur  token.Token
	prev token.Token // the last successfully consumed token, used to
	// phrase "Expecting 'X' after 'Y'" messages (§6) with Y as its lexeme

	diagnostics []diagnostics.Diagnostic
}

// New creates a Parser reading from lex and primes the first token.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.advance()
	return p
}

// Diagnostics returns every parser-level diagnostic recorded so far,
// including any lexer-error tokens encountered while pulling input.
func (p *Parser) Diagnostics() []diagnostics.Diagnostic {
	return p.diagnostics
}

// advance pulls the next grammar-significant token from the lexer,
// recording (but skipping over) any lexer-error tokens along the way —
// the lexer always returns *some* token on error, but an error token
// never participates in a grammar decision (§7 propagation policy).
func (p *Parser) advance() {
	p.prev = p.cur
	for {
		tok := p.lex.NextToken()
		if tok.Kind == token.Error {
			p.diagnostics = append(p.diagnostics, diagnostics.Lexer(tok.ErrorKind, tok.Lexeme, tok.Pos))
			continue
		}
		p.cur = tok
		return
	}
}

// fail records a parser diagnostic at the current token's position (the
// point "one past the last successfully consumed token" — Open Question
// decision 5) and unwinds to the nearest recover via panic.
func (p *Parser) fail(kind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(parseError{diagnostics.Parser(kind, msg, p.cur.Pos)})
}

// expect consumes cur if it matches kind, returning it; otherwise it
// fails with the given diagnostic kind, phrasing the message as
// "Expecting '<want>' after '<Y>'" with Y the last good token's lexeme.
func (p *Parser) expect(kind token.Kind, want, diagKind string) token.Token {
	if p.cur.Kind != kind {
		p.fail(diagKind, "Expecting '%s' after '%s'", want, p.prev.Lexeme)
	}
	tok := p.cur
	p.advance()
	return tok
}

// skipDelimiters consumes zero or more Delimiter tokens in place,
// used between a closing '}' and a following `else`/`until` keyword.
func (p *Parser) skipDelimiters() {
	for p.cur.Kind == token.Delimiter {
		p.advance()
	}
}

// expectStatementEnd consumes a terminating Delimiter, or accepts EOF/`}`
// as an implicit terminator (a file with no trailing newline still
// parses as if EOF were a delimiter, §8).
func (p *Parser) expectStatementEnd() {
	switch p.cur.Kind {
	case token.Delimiter:
		p.advance()
	case token.EOF, token.RBrace:
	default:
		p.fail("missing-delimiter", "Expecting delimiter after '%s'", p.prev.Lexeme)
	}
}

// Parse runs the parser to completion and returns the root Program
// together with every diagnostic recorded along the way.
func (p *Parser) Parse() (*ast.Program, []diagnostics.Diagnostic) {
	prog := &ast.Program{}
	for p.cur.Kind != token.EOF {
		if p.cur.Kind == token.Delimiter {
			p.advance()
			continue
		}
		prog.Statements = append(prog.Statements, p.parseStatement())
	}
	return prog, p.diagnostics
}

// parseStatement dispatches on the leading token (§4.4's table) and
// recovers from any panic raised deeper in the call stack, substituting
// an Error node and synchronizing at the next delimiter.
func (p *Parser) parseStatement() (stmt ast.Statement) {
	startTok := p.cur
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(parseError)
			if !ok {
				panic(r)
			}
			p.diagnostics = append(p.diagnostics, pe.diag)
			p.synchronize()
			stmt = ast.NewErrorNode(startTok, pe.diag.Message)
		}
	}()

	switch {
	case p.cur.Kind == token.Var || p.cur.Kind == token.Let:
		return p.parseDeclaration()
	case p.cur.Kind == token.Func:
		return p.parseFunctionDefinition()
	case p.cur.Kind == token.Return:
		return p.parseReturn()
	case p.cur.Kind == token.If:
		return p.parseIfClause()
	case p.cur.Kind == token.Repeat:
		return p.parseRepeatUntil()
	case p.cur.Kind == token.For:
		return p.parseForIn()
	case p.cur.Kind.IsExpressionStarter():
		return p.parseExpressionStatement()
	default:
		p.fail("unresolvable", "Unresolvable token '%s'", p.cur.Lexeme)
		panic("unreachable")
	}
}

// synchronize drains tokens through the next Delimiter (consuming it) or
// EOF (leaving it in place), resuming parsing at a fresh statement.
func (p *Parser) synchronize() {
	for p.cur.Kind != token.Delimiter && p.cur.Kind != token.EOF {
		p.advance()
	}
	if p.cur.Kind == token.Delimiter {
		p.advance()
	}
}

// parseDeclaration handles `(var|let) Identifier ':' Identifier
// (Delimiter | '=' Expression Delimiter)`.
func (p *Parser) parseDeclaration() ast.Statement {
	tok := p.cur
	mutable := tok.Kind == token.Var
	p.advance()

	nameTok := p.expect(token.Identifier, "identifier", "missing-identifier")
	name := ast.NewIdentifier(nameTok)

	p.expect(token.Colon, ":", "missing-type-annotation")
	typeTok := p.expect(token.Identifier, "type name", "missing-type-name")
	typeName := ast.NewTypeAnnotation(typeTok)

	var decl ast.Node
	if mutable {
		decl = &ast.VariableDeclaration{Tok: tok, Name: name, TypeName: typeName}
	} else {
		decl = &ast.ConstantDeclaration{Tok: tok, Name: name, TypeName: typeName}
	}

	if p.cur.Kind == token.Assign {
		assignTok := p.cur
		p.advance()
		if !p.cur.Kind.IsExpressionStarter() {
			p.fail("missing-right-value", "Expecting value after '%s'", assignTok.Lexeme)
		}
		rhs := p.parseExpression()
		p.expectStatementEnd()
		assign := &ast.Assignment{Tok: assignTok, Left: decl, Right: rhs, ExprMeta: ast.NewExprMeta()}
		return &ast.ExpressionStatement{Expr: assign}
	}

	switch p.cur.Kind {
	case token.Delimiter, token.EOF, token.RBrace:
	default:
		p.fail("declaration-syntax", "Unexpected token '%s' in declaration", p.cur.Lexeme)
	}
	p.expectStatementEnd()
	return decl.(ast.Statement)
}

// parseFunctionDefinition handles `func Identifier '(' Params? ')' '->'
// Identifier (CodeBlock)?`.
func (p *Parser) parseFunctionDefinition() ast.Statement {
	tok := p.cur
	p.advance()

	nameTok := p.expect(token.Identifier, "function name", "missing-function-name")
	name := ast.NewIdentifier(nameTok)

	p.expect(token.LParen, "(", "missing-opening-bracket")

	var params []*ast.Parameter
	if p.cur.Kind != token.RParen {
		for {
			params = append(params, p.parseParameter())
			if p.cur.Kind == token.Comma {
				p.advance()
				continue
			}
			break
		}
	}
	if p.cur.Kind == token.RParen {
		p.advance()
	}

	p.expect(token.Arrow, "->", "missing-right-arrow")
	retTok := p.expect(token.Identifier, "return type", "missing-return-type")
	retType := ast.NewTypeAnnotation(retTok)

	def := &ast.FunctionDefinition{Tok: tok, Name: name, Params: params, ReturnType: retType}

	if p.cur.Kind == token.LBrace {
		body := p.parseCodeBlock()
		return &ast.FunctionImplementation{Signature: def, Body: body}
	}

	p.expectStatementEnd()
	return def
}

func (p *Parser) parseParameter() *ast.Parameter {
	nameTok := p.expect(token.Identifier, "parameter name", "missing-parameter-label")
	name := ast.NewIdentifier(nameTok)
	p.expect(token.Colon, ":", "missing-colon-after-label")
	typeTok := p.expect(token.Identifier, "parameter type", "missing-type-name")
	return &ast.Parameter{Tok: nameTok, Label: name.Name, Name: name, TypeName: ast.NewTypeAnnotation(typeTok)}
}

// parseCodeBlock handles a brace-delimited statement sequence.
func (p *Parser) parseCodeBlock() *ast.CodeBlock {
	tok := p.cur
	if tok.Kind != token.LBrace {
		p.fail("missing-opening-curly-bracket", "Expecting '{' after '%s'", p.prev.Lexeme)
	}
	p.advance()

	var stmts []ast.Statement
	for p.cur.Kind != token.RBrace && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.Delimiter {
			p.advance()
			continue
		}
		stmts = append(stmts, p.parseStatement())
	}
	if p.cur.Kind == token.RBrace {
		p.advance()
	}
	return &ast.CodeBlock{Tok: tok, Statements: stmts}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.cur
	p.advance()

	if p.cur.Kind == token.Delimiter || p.cur.Kind == token.EOF || p.cur.Kind == token.RBrace {
		p.expectStatementEnd()
		return &ast.ReturnStatement{Tok: tok}
	}
	val := p.parseExpression()
	p.expectStatementEnd()
	return &ast.ReturnStatement{Tok: tok, Value: val}
}

// parseIfClause parses one `if`/`else if`/`else` link of the chain. The
// statement-level terminator is implicit: either the chain ends in a
// bare `}` (no delimiter required, same as any other block statement) or
// the trailing delimiters skipped between `}` and a following `else`
// double as the statement terminator when there is no `else` at all.
func (p *Parser) parseIfClause() *ast.ConditionalStatement {
	tok := p.cur
	p.advance()

	if !p.cur.Kind.IsExpressionStarter() {
		p.fail("missing-condition", "Expecting condition after '%s'", tok.Lexeme)
	}
	cond := p.parseExpression()
	then := p.parseCodeBlock()

	node := &ast.ConditionalStatement{Tok: tok, Condition: cond, Then: then}

	p.skipDelimiters()
	if p.cur.Kind == token.Else {
		p.advance()
		p.skipDelimiters()
		if p.cur.Kind == token.If {
			node.ElseIf = p.parseIfClause()
		} else {
			node.Else = p.parseCodeBlock()
		}
	}
	return node
}

func (p *Parser) parseRepeatUntil() ast.Statement {
	tok := p.cur
	p.advance()

	body := p.parseCodeBlock()
	p.skipDelimiters()

	p.expect(token.Until, "until", "missing-until-condition")
	if !p.cur.Kind.IsExpressionStarter() {
		p.fail("missing-until-condition", "Expecting condition after '%s'", "until")
	}
	cond := p.parseExpression()
	p.expectStatementEnd()

	return &ast.RepeatUntilStatement{Tok: tok, Body: body, Condition: cond}
}

func (p *Parser) parseForIn() ast.Statement {
	tok := p.cur
	p.advance()

	varTok := p.expect(token.Identifier, "identifier", "missing-identifier")
	loopVar := ast.NewIdentifier(varTok)

	p.expect(token.In, "in", "missing-in-statement")
	if !p.cur.Kind.IsExpressionStarter() {
		p.fail("missing-condition", "Expecting expression after '%s'", "in")
	}
	iterable := p.parseExpression()
	body := p.parseCodeBlock()

	return &ast.ForInStatement{Tok: tok, Var: loopVar, Iterable: iterable, Body: body}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	expr := p.parseExpression()
	p.expectStatementEnd()
	return &ast.ExpressionStatement{Expr: expr}
}

// --- Expression grammar: logical-or -> logical-and -> comparison ->
// additive -> multiplicative -> prefix -> postfix -> primary. ---

func (p *Parser) parseExpression() ast.Expression {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.cur.Kind == token.Or {
		opTok := p.cur
		p.advance()
		right := p.parseLogicalAnd()
		left = &ast.Binary{Tok: opTok, Operator: "||", Left: left, Right: right, ExprMeta: ast.NewExprMeta()}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseComparison()
	for p.cur.Kind == token.And {
		opTok := p.cur
		p.advance()
		right := p.parseComparison()
		left = &ast.Binary{Tok: opTok, Operator: "&&", Left: left, Right: right, ExprMeta: ast.NewExprMeta()}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for isComparisonOperator(p.cur.Kind) {
		opTok := p.cur
		p.advance()
		right := p.parseAdditive()
		left = &ast.Binary{Tok: opTok, Operator: opTok.Lexeme, Left: left, Right: right, ExprMeta: ast.NewExprMeta()}
	}
	return left
}

func isComparisonOperator(k token.Kind) bool {
	switch k {
	case token.Lt, token.Gt, token.Le, token.Ge, token.EqEq, token.NotEq:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.cur.Kind == token.Plus || p.cur.Kind == token.Minus {
		opTok := p.cur
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.Binary{Tok: opTok, Operator: opTok.Lexeme, Left: left, Right: right, ExprMeta: ast.NewExprMeta()}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parsePrefix()
	for p.cur.Kind == token.Star || p.cur.Kind == token.Slash || p.cur.Kind == token.Percent {
		opTok := p.cur
		p.advance()
		right := p.parsePrefix()
		left = &ast.Binary{Tok: opTok, Operator: opTok.Lexeme, Left: left, Right: right, ExprMeta: ast.NewExprMeta()}
	}
	return left
}

// parsePrefix is right-associative by recursing on itself: unary `-`
// and `!` bind to the result of another prefix parse, not just a primary.
func (p *Parser) parsePrefix() ast.Expression {
	if p.cur.Kind == token.Minus || p.cur.Kind == token.Not {
		opTok := p.cur
		p.advance()
		operand := p.parsePrefix()
		return &ast.Unary{Tok: opTok, Operator: opTok.Lexeme, Operand: operand, ExprMeta: ast.NewExprMeta()}
	}
	return p.parsePostfix()
}

// parsePostfix loops over trailing `!` (factorial) and `(...)` (call),
// left-associative and chainable.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch {
		case p.cur.Kind == token.Factorial:
			opTok := p.cur
			p.advance()
			expr = &ast.Postfix{Tok: opTok, Operand: expr, ExprMeta: ast.NewExprMeta()}
		case p.cur.Kind == token.LParen:
			if id, ok := expr.(*ast.Identifier); ok {
				expr = p.parseCallArguments(id)
			} else {
				return expr
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArguments(callee *ast.Identifier) *ast.FunctionCall {
	lparen := p.cur
	p.advance()

	var args []*ast.Argument
	if p.cur.Kind != token.RParen {
		for {
			args = append(args, p.parseArgument())
			if p.cur.Kind == token.Comma {
				p.advance()
				if p.cur.Kind == token.RParen {
					p.fail("missing-argument", "Expecting argument after ','")
				}
				continue
			}
			break
		}
	}
	if p.cur.Kind == token.RParen {
		p.advance()
	}
	return &ast.FunctionCall{Tok: lparen, Callee: callee, Args: args, ExprMeta: ast.NewExprMeta()}
}

func (p *Parser) parseArgument() *ast.Argument {
	labelTok := p.expect(token.Identifier, "argument label", "missing-argument-label")
	p.expect(token.Colon, ":", "missing-colon-after-label")
	if !p.cur.Kind.IsExpressionStarter() {
		p.fail("missing-argument", "Expecting value after '%s'", labelTok.Lexeme)
	}
	value := p.parseExpression()
	return &ast.Argument{Tok: labelTok, Label: labelTok.Lexeme, Value: value}
}

// parsePrimary handles literals, identifiers (and the assignment they
// may introduce), boolean keywords, and parenthesized sub-expressions.
func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Kind {
	case token.Numeric:
		tok := p.cur
		p.advance()
		return ast.NewNumericLiteral(tok)
	case token.String:
		tok := p.cur
		p.advance()
		return ast.NewStringLiteral(tok)
	case token.Boolean:
		tok := p.cur
		p.advance()
		return ast.NewBooleanLiteral(tok)
	case token.Identifier:
		tok := p.cur
		p.advance()
		id := ast.NewIdentifier(tok)
		if p.cur.Kind == token.Assign {
			assignTok := p.cur
			p.advance()
			if !p.cur.Kind.IsExpressionStarter() {
				p.fail("missing-right-value", "Expecting value after '%s'", assignTok.Lexeme)
			}
			rhs := p.parseExpression()
			return &ast.Assignment{Tok: assignTok, Left: id, Right: rhs, ExprMeta: ast.NewExprMeta()}
		}
		return id
	case token.LParen:
		p.advance()
		inner := p.parseExpression()
		// A missing ')' is reported by the lexer's bracket-nesting vector
		// as an unclosed bracket at EOF; here it is consumed only if present.
		if p.cur.Kind == token.RParen {
			p.advance()
		}
		return inner
	default:
		p.fail("missing-operand", "Expecting operand after '%s'", p.prev.Lexeme)
		panic("unreachable")
	}
}
