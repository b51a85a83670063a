// Package semantic implements the analyzer described in §4.6 of the
// specification: declaration recording, type inference and checking,
// constant folding, and dead-branch elimination, walking the AST the
// parser produced and consulting/updating a scoped symbol table.
//
// Grounded on the teacher's single-Analyzer-struct design
// (`internal/semantic/analyzer.go`), adapted to this language's simpler,
// closed type system (Int/Float/Bool/String, no classes or generics).
package semantic

import (
	"fmt"
	"math"

	"github.com/opuslang/opusc/internal/ast"
	"github.com/opuslang/opusc/internal/diagnostics"
	"github.com/opuslang/opusc/internal/symtab"
	"github.com/opuslang/opusc/internal/token"
)

// Analyzer walks a Program, annotating every expression node and
// recording diagnostics as they are found. A single Analyzer is used
// for exactly one compilation.
type Analyzer struct {
	table *symtab.Table
	diags []diagnostics.Diagnostic
}

// New returns an Analyzer with a fresh, empty symbol table.
func New() *Analyzer {
	return &Analyzer{table: symtab.New()}
}

// Diagnostics returns every analyzer-level diagnostic recorded so far.
func (a *Analyzer) Diagnostics() []diagnostics.Diagnostic {
	return a.diags
}

// SymbolTable exposes the analyzer's table for the `analyze` debug
// subcommand's symbol-table dump (§6); the analyzer itself is the table's
// only other owner for the duration of a compilation.
func (a *Analyzer) SymbolTable() *symtab.Table {
	return a.table
}

func (a *Analyzer) report(kind string, pos token.Position, format string, args ...any) {
	a.diags = append(a.diags, diagnostics.Analyzer(kind, fmt.Sprintf(format, args...), pos))
}

// Analyze walks prog top to bottom, returning whether every statement
// analyzed cleanly (the AND of all child results, per §4.6 "Top-level").
func (a *Analyzer) Analyze(prog *ast.Program) bool {
	ok := true
	for _, stmt := range prog.Statements {
		if !a.analyzeStatement(stmt) {
			ok = false
		}
	}
	return ok
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.ErrorNode:
		return false
	case *ast.VariableDeclaration:
		return a.declare(s.Name.Name, s.TypeName.Name, true, s.Pos())
	case *ast.ConstantDeclaration:
		return a.declare(s.Name.Name, s.TypeName.Name, false, s.Pos())
	case *ast.ExpressionStatement:
		return a.analyzeExpr(s.Expr)
	case *ast.ReturnStatement:
		if s.Value != nil {
			return a.analyzeExpr(s.Value)
		}
		return true
	case *ast.ConditionalStatement:
		return a.analyzeConditional(s)
	case *ast.RepeatUntilStatement:
		return a.analyzeRepeatUntil(s)
	case *ast.ForInStatement:
		return a.analyzeForIn(s)
	case *ast.FunctionDefinition:
		return a.declareFunction(s)
	case *ast.FunctionImplementation:
		return a.analyzeFunctionImplementation(s)
	default:
		return true
	}
}

// declare records a declared name, both for a bare declaration and for
// the declaration on the left of an inline initializer (analyzeAssignment).
// Rejects redeclaration at the current namespace (§4.6).
func (a *Analyzer) declare(name, declaredType string, mutable bool, pos token.Position) bool {
	if a.table.IsDeclaredAtCurrent(name) {
		a.report("redeclared-variable", pos, "Redeclared symbol '%s'", name)
		return false
	}
	kind := "let"
	if mutable {
		kind = "var"
	}
	a.table.Add(symtab.Symbol{Name: name, Kind: kind, Type: declaredType, Mutable: mutable, Pos: pos})
	return true
}

// declareFunction registers a function's signature as a symbol so calls
// can resolve its return type. Functions are not mutable and have no
// foldable value.
func (a *Analyzer) declareFunction(def *ast.FunctionDefinition) bool {
	retType := "Void"
	if def.ReturnType != nil {
		retType = def.ReturnType.Name
	}
	if a.table.IsDeclaredAtCurrent(def.Name.Name) {
		a.report("redeclared-variable", def.Pos(), "Redeclared symbol '%s'", def.Name.Name)
		return false
	}
	a.table.Add(symtab.Symbol{Name: def.Name.Name, Kind: "func", Type: retType, Mutable: false, Pos: def.Pos(), Initialized: true})
	return true
}

func (a *Analyzer) analyzeFunctionImplementation(impl *ast.FunctionImplementation) bool {
	ok := a.declareFunction(impl.Signature)

	a.table.EnterNamespace()
	for _, param := range impl.Signature.Params {
		if a.table.IsDeclaredAtCurrent(param.Name.Name) {
			a.report("redeclared-variable", param.Pos(), "Redeclared symbol '%s'", param.Name.Name)
			ok = false
			continue
		}
		a.table.Add(symtab.Symbol{
			Name: param.Name.Name, Kind: "param", Type: param.TypeName.Name,
			Mutable: false, Pos: param.Pos(), Initialized: true,
		})
	}
	if !a.analyzeBlock(impl.Body) {
		ok = false
	}
	a.table.ExitNamespace()
	return ok
}

func (a *Analyzer) analyzeBlock(block *ast.CodeBlock) bool {
	ok := true
	for _, stmt := range block.Statements {
		if !a.analyzeStatement(stmt) {
			ok = false
		}
	}
	return ok
}

// analyzeBranchBlock runs block in its own namespace, opened and closed
// around it, so declarations inside do not leak to sibling branches or
// outlive the branch (§8 scenario 3).
func (a *Analyzer) analyzeBranchBlock(block *ast.CodeBlock) bool {
	a.table.EnterNamespace()
	ok := a.analyzeBlock(block)
	a.table.ExitNamespace()
	return ok
}

// analyzeConditional implements dead-branch elimination: when the
// condition folds to a compile-time constant, only the taken branch is
// analyzed; the other remains in the AST, unanalyzed (§4.6, §8 scenario 3).
func (a *Analyzer) analyzeConditional(c *ast.ConditionalStatement) bool {
	if !a.analyzeExpr(c.Condition) {
		return false
	}
	if c.Condition.Type() != "Bool" {
		a.report("invalid-condition", c.Condition.Pos(), "Condition must be Bool, got '%s'", c.Condition.Type())
		return false
	}

	if c.Condition.Foldable() {
		taken, _ := c.Condition.FoldedValue().(bool)
		if taken {
			return a.analyzeBranchBlock(c.Then)
		}
		if c.ElseIf != nil {
			return a.analyzeConditional(c.ElseIf)
		}
		if c.Else != nil {
			return a.analyzeBranchBlock(c.Else)
		}
		return true
	}

	thenOK := a.analyzeBranchBlock(c.Then)
	elseOK := true
	if c.ElseIf != nil {
		elseOK = a.analyzeConditional(c.ElseIf)
	} else if c.Else != nil {
		elseOK = a.analyzeBranchBlock(c.Else)
	}
	return thenOK && elseOK
}

// analyzeRepeatUntil shares one namespace between the body and the
// until-condition, since the condition may reference the loop body's
// own locals (the loop runs the body at least once before testing it).
func (a *Analyzer) analyzeRepeatUntil(r *ast.RepeatUntilStatement) bool {
	a.table.EnterNamespace()
	bodyOK := a.analyzeBlock(r.Body)
	condOK := a.analyzeExpr(r.Condition)
	if condOK && r.Condition.Type() != "Bool" {
		a.report("invalid-condition", r.Condition.Pos(), "Condition must be Bool, got '%s'", r.Condition.Type())
		condOK = false
	}
	a.table.ExitNamespace()
	return bodyOK && condOK
}

// analyzeForIn binds the loop variable to the iterable's inferred type
// (the language has no separate element/collection type distinction)
// for the duration of the loop body's namespace.
func (a *Analyzer) analyzeForIn(f *ast.ForInStatement) bool {
	iterOK := a.analyzeExpr(f.Iterable)

	elemType := "Any"
	if iterOK {
		elemType = f.Iterable.Type()
	}

	a.table.EnterNamespace()
	a.table.Add(symtab.Symbol{Name: f.Var.Name, Kind: "var", Type: elemType, Mutable: true, Pos: f.Var.Pos(), Initialized: true})
	f.Var.SetType(elemType)
	bodyOK := a.analyzeBlock(f.Body)
	a.table.ExitNamespace()

	return iterOK && bodyOK
}

// analyzeExpr dispatches type inference and constant folding for every
// expression kind, returning whether analysis succeeded.
func (a *Analyzer) analyzeExpr(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.NumericLiteral:
		if e.IsFloat {
			e.SetType("Float")
			e.SetFolded(e.FltVal)
		} else {
			e.SetType("Int")
			e.SetFolded(e.IntVal)
		}
		return true
	case *ast.StringLiteral:
		e.SetType("String")
		e.SetFolded(e.Value)
		return true
	case *ast.BooleanLiteral:
		e.SetType("Bool")
		e.SetFolded(e.Value)
		return true
	case *ast.Identifier:
		return a.analyzeIdentifier(e)
	case *ast.Unary:
		return a.analyzeUnary(e)
	case *ast.Binary:
		return a.analyzeBinary(e)
	case *ast.Postfix:
		return a.analyzePostfix(e)
	case *ast.FunctionCall:
		return a.analyzeCall(e)
	case *ast.Assignment:
		return a.analyzeAssignment(e)
	case *ast.ErrorNode:
		e.SetType("Any")
		e.MarkUnfoldable()
		return false
	default:
		return true
	}
}

func (a *Analyzer) analyzeIdentifier(id *ast.Identifier) bool {
	sym := a.table.Find(id.Name)
	if sym == nil {
		a.report("undeclared-variable", id.Pos(), "Undeclared variable '%s'", id.Name)
		id.SetType("Any")
		id.MarkUnfoldable()
		return false
	}
	id.SetType(sym.Type)
	if sym.Initialized && sym.FoldedValue != nil {
		id.SetFolded(sym.FoldedValue)
	} else {
		id.MarkUnfoldable()
	}
	return true
}

func (a *Analyzer) analyzeUnary(u *ast.Unary) bool {
	if !a.analyzeExpr(u.Operand) {
		u.SetType("Any")
		u.MarkUnfoldable()
		return false
	}
	operandType := u.Operand.Type()

	switch u.Operator {
	case "-":
		if !isNumeric(operandType) {
			a.report("operation-type-mismatch", u.Pos(), "Operator '-' requires a numeric operand, got '%s'", operandType)
			u.SetType("Any")
			u.MarkUnfoldable()
			return false
		}
		u.SetType(operandType)
		if u.Operand.Foldable() {
			switch v := u.Operand.FoldedValue().(type) {
			case int64:
				u.SetFolded(-v)
			case float64:
				u.SetFolded(-v)
			default:
				u.MarkUnfoldable()
			}
		} else {
			u.MarkUnfoldable()
		}
		return true
	case "!":
		if operandType != "Bool" {
			a.report("operation-type-mismatch", u.Pos(), "Operator '!' requires a Bool operand, got '%s'", operandType)
			u.SetType("Any")
			u.MarkUnfoldable()
			return false
		}
		u.SetType("Bool")
		if v, ok := u.Operand.FoldedValue().(bool); ok && u.Operand.Foldable() {
			u.SetFolded(!v)
		} else {
			u.MarkUnfoldable()
		}
		return true
	}
	return true
}

func (a *Analyzer) analyzePostfix(p *ast.Postfix) bool {
	if !a.analyzeExpr(p.Operand) {
		p.SetType("Any")
		p.MarkUnfoldable()
		return false
	}
	if p.Operand.Type() != "Int" {
		a.report("operation-type-mismatch", p.Pos(), "Postfix '!' requires an Int operand, got '%s'", p.Operand.Type())
		p.SetType("Any")
		p.MarkUnfoldable()
		return false
	}
	p.SetType("Int")

	if !p.Operand.Foldable() {
		p.MarkUnfoldable()
		return true
	}
	n, _ := p.Operand.FoldedValue().(int64)
	// Postfix factorial domain decision: only 0 <= n <= 20 folds (the
	// largest factorial an int64 can represent); outside that range the
	// node is left unfolded, not rejected (§9).
	if n < 0 || n > 20 {
		p.MarkUnfoldable()
		return true
	}
	result := int64(1)
	for i := int64(2); i <= n; i++ {
		result *= i
	}
	p.SetFolded(result)
	return true
}

func (a *Analyzer) analyzeCall(call *ast.FunctionCall) bool {
	ok := true
	for _, arg := range call.Args {
		if !a.analyzeExpr(arg.Value) {
			ok = false
		}
	}
	sym := a.table.Find(call.Callee.Name)
	if sym == nil {
		a.report("undeclared-variable", call.Callee.Pos(), "Undeclared function '%s'", call.Callee.Name)
		call.SetType("Any")
		call.MarkUnfoldable()
		return false
	}
	call.SetType(sym.Type)
	call.MarkUnfoldable() // calls are never compile-time constants
	return ok
}

func (a *Analyzer) analyzeBinary(b *ast.Binary) bool {
	leftOK := a.analyzeExpr(b.Left)
	rightOK := a.analyzeExpr(b.Right)
	if !leftOK || !rightOK {
		b.SetType("Any")
		b.MarkUnfoldable()
		return false
	}

	lt, rt := b.Left.Type(), b.Right.Type()

	switch b.Operator {
	case "+", "-", "*", "/", "%":
		if !isNumeric(lt) || !isNumeric(rt) {
			a.report("operation-type-mismatch", b.Pos(), "Operator '%s' requires numeric operands, got '%s' and '%s'", b.Operator, lt, rt)
			b.SetType("Any")
			b.MarkUnfoldable()
			return false
		}
		resultType := "Int"
		if lt == "Float" || rt == "Float" {
			resultType = "Float"
		}
		b.SetType(resultType)
		a.foldArithmetic(b, resultType)
		return true

	case "&&", "||":
		if lt != "Bool" || rt != "Bool" {
			a.report("operation-type-mismatch", b.Pos(), "Operator '%s' requires Bool operands, got '%s' and '%s'", b.Operator, lt, rt)
			b.SetType("Any")
			b.MarkUnfoldable()
			return false
		}
		b.SetType("Bool")
		if b.Left.Foldable() && b.Right.Foldable() {
			lv, _ := b.Left.FoldedValue().(bool)
			rv, _ := b.Right.FoldedValue().(bool)
			if b.Operator == "&&" {
				b.SetFolded(lv && rv)
			} else {
				b.SetFolded(lv || rv)
			}
		} else {
			b.MarkUnfoldable()
		}
		return true

	case "==", "!=":
		if lt != rt {
			a.report("operation-type-mismatch", b.Pos(), "Operator '%s' requires identical operand types, got '%s' and '%s'", b.Operator, lt, rt)
			b.SetType("Any")
			b.MarkUnfoldable()
			return false
		}
		b.SetType("Bool")
		if b.Left.Foldable() && b.Right.Foldable() {
			eq := b.Left.FoldedValue() == b.Right.FoldedValue()
			if b.Operator == "!=" {
				eq = !eq
			}
			b.SetFolded(eq)
		} else {
			b.MarkUnfoldable()
		}
		return true

	case "<", ">", "<=", ">=":
		if !isNumeric(lt) || !isNumeric(rt) {
			a.report("operation-type-mismatch", b.Pos(), "Operator '%s' requires numeric operands, got '%s' and '%s'", b.Operator, lt, rt)
			b.SetType("Any")
			b.MarkUnfoldable()
			return false
		}
		b.SetType("Bool")
		if b.Left.Foldable() && b.Right.Foldable() {
			lf := numericAsFloat(b.Left.FoldedValue())
			rf := numericAsFloat(b.Right.FoldedValue())
			var result bool
			switch b.Operator {
			case "<":
				result = lf < rf
			case ">":
				result = lf > rf
			case "<=":
				result = lf <= rf
			case ">=":
				result = lf >= rf
			}
			b.SetFolded(result)
		} else {
			b.MarkUnfoldable()
		}
		return true
	}
	return true
}

// foldArithmetic computes b's folded value when both operands are
// foldable. Division/modulo by zero leaves the node unfolded without a
// diagnostic (Open Question decision 2); integer arithmetic wraps using
// Go's native int64 semantics (Open Question decision 3).
func (a *Analyzer) foldArithmetic(b *ast.Binary, resultType string) {
	if !b.Left.Foldable() || !b.Right.Foldable() {
		b.MarkUnfoldable()
		return
	}

	if resultType == "Float" {
		lf, rf := numericAsFloat(b.Left.FoldedValue()), numericAsFloat(b.Right.FoldedValue())
		var result float64
		switch b.Operator {
		case "+":
			result = lf + rf
		case "-":
			result = lf - rf
		case "*":
			result = lf * rf
		case "/":
			if rf == 0 {
				b.MarkUnfoldable()
				return
			}
			result = lf / rf
		case "%":
			if rf == 0 {
				b.MarkUnfoldable()
				return
			}
			result = math.Mod(lf, rf)
		}
		b.SetFolded(result)
		return
	}

	li, _ := b.Left.FoldedValue().(int64)
	ri, _ := b.Right.FoldedValue().(int64)
	var result int64
	switch b.Operator {
	case "+":
		result = li + ri
	case "-":
		result = li - ri
	case "*":
		result = li * ri
	case "/":
		if ri == 0 {
			b.MarkUnfoldable()
			return
		}
		result = li / ri
	case "%":
		if ri == 0 {
			b.MarkUnfoldable()
			return
		}
		result = li % ri
	}
	b.SetFolded(result)
}

// analyzeAssignment implements §4.6's "Assignment handling": if the left
// side is a declaration, it is analyzed (registered) first; otherwise
// the existing symbol is resolved and checked for mutability.
func (a *Analyzer) analyzeAssignment(asn *ast.Assignment) bool {
	switch left := asn.Left.(type) {
	case *ast.VariableDeclaration:
		if !a.declare(left.Name.Name, left.TypeName.Name, true, left.Pos()) {
			return false
		}
		return a.finishAssignment(left.Name.Name, asn)
	case *ast.ConstantDeclaration:
		if !a.declare(left.Name.Name, left.TypeName.Name, false, left.Pos()) {
			return false
		}
		return a.finishAssignment(left.Name.Name, asn)
	case *ast.Identifier:
		sym := a.table.Find(left.Name)
		if sym == nil {
			a.report("undeclared-variable", left.Pos(), "Undeclared variable '%s'", left.Name)
			return false
		}
		if !sym.Mutable && sym.Initialized {
			a.report("immutable-modification", left.Pos(), "Cannot modify immutable symbol '%s'", left.Name)
			return false
		}
		left.SetType(sym.Type)
		return a.finishAssignment(left.Name, asn)
	default:
		return false
	}
}

func (a *Analyzer) finishAssignment(name string, asn *ast.Assignment) bool {
	sym := a.table.Find(name)
	rhsOK := a.analyzeExpr(asn.Right)
	if !rhsOK {
		asn.SetType("Any")
		asn.MarkUnfoldable()
		return false
	}
	if asn.Right.Type() != sym.Type {
		a.report("operation-type-mismatch", asn.Right.Pos(), "Cannot assign '%s' to '%s' typed '%s'", asn.Right.Type(), name, sym.Type)
		asn.SetType("Any")
		asn.MarkUnfoldable()
		return false
	}

	if asn.Right.Foldable() {
		sym.FoldedValue = asn.Right.FoldedValue()
	}
	sym.Initialized = true

	asn.SetType(sym.Type)
	if asn.Right.Foldable() {
		asn.SetFolded(asn.Right.FoldedValue())
	} else {
		asn.MarkUnfoldable()
	}
	return true
}

func isNumeric(t string) bool {
	return t == "Int" || t == "Float"
}

func numericAsFloat(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
