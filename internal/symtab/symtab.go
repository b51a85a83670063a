// Package symtab implements the scoped symbol table described in §4.5 of
// the specification: a single head-insert linked list annotated with a
// namespace depth, rather than one table per scope. Symbols from an
// exited namespace are spliced out of the list entirely, not merely
// shadowed.
package symtab

import "github.com/opuslang/opusc/internal/token"

// Symbol is one declared name: its kind (var/let/func/param), declared
// or inferred type, and the namespace depth it was declared at.
// Initialized guards the assign-once rule for immutable bindings (§3);
// FoldedValue carries a compile-time constant once one has been folded
// into it.
type Symbol struct {
	Name        string
	Kind        string // "var", "let", "func", "param"
	Type        string
	Mutable     bool
	Namespace   int
	Pos         token.Position
	Initialized bool
	FoldedValue any

	next *Symbol // previous head, forming the linked list
}

// Table is a head-insert linked list of symbols plus the current
// namespace depth. Namespace 0 is the global/file scope.
type Table struct {
	head      *Symbol
	namespace int
}

// New returns an empty table at namespace 0.
func New() *Table {
	return &Table{}
}

// Namespace returns the current namespace depth.
func (t *Table) Namespace() int {
	return t.namespace
}

// EnterNamespace increments the namespace counter, opening a new scope.
func (t *Table) EnterNamespace() {
	t.namespace++
}

// ExitNamespace splices every symbol declared at the current namespace
// out of the list and decrements the counter. At namespace 0 it returns
// at once: the counter stays at 0 and global symbols are not removed.
func (t *Table) ExitNamespace() {
	if t.namespace == 0 {
		return
	}
	for t.head != nil && t.head.Namespace == t.namespace {
		t.head = t.head.next
	}
	t.namespace--
}

// Add inserts a new symbol at the head of the list, in the current
// namespace. It does not check for redeclaration; callers that need
// redeclaration diagnostics call IsDeclaredAtCurrent first (§4.6).
func (t *Table) Add(sym Symbol) {
	sym.Namespace = t.namespace
	sym.next = t.head
	t.head = &sym
}

// LookupVisible walks the list head-first and returns the first symbol
// named name whose namespace is <= the current namespace — i.e. any
// symbol visible from here, whether declared in this scope or an
// enclosing one. Because ExitNamespace removes symbols as scopes close,
// the list only ever contains symbols that are still in scope somewhere
// along the current nesting path, so this single comparison is enough to
// find the innermost visible declaration (the head-insert order puts
// inner-scope symbols before outer ones).
func (t *Table) LookupVisible(name string) (Symbol, bool) {
	for s := t.head; s != nil; s = s.next {
		if s.Name == name && s.Namespace <= t.namespace {
			return *s, true
		}
	}
	return Symbol{}, false
}

// Find returns the live symbol node visible under the same rule as
// LookupVisible, for callers that need to mutate it in place (recording
// initialization or a newly folded value) rather than work from a copy.
func (t *Table) Find(name string) *Symbol {
	for s := t.head; s != nil; s = s.next {
		if s.Name == name && s.Namespace <= t.namespace {
			return s
		}
	}
	return nil
}

// IsDeclaredAtCurrent reports whether name is already declared exactly
// at the current namespace (strict equality, not <=) — used to detect
// redeclaration within the same scope while still permitting shadowing
// of an outer declaration.
func (t *Table) IsDeclaredAtCurrent(name string) bool {
	for s := t.head; s != nil; s = s.next {
		if s.Namespace != t.namespace {
			continue
		}
		if s.Name == name {
			return true
		}
	}
	return false
}
