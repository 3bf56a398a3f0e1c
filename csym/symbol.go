// Package csym is a minimal stand-in for the front-end's symbol
// table: just enough of a Symbol record and its linkage to let the
// element reader in package cinit decide whether an initializer must
// be load-time constant.
package csym

import "github.com/clarete/cinit/ctype"

// Linkage mirrors the front-end's LINK_NONE/LINK_INTERNAL/LINK_EXTERNAL
// distinction. Only "is it LINK_NONE or not" matters to the
// initializer lowering, but all three are modeled for realism.
type Linkage int

const (
	LinkNone Linkage = iota
	LinkInternal
	LinkExternal
)

func (l Linkage) String() string {
	switch l {
	case LinkNone:
		return "none"
	case LinkInternal:
		return "internal"
	case LinkExternal:
		return "external"
	default:
		return "?"
	}
}

// Symbol is an object being initialized, or one referenced from
// within an initializer expression (another variable, a function, a
// string literal).
type Symbol struct {
	Name    string
	Type    *ctype.Type
	Linkage Linkage

	// Literal marks a symbol synthesized for a string literal: its
	// Type is always an array of char, and it's never assigned to
	// directly, only referenced.
	Literal bool
}

// StaticStorage reports whether sym requires a load-time-constant
// initializer: anything that isn't purely local (LINK_NONE) needs an
// initializer the loader can materialize without running code.
func (s *Symbol) StaticStorage() bool {
	return s.Linkage != LinkNone
}

// Table is a tiny named-symbol table used by cexpr to resolve
// identifiers encountered inside initializer expressions.
type Table struct {
	entries map[string]*Symbol
}

func NewTable() *Table {
	return &Table{entries: map[string]*Symbol{}}
}

func (t *Table) Define(sym *Symbol) {
	t.entries[sym.Name] = sym
}

func (t *Table) Lookup(name string) (*Symbol, bool) {
	sym, ok := t.entries[name]
	return sym, ok
}
