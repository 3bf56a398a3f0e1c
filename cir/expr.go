// Package cir is a minimal IR substrate standing in for the front
// end's expression/statement representation and evaluator: enough of
// a Var/Expr/Block/Stmt family, an eval_assign, and a scratch-block
// pool to let package cinit lower initializers into something
// concrete. Its Expr family plays the role the teacher's Value
// interface (value.go: String/Sequence/Node/Error) plays for parsed
// PEG output: one small tagged variant per shape, not a visitor.
package cir

import (
	"fmt"

	"github.com/clarete/cinit/csym"
	"github.com/clarete/cinit/ctype"
)

// ExprKind tags the shape of an Expr, mirroring the four forms the
// spec allows an initializer expression to take: an immediate
// constant, a direct lvalue reference, an address-of expression, or a
// call.
type ExprKind int

const (
	ExprImm ExprKind = iota
	ExprLvalue
	ExprAddrOf
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprImm:
		return "imm"
	case ExprLvalue:
		return "lvalue"
	case ExprAddrOf:
		return "addrof"
	case ExprCall:
		return "call"
	default:
		return "?"
	}
}

// Expr is the result of parsing one initializer value. Only one of
// the kind-specific fields is meaningful at a time, selected by Kind.
type Expr struct {
	Kind ExprKind
	Type *ctype.Type

	// ExprImm
	ImmValue int64

	// ExprLvalue / ExprAddrOf: the symbol being referenced
	Sym *csym.Symbol

	// ExprCall
	Callee *csym.Symbol
	Args   []*Expr
}

func NewImm(t *ctype.Type, v int64) *Expr {
	return &Expr{Kind: ExprImm, Type: t, ImmValue: v}
}

func NewLvalue(t *ctype.Type, sym *csym.Symbol) *Expr {
	return &Expr{Kind: ExprLvalue, Type: t, Sym: sym}
}

func NewAddrOf(t *ctype.Type, sym *csym.Symbol) *Expr {
	return &Expr{Kind: ExprAddrOf, Type: t, Sym: sym}
}

func NewCall(t *ctype.Type, callee *csym.Symbol, args []*Expr) *Expr {
	return &Expr{Kind: ExprCall, Type: t, Callee: callee, Args: args}
}

// IsDirectSymbolRef reports whether e is a bare lvalue reference to
// sym (no arithmetic, no cast) — the shape the array walker looks for
// to recognize `char a[5] = "Hi"` style string-aggregate assignment,
// and the operand cexpr requires for unary `&`.
func (e *Expr) IsDirectSymbolRef() (*csym.Symbol, bool) {
	if e.Kind == ExprLvalue && e.Sym != nil {
		return e.Sym, true
	}
	return nil, false
}

func (e *Expr) String() string {
	switch e.Kind {
	case ExprImm:
		return fmt.Sprintf("%d", e.ImmValue)
	case ExprLvalue:
		return e.Sym.Name
	case ExprAddrOf:
		return "&" + e.Sym.Name
	case ExprCall:
		return e.Callee.Name + "(...)"
	default:
		return "?"
	}
}
