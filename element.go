package cinit

import (
	"github.com/clarete/cinit/cexpr"
	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/csym"
	"github.com/clarete/cinit/ctype"
)

// readInitializerElement parses exactly one assignment expression and
// records it as block's pending value (block.PendingExpr,
// block.HasInitValue) — an expression parsed but not yet attached to
// a target. Callers consume it via consumePending.
//
// It rejects void, and for symbols with static storage
// (l.rootSym.StaticStorage()) enforces that the expression is
// load-time computable: an immediate, an address of a symbol with
// non-LINK_NONE linkage, or a direct reference to an array or
// function. Otherwise, a call result is spilled into a fresh
// temporary — assigned on block directly, ahead of whatever the
// post-processor eventually appends — so the values buffer never
// holds a temporary-producing statement the reordering pass could
// execute out of order.
func (l *Lowerer) readInitializerElement(block *cir.Block) error {
	expr, err := cexpr.NewParser(l.Lex, l.Syms).AssignmentExpression()
	if err != nil {
		return err
	}
	if expr.Type != nil && ctype.IsVoid(expr.Type) {
		return &VoidInitializerError{Symbol: l.rootSym.Name}
	}

	if l.rootSym.StaticStorage() {
		if !isLoadtimeConstant(expr) {
			return &NonLoadtimeConstantError{Symbol: l.rootSym.Name}
		}
	} else if expr.Kind == cir.ExprCall {
		expr = l.spillCall(block, expr)
	}

	block.SetPending(expr)
	return nil
}

// spillCall materializes call's result into a fresh temporary,
// emitting the call's assignment directly onto block (never into a
// values buffer, which may be reordered), and returns an lvalue
// expression referencing that temporary in call's place.
func (l *Lowerer) spillCall(block *cir.Block, call *cir.Expr) *cir.Expr {
	tmp := l.Ctx.CreateVar(call.Type)
	tmpSym := &csym.Symbol{Name: tmp.Name(), Type: tmp.Type, Linkage: csym.LinkNone}
	block.Emit(cir.Stmt{
		Kind:   cir.StmtAssign,
		Target: cir.Target{Symbol: tmpSym, Type: tmp.Type},
		Expr:   call,
	})
	return cir.NewLvalue(tmp.Type, tmpSym)
}

// isLoadtimeConstant reports whether expr is one of the three shapes
// a static-storage initializer is allowed to take: an immediate, the
// address of a symbol whose own linkage isn't LINK_NONE, or a direct
// reference to an array or function symbol (arrays/functions decay to
// their own address, which is load-time-known).
func isLoadtimeConstant(expr *cir.Expr) bool {
	switch expr.Kind {
	case cir.ExprImm:
		return true
	case cir.ExprAddrOf:
		return expr.Sym != nil && expr.Sym.StaticStorage()
	case cir.ExprLvalue:
		return expr.Sym != nil && (ctype.IsArray(expr.Sym.Type) || ctype.IsFunction(expr.Sym.Type))
	default:
		return false
	}
}

// consumePending returns block's pending expression, parsing one if
// none is already waiting, and clears the flag. This is the one-bit
// lookahead mechanism in action: a caller one level up (e.g.
// initializeStructOrUnion, deciding between a whole-aggregate
// assignment and member-by-member initialization) may have already
// parsed and stashed the value; if so, this reuses it instead of
// parsing again.
func (l *Lowerer) consumePending(block *cir.Block) (*cir.Expr, error) {
	if !block.HasInitValue {
		if err := l.readInitializerElement(block); err != nil {
			return nil, err
		}
	}
	expr := block.PendingExpr
	block.ClearPending()
	return expr, nil
}
