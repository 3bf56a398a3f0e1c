package cir

// StmtKind tags what a Stmt does. Only assignment and the implicit
// cast eval_assign may insert ahead of it are modeled; this IR has no
// control flow because initializer lowering never needs any.
type StmtKind int

const (
	StmtAssign StmtKind = iota
	StmtCast
)

// Stmt is one lowered instruction: IR_ASSIGN writing Expr into Target,
// or (StmtCast) a narrowing/widening conversion inserted ahead of an
// assignment by EvalAssign.
type Stmt struct {
	Kind   StmtKind
	Target Target
	Expr   *Expr
}

// Block is a basic block's worth of lowered code: a flat statement
// list plus the one bit of cross-cutting parser state that needs to
// live here rather than be threaded as a return value — the "has an
// expression been parsed but not yet attached to a target" flag,
// together with the expression itself.
//
// Label/hasLabel exist only so the block pool's release-time
// assertions (acquire must return something with neither a label nor
// a pending value) have something to check; this IR never actually
// branches to a block by label, but scratch blocks are drawn from the
// same free list as labeled ones would be in the full front end.
type Block struct {
	Code []Stmt

	HasInitValue bool
	PendingExpr  *Expr

	label    string
	hasLabel bool
}

// Emit appends a statement to the block's code.
func (b *Block) Emit(s Stmt) {
	b.Code = append(b.Code, s)
}

// Append concatenates other's code onto b, in order. It does not
// touch other's pending-value state; callers clear that separately
// via ClearPending once its value (if any) has been consumed.
func (b *Block) Append(other *Block) {
	b.Code = append(b.Code, other.Code...)
}

// SetPending records a parsed-but-not-yet-attached expression.
func (b *Block) SetPending(e *Expr) {
	b.PendingExpr = e
	b.HasInitValue = true
}

// ClearPending clears the pending-expression flag once it has either
// been attached to a target or explicitly discarded.
func (b *Block) ClearPending() {
	b.PendingExpr = nil
	b.HasInitValue = false
}

// ClearCode empties b's statement list without touching its pending
// value or label — used by the union walker to discard a prior
// iteration's scratch writes before trying the next designator, so
// that only the last one survives to be appended into the caller's
// values buffer.
func (b *Block) ClearCode() {
	b.Code = b.Code[:0]
}

// SetLabel/HasLabel exist for the block pool's release-time assertion
// only; initializer lowering never labels a scratch block.
func (b *Block) SetLabel(l string) { b.label = l; b.hasLabel = true }
func (b *Block) HasLabel() bool    { return b.hasLabel }

// reset empties a block back to its zero-code, zero-pending state, as
// release() needs to before pushing it back onto the free list.
func (b *Block) reset() {
	b.Code = b.Code[:0]
	b.PendingExpr = nil
	b.HasInitValue = false
	b.label = ""
	b.hasLabel = false
}
