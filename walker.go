package cinit

import (
	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/ctok"
	"github.com/clarete/cinit/ctype"
)

// initializeObject is the top-of-object entry point: the caller
// (Initializer) has already confirmed either a `{` is next, or target
// is an array (which may instead open
// with a string literal). A braced object dispatches by kind at
// StateCurrent; an unbraced one can only be an array taking its
// string-literal or whole-array form.
func (l *Lowerer) initializeObject(block, values *cir.Block, target cir.Target) error {
	if l.Lex.Peek().Kind == ctok.LBrace {
		return l.initializeBraced(block, values, target, StateCurrent)
	}
	return l.initializeArray(block, values, target, StateMember)
}

// initializeMember recurses into one member/element: if it opens
// with its own `{`, it's handled the
// same as a top-level object; otherwise it's flattened into the
// enclosing initializer list, with ObjectState distinguishing whether
// this particular recursion was reached via an explicit designator
// (StateDesignator) or plain positional order (StateMember) — both
// disable comma-continuation's designator lookahead the same way, but
// keeping them distinct matches how the walker's caller actually
// reached this recursion.
func (l *Lowerer) initializeMember(block, values *cir.Block, target cir.Target, viaDesignator bool) error {
	if l.Lex.Peek().Kind == ctok.LBrace {
		return l.initializeBraced(block, values, target, StateCurrent)
	}

	state := StateMember
	if viaDesignator {
		state = StateDesignator
	}

	switch target.Type.Kind {
	case ctype.Struct:
		return l.initializeStruct(block, values, target, state)
	case ctype.Union:
		return l.initializeUnion(block, values, target, state)
	case ctype.Array:
		return l.initializeArray(block, values, target, state)
	default:
		expr, err := l.consumePending(block)
		if err != nil {
			return err
		}
		_, err = cir.EvalAssign(values, target, expr)
		return err
	}
}

// initializeBraced consumes an explicit `{ ... }` wrapping target's
// initializer, dispatching the interior at StateCurrent and then
// consuming the optional trailing comma and the closing brace.
func (l *Lowerer) initializeBraced(block, values *cir.Block, target cir.Target, state ObjectState) error {
	if _, err := l.Lex.Consume(ctok.LBrace); err != nil {
		return err
	}

	var err error
	switch target.Type.Kind {
	case ctype.Struct:
		err = l.initializeStruct(block, values, target, state)
	case ctype.Union:
		err = l.initializeUnion(block, values, target, state)
	case ctype.Array:
		err = l.initializeArray(block, values, target, state)
	default:
		// A scalar leaf wrapped in its own redundant braces, e.g.
		// `int x = {5};` — legal in C, and handled the same as the
		// unbraced case once the brace itself is out of the way.
		var expr *cir.Expr
		expr, err = l.consumePending(block)
		if err == nil {
			_, err = cir.EvalAssign(values, target, expr)
		}
	}
	if err != nil {
		return err
	}

	if l.Lex.Peek().Kind == ctok.Comma {
		l.Lex.Next()
	}
	_, err = l.Lex.Consume(ctok.RBrace)
	return err
}

// tryWholeAggregateAssign implements initialize_struct_or_union's
// shared pre-step: with no designator or brace immediately ahead, an
// already-unconsumed expression might be a whole-object copy from a
// compatible sibling (`struct Point q = p;`) rather than the first
// member's value. It parses one expression into block's pending slot
// and either commits it as a single whole-object assignment (handled
// == true) or leaves it pending for the caller's first member to pick
// up via consumePending.
func (l *Lowerer) tryWholeAggregateAssign(block, values *cir.Block, target cir.Target) (bool, error) {
	if block.HasInitValue {
		return false, nil
	}
	switch l.Lex.Peek().Kind {
	case ctok.Dot, ctok.LBrace, ctok.LBracket:
		return false, nil
	}

	if err := l.readInitializerElement(block); err != nil {
		return false, err
	}

	if ctype.IsCompatibleUnqualified(block.PendingExpr.Type, target.Type) {
		expr := block.PendingExpr
		block.ClearPending()
		if _, err := cir.EvalAssign(values, target, expr); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// nextSiblingElement reports whether a `,` at the current cursor
// continues iteration at state, and if so consumes it. A `,` followed
// by `}` always ends iteration; a `,` followed by `.` ends it too
// unless state is StateCurrent, since a designator appearing there
// belongs to the brace this level owns, not to a flattened recursion
// that has no brace of its own to scope it.
func (l *Lowerer) nextSiblingElement(state ObjectState) bool {
	if l.Lex.Peek().Kind != ctok.Comma {
		return false
	}
	after := l.Lex.PeekN(1).Kind
	if after == ctok.RBrace {
		return false
	}
	if after == ctok.Dot && state != StateCurrent {
		return false
	}
	l.Lex.Next()
	return true
}

// memberTargetFor builds the Target a struct/union member recurses
// into: parent's offset shifted by the member's own, retargeted to the
// member's type, with the bit-field window attached when applicable.
func memberTargetFor(parent cir.Target, m ctype.Member) cir.Target {
	t := parent.WithOffset(parent.Offset + m.Offset).WithType(m.Type)
	if m.IsBitField() {
		t = t.WithBitField(m.FieldOffset, m.FieldWidth)
	}
	return t
}
