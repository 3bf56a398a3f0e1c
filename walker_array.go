package cinit

import (
	"errors"

	"github.com/clarete/cinit/cexpr"
	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/ctok"
	"github.com/clarete/cinit/ctype"
)

// initializeArray walks an array's elements, honoring `[n]`
// designators and tracking the high-water element index so a
// flexible (incomplete) array can have its declared length completed
// once initialization finishes.
//
// Before iterating elements it accepts the string-literal special
// case: a char array may be assigned directly from a string literal
// (`char s[5] = "Hi"`), which initializes the array as a whole rather
// than element by element — the remaining bytes, if any, are left for
// the post-processor's padding pass to zero-fill.
func (l *Lowerer) initializeArray(block, values *cir.Block, target cir.Target, state ObjectState) error {
	elemType := ctype.TypeNext(target.Type)

	if !block.HasInitValue {
		switch l.Lex.Peek().Kind {
		case ctok.Dot, ctok.LBrace, ctok.LBracket:
			// fall through to elementwise iteration below
		default:
			if err := l.readInitializerElement(block); err != nil {
				return err
			}
			if ctype.IsChar(elemType) {
				if sym, ok := block.PendingExpr.IsDirectSymbolRef(); ok && sym.Literal && ctype.IsArray(sym.Type) {
					expr := block.PendingExpr
					block.ClearPending()
					// Narrow the target to the literal's own length
					// rather than the full destination array: a
					// shorter literal (`char s[5] = "Hi"`) only
					// covers bytes [0,3), and the post-processor
					// zero-fills the rest exactly as it would any
					// other unwritten gap.
					_, err := cir.EvalAssign(values, target.WithType(sym.Type), expr)
					return err
				}
			}
			// Not a whole-array string assignment: the parsed
			// expression stays pending and is picked up as element
			// 0's value by the loop below.
		}
	}

	elemWidth := ctype.SizeOf(elemType)
	initial := target.Offset
	knownLength := !ctype.IsIncompleteArray(target.Type)
	count := ctype.TypeArrayLen(target.Type)

	i := 0
	high := 0
	for {
		viaDesignator := false
		if l.Lex.Peek().Kind == ctok.LBracket {
			l.Lex.Next()
			idx, err := cexpr.NewParser(l.Lex, l.Syms).ConstantExpression()
			if err != nil {
				var nonInt *cexpr.NonIntegerConstantError
				if errors.As(err, &nonInt) {
					return &NonIntegerArrayIndexError{Symbol: l.rootSym.Name}
				}
				return err
			}
			if _, err := l.Lex.Consume(ctok.RBracket); err != nil {
				return err
			}
			if l.Lex.Peek().Kind == ctok.Equals {
				l.Lex.Next()
			}
			i = idx
			viaDesignator = true
		}

		elemTarget := target.WithOffset(initial + i*elemWidth).WithType(elemType)
		if err := l.initializeMember(block, values, elemTarget, viaDesignator); err != nil {
			return err
		}
		i++
		if i > high {
			high = i
		}

		cont, nextIsDesignator := l.hasNextArrayElement(state)
		if !cont {
			break
		}
		if knownLength && !nextIsDesignator && high >= count {
			break
		}
		l.Lex.Next()
	}

	if !knownLength {
		ctype.SetArrayLength(target.Type, high)
	}
	return nil
}

// hasNextArrayElement reports whether a `,` at the current cursor
// continues array iteration, and whether the element that follows is
// itself introduced by a `[n]` designator. A `,` followed by `[` only
// belongs to this array when state is StateCurrent — this array owns
// the brace the designator is scoped to; in a flattened (brace-less)
// recursion, that designator must belong to an enclosing array
// instead, so iteration stops here without consuming the comma.
func (l *Lowerer) hasNextArrayElement(state ObjectState) (bool, bool) {
	if l.Lex.Peek().Kind != ctok.Comma {
		return false, false
	}
	switch l.Lex.PeekN(1).Kind {
	case ctok.RBrace, ctok.Dot:
		return false, false
	case ctok.LBracket:
		return state == StateCurrent, state == StateCurrent
	default:
		return true, false
	}
}
