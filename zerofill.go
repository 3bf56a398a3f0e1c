package cinit

import (
	"fmt"

	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/ctype"
)

// ZeroInitialize writes 0 into the whole of target. For structs and
// unions it retargets to an array of long (when the size divides
// evenly) or char, then recurses into the array branch; for arrays it
// recurses per element; for scalars, pointers and bit-fields it emits
// a single zero assignment directly (a bit-field's Target already
// carries the FieldOffset/FieldWidth window to preserve, so no
// special-casing is needed: the window rides along on target).
//
// This is the type-aware whole-object primitive. It has no call site
// within this package's own algorithm — every gap the post-processor
// finds is a raw, typeless byte range, so it always reaches for
// zeroInitializeBytes instead — but it's what a caller with no
// initializer text at all (the declarator parser, out of scope here)
// would use to zero-fill an object from scratch.
func (l *Lowerer) ZeroInitialize(values *cir.Block, target cir.Target) error {
	switch target.Type.Kind {
	case ctype.Struct, ctype.Union:
		size := ctype.SizeOf(target.Type)
		var arr *ctype.Type
		if size > 0 && size%l.Cfg.LongWidth == 0 {
			arr = ctype.NewArray(ctype.NewScalar(ctype.Long), size/l.Cfg.LongWidth)
		} else {
			arr = ctype.NewArray(ctype.NewScalar(ctype.Char), size)
		}
		return l.ZeroInitialize(values, target.WithType(arr))

	case ctype.Array:
		if ctype.IsIncompleteArray(target.Type) {
			return &FlexibleArrayInitError{Symbol: target.Symbol.Name}
		}
		elem := ctype.TypeNext(target.Type)
		n := ctype.TypeArrayLen(target.Type)
		elemWidth := ctype.SizeOf(elem)
		for i := 0; i < n; i++ {
			elemTarget := target.WithOffset(target.Offset + i*elemWidth).WithType(elem)
			if err := l.ZeroInitialize(values, elemTarget); err != nil {
				return err
			}
		}
		return nil

	case ctype.Function, ctype.Void:
		return &UnsupportedZeroInitError{Kind: target.Type.Kind.String()}

	default:
		_, err := cir.EvalAssign(values, target, cir.NewImm(target.Type, 0))
		return err
	}
}

// zeroInitializeBytes greedily emits 8/4/2/1-byte zero writes against
// a sequence of synthetic scalar types (long, int, short, char),
// preferring the largest size that both fits in the remaining range
// and evenly divides the current offset, starting from target's
// offset. It's what the post-processor uses to interpolate padding:
// gaps between recorded assignments have no declared type of their
// own, only a byte count.
func (l *Lowerer) zeroInitializeBytes(values *cir.Block, target cir.Target, n int) error {
	widths := [...]struct {
		size int
		kind ctype.Kind
	}{
		{l.Cfg.LongWidth, ctype.Long},
		{l.Cfg.IntWidth, ctype.Int},
		{l.Cfg.ShortWidth, ctype.Short},
		{l.Cfg.CharWidth, ctype.Char},
	}

	offset := target.Offset
	for n > 0 {
		placed := false
		for _, w := range widths {
			if w.size <= n && offset%w.size == 0 {
				t := ctype.NewScalar(w.kind)
				chunk := cir.Target{Symbol: target.Symbol, Offset: offset, Type: t}
				if _, err := cir.EvalAssign(values, chunk, cir.NewImm(t, 0)); err != nil {
					return err
				}
				offset += w.size
				n -= w.size
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("cinit: cannot zero-fill %d remaining byte(s) at offset %d", n, offset)
		}
	}
	return nil
}
