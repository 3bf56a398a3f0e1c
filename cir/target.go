package cir

import "github.com/clarete/cinit/csym"
import "github.com/clarete/cinit/ctype"

// Target is the tuple (symbol, offset, type, field_offset,
// field_width) every assignment statement writes into. Targets
// produced by this package are always direct: an lvalue in storage,
// never an indirection through a pointer.
type Target struct {
	Symbol      *csym.Symbol
	Offset      int
	Type        *ctype.Type
	FieldOffset int
	FieldWidth  int
}

func (t Target) IsBitField() bool { return t.FieldWidth > 0 }

// WithOffset returns a copy of t pointed at a different byte offset,
// keeping everything else — used heavily by the array walker, which
// recomputes target.offset = initial + i*element_width on every
// iteration without disturbing the rest of the target.
func (t Target) WithOffset(offset int) Target {
	t.Offset = offset
	return t
}

// WithType returns a copy of t retargeted at a different (narrower)
// type at the same offset, used when recursing into a member/element.
func (t Target) WithType(typ *ctype.Type) Target {
	t.Type = typ
	t.FieldOffset = 0
	t.FieldWidth = 0
	return t
}

// WithBitField returns a copy of t narrowed to a bit window within its
// current type.
func (t Target) WithBitField(fieldOffset, fieldWidth int) Target {
	t.FieldOffset = fieldOffset
	t.FieldWidth = fieldWidth
	return t
}

// SameSlot reports whether a and b address the same storage, comparing
// (offset, field_offset) only: used by the post-processor's dedup
// pass. The struct walker's anonymous-union skip applies the same
// comparison to ctype.Member records directly.
func (t Target) SameSlot(o Target) bool {
	return t.Offset == o.Offset && t.FieldOffset == o.FieldOffset
}
