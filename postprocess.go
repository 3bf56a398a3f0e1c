package cinit

import (
	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/csym"
	"github.com/clarete/cinit/ctype"
)

// PostProcess turns a root symbol's unordered values buffer into a
// clean, in-order, fully-padded assignment list: a stable sort
// by byte offset and then bit offset, a dedup pass dropping any earlier write that shares
// its exact (offset, field_offset) slot with a later one (designators
// let a later element overwrite an earlier one targeting the same
// spot — "last wins"), and then a left-to-right pass that interpolates
// zero-fill for every gap it finds, including closing out a partially
// written bit-field storage unit, and appends trailing padding out to
// the object's full size.
func PostProcess(l *Lowerer, values *cir.Block, rootType *ctype.Type) (*cir.Block, error) {
	entries := sortAndDedup(values.Code)
	out := cir.AcquireBlock()
	rootSym := l.rootSym
	ok := false
	defer func() {
		if !ok {
			cir.ReleaseBlock(out)
		}
	}()

	cursorOffset := 0
	cursorFieldOffset := 0
	unitSize := 0

	for _, e := range entries {
		fieldOffset := e.Target.FieldOffset

		if cursorOffset < e.Target.Offset {
			if cursorFieldOffset > 0 {
				if err := l.closeBitFieldUnit(out, rootSym, cursorOffset, cursorFieldOffset, unitSize); err != nil {
					return nil, err
				}
				cursorOffset += unitSize
				cursorFieldOffset, unitSize = 0, 0
			}
			if cursorOffset < e.Target.Offset {
				gap := cir.Target{Symbol: rootSym, Offset: cursorOffset}
				if err := l.zeroInitializeBytes(out, gap, e.Target.Offset-cursorOffset); err != nil {
					return nil, err
				}
			}
			cursorOffset = e.Target.Offset
		} else if cursorFieldOffset < fieldOffset {
			gap := cir.Target{Symbol: rootSym, Offset: cursorOffset, Type: e.Target.Type, FieldOffset: cursorFieldOffset, FieldWidth: fieldOffset - cursorFieldOffset}
			if _, err := cir.EvalAssign(out, gap, cir.NewImm(e.Target.Type, 0)); err != nil {
				return nil, err
			}
		}

		out.Emit(e)

		if e.Target.IsBitField() {
			if sz := ctype.SizeOf(e.Target.Type); sz > unitSize {
				unitSize = sz
			}
			cursorFieldOffset = fieldOffset + e.Target.FieldWidth
			if cursorFieldOffset >= unitSize*8 {
				cursorOffset += unitSize
				cursorFieldOffset, unitSize = 0, 0
			}
		} else {
			cursorOffset += ctype.SizeOf(e.Target.Type)
			cursorFieldOffset, unitSize = 0, 0
		}
	}

	if cursorFieldOffset > 0 {
		if err := l.closeBitFieldUnit(out, rootSym, cursorOffset, cursorFieldOffset, unitSize); err != nil {
			return nil, err
		}
		cursorOffset += unitSize
	}

	total := ctype.SizeOf(rootType)
	if cursorOffset < total {
		gap := cir.Target{Symbol: rootSym, Offset: cursorOffset}
		if err := l.zeroInitializeBytes(out, gap, total-cursorOffset); err != nil {
			return nil, err
		}
	}

	ok = true
	return out, nil
}

// closeBitFieldUnit zero-fills the remaining bits of a partially
// written bit-field storage unit, from cursorFieldOffset up to the
// unit's own width.
func (l *Lowerer) closeBitFieldUnit(out *cir.Block, sym *csym.Symbol, offset, cursorFieldOffset, unitSize int) error {
	unitType := scalarOfWidth(unitSize)
	target := cir.Target{
		Symbol:      sym,
		Offset:      offset,
		Type:        unitType,
		FieldOffset: cursorFieldOffset,
		FieldWidth:  unitSize*8 - cursorFieldOffset,
	}
	_, err := cir.EvalAssign(out, target, cir.NewImm(unitType, 0))
	return err
}

// scalarOfWidth returns the integer scalar type of the given byte
// width, matching the widths zeroInitializeBytes picks from.
func scalarOfWidth(size int) *ctype.Type {
	switch size {
	case 8:
		return ctype.NewScalar(ctype.Long)
	case 4:
		return ctype.NewScalar(ctype.Int)
	case 2:
		return ctype.NewScalar(ctype.Short)
	default:
		return ctype.NewScalar(ctype.Char)
	}
}

// sortAndDedup stable-sorts stmts by target offset and then bit
// offset within it (insertion sort:
// the values buffer for one initializer is always small) and then
// drops, in a single left-to-right pass, any entry that shares its
// exact (offset, field_offset) slot with the entry immediately
// following it — the later entry, having been appended to the values
// buffer more recently, is the one whose designator fired last.
func sortAndDedup(stmts []cir.Stmt) []cir.Stmt {
	sorted := make([]cir.Stmt, 0, len(stmts))
	for _, s := range stmts {
		j := len(sorted)
		for j > 0 {
			prev := sorted[j-1].Target
			if prev.Offset < s.Target.Offset || (prev.Offset == s.Target.Offset && prev.FieldOffset <= s.Target.FieldOffset) {
				break
			}
			j--
		}
		sorted = append(sorted, cir.Stmt{})
		copy(sorted[j+1:], sorted[j:])
		sorted[j] = s
	}

	out := make([]cir.Stmt, 0, len(sorted))
	for i, s := range sorted {
		if i+1 < len(sorted) && s.Target.SameSlot(sorted[i+1].Target) {
			continue
		}
		out = append(out, s)
	}
	return out
}
