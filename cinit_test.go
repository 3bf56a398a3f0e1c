package cinit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/csym"
	"github.com/clarete/cinit/ctok"
	"github.com/clarete/cinit/ctype"
)

// lower runs the full Initializer pipeline over src against sym and
// returns the resulting statement list.
func lower(t *testing.T, sym *csym.Symbol, src string) []cir.Stmt {
	t.Helper()
	lex, err := ctok.NewLexer(src)
	require.NoError(t, err)

	l := NewLowerer(cir.NewContext(), lex, csym.NewTable(), nil)
	block, err := l.Initializer(sym, &cir.Block{})
	require.NoError(t, err)
	return block.Code
}

func intType() *ctype.Type  { return ctype.NewScalar(ctype.Int) }
func charType() *ctype.Type { return ctype.NewScalar(ctype.Char) }

func TestInitializerScalar(t *testing.T) {
	sym := &csym.Symbol{Name: "x", Type: intType()}
	code := lower(t, sym, "5")

	require.Len(t, code, 1)
	assert.Equal(t, cir.StmtAssign, code[0].Kind)
	assert.Equal(t, 0, code[0].Target.Offset)
	assert.Equal(t, cir.ExprImm, code[0].Expr.Kind)
	assert.EqualValues(t, 5, code[0].Expr.ImmValue)
}

func TestInitializerArrayPartialLeavesTrailingZeroFill(t *testing.T) {
	sym := &csym.Symbol{Name: "a", Type: ctype.NewArray(intType(), 4)}
	code := lower(t, sym, "{1, 2}")

	require.Len(t, code, 3)
	assert.Equal(t, 0, code[0].Target.Offset)
	assert.EqualValues(t, 1, code[0].Expr.ImmValue)
	assert.Equal(t, 4, code[1].Target.Offset)
	assert.EqualValues(t, 2, code[1].Expr.ImmValue)

	// Trailing padding for indices 2 and 3 (bytes 8..16), greedily as
	// a single 8-byte long write since CharWidth..LongWidth all divide it.
	assert.Equal(t, 8, code[2].Target.Offset)
	assert.Equal(t, ctype.Long, code[2].Target.Type.Kind)
	assert.EqualValues(t, 0, code[2].Expr.ImmValue)
}

func TestInitializerStringLiteralIsAWholeArrayAssignment(t *testing.T) {
	sym := &csym.Symbol{Name: "s", Type: ctype.NewArray(charType(), 5)}
	code := lower(t, sym, `"Hi"`)

	// The string copy covers only the literal's own 3 bytes ("Hi" +
	// NUL); the remaining 2 bytes of the 5-byte destination are left
	// for the post-processor to zero-fill, one char write per byte
	// since offset 3 isn't 2-byte aligned.
	require.Len(t, code, 3)
	assert.Equal(t, 0, code[0].Target.Offset)
	assert.Equal(t, ctype.Array, code[0].Target.Type.Kind)
	assert.Equal(t, 3, code[0].Target.Type.Length)
	sym0, ok := code[0].Expr.IsDirectSymbolRef()
	require.True(t, ok)
	assert.True(t, sym0.Literal)
	assert.Equal(t, 3, sym0.Type.Length) // "Hi" + NUL

	assert.Equal(t, 3, code[1].Target.Offset)
	assert.Equal(t, ctype.Char, code[1].Target.Type.Kind)
	assert.EqualValues(t, 0, code[1].Expr.ImmValue)

	assert.Equal(t, 4, code[2].Target.Offset)
	assert.Equal(t, ctype.Char, code[2].Target.Type.Kind)
	assert.EqualValues(t, 0, code[2].Expr.ImmValue)
}

func pointMembers() []ctype.Member {
	return []ctype.Member{
		{Name: "x", Type: intType(), Offset: 0},
		{Name: "y", Type: intType(), Offset: 4},
	}
}

func TestInitializerDesignatedStructLeavesGapZeroed(t *testing.T) {
	pointType := ctype.NewAggregate(ctype.Struct, "Point", pointMembers())
	sym := &csym.Symbol{Name: "p", Type: pointType}
	code := lower(t, sym, "{.y = 5}")

	require.Len(t, code, 2)
	// Gap for x (offset 0, 4 bytes) comes first since the post-processor
	// walks assignments in ascending offset order.
	assert.Equal(t, 0, code[0].Target.Offset)
	assert.EqualValues(t, 0, code[0].Expr.ImmValue)
	assert.Equal(t, 4, code[1].Target.Offset)
	assert.EqualValues(t, 5, code[1].Expr.ImmValue)
}

func TestInitializerUnionLastDesignatorWins(t *testing.T) {
	unionType := ctype.NewAggregate(ctype.Union, "U", []ctype.Member{
		{Name: "i", Type: intType(), Offset: 0},
		{Name: "c", Type: charType(), Offset: 0},
	})
	sym := &csym.Symbol{Name: "u", Type: unionType}
	code := lower(t, sym, "{.i = 1, .c = 2}")

	// Only the last designated member (.c) survives; the rest of the
	// union's storage (bytes [1,4), the size of the widest member)
	// is zero-filled by the post-processor, split into a char then a
	// short write since offset 1 isn't 4-byte (or even 2-byte) aligned.
	require.Len(t, code, 3)
	assert.Equal(t, ctype.Char, code[0].Target.Type.Kind)
	assert.Equal(t, 0, code[0].Target.Offset)
	assert.EqualValues(t, 2, code[0].Expr.ImmValue)

	assert.Equal(t, 1, code[1].Target.Offset)
	assert.Equal(t, ctype.Char, code[1].Target.Type.Kind)
	assert.EqualValues(t, 0, code[1].Expr.ImmValue)

	assert.Equal(t, 2, code[2].Target.Offset)
	assert.Equal(t, ctype.Short, code[2].Target.Type.Kind)
	assert.EqualValues(t, 0, code[2].Expr.ImmValue)
}

func bitfieldStruct() *ctype.Type {
	return ctype.NewAggregate(ctype.Struct, "Flags", []ctype.Member{
		{Name: "a", Type: intType(), Offset: 0, FieldOffset: 0, FieldWidth: 3},
		{Name: "b", Type: intType(), Offset: 0, FieldOffset: 3, FieldWidth: 5},
	})
}

func TestInitializerBitFieldClosesUnitWithRemainderZeroed(t *testing.T) {
	sym := &csym.Symbol{Name: "f", Type: bitfieldStruct()}
	code := lower(t, sym, "{.a = 1}")

	require.Len(t, code, 2)
	assert.True(t, code[0].Target.IsBitField())
	assert.EqualValues(t, 1, code[0].Expr.ImmValue)

	// b (bits [3,8)) was never written; the post-processor closes the
	// unit by zeroing the rest of it rather than leaving it untouched.
	closing := code[1]
	assert.True(t, closing.Target.IsBitField())
	assert.Equal(t, 3, closing.Target.FieldOffset)
	assert.EqualValues(t, 0, closing.Expr.ImmValue)
}

func TestInitializerFlexibleArraySetsHighWaterLength(t *testing.T) {
	sym := &csym.Symbol{Name: "a", Type: ctype.NewArray(intType(), ctype.FlexibleLength)}
	code := lower(t, sym, "{[3] = 7, 1}")

	assert.Equal(t, 5, sym.Type.Length)

	// Indices 0-2 were never written and are zero-filled ahead of the
	// two real assignments: bytes [0,8) as one long write, [8,12) as
	// one int write, then index 3 and index 4 themselves.
	require.Len(t, code, 4)
	assert.Equal(t, 0, code[0].Target.Offset)
	assert.Equal(t, ctype.Long, code[0].Target.Type.Kind)
	assert.EqualValues(t, 0, code[0].Expr.ImmValue)

	assert.Equal(t, 8, code[1].Target.Offset)
	assert.Equal(t, ctype.Int, code[1].Target.Type.Kind)
	assert.EqualValues(t, 0, code[1].Expr.ImmValue)

	assert.Equal(t, 12, code[2].Target.Offset) // index 3
	assert.EqualValues(t, 7, code[2].Expr.ImmValue)
	assert.Equal(t, 16, code[3].Target.Offset) // index 4
	assert.EqualValues(t, 1, code[3].Expr.ImmValue)
}

func TestInitializerRejectsNonLoadtimeConstantForStaticStorage(t *testing.T) {
	lex, err := ctok.NewLexer("x")
	require.NoError(t, err)
	syms := csym.NewTable()
	syms.Define(&csym.Symbol{Name: "x", Type: intType(), Linkage: csym.LinkNone})

	sym := &csym.Symbol{Name: "g", Type: intType(), Linkage: csym.LinkExternal}
	l := NewLowerer(cir.NewContext(), lex, syms, nil)
	_, err = l.Initializer(sym, &cir.Block{})

	require.Error(t, err)
	assert.IsType(t, &NonLoadtimeConstantError{}, err)
}

func TestInitializerRepeatedDesignatorLastWins(t *testing.T) {
	pointType := ctype.NewAggregate(ctype.Struct, "Point", pointMembers())
	sym := &csym.Symbol{Name: "p", Type: pointType}
	code := lower(t, sym, "{.x=1, .x=2}")

	require.Len(t, code, 2)
	assert.Equal(t, 0, code[0].Target.Offset)
	assert.EqualValues(t, 2, code[0].Expr.ImmValue) // the later designator wins
	assert.Equal(t, 4, code[1].Target.Offset)
	assert.EqualValues(t, 0, code[1].Expr.ImmValue) // y was never written
}

func TestInitializerUnknownMemberDesignator(t *testing.T) {
	pointType := ctype.NewAggregate(ctype.Struct, "Point", pointMembers())
	sym := &csym.Symbol{Name: "p", Type: pointType}

	lex, err := ctok.NewLexer("{.z = 1}")
	require.NoError(t, err)
	l := NewLowerer(cir.NewContext(), lex, csym.NewTable(), nil)
	_, err = l.Initializer(sym, &cir.Block{})

	require.Error(t, err)
	assert.IsType(t, &UnknownMemberError{}, err)
}

func TestInitializerNonConstantArrayDesignator(t *testing.T) {
	sym := &csym.Symbol{Name: "a", Type: ctype.NewArray(intType(), 2)}

	syms := csym.NewTable()
	syms.Define(&csym.Symbol{Name: "n", Type: intType(), Linkage: csym.LinkNone})

	lex, err := ctok.NewLexer("{[n] = 1}")
	require.NoError(t, err)
	l := NewLowerer(cir.NewContext(), lex, syms, nil)
	_, err = l.Initializer(sym, &cir.Block{})

	require.Error(t, err)
	assert.IsType(t, &NonIntegerArrayIndexError{}, err)
}
