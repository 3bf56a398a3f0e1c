package cexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/csym"
	"github.com/clarete/cinit/ctok"
	"github.com/clarete/cinit/ctype"
)

func newParser(t *testing.T, src string, syms *csym.Table) *Parser {
	t.Helper()
	lex, err := ctok.NewLexer(src)
	require.NoError(t, err)
	if syms == nil {
		syms = csym.NewTable()
	}
	return NewParser(lex, syms)
}

func TestAssignmentExpressionImmediate(t *testing.T) {
	p := newParser(t, "5", nil)
	expr, err := p.AssignmentExpression()
	require.NoError(t, err)
	assert.Equal(t, cir.ExprImm, expr.Kind)
	assert.Equal(t, int64(5), expr.ImmValue)
}

func TestAssignmentExpressionIdentifier(t *testing.T) {
	syms := csym.NewTable()
	syms.Define(&csym.Symbol{Name: "g", Type: ctype.NewScalar(ctype.Int), Linkage: csym.LinkExternal})

	p := newParser(t, "g", syms)
	expr, err := p.AssignmentExpression()
	require.NoError(t, err)
	assert.Equal(t, cir.ExprLvalue, expr.Kind)
	sym, ok := expr.IsDirectSymbolRef()
	require.True(t, ok)
	assert.Equal(t, "g", sym.Name)
}

func TestAssignmentExpressionAddressOf(t *testing.T) {
	syms := csym.NewTable()
	syms.Define(&csym.Symbol{Name: "g", Type: ctype.NewScalar(ctype.Int), Linkage: csym.LinkExternal})

	p := newParser(t, "&g", syms)
	expr, err := p.AssignmentExpression()
	require.NoError(t, err)
	assert.Equal(t, cir.ExprAddrOf, expr.Kind)
}

func TestAssignmentExpressionCall(t *testing.T) {
	syms := csym.NewTable()
	syms.Define(&csym.Symbol{Name: "f", Type: ctype.NewScalar(ctype.Int), Linkage: csym.LinkExternal})

	p := newParser(t, "f(1, 2)", syms)
	expr, err := p.AssignmentExpression()
	require.NoError(t, err)
	assert.Equal(t, cir.ExprCall, expr.Kind)
	assert.Len(t, expr.Args, 2)
}

func TestAssignmentExpressionUnknownIdent(t *testing.T) {
	p := newParser(t, "nope", nil)
	_, err := p.AssignmentExpression()
	var unknownErr *UnknownIdentError
	require.ErrorAs(t, err, &unknownErr)
}

func TestConstantExpressionFoldsArithmetic(t *testing.T) {
	p := newParser(t, "1 + 2", nil)
	v, err := p.ConstantExpression()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestConstantExpressionRejectsNonConstant(t *testing.T) {
	syms := csym.NewTable()
	syms.Define(&csym.Symbol{Name: "n", Type: ctype.NewScalar(ctype.Int), Linkage: csym.LinkNone})

	p := newParser(t, "n", syms)
	_, err := p.ConstantExpression()
	var nonIntErr *NonIntegerConstantError
	require.ErrorAs(t, err, &nonIntErr)
}

func TestStringLiteralProducesArrayLvalue(t *testing.T) {
	p := newParser(t, `"Hi"`, nil)
	expr, err := p.AssignmentExpression()
	require.NoError(t, err)
	sym, ok := expr.IsDirectSymbolRef()
	require.True(t, ok)
	assert.True(t, sym.Literal)
	assert.True(t, ctype.IsArray(sym.Type))
	assert.True(t, ctype.IsChar(sym.Type.Elem))
	assert.Equal(t, 3, ctype.TypeArrayLen(sym.Type))
}
