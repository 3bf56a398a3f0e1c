package ctok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeKinds(t *testing.T) {
	for _, test := range []struct {
		Name     string
		Input    string
		Expected []Kind
	}{
		{
			Name:     "Braces and designators",
			Input:    "{ .y = 2, .x = 1 }",
			Expected: []Kind{LBrace, Dot, Ident, Equals, IntLiteral, Comma, Dot, Ident, Equals, IntLiteral, RBrace, EOF},
		},
		{
			Name:     "Array designator",
			Input:    "{ [3] = 7, 1 }",
			Expected: []Kind{LBrace, LBracket, IntLiteral, RBracket, Equals, IntLiteral, Comma, IntLiteral, RBrace, EOF},
		},
		{
			Name:     "String literal",
			Input:    `"Hi"`,
			Expected: []Kind{StringLiteral, EOF},
		},
		{
			Name:     "Keywords",
			Input:    "struct union int char",
			Expected: []Kind{KwStruct, KwUnion, KwInt, KwChar, EOF},
		},
	} {
		t.Run(test.Name, func(t *testing.T) {
			toks, err := Tokenize(test.Input)
			require.NoError(t, err)
			kinds := make([]Kind, len(toks))
			for i, tok := range toks {
				kinds[i] = tok.Kind
			}
			assert.Equal(t, test.Expected, kinds)
		})
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lex, err := NewLexer("{ 1 , 2 }")
	require.NoError(t, err)

	assert.Equal(t, LBrace, lex.Peek().Kind)
	assert.Equal(t, LBrace, lex.Peek().Kind)
	assert.Equal(t, IntLiteral, lex.PeekN(1).Kind)

	tok := lex.Next()
	assert.Equal(t, LBrace, tok.Kind)
	assert.Equal(t, IntLiteral, lex.Peek().Kind)
}

func TestLexerConsumeFailsOnMismatch(t *testing.T) {
	lex, err := NewLexer("{ 1 }")
	require.NoError(t, err)

	_, err = lex.Consume(RBrace)
	var consumeErr *ConsumeError
	require.ErrorAs(t, err, &consumeErr)
	assert.Equal(t, RBrace, consumeErr.Expected)
	assert.Equal(t, LBrace, consumeErr.Got.Kind)
}

func TestTokenizeUnterminatedStringFails(t *testing.T) {
	_, err := Tokenize(`"Hi`)
	require.Error(t, err)
}
