// Package ctok is a minimal stand-in for the compiler's token source:
// just enough of peek/peekn(k)/next/consume over a small C-subset
// token stream to drive the initializer parser in package cinit and
// its cexpr expression-parser helper.
package ctok

import "fmt"

type Kind int

const (
	EOF Kind = iota
	Ident
	IntLiteral
	CharLiteral
	StringLiteral
	Dot
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Equals
	Colon
	Semicolon
	Amp
	LParen
	RParen
	Plus
	Minus
	KwStruct
	KwUnion
	KwVoid
	KwChar
	KwShort
	KwInt
	KwLong
)

var names = map[Kind]string{
	EOF:            "eof",
	Ident:          "identifier",
	IntLiteral:     "integer literal",
	CharLiteral:    "character literal",
	StringLiteral:  "string literal",
	Dot:            "`.`",
	LBrace:         "`{`",
	RBrace:         "`}`",
	LBracket:       "`[`",
	RBracket:       "`]`",
	Comma:          "`,`",
	Equals:         "`=`",
	Colon:          "`:`",
	Semicolon:      "`;`",
	Amp:            "`&`",
	LParen:         "`(`",
	RParen:         "`)`",
	Plus:           "`+`",
	Minus:          "`-`",
	KwStruct:       "`struct`",
	KwUnion:        "`union`",
	KwVoid:         "`void`",
	KwChar:         "`char`",
	KwShort:        "`short`",
	KwInt:          "`int`",
	KwLong:         "`long`",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"struct": KwStruct,
	"union":  KwUnion,
	"void":   KwVoid,
	"char":   KwChar,
	"short":  KwShort,
	"int":    KwInt,
	"long":   KwLong,
}

// Token is one lexical unit. IntValue is populated for IntLiteral and
// CharLiteral; Text carries the spelling for Ident/StringLiteral.
type Token struct {
	Kind     Kind
	Text     string
	IntValue int64
	Line     int
	Column   int
}

func (t Token) String() string {
	if t.Text != "" {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	}
	return t.Kind.String()
}
