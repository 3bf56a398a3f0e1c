// Package cinit lowers a C initializer expression — everything
// following the `=` of a declarator — into an ordered list of
// assignment operations against the initialized object, including
// zero-fill of any unwritten padding. It implements the C89/C99
// initializer rules: nested braces, designated initializers for
// structs/unions/arrays, string-literal array initialization,
// flexible/incomplete array sizing, bit-field layout, overlapping
// union members, and the requirement that static-storage initializers
// be computable at load time.
//
// The token source, expression parser, type system, symbol table and
// IR evaluator are external collaborators, played here by the
// ctok/cexpr/ctype/csym/cir packages respectively.
package cinit

import (
	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/csym"
	"github.com/clarete/cinit/ctok"
	"github.com/clarete/cinit/ctype"
)

// Lowerer threads the state the recursive aggregate walker needs
// across every call: the IR-building context, the token cursor, the
// symbol table used to resolve identifiers inside initializer
// expressions, and the target-ABI Config the zero-fill engine reads
// integer widths from. rootSym is set for the duration of one
// Initializer call and governs the load-time-constant check in
// readInitializerElement.
type Lowerer struct {
	Ctx  *cir.Context
	Lex  *ctok.Lexer
	Syms *csym.Table
	Cfg  *Config

	rootSym *csym.Symbol
}

// NewLowerer builds a Lowerer ready to drive Initializer calls against
// a single token stream.
func NewLowerer(ctx *cir.Context, lex *ctok.Lexer, syms *csym.Table, cfg *Config) *Lowerer {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Lowerer{Ctx: ctx, Lex: lex, Syms: syms, Cfg: cfg}
}

// Initializer is the entry coordinator: given a symbol whose
// declared type is complete enough to begin initialization and a
// caller block positioned after the `=`, it produces a caller block
// extended with the lowered assignments.
//
// Precondition: sym.Type is known, block.HasInitValue is clear, the
// lexer's current token is the first token of the initializer body.
// Postcondition: the returned block has the lowered assignments
// appended; block.HasInitValue is clear.
func (l *Lowerer) Initializer(sym *csym.Symbol, block *cir.Block) (*cir.Block, error) {
	l.rootSym = sym

	if l.Lex.Peek().Kind == ctok.LBrace || ctype.IsArray(sym.Type) {
		values := cir.AcquireBlock()
		target := cir.Target{Symbol: sym, Type: sym.Type}

		if err := l.initializeObject(block, values, target); err != nil {
			cir.ReleaseBlock(values)
			return nil, err
		}

		clean, err := PostProcess(l, values, sym.Type)
		cir.ReleaseBlock(values)
		if err != nil {
			return nil, err
		}
		block.Append(clean)
		cir.ReleaseBlock(clean)
		return block, nil
	}

	expr, err := l.consumePending(block)
	if err != nil {
		return nil, err
	}
	target := cir.Target{Symbol: sym, Type: sym.Type}
	if _, err := cir.EvalAssign(block, target, expr); err != nil {
		return nil, err
	}
	return block, nil
}
