package cinit

import (
	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/ctok"
	"github.com/clarete/cinit/ctype"
)

// initializeUnion initializes exactly one member of a union: the
// first member by default, or the last `.name`-designated member if
// designators are used — "last
// designator wins" falls directly out of reusing a single scratch
// block across iterations and clearing it before each one, so only the
// final iteration's writes survive to be appended into values.
func (l *Lowerer) initializeUnion(block, values *cir.Block, target cir.Target, state ObjectState) error {
	handled, err := l.tryWholeAggregateAssign(block, values, target)
	if err != nil || handled {
		return err
	}

	unionType := target.Type
	init := cir.AcquireBlock()
	defer cir.ReleaseBlock(init)

	done := false
	for {
		if done && !l.nextSiblingElement(state) {
			break
		}

		var member ctype.Member
		viaDesignator := false

		if l.Lex.Peek().Kind == ctok.Dot {
			l.Lex.Next()
			nameTok, err := l.Lex.Consume(ctok.Ident)
			if err != nil {
				return err
			}
			if l.Lex.Peek().Kind == ctok.Equals {
				l.Lex.Next()
			}
			m, _, ok := ctype.FindMember(unionType, nameTok.Text)
			if !ok {
				return &UnknownMemberError{Type: unionType.Name, Member: nameTok.Text}
			}
			member = m
			viaDesignator = true
		} else if !done {
			if ctype.NMembers(unionType) == 0 {
				return nil
			}
			member = ctype.GetMember(unionType, 0)
		} else {
			break
		}

		init.ClearCode()
		memberTarget := memberTargetFor(target, member)
		if err := l.initializeMember(block, init, memberTarget, viaDesignator); err != nil {
			return err
		}
		done = true
	}

	values.Append(init)
	return nil
}
