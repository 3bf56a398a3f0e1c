package cinit

import (
	"github.com/clarete/cinit/cir"
	"github.com/clarete/cinit/ctok"
	"github.com/clarete/cinit/ctype"
)

// initializeStruct walks a struct's members in order, honoring
// `.name` designators to jump to an
// arbitrary member and resuming positional iteration from there.
// Members sharing an anonymous union's offset with one already
// visited are skipped rather than reinitialized.
func (l *Lowerer) initializeStruct(block, values *cir.Block, target cir.Target, state ObjectState) error {
	handled, err := l.tryWholeAggregateAssign(block, values, target)
	if err != nil || handled {
		return err
	}

	structType := target.Type
	i := 0
	havePrev := false
	var prev ctype.Member

	for {
		var member ctype.Member
		viaDesignator := false

		if !block.HasInitValue && l.Lex.Peek().Kind == ctok.Dot {
			l.Lex.Next()
			nameTok, err := l.Lex.Consume(ctok.Ident)
			if err != nil {
				return err
			}
			if l.Lex.Peek().Kind == ctok.Equals {
				l.Lex.Next()
			}
			m, idx, ok := ctype.FindMember(structType, nameTok.Text)
			if !ok {
				return &UnknownMemberError{Type: structType.Name, Member: nameTok.Text}
			}
			member = m
			i = idx
			viaDesignator = true
		} else {
			for i < ctype.NMembers(structType) {
				m := ctype.GetMember(structType, i)
				if havePrev && m.Offset == prev.Offset && m.FieldOffset == prev.FieldOffset {
					i++
					continue
				}
				break
			}
			if i >= ctype.NMembers(structType) {
				return nil
			}
			member = ctype.GetMember(structType, i)
		}

		memberTarget := memberTargetFor(target, member)
		if err := l.initializeMember(block, values, memberTarget, viaDesignator); err != nil {
			return err
		}
		prev, havePrev = member, true
		i++
		if !viaDesignator && i >= ctype.NMembers(structType) {
			return nil
		}

		if !l.nextSiblingElement(state) {
			return nil
		}
	}
}
