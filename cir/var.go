package cir

import (
	"fmt"

	"github.com/clarete/cinit/ctype"
)

// Var is a fresh temporary created while lowering an initializer,
// e.g. to spill a call result before it can safely be reordered by
// the post-processor.
type Var struct {
	ID   int
	Type *ctype.Type
}

func (v *Var) Name() string { return fmt.Sprintf("t%d", v.ID) }

// Context is the per-definition state create_var needs: just a
// counter for fresh temporary names. It stands in for the front end's
// "def" (the function/translation-unit being built).
type Context struct {
	tempCount int
}

func NewContext() *Context { return &Context{} }

// CreateVar returns a fresh temporary of type t.
func (c *Context) CreateVar(t *ctype.Type) *Var {
	c.tempCount++
	return &Var{ID: c.tempCount, Type: t}
}
