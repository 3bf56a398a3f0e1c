package cinit

import "fmt"

// These error types are a closed taxonomy: every one of them is
// fatal to the translation unit, surfaced through whatever diagnostic
// sink the caller wires up. There is no per-error recovery, matching
// the teacher's own ParsingError/backtrackingError pair, which
// likewise never attempts to resume parsing past a thrown error.

// VoidInitializerError is raised when an initializer expression has
// type void.
type VoidInitializerError struct {
	Symbol string
}

func (e *VoidInitializerError) Error() string {
	return fmt.Sprintf("initializer for %q has type void", e.Symbol)
}

// NonLoadtimeConstantError is raised when a static-storage
// initializer is not computable at load time.
type NonLoadtimeConstantError struct {
	Symbol string
}

func (e *NonLoadtimeConstantError) Error() string {
	return fmt.Sprintf("initializer for %q is not a load-time constant", e.Symbol)
}

// UnknownMemberError is raised when a `.name` designator names a
// member that doesn't exist on the target aggregate.
type UnknownMemberError struct {
	Type   string
	Member string
}

func (e *UnknownMemberError) Error() string {
	return fmt.Sprintf("%q has no member named %q", e.Type, e.Member)
}

// NonIntegerArrayIndexError is raised when a `[n]` designator's
// constant expression doesn't fold to an integer.
type NonIntegerArrayIndexError struct {
	Symbol string
}

func (e *NonIntegerArrayIndexError) Error() string {
	return fmt.Sprintf("array designator for %q is not an integer constant expression", e.Symbol)
}

// FlexibleArrayInitError is raised when ZeroInitialize is asked to
// zero-fill an array whose length is still incomplete. The aggregate
// walker does not raise it: an incomplete array nested inside a struct
// or another array is not detected there.
type FlexibleArrayInitError struct {
	Symbol string
}

func (e *FlexibleArrayInitError) Error() string {
	return fmt.Sprintf("%q has incomplete array type where a complete type is required", e.Symbol)
}

// UnsupportedZeroInitError is raised when zero-initialization is
// requested on a type that has no defined representation for it
// (functions, incomplete types).
type UnsupportedZeroInitError struct {
	Kind string
}

func (e *UnsupportedZeroInitError) Error() string {
	return fmt.Sprintf("cannot zero-initialize a value of kind %s", e.Kind)
}
