// Package ctype is a minimal stand-in for the compiler's type system:
// just enough of is_array/is_struct/nmembers/size_of/find_type_member
// and friends to drive and test the aggregate initializer lowering in
// package cinit. It is not a general C type checker.
package ctype

import "fmt"

// Kind tags the shape of a Type. The initializer walker dispatches on
// this the same way the grammar AST in the teacher dispatches on node
// kind rather than a full visitor, because the set of shapes here is
// small and closed.
type Kind int

const (
	Void Kind = iota
	Char
	Short
	Int
	Long
	Pointer
	Array
	Struct
	Union
	Function
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Pointer:
		return "pointer"
	case Array:
		return "array"
	case Struct:
		return "struct"
	case Union:
		return "union"
	case Function:
		return "function"
	default:
		return "?"
	}
}

// FlexibleLength marks an array declared without a bound, e.g. `int a[]`.
const FlexibleLength = -1

// Member is one field of a struct or union, already laid out: Offset
// is its byte offset from the start of the aggregate, and
// FieldOffset/FieldWidth describe the bit window within Type when the
// member is a bit-field (both zero otherwise).
type Member struct {
	Name        string
	Type        *Type
	Offset      int
	FieldOffset int
	FieldWidth  int
	Anonymous   bool
}

func (m Member) IsBitField() bool { return m.FieldWidth > 0 }

// Type is a single node in the small, closed set of C type shapes this
// package represents: scalars, pointers, arrays, structs and unions.
type Type struct {
	Kind Kind
	Name string // tag name, for structs/unions; empty for anonymous

	// Elem is the pointee (Pointer) or element type (Array).
	Elem *Type

	// Length is the element count of an Array; FlexibleLength if the
	// array's declarator had no bound yet.
	Length int

	// Members holds struct/union fields in declaration order.
	Members []Member
}

func NewScalar(k Kind) *Type { return &Type{Kind: k} }

func NewPointer(to *Type) *Type { return &Type{Kind: Pointer, Elem: to} }

// NewArray builds an array type of the given length. Pass
// FlexibleLength for an incomplete array, e.g. `int a[]`.
func NewArray(elem *Type, length int) *Type {
	return &Type{Kind: Array, Elem: elem, Length: length}
}

// NewAggregate builds a struct or union type whose members already
// carry their laid-out offsets (layout is assumed to have happened
// upstream, as it would have in the real front-end's declarator pass).
func NewAggregate(kind Kind, name string, members []Member) *Type {
	if kind != Struct && kind != Union {
		panic("ctype: NewAggregate requires Struct or Union kind")
	}
	return &Type{Kind: kind, Name: name, Members: members}
}

func IsArray(t *Type) bool          { return t.Kind == Array }
func IsStruct(t *Type) bool         { return t.Kind == Struct }
func IsUnion(t *Type) bool          { return t.Kind == Union }
func IsStructOrUnion(t *Type) bool  { return t.Kind == Struct || t.Kind == Union }
func IsChar(t *Type) bool           { return t.Kind == Char }
func IsPointer(t *Type) bool        { return t.Kind == Pointer }
func IsFunction(t *Type) bool       { return t.Kind == Function }
func IsVoid(t *Type) bool           { return t.Kind == Void }
func IsIncompleteArray(t *Type) bool { return t.Kind == Array && t.Length == FlexibleLength }

func IsInteger(t *Type) bool {
	switch t.Kind {
	case Char, Short, Int, Long:
		return true
	default:
		return false
	}
}

// IsCompatibleUnqualified reports whether a and b describe the same
// shape for the purposes of a whole-object initializer assignment.
// Qualifiers (const/volatile) don't exist in this stand-in type
// system, so this reduces to structural equality of kind/tag/element.
func IsCompatibleUnqualified(a, b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Struct, Union:
		return a.Name != "" && a.Name == b.Name
	case Array:
		return IsCompatibleUnqualified(a.Elem, b.Elem) &&
			(a.Length == b.Length || a.Length == FlexibleLength || b.Length == FlexibleLength)
	case Pointer:
		return IsCompatibleUnqualified(a.Elem, b.Elem)
	default:
		return true
	}
}

// TypeNext returns the type "one level down": the element type of an
// array or pointer. It panics on scalars/aggregates, mirroring the
// front-end's type_next, which is only ever called on indirection
// types.
func TypeNext(t *Type) *Type {
	switch t.Kind {
	case Array, Pointer:
		return t.Elem
	default:
		panic(fmt.Sprintf("ctype: TypeNext called on non-indirection type %s", t.Kind))
	}
}

func TypeArrayLen(t *Type) int {
	if t.Kind != Array {
		panic("ctype: TypeArrayLen called on non-array type")
	}
	return t.Length
}

// SizeOf returns the size in bytes of t. Incomplete arrays have no
// defined size; callers must call SetArrayLength first.
func SizeOf(t *Type) int {
	switch t.Kind {
	case Void:
		return 0
	case Char:
		return 1
	case Short:
		return 2
	case Int:
		return 4
	case Long, Pointer:
		return 8
	case Array:
		if t.Length == FlexibleLength {
			panic("ctype: SizeOf called on an incomplete array")
		}
		return t.Length * SizeOf(t.Elem)
	case Struct, Union:
		return aggregateSize(t)
	default:
		panic(fmt.Sprintf("ctype: SizeOf: unsupported kind %s", t.Kind))
	}
}

// aggregateSize derives the size of a struct/union from its laid-out
// members: for a struct, the end of the last member rounded up isn't
// modeled here (no padding beyond what members already encode); for a
// union, the max member size. Real layout comes from the declarator
// pass upstream; this is only used by tests that build ad hoc types.
func aggregateSize(t *Type) int {
	max := 0
	for _, m := range t.Members {
		end := m.Offset + SizeOf(m.Type)
		if m.IsBitField() {
			end = m.Offset + SizeOf(m.Type)
		}
		if end > max {
			max = end
		}
	}
	return max
}

func NMembers(t *Type) int {
	if !IsStructOrUnion(t) {
		panic("ctype: NMembers called on non-aggregate type")
	}
	return len(t.Members)
}

func GetMember(t *Type, i int) Member {
	return t.Members[i]
}

// FindMember looks up a member by name, returning its index alongside
// the record. ok is false if no such member exists at this level
// (anonymous-member lookup through nested unnamed struct/union fields
// is not attempted here: designators only ever name a direct member).
func FindMember(t *Type, name string) (Member, int, bool) {
	for i, m := range t.Members {
		if m.Name == name {
			return m, i, true
		}
	}
	return Member{}, -1, false
}

// SetArrayLength completes an incomplete array's declared length, the
// way the declarator pass does once the initializer has told it how
// many elements were actually written.
func SetArrayLength(t *Type, n int) {
	if t.Kind != Array {
		panic("ctype: SetArrayLength called on non-array type")
	}
	t.Length = n
}
