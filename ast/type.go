package ast

import "strconv"

// BasicKind identifies a scalar non-character Fortran type.
type BasicKind int

const (
	Integer BasicKind = iota
	Real
	DoublePrecision
	Complex
	Logical
)

func (bk BasicKind) String() string {
	switch bk {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case DoublePrecision:
		return "DOUBLE PRECISION"
	case Complex:
		return "COMPLEX"
	case Logical:
		return "LOGICAL"
	default:
		return "unknown"
	}
}

// Type is the resolved type attached to an expression node by semantic
// analysis. The closed set is Basic, Character and Array.
type Type interface {
	String() string
	typeNode()
}

// Basic is a scalar numeric or logical type with a storage width in bits.
type Basic struct {
	Kind BasicKind
	Bits int // storage width of one value (per part for COMPLEX)
}

func (t *Basic) typeNode() {}
func (t *Basic) String() string {
	return t.Kind.String()
}

// Character is the fixed-length blank-padded character type. Len is the
// declared length in characters; 0 means the length is not statically
// known (assumed or deferred length).
type Character struct {
	Len int
}

func (t *Character) typeNode() {}
func (t *Character) String() string {
	if t.Len == 0 {
		return "CHARACTER(*)"
	}
	return "CHARACTER(" + strconv.Itoa(t.Len) + ")"
}

// Array is an array of Elem with one ArraySpec per dimension.
type Array struct {
	Elem Type
	Dims []ArraySpec
}

func (t *Array) typeNode() {}
func (t *Array) String() string {
	return t.Elem.String() + ", DIMENSION(" + strconv.Itoa(len(t.Dims)) + ")"
}

// Default types for constants. Widths follow the default kinds of the
// target: 4-byte INTEGER/REAL/LOGICAL, 8-byte DOUBLE PRECISION.
var (
	IntegerType         = &Basic{Kind: Integer, Bits: 32}
	RealType            = &Basic{Kind: Real, Bits: 32}
	DoublePrecisionType = &Basic{Kind: DoublePrecision, Bits: 64}
	ComplexType         = &Basic{Kind: Complex, Bits: 32}
	LogicalType         = &Basic{Kind: Logical, Bits: 32}
)

// CharacterOfLen returns the character type of static length n.
func CharacterOfLen(n int) *Character {
	return &Character{Len: n}
}

// ElementType returns the element type of t, which must be an array type.
// Calling it on anything else indicates a resolution-ordering bug upstream
// and is fatal.
func ElementType(t Type) Type {
	at, ok := t.(*Array)
	if !ok {
		fatalf("element type requested of non-array type %s", t)
	}
	return at.Elem
}
