package codegen

import (
	"strconv"

	"github.com/zeuk/flang/ast"
)

// Value is an operand or result in the lowered instruction stream. The
// set of implementations is closed.
type Value interface {
	valueNode()
	String() string
}

// IntConst is a known integer operand. Arithmetic on two IntConst
// operands folds in the builder instead of emitting an instruction.
type IntConst int64

func (IntConst) valueNode()       {}
func (c IntConst) String() string { return strconv.FormatInt(int64(c), 10) }

// StringData is the address of immutable global string data, emitted
// for character constants.
type StringData string

func (StringData) valueNode()       {}
func (s StringData) String() string { return strconv.Quote(string(s)) }

// Temp is the result of an emitted instruction.
type Temp int

func (Temp) valueNode()       {}
func (t Temp) String() string { return "%t" + strconv.Itoa(int(t)) }

// EntityAddr is the address of a declared entity's storage.
type EntityAddr struct {
	Entity *ast.Entity
}

func (EntityAddr) valueNode()       {}
func (a EntityAddr) String() string { return "&" + a.Entity.Name() }

// CharacterValue is a lowered character expression: the address of the
// first byte and the length in bytes. Descriptors are passed by value
// down the lowering recursion and never retained.
type CharacterValue struct {
	Addr Value
	Len  Value
}

func (v CharacterValue) valid() bool { return v.Addr != nil }
