package ast

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/zeuk/flang/intrinsic"
)

// ExprKind is the immutable top-level discriminator of an expression
// node. It is fixed at construction and never changes.
type ExprKind uint8

const (
	Designator ExprKind = iota // family tag, see DesignatorKind

	// Constant family, recognized as a whole by IsConstant.
	IntegerConstant
	RealConstant
	DoublePrecisionConstant
	ComplexConstant
	CharacterConstant
	BOZConstant
	LogicalConstant

	Unary
	DefinedUnary
	Binary
	DefinedBinary
	Call
	IntrinsicCall
	ReturnedValue
)

func (k ExprKind) String() string {
	switch k {
	case Designator:
		return "designator"
	case IntegerConstant:
		return "integer-constant"
	case RealConstant:
		return "real-constant"
	case DoublePrecisionConstant:
		return "double-precision-constant"
	case ComplexConstant:
		return "complex-constant"
	case CharacterConstant:
		return "character-constant"
	case BOZConstant:
		return "boz-constant"
	case LogicalConstant:
		return "logical-constant"
	case Unary:
		return "unary"
	case DefinedUnary:
		return "defined-unary"
	case Binary:
		return "binary"
	case DefinedBinary:
		return "defined-binary"
	case Call:
		return "call"
	case IntrinsicCall:
		return "intrinsic-call"
	case ReturnedValue:
		return "returned-value"
	default:
		return "unknown"
	}
}

// Expr is an expression node. Every node fixes its kind at construction;
// the resolved type is set once by semantic analysis and read-only
// afterwards.
type Expr interface {
	Kind() ExprKind
	// Type returns the resolved type. Reading it before resolution has
	// set it is a fatal phase-ordering bug.
	Type() Type
	SetType(Type)
	Pos() int // offset of the first character belonging to the node
	End() int // offset of the first character after the node
	AppendString(dst []byte) []byte
	exprNode()
}

// expr is the embedded base of every node.
type expr struct {
	kind ExprKind
	typ  Type
	pos  int
	end  int
}

func (e *expr) Kind() ExprKind { return e.kind }
func (e *expr) Type() Type {
	if e.typ == nil {
		fatalf("type of %s expression read before resolution", e.kind)
	}
	return e.typ
}
func (e *expr) SetType(t Type) { e.typ = t }
func (e *expr) Pos() int       { return e.pos }
func (e *expr) End() int       { return e.end }
func (e *expr) exprNode()      {}

func checkKind(e Expr, want ExprKind) {
	if e.Kind() != want {
		fatalf("downcast of %s expression to %s", e.Kind(), want)
	}
}

// ConstantExpr is the embedded base of the seven constant kinds. It adds
// an optional kind-selector sub-expression and carries the end-location
// override of the literal's last token.
type ConstantExpr struct {
	expr
	kindSel Expr
}

func makeConstant(kind ExprKind, typ Type, pos, end int) ConstantExpr {
	return ConstantExpr{expr: expr{kind: kind, typ: typ, pos: pos, end: end}}
}

// KindSelector returns the optional kind-selector expression, or nil.
func (c *ConstantExpr) KindSelector() Expr { return c.kindSel }

// SetKindSelector attaches the trailing kind-selector expression.
func (c *ConstantExpr) SetKindSelector(k Expr) { c.kindSel = k }

func (c *ConstantExpr) constantBase() *ConstantExpr { return c }

// IsConstant reports whether e is any of the constant kinds.
func IsConstant(e Expr) bool {
	k := e.Kind()
	return k >= IntegerConstant && k <= LogicalConstant
}

// AsConstant returns the constant base of e. Calling it on a
// non-constant node is a caller bug and fatal.
func AsConstant(e Expr) *ConstantExpr {
	if !IsConstant(e) {
		fatalf("downcast of %s expression to constant", e.Kind())
	}
	return e.(interface{ constantBase() *ConstantExpr }).constantBase()
}

// IntegerConstantExpr is a decimal integer literal of arbitrary
// precision.
type IntegerConstantExpr struct {
	ConstantExpr
	num IntStorage
}

// NewIntegerConstant builds an integer constant from its decimal digit
// string. Malformed text is rejected by the lexer; one arriving here is
// fatal.
func NewIntegerConstant(a *Arena, pos, end int, text string) *IntegerConstantExpr {
	v, ok := new(big.Int).SetString(text, 10)
	if !ok || v.Sign() < 0 {
		fatalf("malformed integer literal %q survived lexing", text)
	}
	e := &IntegerConstantExpr{ConstantExpr: makeConstant(IntegerConstant, IntegerType, pos, end)}
	e.num.SetValue(a, v)
	return e
}

// Value reconstructs the literal's value.
func (e *IntegerConstantExpr) Value() *big.Int { return e.num.Value() }

// SetValue replaces the stored value, releasing any previous out-of-line
// allocation.
func (e *IntegerConstantExpr) SetValue(a *Arena, v *big.Int) { e.num.SetValue(a, v) }

// Storage exposes the backing numeric storage.
func (e *IntegerConstantExpr) Storage() *IntStorage { return &e.num }

func (e *IntegerConstantExpr) AppendString(dst []byte) []byte {
	return e.num.Value().Append(dst, 10)
}

// RealConstantExpr is a default-kind REAL literal stored as IEEE
// binary32 bits.
type RealConstantExpr struct {
	ConstantExpr
	num FloatStorage
}

// NewRealConstant builds a REAL constant from its literal text.
func NewRealConstant(a *Arena, pos, end int, text string) *RealConstantExpr {
	f, err := strconv.ParseFloat(text, 32)
	if err != nil {
		fatalf("malformed real literal %q survived lexing", text)
	}
	e := &RealConstantExpr{ConstantExpr: makeConstant(RealConstant, RealType, pos, end)}
	e.num.SetValue(a, new(big.Float).SetFloat64(f), 32)
	return e
}

// Value reinterprets the stored bits as IEEE binary32.
func (e *RealConstantExpr) Value() *big.Float { return e.num.Value() }

func (e *RealConstantExpr) AppendString(dst []byte) []byte {
	return e.num.Value().Append(dst, 'G', -1)
}

// DoublePrecisionConstantExpr is a DOUBLE PRECISION literal stored as
// IEEE binary64 bits. The D exponent letter marks the literal as double
// precision.
type DoublePrecisionConstantExpr struct {
	ConstantExpr
	num FloatStorage
}

// NewDoublePrecisionConstant builds a DOUBLE PRECISION constant from its
// literal text.
func NewDoublePrecisionConstant(a *Arena, pos, end int, text string) *DoublePrecisionConstantExpr {
	norm := strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'E'
		}
		return r
	}, text)
	f, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		fatalf("malformed double precision literal %q survived lexing", text)
	}
	e := &DoublePrecisionConstantExpr{ConstantExpr: makeConstant(DoublePrecisionConstant, DoublePrecisionType, pos, end)}
	e.num.SetValue(a, new(big.Float).SetFloat64(f), 64)
	return e
}

// Value reinterprets the stored bits as IEEE binary64.
func (e *DoublePrecisionConstantExpr) Value() *big.Float { return e.num.Value() }

func (e *DoublePrecisionConstantExpr) AppendString(dst []byte) []byte {
	return e.num.Value().Append(dst, 'G', -1)
}

// ComplexConstantExpr is a (real, imaginary) literal pair sharing one
// float format.
type ComplexConstantExpr struct {
	ConstantExpr
	re, im FloatStorage
}

// NewComplexConstant builds a COMPLEX constant from its two parts,
// stored in the IEEE format of the given bit width.
func NewComplexConstant(a *Arena, pos, end int, re, im *big.Float, bits int) *ComplexConstantExpr {
	e := &ComplexConstantExpr{ConstantExpr: makeConstant(ComplexConstant, ComplexType, pos, end)}
	e.re.SetValue(a, re, bits)
	e.im.SetValue(a, im, bits)
	return e
}

// RealPart returns the real part.
func (e *ComplexConstantExpr) RealPart() *big.Float { return e.re.Value() }

// ImaginaryPart returns the imaginary part.
func (e *ComplexConstantExpr) ImaginaryPart() *big.Float { return e.im.Value() }

func (e *ComplexConstantExpr) AppendString(dst []byte) []byte {
	dst = append(dst, '(')
	dst = e.re.Value().Append(dst, 'G', -1)
	dst = append(dst, ", "...)
	dst = e.im.Value().Append(dst, 'G', -1)
	return append(dst, ')')
}

// CharacterConstantExpr is a character literal. Its bytes are owned by
// the arena, not by the node.
type CharacterConstantExpr struct {
	ConstantExpr
	data []byte
}

// NewCharacterConstant builds a character constant; the text is copied
// into arena-owned storage.
func NewCharacterConstant(a *Arena, pos, end int, text string) *CharacterConstantExpr {
	e := &CharacterConstantExpr{ConstantExpr: makeConstant(CharacterConstant, CharacterOfLen(len(text)), pos, end)}
	e.data = a.allocBytes(len(text))
	copy(e.data, text)
	return e
}

// Value returns the literal bytes. The slice is arena-owned; callers
// must not retain it past the arena's life.
func (e *CharacterConstantExpr) Value() []byte { return e.data }

func (e *CharacterConstantExpr) AppendString(dst []byte) []byte {
	dst = append(dst, '\'')
	dst = append(dst, e.data...)
	return append(dst, '\'')
}

// BOZKind tags the radix family of a BOZ literal.
type BOZKind int

const (
	BOZHexadecimal BOZKind = iota
	BOZOctal
	BOZBinary
)

func (k BOZKind) String() string {
	switch k {
	case BOZHexadecimal:
		return "Z"
	case BOZOctal:
		return "O"
	case BOZBinary:
		return "B"
	default:
		return "?"
	}
}

// BOZConstantExpr is a binary/octal/hexadecimal integer literal.
type BOZConstantExpr struct {
	ConstantExpr
	num     IntStorage
	bozKind BOZKind
}

// NewBOZConstant builds a BOZ constant from one of the literal forms
// B'...', O'...', Z'...' or X'...' (either quote character). Malformed
// text is a lexing bug and fatal.
func NewBOZConstant(a *Arena, pos, end int, text string) *BOZConstantExpr {
	kind, v := parseBOZ(text)
	e := &BOZConstantExpr{
		ConstantExpr: makeConstant(BOZConstant, IntegerType, pos, end),
		bozKind:      kind,
	}
	e.num.SetValue(a, v)
	return e
}

// Value reconstructs the literal's value.
func (e *BOZConstantExpr) Value() *big.Int { return e.num.Value() }

// BOZKind returns the radix family tag.
func (e *BOZConstantExpr) BOZKind() BOZKind { return e.bozKind }

func (e *BOZConstantExpr) IsBinaryKind() bool { return e.bozKind == BOZBinary }
func (e *BOZConstantExpr) IsOctalKind() bool  { return e.bozKind == BOZOctal }
func (e *BOZConstantExpr) IsHexKind() bool    { return e.bozKind == BOZHexadecimal }

func (e *BOZConstantExpr) AppendString(dst []byte) []byte {
	dst = append(dst, e.bozKind.String()...)
	dst = append(dst, '\'')
	base := 16
	switch e.bozKind {
	case BOZOctal:
		base = 8
	case BOZBinary:
		base = 2
	}
	dst = e.num.Value().Append(dst, base)
	return append(dst, '\'')
}

// LogicalConstantExpr is .TRUE. or .FALSE..
type LogicalConstantExpr struct {
	ConstantExpr
	val bool
}

// NewLogicalConstant builds a logical constant. Only .TRUE. and .FALSE.
// (any letter case) are accepted; anything else is a lexing bug and
// fatal rather than silently false.
func NewLogicalConstant(a *Arena, pos, end int, text string) *LogicalConstantExpr {
	e := &LogicalConstantExpr{ConstantExpr: makeConstant(LogicalConstant, LogicalType, pos, end)}
	switch {
	case strings.EqualFold(text, ".TRUE."):
		e.val = true
	case strings.EqualFold(text, ".FALSE."):
		e.val = false
	default:
		fatalf("malformed logical literal %q survived lexing", text)
	}
	return e
}

// IsTrue reports whether the constant is .TRUE..
func (e *LogicalConstantExpr) IsTrue() bool { return e.val }

// IsFalse reports whether the constant is .FALSE..
func (e *LogicalConstantExpr) IsFalse() bool { return !e.val }

func (e *LogicalConstantExpr) AppendString(dst []byte) []byte {
	if e.val {
		return append(dst, ".TRUE."...)
	}
	return append(dst, ".FALSE."...)
}

// UnaryExpr is a built-in unary operation.
type UnaryExpr struct {
	expr
	op      UnaryOp
	operand Expr
}

// NewUnaryExpr builds a unary operation. .NOT. yields LOGICAL; plus and
// minus keep the operand's type.
func NewUnaryExpr(a *Arena, pos int, op UnaryOp, operand Expr) *UnaryExpr {
	var typ Type
	if op == OpNot {
		typ = LogicalType
	} else {
		typ = operand.Type()
	}
	return &UnaryExpr{
		expr:    expr{kind: Unary, typ: typ, pos: pos},
		op:      op,
		operand: operand,
	}
}

// Operator returns the operator.
func (e *UnaryExpr) Operator() UnaryOp { return e.op }

// Operand returns the owned operand.
func (e *UnaryExpr) Operand() Expr { return e.operand }

func (e *UnaryExpr) End() int { return e.operand.End() }

func (e *UnaryExpr) AppendString(dst []byte) []byte {
	dst = append(dst, e.op.String()...)
	return e.operand.AppendString(dst)
}

// DefinedUnaryExpr is a user-defined unary operator application
// (.IDENT. operand).
type DefinedUnaryExpr struct {
	UnaryExpr
	ident string
}

// NewDefinedUnaryExpr builds a defined unary operator application. Its
// type is set later by operator resolution.
func NewDefinedUnaryExpr(a *Arena, pos int, ident string, operand Expr) *DefinedUnaryExpr {
	return &DefinedUnaryExpr{
		UnaryExpr: UnaryExpr{
			expr:    expr{kind: DefinedUnary, pos: pos},
			op:      OpDefinedUnary,
			operand: operand,
		},
		ident: ident,
	}
}

// Ident returns the user operator's identifier without the dots.
func (e *DefinedUnaryExpr) Ident() string { return e.ident }

func (e *DefinedUnaryExpr) AppendString(dst []byte) []byte {
	dst = append(dst, '.')
	dst = append(dst, e.ident...)
	dst = append(dst, ". "...)
	return e.operand.AppendString(dst)
}

// BinaryExpr is a built-in binary operation.
type BinaryExpr struct {
	expr
	op  BinaryOp
	lhs Expr
	rhs Expr
}

// NewBinaryExpr builds a binary operation with the result type computed
// by the caller's type resolution.
func NewBinaryExpr(a *Arena, pos int, op BinaryOp, typ Type, lhs, rhs Expr) *BinaryExpr {
	return &BinaryExpr{
		expr: expr{kind: Binary, typ: typ, pos: pos},
		op:   op,
		lhs:  lhs,
		rhs:  rhs,
	}
}

// Operator returns the operator.
func (e *BinaryExpr) Operator() BinaryOp { return e.op }

// LHS returns the owned left operand.
func (e *BinaryExpr) LHS() Expr { return e.lhs }

// RHS returns the owned right operand.
func (e *BinaryExpr) RHS() Expr { return e.rhs }

func (e *BinaryExpr) Pos() int { return e.lhs.Pos() }
func (e *BinaryExpr) End() int { return e.rhs.End() }

func (e *BinaryExpr) AppendString(dst []byte) []byte {
	dst = e.lhs.AppendString(dst)
	dst = append(dst, e.op.String()...)
	return e.rhs.AppendString(dst)
}

// DefinedBinaryExpr is a user-defined binary operator application
// (lhs .IDENT. rhs). Its type is computed when the operator is resolved
// to a specific function.
type DefinedBinaryExpr struct {
	BinaryExpr
	ident string
}

// NewDefinedBinaryExpr builds a defined binary operator application.
func NewDefinedBinaryExpr(a *Arena, pos int, ident string, lhs, rhs Expr) *DefinedBinaryExpr {
	return &DefinedBinaryExpr{
		BinaryExpr: BinaryExpr{
			expr: expr{kind: DefinedBinary, pos: pos},
			op:   OpDefinedBinary,
			lhs:  lhs,
			rhs:  rhs,
		},
		ident: ident,
	}
}

// Ident returns the user operator's identifier without the dots.
func (e *DefinedBinaryExpr) Ident() string { return e.ident }

func (e *DefinedBinaryExpr) AppendString(dst []byte) []byte {
	dst = e.lhs.AppendString(dst)
	dst = append(dst, " ."...)
	dst = append(dst, e.ident...)
	dst = append(dst, ". "...)
	return e.rhs.AppendString(dst)
}

// CallExpr is a call to a user-defined function. The callee reference is
// non-owning.
type CallExpr struct {
	expr
	fn   *Entity
	args []Expr
}

// NewCallExpr builds a function call; its type is the callee's result
// type.
func NewCallExpr(a *Arena, pos int, fn *Entity, args []Expr) *CallExpr {
	if !fn.IsFunction() {
		fatalf("call to non-function entity %s", fn.Name())
	}
	return &CallExpr{
		expr: expr{kind: Call, typ: fn.Type(), pos: pos},
		fn:   fn,
		args: args,
	}
}

// Function returns the callee.
func (e *CallExpr) Function() *Entity { return e.fn }

// Args returns the owned argument list in call order.
func (e *CallExpr) Args() []Expr { return e.args }

func (e *CallExpr) End() int {
	if len(e.args) == 0 {
		return e.expr.End()
	}
	return e.args[len(e.args)-1].End() + 1
}

func (e *CallExpr) AppendString(dst []byte) []byte {
	dst = append(dst, e.fn.Name()...)
	return appendArgs(dst, e.args)
}

// IntrinsicCallExpr is a call to one of the fixed intrinsic functions.
type IntrinsicCallExpr struct {
	expr
	fn   intrinsic.Func
	args []Expr
}

// NewIntrinsicCall builds an intrinsic call with the resolved return
// type.
func NewIntrinsicCall(a *Arena, pos int, fn intrinsic.Func, args []Expr, ret Type) *IntrinsicCallExpr {
	return &IntrinsicCallExpr{
		expr: expr{kind: IntrinsicCall, typ: ret, pos: pos},
		fn:   fn,
		args: args,
	}
}

// Function returns the intrinsic function kind.
func (e *IntrinsicCallExpr) Function() intrinsic.Func { return e.fn }

// Args returns the owned argument list in call order.
func (e *IntrinsicCallExpr) Args() []Expr { return e.args }

func (e *IntrinsicCallExpr) End() int {
	if len(e.args) == 0 {
		return e.expr.End()
	}
	return e.args[len(e.args)-1].End() + 1
}

func (e *IntrinsicCallExpr) AppendString(dst []byte) []byte {
	dst = append(dst, e.fn.String()...)
	return appendArgs(dst, e.args)
}

// ReturnedValueExpr references the result variable of the function whose
// body is being compiled.
type ReturnedValueExpr struct {
	expr
	fn *Entity
}

// NewReturnedValue builds a reference to fn's result variable.
func NewReturnedValue(a *Arena, pos int, fn *Entity) *ReturnedValueExpr {
	if !fn.IsFunction() {
		fatalf("returned value of non-function entity %s", fn.Name())
	}
	return &ReturnedValueExpr{
		expr: expr{kind: ReturnedValue, typ: fn.Type(), pos: pos, end: pos + len(fn.Name())},
		fn:   fn,
	}
}

// Function returns the function whose result variable is referenced.
func (e *ReturnedValueExpr) Function() *Entity { return e.fn }

func (e *ReturnedValueExpr) AppendString(dst []byte) []byte {
	return append(dst, e.fn.Name()...)
}

func appendArgs(dst []byte, args []Expr) []byte {
	dst = append(dst, '(')
	for i, arg := range args {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		dst = arg.AppendString(dst)
	}
	return append(dst, ')')
}

// Guarded downcasts. Each is valid only when the matching kind predicate
// holds; a mismatch is a caller bug, not a recoverable condition.

// AsIntegerConstant downcasts e to *IntegerConstantExpr.
func AsIntegerConstant(e Expr) *IntegerConstantExpr {
	checkKind(e, IntegerConstant)
	return e.(*IntegerConstantExpr)
}

// AsRealConstant downcasts e to *RealConstantExpr.
func AsRealConstant(e Expr) *RealConstantExpr {
	checkKind(e, RealConstant)
	return e.(*RealConstantExpr)
}

// AsDoublePrecisionConstant downcasts e to *DoublePrecisionConstantExpr.
func AsDoublePrecisionConstant(e Expr) *DoublePrecisionConstantExpr {
	checkKind(e, DoublePrecisionConstant)
	return e.(*DoublePrecisionConstantExpr)
}

// AsComplexConstant downcasts e to *ComplexConstantExpr.
func AsComplexConstant(e Expr) *ComplexConstantExpr {
	checkKind(e, ComplexConstant)
	return e.(*ComplexConstantExpr)
}

// AsCharacterConstant downcasts e to *CharacterConstantExpr.
func AsCharacterConstant(e Expr) *CharacterConstantExpr {
	checkKind(e, CharacterConstant)
	return e.(*CharacterConstantExpr)
}

// AsBOZConstant downcasts e to *BOZConstantExpr.
func AsBOZConstant(e Expr) *BOZConstantExpr {
	checkKind(e, BOZConstant)
	return e.(*BOZConstantExpr)
}

// AsLogicalConstant downcasts e to *LogicalConstantExpr.
func AsLogicalConstant(e Expr) *LogicalConstantExpr {
	checkKind(e, LogicalConstant)
	return e.(*LogicalConstantExpr)
}

// AsUnary downcasts e to *UnaryExpr.
func AsUnary(e Expr) *UnaryExpr {
	checkKind(e, Unary)
	return e.(*UnaryExpr)
}

// AsBinary downcasts e to *BinaryExpr.
func AsBinary(e Expr) *BinaryExpr {
	checkKind(e, Binary)
	return e.(*BinaryExpr)
}

// AsCall downcasts e to *CallExpr.
func AsCall(e Expr) *CallExpr {
	checkKind(e, Call)
	return e.(*CallExpr)
}

// AsIntrinsicCall downcasts e to *IntrinsicCallExpr.
func AsIntrinsicCall(e Expr) *IntrinsicCallExpr {
	checkKind(e, IntrinsicCall)
	return e.(*IntrinsicCallExpr)
}

// AsReturnedValue downcasts e to *ReturnedValueExpr.
func AsReturnedValue(e Expr) *ReturnedValueExpr {
	checkKind(e, ReturnedValue)
	return e.(*ReturnedValueExpr)
}
