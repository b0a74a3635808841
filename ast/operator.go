package ast

// UnaryOp enumerates the built-in unary operators plus the defined
// (user) operator slot, grouped by precedence tier.
type UnaryOp int

const (
	OpNoneUnary UnaryOp = iota

	// Level-5 operand.
	OpNot

	// Level-2 operands.
	OpUnaryPlus
	OpUnaryMinus

	// Level-1 operand.
	OpDefinedUnary
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return ".NOT. "
	case OpUnaryPlus:
		return "+"
	case OpUnaryMinus:
		return "-"
	case OpDefinedUnary:
		return ".defined."
	default:
		return "?"
	}
}

// BinaryOp enumerates the built-in binary operators plus the defined
// (user) operator slot, grouped by precedence tier.
type BinaryOp int

const (
	OpNoneBinary BinaryOp = iota

	// Level-5 operators.
	OpEqv
	OpNeqv
	OpOr
	OpAnd
	OpDefinedBinary

	// Level-4 operators.
	OpEqual
	OpNotEqual
	OpLessThan
	OpLessThanEqual
	OpGreaterThan
	OpGreaterThanEqual

	// Level-3 operator.
	OpConcat

	// Level-2 operators.
	OpPlus
	OpMinus
	OpMultiply
	OpDivide
	OpPower
)

func (op BinaryOp) String() string {
	switch op {
	case OpEqv:
		return " .EQV. "
	case OpNeqv:
		return " .NEQV. "
	case OpOr:
		return " .OR. "
	case OpAnd:
		return " .AND. "
	case OpDefinedBinary:
		return " .defined. "
	case OpEqual:
		return " == "
	case OpNotEqual:
		return " /= "
	case OpLessThan:
		return " < "
	case OpLessThanEqual:
		return " <= "
	case OpGreaterThan:
		return " > "
	case OpGreaterThanEqual:
		return " >= "
	case OpConcat:
		return " // "
	case OpPlus:
		return " + "
	case OpMinus:
		return " - "
	case OpMultiply:
		return " * "
	case OpDivide:
		return " / "
	case OpPower:
		return " ** "
	default:
		return " ? "
	}
}

// IsRelational reports whether op is one of the level-4 comparison
// operators.
func (op BinaryOp) IsRelational() bool {
	return op >= OpEqual && op <= OpGreaterThanEqual
}
