package ast

// A Visitor's Visit method is invoked for each expression encountered by
// Walk. If the result visitor w is not nil, Walk visits each of the
// children of e with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(e Expr) (w Visitor)
}

// Walk traverses an expression tree in depth-first order: It starts by
// calling v.Visit(e); e must not be nil. If the visitor w returned by
// v.Visit(e) is not nil, Walk is invoked recursively with visitor w for
// each of the non-nil children of e, followed by a call of w.Visit(nil).
//
// Kind-selector sub-expressions of constants count as children.
func Walk(v Visitor, e Expr) {
	if v = v.Visit(e); v == nil {
		return
	}

	switch n := e.(type) {
	case *IntegerConstantExpr, *RealConstantExpr, *DoublePrecisionConstantExpr,
		*ComplexConstantExpr, *CharacterConstantExpr, *BOZConstantExpr,
		*LogicalConstantExpr:
		if sel := AsConstant(e).KindSelector(); sel != nil {
			Walk(v, sel)
		}

	case *ObjectNameExpr:
		// leaf

	case *ArrayElementExpr:
		Walk(v, n.target)
		for _, sub := range n.subscripts {
			Walk(v, sub)
		}

	case *ArraySectionExpr:
		Walk(v, n.target)
		for _, sub := range n.subscripts {
			Walk(v, sub)
		}

	case *SubstringExpr:
		Walk(v, n.target)
		if n.start != nil {
			Walk(v, n.start)
		}
		if n.last != nil {
			Walk(v, n.last)
		}

	case *ComplexPartExpr:
		Walk(v, n.target)

	case *StructureComponentExpr:
		Walk(v, n.target)

	case *CoindexedNamedObjectExpr:
		for _, sub := range n.cosubscripts {
			Walk(v, sub)
		}

	case *UnaryExpr:
		Walk(v, n.operand)

	case *DefinedUnaryExpr:
		Walk(v, n.operand)

	case *BinaryExpr:
		Walk(v, n.lhs)
		Walk(v, n.rhs)

	case *DefinedBinaryExpr:
		Walk(v, n.lhs)
		Walk(v, n.rhs)

	case *CallExpr:
		for _, arg := range n.args {
			Walk(v, arg)
		}

	case *IntrinsicCallExpr:
		for _, arg := range n.args {
			Walk(v, arg)
		}

	case *ReturnedValueExpr:
		// leaf

	default:
		fatalf("walk of unknown expression %s", e.Kind())
	}

	v.Visit(nil)
}

// Inspect traverses an expression tree in depth-first order: It starts
// by calling f(e); e must not be nil. If f returns true, Inspect invokes
// f recursively for each of the non-nil children of e, followed by a
// call of f(nil).
func Inspect(e Expr, f func(Expr) bool) {
	Walk(inspector(f), e)
}

type inspector func(Expr) bool

func (f inspector) Visit(e Expr) Visitor {
	if f(e) {
		return f
	}
	return nil
}
