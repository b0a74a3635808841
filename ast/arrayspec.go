package ast

// ArraySpecKind discriminates the closed set of array specifications.
// A dimension holds exactly one specification; the variants are mutually
// exclusive.
type ArraySpecKind int

const (
	ExplicitShape ArraySpecKind = iota // (lower : upper)
	AssumedShape                       // (lower : )
	DeferredShape                      // ( : ) with ALLOCATABLE/POINTER
	AssumedSize                        // trailing * dimension
	ImpliedShape                       // shape taken from the initializer
)

func (k ArraySpecKind) String() string {
	switch k {
	case ExplicitShape:
		return "explicit-shape"
	case AssumedShape:
		return "assumed-shape"
	case DeferredShape:
		return "deferred-shape"
	case AssumedSize:
		return "assumed-size"
	case ImpliedShape:
		return "implied-shape"
	default:
		return "unknown"
	}
}

// ArraySpec is one dimension's specification. Like Expr it is a closed
// set gated by a kind tag fixed at construction.
type ArraySpec interface {
	SpecKind() ArraySpecKind
	arraySpecNode()
}

type arraySpec struct {
	kind ArraySpecKind
}

func (s *arraySpec) SpecKind() ArraySpecKind { return s.kind }
func (s *arraySpec) arraySpecNode()          {}

// ExplicitShapeSpec declares both bounds; a nil Lower defaults to 1.
type ExplicitShapeSpec struct {
	arraySpec
	Lower Expr
	Upper Expr
}

// NewExplicitShapeSpec returns an explicit-shape dimension.
func NewExplicitShapeSpec(lower, upper Expr) *ExplicitShapeSpec {
	return &ExplicitShapeSpec{arraySpec: arraySpec{kind: ExplicitShape}, Lower: lower, Upper: upper}
}

// AssumedShapeSpec takes its extent from the effective argument; only the
// lower bound may be declared.
type AssumedShapeSpec struct {
	arraySpec
	Lower Expr
}

// NewAssumedShapeSpec returns an assumed-shape dimension with an optional
// lower bound.
func NewAssumedShapeSpec(lower Expr) *AssumedShapeSpec {
	return &AssumedShapeSpec{arraySpec: arraySpec{kind: AssumedShape}, Lower: lower}
}

// DeferredShapeSpec carries no bounds at all.
type DeferredShapeSpec struct {
	arraySpec
}

// NewDeferredShapeSpec returns a deferred-shape dimension.
func NewDeferredShapeSpec() *DeferredShapeSpec {
	return &DeferredShapeSpec{arraySpec: arraySpec{kind: DeferredShape}}
}

// AssumedSizeSpec is the unbounded last dimension of an assumed-size
// dummy array.
type AssumedSizeSpec struct {
	arraySpec
	Lower Expr
}

// NewAssumedSizeSpec returns an assumed-size dimension with an optional
// lower bound.
func NewAssumedSizeSpec(lower Expr) *AssumedSizeSpec {
	return &AssumedSizeSpec{arraySpec: arraySpec{kind: AssumedSize}, Lower: lower}
}

// ImpliedShapeSpec takes its extent from the named constant's initializer.
type ImpliedShapeSpec struct {
	arraySpec
	Lower Expr
}

// NewImpliedShapeSpec returns an implied-shape dimension with an optional
// lower bound.
func NewImpliedShapeSpec(lower Expr) *ImpliedShapeSpec {
	return &ImpliedShapeSpec{arraySpec: arraySpec{kind: ImpliedShape}, Lower: lower}
}

// AsExplicitShape downcasts s; calling it when SpecKind is not
// ExplicitShape is a caller bug and fatal.
func AsExplicitShape(s ArraySpec) *ExplicitShapeSpec {
	if s.SpecKind() != ExplicitShape {
		fatalf("downcast of %s array spec to explicit-shape", s.SpecKind())
	}
	return s.(*ExplicitShapeSpec)
}

// AsAssumedShape downcasts s; wrong kinds are fatal.
func AsAssumedShape(s ArraySpec) *AssumedShapeSpec {
	if s.SpecKind() != AssumedShape {
		fatalf("downcast of %s array spec to assumed-shape", s.SpecKind())
	}
	return s.(*AssumedShapeSpec)
}
