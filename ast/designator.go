package ast

// DesignatorKind is the second-level tag shared by all designator nodes.
// Together with the Designator expression kind it forms the two-level
// family tag: IsDesignator recognizes the whole family, the sub-kind
// gates the concrete downcasts.
type DesignatorKind uint8

const (
	ObjectName DesignatorKind = iota
	ArrayElement
	ArraySection
	CoindexedNamedObject
	ComplexPartDesignator
	StructureComponent
	Substring
)

func (k DesignatorKind) String() string {
	switch k {
	case ObjectName:
		return "object-name"
	case ArrayElement:
		return "array-element"
	case ArraySection:
		return "array-section"
	case CoindexedNamedObject:
		return "coindexed-named-object"
	case ComplexPartDesignator:
		return "complex-part"
	case StructureComponent:
		return "structure-component"
	case Substring:
		return "substring"
	default:
		return "unknown"
	}
}

// DesignatorExpr is the embedded base of every designator node.
type DesignatorExpr struct {
	expr
	dkind DesignatorKind
}

func makeDesignator(dkind DesignatorKind, typ Type, pos int) DesignatorExpr {
	return DesignatorExpr{expr: expr{kind: Designator, typ: typ, pos: pos}, dkind: dkind}
}

// DesignatorKind returns the second-level family tag.
func (d *DesignatorExpr) DesignatorKind() DesignatorKind { return d.dkind }

func (d *DesignatorExpr) designatorBase() *DesignatorExpr { return d }

// IsDesignator reports whether e is any designator kind.
func IsDesignator(e Expr) bool { return e.Kind() == Designator }

// AsDesignator returns the designator base of e; non-designators are
// fatal.
func AsDesignator(e Expr) *DesignatorExpr {
	checkKind(e, Designator)
	return e.(interface{ designatorBase() *DesignatorExpr }).designatorBase()
}

func checkDesignatorKind(e Expr, want DesignatorKind) {
	d := AsDesignator(e)
	if d.dkind != want {
		fatalf("downcast of %s designator to %s", d.dkind, want)
	}
}

// ObjectNameExpr references a declared entity by name. The entity
// reference is non-owning.
type ObjectNameExpr struct {
	DesignatorExpr
	entity *Entity
}

// NewObjectName builds a reference to ent.
func NewObjectName(a *Arena, pos int, ent *Entity) *ObjectNameExpr {
	return &ObjectNameExpr{
		DesignatorExpr: makeDesignator(ObjectName, ent.Type(), pos),
		entity:         ent,
	}
}

// Entity returns the referenced declared entity.
func (e *ObjectNameExpr) Entity() *Entity { return e.entity }

func (e *ObjectNameExpr) End() int { return e.pos + len(e.entity.Name()) }

func (e *ObjectNameExpr) AppendString(dst []byte) []byte {
	return append(dst, e.entity.Name()...)
}

// ArrayElementExpr selects one element of an array. Its resolved type is
// the target array's element type; the target must therefore already be
// resolved to an array type, and anything else is a fatal
// resolution-ordering bug.
type ArrayElementExpr struct {
	DesignatorExpr
	target     Expr
	subscripts []Expr
}

// NewArrayElement builds an element selection with the ordered subscript
// list.
func NewArrayElement(a *Arena, pos int, target Expr, subscripts []Expr) *ArrayElementExpr {
	return &ArrayElementExpr{
		DesignatorExpr: makeDesignator(ArrayElement, ElementType(target.Type()), pos),
		target:         target,
		subscripts:     subscripts,
	}
}

// Target returns the array being indexed.
func (e *ArrayElementExpr) Target() Expr { return e.target }

// Subscripts returns the ordered subscript list.
func (e *ArrayElementExpr) Subscripts() []Expr { return e.subscripts }

func (e *ArrayElementExpr) Pos() int { return e.target.Pos() }
func (e *ArrayElementExpr) End() int {
	return e.subscripts[len(e.subscripts)-1].End() + 1
}

func (e *ArrayElementExpr) AppendString(dst []byte) []byte {
	dst = e.target.AppendString(dst)
	return appendArgs(dst, e.subscripts)
}

// ArraySectionExpr selects a rectangular section of an array.
type ArraySectionExpr struct {
	DesignatorExpr
	target     Expr
	subscripts []Expr
}

// NewArraySection builds an array section; the section's type is the
// target's array type.
func NewArraySection(a *Arena, pos int, target Expr, subscripts []Expr) *ArraySectionExpr {
	return &ArraySectionExpr{
		DesignatorExpr: makeDesignator(ArraySection, target.Type(), pos),
		target:         target,
		subscripts:     subscripts,
	}
}

// Target returns the array being sectioned.
func (e *ArraySectionExpr) Target() Expr { return e.target }

// Subscripts returns the per-dimension section subscripts.
func (e *ArraySectionExpr) Subscripts() []Expr { return e.subscripts }

func (e *ArraySectionExpr) Pos() int { return e.target.Pos() }
func (e *ArraySectionExpr) End() int {
	return e.subscripts[len(e.subscripts)-1].End() + 1
}

func (e *ArraySectionExpr) AppendString(dst []byte) []byte {
	dst = e.target.AppendString(dst)
	return appendArgs(dst, e.subscripts)
}

// SubstringExpr selects a contiguous range of a character value with
// 1-based inclusive bounds. Start and end are independently optional;
// an absent bound leaves that side of the remaining string unchanged.
// The resolved type is always character.
type SubstringExpr struct {
	DesignatorExpr
	target Expr
	start  Expr
	last   Expr
}

// NewSubstring builds a substring selection; start and end may each be
// nil.
func NewSubstring(a *Arena, pos int, target, start, end Expr) *SubstringExpr {
	return &SubstringExpr{
		DesignatorExpr: makeDesignator(Substring, substringType(target, start, end), pos),
		target:         target,
		start:          start,
		last:           end,
	}
}

// substringType computes the static length of the selection when both
// bounds (or the relevant bound and the target length) are constants.
func substringType(target, start, end Expr) Type {
	ct, ok := target.Type().(*Character)
	if !ok {
		fatalf("substring of non-character %s expression", target.Kind())
	}
	lo, hi := 1, ct.Len
	known := ct.Len > 0
	if start != nil {
		if c, ok := constSubscript(start); ok {
			lo = c
		} else {
			known = false
		}
	}
	if end != nil {
		if c, ok := constSubscript(end); ok {
			hi = c
			if start == nil {
				known = true
			}
		} else {
			known = false
		}
	}
	if !known || hi < lo {
		return CharacterOfLen(0)
	}
	return CharacterOfLen(hi - lo + 1)
}

func constSubscript(e Expr) (int, bool) {
	if e.Kind() != IntegerConstant {
		return 0, false
	}
	s := AsIntegerConstant(e).Storage()
	if s.hasAllocation() {
		return 0, false
	}
	return int(s.Uint64()), true
}

// Target returns the character value being sliced.
func (e *SubstringExpr) Target() Expr { return e.target }

// StartingPoint returns the starting bound, or nil.
func (e *SubstringExpr) StartingPoint() Expr { return e.start }

// EndPoint returns the ending bound, or nil.
func (e *SubstringExpr) EndPoint() Expr { return e.last }

func (e *SubstringExpr) Pos() int { return e.target.Pos() }
func (e *SubstringExpr) End() int {
	if e.last != nil {
		return e.last.End() + 1
	}
	if e.start != nil {
		return e.start.End() + 2
	}
	return e.target.End()
}

func (e *SubstringExpr) AppendString(dst []byte) []byte {
	dst = e.target.AppendString(dst)
	dst = append(dst, '(')
	if e.start != nil {
		dst = e.start.AppendString(dst)
	}
	dst = append(dst, ':')
	if e.last != nil {
		dst = e.last.AppendString(dst)
	}
	return append(dst, ')')
}

// ComplexPart selects the real or imaginary part of a complex
// designator.
type ComplexPart int

const (
	RealPart ComplexPart = iota
	ImaginaryPart
)

func (p ComplexPart) String() string {
	if p == RealPart {
		return "RE"
	}
	return "IM"
}

// ComplexPartExpr selects one part of a complex designator. Its type is
// the real type matching the target's part width.
type ComplexPartExpr struct {
	DesignatorExpr
	target Expr
	part   ComplexPart
}

// NewComplexPart builds a complex-part selection.
func NewComplexPart(a *Arena, pos int, target Expr, part ComplexPart) *ComplexPartExpr {
	bt, ok := target.Type().(*Basic)
	if !ok || bt.Kind != Complex {
		fatalf("complex-part designator on non-complex %s expression", target.Kind())
	}
	return &ComplexPartExpr{
		DesignatorExpr: makeDesignator(ComplexPartDesignator, &Basic{Kind: Real, Bits: bt.Bits}, pos),
		target:         target,
		part:           part,
	}
}

// Target returns the complex value.
func (e *ComplexPartExpr) Target() Expr { return e.target }

// Part returns which part is selected.
func (e *ComplexPartExpr) Part() ComplexPart { return e.part }

func (e *ComplexPartExpr) Pos() int { return e.target.Pos() }
func (e *ComplexPartExpr) End() int { return e.target.End() + 3 }

func (e *ComplexPartExpr) AppendString(dst []byte) []byte {
	dst = e.target.AppendString(dst)
	dst = append(dst, '%')
	return append(dst, e.part.String()...)
}

// StructureComponentExpr selects a component of a derived-type
// designator. Offset is the component's byte offset within the parent,
// filled in by resolution.
type StructureComponentExpr struct {
	DesignatorExpr
	target    Expr
	component string
	offset    int64
}

// NewStructureComponent builds a component selection with the resolved
// component type and byte offset.
func NewStructureComponent(a *Arena, pos int, target Expr, component string, typ Type, offset int64) *StructureComponentExpr {
	return &StructureComponentExpr{
		DesignatorExpr: makeDesignator(StructureComponent, typ, pos),
		target:         target,
		component:      component,
		offset:         offset,
	}
}

// Target returns the parent designator.
func (e *StructureComponentExpr) Target() Expr { return e.target }

// Component returns the component name.
func (e *StructureComponentExpr) Component() string { return e.component }

// Offset returns the component's byte offset within the parent.
func (e *StructureComponentExpr) Offset() int64 { return e.offset }

func (e *StructureComponentExpr) Pos() int { return e.target.Pos() }
func (e *StructureComponentExpr) End() int {
	return e.target.End() + 1 + len(e.component)
}

func (e *StructureComponentExpr) AppendString(dst []byte) []byte {
	dst = e.target.AppendString(dst)
	dst = append(dst, '%')
	return append(dst, e.component...)
}

// CoindexedNamedObjectExpr references a named object on another image
// through cosubscripts.
type CoindexedNamedObjectExpr struct {
	DesignatorExpr
	entity       *Entity
	cosubscripts []Expr
}

// NewCoindexedNamedObject builds a coindexed reference to ent.
func NewCoindexedNamedObject(a *Arena, pos int, ent *Entity, cosubscripts []Expr) *CoindexedNamedObjectExpr {
	return &CoindexedNamedObjectExpr{
		DesignatorExpr: makeDesignator(CoindexedNamedObject, ent.Type(), pos),
		entity:         ent,
		cosubscripts:   cosubscripts,
	}
}

// Entity returns the referenced declared entity.
func (e *CoindexedNamedObjectExpr) Entity() *Entity { return e.entity }

// Cosubscripts returns the image-selection subscripts.
func (e *CoindexedNamedObjectExpr) Cosubscripts() []Expr { return e.cosubscripts }

func (e *CoindexedNamedObjectExpr) End() int {
	return e.cosubscripts[len(e.cosubscripts)-1].End() + 1
}

func (e *CoindexedNamedObjectExpr) AppendString(dst []byte) []byte {
	dst = append(dst, e.entity.Name()...)
	dst = append(dst, '[')
	for i, sub := range e.cosubscripts {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		dst = sub.AppendString(dst)
	}
	return append(dst, ']')
}

// Guarded designator downcasts, gated on both tag levels.

// AsObjectName downcasts e to *ObjectNameExpr.
func AsObjectName(e Expr) *ObjectNameExpr {
	checkDesignatorKind(e, ObjectName)
	return e.(*ObjectNameExpr)
}

// AsArrayElement downcasts e to *ArrayElementExpr.
func AsArrayElement(e Expr) *ArrayElementExpr {
	checkDesignatorKind(e, ArrayElement)
	return e.(*ArrayElementExpr)
}

// AsArraySection downcasts e to *ArraySectionExpr.
func AsArraySection(e Expr) *ArraySectionExpr {
	checkDesignatorKind(e, ArraySection)
	return e.(*ArraySectionExpr)
}

// AsSubstring downcasts e to *SubstringExpr.
func AsSubstring(e Expr) *SubstringExpr {
	checkDesignatorKind(e, Substring)
	return e.(*SubstringExpr)
}

// AsComplexPart downcasts e to *ComplexPartExpr.
func AsComplexPart(e Expr) *ComplexPartExpr {
	checkDesignatorKind(e, ComplexPartDesignator)
	return e.(*ComplexPartExpr)
}

// AsStructureComponent downcasts e to *StructureComponentExpr.
func AsStructureComponent(e Expr) *StructureComponentExpr {
	checkDesignatorKind(e, StructureComponent)
	return e.(*StructureComponentExpr)
}

// AsCoindexedNamedObject downcasts e to *CoindexedNamedObjectExpr.
func AsCoindexedNamedObject(e Expr) *CoindexedNamedObjectExpr {
	checkDesignatorKind(e, CoindexedNamedObject)
	return e.(*CoindexedNamedObjectExpr)
}
