package ast

// StorageClass identifies how a declared entity's value is stored and
// how a designator referencing it is lowered.
type StorageClass int

const (
	StorageLocal         StorageClass = iota // function-local storage
	StorageArgument                          // dummy argument (passed descriptor)
	StorageNamedConstant                     // PARAMETER, folded to its initializer
)

func (sc StorageClass) String() string {
	switch sc {
	case StorageLocal:
		return "local"
	case StorageArgument:
		return "argument"
	case StorageNamedConstant:
		return "named-constant"
	default:
		return "unknown"
	}
}

// Entity is a declared object a designator can denote: a variable, a
// dummy argument, a named constant, or a function. Entities are owned by
// the symbol table of the enclosing scope; the expression tree holds
// non-owning references only.
type Entity struct {
	name       string
	typ        Type
	storage    StorageClass
	init       Expr
	spec       []ArraySpec
	isFunction bool
}

// NewEntity returns a local variable entity of the given type.
func NewEntity(name string, typ Type) *Entity {
	return &Entity{name: name, typ: typ}
}

// NewFunctionEntity returns a function entity; typ is the result type.
func NewFunctionEntity(name string, typ Type) *Entity {
	return &Entity{name: name, typ: typ, isFunction: true}
}

// Name returns the declared name.
func (e *Entity) Name() string { return e.name }

// Type returns the declared type (result type for functions).
func (e *Entity) Type() Type { return e.typ }

// Storage returns the entity's storage class.
func (e *Entity) Storage() StorageClass { return e.storage }

// SetStorage sets the storage class.
func (e *Entity) SetStorage(sc StorageClass) { e.storage = sc }

// IsFunction reports whether the entity is a function.
func (e *Entity) IsFunction() bool { return e.isFunction }

// Init returns the initializer of a named constant, nil otherwise.
func (e *Entity) Init() Expr { return e.init }

// SetInit attaches a named constant's initializer.
func (e *Entity) SetInit(init Expr) {
	e.init = init
	e.storage = StorageNamedConstant
}

// ArraySpec returns the per-dimension specifications, nil for scalars.
func (e *Entity) ArraySpec() []ArraySpec { return e.spec }

// SetArraySpec declares the entity as an array with the given dimension
// specifications and wraps its type accordingly.
func (e *Entity) SetArraySpec(spec []ArraySpec) {
	e.spec = spec
	e.typ = &Array{Elem: e.typ, Dims: spec}
}
