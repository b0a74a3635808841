package codegen

import "strings"

// Op identifies an instruction in the lowered stream.
type Op uint8

const (
	OpAlloca Op = iota // allocate stack bytes, arg0 = size
	OpOffset           // arg0 = base address, arg1 = byte offset
	OpAdd
	OpSub
	OpMul
	OpMin
	OpPtrDiff // arg0 - arg1, in bytes
	OpLoad
	OpStore // arg0 = address, arg1 = value
	OpExtract
	OpCall
	OpICmp
	OpConvert
)

var opNames = [...]string{
	OpAlloca:  "alloca",
	OpOffset:  "offset",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpMin:     "min",
	OpPtrDiff: "ptrdiff",
	OpLoad:    "load",
	OpStore:   "store",
	OpExtract: "extract",
	OpCall:    "call",
	OpICmp:    "icmp",
	OpConvert: "convert",
}

func (op Op) String() string { return opNames[op] }

// Instr is one emitted instruction. Result is the defined temporary, or
// a negative Temp for instructions without a result. Callee names the
// runtime function of an OpCall; Pred names the predicate of an OpICmp;
// Field names the extracted member of an OpExtract.
type Instr struct {
	Op     Op
	Result Temp
	Args   []Value
	Callee string
	Pred   string
	Field  string
}

func (in Instr) String() string {
	var sb strings.Builder
	if in.Result >= 0 {
		sb.WriteString(in.Result.String())
		sb.WriteString(" = ")
	}
	sb.WriteString(in.Op.String())
	switch {
	case in.Callee != "":
		sb.WriteByte(' ')
		sb.WriteString(in.Callee)
	case in.Pred != "":
		sb.WriteByte(' ')
		sb.WriteString(in.Pred)
	case in.Field != "":
		sb.WriteByte(' ')
		sb.WriteString(in.Field)
	}
	sep := "("
	for _, a := range in.Args {
		sb.WriteString(sep)
		sb.WriteString(a.String())
		sep = ", "
	}
	if sep != "(" {
		sb.WriteByte(')')
	} else {
		sb.WriteString("()")
	}
	return sb.String()
}

// Builder accumulates the instruction stream of one lowered function
// body. Integer arithmetic on constant operands folds without emitting.
type Builder struct {
	instrs   []Instr
	nextTemp int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Instrs returns the emitted stream.
func (b *Builder) Instrs() []Instr { return b.instrs }

// String renders the stream one instruction per line.
func (b *Builder) String() string {
	var sb strings.Builder
	for _, in := range b.instrs {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Builder) emit(in Instr) Temp {
	in.Result = Temp(b.nextTemp)
	b.nextTemp++
	b.instrs = append(b.instrs, in)
	return in.Result
}

func (b *Builder) emitVoid(in Instr) {
	in.Result = -1
	b.instrs = append(b.instrs, in)
}

// Alloca reserves size bytes of stack storage.
func (b *Builder) Alloca(size Value) Temp {
	return b.emit(Instr{Op: OpAlloca, Args: []Value{size}})
}

// Offset advances base by off bytes. A zero constant offset is a no-op.
func (b *Builder) Offset(base, off Value) Value {
	if c, ok := off.(IntConst); ok && c == 0 {
		return base
	}
	return b.emit(Instr{Op: OpOffset, Args: []Value{base, off}})
}

// Add emits x+y, folding constant operands.
func (b *Builder) Add(x, y Value) Value {
	if cx, ok := x.(IntConst); ok {
		if cy, ok := y.(IntConst); ok {
			return cx + cy
		}
		if cx == 0 {
			return y
		}
	} else if cy, ok := y.(IntConst); ok && cy == 0 {
		return x
	}
	return b.emit(Instr{Op: OpAdd, Args: []Value{x, y}})
}

// Sub emits x-y, folding constant operands.
func (b *Builder) Sub(x, y Value) Value {
	if cx, ok := x.(IntConst); ok {
		if cy, ok := y.(IntConst); ok {
			return cx - cy
		}
	} else if cy, ok := y.(IntConst); ok && cy == 0 {
		return x
	}
	return b.emit(Instr{Op: OpSub, Args: []Value{x, y}})
}

// Mul emits x*y, folding constant operands.
func (b *Builder) Mul(x, y Value) Value {
	if cx, ok := x.(IntConst); ok {
		if cy, ok := y.(IntConst); ok {
			return cx * cy
		}
		if cx == 1 {
			return y
		}
	} else if cy, ok := y.(IntConst); ok && cy == 1 {
		return x
	}
	return b.emit(Instr{Op: OpMul, Args: []Value{x, y}})
}

// Min emits the smaller of x and y, folding constant operands.
func (b *Builder) Min(x, y Value) Value {
	if cx, ok := x.(IntConst); ok {
		if cy, ok := y.(IntConst); ok {
			if cx < cy {
				return cx
			}
			return cy
		}
	}
	return b.emit(Instr{Op: OpMin, Args: []Value{x, y}})
}

// PtrDiff emits the byte difference x-y of two addresses.
func (b *Builder) PtrDiff(x, y Value) Value {
	return b.emit(Instr{Op: OpPtrDiff, Args: []Value{x, y}})
}

// Load reads the integer stored at addr.
func (b *Builder) Load(addr Value) Value {
	return b.emit(Instr{Op: OpLoad, Args: []Value{addr}})
}

// Store writes v to addr.
func (b *Builder) Store(addr, v Value) {
	b.emitVoid(Instr{Op: OpStore, Args: []Value{addr, v}})
}

// Extract reads the named member of the aggregate at agg.
func (b *Builder) Extract(agg Value, field string) Value {
	return b.emit(Instr{Op: OpExtract, Field: field, Args: []Value{agg}})
}

// Call invokes the named runtime function and yields its result. Void
// runtime entries ignore the temporary.
func (b *Builder) Call(callee string, args ...Value) Value {
	return b.emit(Instr{Op: OpCall, Callee: callee, Args: args})
}

// ICmp compares x to y under pred, yielding a logical value.
func (b *Builder) ICmp(pred string, x, y Value) Value {
	return b.emit(Instr{Op: OpICmp, Pred: pred, Args: []Value{x, y}})
}

// Convert widens or narrows v to the default integer width.
func (b *Builder) Convert(v Value) Value {
	if c, ok := v.(IntConst); ok {
		return c
	}
	return b.emit(Instr{Op: OpConvert, Args: []Value{v}})
}

// CallCount returns how many OpCall instructions target callee.
func (b *Builder) CallCount(callee string) int {
	n := 0
	for _, in := range b.instrs {
		if in.Op == OpCall && in.Callee == callee {
			n++
		}
	}
	return n
}

// OpCount returns how many instructions have operation op.
func (b *Builder) OpCount(op Op) int {
	n := 0
	for _, in := range b.instrs {
		if in.Op == op {
			n++
		}
	}
	return n
}
