package codegen

import (
	"github.com/zeuk/flang/ast"
	"github.com/zeuk/flang/intrinsic"
)

// FuncEmitter lowers the expressions of one function body into a
// builder's instruction stream. The statement-level lowering drives it
// through EmitCharacterExpr, EmitCharacterExprInto and
// EmitCharacterAssignment; everything else is internal.
type FuncEmitter struct {
	b      *Builder
	retVar *ast.Entity
}

// NewFuncEmitter returns an emitter writing to b.
func NewFuncEmitter(b *Builder) *FuncEmitter {
	return &FuncEmitter{b: b}
}

// SetReturnVariable installs the entity holding the enclosing
// character function's return slot, referenced by returned-value
// expressions.
func (f *FuncEmitter) SetReturnVariable(ent *ast.Entity) {
	f.retVar = ent
}

// characterExprEmitter carries the pending destination of one lowering
// call. Only concatenations and character function calls consume the
// destination; every other kind leaves it for the caller to finish
// with an assign call.
type characterExprEmitter struct {
	fn   *FuncEmitter
	b    *Builder
	dest CharacterValue
}

func (em *characterExprEmitter) hasDestination() bool { return em.dest.valid() }

func (em *characterExprEmitter) takeDestination() CharacterValue {
	d := em.dest
	em.dest = CharacterValue{}
	return d
}

func (em *characterExprEmitter) setDestination(v CharacterValue) {
	if !v.valid() {
		fatalf("empty lowering destination")
	}
	em.dest = v
}

// EmitCharacterExpr lowers e into an (address, length) value.
func (f *FuncEmitter) EmitCharacterExpr(e ast.Expr) CharacterValue {
	em := characterExprEmitter{fn: f, b: f.b}
	return em.emitExpr(e)
}

// EmitCharacterExprInto lowers e into dest. When e is a concatenation
// or a character function call the runtime writes into dest directly;
// otherwise one assign call copies the lowered value with truncate and
// blank-fill semantics.
func (f *FuncEmitter) EmitCharacterExprInto(e ast.Expr, dest CharacterValue) {
	em := characterExprEmitter{fn: f, b: f.b}
	em.setDestination(dest)
	src := em.emitExpr(e)
	if em.hasDestination() {
		em.takeDestination()
		f.b.Call(runtimeAssign, dest.Addr, dest.Len, src.Addr, src.Len)
	}
}

// EmitCharacterAssignment lowers the statement lhs = rhs. The left-hand
// side's storage becomes the right-hand side's destination.
func (f *FuncEmitter) EmitCharacterAssignment(lhs, rhs ast.Expr) {
	tracer().Debugf("lowering character assignment to %s", lhs.AppendString(nil))
	f.EmitCharacterExprInto(rhs, f.EmitCharacterExpr(lhs))
}

// emitOperand lowers a subexpression with no pending destination.
// Destination propagation is a per-call-site decision and never leaks
// into operands.
func (f *FuncEmitter) emitOperand(e ast.Expr) CharacterValue {
	em := characterExprEmitter{fn: f, b: f.b}
	return em.emitExpr(e)
}

func (em *characterExprEmitter) emitExpr(e ast.Expr) CharacterValue {
	switch e.Kind() {
	case ast.CharacterConstant:
		c := ast.AsCharacterConstant(e)
		return CharacterValue{
			Addr: StringData(c.Value()),
			Len:  IntConst(len(c.Value())),
		}

	case ast.Designator:
		return em.emitDesignator(e)

	case ast.Binary:
		b := ast.AsBinary(e)
		if b.Operator() != ast.OpConcat {
			fatalf("character lowering of %s operator", b.Operator())
		}
		return em.emitConcat(b)

	case ast.Call:
		return em.emitCall(ast.AsCall(e))

	case ast.IntrinsicCall:
		return em.emitIntrinsic(ast.AsIntrinsicCall(e))

	case ast.ReturnedValue:
		rv := ast.AsReturnedValue(e)
		return em.fn.extractCharacter(EntityAddr{Entity: rv.Function()})

	default:
		fatalf("character lowering of %s expression", e.Kind())
		return CharacterValue{}
	}
}

func (em *characterExprEmitter) emitDesignator(e ast.Expr) CharacterValue {
	switch ast.AsDesignator(e).DesignatorKind() {
	case ast.ObjectName:
		return em.emitObjectName(ast.AsObjectName(e))
	case ast.Substring:
		return em.emitSubstring(ast.AsSubstring(e))
	case ast.ArrayElement:
		return em.emitArrayElement(ast.AsArrayElement(e))
	default:
		fatalf("character lowering of %s designator",
			ast.AsDesignator(e).DesignatorKind())
		return CharacterValue{}
	}
}

func (em *characterExprEmitter) emitObjectName(e *ast.ObjectNameExpr) CharacterValue {
	ent := e.Entity()
	switch ent.Storage() {
	case ast.StorageArgument:
		// Dummy arguments arrive as an (address, length) aggregate.
		return em.fn.extractCharacter(EntityAddr{Entity: ent})
	case ast.StorageNamedConstant:
		return em.fn.emitOperand(ent.Init())
	default:
		return CharacterValue{
			Addr: EntityAddr{Entity: ent},
			Len:  IntConst(em.fn.staticLength(ent.Type(), ent)),
		}
	}
}

func (f *FuncEmitter) extractCharacter(agg Value) CharacterValue {
	return CharacterValue{
		Addr: f.b.Extract(agg, "ptr"),
		Len:  f.b.Extract(agg, "len"),
	}
}

// staticLength returns the declared byte length of a character type.
// Local character storage always has a known length; anything else is a
// resolution bug.
func (f *FuncEmitter) staticLength(t ast.Type, ent *ast.Entity) int64 {
	ct, ok := t.(*ast.Character)
	if !ok {
		fatalf("character lowering of %s entity %s", t, ent.Name())
	}
	if ct.Len <= 0 {
		fatalf("no static length for character entity %s", ent.Name())
	}
	return int64(ct.Len)
}

// emitConcat lowers a concatenation chain. The whole chain shares one
// destination: the caller's when one is pending, otherwise a single
// temporary sized to the static sum of all operand lengths. The first
// operand pair goes through the runtime concat entry; each further
// operand is written at its running offset into the same buffer, the
// last one with the remainder of the destination so the tail is blank
// filled. Every window is clamped to the space left in the destination,
// so a chain longer than its destination truncates instead of writing
// past the end; an operand whose window is statically empty is not
// lowered at all.
func (em *characterExprEmitter) emitConcat(e *ast.BinaryExpr) CharacterValue {
	ops := flattenConcat(e)
	b := em.b

	var dest CharacterValue
	if em.hasDestination() {
		dest = em.takeDestination()
	} else {
		var size int64
		for _, op := range ops {
			size += approxLength(op.Type())
		}
		addr := b.Alloca(IntConst(size))
		dest = CharacterValue{Addr: addr, Len: IntConst(size)}
	}

	src1 := em.fn.emitOperand(ops[0])
	src2 := em.fn.emitOperand(ops[1])
	window := dest.Len
	if len(ops) > 2 {
		window = b.Min(dest.Len, b.Add(src1.Len, src2.Len))
	}
	b.Call(runtimeConcat, dest.Addr, window,
		src1.Addr, src1.Len, src2.Addr, src2.Len)

	offset := window
	for i := 2; i < len(ops); i++ {
		remain := b.Sub(dest.Len, offset)
		if c, ok := remain.(IntConst); ok && c <= 0 {
			break
		}
		src := em.fn.emitOperand(ops[i])
		addr := b.Offset(dest.Addr, offset)
		wlen := remain
		if i != len(ops)-1 {
			wlen = b.Min(remain, src.Len)
		}
		b.Call(runtimeAssign, addr, wlen, src.Addr, src.Len)
		offset = b.Add(offset, wlen)
	}
	return dest
}

// flattenConcat gathers the operands of a concatenation chain in
// left-to-right order.
func flattenConcat(e ast.Expr) []ast.Expr {
	if e.Kind() == ast.Binary {
		if b := ast.AsBinary(e); b.Operator() == ast.OpConcat {
			return append(flattenConcat(b.LHS()), flattenConcat(b.RHS())...)
		}
	}
	return []ast.Expr{e}
}

// approxLength is the static length used to size concatenation
// temporaries. An operand without a known static length counts as one
// byte; the truncation risk is accepted rather than papered over with a
// dynamic allocation this layer cannot free.
func approxLength(t ast.Type) int64 {
	if ct, ok := t.(*ast.Character); ok && ct.Len > 0 {
		return int64(ct.Len)
	}
	return 1
}

func (em *characterExprEmitter) emitSubstring(e *ast.SubstringExpr) CharacterValue {
	str := em.fn.emitOperand(e.Target())
	b := em.b
	if e.StartingPoint() != nil {
		start := b.Sub(em.fn.emitSizeExpr(e.StartingPoint()), IntConst(1))
		str.Addr = b.Offset(str.Addr, start)
		if e.EndPoint() != nil {
			str.Len = b.Sub(em.fn.emitSizeExpr(e.EndPoint()), start)
		} else {
			str.Len = b.Sub(str.Len, start)
		}
	} else if e.EndPoint() != nil {
		str.Len = em.fn.emitSizeExpr(e.EndPoint())
	}
	return str
}

func (em *characterExprEmitter) emitArrayElement(e *ast.ArrayElementExpr) CharacterValue {
	target := e.Target()
	if !ast.IsDesignator(target) ||
		ast.AsDesignator(target).DesignatorKind() != ast.ObjectName {
		fatalf("character array element of %s target", target.Kind())
	}
	ent := ast.AsObjectName(target).Entity()
	subs := e.Subscripts()
	if len(subs) != 1 {
		fatalf("character lowering of rank-%d array element", len(subs))
	}
	elemLen := em.fn.staticLength(ast.ElementType(ent.Type()), ent)

	b := em.b
	sub := em.fn.emitSizeExpr(subs[0])
	off := b.Mul(b.Sub(sub, IntConst(1)), IntConst(elemLen))
	return CharacterValue{
		Addr: b.Offset(EntityAddr{Entity: ent}, off),
		Len:  IntConst(elemLen),
	}
}

// emitCall lowers a character function call. Character functions return
// through a caller-supplied buffer passed ahead of the arguments, so a
// pending destination becomes the return slot with no copy afterwards.
func (em *characterExprEmitter) emitCall(e *ast.CallExpr) CharacterValue {
	fn := e.Function()
	var dest CharacterValue
	if em.hasDestination() {
		dest = em.takeDestination()
	} else {
		l := em.fn.staticLength(fn.Type(), fn)
		addr := em.b.Alloca(IntConst(l))
		dest = CharacterValue{Addr: addr, Len: IntConst(l)}
	}

	args := []Value{dest.Addr, dest.Len}
	for _, arg := range e.Args() {
		if _, ok := arg.Type().(*ast.Character); ok {
			cv := em.fn.emitOperand(arg)
			args = append(args, cv.Addr, cv.Len)
		} else {
			args = append(args, em.fn.emitSizeExpr(arg))
		}
	}
	em.b.Call(fn.Name(), args...)
	return dest
}

// emitIntrinsic lowers the character-valued intrinsics. CHAR is the
// only one: a one byte buffer holding the converted code.
func (em *characterExprEmitter) emitIntrinsic(e *ast.IntrinsicCallExpr) CharacterValue {
	if e.Function() != intrinsic.Char {
		fatalf("character lowering of %s intrinsic", e.Function())
	}
	b := em.b
	addr := b.Alloca(IntConst(1))
	b.Store(addr, em.fn.emitSizeExpr(e.Args()[0]))
	return CharacterValue{Addr: addr, Len: IntConst(1)}
}

// EmitCharacterRelationalExpr lowers a relational comparison of two
// character values: one runtime compare call whose signed result maps
// through the ordinary comparison to relational conversion.
func (f *FuncEmitter) EmitCharacterRelationalExpr(op ast.BinaryOp, lhs, rhs CharacterValue) Value {
	res := f.b.Call(runtimeCompare, lhs.Addr, lhs.Len, rhs.Addr, rhs.Len)
	return f.convertComparisonToRelational(op, res)
}

// convertComparisonToRelational turns a three-way comparison result
// into the logical value of the relational operator op.
func (f *FuncEmitter) convertComparisonToRelational(op ast.BinaryOp, result Value) Value {
	return f.b.ICmp(relationalPred(op), result, IntConst(0))
}

func relationalPred(op ast.BinaryOp) string {
	switch op {
	case ast.OpEqual:
		return "eq"
	case ast.OpNotEqual:
		return "ne"
	case ast.OpLessThan:
		return "slt"
	case ast.OpLessThanEqual:
		return "sle"
	case ast.OpGreaterThan:
		return "sgt"
	case ast.OpGreaterThanEqual:
		return "sge"
	default:
		fatalf("%s is not a relational operator", op)
		return ""
	}
}

// EmitCharacterIntrinsic lowers the scalar-valued character intrinsics
// LEN, LEN_TRIM, INDEX and the lexical comparisons.
func (f *FuncEmitter) EmitCharacterIntrinsic(fn intrinsic.Func, args []ast.Expr) Value {
	b := f.b
	switch fn {
	case intrinsic.Len:
		// The length is part of the value; no runtime call.
		v := f.emitOperand(args[0])
		return b.Convert(v.Len)

	case intrinsic.LenTrim:
		v := f.emitOperand(args[0])
		return b.Convert(b.Call(runtimeLenTrim, v.Addr, v.Len))

	case intrinsic.Index:
		s := f.emitOperand(args[0])
		sub := f.emitOperand(args[1])
		// search yields the first occurrence's address, one byte
		// before the string when there is none, so the difference
		// plus one is the 1-based position with zero for no match.
		ptr := b.Call(runtimeSearch, s.Addr, s.Len, sub.Addr, sub.Len)
		diff := b.Convert(b.PtrDiff(ptr, s.Addr))
		return b.Add(diff, IntConst(1))

	case intrinsic.Lge, intrinsic.Lgt, intrinsic.Lle, intrinsic.Llt:
		lhs := f.emitOperand(args[0])
		rhs := f.emitOperand(args[1])
		res := b.Call(runtimeLexcompare, lhs.Addr, lhs.Len, rhs.Addr, rhs.Len)
		return f.convertComparisonToRelational(lexicalComparisonOp(fn), res)

	default:
		fatalf("%s is not a character intrinsic", fn)
		return nil
	}
}

func lexicalComparisonOp(fn intrinsic.Func) ast.BinaryOp {
	switch fn {
	case intrinsic.Lle:
		return ast.OpLessThanEqual
	case intrinsic.Llt:
		return ast.OpLessThan
	case intrinsic.Lge:
		return ast.OpGreaterThanEqual
	case intrinsic.Lgt:
		return ast.OpGreaterThan
	default:
		fatalf("%s is not a lexical comparison", fn)
		return ast.OpNoneBinary
	}
}

// emitSizeExpr lowers an integer-typed expression to a size value.
// Subscripts and substring bounds are the only users; the general
// numeric expression lowering lives outside this layer.
func (f *FuncEmitter) emitSizeExpr(e ast.Expr) Value {
	b := f.b
	switch e.Kind() {
	case ast.IntegerConstant:
		return IntConst(ast.AsIntegerConstant(e).Value().Int64())

	case ast.Designator:
		if ast.AsDesignator(e).DesignatorKind() != ast.ObjectName {
			fatalf("size expression with %s designator",
				ast.AsDesignator(e).DesignatorKind())
		}
		ent := ast.AsObjectName(e).Entity()
		return b.Load(EntityAddr{Entity: ent})

	case ast.Unary:
		u := ast.AsUnary(e)
		if u.Operator() != ast.OpUnaryMinus {
			fatalf("size expression with %s operator", u.Operator())
		}
		return b.Sub(IntConst(0), f.emitSizeExpr(u.Operand()))

	case ast.Binary:
		be := ast.AsBinary(e)
		x := f.emitSizeExpr(be.LHS())
		y := f.emitSizeExpr(be.RHS())
		switch be.Operator() {
		case ast.OpPlus:
			return b.Add(x, y)
		case ast.OpMinus:
			return b.Sub(x, y)
		case ast.OpMultiply:
			return b.Mul(x, y)
		default:
			fatalf("size expression with %s operator", be.Operator())
			return nil
		}

	case ast.IntrinsicCall:
		ic := ast.AsIntrinsicCall(e)
		return f.EmitCharacterIntrinsic(ic.Function(), ic.Args())

	default:
		fatalf("size expression of %s kind", e.Kind())
		return nil
	}
}
