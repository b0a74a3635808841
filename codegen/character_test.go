package codegen

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/zeuk/flang/ast"
	"github.com/zeuk/flang/intrinsic"
)

func charEntity(name string, length int) *ast.Entity {
	return ast.NewEntity(name, ast.CharacterOfLen(length))
}

func objectName(a *ast.Arena, ent *ast.Entity) ast.Expr {
	return ast.NewObjectName(a, 0, ent)
}

func concat(a *ast.Arena, length int, lhs, rhs ast.Expr) ast.Expr {
	return ast.NewBinaryExpr(a, 0, ast.OpConcat, ast.CharacterOfLen(length), lhs, rhs)
}

func TestAssignmentEmitsOneAssignCall(t *testing.T) {
	a := ast.NewArena()
	src := charEntity("A", 5)
	dst := charEntity("D", 8)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.EmitCharacterAssignment(objectName(a, dst), objectName(a, src))

	if n := b.CallCount(runtimeAssign); n != 1 {
		t.Errorf("%d assign calls, expected 1", n)
	}
	if n := b.OpCount(OpAlloca); n != 0 {
		t.Errorf("%d allocas, expected 0", n)
	}
}

func TestConcatChainFusesIntoDestination(t *testing.T) {
	a := ast.NewArena()
	A := charEntity("A", 5)
	B := charEntity("B", 5)
	C := charEntity("C", 5)
	D := charEntity("D", 16)

	// D = A // B // C
	rhs := concat(a, 15, concat(a, 10, objectName(a, A), objectName(a, B)),
		objectName(a, C))

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.EmitCharacterAssignment(objectName(a, D), rhs)

	if n := b.OpCount(OpAlloca); n != 0 {
		t.Errorf("%d allocas, expected 0: no intermediate temporary", n)
	}
	if n := b.CallCount(runtimeConcat); n != 1 {
		t.Errorf("%d concat calls, expected 1", n)
	}
	if n := b.CallCount(runtimeAssign); n != 1 {
		t.Errorf("%d assign calls, expected 1 for the chain tail", n)
	}

	// The tail write lands at the running offset past A and B, with the
	// remainder of D as its window so the tail is blank filled.
	listing := b.String()
	if !strings.Contains(listing, "offset(&D, 10)") {
		t.Errorf("no tail write at offset 10 in:\n%s", listing)
	}
	if !strings.Contains(listing, "call assign_char1(%t1, 6, &C, 5)") {
		t.Errorf("no remainder window of 6 bytes in:\n%s", listing)
	}
}

func TestLongConcatChainStillOneBuffer(t *testing.T) {
	a := ast.NewArena()
	ents := []*ast.Entity{
		charEntity("A", 2), charEntity("B", 3),
		charEntity("C", 4), charEntity("D", 5),
	}
	dst := charEntity("OUT", 20)

	rhs := objectName(a, ents[0])
	length := 2
	for _, e := range ents[1:] {
		ct := e.Type().(*ast.Character)
		length += ct.Len
		rhs = concat(a, length, rhs, objectName(a, e))
	}

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.EmitCharacterAssignment(objectName(a, dst), rhs)

	if n := b.OpCount(OpAlloca); n != 0 {
		t.Errorf("%d allocas, expected 0", n)
	}
	if n := b.CallCount(runtimeConcat); n != 1 {
		t.Errorf("%d concat calls, expected 1", n)
	}
	if n := b.CallCount(runtimeAssign); n != 2 {
		t.Errorf("%d assign calls, expected 2 for the chain tail", n)
	}
}

func TestConcatChainTruncatesToShortDestination(t *testing.T) {
	a := ast.NewArena()
	A := charEntity("A", 2)
	B := charEntity("B", 2)
	C := charEntity("C", 2)
	D := charEntity("D", 3)

	// D = A // B // C with a destination shorter than A // B alone:
	// the concat window stops at D's length and C is never written.
	rhs := concat(a, 6, concat(a, 4, objectName(a, A), objectName(a, B)),
		objectName(a, C))

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.EmitCharacterAssignment(objectName(a, D), rhs)

	listing := b.String()
	if !strings.Contains(listing, "call concat_char1(&D, 3, &A, 2, &B, 2)") {
		t.Errorf("concat window not clamped to 3 in:\n%s", listing)
	}
	if n := b.CallCount(runtimeAssign); n != 0 {
		t.Errorf("%d assign calls, expected 0 into a full destination", n)
	}
	if n := b.OpCount(OpOffset); n != 0 {
		t.Errorf("%d offsets, expected 0 past the destination end", n)
	}
}

func TestConcatChainClampsMidChainOperand(t *testing.T) {
	a := ast.NewArena()
	A := charEntity("A", 3)
	B := charEntity("B", 3)
	C := charEntity("C", 3)
	E := charEntity("E", 3)
	D := charEntity("D", 7)

	// D = A // B // C // E: one byte of D remains after A and B, so C
	// is written with a one byte window and E is dropped.
	rhs := concat(a, 12,
		concat(a, 9, concat(a, 6, objectName(a, A), objectName(a, B)),
			objectName(a, C)),
		objectName(a, E))

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.EmitCharacterAssignment(objectName(a, D), rhs)

	if n := b.CallCount(runtimeConcat); n != 1 {
		t.Errorf("%d concat calls, expected 1", n)
	}
	if n := b.CallCount(runtimeAssign); n != 1 {
		t.Errorf("%d assign calls, expected 1: E has no space left", n)
	}
	listing := b.String()
	if !strings.Contains(listing, "offset(&D, 6)") {
		t.Errorf("no write at offset 6 in:\n%s", listing)
	}
	if !strings.Contains(listing, "call assign_char1(%t1, 1, &C, 3)") {
		t.Errorf("no clamped one byte window in:\n%s", listing)
	}
}

func TestConcatWithoutDestinationAllocatesSum(t *testing.T) {
	a := ast.NewArena()
	A := charEntity("A", 5)
	B := charEntity("B", 7)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	v := f.EmitCharacterExpr(concat(a, 12, objectName(a, A), objectName(a, B)))

	if n := b.OpCount(OpAlloca); n != 1 {
		t.Fatalf("%d allocas, expected 1", n)
	}
	var alloca Instr
	for _, in := range b.Instrs() {
		if in.Op == OpAlloca {
			alloca = in
		}
	}
	if size, ok := alloca.Args[0].(IntConst); !ok || size != 12 {
		t.Errorf("temporary size = %s, expected 12", alloca.Args[0])
	}
	if l, ok := v.Len.(IntConst); !ok || l != 12 {
		t.Errorf("result length = %s, expected 12", v.Len)
	}
	if n := b.CallCount(runtimeConcat); n != 1 {
		t.Errorf("%d concat calls, expected 1", n)
	}
}

func TestConcatUnknownLengthCountsAsOne(t *testing.T) {
	a := ast.NewArena()
	A := charEntity("A", 5)
	// Dummy argument of assumed length.
	arg := ast.NewEntity("S", ast.CharacterOfLen(0))
	arg.SetStorage(ast.StorageArgument)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.EmitCharacterExpr(concat(a, 0, objectName(a, A), objectName(a, arg)))

	var alloca Instr
	for _, in := range b.Instrs() {
		if in.Op == OpAlloca {
			alloca = in
		}
	}
	if size, ok := alloca.Args[0].(IntConst); !ok || size != 6 {
		t.Errorf("temporary size = %s, expected 6 (5 + 1 approximated)", alloca.Args[0])
	}
}

func TestSubstringArithmeticFolds(t *testing.T) {
	a := ast.NewArena()
	S := charEntity("S", 8)

	b := NewBuilder()
	f := NewFuncEmitter(b)

	// S(2:4): offset 1, length 3
	v := f.EmitCharacterExpr(ast.NewSubstring(a, 0, objectName(a, S),
		ast.NewIntegerConstant(a, 0, 1, "2"),
		ast.NewIntegerConstant(a, 0, 1, "4")))
	if l, ok := v.Len.(IntConst); !ok || l != 3 {
		t.Errorf("S(2:4) length = %s, expected 3", v.Len)
	}
	listing := b.String()
	if !strings.Contains(listing, "offset(&S, 1)") {
		t.Errorf("S(2:4) did not offset by 1:\n%s", listing)
	}

	// S(:4): base address unchanged, length 4
	b2 := NewBuilder()
	f2 := NewFuncEmitter(b2)
	v2 := f2.EmitCharacterExpr(ast.NewSubstring(a, 0, objectName(a, S),
		nil, ast.NewIntegerConstant(a, 0, 1, "4")))
	if l, ok := v2.Len.(IntConst); !ok || l != 4 {
		t.Errorf("S(:4) length = %s, expected 4", v2.Len)
	}
	if _, ok := v2.Addr.(EntityAddr); !ok {
		t.Errorf("S(:4) address = %s, expected the entity base", v2.Addr)
	}

	// S(3:): offset 2, length 8-2 = 6
	b3 := NewBuilder()
	f3 := NewFuncEmitter(b3)
	v3 := f3.EmitCharacterExpr(ast.NewSubstring(a, 0, objectName(a, S),
		ast.NewIntegerConstant(a, 0, 1, "3"), nil))
	if l, ok := v3.Len.(IntConst); !ok || l != 6 {
		t.Errorf("S(3:) length = %s, expected 6", v3.Len)
	}
}

func TestSubstringDynamicBound(t *testing.T) {
	a := ast.NewArena()
	S := charEntity("S", 8)
	i := ast.NewEntity("I", ast.IntegerType)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	v := f.EmitCharacterExpr(ast.NewSubstring(a, 0, objectName(a, S),
		objectName(a, i), nil))

	if _, ok := v.Len.(IntConst); ok {
		t.Error("dynamic bound folded to a constant")
	}
	if n := b.OpCount(OpLoad); n != 1 {
		t.Errorf("%d loads, expected 1 for the bound variable", n)
	}
	if n := b.OpCount(OpSub); n != 2 {
		t.Errorf("%d subs, expected 2 (start-1 and len-start)", n)
	}
}

func TestArrayElementAddressing(t *testing.T) {
	a := ast.NewArena()
	lines := charEntity("LINES", 10)
	lines.SetArraySpec([]ast.ArraySpec{
		ast.NewExplicitShapeSpec(nil, ast.NewIntegerConstant(a, 0, 1, "4")),
	})

	b := NewBuilder()
	f := NewFuncEmitter(b)
	elem := ast.NewArrayElement(a, 0, objectName(a, lines),
		[]ast.Expr{ast.NewIntegerConstant(a, 0, 1, "3")})
	v := f.EmitCharacterExpr(elem)

	if l, ok := v.Len.(IntConst); !ok || l != 10 {
		t.Errorf("element length = %s, expected 10", v.Len)
	}
	// Element 3 starts at byte (3-1)*10 = 20.
	if !strings.Contains(b.String(), "offset(&LINES, 20)") {
		t.Errorf("element 3 not at offset 20:\n%s", b.String())
	}
}

func TestArgumentExtractsAggregate(t *testing.T) {
	a := ast.NewArena()
	arg := ast.NewEntity("S", ast.CharacterOfLen(0))
	arg.SetStorage(ast.StorageArgument)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	v := f.EmitCharacterExpr(objectName(a, arg))

	if n := b.OpCount(OpExtract); n != 2 {
		t.Fatalf("%d extracts, expected 2 (ptr and len)", n)
	}
	if _, ok := v.Addr.(Temp); !ok {
		t.Errorf("argument address = %s, expected an extract result", v.Addr)
	}
}

func TestNamedConstantLowersItsValue(t *testing.T) {
	a := ast.NewArena()
	p := charEntity("GREETING", 5)
	p.SetInit(ast.NewCharacterConstant(a, 0, 7, "HELLO"))

	b := NewBuilder()
	f := NewFuncEmitter(b)
	v := f.EmitCharacterExpr(objectName(a, p))

	if s, ok := v.Addr.(StringData); !ok || string(s) != "HELLO" {
		t.Errorf("named constant address = %s, expected the literal data", v.Addr)
	}
	if l, ok := v.Len.(IntConst); !ok || l != 5 {
		t.Errorf("named constant length = %s, expected 5", v.Len)
	}
}

func TestCallUsesDestinationAsReturnSlot(t *testing.T) {
	a := ast.NewArena()
	fn := ast.NewFunctionEntity("MAKENAME", ast.CharacterOfLen(8))
	D := charEntity("D", 8)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	call := ast.NewCallExpr(a, 0, fn, nil)
	f.EmitCharacterAssignment(objectName(a, D), call)

	if n := b.OpCount(OpAlloca); n != 0 {
		t.Errorf("%d allocas, expected 0: destination is the return slot", n)
	}
	if n := b.CallCount(runtimeAssign); n != 0 {
		t.Errorf("%d assign calls, expected 0: no post-call copy", n)
	}
	if n := b.CallCount("MAKENAME"); n != 1 {
		t.Errorf("%d calls to the function, expected 1", n)
	}
}

func TestCallWithoutDestinationAllocates(t *testing.T) {
	a := ast.NewArena()
	fn := ast.NewFunctionEntity("MAKENAME", ast.CharacterOfLen(8))

	b := NewBuilder()
	f := NewFuncEmitter(b)
	v := f.EmitCharacterExpr(ast.NewCallExpr(a, 0, fn, nil))

	if n := b.OpCount(OpAlloca); n != 1 {
		t.Errorf("%d allocas, expected 1 for the return buffer", n)
	}
	if l, ok := v.Len.(IntConst); !ok || l != 8 {
		t.Errorf("result length = %s, expected 8", v.Len)
	}
}

func TestReturnedValueExtracts(t *testing.T) {
	a := ast.NewArena()
	fn := ast.NewFunctionEntity("MAKENAME", ast.CharacterOfLen(8))

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.SetReturnVariable(fn)
	v := f.EmitCharacterExpr(ast.NewReturnedValue(a, 0, fn))

	if n := b.OpCount(OpExtract); n != 2 {
		t.Errorf("%d extracts, expected 2", n)
	}
	if v.Addr == nil || v.Len == nil {
		t.Error("returned value missing address or length")
	}
}

func TestLenReadsLengthField(t *testing.T) {
	a := ast.NewArena()
	S := charEntity("S", 8)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	v := f.EmitCharacterIntrinsic(intrinsic.Len, []ast.Expr{objectName(a, S)})

	if n := len(b.Instrs()); n != 0 {
		t.Errorf("%d instructions, expected 0: LEN is the length field", n)
	}
	if l, ok := v.(IntConst); !ok || l != 8 {
		t.Errorf("LEN(S) = %s, expected 8", v)
	}
}

func TestLenTrimCallsRuntime(t *testing.T) {
	a := ast.NewArena()
	S := charEntity("S", 8)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.EmitCharacterIntrinsic(intrinsic.LenTrim, []ast.Expr{objectName(a, S)})

	if n := b.CallCount(runtimeLenTrim); n != 1 {
		t.Errorf("%d lentrim calls, expected 1", n)
	}
}

func TestIndexLowering(t *testing.T) {
	a := ast.NewArena()
	S := charEntity("S", 8)
	sub := charEntity("SUB", 3)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.EmitCharacterIntrinsic(intrinsic.Index,
		[]ast.Expr{objectName(a, S), objectName(a, sub)})

	if n := b.CallCount(runtimeSearch); n != 1 {
		t.Errorf("%d search calls, expected 1", n)
	}
	if n := b.OpCount(OpPtrDiff); n != 1 {
		t.Errorf("%d ptrdiffs, expected 1", n)
	}
	if n := b.OpCount(OpAdd); n != 1 {
		t.Errorf("%d adds, expected 1 for the 1-based adjustment", n)
	}
}

func TestLexicalComparisons(t *testing.T) {
	a := ast.NewArena()
	A := charEntity("A", 4)
	B := charEntity("B", 4)

	tests := []struct {
		fn   intrinsic.Func
		pred string
	}{
		{intrinsic.Lge, "sge"},
		{intrinsic.Lgt, "sgt"},
		{intrinsic.Lle, "sle"},
		{intrinsic.Llt, "slt"},
	}
	for _, tt := range tests {
		b := NewBuilder()
		f := NewFuncEmitter(b)
		f.EmitCharacterIntrinsic(tt.fn,
			[]ast.Expr{objectName(a, A), objectName(a, B)})

		if n := b.CallCount(runtimeLexcompare); n != 1 {
			t.Errorf("%s: %d lexcompare calls, expected 1", tt.fn, n)
		}
		found := false
		for _, in := range b.Instrs() {
			if in.Op == OpICmp && in.Pred == tt.pred {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: no icmp with predicate %s", tt.fn, tt.pred)
		}
	}
}

func TestRelationalExpr(t *testing.T) {
	a := ast.NewArena()
	A := charEntity("A", 4)
	B := charEntity("B", 4)

	b := NewBuilder()
	f := NewFuncEmitter(b)
	lhs := f.EmitCharacterExpr(objectName(a, A))
	rhs := f.EmitCharacterExpr(objectName(a, B))
	f.EmitCharacterRelationalExpr(ast.OpEqual, lhs, rhs)

	if n := b.CallCount(runtimeCompare); n != 1 {
		t.Errorf("%d compare calls, expected 1", n)
	}
	found := false
	for _, in := range b.Instrs() {
		if in.Op == OpICmp && in.Pred == "eq" {
			found = true
		}
	}
	if !found {
		t.Error("no icmp eq against zero")
	}
}

func TestCharIntrinsicStoresInline(t *testing.T) {
	a := ast.NewArena()

	b := NewBuilder()
	f := NewFuncEmitter(b)
	call := ast.NewIntrinsicCall(a, 0, intrinsic.Char,
		[]ast.Expr{ast.NewIntegerConstant(a, 0, 2, "65")}, ast.CharacterOfLen(1))
	v := f.EmitCharacterExpr(call)

	if n := b.OpCount(OpStore); n != 1 {
		t.Errorf("%d stores, expected 1", n)
	}
	if l, ok := v.Len.(IntConst); !ok || l != 1 {
		t.Errorf("CHAR length = %s, expected 1", v.Len)
	}
}

func TestNonCharacterKindIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flang.codegen")
	defer teardown()
	a := ast.NewArena()

	b := NewBuilder()
	f := NewFuncEmitter(b)
	defer func() {
		if recover() == nil {
			t.Error("lowering an integer constant did not panic")
		}
	}()
	f.EmitCharacterExpr(ast.NewIntegerConstant(a, 0, 1, "1"))
}

func TestDestinationNeverLeaksIntoOperands(t *testing.T) {
	a := ast.NewArena()
	A := charEntity("A", 5)
	B := charEntity("B", 5)
	D := charEntity("D", 4)

	// D = (A // B)(2:5): the concat inside the substring target gets
	// its own temporary; D stays the assignment's destination.
	inner := concat(a, 10, objectName(a, A), objectName(a, B))
	sub := ast.NewSubstring(a, 0, inner,
		ast.NewIntegerConstant(a, 0, 1, "2"),
		ast.NewIntegerConstant(a, 0, 1, "5"))

	b := NewBuilder()
	f := NewFuncEmitter(b)
	f.EmitCharacterAssignment(objectName(a, D), sub)

	if n := b.OpCount(OpAlloca); n != 1 {
		t.Errorf("%d allocas, expected 1 for the inner concat", n)
	}
	if n := b.CallCount(runtimeAssign); n != 1 {
		t.Errorf("%d assign calls, expected 1 into D", n)
	}
}
