// charlower lowers character expressions and prints the resulting
// runtime call stream.
//
// Usage:
//
//	charlower [flags]
//
// It builds a small demonstration program fragment
//
//	CHARACTER*5 A, B, C
//	CHARACTER*16 D
//	D = A // B // C
//	D(2:8) = 'HELLO'
//
// and prints the lowered instructions, one per line. With -verbose the
// package tracers log the lowering decisions as they happen.
package main

import (
	"flag"
	"fmt"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/xyproto/env/v2"

	"github.com/zeuk/flang/ast"
	"github.com/zeuk/flang/codegen"
)

var flagTrace = flag.String("trace", env.Str("FLANG_TRACE", "Error"),
	"trace level [Debug|Info|Error]")

func main() {
	flag.Parse()
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*flagTrace)
	tracing.Select("flang.ast").SetTraceLevel(level)
	tracing.Select("flang.codegen").SetTraceLevel(level)

	arena := ast.NewArena()
	a := ast.NewEntity("A", ast.CharacterOfLen(5))
	b := ast.NewEntity("B", ast.CharacterOfLen(5))
	c := ast.NewEntity("C", ast.CharacterOfLen(5))
	d := ast.NewEntity("D", ast.CharacterOfLen(16))

	concat := ast.NewBinaryExpr(arena, 0, ast.OpConcat, ast.CharacterOfLen(15),
		ast.NewBinaryExpr(arena, 0, ast.OpConcat, ast.CharacterOfLen(10),
			ast.NewObjectName(arena, 0, a),
			ast.NewObjectName(arena, 0, b)),
		ast.NewObjectName(arena, 0, c))

	builder := codegen.NewBuilder()
	emitter := codegen.NewFuncEmitter(builder)

	pterm.Info.Println("D = A // B // C")
	emitter.EmitCharacterAssignment(ast.NewObjectName(arena, 0, d), concat)

	pterm.Info.Println("D(2:8) = 'HELLO'")
	lhs := ast.NewSubstring(arena, 0, ast.NewObjectName(arena, 0, d),
		ast.NewIntegerConstant(arena, 0, 0, "2"),
		ast.NewIntegerConstant(arena, 0, 0, "8"))
	rhs := ast.NewCharacterConstant(arena, 0, 0, "HELLO")
	emitter.EmitCharacterAssignment(lhs, rhs)

	fmt.Print(builder.String())
}
