// Package codegen lowers character-typed expression trees into an
// instruction stream of runtime library calls. Lowering is destination
// passing: the caller of an assignment supplies the left-hand side's
// storage, and concatenations and character function calls write into
// it directly instead of allocating temporaries.
package codegen

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to the flang.codegen trace.
func tracer() tracing.Trace {
	return tracing.Select("flang.codegen")
}

// fatalf reports an internal lowering bug. Resolution hands this layer
// a fully typed tree; anything that violates that contract aborts the
// compilation.
func fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	tracer().Errorf(msg)
	panic("codegen: " + msg)
}
