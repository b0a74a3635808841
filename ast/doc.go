// Package ast provides the arena-owned expression tree of the compiler:
// constant, designator, operator and intrinsic-call nodes, the numeric
// storage backing arbitrary-precision literals, and the kind-tag downcast
// protocol used by later phases.
//
// The tree is built by the parser and finished by semantic analysis; after
// resolution sets every node's type the tree is read-only. Nodes never own
// each other across subtrees: every node exclusively owns its operands, and
// designators hold non-owning references to the declared entity they denote.
package ast

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'flang.ast'
func tracer() tracing.Trace {
	return tracing.Select("flang.ast")
}

// fatalf reports an internal invariant violation. Conditions reported this
// way are bugs in an earlier compilation phase, never user diagnostics.
func fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	tracer().Errorf(msg)
	panic("ast: " + msg)
}
