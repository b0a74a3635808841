// Package intrinsic enumerates the Fortran intrinsic functions the
// expression layer recognizes and provides name-based lookup.
package intrinsic

import (
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// Func identifies one intrinsic function.
type Func int

const (
	None Func = iota

	// Type conversions.
	Int
	Real
	Dble
	Cmplx
	Ichar
	Char

	// Numeric.
	Aint
	Anint
	Nint
	Abs
	Mod
	Sign
	Dim
	Dprod
	Max
	Min

	// Inquiry.
	Len
	LenTrim
	Index
	Aimag
	Conjg

	// Math.
	Sqrt
	Exp
	Log
	Log10
	Sin
	Cos
	Tan
	Asin
	Acos
	Atan
	Atan2
	Sinh
	Cosh
	Tanh

	// Lexical comparison.
	Lge
	Lgt
	Lle
	Llt

	numFuncs
)

type funcInfo struct {
	name    string
	minArgs int
	maxArgs int // -1 means unbounded
}

var funcs = [numFuncs]funcInfo{
	None:    {"", 0, 0},
	Int:     {"INT", 1, 1},
	Real:    {"REAL", 1, 1},
	Dble:    {"DBLE", 1, 1},
	Cmplx:   {"CMPLX", 1, 2},
	Ichar:   {"ICHAR", 1, 1},
	Char:    {"CHAR", 1, 1},
	Aint:    {"AINT", 1, 1},
	Anint:   {"ANINT", 1, 1},
	Nint:    {"NINT", 1, 1},
	Abs:     {"ABS", 1, 1},
	Mod:     {"MOD", 2, 2},
	Sign:    {"SIGN", 2, 2},
	Dim:     {"DIM", 2, 2},
	Dprod:   {"DPROD", 2, 2},
	Max:     {"MAX", 2, -1},
	Min:     {"MIN", 2, -1},
	Len:     {"LEN", 1, 1},
	LenTrim: {"LEN_TRIM", 1, 1},
	Index:   {"INDEX", 2, 2},
	Aimag:   {"AIMAG", 1, 1},
	Conjg:   {"CONJG", 1, 1},
	Sqrt:    {"SQRT", 1, 1},
	Exp:     {"EXP", 1, 1},
	Log:     {"LOG", 1, 1},
	Log10:   {"LOG10", 1, 1},
	Sin:     {"SIN", 1, 1},
	Cos:     {"COS", 1, 1},
	Tan:     {"TAN", 1, 1},
	Asin:    {"ASIN", 1, 1},
	Acos:    {"ACOS", 1, 1},
	Atan:    {"ATAN", 1, 1},
	Atan2:   {"ATAN2", 2, 2},
	Sinh:    {"SINH", 1, 1},
	Cosh:    {"COSH", 1, 1},
	Tanh:    {"TANH", 1, 1},
	Lge:     {"LGE", 2, 2},
	Lgt:     {"LGT", 2, 2},
	Lle:     {"LLE", 2, 2},
	Llt:     {"LLT", 2, 2},
}

// byName maps the upper-cased intrinsic name to its Func. The ordered
// map keeps Names deterministic for diagnostics and tests.
var byName = treemap.NewWith(utils.StringComparator)

func init() {
	for f := None + 1; f < numFuncs; f++ {
		byName.Put(funcs[f].name, f)
	}
}

func (f Func) String() string {
	if f <= None || f >= numFuncs {
		return "unknown-intrinsic"
	}
	return funcs[f].name
}

// MinArgs returns the minimum argument count of f.
func (f Func) MinArgs() int { return funcs[f].minArgs }

// MaxArgs returns the maximum argument count of f, or -1 when f accepts
// arbitrarily many arguments.
func (f Func) MaxArgs() int { return funcs[f].maxArgs }

// AcceptsArgCount reports whether n arguments is a valid call of f.
func (f Func) AcceptsArgCount(n int) bool {
	if n < funcs[f].minArgs {
		return false
	}
	return funcs[f].maxArgs < 0 || n <= funcs[f].maxArgs
}

// IsLexicalCompare reports whether f is one of the LGE, LGT, LLE, LLT
// character comparison intrinsics.
func (f Func) IsLexicalCompare() bool {
	return f >= Lge && f <= Llt
}

// Lookup resolves a case-insensitive intrinsic name to its Func. It
// returns None when the name is not an intrinsic.
func Lookup(name string) Func {
	v, ok := byName.Get(strings.ToUpper(name))
	if !ok {
		return None
	}
	return v.(Func)
}

// Names returns all intrinsic names in lexical order.
func Names() []string {
	names := make([]string, 0, byName.Size())
	for _, key := range byName.Keys() {
		names = append(names, key.(string))
	}
	return names
}
