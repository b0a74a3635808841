package codegen

// Runtime entry points for default kind-1 character operations. The
// kind suffix keeps room for wider character kinds without renaming the
// base operations.

func mangleCharFunction(base string) string {
	return base + "_char1"
}

var (
	runtimeAssign     = mangleCharFunction("assign")
	runtimeConcat     = mangleCharFunction("concat")
	runtimeCompare    = mangleCharFunction("compare")
	runtimeLexcompare = mangleCharFunction("lexcompare")
	runtimeLenTrim    = mangleCharFunction("lentrim")
	runtimeSearch     = mangleCharFunction("search")
)
