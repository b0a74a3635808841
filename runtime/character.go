// Package runtime is the reference implementation of the character
// runtime entry points the code generator calls through the _char1
// mangled names. Lowered code links against the native library with the
// same contracts; this package pins those contracts down and makes them
// testable.
package runtime

import "bytes"

// Assign copies src into dst with Fortran assignment semantics: when
// src is longer than dst the excess is dropped, when it is shorter the
// remainder of dst is blank filled.
func Assign(dst, src []byte) {
	n := copy(dst, src)
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}

// Concat writes lhs followed by rhs into dst with the same truncate and
// blank-fill behavior as Assign. The usual destination is exactly
// len(lhs)+len(rhs) bytes.
func Concat(dst, lhs, rhs []byte) {
	n := copy(dst, lhs)
	if n == len(lhs) {
		n += copy(dst[n:], rhs)
	}
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}

// Compare orders lhs and rhs, returning a negative, zero, or positive
// result. The shorter operand compares as if blank filled to the length
// of the longer one.
func Compare(lhs, rhs []byte) int {
	n := len(lhs)
	if len(rhs) < n {
		n = len(rhs)
	}
	if c := bytes.Compare(lhs[:n], rhs[:n]); c != 0 {
		return c
	}
	for _, b := range lhs[n:] {
		if b != ' ' {
			if b < ' ' {
				return -1
			}
			return 1
		}
	}
	for _, b := range rhs[n:] {
		if b != ' ' {
			if b < ' ' {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Lexcompare orders lhs and rhs in the ASCII collating sequence. For
// default kind-1 characters this coincides with Compare; it is a
// separate entry point because the native relational operators may use
// the processor collation.
func Lexcompare(lhs, rhs []byte) int {
	return Compare(lhs, rhs)
}

// LenTrim returns the length of s without trailing blanks.
func LenTrim(s []byte) int {
	i := len(s)
	for i > 0 && s[i-1] == ' ' {
		i--
	}
	return i
}

// Search returns the byte distance from the start of s to the first
// occurrence of sub, or -1 when sub does not occur. The native entry
// point returns the occurrence's address, one byte before s when there
// is none; callers recover the 1-based INDEX position by subtracting
// the base address and adding one. The empty substring occurs at
// distance 0.
func Search(s, sub []byte) int {
	return bytes.Index(s, sub)
}
