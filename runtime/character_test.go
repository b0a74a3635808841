package runtime

import (
	"bytes"
	"testing"
)

func TestAssignTruncates(t *testing.T) {
	dst := make([]byte, 5)
	Assign(dst, []byte("ABCDEFGHIJ"))
	if !bytes.Equal(dst, []byte("ABCDE")) {
		t.Errorf("dst = %q, expected %q", dst, "ABCDE")
	}
}

func TestAssignBlankPads(t *testing.T) {
	dst := make([]byte, 5)
	Assign(dst, []byte("ABC"))
	if !bytes.Equal(dst, []byte("ABC  ")) {
		t.Errorf("dst = %q, expected %q", dst, "ABC  ")
	}
}

func TestAssignEqualLength(t *testing.T) {
	dst := make([]byte, 5)
	Assign(dst, []byte("ABCDE"))
	if !bytes.Equal(dst, []byte("ABCDE")) {
		t.Errorf("dst = %q, expected %q", dst, "ABCDE")
	}
}

func TestConcat(t *testing.T) {
	tests := []struct {
		dstLen   int
		lhs, rhs string
		want     string
	}{
		{10, "ABC", "DE", "ABCDE     "},
		{5, "ABC", "DE", "ABCDE"},
		{4, "ABC", "DE", "ABCD"},
		{2, "ABC", "DE", "AB"},
		{3, "", "XY", "XY "},
	}
	for _, tt := range tests {
		dst := make([]byte, tt.dstLen)
		Concat(dst, []byte(tt.lhs), []byte(tt.rhs))
		if string(dst) != tt.want {
			t.Errorf("Concat(%d, %q, %q) = %q, expected %q",
				tt.dstLen, tt.lhs, tt.rhs, dst, tt.want)
		}
	}
}

func TestCompareBlankPadding(t *testing.T) {
	tests := []struct {
		lhs, rhs string
		want     int
	}{
		{"ABC", "ABC", 0},
		{"ABC", "ABC  ", 0}, // shorter operand blank filled
		{"ABC  ", "ABC", 0},
		{"ABC", "ABD", -1},
		{"ABD", "ABC", 1},
		{"AB", "ABC", -1}, // blank < 'C'
		{"ABC", "AB", 1},
		{"AB\x01", "AB", -1}, // control char sorts below blank
		{"", "   ", 0},
	}
	for _, tt := range tests {
		if got := sign(Compare([]byte(tt.lhs), []byte(tt.rhs))); got != tt.want {
			t.Errorf("Compare(%q, %q) = %d, expected %d", tt.lhs, tt.rhs, got, tt.want)
		}
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func TestLenTrim(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"HELLO", 5},
		{"HELLO   ", 5},
		{"   ", 0},
		{"", 0},
		{"  A ", 3},
	}
	for _, tt := range tests {
		if got := LenTrim([]byte(tt.s)); got != tt.want {
			t.Errorf("LenTrim(%q) = %d, expected %d", tt.s, got, tt.want)
		}
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		s, sub string
		want   int // byte distance from the start of s, -1 absent
		index  int // the INDEX intrinsic's 1-based result
	}{
		{"FORTRAN", "TRAN", 3, 4},
		{"FORTRAN", "FOR", 0, 1},
		{"FORTRAN", "X", -1, 0},
		{"FORTRAN", "", 0, 1},
		{"AAB", "AB", 1, 2},
	}
	for _, tt := range tests {
		got := Search([]byte(tt.s), []byte(tt.sub))
		if got != tt.want {
			t.Errorf("Search(%q, %q) = %d, expected %d", tt.s, tt.sub, got, tt.want)
		}
		// Lowered INDEX adds one to the pointer difference.
		if got+1 != tt.index {
			t.Errorf("Search(%q, %q)+1 = %d, expected INDEX result %d",
				tt.s, tt.sub, got+1, tt.index)
		}
	}
}
