package intrinsic

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want Func
	}{
		{"LEN", Len},
		{"len", Len},
		{"Len_Trim", LenTrim},
		{"INDEX", Index},
		{"index", Index},
		{"SQRT", Sqrt},
		{"lge", Lge},
		{"CHAR", Char},
		{"NOSUCH", None},
		{"", None},
	}
	for _, tt := range tests {
		if got := Lookup(tt.name); got != tt.want {
			t.Errorf("Lookup(%q) = %s, expected %s", tt.name, got, tt.want)
		}
	}
}

func TestArgCounts(t *testing.T) {
	if !Len.AcceptsArgCount(1) || Len.AcceptsArgCount(2) {
		t.Error("LEN takes exactly one argument")
	}
	if !Index.AcceptsArgCount(2) || Index.AcceptsArgCount(1) {
		t.Error("INDEX takes exactly two arguments")
	}
	if !Max.AcceptsArgCount(2) || !Max.AcceptsArgCount(7) || Max.AcceptsArgCount(1) {
		t.Error("MAX takes two or more arguments")
	}
	if !Cmplx.AcceptsArgCount(1) || !Cmplx.AcceptsArgCount(2) || Cmplx.AcceptsArgCount(3) {
		t.Error("CMPLX takes one or two arguments")
	}
}

func TestIsLexicalCompare(t *testing.T) {
	for _, f := range []Func{Lge, Lgt, Lle, Llt} {
		if !f.IsLexicalCompare() {
			t.Errorf("%s not recognized as lexical comparison", f)
		}
	}
	for _, f := range []Func{Len, Index, Abs, None} {
		if f.IsLexicalCompare() {
			t.Errorf("%s wrongly recognized as lexical comparison", f)
		}
	}
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()
	if len(names) != int(numFuncs)-1 {
		t.Fatalf("Names() has %d entries, expected %d", len(names), int(numFuncs)-1)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names out of order: %q before %q", names[i-1], names[i])
		}
	}
	for _, name := range names {
		if Lookup(name) == None {
			t.Errorf("Names() entry %q does not look up", name)
		}
	}
}
