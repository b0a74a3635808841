package ast

import (
	"math/big"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestArenaWordAccounting(t *testing.T) {
	a := NewArena()
	w1 := a.allocWords(2)
	w2 := a.allocWords(3)
	if len(w1) != 2 || len(w2) != 3 {
		t.Fatalf("allocation lengths %d, %d", len(w1), len(w2))
	}
	if a.WordAllocs() != 2 || a.LiveWordAllocs() != 2 {
		t.Errorf("allocs = %d live = %d, expected 2 and 2",
			a.WordAllocs(), a.LiveWordAllocs())
	}
	a.releaseWords(w1)
	if a.LiveWordAllocs() != 1 {
		t.Errorf("live = %d after release, expected 1", a.LiveWordAllocs())
	}
	a.releaseWords(w2)
	if a.LiveWordAllocs() != 0 {
		t.Errorf("live = %d after release, expected 0", a.LiveWordAllocs())
	}
}

func TestArenaLargeAllocation(t *testing.T) {
	a := NewArena()
	w := a.allocWords(4096) // larger than one chunk
	if len(w) != 4096 {
		t.Fatalf("allocation length %d", len(w))
	}
	w[0], w[4095] = 1, 2
	if a.LiveWordAllocs() != 1 {
		t.Errorf("live = %d, expected 1", a.LiveWordAllocs())
	}
}

func TestArenaAllocationsDoNotOverlap(t *testing.T) {
	a := NewArena()
	w1 := a.allocWords(2)
	w2 := a.allocWords(2)
	w1[0], w1[1] = 1, 2
	w2[0], w2[1] = 3, 4
	if w1[0] != 1 || w1[1] != 2 {
		t.Error("second allocation overwrote the first")
	}
	// Appending to a capped slice must not bleed into the next
	// allocation either.
	_ = append(w1, 99)
	if w2[0] != 3 {
		t.Error("append to first allocation overwrote the second")
	}
}

func TestArenaDoubleReleaseIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flang.ast")
	defer teardown()
	a := NewArena()
	w := a.allocWords(2)
	a.releaseWords(w)
	defer func() {
		if recover() == nil {
			t.Error("double release did not panic")
		}
	}()
	a.releaseWords(w)
}

func TestLiteralsLeaveNoLiveAllocations(t *testing.T) {
	a := NewArena()
	e := NewIntegerConstant(a, 0, 40, "340282366920938463463374607431768211456") // 2**128
	if a.LiveWordAllocs() != 1 {
		t.Fatalf("live = %d, expected 1", a.LiveWordAllocs())
	}
	e.SetValue(a, big.NewInt(1))
	if a.LiveWordAllocs() != 0 {
		t.Errorf("live = %d after narrowing, expected 0", a.LiveWordAllocs())
	}
}
