package ast

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestArraySpecKinds(t *testing.T) {
	a := NewArena()
	upper := NewIntegerConstant(a, 0, 2, "10")
	tests := []struct {
		spec ArraySpec
		kind ArraySpecKind
	}{
		{NewExplicitShapeSpec(nil, upper), ExplicitShape},
		{NewAssumedShapeSpec(nil), AssumedShape},
		{NewDeferredShapeSpec(), DeferredShape},
		{NewAssumedSizeSpec(nil), AssumedSize},
		{NewImpliedShapeSpec(nil), ImpliedShape},
	}
	for _, tt := range tests {
		if tt.spec.SpecKind() != tt.kind {
			t.Errorf("SpecKind = %s, expected %s", tt.spec.SpecKind(), tt.kind)
		}
	}
}

func TestExplicitShapeDowncast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "flang.ast")
	defer teardown()
	a := NewArena()
	spec := NewExplicitShapeSpec(NewIntegerConstant(a, 0, 1, "0"),
		NewIntegerConstant(a, 2, 3, "9"))
	es := AsExplicitShape(spec)
	if es.Lower == nil || es.Upper == nil {
		t.Error("explicit shape lost its bounds")
	}

	defer func() {
		if recover() == nil {
			t.Error("AsAssumedShape on an explicit shape did not panic")
		}
	}()
	AsAssumedShape(spec)
}
