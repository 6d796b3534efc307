package heap

import (
	"testing"

	"github.com/atlas77-lang/atlas77/internal/constant"
)

func TestMaterializeString(t *testing.T) {
	h := New(4)
	pool := &constant.Pool{Entries: []constant.Constant{constant.String("hi")}}
	v, err := h.Materialize(pool, 0)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	cell, err := h.Get(v.HeapIndex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cell.Str != "hi" {
		t.Errorf("Str = %q, want hi", cell.Str)
	}
}

func TestMaterializeNestedList(t *testing.T) {
	h := New(8)
	pool := &constant.Pool{Entries: []constant.Constant{
		constant.List_(constant.Integer(1), constant.List_(constant.String("a"), constant.String("b"))),
	}}
	v, err := h.Materialize(pool, 0)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	outer, err := h.Get(v.HeapIndex())
	if err != nil {
		t.Fatalf("Get outer: %v", err)
	}
	if len(outer.Elems) != 2 {
		t.Fatalf("outer len = %d, want 2", len(outer.Elems))
	}
	inner, err := h.Get(outer.Elems[1].HeapIndex())
	if err != nil {
		t.Fatalf("Get inner: %v", err)
	}
	if len(inner.Elems) != 2 {
		t.Errorf("inner len = %d, want 2", len(inner.Elems))
	}
}

func TestMaterializeTwiceAllocatesDistinctCells(t *testing.T) {
	h := New(8)
	pool := &constant.Pool{Entries: []constant.Constant{constant.String("x")}}
	a, err := h.Materialize(pool, 0)
	if err != nil {
		t.Fatalf("first Materialize: %v", err)
	}
	b, err := h.Materialize(pool, 0)
	if err != nil {
		t.Fatalf("second Materialize: %v", err)
	}
	if a.HeapIndex() == b.HeapIndex() {
		t.Errorf("expected distinct cells, got same index %d", a.HeapIndex())
	}
}
