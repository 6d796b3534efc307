package heap

import (
	"errors"
	"testing"

	"github.com/atlas77-lang/atlas77/internal/value"
)

func TestPutAndGet(t *testing.T) {
	h := New(4)
	idx, err := h.PutString("hi")
	if err != nil {
		t.Fatalf("PutString: %v", err)
	}
	cell, err := h.Get(idx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cell.Str != "hi" || cell.Refcount != 1 {
		t.Errorf("got %+v, want Str=hi Refcount=1", cell)
	}
}

func TestOutOfMemory(t *testing.T) {
	h := New(2)
	if _, err := h.PutString("a"); err != nil {
		t.Fatalf("first put: %v", err)
	}
	if _, err := h.PutString("b"); err != nil {
		t.Fatalf("second put: %v", err)
	}
	if _, err := h.PutString("c"); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("expected ErrOutOfMemory, got %v", err)
	}
}

func TestNullReference(t *testing.T) {
	h := New(2)
	if _, err := h.Get(5); !errors.Is(err, ErrNullReference) {
		t.Errorf("out-of-range: expected ErrNullReference, got %v", err)
	}
	if _, err := h.Get(0); !errors.Is(err, ErrNullReference) {
		t.Errorf("free cell: expected ErrNullReference, got %v", err)
	}
}

func TestRcDecReleasesToFreeList(t *testing.T) {
	h := New(4)
	idx, _ := h.PutString("x")
	if h.LiveCount() != 1 {
		t.Fatalf("LiveCount = %d, want 1", h.LiveCount())
	}
	if err := h.RcDec(idx); err != nil {
		t.Fatalf("RcDec: %v", err)
	}
	if h.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0 after release", h.LiveCount())
	}
	if h.FreeCount() != 4 {
		t.Errorf("FreeCount = %d, want 4", h.FreeCount())
	}
	// Reuse the freed cell.
	idx2, err := h.PutString("y")
	if err != nil {
		t.Fatalf("reuse put: %v", err)
	}
	if idx2 != idx {
		t.Errorf("expected freed cell %d to be reused, got %d", idx, idx2)
	}
}

func TestRcDecRecursesIntoListChildren(t *testing.T) {
	h := New(4)
	childIdx, _ := h.PutString("child")
	listIdx, err := h.PutList([]value.Value{value.NewRef(value.Str, childIdx), value.NewI64(1)})
	if err != nil {
		t.Fatalf("PutList: %v", err)
	}
	if h.LiveCount() != 2 {
		t.Fatalf("LiveCount = %d, want 2", h.LiveCount())
	}
	if err := h.RcDec(listIdx); err != nil {
		t.Fatalf("RcDec: %v", err)
	}
	if h.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0 after recursive release", h.LiveCount())
	}
}

func TestRcIncThenDecKeepsAlive(t *testing.T) {
	h := New(4)
	idx, _ := h.PutString("shared")
	h.RcInc(idx)
	if err := h.RcDec(idx); err != nil {
		t.Fatalf("RcDec: %v", err)
	}
	cell, err := h.Get(idx)
	if err != nil {
		t.Fatalf("expected cell still alive, got %v", err)
	}
	if cell.Refcount != 1 {
		t.Errorf("Refcount = %d, want 1", cell.Refcount)
	}
	if err := h.RcDec(idx); err != nil {
		t.Fatalf("RcDec: %v", err)
	}
	if h.LiveCount() != 0 {
		t.Errorf("LiveCount = %d, want 0", h.LiveCount())
	}
}

func TestRcIncOnFreeCellPanics(t *testing.T) {
	h := New(2)
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on rc_inc of free cell")
		}
	}()
	h.RcInc(0)
}

func TestFreeCountPlusLiveCountEqualsCapacity(t *testing.T) {
	h := New(8)
	for i := 0; i < 3; i++ {
		if _, err := h.PutString("x"); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	if got := h.FreeCount() + h.LiveCount(); got != h.Cap() {
		t.Errorf("FreeCount+LiveCount = %d, want capacity %d", got, h.Cap())
	}
}
