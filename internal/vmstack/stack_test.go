package vmstack

import (
	"errors"
	"testing"

	"github.com/atlas77-lang/atlas77/internal/value"
)

func TestPushPop(t *testing.T) {
	s := New()
	defer Return(s)
	if err := s.Push(value.NewI64(7)); err != nil {
		t.Fatalf("Push: %v", err)
	}
	got, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if got.I64() != 7 {
		t.Errorf("Pop() = %v, want 7", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestPopUnderflow(t *testing.T) {
	s := New()
	defer Return(s)
	if _, err := s.Pop(); !errors.Is(err, ErrUnderflow) {
		t.Errorf("expected ErrUnderflow, got %v", err)
	}
}

func TestPushOverflow(t *testing.T) {
	s := New()
	defer Return(s)
	for i := 0; i < MaxSize; i++ {
		if err := s.Push(value.NewI64(int64(i))); err != nil {
			t.Fatalf("unexpected overflow at %d: %v", i, err)
		}
	}
	if err := s.Push(value.NewI64(0)); !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
}

func TestSwapAndDup(t *testing.T) {
	s := New()
	defer Return(s)
	s.Push(value.NewI64(1))
	s.Push(value.NewI64(2))
	if err := s.Swap(1); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	top, _ := s.Peek()
	if top.I64() != 1 {
		t.Errorf("after swap top = %v, want 1", top)
	}
	if err := s.Dup(0); err != nil {
		t.Fatalf("Dup: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestGetFrameRelative(t *testing.T) {
	s := New()
	defer Return(s)
	s.Push(value.NewI64(10)) // below the frame
	s.Push(value.NewI64(20)) // base: slot 0
	s.Push(value.NewI64(30))
	base := 1
	got, err := s.Get(base, 0)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.I64() != 20 {
		t.Errorf("Get(base,0) = %v, want 20", got)
	}
}

func TestTruncateReturnsDiscarded(t *testing.T) {
	s := New()
	defer Return(s)
	s.Push(value.NewI64(1))
	s.Push(value.NewI64(2))
	s.Push(value.NewI64(3))
	discarded := s.Truncate(1)
	if len(discarded) != 2 {
		t.Fatalf("len(discarded) = %d, want 2", len(discarded))
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}
