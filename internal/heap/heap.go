// Package heap implements the Atlas 77 object slab: a fixed-capacity array
// of reference-counted cells (strings, lists, class instances) threaded
// together by an intrusive free list, in the style of the teacher's
// interpreter/lfvm/memory.go owned, bounds-checked buffer.
package heap

import (
	"fmt"

	"github.com/atlas77-lang/atlas77/internal/value"
)

// Kind identifies which variant a Cell currently holds.
type Kind uint8

const (
	KindFree Kind = iota
	KindString
	KindList
	KindInstance
)

// Cell is one slot of the slab. Exactly one of Str, Elems, Fields is
// meaningful, selected by Kind; Next is only meaningful when Kind is
// KindFree.
type Cell struct {
	Kind     Kind
	Refcount uint32

	Str    string
	Elems  []value.Value
	Fields map[string]value.Value

	Next int
}

// ConstError is an immutable error constant, in the style of the teacher's
// interpreter/lfvm/errors.go ConstError.
type ConstError string

func (e ConstError) Error() string { return string(e) }

const (
	ErrOutOfMemory   = ConstError("heap: out of memory")
	ErrNullReference = ConstError("heap: null reference")
)

// Heap is the object slab. It is not safe for concurrent use: ownership
// belongs exclusively to the interpreter driving it (spec §5).
type Heap struct {
	cells []Cell
	free  int
}

// New allocates a slab with the given fixed capacity. Every cell starts
// Free, chained cell i -> i+1 mod capacity, with the free cursor at 0.
func New(capacity int) *Heap {
	h := &Heap{cells: make([]Cell, capacity)}
	for i := range h.cells {
		h.cells[i] = Cell{Kind: KindFree, Next: (i + 1) % capacity}
	}
	h.free = 0
	return h
}

// Cap returns the slab's fixed capacity.
func (h *Heap) Cap() int { return len(h.cells) }

func (h *Heap) inRange(i int) bool { return i >= 0 && i < len(h.cells) }

// PutString allocates a new string cell with refcount 1.
func (h *Heap) PutString(s string) (int, error) {
	return h.put(Cell{Kind: KindString, Str: s})
}

// PutList allocates a new list cell owning the refcount of every
// reference-tagged element it is given.
func (h *Heap) PutList(elems []value.Value) (int, error) {
	return h.put(Cell{Kind: KindList, Elems: elems})
}

// PutInstance allocates a new class-instance cell owning the refcount of
// every reference-tagged field value it is given.
func (h *Heap) PutInstance(fields map[string]value.Value) (int, error) {
	return h.put(Cell{Kind: KindInstance, Fields: fields})
}

// put takes the current free slot, writes obj there with refcount 1, and
// advances the free cursor to what that slot's Next pointed at before being
// overwritten. It fails once the free list is exhausted.
func (h *Heap) put(obj Cell) (int, error) {
	i := h.free
	if h.cells[i].Kind != KindFree {
		return 0, ErrOutOfMemory
	}
	next := h.cells[i].Next
	obj.Refcount = 1
	h.cells[i] = obj
	h.free = next
	return i, nil
}

// Get returns cell i. The pointer aliases the slab, so writes through it
// are visible; GetMut is the same lookup, named for call sites that mutate.
func (h *Heap) Get(i int) (*Cell, error) {
	if !h.inRange(i) || h.cells[i].Kind == KindFree {
		return nil, fmt.Errorf("%w: index %d", ErrNullReference, i)
	}
	return &h.cells[i], nil
}

// GetMut returns a mutable view of cell i.
func (h *Heap) GetMut(i int) (*Cell, error) {
	return h.Get(i)
}

// RcInc increments the refcount of cell i. Incrementing a Free cell is an
// invariant violation by a well-formed Program and can never happen for
// bytecode produced by a conforming compiler; it indicates an interpreter
// bug, so it panics rather than returning a runtime error.
func (h *Heap) RcInc(i int) {
	if !h.inRange(i) || h.cells[i].Kind == KindFree {
		panic(fmt.Sprintf("heap: rc_inc on invalid cell %d", i))
	}
	h.cells[i].Refcount++
}

// RcDec decrements the refcount of cell i. When it reaches zero, the cell's
// children (if any) are recursively released and the cell is returned to
// the free list.
func (h *Heap) RcDec(i int) error {
	if !h.inRange(i) || h.cells[i].Kind == KindFree {
		panic(fmt.Sprintf("heap: rc_dec on invalid cell %d", i))
	}
	c := &h.cells[i]
	c.Refcount--
	if c.Refcount > 0 {
		return nil
	}
	switch c.Kind {
	case KindList:
		for _, elem := range c.Elems {
			if elem.IsReference() {
				if err := h.RcDec(elem.HeapIndex()); err != nil {
					return err
				}
			}
		}
	case KindInstance:
		for _, field := range c.Fields {
			if field.IsReference() {
				if err := h.RcDec(field.HeapIndex()); err != nil {
					return err
				}
			}
		}
	}
	*c = Cell{Kind: KindFree, Next: h.free}
	h.free = i
	return nil
}

// FreeCount reports how many cells are currently Free — used by tests to
// verify invariant 4 of spec §3.7 (free-list length + live cells = capacity).
func (h *Heap) FreeCount() int {
	count := 0
	for i := range h.cells {
		if h.cells[i].Kind == KindFree {
			count++
		}
	}
	return count
}

// LiveCount returns the number of non-free cells.
func (h *Heap) LiveCount() int {
	return len(h.cells) - h.FreeCount()
}
