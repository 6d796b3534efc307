// Package interpreter implements the Atlas 77 dispatch loop: the Machine
// holds the program, stack, heap, scope stack, call-frame stack, and
// program counter, and Run drives them to completion or abort, in the
// style of the teacher's interpreter/lfvm/interpreter.go context/status
// state machine.
package interpreter

import (
	"errors"
	"io"
	"os"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/atlas77-lang/atlas77/internal/foreign"
	"github.com/atlas77-lang/atlas77/internal/heap"
	"github.com/atlas77-lang/atlas77/internal/program"
	"github.com/atlas77-lang/atlas77/internal/scope"
	"github.com/atlas77-lang/atlas77/internal/value"
	"github.com/atlas77-lang/atlas77/internal/vmstack"
)

// stdModules is the fixed set of foreign modules the VM ships, per §4.5.
var stdModules = map[string]bool{
	"io": true, "list": true, "string": true, "math": true, "time": true, "fs": true,
}

// frame is an activation record: the pc to restore on Return, and the
// stack-top watermark marking the frame base for positional Get(n) and the
// rc-release range on Return.
type frame struct {
	returnPC int
	base     int
}

// Config bundles the construction-time parameters controlling Machine
// size: heap and stack capacity are fixed for the lifetime of a run.
type Config struct {
	HeapCapacity int
	Stdout       io.Writer
	Stdin        io.Reader
}

// DefaultConfig mirrors the capacities named in the data model (§3.2/§3.3).
// The evaluation stack has no corresponding knob: it is a fixed MaxSize
// array per vmstack.Stack, not a runtime-sized slab like the heap.
func DefaultConfig() Config {
	return Config{
		HeapCapacity: 1 << 16,
		Stdout:       os.Stdout,
		Stdin:        os.Stdin,
	}
}

// Machine is a single-threaded VM instance: an interpreter owns its stack,
// heap, scope stack, and pc exclusively (§5 — no internal task abstraction,
// no concurrency).
type Machine struct {
	prog   *program.Program
	stack  *vmstack.Stack
	heap   *heap.Heap
	scopes *scope.Stack
	frames []frame
	pc     int

	epoch  time.Time
	stdout io.Writer
	stdin  io.Reader

	stats *stepStats
	trace io.Writer
}

// New builds a Machine for prog, validating that every requested library
// is a known standard module (the only kind this VM supports).
func New(prog *program.Program, cfg Config) (*Machine, error) {
	for _, lib := range prog.Libraries {
		if lib.IsStd && !stdModules[lib.Name] {
			available := maps.Keys(stdModules)
			slices.Sort(available)
			return nil, &UnknownLibraryError{Name: lib.Name, Available: available}
		}
	}
	m := &Machine{
		prog:   prog,
		stack:  vmstack.New(),
		heap:   heap.New(cfg.HeapCapacity),
		epoch:  time.Now(),
		stdout: cfg.Stdout,
		stdin:  cfg.Stdin,
	}
	m.scopes = scope.New(m)
	return m, nil
}

// --- foreign.VM surface ---

func (m *Machine) Pop() (value.Value, error) {
	v, err := m.stack.Pop()
	if err != nil {
		return value.Value{}, translateStackErr(err)
	}
	return v, nil
}

func (m *Machine) Push(v value.Value) error {
	if err := m.stack.Push(v); err != nil {
		return translateStackErr(err)
	}
	return nil
}

func (m *Machine) PutString(s string) (int, error) {
	idx, err := m.heap.PutString(s)
	if err != nil {
		return 0, translateHeapErr(err)
	}
	return idx, nil
}

func (m *Machine) PutList(elems []value.Value) (int, error) {
	idx, err := m.heap.PutList(elems)
	if err != nil {
		return 0, translateHeapErr(err)
	}
	return idx, nil
}

func (m *Machine) GetCell(i int) (*heap.Cell, error) {
	c, err := m.heap.GetMut(i)
	if err != nil {
		return nil, translateHeapErr(err)
	}
	return c, nil
}

func (m *Machine) RcInc(i int) { m.heap.RcInc(i) }

func (m *Machine) RcDec(i int) error {
	if err := m.heap.RcDec(i); err != nil {
		return translateHeapErr(err)
	}
	return nil
}

func (m *Machine) Stdout() io.Writer { return m.stdout }
func (m *Machine) Stdin() io.Reader  { return m.stdin }
func (m *Machine) Epoch() time.Time  { return m.epoch }

func translateStackErr(err error) error {
	switch err {
	case vmstack.ErrOverflow:
		return ErrStackOverflow
	case vmstack.ErrUnderflow:
		return ErrStackUnderflow
	default:
		return err
	}
}

func translateHeapErr(err error) error {
	switch {
	case errors.Is(err, heap.ErrOutOfMemory):
		return ErrOutOfMemory
	case errors.Is(err, heap.ErrNullReference):
		return ErrNullReference
	default:
		return err
	}
}

// Heap exposes the underlying slab, for tests that want to inspect cells
// and refcounts directly after a run.
func (m *Machine) Heap() *heap.Heap { return m.heap }

// StackLen exposes the current stack depth, for tests.
func (m *Machine) StackLen() int { return m.stack.Len() }

var _ foreign.VM = (*Machine)(nil)
