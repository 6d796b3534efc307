package interpreter

import (
	"testing"

	"github.com/atlas77-lang/atlas77/internal/bytecode"
	"github.com/atlas77-lang/atlas77/internal/program"
	"github.com/atlas77-lang/atlas77/internal/value"
)

func pushInt(n int64) bytecode.Instruction {
	return bytecode.Instruction{Op: bytecode.PushInt, Int: n}
}

func newMachine(t *testing.T, p *program.Program) *Machine {
	t.Helper()
	m, err := New(p, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m
}

func TestArithmeticScenario(t *testing.T) {
	b := program.NewBuilder()
	b.EntryPoint("main")
	b.Label("main").
		Emit(pushInt(2)).
		Emit(pushInt(3)).
		Emit(bytecode.Instruction{Op: bytecode.IAdd}).
		Emit(bytecode.Instruction{Op: bytecode.Return})

	m := newMachine(t, b.Build())
	result, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Tag != value.I64 || result.I64() != 5 {
		t.Errorf("result = %v, want I64(5)", result)
	}
}

func TestBranchScenario(t *testing.T) {
	b := program.NewBuilder()
	b.EntryPoint("main")
	b.Label("main").
		Emit(bytecode.Instruction{Op: bytecode.PushBool, Bool: false}).
		Emit(bytecode.Instruction{Op: bytecode.JmpZ, Offset: 2}).
		Emit(pushInt(1)).
		Emit(bytecode.Instruction{Op: bytecode.Jmp, Offset: 1}).
		Emit(pushInt(2)).
		Emit(bytecode.Instruction{Op: bytecode.Return})

	m := newMachine(t, b.Build())
	result, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Tag != value.I64 || result.I64() != 2 {
		t.Errorf("result = %v, want I64(2)", result)
	}
}

func TestFunctionCallScenario(t *testing.T) {
	b := program.NewBuilder()
	b.EntryPoint("main")
	b.Label("double").
		Emit(bytecode.Instruction{Op: bytecode.Store, Name: "x"}).
		Emit(bytecode.Instruction{Op: bytecode.Load, Name: "x"}).
		Emit(bytecode.Instruction{Op: bytecode.Load, Name: "x"}).
		Emit(bytecode.Instruction{Op: bytecode.IAdd}).
		Emit(bytecode.Instruction{Op: bytecode.Return})
	b.Label("main").
		Emit(pushInt(21)).
		Emit(bytecode.Instruction{Op: bytecode.CallFunction, Name: "double", Args: 1}).
		Emit(bytecode.Instruction{Op: bytecode.Return})

	m := newMachine(t, b.Build())
	result, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Tag != value.I64 || result.I64() != 42 {
		t.Errorf("result = %v, want I64(42)", result)
	}
}

func TestListScenario(t *testing.T) {
	b := program.NewBuilder()
	b.EntryPoint("main")
	b.Label("main").
		Emit(pushInt(3)).
		Emit(bytecode.Instruction{Op: bytecode.NewList}).
		Emit(bytecode.Instruction{Op: bytecode.Store, Name: "xs"}).
		Emit(bytecode.Instruction{Op: bytecode.Load, Name: "xs"}).
		Emit(pushInt(0)).
		Emit(pushInt(10)).
		Emit(bytecode.Instruction{Op: bytecode.ListStore}).
		Emit(bytecode.Instruction{Op: bytecode.Load, Name: "xs"}).
		Emit(pushInt(0)).
		Emit(bytecode.Instruction{Op: bytecode.ListLoad}).
		Emit(bytecode.Instruction{Op: bytecode.Return})

	m := newMachine(t, b.Build())
	result, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Tag != value.I64 || result.I64() != 10 {
		t.Errorf("result = %v, want I64(10)", result)
	}

	// The "xs" binding was released when main's frame (and its scope) was
	// torn down on Return; the list cell it held must have dropped to 0
	// refcount and been freed.
	if got, want := m.Heap().FreeCount(), m.Heap().Cap(); got != want {
		t.Errorf("heap FreeCount = %d, want %d (fully freed)", got, want)
	}
}

func TestStringForeignScenario(t *testing.T) {
	b := program.NewBuilder()
	strIdx := b.InternString("  hi  ")
	b.EntryPoint("main")
	b.Library("string", true)
	b.Label("main").
		Emit(bytecode.Instruction{Op: bytecode.PushStr, ConstIndex: strIdx}).
		Emit(bytecode.Instruction{Op: bytecode.ExternCall, Name: "trim", Args: 1}).
		Emit(bytecode.Instruction{Op: bytecode.ExternCall, Name: "to_upper", Args: 1}).
		Emit(bytecode.Instruction{Op: bytecode.Return})

	m := newMachine(t, b.Build())
	result, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Tag != value.Str {
		t.Fatalf("result tag = %v, want Str", result.Tag)
	}
	cell, err := m.Heap().Get(result.HeapIndex())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if cell.Str != "HI" {
		t.Errorf("result string = %q, want %q", cell.Str, "HI")
	}
}

func TestDivisionByZeroAborts(t *testing.T) {
	b := program.NewBuilder()
	b.EntryPoint("main")
	b.Label("main").
		Emit(pushInt(1)).
		Emit(pushInt(0)).
		Emit(bytecode.Instruction{Op: bytecode.IDiv}).
		Emit(bytecode.Instruction{Op: bytecode.Return})

	m := newMachine(t, b.Build())
	_, err := m.Run()
	if err == nil {
		t.Fatal("expected abort, got nil error")
	}
	abort, ok := err.(*AbortError)
	if !ok {
		t.Fatalf("err = %T, want *AbortError", err)
	}
	if abort.Unwrap() != ErrDivisionByZero {
		t.Errorf("abort.Err = %v, want ErrDivisionByZero", abort.Unwrap())
	}
	if got, want := m.Heap().FreeCount(), m.Heap().Cap(); got != want {
		t.Errorf("heap FreeCount = %d, want %d (no cells allocated by this scenario)", got, want)
	}
}

func TestUnknownLibraryRejectedAtConstruction(t *testing.T) {
	b := program.NewBuilder()
	b.EntryPoint("main")
	b.Library("networking", true)
	b.Label("main").Emit(bytecode.Instruction{Op: bytecode.Halt})

	_, err := New(b.Build(), DefaultConfig())
	if _, ok := err.(*UnknownLibraryError); !ok {
		t.Fatalf("err = %v, want *UnknownLibraryError", err)
	}
}

func TestMissingEntryPoint(t *testing.T) {
	b := program.NewBuilder()
	b.EntryPoint("nope")
	b.Label("main").Emit(bytecode.Instruction{Op: bytecode.Halt})

	m := newMachine(t, b.Build())
	_, err := m.Run()
	if _, ok := err.(*EntryPointNotFoundError); !ok {
		t.Fatalf("err = %v, want *EntryPointNotFoundError", err)
	}
}

func TestRunWithStatisticsSummary(t *testing.T) {
	b := program.NewBuilder()
	b.EntryPoint("main")
	b.Label("main").
		Emit(pushInt(2)).
		Emit(pushInt(3)).
		Emit(bytecode.Instruction{Op: bytecode.IAdd}).
		Emit(bytecode.Instruction{Op: bytecode.Return})

	m := newMachine(t, b.Build())
	result, summary, err := m.RunWithStatistics()
	if err != nil {
		t.Fatalf("RunWithStatistics: %v", err)
	}
	if result.I64() != 5 {
		t.Errorf("result = %v, want I64(5)", result)
	}
	if summary == "" {
		t.Error("expected non-empty statistics summary")
	}
}
