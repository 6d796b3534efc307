// Package foreign implements the Atlas 77 foreign-function bridge: a
// process-wide name-to-callback registry and the built-in standard-library
// modules exposed to bytecode via ExternCall, in the style of the
// teacher's tosca/interpreter_registry.go case-insensitive factory table.
package foreign

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/atlas77-lang/atlas77/internal/heap"
	"github.com/atlas77-lang/atlas77/internal/value"
)

// VM is the narrow surface a native callback is given: pop/push the
// evaluation stack and allocate/inspect heap cells. Callbacks never see the
// program counter, call-frame stack, or scope stack — a callback that
// misbehaves can corrupt the stack or heap it was handed, but nothing else.
type VM interface {
	Pop() (value.Value, error)
	Push(value.Value) error
	PutString(s string) (int, error)
	PutList(elems []value.Value) (int, error)
	GetCell(i int) (*heap.Cell, error)
	RcInc(i int)
	RcDec(i int) error
	Stdout() io.Writer
	Stdin() io.Reader
	Epoch() time.Time
}

// Func is a native callback. It must consume exactly its declared arity by
// popping and return exactly one result, which ExternCall pushes.
type Func func(vm VM) (value.Value, error)

// ConstError is an immutable error constant.
type ConstError string

func (e ConstError) Error() string { return string(e) }

const (
	ErrUnknownFunction  = ConstError("foreign: unknown function")
	ErrTypeMismatch     = ConstError("foreign: type mismatch")
	ErrIndexOutOfBounds = ConstError("foreign: index out of bounds")
)

var (
	mu        sync.Mutex
	functions = map[string]Func{}
)

// Register adds fn under name to the process-wide registry. It panics if
// name is already registered, mirroring the teacher's
// RegisterInterpreterFactory panic-on-duplicate discipline: a duplicate
// registration is always a programming error caught at init time.
func Register(name string, fn Func) {
	mu.Lock()
	defer mu.Unlock()
	key := strings.ToLower(name)
	if _, exists := functions[key]; exists {
		panic(fmt.Sprintf("foreign: function %q already registered", name))
	}
	functions[key] = fn
}

// Get looks up a registered function by name, case-insensitively.
func Get(name string) (Func, bool) {
	mu.Lock()
	defer mu.Unlock()
	fn, ok := functions[strings.ToLower(name)]
	return fn, ok
}

// popArgs pops n values and returns them in the order they were originally
// pushed (left-to-right), undoing the callee-pop reversal.
func popArgs(vm VM, n int) ([]value.Value, error) {
	args := make([]value.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := vm.Pop()
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// Names returns every registered function name in sorted order, for
// diagnostics.
func Names() []string {
	mu.Lock()
	defer mu.Unlock()
	names := maps.Keys(functions)
	slices.Sort(names)
	return names
}
