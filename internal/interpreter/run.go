package interpreter

import (
	"io"

	"github.com/atlas77-lang/atlas77/internal/value"
)

// bootstrap resolves the program's entry point and installs the sentinel
// frame whose Return terminates the run, per the Initialisation step of the
// dispatch loop (§4.4.1/§4.4.4 Entering state).
func (m *Machine) bootstrap() error {
	offset, ok := m.prog.EntryOffset()
	if !ok {
		return &EntryPointNotFoundError{Name: m.prog.EntryPoint}
	}
	m.frames = append(m.frames, frame{returnPC: sentinelReturnPC, base: 0})
	m.scopes.Push()
	m.pc = offset
	return nil
}

// loop drives step until it reports done, wrapping any runtime error in an
// AbortError carrying the pc it occurred at, per the abort propagation
// policy (§7).
func (m *Machine) loop() (value.Value, error) {
	for {
		done, result, err := m.step()
		if err != nil {
			return value.Value{}, &AbortError{Err: err, PC: m.pc}
		}
		if done {
			return result, nil
		}
	}
}

// Run executes the program from its entry point to completion, returning
// the value passed to the outermost Return.
func (m *Machine) Run() (value.Value, error) {
	if err := m.bootstrap(); err != nil {
		return value.Value{}, err
	}
	return m.loop()
}

// RunWithStatistics runs the program while collecting instruction-sequence
// statistics, returning a human-readable summary alongside the result, in
// the style of the teacher's statisticRunner run mode.
func (m *Machine) RunWithStatistics() (value.Value, string, error) {
	m.stats = newStepStats()
	defer func() { m.stats = nil }()

	if err := m.bootstrap(); err != nil {
		return value.Value{}, "", err
	}
	result, err := m.loop()
	return result, m.stats.print(), err
}

// RunWithTrace runs the program, writing one line per executed instruction
// to w, in the style of the teacher's runWithLogging mode.
func (m *Machine) RunWithTrace(w io.Writer) (value.Value, error) {
	m.trace = w
	defer func() { m.trace = nil }()

	if err := m.bootstrap(); err != nil {
		return value.Value{}, err
	}
	return m.loop()
}
