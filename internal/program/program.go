// Package program defines the compiled artifact consumed by the
// interpreter: labels, entry point, requested libraries, and the constant
// pool, per the external-interface contract in §6. The compiler that
// produces this structure is out of scope; this package only models its
// output and the text serialisation it round-trips through.
package program

import (
	"sort"

	"github.com/atlas77-lang/atlas77/internal/bytecode"
	"github.com/atlas77-lang/atlas77/internal/constant"
)

// Label is a named contiguous run of instructions: the unit of compilation
// for functions and blocks.
type Label struct {
	Name     string
	Position int
	Body     []bytecode.Instruction
}

// Library is one requested foreign module.
type Library struct {
	Name   string
	IsStd  bool
}

// Global is the program's constant pool.
type Global struct {
	StringPool   []string
	ListPool     *constant.Pool
	FunctionPool []int
}

// Program is the immutable artifact built by the compiler and consumed by
// the interpreter (§3.6).
type Program struct {
	Labels     []Label
	EntryPoint string
	Libraries  []Library
	Global     Global
}

// Resolve maps a global bytecode offset to the label containing it and the
// index of the instruction within that label's body. Labels are appended in
// increasing Position order by both Builder and Parse, so the containing
// label is found with a binary search rather than a linear scan over every
// label on each instruction fetch.
func (p *Program) Resolve(offset int) (labelIdx, instrIdx int, ok bool) {
	if offset < 0 {
		return 0, 0, false
	}
	i := sort.Search(len(p.Labels), func(i int) bool { return p.Labels[i].Position > offset }) - 1
	if i < 0 {
		return 0, 0, false
	}
	l := p.Labels[i]
	if offset < l.Position+len(l.Body) {
		return i, offset - l.Position, true
	}
	return 0, 0, false
}

// EntryOffset resolves EntryPoint to a global bytecode offset.
func (p *Program) EntryOffset() (int, bool) {
	for _, l := range p.Labels {
		if l.Name == p.EntryPoint {
			return l.Position, true
		}
	}
	return 0, false
}

// Len returns the total instruction count across every label.
func (p *Program) Len() int {
	n := 0
	for _, l := range p.Labels {
		n += len(l.Body)
	}
	return n
}

// At returns the instruction at global offset pc.
func (p *Program) At(pc int) (bytecode.Instruction, bool) {
	li, ii, ok := p.Resolve(pc)
	if !ok {
		return bytecode.Instruction{}, false
	}
	return p.Labels[li].Body[ii], true
}
