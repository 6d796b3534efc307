package program

import (
	"github.com/atlas77-lang/atlas77/internal/bytecode"
	"github.com/atlas77-lang/atlas77/internal/constant"
)

// Builder assembles a Program one label and one instruction at a time, in
// the style of the teacher's converter.go codeBuilder. It exists for tests
// and tooling in this module; the real compiler is out of scope.
type Builder struct {
	p          Program
	cur        *Label
	curIdx     int
	stringIdx  map[string]int
}

// NewBuilder starts an empty program whose constant pool is ready to
// receive entries.
func NewBuilder() *Builder {
	return &Builder{
		p: Program{
			Global: Global{ListPool: &constant.Pool{}},
		},
		stringIdx: make(map[string]int),
	}
}

// Label opens a new named label as the current append target and returns
// the builder for chaining.
func (b *Builder) Label(name string) *Builder {
	b.p.Labels = append(b.p.Labels, Label{Name: name, Position: b.p.Len()})
	b.curIdx = len(b.p.Labels) - 1
	b.cur = &b.p.Labels[b.curIdx]
	return b
}

// Emit appends ins to the current label's body.
func (b *Builder) Emit(ins bytecode.Instruction) *Builder {
	b.cur.Body = append(b.cur.Body, ins)
	return b
}

// EntryPoint sets the program's entry label name.
func (b *Builder) EntryPoint(name string) *Builder {
	b.p.EntryPoint = name
	return b
}

// Library requests a foreign module.
func (b *Builder) Library(name string, isStd bool) *Builder {
	b.p.Libraries = append(b.p.Libraries, Library{Name: name, IsStd: isStd})
	return b
}

// InternString interns s into the string pool, reusing an existing index
// if s was already interned, and returns its index.
func (b *Builder) InternString(s string) int {
	if idx, ok := b.stringIdx[s]; ok {
		return idx
	}
	idx := len(b.p.Global.StringPool)
	b.p.Global.StringPool = append(b.p.Global.StringPool, s)
	b.stringIdx[s] = idx
	return idx
}

// AddConstant appends c to the list pool and returns its index.
func (b *Builder) AddConstant(c constant.Constant) int {
	b.p.Global.ListPool.Entries = append(b.p.Global.ListPool.Entries, c)
	return len(b.p.Global.ListPool.Entries) - 1
}

// AddFunctionOffset appends an absolute bytecode offset to the function
// pool and returns its index, for use by DirectCall.
func (b *Builder) AddFunctionOffset(offset int) int {
	b.p.Global.FunctionPool = append(b.p.Global.FunctionPool, offset)
	return len(b.p.Global.FunctionPool) - 1
}

// Build returns the assembled program. The builder must not be reused
// afterward.
func (b *Builder) Build() *Program {
	return &b.p
}
