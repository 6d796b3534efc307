package interpreter

import (
	"fmt"
	"strconv"

	"github.com/atlas77-lang/atlas77/internal/bytecode"
	"github.com/atlas77-lang/atlas77/internal/foreign"
	"github.com/atlas77-lang/atlas77/internal/heap"
	"github.com/atlas77-lang/atlas77/internal/value"
)

// sentinelReturnPC marks the frame installed at Run's entry: returning from
// it terminates the program instead of resuming dispatch.
const sentinelReturnPC = -1

func (m *Machine) frameBase() int {
	if len(m.frames) == 0 {
		return 0
	}
	return m.frames[len(m.frames)-1].base
}

// step executes the instruction at m.pc, advancing m.pc unless the
// instruction set it explicitly (calls, jumps, return). It returns
// (done, result, err): done is true once the sentinel frame returns or
// Halt executes.
func (m *Machine) step() (done bool, result value.Value, err error) {
	ins, ok := m.prog.At(m.pc)
	if !ok {
		return true, value.UnitValue, nil
	}
	if m.stats != nil {
		m.stats.nextOp(ins.Op)
	}
	if m.trace != nil {
		fmt.Fprintf(m.trace, "%04d: %s\n", m.pc, ins.String())
	}

	switch ins.Op {
	case bytecode.PushInt:
		err = m.Push(value.NewI64(ins.Int))
	case bytecode.PushFloat:
		err = m.Push(value.NewFloat(ins.Float))
	case bytecode.PushUnsignedInt:
		err = m.Push(value.NewU64(ins.UInt))
	case bytecode.PushBool:
		err = m.Push(value.NewBool(ins.Bool))
	case bytecode.PushChar:
		err = m.Push(value.NewChar(ins.Char))
	case bytecode.PushUnit:
		err = m.Push(value.UnitValue)
	case bytecode.PushStr:
		err = m.execPushStr(ins.ConstIndex)
	case bytecode.PushList:
		err = m.execPushList(ins.ConstIndex)
	case bytecode.Pop:
		err = m.execPop()
	case bytecode.Swap:
		err = m.translate(m.stack.Swap(1))
	case bytecode.Dup:
		err = m.execDup()
	case bytecode.Store:
		err = m.execStore(ins.Name)
	case bytecode.Load:
		err = m.execLoad(ins.Name)
	case bytecode.Get:
		err = m.execGet(ins.Slot)
	case bytecode.NewList:
		err = m.execNewList()
	case bytecode.ListLoad:
		err = m.execListLoad()
	case bytecode.ListStore:
		err = m.execListStore()
	case bytecode.CastTo:
		err = m.execCastTo(ins.Cast)
	case bytecode.IAdd, bytecode.ISub, bytecode.IMul, bytecode.IDiv, bytecode.IMod,
		bytecode.FAdd, bytecode.FSub, bytecode.FMul, bytecode.FDiv, bytecode.FMod,
		bytecode.UIAdd, bytecode.UISub, bytecode.UIMul, bytecode.UIDiv, bytecode.UIMod:
		err = m.execArith(ins.Op)
	case bytecode.Eq, bytecode.Neq, bytecode.Gt, bytecode.Gte, bytecode.Lt, bytecode.Lte:
		err = m.execCompare(ins.Op)
	case bytecode.Jmp:
		m.pc += ins.Offset
		return false, value.UnitValue, nil
	case bytecode.JmpZ:
		var v value.Value
		v, err = m.Pop()
		if err == nil {
			if v.IsReference() {
				err = m.RcDec(v.HeapIndex())
			}
			if err == nil && !v.Truthy() {
				m.pc += ins.Offset
				return false, value.UnitValue, nil
			}
		}
	case bytecode.CallFunction:
		err = m.execCallFunction(ins.Name, ins.Args)
		return false, value.UnitValue, err
	case bytecode.DirectCall:
		err = m.execDirectCall(ins.Pos, ins.Args)
		return false, value.UnitValue, err
	case bytecode.Call:
		err = m.execCall(ins.Args)
		return false, value.UnitValue, err
	case bytecode.ExternCall:
		err = m.execExternCall(ins.Name, ins.Args)
	case bytecode.Return:
		var v value.Value
		var terminated bool
		terminated, v, err = m.execReturn()
		if err != nil {
			return false, value.UnitValue, err
		}
		if terminated {
			return true, v, nil
		}
		return false, value.UnitValue, nil
	case bytecode.Halt:
		return true, value.UnitValue, nil
	default:
		err = ErrInvalidOperation
	}

	if err != nil {
		return false, value.UnitValue, err
	}
	m.pc++
	return false, value.UnitValue, nil
}

func (m *Machine) translate(err error) error {
	return translateStackErr(err)
}

func (m *Machine) execPushStr(constIndex int) error {
	if constIndex < 0 || constIndex >= len(m.prog.Global.StringPool) {
		return ErrInvalidOperation
	}
	idx, err := m.PutString(m.prog.Global.StringPool[constIndex])
	if err != nil {
		return err
	}
	return m.Push(value.NewRef(value.Str, idx))
}

func (m *Machine) execPushList(constIndex int) error {
	v, err := m.heap.Materialize(m.prog.Global.ListPool, constIndex)
	if err != nil {
		if err == heap.ConstError("heap: constant index out of range") {
			return ErrInvalidOperation
		}
		return translateHeapErr(err)
	}
	return m.Push(v)
}

func (m *Machine) execPop() error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	if v.IsReference() {
		return m.RcDec(v.HeapIndex())
	}
	return nil
}

func (m *Machine) execDup() error {
	top, err := m.stack.Peek()
	if err != nil {
		return m.translate(err)
	}
	if err := m.translate(m.stack.Dup(0)); err != nil {
		return err
	}
	if top.IsReference() {
		m.RcInc(top.HeapIndex())
	}
	return nil
}

func (m *Machine) execStore(name string) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	if err := m.scopes.Insert(name, v); err != nil {
		return ErrInvalidOperation
	}
	return nil
}

func (m *Machine) execLoad(name string) error {
	v, err := m.scopes.Lookup(name)
	if err != nil {
		return ErrInvalidOperation
	}
	if v.IsReference() {
		m.RcInc(v.HeapIndex())
	}
	return m.Push(v)
}

func (m *Machine) execGet(slot int) error {
	v, err := m.stack.Get(m.frameBase(), slot)
	if err != nil {
		return m.translate(err)
	}
	if v.IsReference() {
		m.RcInc(v.HeapIndex())
	}
	return m.Push(v)
}

func (m *Machine) execNewList() error {
	n, err := m.Pop()
	if err != nil {
		return err
	}
	if n.Tag != value.I64 {
		return ErrTypeMismatch
	}
	size := int(n.I64())
	if size < 0 {
		return ErrInvalidOperation
	}
	idx, err := m.PutList(make([]value.Value, size))
	if err != nil {
		return err
	}
	return m.Push(value.NewRef(value.List, idx))
}

func (m *Machine) execListLoad() error {
	idxV, err := m.Pop()
	if err != nil {
		return err
	}
	listV, err := m.Pop()
	if err != nil {
		return err
	}
	if listV.Tag != value.List || idxV.Tag != value.I64 {
		return ErrTypeMismatch
	}
	cell, err := m.GetCell(listV.HeapIndex())
	if err != nil {
		return err
	}
	i := int(idxV.I64())
	if i < 0 || i >= len(cell.Elems) {
		return ErrIndexOutOfBounds
	}
	elem := cell.Elems[i]
	if elem.IsReference() {
		m.RcInc(elem.HeapIndex())
	}
	if err := m.RcDec(listV.HeapIndex()); err != nil {
		return err
	}
	return m.Push(elem)
}

func (m *Machine) execListStore() error {
	v, err := m.Pop()
	if err != nil {
		return err
	}
	idxV, err := m.Pop()
	if err != nil {
		return err
	}
	listV, err := m.Pop()
	if err != nil {
		return err
	}
	if listV.Tag != value.List || idxV.Tag != value.I64 {
		return ErrTypeMismatch
	}
	cell, err := m.GetCell(listV.HeapIndex())
	if err != nil {
		return err
	}
	i := int(idxV.I64())
	if i < 0 || i >= len(cell.Elems) {
		return ErrIndexOutOfBounds
	}
	old := cell.Elems[i]
	if old.IsReference() {
		if err := m.RcDec(old.HeapIndex()); err != nil {
			return err
		}
	}
	cell.Elems[i] = v
	return m.RcDec(listV.HeapIndex())
}

func (m *Machine) execCastTo(target bytecode.CastType) error {
	v, err := m.Pop()
	if err != nil {
		return err
	}

	if v.Tag == value.Str && target == bytecode.CastStr {
		return m.Push(v)
	}

	if v.Tag == value.Str && target != bytecode.CastStr {
		cell, err := m.GetCell(v.HeapIndex())
		if err != nil {
			return err
		}
		s := cell.Str
		if err := m.RcDec(v.HeapIndex()); err != nil {
			return err
		}
		return m.Push(parseScalar(s, target))
	}

	if target == bytecode.CastStr {
		text := formatScalar(v)
		if v.IsReference() {
			if err := m.RcDec(v.HeapIndex()); err != nil {
				return err
			}
		}
		idx, err := m.PutString(text)
		if err != nil {
			return err
		}
		return m.Push(value.NewRef(value.Str, idx))
	}

	return m.Push(castScalar(v, target))
}

func parseScalar(s string, target bytecode.CastType) value.Value {
	switch target {
	case bytecode.CastI64:
		n, _ := strconv.ParseInt(s, 10, 64)
		return value.NewI64(n)
	case bytecode.CastU64:
		n, _ := strconv.ParseUint(s, 10, 64)
		return value.NewU64(n)
	case bytecode.CastFloat:
		f, _ := strconv.ParseFloat(s, 64)
		return value.NewFloat(f)
	case bytecode.CastBool:
		b, _ := strconv.ParseBool(s)
		return value.NewBool(b)
	case bytecode.CastChar:
		r := []rune(s)
		if len(r) == 0 {
			return value.NewChar(0)
		}
		return value.NewChar(r[0])
	default:
		return value.UnitValue
	}
}

func formatScalar(v value.Value) string {
	return v.String()
}

func castScalar(v value.Value, target bytecode.CastType) value.Value {
	var f float64
	var i int64
	var u uint64
	switch v.Tag {
	case value.I64:
		i, f, u = v.I64(), float64(v.I64()), uint64(v.I64())
	case value.U64:
		u, f, i = v.U64(), float64(v.U64()), int64(v.U64())
	case value.Float:
		f = v.Float()
		i, u = int64(f), uint64(f)
	case value.Bool:
		if v.Bool() {
			i, u, f = 1, 1, 1
		}
	case value.Char:
		i, u, f = int64(v.Char()), uint64(v.Char()), float64(v.Char())
	}
	switch target {
	case bytecode.CastI64:
		return value.NewI64(i)
	case bytecode.CastU64:
		return value.NewU64(u)
	case bytecode.CastFloat:
		return value.NewFloat(f)
	case bytecode.CastBool:
		return value.NewBool(i != 0 || f != 0)
	case bytecode.CastChar:
		return value.NewChar(rune(i))
	default:
		return value.UnitValue
	}
}

func (m *Machine) execArith(op bytecode.Opcode) error {
	b, err := m.Pop()
	if err != nil {
		return err
	}
	a, err := m.Pop()
	if err != nil {
		return err
	}

	switch op {
	case bytecode.IAdd, bytecode.ISub, bytecode.IMul, bytecode.IDiv, bytecode.IMod:
		if a.Tag != value.I64 || b.Tag != value.I64 {
			return ErrTypeMismatch
		}
		r, err := intArith(op, a.I64(), b.I64())
		if err != nil {
			return err
		}
		return m.Push(value.NewI64(r))
	case bytecode.UIAdd, bytecode.UISub, bytecode.UIMul, bytecode.UIDiv, bytecode.UIMod:
		if a.Tag != value.U64 || b.Tag != value.U64 {
			return ErrTypeMismatch
		}
		r, err := uintArith(op, a.U64(), b.U64())
		if err != nil {
			return err
		}
		return m.Push(value.NewU64(r))
	case bytecode.FAdd, bytecode.FSub, bytecode.FMul, bytecode.FDiv, bytecode.FMod:
		if a.Tag != value.Float || b.Tag != value.Float {
			return ErrTypeMismatch
		}
		return m.Push(value.NewFloat(floatArith(op, a.Float(), b.Float())))
	}
	return ErrInvalidOperation
}

func intArith(op bytecode.Opcode, a, b int64) (int64, error) {
	switch op {
	case bytecode.IAdd:
		return a + b, nil
	case bytecode.ISub:
		return a - b, nil
	case bytecode.IMul:
		return a * b, nil
	case bytecode.IDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case bytecode.IMod:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a % b, nil
	}
	return 0, ErrInvalidOperation
}

func uintArith(op bytecode.Opcode, a, b uint64) (uint64, error) {
	switch op {
	case bytecode.UIAdd:
		return a + b, nil
	case bytecode.UISub:
		return a - b, nil
	case bytecode.UIMul:
		return a * b, nil
	case bytecode.UIDiv:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case bytecode.UIMod:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a % b, nil
	}
	return 0, ErrInvalidOperation
}

func floatArith(op bytecode.Opcode, a, b float64) float64 {
	switch op {
	case bytecode.FAdd:
		return a + b
	case bytecode.FSub:
		return a - b
	case bytecode.FMul:
		return a * b
	case bytecode.FDiv:
		return a / b
	case bytecode.FMod:
		r := a - b*float64(int64(a/b))
		return r
	}
	return 0
}

func (m *Machine) execCompare(op bytecode.Opcode) error {
	b, err := m.Pop()
	if err != nil {
		return err
	}
	a, err := m.Pop()
	if err != nil {
		return err
	}
	if a.Tag != b.Tag {
		return ErrTypeMismatch
	}

	var eq, less bool
	switch a.Tag {
	case value.Str:
		ca, err := m.GetCell(a.HeapIndex())
		if err != nil {
			return err
		}
		cb, err := m.GetCell(b.HeapIndex())
		if err != nil {
			return err
		}
		eq = ca.Str == cb.Str
		less = ca.Str < cb.Str
	case value.List, value.Object:
		eq = a.HeapIndex() == b.HeapIndex()
		less = false
	case value.I64:
		eq = a.I64() == b.I64()
		less = a.I64() < b.I64()
	case value.U64:
		eq = a.U64() == b.U64()
		less = a.U64() < b.U64()
	case value.Float:
		eq = a.Float() == b.Float()
		less = a.Float() < b.Float()
	case value.Char:
		eq = a.Char() == b.Char()
		less = a.Char() < b.Char()
	case value.Bool:
		eq = a.Bool() == b.Bool()
		less = !a.Bool() && b.Bool()
	default:
		eq = a.Scalar == b.Scalar
	}

	if a.IsReference() {
		if err := m.RcDec(a.HeapIndex()); err != nil {
			return err
		}
	}
	if b.IsReference() {
		if err := m.RcDec(b.HeapIndex()); err != nil {
			return err
		}
	}

	var result bool
	switch op {
	case bytecode.Eq:
		result = eq
	case bytecode.Neq:
		result = !eq
	case bytecode.Lt:
		result = less
	case bytecode.Lte:
		result = less || eq
	case bytecode.Gt:
		result = !less && !eq
	case bytecode.Gte:
		result = !less
	}
	return m.Push(value.NewBool(result))
}

func (m *Machine) resolveLabel(name string) (int, bool) {
	for _, l := range m.prog.Labels {
		if l.Name == name {
			return l.Position, true
		}
	}
	return 0, false
}

func (m *Machine) enterCall(target, args int) error {
	base := m.stack.Len() - args
	if base < 0 {
		return ErrInvalidOperation
	}
	m.frames = append(m.frames, frame{returnPC: m.pc + 1, base: base})
	m.scopes.Push()
	m.pc = target
	return nil
}

func (m *Machine) execCallFunction(name string, args int) error {
	target, ok := m.resolveLabel(name)
	if !ok {
		return ErrInvalidOperation
	}
	return m.enterCall(target, args)
}

func (m *Machine) execDirectCall(pos, args int) error {
	if pos < 0 || pos >= len(m.prog.Global.FunctionPool) {
		return ErrInvalidOperation
	}
	return m.enterCall(m.prog.Global.FunctionPool[pos], args)
}

func (m *Machine) execCall(args int) error {
	fn, err := m.Pop()
	if err != nil {
		return err
	}
	if fn.Tag != value.FnPtr {
		return ErrTypeMismatch
	}
	return m.enterCall(fn.FnOffset(), args)
}

func (m *Machine) execExternCall(name string, args int) error {
	fn, ok := foreign.Get(name)
	if !ok {
		return ErrInvalidOperation
	}
	result, err := fn(m)
	if err != nil {
		return translateForeignErr(err)
	}
	return m.Push(result)
}

func translateForeignErr(err error) error {
	switch err {
	case foreign.ErrTypeMismatch:
		return ErrTypeMismatch
	case foreign.ErrIndexOutOfBounds:
		return ErrIndexOutOfBounds
	default:
		return translateStackErr(translateHeapErr(err))
	}
}

func (m *Machine) execReturn() (terminated bool, result value.Value, err error) {
	v, err := m.Pop()
	if err != nil {
		return false, value.Value{}, err
	}
	if len(m.frames) == 0 {
		return false, value.Value{}, fmt.Errorf("interpreter: return with no active frame")
	}
	fr := m.frames[len(m.frames)-1]
	m.frames = m.frames[:len(m.frames)-1]

	for _, discarded := range m.stack.Truncate(fr.base) {
		if discarded.IsReference() {
			if err := m.RcDec(discarded.HeapIndex()); err != nil {
				return false, value.Value{}, err
			}
		}
	}
	if err := m.scopes.Pop(); err != nil {
		return false, value.Value{}, err
	}

	if fr.returnPC == sentinelReturnPC {
		return true, v, nil
	}
	m.pc = fr.returnPC
	if err := m.Push(v); err != nil {
		return false, value.Value{}, err
	}
	return false, value.Value{}, nil
}
