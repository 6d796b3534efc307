package foreign

import "github.com/atlas77-lang/atlas77/internal/value"

func init() {
	Register("len", listLen)
	Register("push", listPush)
	Register("pop", listPop)
	Register("remove", listRemove)
	Register("slice", listSlice)
	Register("get", listGet)
	Register("set", listSet)
}

func argList(vm VM, v value.Value) (*value.Value, []value.Value, error) {
	if v.Tag != value.List {
		return nil, nil, ErrTypeMismatch
	}
	cell, err := vm.GetCell(v.HeapIndex())
	if err != nil {
		return nil, nil, err
	}
	return &v, cell.Elems, nil
}

func listLen(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	_, elems, err := argList(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	n := int64(len(elems))
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return value.NewI64(n), nil
}

func listPush(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 2)
	if err != nil {
		return value.Value{}, err
	}
	v, elems, err := argList(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	cell, err := vm.GetCell(v.HeapIndex())
	if err != nil {
		return value.Value{}, err
	}
	cell.Elems = append(elems, args[1])
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return value.UnitValue, nil
}

func listPop(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	v, elems, err := argList(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if len(elems) == 0 {
		return value.Value{}, ErrIndexOutOfBounds
	}
	last := elems[len(elems)-1]
	cell, err := vm.GetCell(v.HeapIndex())
	if err != nil {
		return value.Value{}, err
	}
	cell.Elems = elems[:len(elems)-1]
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return last, nil
}

func listRemove(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 2)
	if err != nil {
		return value.Value{}, err
	}
	v, elems, err := argList(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if args[1].Tag != value.I64 {
		return value.Value{}, ErrTypeMismatch
	}
	i := int(args[1].I64())
	if i < 0 || i >= len(elems) {
		return value.Value{}, ErrIndexOutOfBounds
	}
	removed := elems[i]
	cell, err := vm.GetCell(v.HeapIndex())
	if err != nil {
		return value.Value{}, err
	}
	cell.Elems = append(elems[:i], elems[i+1:]...)
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return removed, nil
}

func listSlice(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 3)
	if err != nil {
		return value.Value{}, err
	}
	_, elems, err := argList(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if args[1].Tag != value.I64 || args[2].Tag != value.I64 {
		return value.Value{}, ErrTypeMismatch
	}
	lo, hi := int(args[1].I64()), int(args[2].I64())
	if lo < 0 || hi > len(elems) || lo > hi {
		return value.Value{}, ErrIndexOutOfBounds
	}
	sliced := make([]value.Value, hi-lo)
	copy(sliced, elems[lo:hi])
	for _, e := range sliced {
		if e.IsReference() {
			vm.RcInc(e.HeapIndex())
		}
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	idx, err := vm.PutList(sliced)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewRef(value.List, idx), nil
}

func listGet(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 2)
	if err != nil {
		return value.Value{}, err
	}
	_, elems, err := argList(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if args[1].Tag != value.I64 {
		return value.Value{}, ErrTypeMismatch
	}
	i := int(args[1].I64())
	if i < 0 || i >= len(elems) {
		return value.Value{}, ErrIndexOutOfBounds
	}
	elem := elems[i]
	if elem.IsReference() {
		vm.RcInc(elem.HeapIndex())
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return elem, nil
}

func listSet(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 3)
	if err != nil {
		return value.Value{}, err
	}
	v, elems, err := argList(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if args[1].Tag != value.I64 {
		return value.Value{}, ErrTypeMismatch
	}
	i := int(args[1].I64())
	if i < 0 || i >= len(elems) {
		return value.Value{}, ErrIndexOutOfBounds
	}
	cell, err := vm.GetCell(v.HeapIndex())
	if err != nil {
		return value.Value{}, err
	}
	old := cell.Elems[i]
	if old.IsReference() {
		if err := vm.RcDec(old.HeapIndex()); err != nil {
			return value.Value{}, err
		}
	}
	cell.Elems[i] = args[2]
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return value.UnitValue, nil
}
