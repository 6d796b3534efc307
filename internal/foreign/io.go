package foreign

import (
	"bufio"
	"fmt"

	"github.com/atlas77-lang/atlas77/internal/value"
)

func init() {
	Register("println", ioPrintln)
	Register("print", ioPrint)
	Register("input", ioInput)
}

func argString(vm VM, v value.Value) (string, error) {
	if v.Tag != value.Str {
		return "", ErrTypeMismatch
	}
	cell, err := vm.GetCell(v.HeapIndex())
	if err != nil {
		return "", err
	}
	return cell.Str, nil
}

func ioPrintln(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	s, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	fmt.Fprintln(vm.Stdout(), s)
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return value.UnitValue, nil
}

func ioPrint(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	s, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	fmt.Fprint(vm.Stdout(), s)
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return value.UnitValue, nil
}

func ioInput(vm VM) (value.Value, error) {
	if _, err := popArgs(vm, 0); err != nil {
		return value.Value{}, err
	}
	line, err := bufio.NewReader(vm.Stdin()).ReadString('\n')
	if err != nil && line == "" {
		line = ""
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	idx, err := vm.PutString(line)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewRef(value.Str, idx), nil
}
