package foreign

import (
	"strings"

	"github.com/atlas77-lang/atlas77/internal/value"
)

func init() {
	Register("str_len", stringLen)
	Register("trim", stringTrim)
	Register("to_upper", stringToUpper)
	Register("to_lower", stringToLower)
	Register("split", stringSplit)
	Register("str_cmp", stringCmp)
	Register("from_chars", stringFromChars)
}

func stringLen(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	s, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	n := int64(len([]rune(s)))
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return value.NewI64(n), nil
}

func newStringResult(vm VM, s string) (value.Value, error) {
	idx, err := vm.PutString(s)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewRef(value.Str, idx), nil
}

func stringTrim(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	s, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return newStringResult(vm, strings.TrimSpace(s))
}

func stringToUpper(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	s, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return newStringResult(vm, strings.ToUpper(s))
}

func stringToLower(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	s, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return newStringResult(vm, strings.ToLower(s))
}

// stringSplit returns a heap LIST of heap STR entries, one per substring
// between occurrences of sep, matching the reference implementation's
// behavior for string.split (the distilled foreign-function table names
// the operation but not its result shape).
func stringSplit(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 2)
	if err != nil {
		return value.Value{}, err
	}
	s, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	sep, err := argString(vm, args[1])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[1].HeapIndex()); err != nil {
		return value.Value{}, err
	}

	parts := strings.Split(s, sep)
	elems := make([]value.Value, len(parts))
	for i, part := range parts {
		idx, err := vm.PutString(part)
		if err != nil {
			return value.Value{}, err
		}
		elems[i] = value.NewRef(value.Str, idx)
	}
	idx, err := vm.PutList(elems)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewRef(value.List, idx), nil
}

func stringCmp(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 2)
	if err != nil {
		return value.Value{}, err
	}
	a, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	b, err := argString(vm, args[1])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[1].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return value.NewI64(int64(strings.Compare(a, b))), nil
}

func stringFromChars(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	_, elems, err := argList(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	runes := make([]rune, len(elems))
	for i, e := range elems {
		if e.Tag != value.Char {
			return value.Value{}, ErrTypeMismatch
		}
		runes[i] = e.Char()
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	return newStringResult(vm, string(runes))
}
