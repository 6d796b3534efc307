package foreign

import (
	"os"

	"github.com/atlas77-lang/atlas77/internal/value"
)

func init() {
	Register("read_dir", fsReadDir)
	Register("read_file", fsReadFile)
	Register("write_file", fsWriteFile)
	Register("file_exists", fsFileExists)
	Register("remove_file", fsRemoveFile)
}

// fsReadDir returns a heap LIST of heap STR entries, one per directory
// entry name, matching the reference implementation's fs.read_dir shape.
func fsReadDir(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	path, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return value.Value{}, err
	}
	elems := make([]value.Value, len(entries))
	for i, e := range entries {
		idx, err := vm.PutString(e.Name())
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

func fsReadFile(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	path, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return value.Value{}, err
	}
	return newStringResult(vm, string(data))
}

func fsWriteFile(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 2)
	if err != nil {
		return value.Value{}, err
	}
	path, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	content, err := argString(vm, args[1])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[1].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return value.Value{}, err
	}
	return value.UnitValue, nil
}

func fsFileExists(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	path, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	_, err = os.Stat(path)
	return value.NewBool(err == nil), nil
}

func fsRemoveFile(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	path, err := argString(vm, args[0])
	if err != nil {
		return value.Value{}, err
	}
	if err := vm.RcDec(args[0].HeapIndex()); err != nil {
		return value.Value{}, err
	}
	if err := os.Remove(path); err != nil {
		return value.Value{}, err
	}
	return value.UnitValue, nil
}
