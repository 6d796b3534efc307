package bytecode

import (
	"fmt"
	"strconv"
	"strings"
)

var opcodeByName map[string]Opcode

func init() {
	opcodeByName = make(map[string]Opcode, numOpcodes)
	for i := Opcode(0); i < numOpcodes; i++ {
		opcodeByName[opcodeNames[i]] = i
	}
}

// Lookup resolves a mnemonic (as produced by Opcode.String()) back to an
// Opcode.
func Lookup(name string) (Opcode, bool) {
	op, ok := opcodeByName[strings.ToLower(name)]
	return op, ok
}

var castByName = map[string]CastType{
	"i64":   CastI64,
	"u64":   CastU64,
	"float": CastFloat,
	"bool":  CastBool,
	"char":  CastChar,
	"str":   CastStr,
}

// LookupCast resolves a CastTo target type mnemonic.
func LookupCast(name string) (CastType, bool) {
	t, ok := castByName[strings.ToLower(name)]
	return t, ok
}

// ParseInstruction parses one line as produced by Instruction.String().
func ParseInstruction(line string) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Instruction{}, fmt.Errorf("bytecode: empty instruction")
	}
	op, ok := Lookup(fields[0])
	if !ok {
		return Instruction{}, fmt.Errorf("bytecode: unknown opcode %q", fields[0])
	}
	args := fields[1:]
	ins := Instruction{Op: op}

	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("bytecode: %s expects %d operand(s), got %d", op, n, len(args))
		}
		return nil
	}

	switch op {
	case PushInt:
		if err := need(1); err != nil {
			return ins, err
		}
		v, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return ins, err
		}
		ins.Int = v
	case PushFloat:
		if err := need(1); err != nil {
			return ins, err
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return ins, err
		}
		ins.Float = v
	case PushUnsignedInt:
		if err := need(1); err != nil {
			return ins, err
		}
		v, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return ins, err
		}
		ins.UInt = v
	case PushBool:
		if err := need(1); err != nil {
			return ins, err
		}
		v, err := strconv.ParseBool(args[0])
		if err != nil {
			return ins, err
		}
		ins.Bool = v
	case PushChar:
		if err := need(1); err != nil {
			return ins, err
		}
		v, err := strconv.Unquote(args[0])
		if err != nil || len([]rune(v)) != 1 {
			return ins, fmt.Errorf("bytecode: malformed char literal %q", args[0])
		}
		ins.Char = []rune(v)[0]
	case PushStr, PushList:
		if err := need(1); err != nil {
			return ins, err
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return ins, err
		}
		ins.ConstIndex = v
	case Store, Load:
		if err := need(1); err != nil {
			return ins, err
		}
		ins.Name = args[0]
	case Get:
		if err := need(1); err != nil {
			return ins, err
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return ins, err
		}
		ins.Slot = v
	case CastTo:
		if err := need(1); err != nil {
			return ins, err
		}
		t, ok := LookupCast(args[0])
		if !ok {
			return ins, fmt.Errorf("bytecode: unknown cast type %q", args[0])
		}
		ins.Cast = t
	case Jmp, JmpZ:
		if err := need(1); err != nil {
			return ins, err
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return ins, err
		}
		ins.Offset = v
	case CallFunction:
		if err := need(2); err != nil {
			return ins, err
		}
		ins.Name = args[0]
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return ins, err
		}
		ins.Args = v
	case DirectCall:
		if err := need(2); err != nil {
			return ins, err
		}
		pos, err := strconv.Atoi(args[0])
		if err != nil {
			return ins, err
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return ins, err
		}
		ins.Pos, ins.Args = pos, n
	case Call:
		if err := need(1); err != nil {
			return ins, err
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return ins, err
		}
		ins.Args = v
	case ExternCall:
		if err := need(2); err != nil {
			return ins, err
		}
		ins.Name = args[0]
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return ins, err
		}
		ins.Args = v
	}
	return ins, nil
}
