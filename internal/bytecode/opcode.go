// Package bytecode defines the Atlas 77 instruction set: the Opcode enum
// and the Instruction carrying its operands, in the style of the teacher's
// interpreter/lfvm/opcode.go enum-plus-String() idiom.
package bytecode

import "fmt"

// Opcode identifies one instruction kind.
type Opcode uint16

const (
	PushInt Opcode = iota
	PushFloat
	PushUnsignedInt
	PushBool
	PushChar
	PushUnit
	PushStr
	PushList
	Pop
	Swap
	Dup
	Store
	Load
	Get
	NewList
	ListLoad
	ListStore
	CastTo
	IAdd
	ISub
	IMul
	IDiv
	IMod
	FAdd
	FSub
	FMul
	FDiv
	FMod
	UIAdd
	UISub
	UIMul
	UIDiv
	UIMod
	Eq
	Neq
	Gt
	Gte
	Lt
	Lte
	Jmp
	JmpZ
	CallFunction
	DirectCall
	Call
	ExternCall
	Return
	Halt

	numOpcodes
)

var opcodeNames = [numOpcodes]string{
	PushInt:         "push_int",
	PushFloat:       "push_float",
	PushUnsignedInt: "push_uint",
	PushBool:        "push_bool",
	PushChar:        "push_char",
	PushUnit:        "push_unit",
	PushStr:         "push_str",
	PushList:        "push_list",
	Pop:             "pop",
	Swap:            "swap",
	Dup:             "dup",
	Store:           "store",
	Load:            "load",
	Get:             "get",
	NewList:         "new_list",
	ListLoad:        "list_load",
	ListStore:       "list_store",
	CastTo:          "cast_to",
	IAdd:            "i_add",
	ISub:            "i_sub",
	IMul:            "i_mul",
	IDiv:            "i_div",
	IMod:            "i_mod",
	FAdd:            "f_add",
	FSub:            "f_sub",
	FMul:            "f_mul",
	FDiv:            "f_div",
	FMod:            "f_mod",
	UIAdd:           "ui_add",
	UISub:           "ui_sub",
	UIMul:           "ui_mul",
	UIDiv:           "ui_div",
	UIMod:           "ui_mod",
	Eq:              "eq",
	Neq:             "neq",
	Gt:              "gt",
	Gte:             "gte",
	Lt:              "lt",
	Lte:             "lte",
	Jmp:             "jmp",
	JmpZ:            "jmp_z",
	CallFunction:    "call_function",
	DirectCall:      "direct_call",
	Call:            "call",
	ExternCall:      "extern_call",
	Return:          "return",
	Halt:            "halt",
}

func (op Opcode) String() string {
	if op < numOpcodes {
		return opcodeNames[op]
	}
	return fmt.Sprintf("opcode(%d)", uint16(op))
}

// CastType identifies the target type of a CastTo instruction.
type CastType uint8

const (
	CastI64 CastType = iota
	CastU64
	CastFloat
	CastBool
	CastChar
	CastStr
)

func (t CastType) String() string {
	switch t {
	case CastI64:
		return "i64"
	case CastU64:
		return "u64"
	case CastFloat:
		return "float"
	case CastBool:
		return "bool"
	case CastChar:
		return "char"
	case CastStr:
		return "str"
	default:
		return fmt.Sprintf("cast(%d)", uint8(t))
	}
}

// Instruction is one decoded bytecode instruction. Only the operand fields
// relevant to Op are meaningful; the rest are zero.
type Instruction struct {
	Op Opcode

	// Immediate scalar operands (PushInt/PushFloat/PushUnsignedInt/PushBool/PushChar).
	Int   int64
	UInt  uint64
	Float float64
	Bool  bool
	Char  rune

	// Constant-pool / name operands.
	ConstIndex int    // PushStr, PushList: index into string_pool / list_pool.
	Name       string // Store, Load, CallFunction, ExternCall.
	Slot       int    // Get: frame-relative slot index.
	Pos        int    // DirectCall: index into function_pool.
	Args       int    // CallFunction, DirectCall, Call, ExternCall: argument count.

	Cast CastType // CastTo.

	Offset int // Jmp, JmpZ: relative signed offset.
}

func (ins Instruction) String() string {
	switch ins.Op {
	case PushInt:
		return fmt.Sprintf("push_int %d", ins.Int)
	case PushFloat:
		return fmt.Sprintf("push_float %g", ins.Float)
	case PushUnsignedInt:
		return fmt.Sprintf("push_uint %d", ins.UInt)
	case PushBool:
		return fmt.Sprintf("push_bool %t", ins.Bool)
	case PushChar:
		return fmt.Sprintf("push_char %q", ins.Char)
	case PushStr, PushList:
		return fmt.Sprintf("%s %d", ins.Op, ins.ConstIndex)
	case Store, Load:
		return fmt.Sprintf("%s %s", ins.Op, ins.Name)
	case Get:
		return fmt.Sprintf("get %d", ins.Slot)
	case CastTo:
		return fmt.Sprintf("cast_to %s", ins.Cast)
	case Jmp, JmpZ:
		return fmt.Sprintf("%s %+d", ins.Op, ins.Offset)
	case CallFunction:
		return fmt.Sprintf("call_function %s %d", ins.Name, ins.Args)
	case DirectCall:
		return fmt.Sprintf("direct_call %d %d", ins.Pos, ins.Args)
	case Call:
		return fmt.Sprintf("call %d", ins.Args)
	case ExternCall:
		return fmt.Sprintf("extern_call %s %d", ins.Name, ins.Args)
	default:
		return ins.Op.String()
	}
}
