// Package value defines the tagged value representation shared by the
// evaluation stack, variable scopes, and heap objects.
package value

import (
	"fmt"
	"math"
)

// Tag identifies the variant carried by a Value.
type Tag uint8

const (
	Unit Tag = iota
	Bool
	I64
	U64
	Float
	Char
	Str
	List
	Object
	FnPtr
)

func (t Tag) String() string {
	switch t {
	case Unit:
		return "unit"
	case Bool:
		return "bool"
	case I64:
		return "i64"
	case U64:
		return "u64"
	case Float:
		return "float"
	case Char:
		return "char"
	case Str:
		return "str"
	case List:
		return "list"
	case Object:
		return "object"
	case FnPtr:
		return "fn_ptr"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

// Value is the fixed-size tagged value carried on the evaluation stack, in
// variables, and inside heap lists and class instances. Scalar tags store
// their payload directly in Scalar (floats via their IEEE-754 bit pattern);
// reference tags (Str, List, Object) and FnPtr store an index into the heap
// or bytecode stream in Scalar instead.
type Value struct {
	Tag    Tag
	Scalar uint64
}

// Unit values never carry a payload.
var UnitValue = Value{Tag: Unit}

func NewBool(b bool) Value {
	if b {
		return Value{Tag: Bool, Scalar: 1}
	}
	return Value{Tag: Bool, Scalar: 0}
}

func NewI64(v int64) Value { return Value{Tag: I64, Scalar: uint64(v)} }

func NewU64(v uint64) Value { return Value{Tag: U64, Scalar: v} }

func NewFloat(v float64) Value { return Value{Tag: Float, Scalar: math.Float64bits(v)} }

func NewChar(r rune) Value { return Value{Tag: Char, Scalar: uint64(r)} }

// NewRef builds a reference-tagged value pointing at the given heap index.
// tag must be Str, List or Object.
func NewRef(tag Tag, heapIndex int) Value {
	return Value{Tag: tag, Scalar: uint64(heapIndex)}
}

func NewFnPtr(offset int) Value { return Value{Tag: FnPtr, Scalar: uint64(offset)} }

func (v Value) Bool() bool { return v.Scalar != 0 }

func (v Value) I64() int64 { return int64(v.Scalar) }

func (v Value) U64() uint64 { return v.Scalar }

func (v Value) Float() float64 { return math.Float64frombits(v.Scalar) }

func (v Value) Char() rune { return rune(v.Scalar) }

// HeapIndex returns the object-slab index carried by a reference-tagged
// value. Callers must check IsReference first.
func (v Value) HeapIndex() int { return int(v.Scalar) }

func (v Value) FnOffset() int { return int(v.Scalar) }

// IsReference reports whether v designates a heap cell whose refcount is
// tracked by whoever holds this Value.
func (v Value) IsReference() bool {
	switch v.Tag {
	case Str, List, Object:
		return true
	default:
		return false
	}
}

// Truthy implements the JmpZ predicate from the instruction set: only
// false, unit, and zero-valued integers are falsy. Floats, strings, lists,
// objects and non-zero integers are truthy.
func (v Value) Truthy() bool {
	switch v.Tag {
	case Unit:
		return false
	case Bool:
		return v.Scalar != 0
	case I64, U64:
		return v.Scalar != 0
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.Tag {
	case Unit:
		return "()"
	case Bool:
		return fmt.Sprintf("%t", v.Bool())
	case I64:
		return fmt.Sprintf("%d", v.I64())
	case U64:
		return fmt.Sprintf("%d", v.U64())
	case Float:
		return fmt.Sprintf("%g", v.Float())
	case Char:
		return fmt.Sprintf("%q", v.Char())
	case Str, List, Object:
		return fmt.Sprintf("%s(#%d)", v.Tag, v.HeapIndex())
	case FnPtr:
		return fmt.Sprintf("fn@%d", v.FnOffset())
	default:
		return "<invalid>"
	}
}
