package foreign

import (
	"math"

	"pgregory.net/rand"

	"github.com/atlas77-lang/atlas77/internal/value"
)

func init() {
	Register("abs", mathAbs)
	Register("pow", mathPow)
	Register("sqrt", mathSqrt)
	Register("min", mathMin)
	Register("max", mathMax)
	Register("round", mathRound)
	Register("random", mathRandom)
}

var rng = rand.New(0)

func argFloat(v value.Value) (float64, error) {
	switch v.Tag {
	case value.Float:
		return v.Float(), nil
	case value.I64:
		return float64(v.I64()), nil
	case value.U64:
		return float64(v.U64()), nil
	default:
		return 0, ErrTypeMismatch
	}
}

func mathAbs(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	switch args[0].Tag {
	case value.I64:
		v := args[0].I64()
		if v < 0 {
			v = -v
		}
		return value.NewI64(v), nil
	case value.Float:
		return value.NewFloat(math.Abs(args[0].Float())), nil
	default:
		return value.Value{}, ErrTypeMismatch
	}
}

func mathPow(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 2)
	if err != nil {
		return value.Value{}, err
	}
	base, err := argFloat(args[0])
	if err != nil {
		return value.Value{}, err
	}
	exp, err := argFloat(args[1])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewFloat(math.Pow(base, exp)), nil
}

func mathSqrt(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	f, err := argFloat(args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewFloat(math.Sqrt(f)), nil
}

func mathMin(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 2)
	if err != nil {
		return value.Value{}, err
	}
	if args[0].Tag != args[1].Tag {
		return value.Value{}, ErrTypeMismatch
	}
	switch args[0].Tag {
	case value.I64:
		if args[0].I64() < args[1].I64() {
			return args[0], nil
		}
		return args[1], nil
	case value.U64:
		if args[0].U64() < args[1].U64() {
			return args[0], nil
		}
		return args[1], nil
	case value.Float:
		return value.NewFloat(math.Min(args[0].Float(), args[1].Float())), nil
	default:
		return value.Value{}, ErrTypeMismatch
	}
}

func mathMax(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 2)
	if err != nil {
		return value.Value{}, err
	}
	if args[0].Tag != args[1].Tag {
		return value.Value{}, ErrTypeMismatch
	}
	switch args[0].Tag {
	case value.I64:
		if args[0].I64() > args[1].I64() {
			return args[0], nil
		}
		return args[1], nil
	case value.U64:
		if args[0].U64() > args[1].U64() {
			return args[0], nil
		}
		return args[1], nil
	case value.Float:
		return value.NewFloat(math.Max(args[0].Float(), args[1].Float())), nil
	default:
		return value.Value{}, ErrTypeMismatch
	}
}

func mathRound(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	f, err := argFloat(args[0])
	if err != nil {
		return value.Value{}, err
	}
	return value.NewFloat(math.Round(f)), nil
}

func mathRandom(vm VM) (value.Value, error) {
	if _, err := popArgs(vm, 0); err != nil {
		return value.Value{}, err
	}
	return value.NewFloat(rng.Float64()), nil
}
