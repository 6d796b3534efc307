package foreign

import (
	"time"

	"github.com/atlas77-lang/atlas77/internal/value"
)

func init() {
	Register("now", timeNow)
	Register("format_time", timeFormat)
	Register("format_time_iso", timeFormatISO)
	Register("elapsed", timeElapsed)
}

// timeNow returns the number of seconds elapsed since the VM's epoch
// (captured once at Machine construction), not wall-clock Unix time: the
// reference implementation treats every run as starting its own clock.
func timeNow(vm VM) (value.Value, error) {
	if _, err := popArgs(vm, 0); err != nil {
		return value.Value{}, err
	}
	return value.NewFloat(time.Since(vm.Epoch()).Seconds()), nil
}

func timeElapsed(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	since, err := argFloat(args[0])
	if err != nil {
		return value.Value{}, err
	}
	now := time.Since(vm.Epoch()).Seconds()
	return value.NewFloat(now - since), nil
}

func timeFormat(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	secs, err := argFloat(args[0])
	if err != nil {
		return value.Value{}, err
	}
	t := vm.Epoch().Add(time.Duration(secs * float64(time.Second)))
	return newStringResult(vm, t.Format("2006-01-02 15:04:05"))
}

func timeFormatISO(vm VM) (value.Value, error) {
	args, err := popArgs(vm, 1)
	if err != nil {
		return value.Value{}, err
	}
	secs, err := argFloat(args[0])
	if err != nil {
		return value.Value{}, err
	}
	t := vm.Epoch().Add(time.Duration(secs * float64(time.Second)))
	return newStringResult(vm, t.Format(time.RFC3339))
}
