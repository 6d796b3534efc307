package value

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"unit", UnitValue, false},
		{"false", NewBool(false), false},
		{"true", NewBool(true), true},
		{"zero i64", NewI64(0), false},
		{"nonzero i64", NewI64(-1), true},
		{"zero u64", NewU64(0), false},
		{"zero float", NewFloat(0), true},
		{"str ref", NewRef(Str, 3), true},
		{"list ref", NewRef(List, 0), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.v.Truthy(); got != c.want {
				t.Errorf("Truthy() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestIsReference(t *testing.T) {
	refTags := []Tag{Str, List, Object}
	for _, tag := range refTags {
		v := NewRef(tag, 1)
		if !v.IsReference() {
			t.Errorf("%v: expected IsReference() true", tag)
		}
	}
	nonRef := []Value{UnitValue, NewBool(true), NewI64(1), NewU64(1), NewFloat(1), NewChar('a'), NewFnPtr(0)}
	for _, v := range nonRef {
		if v.IsReference() {
			t.Errorf("%v: expected IsReference() false", v)
		}
	}
}

func TestFloatRoundTrip(t *testing.T) {
	want := 3.14159
	v := NewFloat(want)
	if got := v.Float(); got != want {
		t.Errorf("Float() = %v, want %v", got, want)
	}
}

func TestI64RoundTrip(t *testing.T) {
	want := int64(-42)
	v := NewI64(want)
	if got := v.I64(); got != want {
		t.Errorf("I64() = %v, want %v", got, want)
	}
}
