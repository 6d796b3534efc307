package foreign

import (
	"bytes"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/atlas77-lang/atlas77/internal/heap"
	"github.com/atlas77-lang/atlas77/internal/value"
)

func TestIoPrintlnWritesStringAndReleasesArg(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockVM(ctrl)

	var out bytes.Buffer
	cell := &heap.Cell{Kind: heap.KindString, Str: "hello"}

	gomock.InOrder(
		m.EXPECT().Pop().Return(value.NewRef(value.Str, 3), nil),
		m.EXPECT().GetCell(3).Return(cell, nil),
		m.EXPECT().Stdout().Return(&out),
		m.EXPECT().RcDec(3).Return(nil),
	)

	result, err := ioPrintln(m)
	if err != nil {
		t.Fatalf("ioPrintln: %v", err)
	}
	if result.Tag != value.Unit {
		t.Errorf("result = %v, want Unit", result)
	}
	if out.String() != "hello\n" {
		t.Errorf("stdout = %q, want %q", out.String(), "hello\n")
	}
}

func TestIoPrintlnTypeMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := NewMockVM(ctrl)

	m.EXPECT().Pop().Return(value.NewI64(1), nil)

	if _, err := ioPrintln(m); err != ErrTypeMismatch {
		t.Errorf("expected ErrTypeMismatch, got %v", err)
	}
}
