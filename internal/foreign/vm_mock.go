// Package foreign is a generated GoMock package.
package foreign

//go:generate mockgen -source registry.go -destination vm_mock.go -package foreign

import (
	io "io"
	reflect "reflect"
	time "time"

	gomock "go.uber.org/mock/gomock"

	heap "github.com/atlas77-lang/atlas77/internal/heap"
	value "github.com/atlas77-lang/atlas77/internal/value"
)

// MockVM is a mock of VM interface.
type MockVM struct {
	ctrl     *gomock.Controller
	recorder *MockVMMockRecorder
}

// MockVMMockRecorder is the mock recorder for MockVM.
type MockVMMockRecorder struct {
	mock *MockVM
}

// NewMockVM creates a new mock instance.
func NewMockVM(ctrl *gomock.Controller) *MockVM {
	mock := &MockVM{ctrl: ctrl}
	mock.recorder = &MockVMMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockVM) EXPECT() *MockVMMockRecorder {
	return m.recorder
}

// Pop mocks base method.
func (m *MockVM) Pop() (value.Value, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Pop")
	ret0, _ := ret[0].(value.Value)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Pop indicates an expected call of Pop.
func (mr *MockVMMockRecorder) Pop() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Pop", reflect.TypeOf((*MockVM)(nil).Pop))
}

// Push mocks base method.
func (m *MockVM) Push(v value.Value) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Push", v)
	ret0, _ := ret[0].(error)
	return ret0
}

// Push indicates an expected call of Push.
func (mr *MockVMMockRecorder) Push(v any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Push", reflect.TypeOf((*MockVM)(nil).Push), v)
}

// PutString mocks base method.
func (m *MockVM) PutString(s string) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutString", s)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PutString indicates an expected call of PutString.
func (mr *MockVMMockRecorder) PutString(s any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutString", reflect.TypeOf((*MockVM)(nil).PutString), s)
}

// PutList mocks base method.
func (m *MockVM) PutList(elems []value.Value) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PutList", elems)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PutList indicates an expected call of PutList.
func (mr *MockVMMockRecorder) PutList(elems any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PutList", reflect.TypeOf((*MockVM)(nil).PutList), elems)
}

// GetCell mocks base method.
func (m *MockVM) GetCell(i int) (*heap.Cell, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCell", i)
	ret0, _ := ret[0].(*heap.Cell)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCell indicates an expected call of GetCell.
func (mr *MockVMMockRecorder) GetCell(i any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCell", reflect.TypeOf((*MockVM)(nil).GetCell), i)
}

// RcInc mocks base method.
func (m *MockVM) RcInc(i int) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RcInc", i)
}

// RcInc indicates an expected call of RcInc.
func (mr *MockVMMockRecorder) RcInc(i any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RcInc", reflect.TypeOf((*MockVM)(nil).RcInc), i)
}

// RcDec mocks base method.
func (m *MockVM) RcDec(i int) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RcDec", i)
	ret0, _ := ret[0].(error)
	return ret0
}

// RcDec indicates an expected call of RcDec.
func (mr *MockVMMockRecorder) RcDec(i any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RcDec", reflect.TypeOf((*MockVM)(nil).RcDec), i)
}

// Stdout mocks base method.
func (m *MockVM) Stdout() io.Writer {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Stdout")
	ret0, _ := ret[0].(io.Writer)
	return ret0
}

// Stdout indicates an expected call of Stdout.
func (mr *MockVMMockRecorder) Stdout() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Stdout", reflect.TypeOf((*MockVM)(nil).Stdout))
}

// Stdin mocks base method.
func (m *MockVM) Stdin() io.Reader {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Stdin")
	ret0, _ := ret[0].(io.Reader)
	return ret0
}

// Stdin indicates an expected call of Stdin.
func (mr *MockVMMockRecorder) Stdin() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Stdin", reflect.TypeOf((*MockVM)(nil).Stdin))
}

// Epoch mocks base method.
func (m *MockVM) Epoch() time.Time {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Epoch")
	ret0, _ := ret[0].(time.Time)
	return ret0
}

// Epoch indicates an expected call of Epoch.
func (mr *MockVMMockRecorder) Epoch() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Epoch", reflect.TypeOf((*MockVM)(nil).Epoch))
}
