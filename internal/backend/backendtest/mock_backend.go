// Package backendtest provides go.uber.org/mock-based fakes for the
// backend package's capability interfaces, hand-written in the shape
// mockgen would generate (the module intentionally avoids a go:generate
// toolchain step since this repo is never built here; the shape is kept
// identical to what `mockgen -source=backend.go` produces so regenerating
// it later is a drop-in).
package backendtest

import (
	"context"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/tree"
)

// MockDisplayBackend is a mock of the DisplayBackend interface.
type MockDisplayBackend struct {
	ctrl     *gomock.Controller
	recorder *MockDisplayBackendRecorder
}

type MockDisplayBackendRecorder struct {
	mock *MockDisplayBackend
}

func NewMockDisplayBackend(ctrl *gomock.Controller) *MockDisplayBackend {
	m := &MockDisplayBackend{ctrl: ctrl}
	m.recorder = &MockDisplayBackendRecorder{mock: m}
	return m
}

func (m *MockDisplayBackend) EXPECT() *MockDisplayBackendRecorder { return m.recorder }

func (m *MockDisplayBackend) Configure(ctx context.Context, win tree.WindowHandle, geom backend.WindowGeometry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Configure", ctx, win, geom)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockDisplayBackendRecorder) Configure(ctx, win, geom any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Configure",
		reflect.TypeOf((*MockDisplayBackend)(nil).Configure), ctx, win, geom)
}

func (m *MockDisplayBackend) Map(ctx context.Context, win tree.WindowHandle) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Map", ctx, win)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockDisplayBackendRecorder) Map(ctx, win any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Map",
		reflect.TypeOf((*MockDisplayBackend)(nil).Map), ctx, win)
}

func (m *MockDisplayBackend) Unmap(ctx context.Context, win tree.WindowHandle) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Unmap", ctx, win)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockDisplayBackendRecorder) Unmap(ctx, win any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Unmap",
		reflect.TypeOf((*MockDisplayBackend)(nil).Unmap), ctx, win)
}

func (m *MockDisplayBackend) Kill(ctx context.Context, win tree.WindowHandle) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Kill", ctx, win)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockDisplayBackendRecorder) Kill(ctx, win any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Kill",
		reflect.TypeOf((*MockDisplayBackend)(nil).Kill), ctx, win)
}

func (m *MockDisplayBackend) Exec(ctx context.Context, cmdline string, startupID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Exec", ctx, cmdline, startupID)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockDisplayBackendRecorder) Exec(ctx, cmdline, startupID any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exec",
		reflect.TypeOf((*MockDisplayBackend)(nil).Exec), ctx, cmdline, startupID)
}

func (m *MockDisplayBackend) AllocPixmap(ctx context.Context, width, height int) (backend.PixmapHandle, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AllocPixmap", ctx, width, height)
	h, _ := ret[0].(backend.PixmapHandle)
	err, _ := ret[1].(error)
	return h, err
}

func (mr *MockDisplayBackendRecorder) AllocPixmap(ctx, width, height any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AllocPixmap",
		reflect.TypeOf((*MockDisplayBackend)(nil).AllocPixmap), ctx, width, height)
}

func (m *MockDisplayBackend) FreePixmap(ctx context.Context, p backend.PixmapHandle) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FreePixmap", ctx, p)
	err, _ := ret[0].(error)
	return err
}

func (mr *MockDisplayBackendRecorder) FreePixmap(ctx, p any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FreePixmap",
		reflect.TypeOf((*MockDisplayBackend)(nil).FreePixmap), ctx, p)
}

func (m *MockDisplayBackend) ClaimTraySelection(ctx context.Context, outputIndex int) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ClaimTraySelection", ctx, outputIndex)
	ok, _ := ret[0].(bool)
	err, _ := ret[1].(error)
	return ok, err
}

func (mr *MockDisplayBackendRecorder) ClaimTraySelection(ctx, outputIndex any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ClaimTraySelection",
		reflect.TypeOf((*MockDisplayBackend)(nil).ClaimTraySelection), ctx, outputIndex)
}

var _ backend.DisplayBackend = (*MockDisplayBackend)(nil)

// FixedTextMetrics is a trivial, deterministic TextMetrics fake for tests
// that exercise the bar's status-line layout algorithm without needing a
// real font.
type FixedTextMetrics struct {
	WidthPerRune int
	Height       int
}

func (f FixedTextMetrics) TextWidth(s string) int {
	return len([]rune(s)) * f.WidthPerRune
}

func (f FixedTextMetrics) LineHeight() int { return f.Height }

var _ backend.TextMetrics = FixedTextMetrics{}
