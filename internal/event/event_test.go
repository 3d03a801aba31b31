package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/backend/backendtest"
	"github.com/bnema/wm/internal/tree"
)

type fakeBarVisibility struct {
	visible      *bool
	modifierHeld *bool
}

func (f *fakeBarVisibility) SetVisible(v bool)      { *f.visible = v }
func (f *fakeBarVisibility) SetModifierHeld(v bool) { *f.modifierHeld = v }

type fakeStatusController struct {
	suspended int
	resumed   int
}

func (f *fakeStatusController) Suspend() error { f.suspended++; return nil }
func (f *fakeStatusController) Resume() error  { f.resumed++; return nil }

func newTestDispatcher(t *testing.T, be backend.DisplayBackend) (*Dispatcher, *tree.Tree, *tree.Container) {
	t.Helper()
	tr := tree.New(nil)
	out := tr.CreateOutput("eDP-1", tree.Rect{X: 0, Y: 0, W: 1920, H: 1080})
	ws, err := tr.EnsureWorkspace(out, "1", 1, true)
	require.NoError(t, err)
	return New(tr, be, nil, nil, nil), tr, ws
}

func TestMapCreatesLeafUnderFocusedWorkspace(t *testing.T) {
	d, tr, ws := newTestDispatcher(t, nil)
	require.True(t, tr.Focus(ws))

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindMap, Window: tree.WindowHandle(1)}))

	leaf, ok := tr.ByWindow(tree.WindowHandle(1))
	require.True(t, ok)
	require.Same(t, ws, leaf.Parent())
	require.Same(t, leaf, tr.Focused())
	require.True(t, d.ConsumeRender())
}

func TestMapUnderFocusedSplitContainer(t *testing.T) {
	d, tr, ws := newTestDispatcher(t, nil)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	split, err := tr.WrapInSplit(l1, tree.LayoutSplitV)
	require.NoError(t, err)
	require.True(t, tr.Focus(l1))

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindMap, Window: tree.WindowHandle(2)}))

	leaf, ok := tr.ByWindow(tree.WindowHandle(2))
	require.True(t, ok)
	require.Same(t, split, leaf.Parent())
}

func TestMapIgnoresDuplicateForAlreadyMappedWindow(t *testing.T) {
	d, tr, ws := newTestDispatcher(t, nil)
	require.True(t, tr.Focus(ws))
	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindMap, Window: tree.WindowHandle(1)}))
	d.ConsumeRender()

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindMap, Window: tree.WindowHandle(1)}))
	require.False(t, d.ConsumeRender())
	require.Len(t, ws.Children(), 1)
}

func TestUnmapClosesLeafAndCollapsesSplit(t *testing.T) {
	d, tr, ws := newTestDispatcher(t, nil)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	_, err = tr.CreateLeaf(ws, tree.WindowHandle(2))
	require.NoError(t, err)
	split, err := tr.WrapInSplit(l1, tree.LayoutSplitV)
	require.NoError(t, err)
	other, err := tr.CreateLeaf(split, tree.WindowHandle(3))
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindUnmap, Window: tree.WindowHandle(3)}))

	_, ok := tr.ByWindow(tree.WindowHandle(3))
	require.False(t, ok)
	require.Same(t, ws, l1.Parent()) // split collapsed, l1 promoted into its place
	require.True(t, d.ConsumeRender())
}

func TestDestroyIsTreatedLikeUnmap(t *testing.T) {
	d, tr, ws := newTestDispatcher(t, nil)
	_, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindDestroy, Window: tree.WindowHandle(1)}))
	_, ok := tr.ByWindow(tree.WindowHandle(1))
	require.False(t, ok)
}

func TestUnmapOfUnknownWindowIsIgnored(t *testing.T) {
	d, _, _ := newTestDispatcher(t, nil)
	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindUnmap, Window: tree.WindowHandle(99)}))
	require.False(t, d.ConsumeRender())
}

func TestConfigureRequestDeniedForTiledWindowReassertsGeometry(t *testing.T) {
	ctrl := gomock.NewController(t)
	be := backendtest.NewMockDisplayBackend(ctrl)
	d, tr, ws := newTestDispatcher(t, be)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	l1.Rect = tree.Rect{X: 0, Y: 0, W: 1920, H: 1080}

	be.EXPECT().Configure(gomock.Any(), tree.WindowHandle(1), backend.WindowGeometry{
		Rect:        l1.Rect,
		BorderWidth: l1.BorderWidth,
	}).Return(nil)

	req := tree.Rect{X: 500, Y: 500, W: 300, H: 300}
	require.NoError(t, d.Dispatch(context.Background(), Event{
		Kind: KindConfigureRequest, Window: tree.WindowHandle(1), RequestedRect: req,
	}))
	require.Equal(t, tree.Rect{X: 0, Y: 0, W: 1920, H: 1080}, l1.Rect) // request denied
}

func TestConfigureRequestGrantedForFloatingWindow(t *testing.T) {
	d, tr, ws := newTestDispatcher(t, nil)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	require.NoError(t, tr.Detach(l1))
	fc, err := tr.CreateFloatingContainer(ws)
	require.NoError(t, err)
	require.NoError(t, tr.Attach(l1, fc, -1))

	req := tree.Rect{X: 100, Y: 100, W: 400, H: 300}
	require.NoError(t, d.Dispatch(context.Background(), Event{
		Kind: KindConfigureRequest, Window: tree.WindowHandle(1), RequestedRect: req,
	}))
	require.Equal(t, req, l1.Rect)
	require.Equal(t, req, fc.Rect)
	require.True(t, d.ConsumeRender())
}

func TestPropertyChangeUpdatesLeafFields(t *testing.T) {
	d, tr, ws := newTestDispatcher(t, nil)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(context.Background(), Event{
		Kind: KindPropertyChange, Window: tree.WindowHandle(1), Property: PropTitle, Value: "term",
	}))
	require.NoError(t, d.Dispatch(context.Background(), Event{
		Kind: KindPropertyChange, Window: tree.WindowHandle(1), Property: PropUrgent, Value: "true",
	}))
	require.Equal(t, "term", l1.Title)
	require.True(t, l1.Urgent)
	require.True(t, d.ConsumeRender())
}

func TestFocusChangeMirrorsIntoTree(t *testing.T) {
	d, tr, ws := newTestDispatcher(t, nil)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(ws, tree.WindowHandle(2))
	require.NoError(t, err)
	require.True(t, tr.Focus(l2))

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindFocusChange, Window: tree.WindowHandle(1)}))
	require.Same(t, l1, tr.Focused())
}

func TestButtonPressSwitchesWorkspaceByIndex(t *testing.T) {
	d, tr, ws1 := newTestDispatcher(t, nil)
	out := tr.Outputs()[0]
	ws2, err := tr.EnsureWorkspace(out, "2", 2, true)
	require.NoError(t, err)
	require.True(t, tr.Focus(ws1))

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindButtonPress, WorkspaceIndex: 2}))
	require.Same(t, ws2, tree.WorkspaceOf(tr.Focused()))
}

func TestVisibilityChangeTogglesBarAndSuspendsStatus(t *testing.T) {
	tr := tree.New(nil)
	visible, modHeld := true, false
	bar := &fakeBarVisibility{visible: &visible, modifierHeld: &modHeld}
	status := &fakeStatusController{}
	d := New(tr, nil, status, bar, nil)

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindVisibilityChange, Visible: false}))
	require.False(t, visible)
	require.Equal(t, 1, status.suspended)

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindVisibilityChange, Visible: true}))
	require.True(t, visible)
	require.Equal(t, 1, status.resumed)
}

func TestModifierChangeSetsBarHeldFlag(t *testing.T) {
	tr := tree.New(nil)
	visible, modHeld := true, false
	bar := &fakeBarVisibility{visible: &visible, modifierHeld: &modHeld}
	d := New(tr, nil, nil, bar, nil)

	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindModifierChange, Pressed: true}))
	require.True(t, modHeld)
}

func TestUnknownEventIsIgnored(t *testing.T) {
	d, _, _ := newTestDispatcher(t, nil)
	require.NoError(t, d.Dispatch(context.Background(), Event{Kind: KindUnknown}))
	require.False(t, d.ConsumeRender())
}
