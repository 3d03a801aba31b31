package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestTree(t *testing.T) (*Tree, *Container, *Container) {
	t.Helper()
	tr := New(nil)
	out := tr.CreateOutput("eDP-1", Rect{X: 0, Y: 0, W: 1920, H: 1080})
	ws, err := tr.EnsureWorkspace(out, "1", 1, true)
	require.NoError(t, err)
	return tr, out, ws
}

func TestCreateOutputAndWorkspaceLifecycle(t *testing.T) {
	tr, out, ws := newTestTree(t)
	require.Equal(t, RoleOutput, out.Role)
	require.Equal(t, RoleWorkspace, ws.Role)
	require.NoError(t, tr.Validate())

	// EnsureWorkspace is idempotent by name.
	again, err := tr.EnsureWorkspace(out, "1", 1, true)
	require.NoError(t, err)
	require.Same(t, ws, again)
}

func TestCreateLeafRebalancesPercentages(t *testing.T) {
	tr, _, ws := newTestTree(t)
	l1, err := tr.CreateLeaf(ws, WindowHandle(100))
	require.NoError(t, err)
	require.InDelta(t, 1.0, l1.Percent, 1e-9)

	l2, err := tr.CreateLeaf(ws, WindowHandle(200))
	require.NoError(t, err)
	require.InDelta(t, 0.5, l1.Percent, 1e-9)
	require.InDelta(t, 0.5, l2.Percent, 1e-9)

	l3, err := tr.CreateLeaf(ws, WindowHandle(300))
	require.NoError(t, err)
	require.InDelta(t, 1.0/3, l1.Percent, 1e-9)
	require.InDelta(t, 1.0/3, l2.Percent, 1e-9)
	require.InDelta(t, 1.0/3, l3.Percent, 1e-9)
	require.NoError(t, tr.Validate())
}

func TestCloseLeafCollapsesSplitContainer(t *testing.T) {
	tr, _, ws := newTestTree(t)
	l1, err := tr.CreateLeaf(ws, WindowHandle(1))
	require.NoError(t, err)
	split, err := tr.WrapInSplit(l1, LayoutSplitV)
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(split, WindowHandle(2))
	require.NoError(t, err)
	require.Len(t, split.Children(), 2)

	promoted, err := tr.CloseLeaf(l2)
	require.NoError(t, err)
	require.Same(t, l1, promoted)
	require.Equal(t, ws, l1.Parent())
	_, stillThere := tr.ByID(split.ID)
	require.False(t, stillThere, "collapsed split container should be forgotten")
	require.NoError(t, tr.Validate())
}

func TestFocusFullscreenGlobalBoundary(t *testing.T) {
	tr, _, ws := newTestTree(t)
	l1, err := tr.CreateLeaf(ws, WindowHandle(1))
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(ws, WindowHandle(2))
	require.NoError(t, err)

	require.True(t, tr.Focus(l1))
	require.NoError(t, tr.ToggleFullscreen(l1, FullscreenGlobal))

	ok := tr.Focus(l2)
	require.False(t, ok, "focus should be refused while a different subtree is fullscreen-global")
	require.Same(t, l1, tr.Focused())
}

func TestSetMarkUniqueness(t *testing.T) {
	tr, _, ws := newTestTree(t)
	l1, _ := tr.CreateLeaf(ws, WindowHandle(1))
	l2, _ := tr.CreateLeaf(ws, WindowHandle(2))

	require.NoError(t, tr.SetMark(l1, "scratch", false))
	require.NoError(t, tr.SetMark(l2, "scratch", false))

	require.Empty(t, l1.Mark)
	require.Equal(t, "scratch", l2.Mark)

	holder, ok := tr.ByMark("scratch")
	require.True(t, ok)
	require.Same(t, l2, holder)
}

func TestSetMarkToggleClears(t *testing.T) {
	tr, _, ws := newTestTree(t)
	l1, _ := tr.CreateLeaf(ws, WindowHandle(1))
	require.NoError(t, tr.SetMark(l1, "x", true))
	require.Equal(t, "x", l1.Mark)
	require.NoError(t, tr.SetMark(l1, "x", true))
	require.Empty(t, l1.Mark)
	_, ok := tr.ByMark("x")
	require.False(t, ok)
}

func TestResizeRefusesBelowMinimum(t *testing.T) {
	tr, _, ws := newTestTree(t)
	l1, _ := tr.CreateLeaf(ws, WindowHandle(1))
	l2, _ := tr.CreateLeaf(ws, WindowHandle(2))
	require.InDelta(t, 0.5, l1.Percent, 1e-9)

	ok := tr.Resize(l1, l2, 0.5-minResizePercent+0.01)
	require.False(t, ok)
	require.InDelta(t, 0.5, l1.Percent, 1e-9)

	ok = tr.Resize(l1, l2, 0.1)
	require.True(t, ok)
	require.InDelta(t, 0.6, l1.Percent, 1e-9)
	require.InDelta(t, 0.4, l2.Percent, 1e-9)
}

func TestFindResizeParticipantsSkipsStackedAncestor(t *testing.T) {
	tr, _, ws := newTestTree(t)
	ws.Layout = LayoutSplitH
	l1, _ := tr.CreateLeaf(ws, WindowHandle(1))
	split, err := tr.WrapInSplit(l1, LayoutStacked)
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(split, WindowHandle(2))
	require.NoError(t, err)
	l3, err := tr.CreateLeaf(ws, WindowHandle(3))
	require.NoError(t, err)

	first, second, ok := FindResizeParticipants(l2, DirRight)
	require.True(t, ok)
	require.Same(t, split, first)
	require.Same(t, l3, second)
}

func TestMoveToWorkspace(t *testing.T) {
	tr, out, ws1 := newTestTree(t)
	ws2, err := tr.EnsureWorkspace(out, "2", 2, true)
	require.NoError(t, err)
	l1, err := tr.CreateLeaf(ws1, WindowHandle(1))
	require.NoError(t, err)

	require.NoError(t, tr.MoveToWorkspace(l1, ws2))
	require.Equal(t, ws2, l1.Parent())
	require.Empty(t, ws1.Children())
	require.NoError(t, tr.Validate())
}

func TestNextPrevWorkspaceCycle(t *testing.T) {
	tr, out, ws1 := newTestTree(t)
	ws2, err := tr.EnsureWorkspace(out, "2", 2, true)
	require.NoError(t, err)
	ws3, err := tr.EnsureWorkspace(out, "3", 3, true)
	require.NoError(t, err)

	require.Same(t, ws2, tr.NextWorkspace(ws1))
	require.Same(t, ws3, tr.NextWorkspace(ws2))
	require.Same(t, ws1, tr.NextWorkspace(ws3))

	require.Same(t, ws3, tr.PrevWorkspace(ws1))
	require.Same(t, ws1, tr.PrevWorkspace(ws2))
}

func TestFocusDirectionPicksNearestCenter(t *testing.T) {
	tr, _, ws := newTestTree(t)
	ws.Layout = LayoutSplitH
	left, err := tr.CreateLeaf(ws, WindowHandle(1))
	require.NoError(t, err)
	right, err := tr.CreateLeaf(ws, WindowHandle(2))
	require.NoError(t, err)
	left.Rect = Rect{X: 0, Y: 0, W: 960, H: 1080}
	right.Rect = Rect{X: 960, Y: 0, W: 960, H: 1080}

	got := FocusDirection(tr.Root(), left, DirRight)
	require.Same(t, right, got)

	got = FocusDirection(tr.Root(), right, DirLeft)
	require.Same(t, left, got)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	tr, _, ws := newTestTree(t)
	l1, err := tr.CreateLeaf(ws, WindowHandle(10))
	require.NoError(t, err)
	_, err = tr.CreateLeaf(ws, WindowHandle(20))
	require.NoError(t, err)
	require.NoError(t, tr.SetMark(l1, "pinned", false))
	require.True(t, tr.Focus(l1))

	data, err := tr.Serialize()
	require.NoError(t, err)

	restored := New(nil)
	require.NoError(t, restored.Deserialize(data))
	require.NoError(t, restored.Validate())

	again, err := restored.Serialize()
	require.NoError(t, err)
	require.JSONEq(t, string(data), string(again))

	holder, ok := restored.ByMark("pinned")
	require.True(t, ok)
	require.Equal(t, l1.ID, holder.ID)
	require.Equal(t, l1.ID, restored.Focused().ID)
}

func TestFloatingContainerLifecycle(t *testing.T) {
	tr, _, ws := newTestTree(t)
	l1, err := tr.CreateLeaf(ws, WindowHandle(1))
	require.NoError(t, err)

	require.NoError(t, tr.Detach(l1))
	fc, err := tr.CreateFloatingContainer(ws)
	require.NoError(t, err)
	require.NoError(t, tr.Attach(l1, fc, -1))
	require.Equal(t, RoleFloatingContainer, l1.Parent().Role)
	require.NoError(t, tr.Validate())

	require.NoError(t, tr.Detach(l1))
	require.NoError(t, tr.DestroyFloatingIfEmpty(fc))
	_, stillThere := tr.ByID(fc.ID)
	require.False(t, stillThere)
}

func TestSwitchToWorkspaceBackAndForth(t *testing.T) {
	tr, out, ws1 := newTestTree(t)
	ws2, err := tr.EnsureWorkspace(out, "2", 2, true)
	require.NoError(t, err)

	require.True(t, tr.Focus(ws1))
	require.Same(t, ws2, tr.SwitchToWorkspace(ws2, true))
	require.Same(t, ws1, tr.SwitchToWorkspace(ws2, true))
}

func TestAppendLayoutPartialGraft(t *testing.T) {
	tr, _, ws := newTestTree(t)
	doc := []byte(`{"nodes":[{"type":"split","layout":"splitv"},123,{"type":"leaf"}]}`)
	n, err := tr.AppendLayout(ws, doc)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Len(t, ws.Children(), 2)
	// The grafted leaf is a placeholder with no window yet swallowed, so it
	// deliberately violates invariant 7 until a real window maps into it;
	// Validate() is not expected to pass until then.
}

func TestValidateCatchesBadPercentSum(t *testing.T) {
	tr, _, ws := newTestTree(t)
	_, err := tr.CreateLeaf(ws, WindowHandle(1))
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(ws, WindowHandle(2))
	require.NoError(t, err)
	l2.Percent = 0.9 // corrupt invariant 3 directly

	err = tr.Validate()
	require.Error(t, err)
}
