package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/backend/backendtest"
	"github.com/bnema/wm/internal/tree"
)

type fixedGaps struct{ inner, outer int }

func (f fixedGaps) GapsFor(string) (int, int) { return f.inner, f.outer }

func newTestTree(t *testing.T) (*tree.Tree, *tree.Container) {
	t.Helper()
	tr := tree.New(nil)
	out := tr.CreateOutput("eDP-1", tree.Rect{X: 0, Y: 0, W: 1000, H: 1000})
	ws, err := tr.EnsureWorkspace(out, "1", 1, true)
	require.NoError(t, err)
	return tr, ws
}

func TestRenderSplitHDistributesByPercent(t *testing.T) {
	tr, ws := newTestTree(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(ws, tree.WindowHandle(2))
	require.NoError(t, err)
	require.True(t, tr.Resize(l1, l2, 0.2)) // 0.7/0.3

	ctrl := gomock.NewController(t)
	be := backendtest.NewMockDisplayBackend(ctrl)
	be.EXPECT().Configure(gomock.Any(), tree.WindowHandle(1), gomock.Any()).Return(nil)
	be.EXPECT().Map(gomock.Any(), tree.WindowHandle(1)).Return(nil)
	be.EXPECT().Configure(gomock.Any(), tree.WindowHandle(2), gomock.Any()).Return(nil)
	be.EXPECT().Map(gomock.Any(), tree.WindowHandle(2)).Return(nil)

	r := New(be, nil, fixedGaps{}, nil)
	require.NoError(t, r.Render(context.Background(), tr))

	require.Equal(t, 700, l1.Rect.W)
	require.Equal(t, 300, l2.Rect.W)
	require.Equal(t, 700, l2.Rect.X)
	require.Equal(t, 1000, l1.Rect.H)
}

func TestRenderAppliesInnerAndOuterGaps(t *testing.T) {
	tr, ws := newTestTree(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(ws, tree.WindowHandle(2))
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	be := backendtest.NewMockDisplayBackend(ctrl)
	be.EXPECT().Configure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	be.EXPECT().Map(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	r := New(be, nil, fixedGaps{inner: 10, outer: 20}, nil)
	require.NoError(t, r.Render(context.Background(), tr))

	// working rect after a 20px outer inset is 960 wide; 10px inner gap
	// leaves 950 to split 50/50 => 475 each.
	require.Equal(t, 20, l1.Rect.X)
	require.Equal(t, 475, l1.Rect.W)
	require.Equal(t, 20+475+10, l2.Rect.X)
	require.Equal(t, 475, l2.Rect.W)
}

func TestRenderStackedReservesHeaderAndHidesInactive(t *testing.T) {
	tr, ws := newTestTree(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	split, err := tr.WrapInSplit(l1, tree.LayoutStacked)
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(split, tree.WindowHandle(2))
	require.NoError(t, err)
	require.True(t, tr.Focus(l2)) // l2 becomes the active (visible) stack child

	ctrl := gomock.NewController(t)
	be := backendtest.NewMockDisplayBackend(ctrl)
	be.EXPECT().Unmap(gomock.Any(), tree.WindowHandle(1)).Return(nil)
	be.EXPECT().Configure(gomock.Any(), tree.WindowHandle(2), gomock.Any()).Return(nil)
	be.EXPECT().Map(gomock.Any(), tree.WindowHandle(2)).Return(nil)

	metrics := backendtest.FixedTextMetrics{WidthPerRune: 5, Height: 14}
	r := New(be, metrics, fixedGaps{}, nil)
	require.NoError(t, r.Render(context.Background(), tr))

	headerHeight := metrics.LineHeight() + headerStripPadding
	require.Equal(t, headerHeight, l1.Rect.H)
	require.Equal(t, 1000-2*headerHeight, l2.Rect.H)
	require.Equal(t, 2*headerHeight, l2.Rect.Y)
}

func TestRenderFloatingKeepsExplicitRect(t *testing.T) {
	tr, ws := newTestTree(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	require.NoError(t, tr.Detach(l1))
	fc, err := tr.CreateFloatingContainer(ws)
	require.NoError(t, err)
	fc.Rect = tree.Rect{X: 200, Y: 150, W: 400, H: 300}
	require.NoError(t, tr.Attach(l1, fc, -1))

	ctrl := gomock.NewController(t)
	be := backendtest.NewMockDisplayBackend(ctrl)
	be.EXPECT().Configure(gomock.Any(), tree.WindowHandle(1), backend.WindowGeometry{
		Rect: tree.Rect{X: 200, Y: 150, W: 400, H: 300}, BorderWidth: 2,
	}).Return(nil)
	be.EXPECT().Map(gomock.Any(), tree.WindowHandle(1)).Return(nil)

	r := New(be, nil, fixedGaps{}, nil)
	require.NoError(t, r.Render(context.Background(), tr))
	require.Equal(t, fc.Rect, l1.Rect)
}
