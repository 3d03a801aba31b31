package bar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/backend/backendtest"
	"github.com/bnema/wm/internal/config"
	"github.com/bnema/wm/internal/status"
	"github.com/bnema/wm/internal/tree"
)

// mapMetrics is a deterministic TextMetrics fake keyed by exact string, for
// pinning the scenario 6 worked example exactly rather than approximating
// it with a per-rune width.
type mapMetrics struct {
	widths map[string]int
	height int
}

func (m mapMetrics) TextWidth(s string) int { return m.widths[s] }
func (m mapMetrics) LineHeight() int        { return m.height }

func TestBuildPaletteRejectsMalformedColor(t *testing.T) {
	cfg := config.Default().Bar.Colors
	cfg.Focus.Background = "not-a-color"
	_, err := BuildPalette(cfg)
	require.Error(t, err)
}

func TestBuildPaletteResolvesAllSeventeenSlots(t *testing.T) {
	p, err := BuildPalette(config.Default().Bar.Colors)
	require.NoError(t, err)
	require.NotEqual(t, p.Focus.Background, p.Inactive.Background)
}

// scenario 6 (spec.md §8): three status blocks "foo"(width 30),
// "barbaz"(width 50, min_width 80, align=Center), "q"(width 10),
// separator_block_width=9. Expected statusline width 138; second block's
// offset 15.
func TestComputeLayoutScenario6(t *testing.T) {
	blocks := []status.Block{
		{FullText: "foo"},
		{FullText: "barbaz", MinWidth: 80, AlignRaw: "center"},
		{FullText: "q"},
	}
	metrics := mapMetrics{widths: map[string]int{"foo": 28, "barbaz": 48, "q": 8}}

	total, out := ComputeLayout(blocks, metrics, 9)
	require.Equal(t, 138, total)
	require.Equal(t, 30, out[0].ComputedWidth)
	require.Equal(t, 80, out[1].ComputedWidth)
	require.Equal(t, 15, out[1].ComputedOffsetX)
	require.Equal(t, 10, out[2].ComputedWidth)
}

func TestComputeLayoutLeftAlignPutsSlackAfterText(t *testing.T) {
	blocks := []status.Block{{FullText: "x", MinWidth: 50, AlignRaw: "left"}}
	metrics := mapMetrics{widths: map[string]int{"x": 10}}
	_, out := ComputeLayout(blocks, metrics, 0)
	require.Equal(t, 50, out[0].ComputedWidth)
	require.Equal(t, 0, out[0].ComputedOffsetX)
}

func TestTrayDockMapsOnlyWhenXEmbedMappedBitSet(t *testing.T) {
	tr := NewTray(0)
	mapped := tr.Dock(tree.WindowHandle(1), xembedMappedFlag)
	unmapped := tr.Dock(tree.WindowHandle(2), 0)
	require.True(t, mapped.Mapped)
	require.False(t, unmapped.Mapped)
	require.Len(t, tr.Clients(), 2)
	require.Len(t, tr.MappedClients(), 1)

	tr.Remove(tree.WindowHandle(1))
	require.Len(t, tr.Clients(), 1)
}

func TestTrayGenerationIncrementsOnReclaim(t *testing.T) {
	tr := NewTray(0)
	tr.Claim(true)
	tr.Claim(true)
	require.Equal(t, 2, tr.Generation())
	tr.Claim(false)
	require.Equal(t, 2, tr.Generation())
	require.False(t, tr.Owned())
}

func TestIconXIndexedFromRight(t *testing.T) {
	require.Equal(t, 1920, IconX(1920, 0, 16, 2))
	require.Equal(t, 1902, IconX(1920, 1, 16, 2))
}

func TestVisibilityHideModeRevealsOnModifierHold(t *testing.T) {
	v := NewVisibility(ModeHide)
	require.False(t, v.Visible())
	v.SetModifierHeld(true)
	require.True(t, v.Visible())
	v.SetModifierHeld(false)
	require.False(t, v.Visible())
}

func TestVisibilityUrgentForcesShown(t *testing.T) {
	v := NewVisibility(ModeHide)
	v.SetUrgent(true)
	require.True(t, v.Visible())
	v.SetUrgent(false)
	require.False(t, v.Visible())
}

func TestVisibilityDockModeAlwaysShown(t *testing.T) {
	v := NewVisibility(ModeDock)
	require.True(t, v.Visible())
	v.SetModifierHeld(false)
	require.True(t, v.Visible())
}

func TestVisibilityInvisibleModeAlwaysHidden(t *testing.T) {
	v := NewVisibility(ModeInvisible)
	require.False(t, v.Visible())
	v.SetUrgent(true)
	require.False(t, v.Visible())
}

func newTestCore(t *testing.T, be backend.DisplayBackend) *Core {
	t.Helper()
	c, err := New(config.Default().Bar, be, mapMetrics{widths: map[string]int{}, height: 14}, nil)
	require.NoError(t, err)
	return c
}

func TestLayoutGrowsPixmapMonotonically(t *testing.T) {
	ctrl := gomock.NewController(t)
	be := backendtest.NewMockDisplayBackend(ctrl)
	c := newTestCore(t, be)
	c.metrics = mapMetrics{widths: map[string]int{"a": 8, "a much longer block of text": 200}, height: 14}
	c.AddOutput("eDP-1", tree.WindowHandle(1), tree.Rect{X: 0, Y: 0, W: 1920, H: 1080}, 0)

	c.SetStatusBlocks([]status.Block{{FullText: "a"}})
	be.EXPECT().AllocPixmap(gomock.Any(), gomock.Any(), gomock.Any()).Return(backend.PixmapHandle(1), nil)
	_, _, err := c.Layout(context.Background(), "eDP-1")
	require.NoError(t, err)
	require.Equal(t, backend.PixmapHandle(1), c.Output("eDP-1").Pixmap)

	// A second, wider block sequence must grow (Alloc new, then Free old) —
	// not shrink or reuse.
	c.SetStatusBlocks([]status.Block{{FullText: "a much longer block of text"}})
	be.EXPECT().AllocPixmap(gomock.Any(), gomock.Any(), gomock.Any()).Return(backend.PixmapHandle(2), nil)
	be.EXPECT().FreePixmap(gomock.Any(), backend.PixmapHandle(1)).Return(nil)
	_, _, err = c.Layout(context.Background(), "eDP-1")
	require.NoError(t, err)
	require.Equal(t, backend.PixmapHandle(2), c.Output("eDP-1").Pixmap)
}

func TestWorkspaceButtonsSkippedWhenDisabled(t *testing.T) {
	cfg := config.Default().Bar
	cfg.DisableWorkspaceButtons = true
	c, err := New(cfg, nil, mapMetrics{}, nil)
	require.NoError(t, err)

	tr := tree.New(nil)
	out := tr.CreateOutput("eDP-1", tree.Rect{X: 0, Y: 0, W: 1920, H: 1080})
	ws, err := tr.EnsureWorkspace(out, "1", 1, true)
	require.NoError(t, err)

	require.Nil(t, c.WorkspaceButtons([]*tree.Container{ws}, ws, ws))
}

func TestWorkspaceButtonsLayoutLeftToRight(t *testing.T) {
	c := newTestCore(t, nil)
	c.metrics = mapMetrics{widths: map[string]int{"1": 8, "2": 8}}

	tr := tree.New(nil)
	out := tr.CreateOutput("eDP-1", tree.Rect{X: 0, Y: 0, W: 1920, H: 1080})
	ws1, err := tr.EnsureWorkspace(out, "1", 1, true)
	require.NoError(t, err)
	ws2, err := tr.EnsureWorkspace(out, "2", 2, true)
	require.NoError(t, err)

	buttons := c.WorkspaceButtons([]*tree.Container{ws1, ws2}, ws1, ws1)
	require.Len(t, buttons, 2)
	require.Equal(t, workspaceButtonOffset, buttons[0].X)
	require.True(t, buttons[0].Focused)
	require.False(t, buttons[1].Focused)
	require.Equal(t, buttons[0].X+buttons[0].Width+workspaceButtonSpacing, buttons[1].X)
}

func TestSetBarOptionMode(t *testing.T) {
	c := newTestCore(t, nil)
	require.NoError(t, c.SetBarOption("", "mode", "invisible"))
	require.False(t, c.Visible())
}

func TestRunewidthMetricsWidensDoubleWidthRunes(t *testing.T) {
	m := RunewidthMetrics{CellWidth: 8, CellHeight: 16}
	require.Equal(t, 24, m.TextWidth("abc"))
	require.Equal(t, 32, m.TextWidth("漢字")) // two double-width runes
	require.Equal(t, 16, m.LineHeight())
}

func TestSetVisibleOverridesModeTransitions(t *testing.T) {
	cfg := config.Default().Bar
	cfg.HideOnModifier = "hide"
	c, err := New(cfg, nil, mapMetrics{}, nil)
	require.NoError(t, err)
	require.False(t, c.Visible())

	c.SetVisible(true)
	require.True(t, c.Visible())
	c.SetModifierHeld(false) // override holds regardless
	require.True(t, c.Visible())
}
