package command

import (
	"context"
	"testing"

	"github.com/bnema/wm/internal/match"
	"github.com/bnema/wm/internal/tree"
	"github.com/stretchr/testify/require"
)

func newTestInterpreter(t *testing.T) (*Interpreter, *tree.Tree, *tree.Container) {
	t.Helper()
	tr := tree.New(nil)
	out := tr.CreateOutput("eDP-1", tree.Rect{X: 0, Y: 0, W: 1920, H: 1080})
	ws, err := tr.EnsureWorkspace(out, "1", 1, true)
	require.NoError(t, err)
	return New(tr, nil, nil, Hooks{}), tr, ws
}

// scenario 1 (spec.md §8): resize grow left 10px/10ppt.
func TestResizeGrowLeft(t *testing.T) {
	in, tr, ws := newTestInterpreter(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(ws, tree.WindowHandle(2))
	require.NoError(t, err)
	require.True(t, tr.Focus(l2))

	reply := in.execute(context.Background(), Command{
		Verb: VerbResize,
		Args: map[string]any{"direction": tree.DirLeft, "mode": "grow", "ppt": 10},
	})
	require.True(t, reply.Success)
	require.InDelta(t, 0.4, l1.Percent, 1e-9)
	require.InDelta(t, 0.6, l2.Percent, 1e-9)
	require.True(t, in.ConsumeRender())
}

// scenario 2 (spec.md §8): three leaves A B C in SplitH, A focused; move
// right reorders the layout to B A C without changing focus.
func TestMoveRightReordersWithoutRefocusing(t *testing.T) {
	in, tr, ws := newTestInterpreter(t)
	a, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	b, err := tr.CreateLeaf(ws, tree.WindowHandle(2))
	require.NoError(t, err)
	c, err := tr.CreateLeaf(ws, tree.WindowHandle(3))
	require.NoError(t, err)
	require.True(t, tr.Focus(a))

	reply := in.execute(context.Background(), Command{
		Verb: VerbMove,
		Args: map[string]any{"direction": tree.DirRight},
	})
	require.True(t, reply.Success)
	require.Equal(t, []*tree.Container{b, a, c}, ws.Children())
	require.Same(t, a, tr.Focused())
}

// scenario 3 (spec.md §8): `workspace <name>` respects
// workspace_auto_back_and_forth.
func TestWorkspaceBackAndForth(t *testing.T) {
	in, tr, ws1 := newTestInterpreter(t)
	in.SetAutoBackAndForth(true)
	out := tr.Outputs()[0]
	ws2, err := tr.EnsureWorkspace(out, "2", 2, true)
	require.NoError(t, err)

	require.True(t, tr.Focus(ws1))
	reply := in.execute(context.Background(), Command{
		Verb: VerbWorkspace,
		Args: map[string]any{"selector": "2", "name": "2"},
	})
	require.True(t, reply.Success)
	require.Same(t, ws2, tree.WorkspaceOf(tr.Focused()))

	// Switching to the already-focused workspace redirects back to "1".
	reply = in.execute(context.Background(), Command{
		Verb: VerbWorkspace,
		Args: map[string]any{"selector": "2", "name": "2"},
	})
	require.True(t, reply.Success)
	require.Same(t, ws1, tree.WorkspaceOf(tr.Focused()))
}

// `mark` matching more than one container is rejected outright and applies
// nothing, per the command table's "Multiple-match mark command returns
// error" and i3's cmd_mark (original_source/src/commands.c:1083-1086).
func TestMarkMultiMatchIsRejected(t *testing.T) {
	in, tr, ws := newTestInterpreter(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	l1.Class = "term"
	l2, err := tr.CreateLeaf(ws, tree.WindowHandle(2))
	require.NoError(t, err)
	l2.Class = "term"

	reply := in.execute(context.Background(), Command{
		Verb:     VerbMark,
		Criteria: match.Criteria{Class: "term"},
		Args:     map[string]any{"identifier": "scratch"},
	})
	require.False(t, reply.Success)
	require.Empty(t, l1.Mark)
	require.Empty(t, l2.Mark)
}

// scenario 5 (spec.md §8): focus is silently refused while a different
// subtree holds the global fullscreen; the reply still reports success.
func TestFocusBlockedByGlobalFullscreenIsSilent(t *testing.T) {
	in, tr, ws := newTestInterpreter(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	l2, err := tr.CreateLeaf(ws, tree.WindowHandle(2))
	require.NoError(t, err)
	require.True(t, tr.Focus(l1))
	require.NoError(t, tr.ToggleFullscreen(l1, tree.FullscreenGlobal))
	in.ConsumeRender()

	reply := in.execute(context.Background(), Command{
		Verb:     VerbFocus,
		Criteria: match.Criteria{ContainerID: l2.ID, HasConID: true},
	})
	require.True(t, reply.Success)
	require.Same(t, l1, tr.Focused())
	require.False(t, in.ConsumeRender())
}

func TestSplitPreservesFocus(t *testing.T) {
	in, tr, ws := newTestInterpreter(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	require.True(t, tr.Focus(l1))

	reply := in.execute(context.Background(), Command{
		Verb: VerbSplit,
		Args: map[string]any{"orientation": "v"},
	})
	require.True(t, reply.Success)
	require.Same(t, l1, tr.Focused())
}

func TestFloatingToggleMovesLeafUnderFloatingContainer(t *testing.T) {
	in, tr, ws := newTestInterpreter(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	require.True(t, tr.Focus(l1))

	reply := in.execute(context.Background(), Command{
		Verb: VerbFloating,
		Args: map[string]any{"mode": "toggle"},
	})
	require.True(t, reply.Success)
	require.Equal(t, tree.RoleFloatingContainer, l1.Parent().Role)

	reply = in.execute(context.Background(), Command{
		Verb: VerbFloating,
		Args: map[string]any{"mode": "toggle"},
	})
	require.True(t, reply.Success)
	require.Same(t, ws, l1.Parent())
}

func TestBorderToggleCycles(t *testing.T) {
	in, tr, ws := newTestInterpreter(t)
	l1, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	require.Equal(t, tree.BorderNormal, l1.Border)

	in.execute(context.Background(), Command{Verb: VerbBorder, Args: map[string]any{"mode": "toggle"}})
	require.Equal(t, tree.BorderPixel, l1.Border)
	in.execute(context.Background(), Command{Verb: VerbBorder, Args: map[string]any{"mode": "toggle"}})
	require.Equal(t, tree.BorderNone, l1.Border)
	in.execute(context.Background(), Command{Verb: VerbBorder, Args: map[string]any{"mode": "toggle"}})
	require.Equal(t, tree.BorderNormal, l1.Border)
}

func TestGapsPlusMinusClampsNonNegative(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	in.execute(context.Background(), Command{
		Verb: VerbGaps,
		Args: map[string]any{"dimension": "inner", "scope": "all", "op": "set", "px": 5},
	})
	inner, _ := in.GapsFor("1")
	require.Equal(t, 5, inner)

	in.execute(context.Background(), Command{
		Verb: VerbGaps,
		Args: map[string]any{"dimension": "inner", "scope": "all", "op": "minus", "px": 50},
	})
	inner, _ = in.GapsFor("1")
	require.Equal(t, 0, inner)
}

func TestModeToggleSwapsLastTwoModes(t *testing.T) {
	in, _, _ := newTestInterpreter(t)
	in.execute(context.Background(), Command{Verb: VerbMode, Args: map[string]any{"name": "resize"}})
	require.Equal(t, "resize", in.CurrentMode())

	in.execute(context.Background(), Command{Verb: VerbMode, Args: map[string]any{"name": "toggle"}})
	require.Equal(t, "default", in.CurrentMode())

	in.execute(context.Background(), Command{Verb: VerbMode, Args: map[string]any{"name": "toggle"}})
	require.Equal(t, "resize", in.CurrentMode())
}

func TestRenameWorkspaceRejectsExistingAndReservedNames(t *testing.T) {
	in, tr, ws1 := newTestInterpreter(t)
	out := tr.Outputs()[0]
	_, err := tr.EnsureWorkspace(out, "2", 2, true)
	require.NoError(t, err)

	reply := in.execute(context.Background(), Command{
		Verb: VerbRenameWS,
		Args: map[string]any{"old_name": "1", "new_name": "2"},
	})
	require.False(t, reply.Success)

	reply = in.execute(context.Background(), Command{
		Verb: VerbRenameWS,
		Args: map[string]any{"old_name": "1", "new_name": "__scratch"},
	})
	require.True(t, reply.ParseError)

	reply = in.execute(context.Background(), Command{
		Verb: VerbRenameWS,
		Args: map[string]any{"old_name": "1", "new_name": "main"},
	})
	require.True(t, reply.Success)
	require.Equal(t, "main", ws1.WorkspaceName)
}

func TestAppendLayoutGraftsValidSiblingsDespiteOneMalformedNode(t *testing.T) {
	in, tr, ws := newTestInterpreter(t)
	require.True(t, tr.Focus(ws))

	doc := `{"nodes":[{"type":"split","layout":"splitv"},123,{"type":"leaf"}]}`
	reply := in.execute(context.Background(), Command{
		Verb: VerbAppendLayout,
		Args: map[string]any{"json": doc},
	})
	require.True(t, reply.Success)
	require.Len(t, ws.Children(), 2)
}
