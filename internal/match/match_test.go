package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/wm/internal/tree"
)

func newTestTree(t *testing.T) (*tree.Tree, *tree.Container) {
	t.Helper()
	tr := tree.New(nil)
	out := tr.CreateOutput("eDP-1", tree.Rect{W: 1920, H: 1080})
	ws, err := tr.EnsureWorkspace(out, "1", 1, true)
	require.NoError(t, err)
	return tr, ws
}

func TestResolveEmptyCriteriaIsFocused(t *testing.T) {
	tr, ws := newTestTree(t)
	leaf, err := tr.CreateLeaf(ws, tree.WindowHandle(1))
	require.NoError(t, err)
	require.True(t, tr.Focus(leaf))

	got, err := Resolve(tr, Criteria{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, leaf.ID, got[0].ID)
}

func TestResolveByClassRegex(t *testing.T) {
	tr, ws := newTestTree(t)
	l1, _ := tr.CreateLeaf(ws, tree.WindowHandle(1))
	l1.Class = "Firefox"
	l2, _ := tr.CreateLeaf(ws, tree.WindowHandle(2))
	l2.Class = "kitty"

	got, err := Resolve(tr, Criteria{Class: "^Fire.*"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, l1.ID, got[0].ID)
}

func TestResolveByConIDExact(t *testing.T) {
	tr, ws := newTestTree(t)
	l1, _ := tr.CreateLeaf(ws, tree.WindowHandle(1))
	_, _ = tr.CreateLeaf(ws, tree.WindowHandle(2))

	got, err := Resolve(tr, Criteria{ContainerID: l1.ID, HasConID: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, l1.ID, got[0].ID)
}

func TestResolveUrgentLatest(t *testing.T) {
	tr, ws := newTestTree(t)
	l1, _ := tr.CreateLeaf(ws, tree.WindowHandle(1))
	l1.Class = "app"
	l1.Urgent = true
	l1.UrgentAt = time.Unix(100, 0)
	l2, _ := tr.CreateLeaf(ws, tree.WindowHandle(2))
	l2.Class = "app"
	l2.Urgent = true
	l2.UrgentAt = time.Unix(200, 0)

	got, err := Resolve(tr, Criteria{Class: "app", Urgent: UrgentLatest})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, l2.ID, got[0].ID)
}

func TestResolveNoMatchReturnsEmpty(t *testing.T) {
	tr, ws := newTestTree(t)
	_, _ = tr.CreateLeaf(ws, tree.WindowHandle(1))

	got, err := Resolve(tr, Criteria{Class: "nonexistent"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSuggestCommandFindsClosest(t *testing.T) {
	got := SuggestCommand("flaoting")
	require.NotEmpty(t, got)
	require.Contains(t, got, "floating")
}

func TestSuggestWorkspace(t *testing.T) {
	tr, _ := newTestTree(t)
	_, err := tr.EnsureWorkspace(tr.Outputs()[0], "web", 0, false)
	require.NoError(t, err)

	got := SuggestWorkspace(tr, "we")
	require.Contains(t, got, "web")
}
