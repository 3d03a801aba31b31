package tree

import (
	"github.com/bnema/wm/internal/wmerr"
)

// CreateOutput registers a new output (spec.md §3, "An Output is
// created/destroyed by the backend on xrandr-like notifications"). It is
// attached under root with an empty Content child ready to receive
// workspaces.
func (t *Tree) CreateOutput(name string, rect Rect) *Container {
	out := t.newContainer(RoleOutput)
	out.OutputName = name
	out.Rect = rect
	out.Layout = LayoutOutput
	_ = t.Attach(out, t.root, -1)

	content := t.newContainer(RoleContent)
	content.Rect = rect
	_ = t.Attach(content, out, -1)
	return out
}

// DestroyOutput detaches and forgets an output and everything beneath it,
// e.g. on an xrandr disconnect notification. Any workspace that was visible
// on this output is left dangling in the registry's memory only insofar as
// its windows are also destroyed; callers are expected to have already
// relocated workspaces they want to keep via MoveWorkspaceToOutput.
func (t *Tree) DestroyOutput(out *Container) error {
	if out == nil || out.Role != RoleOutput {
		return wmerr.New(wmerr.KindInvariant, "destroy output: not an output")
	}
	return t.destroySubtree(out)
}

func (t *Tree) destroySubtree(c *Container) error {
	// Children first (bottom-up), so forget() never orphans an attached
	// node.
	for _, child := range append([]*Container{}, c.layoutOrder...) {
		if err := t.destroySubtree(child); err != nil {
			return err
		}
	}
	if c.parent != nil {
		if err := t.Detach(c); err != nil {
			return err
		}
	}
	t.forget(c)
	return nil
}

// EnsureWorkspace implements the lazy-creation lifecycle rule (spec.md §3:
// "A Workspace is created lazily on first reference by name or number").
// If a workspace with this name already exists anywhere in the tree it is
// returned unchanged; otherwise a new one is attached under output's
// Content child.
func (t *Tree) EnsureWorkspace(output *Container, name string, num int, hasNum bool) (*Container, error) {
	if ws, ok := t.WorkspaceByName(name); ok {
		return ws, nil
	}
	if output == nil || output.Role != RoleOutput {
		return nil, wmerr.New(wmerr.KindInvariant, "ensure workspace: output required for new workspace %q", name)
	}
	content := outputContent(output)
	if content == nil {
		return nil, wmerr.New(wmerr.KindInvariant, "ensure workspace: output %d has no content node", output.ID)
	}

	ws := t.newContainer(RoleWorkspace)
	ws.WorkspaceName = name
	ws.WorkspaceNum = num
	ws.WorkspaceHasNum = hasNum
	ws.Layout = LayoutSplitH
	if err := t.Attach(ws, content, -1); err != nil {
		t.forget(ws)
		return nil, err
	}
	return ws, nil
}

func outputContent(output *Container) *Container {
	for _, c := range output.layoutOrder {
		if c.Role == RoleContent {
			return c
		}
	}
	return nil
}

// DestroyWorkspaceIfEmpty implements "destroyed when it has no children and
// is not visible" (spec.md §3). visible is supplied by the caller (the
// renderer/workspace-switch logic knows which workspace is current per
// output); EnsureWorkspace/Attach never call this automatically.
func (t *Tree) DestroyWorkspaceIfEmpty(ws *Container, visible bool) error {
	if ws == nil || ws.Role != RoleWorkspace {
		return wmerr.New(wmerr.KindInvariant, "destroy workspace: not a workspace")
	}
	if visible || len(ws.layoutOrder) > 0 {
		return nil
	}
	return t.destroySubtree(ws)
}

// CreateLeaf implements "A LeafWindow is created on map-notify... wrapped
// from an X window, re-parented under the focused split container,
// percentages rebalanced" (spec.md §3). parent must already accept a leaf
// (a SplitContainer or Workspace); if parent is a Workspace with no tiling
// children yet, the leaf attaches directly (a Workspace with exactly one
// leaf needs no wrapping SplitContainer, mirroring i3's "mainPane"
// shortcut surfaced in the teacher's WorkspaceManager.mainPane).
func (t *Tree) CreateLeaf(parent *Container, handle WindowHandle) (*Container, error) {
	leaf := t.newContainer(RoleLeafWindow)
	leaf.Window = handle
	leaf.HasWindow = true
	leaf.Percent = 1.0
	leaf.Border = BorderNormal
	leaf.BorderWidth = 2
	if err := t.Attach(leaf, parent, -1); err != nil {
		t.forget(leaf)
		return nil, err
	}
	return leaf, nil
}

// CloseLeaf implements the reverse of CreateLeaf: detach, forget, and
// collapse the parent chain per the SplitContainer self-collapse rule
// ("destroyed when it has ≤1 child, self-collapses into parent",
// spec.md §3). Returns the container that was promoted into the closed
// leaf's place, if a collapse occurred, else nil.
func (t *Tree) CloseLeaf(leaf *Container) (*Container, error) {
	if leaf == nil || leaf.Role != RoleLeafWindow {
		return nil, wmerr.New(wmerr.KindInvariant, "close leaf: not a leaf window")
	}
	parent := leaf.parent
	if err := t.Detach(leaf); err != nil {
		return nil, err
	}
	t.forget(leaf)
	if parent == nil {
		return nil, nil
	}
	return t.collapseIfNeeded(parent)
}

// collapseIfNeeded implements SplitContainer self-collapse: a
// RoleSplitContainer with <= 1 remaining child is removed from the tree and
// its sole remaining child (if any) is spliced into the collapsed
// container's former position, inheriting its percentage. Collapsing can
// cascade upward (an ancestor split container left with one child after
// this collapse also collapses), matching the teacher's tree rebalancer
// walking upward after a close (workspace_tree_rebalancer.go).
func (t *Tree) collapseIfNeeded(c *Container) (*Container, error) {
	if c.Role != RoleSplitContainer {
		return nil, nil
	}
	if len(c.layoutOrder) > 1 {
		return nil, nil
	}
	grandparent := c.parent
	if grandparent == nil {
		return nil, nil
	}

	var promoted *Container
	if len(c.layoutOrder) == 1 {
		promoted = c.layoutOrder[0]
		pos := indexOf(grandparent.layoutOrder, c)
		percent := c.Percent

		if err := t.Detach(promoted); err != nil {
			return nil, err
		}
		if err := t.Detach(c); err != nil {
			return nil, err
		}
		t.forget(c)

		if err := t.Attach(promoted, grandparent, pos); err != nil {
			return nil, err
		}
		promoted.Percent = percent
		normalizePercentages(grandparent.tilingChildren())
	} else {
		if err := t.Detach(c); err != nil {
			return nil, err
		}
		t.forget(c)
	}

	if next, err := t.collapseIfNeeded(grandparent); err != nil {
		return nil, err
	} else if next != nil {
		promoted = next
	}
	return promoted, nil
}

// CreateFloatingContainer implements the floating half of "floating enable"
// (spec.md §4.3): a new RoleFloatingContainer is attached directly under
// workspace, ready to receive exactly one leaf. Floating containers are
// excluded from percentage packing (tilingChildren), so no rebalance is
// needed on the workspace's tiled siblings.
func (t *Tree) CreateFloatingContainer(workspace *Container) (*Container, error) {
	if workspace == nil || workspace.Role != RoleWorkspace {
		return nil, wmerr.New(wmerr.KindInvariant, "create floating container: not a workspace")
	}
	fc := t.newContainer(RoleFloatingContainer)
	fc.Rect = workspace.Rect
	if err := t.Attach(fc, workspace, -1); err != nil {
		t.forget(fc)
		return nil, err
	}
	return fc, nil
}

// DestroyFloatingIfEmpty implements the reverse of CreateFloatingContainer:
// a floating container left with no child leaf (its leaf returned to
// tiling, or closed) is removed from the tree.
func (t *Tree) DestroyFloatingIfEmpty(fc *Container) error {
	if fc == nil || fc.Role != RoleFloatingContainer {
		return wmerr.New(wmerr.KindInvariant, "destroy floating container: not a floating container")
	}
	if len(fc.layoutOrder) > 0 {
		return nil
	}
	return t.destroySubtree(fc)
}

// WrapInSplit implements the implicit-wrap half of "A SplitContainer is
// created implicitly by a split command or by wrapping the focused leaf"
// (spec.md §3): target is detached from its parent and replaced by a new
// SplitContainer (of the given layout) occupying target's old position and
// percentage, with target re-attached as its sole child.
func (t *Tree) WrapInSplit(target *Container, layout Layout) (*Container, error) {
	parent := target.parent
	if parent == nil {
		return nil, wmerr.New(wmerr.KindInvariant, "wrap in split: target has no parent")
	}
	pos := indexOf(parent.layoutOrder, target)
	percent := target.Percent

	if err := t.Detach(target); err != nil {
		return nil, err
	}

	split := t.newContainer(RoleSplitContainer)
	split.Layout = layout
	split.Percent = percent
	if err := t.Attach(split, parent, pos); err != nil {
		t.forget(split)
		return nil, err
	}
	split.Percent = percent
	normalizePercentages(parent.tilingChildren())

	if err := t.Attach(target, split, -1); err != nil {
		return nil, err
	}
	target.Percent = 1.0
	return split, nil
}
