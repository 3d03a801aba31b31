package tree

import "github.com/bnema/wm/internal/wmerr"

// SetLayout implements ContainerTree.set_layout (spec.md §4.1): changes the
// packing layout of a SplitContainer or Workspace in place. Children and
// their percentages are untouched; only the axis/stacking mode changes.
func (t *Tree) SetLayout(node *Container, layout Layout) error {
	if node == nil {
		return wmerr.New(wmerr.KindInvariant, "set layout: nil node")
	}
	if node.Role != RoleSplitContainer && node.Role != RoleWorkspace {
		return wmerr.New(wmerr.KindInvariant, "set layout: %s cannot hold a layout", node.Role)
	}
	node.Layout = layout
	return nil
}

// MoveToWorkspace implements ContainerTree.move_to_workspace (spec.md
// §4.1): detaches node from its current parent and attaches it under the
// target workspace, rebalancing percentages on both sides. Floating
// containers move without rebalancing their siblings' shares beyond the
// detach/attach default (they don't participate in tiling percentages).
func (t *Tree) MoveToWorkspace(node, targetWorkspace *Container) error {
	if node == nil || targetWorkspace == nil {
		return wmerr.New(wmerr.KindInvariant, "move to workspace: nil argument")
	}
	if targetWorkspace.Role != RoleWorkspace {
		return wmerr.New(wmerr.KindInvariant, "move to workspace: target is not a workspace")
	}
	if isDescendantOrSelf(node, targetWorkspace) {
		return wmerr.New(wmerr.KindInvariant, "move to workspace: target is inside the node being moved")
	}
	wasFocused := t.focused == node

	origParent := node.parent
	if err := t.Detach(node); err != nil {
		return err
	}
	if origParent != nil && origParent.Role == RoleSplitContainer {
		if _, err := t.collapseIfNeeded(origParent); err != nil {
			return err
		}
	}

	if err := t.Attach(node, targetWorkspace, -1); err != nil {
		return err
	}
	if wasFocused {
		t.focused = node
	}
	return nil
}

// MoveToOutput implements the supplemented "move container to output"
// shorthand (move_to_output left/right/up/down/<name>): resolves to the
// currently visible workspace on the target output and delegates to
// MoveToWorkspace. visibleWorkspace is supplied by the caller (the renderer
// tracks which workspace is current per output); the tree itself has no
// notion of "currently displayed".
func (t *Tree) MoveToOutput(node *Container, targetOutput *Container, visibleWorkspace *Container) error {
	if targetOutput == nil || targetOutput.Role != RoleOutput {
		return wmerr.New(wmerr.KindInvariant, "move to output: not an output")
	}
	if visibleWorkspace == nil {
		return wmerr.New(wmerr.KindInvariant, "move to output: no visible workspace on target output")
	}
	return t.MoveToWorkspace(node, visibleWorkspace)
}

// SwapChildren exchanges the layout-order positions of parent's children at
// indices i and j, leaving percentages, focus order, and parent pointers
// untouched. Used by the `move <dir>` command (spec.md §4.3 scenario 2) to
// reorder siblings without re-rebalancing the split.
func SwapChildren(parent *Container, i, j int) {
	if i < 0 || j < 0 || i >= len(parent.layoutOrder) || j >= len(parent.layoutOrder) || i == j {
		return
	}
	parent.layoutOrder[i], parent.layoutOrder[j] = parent.layoutOrder[j], parent.layoutOrder[i]
}
