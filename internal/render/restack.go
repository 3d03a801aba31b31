package render

import (
	"context"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/tree"
)

// visibleLeaf pairs a window-carrying leaf with whether it should be
// mapped, in deterministic tree-walk order.
type visibleLeaf struct {
	leaf    *tree.Container
	visible bool
}

// apply configures every mapped leaf under root with its assigned
// geometry and maps or unmaps it depending on whether it is the active
// child of an enclosing stacked/tabbed container (spec.md §4.4: "After
// geometry assignment, the renderer asks the backend to configure each
// window and restack").
func (r *Renderer) apply(ctx context.Context, root *tree.Container) error {
	if r.backend == nil {
		return nil
	}
	var leaves []visibleLeaf
	collectLeaves(root, true, &leaves)

	for _, vl := range leaves {
		leaf := vl.leaf
		if !leaf.HasWindow {
			continue
		}
		if !vl.visible {
			if err := r.backend.Unmap(ctx, leaf.Window); err != nil {
				return err
			}
			continue
		}
		geom := backend.WindowGeometry{Rect: leaf.Rect, BorderWidth: leaf.BorderWidth}
		if err := r.backend.Configure(ctx, leaf.Window, geom); err != nil {
			return err
		}
		if err := r.backend.Map(ctx, leaf.Window); err != nil {
			return err
		}
	}
	return nil
}

// collectLeaves walks c's subtree in layout order, appending every leaf
// window with the visibility it should have: false for every sibling of
// the active child under a stacked/tabbed container (they keep only their
// header strip, per assignStacked/assignTabbed), true everywhere else —
// floating containers are always visible on their workspace, matching
// invariant-free explicit-geometry semantics.
func collectLeaves(c *tree.Container, visible bool, out *[]visibleLeaf) {
	switch c.Role {
	case tree.RoleLeafWindow:
		*out = append(*out, visibleLeaf{leaf: c, visible: visible})
		return
	case tree.RoleFloatingContainer:
		for _, child := range c.Children() {
			collectLeaves(child, visible, out)
		}
		return
	}

	switch c.Layout {
	case tree.LayoutStacked, tree.LayoutTabbed:
		tiling := c.TilingChildren()
		active := focusHeadAmong(tiling)
		for _, child := range tiling {
			collectLeaves(child, visible && child == active, out)
		}
	default:
		for _, child := range c.Children() {
			collectLeaves(child, visible, out)
		}
	}
}
