package render

import "github.com/bnema/wm/internal/tree"

// assignGeometry recursively assigns rect to c and distributes it among
// c's tiling children per c.Layout (spec.md §4.4). inner is the gap
// inserted between sibling tiling children; headerHeight is the
// stacked/tabbed title-strip height computed from the bar's font metrics,
// threaded down unchanged so a stacked/tabbed container nested arbitrarily
// deep still reserves the same strip height.
func assignGeometry(c *tree.Container, rect tree.Rect, inner, headerHeight int) {
	c.Rect = rect
	if c.Role == tree.RoleLeafWindow {
		return
	}

	children := c.TilingChildren()
	if len(children) == 0 {
		return
	}

	switch c.Layout {
	case tree.LayoutStacked:
		assignStacked(children, rect, inner, headerHeight)
	case tree.LayoutTabbed:
		assignTabbed(children, rect, inner, headerHeight)
	case tree.LayoutSplitV:
		assignAxis(children, rect, inner, headerHeight, false)
	default: // LayoutSplitH, LayoutDefault
		assignAxis(children, rect, inner, headerHeight, true)
	}
}

// assignAxis distributes rect among children along one axis in proportion
// to each child's Percent (invariant 3 guarantees they sum to ~1.0),
// inserting innerGap px of gap between consecutive children. horizontal
// selects the x axis (SplitH); otherwise the y axis (SplitV).
func assignAxis(children []*tree.Container, rect tree.Rect, innerGap, headerHeight int, horizontal bool) {
	n := len(children)
	total := rect.W
	if !horizontal {
		total = rect.H
	}
	gapTotal := innerGap * (n - 1)
	usable := total - gapTotal
	if usable < 0 {
		usable = 0
	}

	offset := 0
	assigned := 0
	for i, child := range children {
		var span int
		if i == n-1 {
			span = usable - assigned // remainder to the last child, absorbing rounding
		} else {
			span = int(float64(usable) * child.Percent)
			assigned += span
		}
		if span < 0 {
			span = 0
		}

		var childRect tree.Rect
		if horizontal {
			childRect = tree.Rect{X: rect.X + offset, Y: rect.Y, W: span, H: rect.H}
		} else {
			childRect = tree.Rect{X: rect.X, Y: rect.Y + offset, W: rect.W, H: span}
		}
		assignGeometry(child, childRect, innerGap, headerHeight)
		offset += span + innerGap
	}
}

// assignStacked reserves a full-width header strip per child, stacked
// vertically, with the active child's (focus-order head's) subtree
// overlaid on the remaining rect below every header (spec.md §4.4:
// "Stacked... reserve a header strip per child and overlay them on the
// remainder"). Inactive children keep only their header rect — they have
// no visible content area.
func assignStacked(children []*tree.Container, rect tree.Rect, innerGap, headerHeight int) {
	active := focusHeadAmong(children)

	total := headerHeight * len(children)
	remainder := tree.Rect{X: rect.X, Y: rect.Y + total, W: rect.W, H: rect.H - total}
	if remainder.H < 0 {
		remainder.H = 0
	}

	for i, child := range children {
		header := tree.Rect{X: rect.X, Y: rect.Y + i*headerHeight, W: rect.W, H: headerHeight}
		if child == active {
			assignGeometry(child, remainder, innerGap, headerHeight)
		} else {
			child.Rect = header
		}
	}
}

// assignTabbed reserves one shared header row, split evenly among
// children as tab labels, with the active child's subtree overlaid on the
// remainder below it (spec.md §4.4's tabbed variant of the same rule).
func assignTabbed(children []*tree.Container, rect tree.Rect, innerGap, headerHeight int) {
	active := focusHeadAmong(children)

	remainder := tree.Rect{X: rect.X, Y: rect.Y + headerHeight, W: rect.W, H: rect.H - headerHeight}
	if remainder.H < 0 {
		remainder.H = 0
	}

	n := len(children)
	tabWidth := rect.W / n
	for i, child := range children {
		header := tree.Rect{X: rect.X + i*tabWidth, Y: rect.Y, W: tabWidth, H: headerHeight}
		if child == active {
			assignGeometry(child, remainder, innerGap, headerHeight)
		} else {
			child.Rect = header
		}
	}
}

// focusHeadAmong returns whichever of children is the focus-order head of
// their shared parent, falling back to the first child if none of them
// match (e.g. a brand-new container whose focus order hasn't been
// populated yet).
func focusHeadAmong(children []*tree.Container) *tree.Container {
	if len(children) == 0 {
		return nil
	}
	parent := children[0].Parent()
	if parent == nil {
		return children[0]
	}
	for _, head := range parent.FocusOrder() {
		for _, c := range children {
			if c == head {
				return c
			}
		}
	}
	return children[0]
}

// assignFloating mirrors a floating container's rect onto its single leaf
// child: floating geometry is explicit and set directly by move/resize
// commands, never computed by packing (spec.md §4.4: "Floating containers
// ... keep their explicit rects").
func assignFloating(fc *tree.Container) {
	for _, child := range fc.Children() {
		child.Rect = fc.Rect
	}
}
