package tree

import "github.com/bnema/wm/internal/wmerr"

// Attach implements ContainerTree.attach (spec.md §4.1): node must have no
// parent, and parent must accept children of node's role. position is the
// index in layout order to insert at; pass -1 (or >= len) to append.
//
// On success, node is appended to the end of parent's focus order (it does
// not become focused merely by being attached — callers that want the new
// node focused call Focus explicitly, matching the teacher's pattern of a
// separate SetActivePane call after SplitPane/map-notify).
func (t *Tree) Attach(node, parent *Container, position int) error {
	if node == nil || parent == nil {
		return wmerr.New(wmerr.KindInvariant, "attach: nil node or parent")
	}
	if node.parent != nil {
		return wmerr.New(wmerr.KindInvariant, "attach: node %d already has a parent", node.ID)
	}
	if !acceptsChild(parent.Role, node.Role) {
		return wmerr.New(wmerr.KindInvariant, "attach: %s cannot parent %s", parent.Role, node.Role)
	}

	node.parent = parent
	if position < 0 || position >= len(parent.layoutOrder) {
		parent.layoutOrder = append(parent.layoutOrder, node)
	} else {
		parent.layoutOrder = append(parent.layoutOrder[:position:position],
			append([]*Container{node}, parent.layoutOrder[position:]...)...)
	}
	parent.focusOrder = append(parent.focusOrder, node)

	t.rebalanceAfterAttach(parent, node)
	return nil
}

// rebalanceAfterAttach gives the newly attached child its share of the
// packing axis (1/n of the total) and proportionally shrinks its tiling
// siblings, per spec.md §4.1's attach contract.
func (t *Tree) rebalanceAfterAttach(parent, added *Container) {
	if added.Role == RoleFloatingContainer {
		added.Percent = 1.0 // meaningless for floating geometry, kept sane
		return
	}
	siblings := parent.tilingChildren()
	n := len(siblings)
	if n == 0 {
		return
	}
	if n == 1 {
		added.Percent = 1.0
		return
	}
	newShare := 1.0 / float64(n)
	remaining := 1.0 - newShare
	// Previous total among the OTHER n-1 siblings was 1.0; scale each by
	// remaining/1.0 so the new total (including the new child) is 1.0.
	for _, s := range siblings {
		if s == added {
			continue
		}
		s.Percent *= remaining
	}
	added.Percent = newShare
	normalizePercentages(siblings)
}

// Detach implements ContainerTree.detach (spec.md §4.1): node must not be
// root. Removes node from its parent's orderings and redistributes its
// percentage proportionally among the remaining siblings. Detach only ever
// removes that one node: a parent left empty or with one child stays in
// place, and collapsing it (the SplitContainer self-collapse rule of
// spec.md §3) is left to the caller, e.g. via collapseIfNeeded.
func (t *Tree) Detach(node *Container) error {
	if node == nil || node.parent == nil {
		return wmerr.New(wmerr.KindInvariant, "detach: node has no parent (is root?)")
	}
	parent := node.parent
	idx := indexOf(parent.layoutOrder, node)
	if idx < 0 {
		return wmerr.New(wmerr.KindInvariant, "detach: node %d not found in parent %d's children", node.ID, parent.ID)
	}

	parent.layoutOrder = append(parent.layoutOrder[:idx], parent.layoutOrder[idx+1:]...)
	parent.focusOrder = removeFromSlice(parent.focusOrder, node)
	node.parent = nil

	if node.Role != RoleFloatingContainer {
		redistribute(parent.tilingChildren(), node.Percent)
	}

	if t.focused == node {
		t.focused = nil
	}

	return nil
}

// redistribute spreads freedPercent proportionally across remaining, so
// their total returns to 1.0 (invariant 3). If remaining is empty there is
// nothing to redistribute onto; the caller (SplitContainer/Workspace
// lifecycle) is responsible for collapsing/destroying the now-empty parent.
func redistribute(remaining []*Container, freedPercent float64) {
	if len(remaining) == 0 || freedPercent <= 0 {
		return
	}
	total := 0.0
	for _, c := range remaining {
		total += c.Percent
	}
	if total <= 0 {
		even := 1.0 / float64(len(remaining))
		for _, c := range remaining {
			c.Percent = even
		}
		return
	}
	for _, c := range remaining {
		c.Percent += freedPercent * (c.Percent / total)
	}
	normalizePercentages(remaining)
}

// normalizePercentages corrects floating-point drift so the children sum to
// exactly 1.0, preserving their relative proportions.
func normalizePercentages(children []*Container) {
	if len(children) == 0 {
		return
	}
	total := 0.0
	for _, c := range children {
		total += c.Percent
	}
	if total <= 0 {
		return
	}
	scale := 1.0 / total
	for _, c := range children {
		c.Percent *= scale
	}
}

func indexOf(list []*Container, target *Container) int {
	for i, c := range list {
		if c == target {
			return i
		}
	}
	return -1
}

func removeFromSlice(list []*Container, target *Container) []*Container {
	idx := indexOf(list, target)
	if idx < 0 {
		return list
	}
	return append(list[:idx], list[idx+1:]...)
}

// PromoteFocus moves node to the front of its parent's focus order, without
// touching layout order or ancestors above parent. Used internally by
// Focus (which walks the whole ancestor chain) and by tests.
func promoteFocus(parent, node *Container) {
	parent.focusOrder = removeFromSlice(parent.focusOrder, node)
	parent.focusOrder = append([]*Container{node}, parent.focusOrder...)
}
