package tree

// Axis is the packing axis a resize or focus-direction operates on.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// Direction is a geometric resize/move/focus direction.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

// AxisOf returns the packing axis a direction moves along.
func AxisOf(d Direction) Axis {
	if d == DirLeft || d == DirRight {
		return AxisHorizontal
	}
	return AxisVertical
}

// layoutForAxis returns the split Layout that packs children along axis.
func layoutForAxis(axis Axis) Layout {
	if axis == AxisHorizontal {
		return LayoutSplitH
	}
	return LayoutSplitV
}

const minResizePercent = 0.05

// Resize implements ContainerTree.resize (spec.md §4.1): first and second
// must be adjacent siblings along the relevant axis. Ensures both
// resulting percentages remain >= 0.05; returns false without mutation
// otherwise.
func (t *Tree) Resize(first, second *Container, deltaPercent float64) bool {
	if first == nil || second == nil || first.parent == nil || first.parent != second.parent {
		return false
	}
	newFirst := first.Percent + deltaPercent
	newSecond := second.Percent - deltaPercent
	if newFirst < minResizePercent || newSecond < minResizePercent {
		return false
	}
	first.Percent = newFirst
	second.Percent = newSecond
	return true
}

// FindResizeParticipants implements ContainerTree.find_resize_participants
// (spec.md §4.1): ascends from node until it finds a parent packing along
// the requested axis with >=2 tiling children, skipping Stacked/Tabbed
// ancestors (which don't have spatial siblings along any axis). Returns the
// two siblings straddling node, in layout order (first immediately precedes
// second). node itself is whichever of the two its position puts it at —
// callers that want to grow/shrink node specifically must check which one
// it is and sign deltaPercent accordingly before calling Resize.
func FindResizeParticipants(node *Container, direction Direction) (first, second *Container, ok bool) {
	axis := AxisOf(direction)
	wantLayout := layoutForAxis(axis)

	cur := node
	for cur != nil && cur.parent != nil {
		parent := cur.parent
		if parent.Layout == LayoutStacked || parent.Layout == LayoutTabbed {
			cur = parent
			continue
		}
		if parent.Layout != wantLayout {
			cur = parent
			continue
		}
		siblings := parent.tilingChildren()
		if len(siblings) < 2 {
			cur = parent
			continue
		}
		idx := indexOf(siblings, cur)
		if idx < 0 {
			cur = parent
			continue
		}

		switch direction {
		case DirRight, DirDown:
			if idx+1 < len(siblings) {
				return cur, siblings[idx+1], true
			}
			if idx-1 >= 0 {
				return siblings[idx-1], cur, true
			}
		case DirLeft, DirUp:
			if idx-1 >= 0 {
				return siblings[idx-1], cur, true
			}
			if idx+1 < len(siblings) {
				return cur, siblings[idx+1], true
			}
		}
		cur = parent
	}
	return nil, nil, false
}
