package command

import (
	"github.com/bnema/wm/internal/tree"
)

// cmdMove implements `move <dir> [px]` (spec.md §4.3): floating containers
// translate their rect by px; tiling containers delegate to the tree's
// resize-participant swap — moving a tiling container in a direction swaps
// its layout-order position with the adjacent sibling along that axis,
// matching scenario 2 (spec.md §8: "three leaves A B C in SplitH, A
// focused; move right ⇒ order becomes B A C; focus unchanged on A").
func (in *Interpreter) cmdMove(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	dir, hasDir := c.Args["direction"].(tree.Direction)
	if !hasDir {
		return parseFail("move: missing direction")
	}
	px := c.intArg("px")

	for _, m := range matches {
		if m.Role == tree.RoleFloatingContainer {
			translateFloating(m, dir, px)
			in.markRender()
			continue
		}
		if swapped := swapTilingSibling(m, dir); swapped {
			in.markRender()
		}
	}
	return ok()
}

func translateFloating(m *tree.Container, dir tree.Direction, px int) {
	switch dir {
	case tree.DirLeft:
		m.Rect.X -= px
	case tree.DirRight:
		m.Rect.X += px
	case tree.DirUp:
		m.Rect.Y -= px
	case tree.DirDown:
		m.Rect.Y += px
	}
}

// swapTilingSibling exchanges node's position in its parent's layout order
// with the adjacent sibling in the requested direction, leaving percentages
// and focus untouched.
func swapTilingSibling(node *tree.Container, dir tree.Direction) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	siblings := parent.Children()
	idx := -1
	for i, s := range siblings {
		if s == node {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	var swapWith int
	switch dir {
	case tree.DirRight, tree.DirDown:
		swapWith = idx + 1
	case tree.DirLeft, tree.DirUp:
		swapWith = idx - 1
	}
	if swapWith < 0 || swapWith >= len(siblings) {
		return false
	}
	tree.SwapChildren(parent, idx, swapWith)
	return true
}

// cmdResize implements `resize grow|shrink <dir|width|height> <px> [or
// <ppt>]` (spec.md §4.3). Floating containers apply px directly (clamped to
// a minimum size); tiling containers delegate to Tree.Resize with the ppt
// argument converted to a percentage delta. Aborts remaining matches on the
// first failure, per the command table's "Additional rules" column.
func (in *Interpreter) cmdResize(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	grow := c.str("mode") != "shrink"
	dir, hasDir := c.Args["direction"].(tree.Direction)
	ppt := float64(c.intArg("ppt")) / 100.0
	px := c.intArg("px")

	for _, m := range matches {
		if m.Role == tree.RoleFloatingContainer {
			resizeFloating(m, dir, px, grow)
			in.markRender()
			continue
		}
		if !hasDir {
			return fail("resize: missing direction")
		}
		first, second, found := tree.FindResizeParticipants(m, dir)
		if !found {
			return fail("resize: no adjacent sibling to resize against")
		}
		// Resize(first, second, delta) grows first and shrinks second when
		// delta is positive; m may land on either side depending on dir and
		// its position among siblings, so flip the sign to keep "grow"
		// always growing m regardless of which participant it is.
		delta := ppt
		if second == m {
			delta = -delta
		}
		if !grow {
			delta = -delta
		}
		if !in.tree.Resize(first, second, delta) {
			return fail("resize: minimum size reached")
		}
		in.markRender()
	}
	return ok()
}

const floatingMinSizePx = 40

func resizeFloating(m *tree.Container, dir tree.Direction, px int, grow bool) {
	delta := px
	if !grow {
		delta = -px
	}
	switch dir {
	case tree.DirLeft, tree.DirRight:
		m.Rect.W += delta
		if m.Rect.W < floatingMinSizePx {
			m.Rect.W = floatingMinSizePx
		}
	case tree.DirUp, tree.DirDown:
		m.Rect.H += delta
		if m.Rect.H < floatingMinSizePx {
			m.Rect.H = floatingMinSizePx
		}
	}
}

// cmdSplit implements `split v|h` (spec.md §4.3): wraps each matched
// container in a new split container of the given orientation, preserving
// focus.
func (in *Interpreter) cmdSplit(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	orientation := c.str("orientation")
	layout := tree.LayoutSplitH
	if orientation == "v" {
		layout = tree.LayoutSplitV
	}
	focused := in.tree.Focused()
	for _, m := range matches {
		if _, err := in.tree.WrapInSplit(m, layout); err != nil {
			return reportable(err)
		}
	}
	if focused != nil {
		in.tree.Focus(focused)
	}
	in.markRender()
	return ok()
}
