package command

import "github.com/bnema/wm/internal/tree"

// cmdLayout implements `layout <layout>` / `layout toggle [all|split]`
// (spec.md §4.3).
func (in *Interpreter) cmdLayout(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	if c.boolArg("toggle") {
		scope := c.str("toggle_scope") // "all" or "split" (default: split cycle)
		for _, m := range matches {
			next := toggleLayout(m.Layout, scope)
			if err := in.tree.SetLayout(m, next); err != nil {
				return reportable(err)
			}
		}
		in.markRender()
		return ok()
	}

	layout, ok2 := parseLayout(c.str("layout"))
	if !ok2 {
		return parseFail("layout: unrecognized layout " + c.str("layout"))
	}
	for _, m := range matches {
		if err := in.tree.SetLayout(m, layout); err != nil {
			return reportable(err)
		}
	}
	in.markRender()
	return ok()
}

func parseLayout(s string) (tree.Layout, bool) {
	switch s {
	case "splith":
		return tree.LayoutSplitH, true
	case "splitv":
		return tree.LayoutSplitV, true
	case "stacking", "stacked":
		return tree.LayoutStacked, true
	case "tabbed":
		return tree.LayoutTabbed, true
	default:
		return tree.LayoutDefault, false
	}
}

// toggleLayout cycles through splith/splitv (scope "split", the default)
// or splith/splitv/stacked/tabbed (scope "all").
func toggleLayout(current tree.Layout, scope string) tree.Layout {
	if scope == "all" {
		order := []tree.Layout{tree.LayoutSplitH, tree.LayoutSplitV, tree.LayoutStacked, tree.LayoutTabbed}
		return nextInCycle(order, current)
	}
	order := []tree.Layout{tree.LayoutSplitH, tree.LayoutSplitV}
	return nextInCycle(order, current)
}

func nextInCycle(order []tree.Layout, current tree.Layout) tree.Layout {
	for i, l := range order {
		if l == current {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// cmdFloating implements `floating enable|disable|toggle` (spec.md §4.3):
// moves a node between tiled placement and a floating container child of
// the workspace.
func (in *Interpreter) cmdFloating(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	mode := c.str("mode") // "enable", "disable", "toggle"
	for _, m := range matches {
		isFloating := m.Parent() != nil && m.Parent().Role == tree.RoleFloatingContainer
		want := mode == "enable" || (mode == "toggle" && !isFloating)
		if mode == "disable" {
			want = false
		}
		if want == isFloating {
			continue
		}
		wasFocused := in.tree.Focused() == m
		if err := in.setFloating(m, want); err != nil {
			return reportable(err)
		}
		if wasFocused {
			in.tree.Focus(m)
		}
	}
	in.markRender()
	return ok()
}

func (in *Interpreter) setFloating(leaf *tree.Container, floating bool) error {
	ws := tree.WorkspaceOf(leaf)
	if ws == nil {
		return nil
	}
	oldParent := leaf.Parent()
	if err := in.tree.Detach(leaf); err != nil {
		return err
	}

	if floating {
		floatContainer, err := in.tree.CreateFloatingContainer(ws)
		if err != nil {
			return err
		}
		return in.tree.Attach(leaf, floatContainer, -1)
	}

	if err := in.tree.Attach(leaf, ws, -1); err != nil {
		return err
	}
	if oldParent != nil && oldParent.Role == tree.RoleFloatingContainer {
		return in.tree.DestroyFloatingIfEmpty(oldParent)
	}
	return nil
}

// cmdBorder implements `border normal|pixel|none|toggle [n]` (spec.md
// §4.3): `toggle` cycles Normal→Pixel→None.
func (in *Interpreter) cmdBorder(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	width := c.intArg("width")
	mode := c.str("mode")

	for _, m := range matches {
		switch mode {
		case "normal":
			m.Border = tree.BorderNormal
		case "pixel":
			m.Border = tree.BorderPixel
		case "none":
			m.Border = tree.BorderNone
		case "toggle":
			m.Border = cycleBorder(m.Border)
		default:
			return parseFail("border: unrecognized mode " + mode)
		}
		if width > 0 {
			m.BorderWidth = width
		}
	}
	in.markRender()
	return ok()
}

func cycleBorder(b tree.BorderStyle) tree.BorderStyle {
	switch b {
	case tree.BorderNormal:
		return tree.BorderPixel
	case tree.BorderPixel:
		return tree.BorderNone
	default:
		return tree.BorderNormal
	}
}
