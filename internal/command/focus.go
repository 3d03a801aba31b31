package command

import "github.com/bnema/wm/internal/tree"

// cmdFocus implements the `focus [dir]` / `focus parent|child|mode_toggle`
// row (spec.md §4.3). Every match is focused in turn; a refusal (fullscreen
// boundary) is reported as success:true with no mutation, matching scenario
// 5 (spec.md §8) — the interpreter does not surface the refusal as an
// error, since the tree layer itself treats it as a silent no-op.
func (in *Interpreter) cmdFocus(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}

	target := c.str("target") // "parent", "child", "mode_toggle", or "" for directional/default
	dirVal, hasDir := c.Args["direction"]

	for _, m := range matches {
		switch {
		case target == "parent":
			if p := m.Parent(); p != nil {
				in.focusAndRender(p)
			}
		case target == "child":
			if heads := m.FocusOrder(); len(heads) > 0 {
				in.focusAndRender(heads[0])
			}
		case target == "mode_toggle":
			in.toggleMode()
		case hasDir:
			dir, _ := dirVal.(tree.Direction)
			if next := tree.FocusDirection(in.tree.Root(), m, dir); next != nil {
				in.focusAndRender(next)
			}
		default:
			in.focusAndRender(m)
		}
	}
	return ok()
}

func (in *Interpreter) focusAndRender(node *tree.Container) {
	if in.tree.Focus(node) {
		in.markRender()
	}
}
