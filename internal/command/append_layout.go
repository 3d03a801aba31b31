package command

import "github.com/bnema/wm/internal/tree"

// cmdAppendLayout implements `append_layout <json>` (spec.md §4.3): grafts
// a placeholder subtree under the focused split container, else under the
// focused container's parent split, else under its workspace. It fails
// when nothing is focused.
func (in *Interpreter) cmdAppendLayout(c Command) Reply {
	raw := c.str("json")
	if raw == "" {
		return parseFail("append_layout: missing layout document")
	}
	parent := in.appendLayoutTarget()
	if parent == nil {
		return fail("append_layout: no workspace available to graft into")
	}
	grafted, err := in.tree.AppendLayout(parent, []byte(raw))
	if err != nil {
		return reportable(err)
	}
	if grafted == 0 {
		return fail("append_layout: no valid nodes in layout document")
	}
	in.markRender()
	return ok()
}

func (in *Interpreter) appendLayoutTarget() *tree.Container {
	focused := in.tree.Focused()
	if focused == nil {
		return nil
	}
	if focused.Role == tree.RoleSplitContainer {
		return focused
	}
	if p := focused.Parent(); p != nil && p.Role == tree.RoleSplitContainer {
		return p
	}
	return tree.WorkspaceOf(focused)
}
