package command

import (
	"strconv"
	"strings"

	"github.com/bnema/wm/internal/tree"
)

// cmdWorkspace implements `workspace <name|number|next|prev|back_and_forth>`
// (spec.md §4.3). A name starting with "__" is reserved for
// internally-managed workspaces (the scratchpad, teacher-style) and is
// rejected here the same way rename_workspace rejects it.
func (in *Interpreter) cmdWorkspace(c Command) Reply {
	selector := c.str("selector")
	switch selector {
	case "next":
		return in.switchWorkspace(in.tree.NextWorkspace(tree.WorkspaceOf(in.tree.Focused())))
	case "prev":
		return in.switchWorkspace(in.tree.PrevWorkspace(tree.WorkspaceOf(in.tree.Focused())))
	case "back_and_forth":
		if name := in.tree.BackAndForth(); name != "" {
			if ws, ok := in.tree.WorkspaceByName(name); ok {
				return in.switchWorkspace(ws)
			}
		}
		return ok()
	}

	name := c.str("name")
	if name == "" {
		name = selector
	}
	if strings.HasPrefix(name, "__") {
		return parseFail("workspace: names starting with \"__\" are reserved")
	}

	ws, ok2 := in.tree.WorkspaceByName(name)
	if !ok2 {
		out := in.currentOutput()
		if out == nil {
			return fail("workspace: no output available to create workspace " + name)
		}
		num, hasNum := parseWorkspaceNum(name)
		created, err := in.tree.EnsureWorkspace(out, name, num, hasNum)
		if err != nil {
			return reportable(err)
		}
		ws = created
	}
	return in.switchWorkspace(ws)
}

func (in *Interpreter) switchWorkspace(target *tree.Container) Reply {
	if target == nil {
		return ok()
	}
	in.tree.SwitchToWorkspace(target, in.autoBackAndForth)
	in.markRender()
	in.notify("workspace", "focus", target.WorkspaceName)
	return ok()
}

// SetAutoBackAndForth applies the workspace_auto_back_and_forth config
// setting (spec.md §6) to every future `workspace <name>` command.
func (in *Interpreter) SetAutoBackAndForth(enabled bool) { in.autoBackAndForth = enabled }

func (in *Interpreter) currentOutput() *tree.Container {
	if ws := tree.WorkspaceOf(in.tree.Focused()); ws != nil {
		return tree.OutputOf(ws)
	}
	outs := in.tree.Outputs()
	if len(outs) == 0 {
		return nil
	}
	return outs[0]
}

func parseWorkspaceNum(name string) (int, bool) {
	n, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return n, true
}

// cmdRenameWorkspace implements `rename workspace [<old>] to <new>` (spec.md
// §4.3): without <old> the focused workspace is renamed. Rejects a
// destination name that already exists or that is "__"-prefixed.
func (in *Interpreter) cmdRenameWorkspace(c Command) Reply {
	oldName := c.str("old_name")
	newName := c.str("new_name")
	if newName == "" {
		return parseFail("rename_workspace: missing destination name")
	}
	if strings.HasPrefix(newName, "__") {
		return parseFail("rename_workspace: names starting with \"__\" are reserved")
	}
	if _, exists := in.tree.WorkspaceByName(newName); exists {
		return fail("rename_workspace: " + newName + " already exists")
	}
	ws, found := in.tree.WorkspaceByName(oldName)
	if oldName == "" {
		ws = tree.WorkspaceOf(in.tree.Focused())
		found = ws != nil
	}
	if !found {
		return fail("rename_workspace: no workspace named " + oldName)
	}
	ws.WorkspaceName = newName
	in.markRender()
	in.notify("workspace", "rename", newName)
	return ok()
}

// cmdMoveToWorkspace implements `move [container|window] to workspace
// <selector>` (spec.md §4.3).
func (in *Interpreter) cmdMoveToWorkspace(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	name := c.str("workspace")
	if strings.HasPrefix(name, "__") {
		return parseFail("move_to_workspace: names starting with \"__\" are reserved")
	}
	ws, found := in.tree.WorkspaceByName(name)
	if !found {
		out := in.currentOutput()
		if out == nil {
			return fail("move_to_workspace: no output available to create workspace " + name)
		}
		num, hasNum := parseWorkspaceNum(name)
		created, err := in.tree.EnsureWorkspace(out, name, num, hasNum)
		if err != nil {
			return reportable(err)
		}
		ws = created
	}
	for _, m := range matches {
		if err := in.tree.MoveToWorkspace(m, ws); err != nil {
			return reportable(err)
		}
	}
	in.markRender()
	return ok()
}

// cmdMoveWorkspaceToOutput implements `move workspace to output <name>`,
// with the name resolved by the caller into an already-located target
// output container passed via Args["output"]. Only output names are
// resolved; direction words (left/right/up/down) find no output.
func (in *Interpreter) cmdMoveWorkspaceToOutput(c Command) Reply {
	target, _ := c.Args["output"].(*tree.Container)
	if target == nil {
		return parseFail("move_workspace_to_output: unresolved target output")
	}
	visible, _ := c.Args["visible_workspace"].(*tree.Container)
	if visible == nil {
		wss := outputWorkspaces(target)
		if len(wss) == 0 {
			return fail("move_workspace_to_output: target output has no workspace to receive it")
		}
		visible = wss[0]
	}

	ws := tree.WorkspaceOf(in.tree.Focused())
	if ws == nil {
		return fail("move_workspace_to_output: no focused workspace")
	}
	// visible sits under the target output's content node, which is where
	// the workspace is reparented.
	content := visible.Parent()
	wasFocused := in.tree.Focused() == ws
	if err := in.tree.Detach(ws); err != nil {
		return reportable(err)
	}
	if err := in.tree.Attach(ws, content, -1); err != nil {
		return reportable(err)
	}
	if wasFocused {
		in.tree.Focus(ws)
	}
	in.markRender()
	return ok()
}

func outputWorkspaces(out *tree.Container) []*tree.Container {
	var result []*tree.Container
	tree.Walk(out, func(c *tree.Container) bool {
		if c.Role == tree.RoleWorkspace {
			result = append(result, c)
		}
		return true
	})
	return result
}
