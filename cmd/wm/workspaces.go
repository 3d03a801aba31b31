package main

import (
	"encoding/json"

	"github.com/bnema/wm/internal/tree"
)

// workspaceSummary is one RequestGetWorkspaces entry, the same shape
// i3/sway's own `get_workspaces` reply uses: enough for a status bar or
// inspector to render a workspace list without walking the full tree.
type workspaceSummary struct {
	Num     int    `json:"num"`
	Name    string `json:"name"`
	Output  string `json:"output"`
	Visible bool   `json:"visible"`
	Focused bool   `json:"focused"`
	Rect    tree.Rect `json:"rect"`
}

// workspacesSnapshot builds the RequestGetWorkspaces payload: one entry
// per workspace on every output, in output-then-creation order.
func workspacesSnapshot(tr *tree.Tree) func() ([]byte, error) {
	return func() ([]byte, error) {
		focusedWS := tree.WorkspaceOf(tr.Focused())
		var out []workspaceSummary
		for _, output := range tr.Outputs() {
			content := firstChildOfRole(output, tree.RoleContent)
			if content == nil {
				continue
			}
			order := content.FocusOrder()
			var visible *tree.Container
			if len(order) > 0 {
				visible = order[0]
			}
			for _, ws := range content.Children() {
				out = append(out, workspaceSummary{
					Num:     ws.WorkspaceNum,
					Name:    ws.WorkspaceName,
					Output:  output.OutputName,
					Visible: ws == visible,
					Focused: ws == focusedWS,
					Rect:    ws.Rect,
				})
			}
		}
		return json.Marshal(out)
	}
}

func firstChildOfRole(c *tree.Container, role tree.Role) *tree.Container {
	for _, child := range c.Children() {
		if child.Role == role {
			return child
		}
	}
	return nil
}
