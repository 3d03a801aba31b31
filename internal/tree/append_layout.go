package tree

import (
	"encoding/json"

	"github.com/bnema/wm/internal/wmerr"
)

// appendNode is the parsed shape of one append_layout JSON node (spec.md
// §4.3's `append_layout <path>`): a placeholder container with no window
// attached yet, ready to receive a future mapped window once
// swallow-criteria resolution (out of scope here) matches it.
type appendNode struct {
	Type     string            `json:"type"`
	Layout   string            `json:"layout"`
	Percent  float64           `json:"percent"`
	Border   string            `json:"border"`
	Children []json.RawMessage `json:"nodes"`
}

// AppendLayout implements the graft half of `append_layout` (spec.md
// §4.3): parses a JSON subtree and attaches it under parent (a
// SplitContainer or Workspace). A sibling node whose JSON fails to decode
// is skipped rather than aborting the whole graft, so the rest of the
// subtree is still attached — the command's "partial graft on malformed
// input" allowance. Returns the number of top-level nodes grafted.
//
// Grafted leaves carry no window yet (swallow-criteria resolution happens
// later, on map-notify), so they transiently violate invariant 7 until a
// real window maps into them; Validate() is not expected to pass on a tree
// with unswallowed placeholders.
func (t *Tree) AppendLayout(parent *Container, data []byte) (int, error) {
	if parent == nil || (parent.Role != RoleSplitContainer && parent.Role != RoleWorkspace) {
		return 0, wmerr.New(wmerr.KindInvariant, "append layout: parent must be a split container or workspace")
	}
	var top appendNode
	if err := json.Unmarshal(data, &top); err != nil {
		return 0, wmerr.Wrap(wmerr.KindParse, err, "append layout: malformed top-level node")
	}
	return t.graftChildren(parent, top.Children), nil
}

func (t *Tree) graftChildren(parent *Container, raw []json.RawMessage) int {
	count := 0
	for _, r := range raw {
		var n appendNode
		if err := json.Unmarshal(r, &n); err != nil {
			continue
		}
		role := RoleSplitContainer
		if n.Type == "leaf" {
			role = RoleLeafWindow
		}
		c := t.newContainer(role)
		if layout, ok := namesToLayout[n.Layout]; ok {
			c.Layout = layout
		} else {
			c.Layout = LayoutSplitH
		}
		if border, ok := namesToBorder[n.Border]; ok {
			c.Border = border
		}
		c.Percent = n.Percent
		if err := t.Attach(c, parent, -1); err != nil {
			t.forget(c)
			continue
		}
		if role == RoleSplitContainer {
			t.graftChildren(c, n.Children)
		}
		count++
	}
	normalizePercentages(parent.tilingChildren())
	return count
}
