package tree

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/wm/internal/wmerr"
)

// snapshotNode is the on-disk shape of a single Container, matching the
// teacher's append_layout JSON tree format: an envelope of shared fields
// plus nested children in layout order. focusOrder is persisted separately
// as a list of child IDs (most-recently-focused first) since it is a
// permutation of the same children, not a separate set of nodes.
type snapshotNode struct {
	ID              uint64         `json:"id"`
	Role            string         `json:"role"`
	Layout          string         `json:"layout,omitempty"`
	Rect            Rect           `json:"rect"`
	Percent         float64        `json:"percent"`
	Border          string         `json:"border,omitempty"`
	BorderWidth     int            `json:"border_width,omitempty"`
	Fullscreen      int            `json:"fullscreen,omitempty"`
	Mark            string         `json:"mark,omitempty"`
	TitleFormat     string         `json:"title_format,omitempty"`
	Window          uint64         `json:"window,omitempty"`
	HasWindow       bool           `json:"has_window,omitempty"`
	WindowType      int            `json:"window_type,omitempty"`
	Class           string         `json:"class,omitempty"`
	Instance        string         `json:"instance,omitempty"`
	WindowRole      string         `json:"window_role,omitempty"`
	Title           string         `json:"title,omitempty"`
	Urgent          bool           `json:"urgent,omitempty"`
	WorkspaceName   string         `json:"workspace_name,omitempty"`
	WorkspaceNum    int            `json:"workspace_num,omitempty"`
	WorkspaceHasNum bool           `json:"workspace_has_num,omitempty"`
	OutputName      string         `json:"output_name,omitempty"`
	FocusOrder      []uint64       `json:"focus_order,omitempty"`
	Children        []snapshotNode `json:"children,omitempty"`
}

// snapshot is the top-level persisted document: the root node plus the
// back-and-forth workspace name and the ID of the currently focused
// container, so a restore doesn't have to re-derive focus from scratch
// (though FocusHead remains available as a fallback if the focused ID is
// stale). Marks are stored on their nodes; Deserialize rebuilds the mark
// index from them.
type snapshot struct {
	NextID   uint64   `json:"next_id"`
	FocusID  uint64   `json:"focus_id"`
	BackAndForth string `json:"back_and_forth,omitempty"`
	Root     snapshotNode `json:"root"`
}

var roleNames = map[Role]string{
	RoleRoot: "root", RoleOutput: "output", RoleContent: "content",
	RoleWorkspace: "workspace", RoleSplitContainer: "split",
	RoleLeafWindow: "leaf", RoleFloatingContainer: "floating", RoleDockarea: "dockarea",
}
var namesToRole = func() map[string]Role {
	m := make(map[string]Role, len(roleNames))
	for k, v := range roleNames {
		m[v] = k
	}
	return m
}()

var layoutNames = map[Layout]string{
	LayoutDefault: "default", LayoutSplitH: "splith", LayoutSplitV: "splitv",
	LayoutStacked: "stacked", LayoutTabbed: "tabbed", LayoutOutput: "output",
	LayoutDockarea: "dockarea",
}
var namesToLayout = func() map[string]Layout {
	m := make(map[string]Layout, len(layoutNames))
	for k, v := range layoutNames {
		m[v] = k
	}
	return m
}()

var borderNames = map[BorderStyle]string{BorderNone: "none", BorderPixel: "pixel", BorderNormal: "normal"}
var namesToBorder = func() map[string]BorderStyle {
	m := make(map[string]BorderStyle, len(borderNames))
	for k, v := range borderNames {
		m[v] = k
	}
	return m
}()

func toSnapshotNode(c *Container) snapshotNode {
	n := snapshotNode{
		ID:              c.ID,
		Role:            roleNames[c.Role],
		Layout:          layoutNames[c.Layout],
		Rect:            c.Rect,
		Percent:         c.Percent,
		Border:          borderNames[c.Border],
		BorderWidth:     c.BorderWidth,
		Fullscreen:      int(c.Fullscreen),
		Mark:            c.Mark,
		TitleFormat:     c.TitleFormat,
		Window:          uint64(c.Window),
		HasWindow:       c.HasWindow,
		WindowType:      int(c.WindowType),
		Class:           c.Class,
		Instance:        c.Instance,
		WindowRole:      c.WindowRole,
		Title:           c.Title,
		Urgent:          c.Urgent,
		WorkspaceName:   c.WorkspaceName,
		WorkspaceNum:    c.WorkspaceNum,
		WorkspaceHasNum: c.WorkspaceHasNum,
		OutputName:      c.OutputName,
	}
	for _, f := range c.focusOrder {
		n.FocusOrder = append(n.FocusOrder, f.ID)
	}
	for _, child := range c.layoutOrder {
		n.Children = append(n.Children, toSnapshotNode(child))
	}
	return n
}

// Serialize implements ContainerTree.append_layout's persisted format
// (spec.md §3/§9): a full JSON dump of the tree, suitable for
// checksumming and writing to disk by internal/persistence.
func (t *Tree) Serialize() ([]byte, error) {
	snap := snapshot{
		NextID:       t.nextID,
		BackAndForth: t.backAndForth,
		Root:         toSnapshotNode(t.root),
	}
	if t.focused != nil {
		snap.FocusID = t.focused.ID
	}
	return json.Marshal(snap)
}

// Deserialize replaces t's entire tree with the one encoded in data,
// rebuilding the byID registry, parent pointers, and focus order from the
// persisted layout order and focus-order ID lists. Used by
// internal/persistence to restore a checksummed snapshot at startup.
func (t *Tree) Deserialize(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return wmerr.Wrap(wmerr.KindParse, err, "deserialize layout")
	}

	byID := make(map[uint64]*Container)
	focusIDs := make(map[uint64][]uint64)
	root, err := rebuildNode(snap.Root, nil, byID, focusIDs)
	if err != nil {
		return err
	}
	for _, c := range byID {
		resolveFocusOrder(c, focusIDs[c.ID], byID)
	}

	t.root = root
	t.byID = byID
	t.nextID = snap.NextID
	t.backAndForth = snap.BackAndForth
	t.marks = make(map[string]*Container)
	for _, c := range byID {
		if c.Mark != "" {
			t.marks[c.Mark] = c
		}
	}
	if f, ok := byID[snap.FocusID]; ok {
		t.focused = f
	} else {
		t.focused = FocusHead(root)
	}
	return nil
}

func rebuildNode(n snapshotNode, parent *Container, byID map[uint64]*Container, focusIDs map[uint64][]uint64) (*Container, error) {
	role, ok := namesToRole[n.Role]
	if !ok {
		return nil, wmerr.New(wmerr.KindParse, "deserialize layout: unknown role %q", n.Role)
	}
	c := &Container{
		ID:              n.ID,
		Role:            role,
		Layout:          namesToLayout[n.Layout],
		Rect:            n.Rect,
		Percent:         n.Percent,
		Border:          namesToBorder[n.Border],
		BorderWidth:     n.BorderWidth,
		Fullscreen:      FullscreenMode(n.Fullscreen),
		Mark:            n.Mark,
		TitleFormat:     n.TitleFormat,
		Window:          WindowHandle(n.Window),
		HasWindow:       n.HasWindow,
		WindowType:      WindowType(n.WindowType),
		Class:           n.Class,
		Instance:        n.Instance,
		WindowRole:      n.WindowRole,
		Title:           n.Title,
		Urgent:          n.Urgent,
		WorkspaceName:   n.WorkspaceName,
		WorkspaceNum:    n.WorkspaceNum,
		WorkspaceHasNum: n.WorkspaceHasNum,
		OutputName:      n.OutputName,
		parent:          parent,
	}
	if _, exists := byID[c.ID]; exists {
		return nil, fmt.Errorf("deserialize layout: duplicate container id %d", c.ID)
	}
	byID[c.ID] = c
	for _, childSnap := range n.Children {
		child, err := rebuildNode(childSnap, c, byID, focusIDs)
		if err != nil {
			return nil, err
		}
		c.layoutOrder = append(c.layoutOrder, child)
	}
	if len(n.FocusOrder) > 0 {
		focusIDs[c.ID] = n.FocusOrder
	}
	return c, nil
}

// resolveFocusOrder rebuilds c.focusOrder from the persisted child-ID
// permutation, once every node in the tree has been registered by ID.
// Falls back to layout order for any node whose persisted focus order is
// absent, stale, or references an ID no longer present.
func resolveFocusOrder(c *Container, ids []uint64, byID map[uint64]*Container) {
	if len(ids) == len(c.layoutOrder) {
		order := make([]*Container, 0, len(ids))
		ok := true
		for _, id := range ids {
			child, found := byID[id]
			if !found || child.parent != c {
				ok = false
				break
			}
			order = append(order, child)
		}
		if ok {
			c.focusOrder = order
			return
		}
	}
	c.focusOrder = append([]*Container{}, c.layoutOrder...)
}
