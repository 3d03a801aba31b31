// Package tree implements the ContainerTree: the authoritative, in-memory
// container tree described in spec.md §3–§4.1. It is the single owner of
// window/workspace/output state; every read and mutation in the rest of the
// module goes through its operations.
//
// Grounded on the teacher's paneNode (workspace_types.go) and
// WorkspaceManager (workspace_manager.go), generalized from a binary
// left/right split to the n-ary, percentage-weighted children the spec
// requires, and stripped of every GTK widget-lifecycle concern (the
// envelope carries no widget handle — geometry/restacking is the
// Renderer's job via DisplayBackend).
package tree

import "time"

// Role tags what kind of node a Container is — the "tagged sum over role"
// spec.md §9 calls for, rather than an inheritance hierarchy.
type Role int

const (
	RoleRoot Role = iota
	RoleOutput
	RoleContent
	RoleWorkspace
	RoleSplitContainer
	RoleLeafWindow
	RoleFloatingContainer
	RoleDockarea
)

func (r Role) String() string {
	switch r {
	case RoleRoot:
		return "root"
	case RoleOutput:
		return "output"
	case RoleContent:
		return "content"
	case RoleWorkspace:
		return "workspace"
	case RoleSplitContainer:
		return "split"
	case RoleLeafWindow:
		return "leaf"
	case RoleFloatingContainer:
		return "floating"
	case RoleDockarea:
		return "dockarea"
	default:
		return "unknown"
	}
}

// Layout is the packing/presentation mode of a container's children.
type Layout int

const (
	LayoutDefault Layout = iota
	LayoutSplitH
	LayoutSplitV
	LayoutStacked
	LayoutTabbed
	LayoutOutput
	LayoutDockarea
)

func (l Layout) String() string {
	switch l {
	case LayoutDefault:
		return "default"
	case LayoutSplitH:
		return "splith"
	case LayoutSplitV:
		return "splitv"
	case LayoutStacked:
		return "stacked"
	case LayoutTabbed:
		return "tabbed"
	case LayoutOutput:
		return "output"
	case LayoutDockarea:
		return "dockarea"
	default:
		return "unknown"
	}
}

// BorderStyle is a leaf window's border rendering mode.
type BorderStyle int

const (
	BorderNone BorderStyle = iota
	BorderPixel
	BorderNormal
)

func (b BorderStyle) String() string {
	switch b {
	case BorderNone:
		return "none"
	case BorderPixel:
		return "pixel"
	case BorderNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// FullscreenMode tracks invariant 5 (spec.md §3): at most one Global
// fullscreen in the whole tree, at most one Output fullscreen per output.
type FullscreenMode int

const (
	FullscreenNone FullscreenMode = iota
	FullscreenOutput
	FullscreenGlobal
)

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	X, Y, W, H int
}

// WindowHandle is the opaque, backend-owned identity of an X11 window. The
// window manager never interprets it; it is only used to correlate
// DisplayBackend calls with tree nodes (invariant 7: every window-carrying
// leaf has a non-null handle registered with the backend).
type WindowHandle uint64

// WindowType classifies a leaf's window for criteria matching
// (spec.md §4.2's window_type enum field).
type WindowType int

const (
	WindowTypeNormal WindowType = iota
	WindowTypeDialog
	WindowTypeUtility
	WindowTypeToolbar
	WindowTypeSplash
	WindowTypeMenu
	WindowTypePopupMenu
	WindowTypeDropdownMenu
	WindowTypeTooltip
	WindowTypeNotification
	WindowTypeDock
	WindowTypeDesktop
)

// Container is a single node of the container tree. It is a tagged sum over
// Role: every field below is either shared envelope state (identity, rect,
// percent, parent/children) or role-specific payload that is only
// meaningful for certain roles, documented per-field.
type Container struct {
	ID   uint64
	Role Role

	// Layout applies to split-capable containers (workspaces, split
	// containers, outputs' content) — the packing mode of Children.
	Layout Layout

	Rect    Rect
	Percent float64 // share of parent's packing axis, invariant 3

	Border      BorderStyle
	BorderWidth int

	Fullscreen FullscreenMode

	Mark        string // "" means unmarked; invariant 6: unique across tree
	TitleFormat string // "" or unset means "%title" (render title verbatim)

	// Window-carrying leaf state (RoleLeafWindow only).
	Window     WindowHandle
	HasWindow  bool
	WindowType WindowType
	Class      string
	Instance   string
	WindowRole string
	Title      string
	Urgent     bool
	UrgentAt   time.Time

	// Workspace-specific identity (RoleWorkspace only).
	WorkspaceName   string
	WorkspaceNum    int
	WorkspaceHasNum bool

	// Output-specific identity (RoleOutput only).
	OutputName string

	// Floating-container explicit geometry (RoleFloatingContainer's sole
	// child leaf uses Rect directly; the floating container itself mirrors
	// it so it can be moved/resized independent of tiling percentages).

	parent *Container // weak back-reference, never owns

	// layoutOrder is authoritative ownership of children: geometric
	// left-to-right / top-to-bottom order along the packing axis.
	layoutOrder []*Container
	// focusOrder holds the same children, reordered most-recently-focused
	// first. Every mutation that can change focus or membership updates
	// both orderings (spec.md §3, "Children ordering").
	focusOrder []*Container
}

// IsLeaf reports whether c has no children (RoleLeafWindow is always a
// leaf; other roles may be transiently childless between mutations).
func (c *Container) IsLeaf() bool {
	return len(c.layoutOrder) == 0
}

// Parent returns c's weak parent reference, nil for the root.
func (c *Container) Parent() *Container { return c.parent }

// Children returns c's children in layout order. The returned slice is
// owned by the tree; callers must not mutate it.
func (c *Container) Children() []*Container { return c.layoutOrder }

// FocusOrder returns c's children in most-recently-focused-first order.
// The returned slice is owned by the tree; callers must not mutate it.
func (c *Container) FocusOrder() []*Container { return c.focusOrder }
