// Package event implements the EventDispatcher (spec.md §4.5): the
// translation layer between backend-reported X11 events and tree
// mutations. It listens to map, unmap, destroy, configure-request,
// property-change, focus-change, button-press, visibility-change, and
// modifier-change; every other event kind is ignored.
//
// Grounded on the teacher's KeyboardDispatcher
// (internal/ui/dispatcher/keyboard.go): a dispatch table keyed by a closed
// enum, each entry a small function translating one external trigger into
// exactly one coordinator call. This package keeps that shape but keys the
// table on EventKind instead of input.Action, and the destinations are
// internal/tree mutations instead of UI coordinator calls.
package event

import "github.com/bnema/wm/internal/tree"

// Kind identifies the external trigger an Event carries (spec.md §4.5).
type Kind int

const (
	KindUnknown Kind = iota
	KindMap
	KindUnmap
	KindDestroy
	KindConfigureRequest
	KindPropertyChange
	KindFocusChange
	KindButtonPress
	KindVisibilityChange
	KindModifierChange
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindUnmap:
		return "unmap"
	case KindDestroy:
		return "destroy"
	case KindConfigureRequest:
		return "configure-request"
	case KindPropertyChange:
		return "property-change"
	case KindFocusChange:
		return "focus-change"
	case KindButtonPress:
		return "button-press"
	case KindVisibilityChange:
		return "visibility-change"
	case KindModifierChange:
		return "modifier-change"
	default:
		return "unknown"
	}
}

// Property names carried by a KindPropertyChange event, matching the leaf
// fields they update.
const (
	PropClass      = "class"
	PropInstance   = "instance"
	PropTitle      = "title"
	PropWindowRole = "window_role"
	PropUrgent     = "urgent"
)

// Event is the single wire shape for every backend notification the
// dispatcher accepts. Only the fields relevant to Kind are populated; the
// rest are left zero.
type Event struct {
	Kind Kind

	// Window is the subject of Map, Unmap, Destroy, ConfigureRequest,
	// PropertyChange, and FocusChange.
	Window tree.WindowHandle

	// OutputName places a Map on a specific output (the output the
	// backend reports the mapping event against); if empty, the
	// dispatcher falls back to the currently focused output.
	OutputName string

	// RequestedRect carries the client's requested geometry for a
	// ConfigureRequest.
	RequestedRect tree.Rect

	// Property and Value carry a PropertyChange's key/new-value pair.
	Property string
	Value    string

	// WorkspaceIndex carries the 1-based workspace number a ButtonPress
	// on the bar's workspace buttons switched to.
	WorkspaceIndex int

	// Pressed carries a ModifierChange's held/released transition.
	Pressed bool

	// Visible carries a VisibilityChange's new bar visibility.
	Visible bool
}

// StatusController is the status-source collaborator the dispatcher
// suspends/resumes when the bar is hidden or redisplayed (spec.md §4.5).
// internal/status.Source satisfies this.
type StatusController interface {
	Suspend() error
	Resume() error
}

// BarVisibility is the bar-core collaborator a visibility-change or
// modifier-change event drives (spec.md §4.6's visibility state machine).
type BarVisibility interface {
	SetVisible(visible bool)
	SetModifierHeld(held bool)
}
