package event

import (
	"context"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/logging"
	"github.com/bnema/wm/internal/tree"
)

// Notifier is the IPC broadcast collaborator (spec.md §6's `subscribe`):
// fed a terse (eventType, change) pair plus an event-specific payload
// whenever a dispatched event changes window/workspace state a subscribed
// IPC client might care about. A nil Notifier makes every Notify call a
// no-op, the same optional-collaborator shape as StatusController/BarVisibility.
type Notifier interface {
	Notify(eventType, change string, payload any)
}

// Dispatcher is the EventDispatcher (spec.md §4.5). Like internal/tree and
// internal/command, it is driven from the single event-loop goroutine only
// and keeps no lock of its own.
type Dispatcher struct {
	tree    *tree.Tree
	backend backend.DisplayBackend
	status  StatusController
	bar     BarVisibility
	notify  Notifier
	log     *logging.Logger

	needsRender bool
}

// SetNotifier wires the IPC broadcast collaborator in after construction
// (cmd/wm builds the Dispatcher before the IPC server exists, then ties
// them together), mirroring internal/command.Hooks' optional-field wiring.
func (d *Dispatcher) SetNotifier(n Notifier) { d.notify = n }

func (d *Dispatcher) notifyEvent(eventType, change string, payload any) {
	if d.notify != nil {
		d.notify.Notify(eventType, change, payload)
	}
}

// New builds a Dispatcher. status and bar may be nil (the respective
// suspend/resume and visibility translations become no-ops), matching the
// teacher's optional-callback pattern in KeyboardDispatcher's SetOnQuit
// family.
func New(t *tree.Tree, be backend.DisplayBackend, status StatusController, bar BarVisibility, log *logging.Logger) *Dispatcher {
	if log == nil {
		log = logging.Nop()
	}
	return &Dispatcher{tree: t, backend: be, status: status, bar: bar, log: log.With("event")}
}

// NeedsRender reports whether any event since the last ConsumeRender call
// mutated the tree in a way that requires a re-render (spec.md §4.4's
// end-of-batch contract, mirrored from internal/command.Interpreter).
func (d *Dispatcher) NeedsRender() bool { return d.needsRender }

// ConsumeRender clears and returns the needs-render flag.
func (d *Dispatcher) ConsumeRender() bool {
	v := d.needsRender
	d.needsRender = false
	return v
}

func (d *Dispatcher) markRender() { d.needsRender = true }

// Dispatch translates a single backend event into tree mutations, backend
// calls, or status/bar collaborator calls. Unknown events are ignored
// (spec.md §4.5), as is any event whose referenced window cannot be found
// (it has already been closed, or belongs to a window the tree never
// wrapped — e.g. the bar's own window).
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case KindMap:
		return d.onMap(ctx, ev)
	case KindUnmap:
		return d.onUnmap(ev)
	case KindDestroy:
		return d.onDestroy(ev)
	case KindConfigureRequest:
		return d.onConfigureRequest(ctx, ev)
	case KindPropertyChange:
		return d.onPropertyChange(ev)
	case KindFocusChange:
		return d.onFocusChange(ev)
	case KindButtonPress:
		return d.onButtonPress(ev)
	case KindVisibilityChange:
		return d.onVisibilityChange(ev)
	case KindModifierChange:
		return d.onModifierChange(ev)
	default:
		return nil
	}
}

// onMap implements "A LeafWindow is created on map-notify... re-parented
// under the focused split container" (spec.md §3). The new leaf is
// attached under the nearest SplitContainer or Workspace ancestor of the
// currently focused container, on the output the event names (falling
// back to the currently focused output if the backend didn't report one).
func (d *Dispatcher) onMap(ctx context.Context, ev Event) error {
	if _, ok := d.tree.ByWindow(ev.Window); ok {
		return nil // already mapped; a duplicate notify is not an error
	}
	parent := d.leafParent(ev.OutputName)
	if parent == nil {
		return nil
	}
	leaf, err := d.tree.CreateLeaf(parent, ev.Window)
	if err != nil {
		return err
	}
	d.tree.Focus(leaf)
	d.markRender()
	d.notifyEvent("window", "new", leaf.Window)
	return nil
}

// leafParent resolves the attach point a freshly mapped window lands
// under: the nearest SplitContainer ancestor of the focused container, or
// its Workspace if none exists, on the named output (or the currently
// focused output if name is empty).
func (d *Dispatcher) leafParent(outputName string) *tree.Container {
	out := d.resolveOutput(outputName)
	if out == nil {
		return nil
	}
	focused := d.tree.Focused()
	if tree.OutputOf(focused) == out {
		for n := focused; n != nil; n = n.Parent() {
			if n.Role == tree.RoleSplitContainer || n.Role == tree.RoleWorkspace {
				return n
			}
		}
	}
	// Focus isn't on this output (or there's no focus yet): fall back to
	// the output's visible workspace.
	for _, child := range out.Children() {
		if child.Role != tree.RoleContent {
			continue
		}
		if order := child.FocusOrder(); len(order) > 0 {
			return order[0]
		}
	}
	return nil
}

func (d *Dispatcher) resolveOutput(name string) *tree.Container {
	outs := d.tree.Outputs()
	if name != "" {
		for _, o := range outs {
			if o.OutputName == name {
				return o
			}
		}
	}
	if ws := tree.WorkspaceOf(d.tree.Focused()); ws != nil {
		if o := tree.OutputOf(ws); o != nil {
			return o
		}
	}
	if len(outs) > 0 {
		return outs[0]
	}
	return nil
}

// onUnmap and onDestroy both implement the reverse of CreateLeaf (spec.md
// §3): the window's leaf is removed and its parent split container
// self-collapses if left with one child. A client that withdraws its
// window (unmap) and one whose X connection dies (destroy) are treated
// identically here, matching i3's handling of both as "the window is
// gone".
func (d *Dispatcher) onUnmap(ev Event) error {
	return d.closeWindow(ev.Window)
}

func (d *Dispatcher) onDestroy(ev Event) error {
	return d.closeWindow(ev.Window)
}

func (d *Dispatcher) closeWindow(handle tree.WindowHandle) error {
	leaf, ok := d.tree.ByWindow(handle)
	if !ok {
		return nil
	}
	if _, err := d.tree.CloseLeaf(leaf); err != nil {
		return err
	}
	d.markRender()
	d.notifyEvent("window", "close", handle)
	return nil
}

// onConfigureRequest implements "deny/grant configure" (spec.md §4.5): a
// floating window's client-requested geometry is granted outright (its
// Rect is updated and the renderer's next pass will configure it, same as
// any other floating move/resize); a tiled window's request is denied by
// immediately reasserting its current tree-assigned geometry, since tiling
// geometry is owned by the renderer, not the client.
func (d *Dispatcher) onConfigureRequest(ctx context.Context, ev Event) error {
	leaf, ok := d.tree.ByWindow(ev.Window)
	if !ok {
		return nil
	}
	if isFloating(leaf) {
		leaf.Rect = ev.RequestedRect
		if fc := leaf.Parent(); fc != nil {
			fc.Rect = ev.RequestedRect
		}
		d.markRender()
		return nil
	}
	if d.backend == nil {
		return nil
	}
	return d.backend.Configure(ctx, leaf.Window, backend.WindowGeometry{
		Rect:        leaf.Rect,
		BorderWidth: leaf.BorderWidth,
	})
}

func isFloating(leaf *tree.Container) bool {
	p := leaf.Parent()
	return p != nil && p.Role == tree.RoleFloatingContainer
}

// onPropertyChange implements "update property cache" (spec.md §4.5): the
// leaf's cached class/instance/title/role/urgency fields (used by the
// match engine's criteria and the bar's window-title rendering) are kept
// in sync with the X properties the backend observed changing.
func (d *Dispatcher) onPropertyChange(ev Event) error {
	leaf, ok := d.tree.ByWindow(ev.Window)
	if !ok {
		return nil
	}
	switch ev.Property {
	case PropClass:
		leaf.Class = ev.Value
	case PropInstance:
		leaf.Instance = ev.Value
	case PropTitle:
		leaf.Title = ev.Value
	case PropWindowRole:
		leaf.WindowRole = ev.Value
	case PropUrgent:
		leaf.Urgent = ev.Value == "true"
	default:
		return nil
	}
	d.markRender()
	return nil
}

// onFocusChange implements "change focus" (spec.md §4.5): an external
// focus-follows-mouse notification (or a click on an unfocused window) is
// mirrored into the tree's focus state the same way the `focus` command
// does.
func (d *Dispatcher) onFocusChange(ev Event) error {
	leaf, ok := d.tree.ByWindow(ev.Window)
	if !ok {
		return nil
	}
	if d.tree.Focus(leaf) {
		d.markRender()
		d.notifyEvent("window", "focus", leaf.Window)
	}
	return nil
}

// onButtonPress implements "invoke workspace switch by index" (spec.md
// §4.5): a click on one of the bar's workspace buttons.
func (d *Dispatcher) onButtonPress(ev Event) error {
	for _, ws := range d.tree.Workspaces() {
		if ws.WorkspaceHasNum && ws.WorkspaceNum == ev.WorkspaceIndex {
			d.tree.SwitchToWorkspace(ws, false)
			d.markRender()
			d.notifyEvent("workspace", "focus", ws.WorkspaceName)
			return nil
		}
	}
	return nil
}

// onVisibilityChange implements "toggle bar visibility" paired with
// "suspend/resume status producer" (spec.md §4.5): hiding the bar also
// pauses its status generator so it isn't burning cycles updating a
// display nobody sees.
func (d *Dispatcher) onVisibilityChange(ev Event) error {
	if d.bar != nil {
		d.bar.SetVisible(ev.Visible)
	}
	if d.status == nil {
		return nil
	}
	if ev.Visible {
		return d.status.Resume()
	}
	return d.status.Suspend()
}

// onModifierChange implements the bar's hide_on_modifier auto-reveal
// (spec.md §4.6): holding the configured modifier reveals a hidden bar for
// as long as it's held.
func (d *Dispatcher) onModifierChange(ev Event) error {
	if d.bar != nil {
		d.bar.SetModifierHeld(ev.Pressed)
	}
	return nil
}
