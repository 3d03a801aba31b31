// Package bar implements BarCore (spec.md §4.6): per-output bar window
// state, the status-line layout algorithm, drawing order, the XEMBED tray
// protocol, and the bar visibility state machine.
package bar

import (
	"context"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/config"
	"github.com/bnema/wm/internal/logging"
	"github.com/bnema/wm/internal/status"
	"github.com/bnema/wm/internal/tree"
	"github.com/bnema/wm/internal/wmerr"
)

// workspaceButtonOffset and workspaceButtonSpacing are the fixed drawing
// constants from spec.md §4.6: "4px horizontal offset, 1px spacing".
const (
	workspaceButtonOffset  = 4
	workspaceButtonSpacing = 1
)

// WorkspaceButton is one rendered workspace indicator (spec.md §4.6's
// drawing order, left-hand side).
type WorkspaceButton struct {
	Name     string
	Num      int
	HasNum   bool
	Focused  bool
	Active   bool
	Urgent   bool
	X, Width int
}

// OutputState is the per-output half of BarCore's state (spec.md §4.6):
// "window handle, double-buffer pixmap, current geometry, tray-client
// list, visible flag".
type OutputState struct {
	Name    string
	Window  tree.WindowHandle
	Pixmap  backend.PixmapHandle
	PixW    int
	PixH    int
	Rect    tree.Rect
	Tray    *Tray
	Visible bool
}

// Core is BarCore. Global state (palette, mode name, modifier-held flag,
// status blocks) is shared across every output; per-output state is kept
// in the outputs map. Like internal/tree and internal/command, it is
// driven from the single event-loop goroutine only.
type Core struct {
	backend backend.DisplayBackend
	metrics backend.TextMetrics
	log     *logging.Logger

	cfg     config.BarConfig
	palette Palette
	vis     *Visibility

	mode           string
	separatorWidth int

	blocks []status.Block

	outputs map[string]*OutputState
}

// New builds a Core from a validated BarConfig. metrics may be nil in
// tests that only assert on layout/tray/visibility bookkeeping without a
// real font backend.
func New(cfg config.BarConfig, be backend.DisplayBackend, metrics backend.TextMetrics, log *logging.Logger) (*Core, error) {
	if log == nil {
		log = logging.Nop()
	}
	palette, err := BuildPalette(cfg.Colors)
	if err != nil {
		return nil, err
	}
	sep := cfg.SeparatorSymbol
	_ = sep // the glyph itself is a draw-time concern; only its reserved width matters here
	return &Core{
		backend:        be,
		metrics:        metrics,
		log:            log.With("bar"),
		cfg:            cfg,
		palette:        palette,
		vis:            NewVisibility(ParseMode(cfg.HideOnModifier)),
		mode:           "default",
		separatorWidth: 9,
		outputs:        make(map[string]*OutputState),
	}, nil
}

// AddOutput registers a new output's bar window, starting with no
// allocated pixmap (grown lazily on first layout) and an unowned tray.
func (c *Core) AddOutput(name string, win tree.WindowHandle, rect tree.Rect, screenIndex int) *OutputState {
	o := &OutputState{Name: name, Window: win, Rect: rect, Tray: NewTray(screenIndex), Visible: true}
	c.outputs[name] = o
	return o
}

// RemoveOutput implements "on output removal, unmap and reparent all
// clients to root" for that output's tray, then drops its state.
func (c *Core) RemoveOutput(ctx context.Context, name string) []*TrayClient {
	o, ok := c.outputs[name]
	if !ok {
		return nil
	}
	clients := o.Tray.Shutdown()
	if o.Pixmap != 0 && c.backend != nil {
		_ = c.backend.FreePixmap(ctx, o.Pixmap)
	}
	delete(c.outputs, name)
	return clients
}

// Output returns the named output's state, or nil.
func (c *Core) Output(name string) *OutputState { return c.outputs[name] }

// SetStatusBlocks replaces the current status-block sequence (a fresh
// StatusSource Update).
func (c *Core) SetStatusBlocks(blocks []status.Block) {
	c.blocks = blocks
}

// CurrentMode returns the active binding-mode name, fed from
// internal/command.Interpreter.CurrentMode so the bar can draw the
// indicator and feed the visibility state machine.
func (c *Core) CurrentMode() string { return c.mode }

// SetMode updates the binding-mode indicator and, per the visibility
// state machine, treats any non-default mode as a forcing condition
// ("recent mode activation forces Shown"), disabled entirely when the
// config opts out via disable_binding_mode_indicator.
func (c *Core) SetMode(name string) {
	c.mode = name
	if c.cfg.DisableBindingModeIndicator {
		return
	}
	c.vis.SetModeIndicator(name != "default")
}

// SetUrgentWorkspace feeds "any urgent workspace" into the visibility
// state machine.
func (c *Core) SetUrgentWorkspace(urgent bool) {
	c.vis.SetUrgent(urgent)
}

// SetVisible implements event.BarVisibility: an explicit
// visibility-change event (spec.md §4.5) pins the bar shown or hidden,
// overriding the mode/modifier/urgency transitions until the next such
// event.
func (c *Core) SetVisible(visible bool) {
	c.vis.SetOverride(&visible)
}

// SetModifierHeld implements event.BarVisibility.
func (c *Core) SetModifierHeld(held bool) {
	c.vis.SetModifierHeld(held)
}

// Visible reports the bar's current visibility per the state machine.
func (c *Core) Visible() bool { return c.vis.Visible() }

// SetBarOption implements the `bar mode|hidden_state … [id]` command's
// hook contract (internal/command.Hooks.SetBarOption). Core holds one
// shared bar configuration, so barID is not used: every option applies to
// every bar, whatever id is passed.
func (c *Core) SetBarOption(barID, key, value string) error {
	switch key {
	case "mode":
		c.vis.SetMode(ParseMode(value))
		c.cfg.HideOnModifier = value
	case "hidden_state":
		c.cfg.HiddenState = value
	default:
		return wmerr.New(wmerr.KindParse, "bar: unrecognized option %q", key)
	}
	return nil
}

// Layout runs the status-line layout algorithm (spec.md §4.6 steps 1-4)
// over the current block sequence and grows the named output's pixmap if
// needed, returning the laid-out blocks and the computed statusline
// width. New accepts a nil metrics; with one, this is a no-op returning
// the blocks unmeasured.
func (c *Core) Layout(ctx context.Context, outputName string) (int, []status.Block, error) {
	if c.metrics == nil {
		return 0, c.blocks, nil
	}
	total, laidOut := ComputeLayout(c.blocks, c.metrics, c.separatorWidth)

	o, ok := c.outputs[outputName]
	if !ok {
		return total, laidOut, nil
	}
	height := o.PixH
	if height == 0 {
		height = c.barHeight()
	}
	if total > o.PixW || height > o.PixH {
		if err := c.growPixmap(ctx, o, total, height); err != nil {
			return 0, nil, err
		}
	}
	return total, laidOut, nil
}

func (c *Core) barHeight() int {
	if c.cfg.Height > 0 {
		return c.cfg.Height
	}
	if c.metrics != nil {
		return c.metrics.LineHeight() + 2*workspaceButtonSpacing
	}
	return 20
}

// growPixmap implements "Bar pixmap: owned by the bar core; grown
// monotonically" (spec.md §5): the old pixmap is freed only after the new,
// larger one is successfully allocated.
func (c *Core) growPixmap(ctx context.Context, o *OutputState, width, height int) error {
	if c.backend == nil {
		o.PixW, o.PixH = width, height
		return nil
	}
	handle, err := c.backend.AllocPixmap(ctx, width, height)
	if err != nil {
		return wmerr.Wrap(wmerr.KindResourceUnavailable, err, "bar: grow pixmap for %s to %dx%d", o.Name, width, height)
	}
	old := o.Pixmap
	o.Pixmap, o.PixW, o.PixH = handle, width, height
	if old != 0 {
		_ = c.backend.FreePixmap(ctx, old)
	}
	return nil
}

// WorkspaceButtons computes the left-to-right workspace button strip
// (spec.md §4.6's drawing order): fixed 4px leading offset, 1px spacing
// between buttons, each button's width measured the same way a status
// block's text is.
func (c *Core) WorkspaceButtons(workspaces []*tree.Container, focused, active *tree.Container) []WorkspaceButton {
	if c.cfg.DisableWorkspaceButtons || c.metrics == nil {
		return nil
	}
	out := make([]WorkspaceButton, 0, len(workspaces))
	x := workspaceButtonOffset
	for _, ws := range workspaces {
		label := ws.WorkspaceName
		width := c.metrics.TextWidth(label) + blockTextPadding
		out = append(out, WorkspaceButton{
			Name:    label,
			Num:     ws.WorkspaceNum,
			HasNum:  ws.WorkspaceHasNum,
			Focused: ws == focused,
			Active:  ws == active,
			Urgent:  ws.Urgent,
			X:       x,
			Width:   width,
		})
		x += width + workspaceButtonSpacing
	}
	return out
}

// TrayIconX computes the x-coordinate of the idx'th mapped tray icon on
// the named output, relative to that output's own rect (spec.md §4.6).
func (c *Core) TrayIconX(outputName string, idx, iconSize int) int {
	o, ok := c.outputs[outputName]
	if !ok {
		return 0
	}
	return IconX(o.Rect.W, idx, iconSize, c.cfg.TrayPadding)
}
