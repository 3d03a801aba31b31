// Package render implements the Renderer (spec.md §4.4): it walks the
// container tree from each output's content downward, assigns pixel
// geometry to every tiling and floating container, then asks the backend
// to configure and restack the windows that geometry belongs to.
//
// Grounded on the teacher's TreeRenderer (internal/ui/layout/tree.go),
// which recursively walks a PaneNode tree building a parallel widget tree
// node-by-node (renderLeaf/renderSplit/renderStacked dispatching on node
// kind); this package keeps that same recursive-dispatch-on-role shape but
// assigns rectangles instead of constructing GTK widgets, since there is no
// widget tree to build — the backend is handed a finished geometry and
// told to configure the real X window directly.
package render

import (
	"context"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/logging"
	"github.com/bnema/wm/internal/tree"
)

// GapsProvider is the live gap configuration the renderer consults per
// workspace (spec.md §6's gaps.inner/gaps.outer, mutated at runtime by the
// `gaps` command). internal/command.Interpreter satisfies this via its
// GapsFor method.
type GapsProvider interface {
	GapsFor(workspaceName string) (inner, outer int)
}

// headerStripPadding is added to the font's line height to get the
// stacked/tabbed title-bar strip height, mirroring the teacher's
// stackedPane title bar (internal/ui/layout/stacked.go), which always
// reserves extra vertical room around the label beyond the raw text
// height.
const headerStripPadding = 6

// Renderer is the spec.md §4.4 Renderer. It is driven from the single
// event-loop goroutine only, after the command interpreter sets
// needs_tree_render; like internal/tree, it keeps no lock of its own.
type Renderer struct {
	backend backend.DisplayBackend
	metrics backend.TextMetrics
	gaps    GapsProvider
	log     *logging.Logger
}

// New builds a Renderer. metrics may be nil (headerStripHeight then falls
// back to a fixed default); backend may be nil in tests that only assert
// on the assigned tree geometry.
func New(be backend.DisplayBackend, metrics backend.TextMetrics, gaps GapsProvider, log *logging.Logger) *Renderer {
	if log == nil {
		log = logging.Nop()
	}
	return &Renderer{backend: be, metrics: metrics, gaps: gaps, log: log.With("render")}
}

func (r *Renderer) headerStripHeight() int {
	if r.metrics == nil {
		return 20
	}
	return r.metrics.LineHeight() + headerStripPadding
}

// Render assigns geometry to every output's visible workspace subtree and
// every floating container, then configures and (un)maps the windows that
// own leaf containers. It is the renderer's single entry point, called
// once at the end of a command batch (spec.md §4.3, §4.4).
func (r *Renderer) Render(ctx context.Context, t *tree.Tree) error {
	for _, out := range t.Outputs() {
		content := firstChildOfRole(out, tree.RoleContent)
		if content == nil {
			continue
		}
		visible := visibleWorkspace(content)
		if visible == nil {
			continue
		}
		visible.Rect = content.Rect

		inner, outer := 0, 0
		if r.gaps != nil {
			inner, outer = r.gaps.GapsFor(visible.WorkspaceName)
		}
		working := insetRect(visible.Rect, outer)
		assignGeometry(visible, working, inner, r.headerStripHeight())

		for _, child := range visible.Children() {
			if child.Role == tree.RoleFloatingContainer {
				assignFloating(child)
			}
		}

		if err := r.apply(ctx, visible); err != nil {
			return err
		}
	}
	return nil
}

// firstChildOfRole returns c's first direct child with the given role, or
// nil if none exists.
func firstChildOfRole(c *tree.Container, role tree.Role) *tree.Container {
	for _, child := range c.Children() {
		if child.Role == role {
			return child
		}
	}
	return nil
}

// visibleWorkspace returns the workspace currently shown on this output:
// the head of content's focus order, i.e. the most recently focused
// workspace among its children. Workspace switches (tree.SwitchToWorkspace)
// promote a workspace to this head without reparenting it, so every
// workspace ever created on this output stays attached under content;
// only the head is actually laid out and mapped.
func visibleWorkspace(content *tree.Container) *tree.Container {
	order := content.FocusOrder()
	if len(order) == 0 {
		return nil
	}
	return order[0]
}

// insetRect shrinks rect on all four sides by px (spec.md §6's
// gaps.outer).
func insetRect(rect tree.Rect, px int) tree.Rect {
	if px <= 0 {
		return rect
	}
	w := rect.W - 2*px
	h := rect.H - 2*px
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return tree.Rect{X: rect.X + px, Y: rect.Y + px, W: w, H: h}
}
