// Package backend defines the capability interfaces that carve the X11
// protocol plumbing, font/color loading, and modifier grabbing out of the
// core window-manager logic (spec.md §1's "explicitly out of scope"
// collaborators). Nothing in this package touches Xlib/XCB directly; a
// concrete implementation lives outside this module and is injected at
// startup, the way the teacher injects `createWebViewFn`/`createPaneFn`
// into its workspace manager for testability.
package backend

import (
	"context"

	"github.com/bnema/wm/internal/tree"
)

// WindowGeometry is what the renderer asks the backend to apply to a
// mapped window (spec.md §4.4: "asks the backend to configure each window
// and restack").
type WindowGeometry struct {
	Rect        tree.Rect
	BorderWidth int
	StackAbove  tree.WindowHandle // 0 means "don't care"
}

// DisplayBackend is the X11 protocol plumbing collaborator: atom lookup,
// the event pump, GC/pixmap allocation, window configuration and
// restacking, and process spawning for `exec`.
type DisplayBackend interface {
	// Configure applies geometry, border width, and a restack request to an
	// already-mapped window.
	Configure(ctx context.Context, win tree.WindowHandle, geom WindowGeometry) error

	// Map and Unmap control a window's visibility without destroying it
	// (used for stacked/tabbed layouts hiding non-topmost children, and for
	// workspace switches).
	Map(ctx context.Context, win tree.WindowHandle) error
	Unmap(ctx context.Context, win tree.WindowHandle) error

	// Kill politely asks a window to close (WM_DELETE_WINDOW if supported,
	// else a forced XKillClient), for the `kill` command.
	Kill(ctx context.Context, win tree.WindowHandle) error

	// Exec spawns an external process fire-and-forget (spec.md §5), e.g.
	// for the `exec` command. startupID is "" when --no-startup-id is set.
	Exec(ctx context.Context, cmdline string, startupID string) error

	// AllocPixmap reserves backing storage for a bar's double-buffer
	// (spec.md §5: "Bar pixmap: owned by the bar core; grown monotonically").
	// Returns ResourceUnavailable (wmerr) on failure — a fatal error kind.
	AllocPixmap(ctx context.Context, width, height int) (PixmapHandle, error)
	FreePixmap(ctx context.Context, p PixmapHandle) error

	// ClaimTraySelection attempts to own _NET_SYSTEM_TRAY_S<screen> for the
	// given output index; ok is false if another tray already holds it.
	ClaimTraySelection(ctx context.Context, outputIndex int) (ok bool, err error)
}

// PixmapHandle is the opaque, backend-owned identity of an allocated
// pixmap surface.
type PixmapHandle uint64

// TextMetrics is the font-loading/measurement collaborator: every text
// width computation the bar's status-line layout algorithm needs
// (spec.md §4.6 step 1: "For each block, compute text width").
type TextMetrics interface {
	// TextWidth returns the rendered pixel width of s in the currently
	// loaded font.
	TextWidth(s string) int
	// LineHeight returns the font's line height in pixels, used to
	// auto-size the bar when bar_height is 0 (spec.md §6).
	LineHeight() int
}

// ModifierMask is a bitmask of held keyboard modifiers (spec.md §6's
// `modifier` config bitmask and §4.6's "modifier-held flag").
type ModifierMask uint32

// InputGrab is the Xkb modifier-grabbing collaborator: detecting
// modifier-press/release for the bar's hide_on_modifier auto-reveal
// behavior (spec.md §4.6's visibility state machine).
type InputGrab interface {
	GrabModifier(ctx context.Context, mask ModifierMask) error
	UngrabModifier(ctx context.Context, mask ModifierMask) error
}
