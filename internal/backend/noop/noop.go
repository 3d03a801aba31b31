// Package noop provides a DisplayBackend/TextMetrics/XEventSource that do
// nothing, for running this window manager's daemon without a real X11
// connection (development, integration tests, and CI). A real deployment
// links a concrete DisplayBackend implementation against the protocol
// library of its choice and wires that in at startup instead — this
// module deliberately carries no Xlib/XCB bindings of its own, the same
// externalize-as-capability boundary internal/backend's doc comment
// describes.
package noop

import (
	"context"
	"os/exec"
	"strings"
	"sync"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/event"
	"github.com/bnema/wm/internal/tree"
)

// Backend is a DisplayBackend that accepts every call and changes
// nothing, except Exec (which really spawns the requested process — the
// one side effect worth keeping even headless) and AllocPixmap (which
// hands out distinct handles so internal/bar's pixmap bookkeeping has
// something to track).
type Backend struct {
	mu         sync.Mutex
	nextPixmap uint64
}

func New() *Backend { return &Backend{} }

func (b *Backend) Configure(ctx context.Context, win tree.WindowHandle, geom backend.WindowGeometry) error {
	return nil
}

func (b *Backend) Map(ctx context.Context, win tree.WindowHandle) error   { return nil }
func (b *Backend) Unmap(ctx context.Context, win tree.WindowHandle) error { return nil }
func (b *Backend) Kill(ctx context.Context, win tree.WindowHandle) error  { return nil }

func (b *Backend) Exec(ctx context.Context, cmdline string, startupID string) error {
	if strings.TrimSpace(cmdline) == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", cmdline)
	return cmd.Start()
}

func (b *Backend) AllocPixmap(ctx context.Context, width, height int) (backend.PixmapHandle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextPixmap++
	return backend.PixmapHandle(b.nextPixmap), nil
}

func (b *Backend) FreePixmap(ctx context.Context, p backend.PixmapHandle) error { return nil }

func (b *Backend) ClaimTraySelection(ctx context.Context, outputIndex int) (bool, error) {
	return true, nil
}

var _ backend.DisplayBackend = (*Backend)(nil)

// Metrics is a TextMetrics using a fixed per-rune pixel width, for
// running the bar's layout algorithm without a loaded font.
type Metrics struct {
	CellWidth  int
	CellHeight int
}

func (m Metrics) TextWidth(s string) int {
	if m.CellWidth == 0 {
		return len([]rune(s)) * 8
	}
	return len([]rune(s)) * m.CellWidth
}

func (m Metrics) LineHeight() int {
	if m.CellHeight == 0 {
		return 16
	}
	return m.CellHeight
}

var _ backend.TextMetrics = Metrics{}

// EventSource is an XEventSource that never produces an event; Next
// blocks until ctx is cancelled. It lets the daemon's poll loop run with
// every other source (status, IPC, SIGCHLD) live while no real X
// connection is attached.
type EventSource struct{}

func (EventSource) Next(ctx context.Context) (event.Event, error) {
	<-ctx.Done()
	return event.Event{}, ctx.Err()
}
