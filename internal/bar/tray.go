package bar

import "github.com/bnema/wm/internal/tree"

// xembedMappedFlag is bit 0 of _XEMBED_INFO's flags word (the XEMBED
// specification this tray protocol follows): the docked client wants to be
// mapped.
const xembedMappedFlag = 1

// TrayClient is one embedded system-tray icon (spec.md §4.6's "Tray
// protocol (XEMBED / system-tray)").
type TrayClient struct {
	Window tree.WindowHandle
	Mapped bool
	flags  uint32
}

// Tray owns one output's dock: the _NET_SYSTEM_TRAY_S<screen> selection and
// the ordered list of clients embedded under it. Grounded on spec.md
// §4.6's tray paragraph; the generation counter is the
// SupplementedFeatures §C item pulled from the original i3bar xcb.c tray
// implementation, exposed for reconnection tests.
type Tray struct {
	screen     int
	owned      bool
	generation int
	clients    []*TrayClient
}

// NewTray builds an unowned Tray for the given screen index.
func NewTray(screen int) *Tray {
	return &Tray{screen: screen}
}

// Claim records the outcome of a tray-selection claim the caller made
// through the backend, bumping the generation counter on success (the
// original's reconnection bookkeeping:
// "incremented whenever ownership is re-acquired after a SelectionClear").
func (t *Tray) Claim(ok bool) {
	t.owned = ok
	if ok {
		t.generation++
	}
}

// Owned reports whether this output currently holds the tray selection.
func (t *Tray) Owned() bool { return t.owned }

// Generation returns the current reconnection generation counter.
func (t *Tray) Generation() int { return t.generation }

// Dock implements a dock request: the client is added to the per-output
// list and mapped iff its declared _XEMBED_INFO flags carry the mapped
// bit (spec.md §4.6: "insert in per-output list, and map iff XEMBED_MAPPED
// bit is set").
func (t *Tray) Dock(win tree.WindowHandle, xembedFlags uint32) *TrayClient {
	c := &TrayClient{Window: win, flags: xembedFlags, Mapped: xembedFlags&xembedMappedFlag != 0}
	t.clients = append(t.clients, c)
	return c
}

// UpdateXEmbedInfo implements the PropertyNotify-on-_XEMBED_INFO reaction:
// "map/unmap accordingly".
func (t *Tray) UpdateXEmbedInfo(win tree.WindowHandle, xembedFlags uint32) {
	for _, c := range t.clients {
		if c.Window == win {
			c.flags = xembedFlags
			c.Mapped = xembedFlags&xembedMappedFlag != 0
			return
		}
	}
}

// Remove implements the DestroyNotify/Unmap reaction: "remove/hide and
// re-layout".
func (t *Tray) Remove(win tree.WindowHandle) {
	for i, c := range t.clients {
		if c.Window == win {
			t.clients = append(t.clients[:i], t.clients[i+1:]...)
			return
		}
	}
}

// Clients returns the clients currently docked, left-to-right insertion
// order (drawn right-to-left by the caller per spec.md §4.6's x-coordinate
// formula).
func (t *Tray) Clients() []*TrayClient {
	return append([]*TrayClient{}, t.clients...)
}

// MappedClients returns only the clients that should currently be drawn.
func (t *Tray) MappedClients() []*TrayClient {
	var out []*TrayClient
	for _, c := range t.clients {
		if c.Mapped {
			out = append(out, c)
		}
	}
	return out
}

// IconX computes the x-coordinate of the idx'th mapped tray icon
// (zero-indexed from the rightmost), per spec.md §4.6: "output.w −
// idx·(icon_size + tray_padding)".
func IconX(outputWidth, idx, iconSize, trayPadding int) int {
	return outputWidth - idx*(iconSize+trayPadding)
}

// Shutdown implements "on shutdown or output removal, unmap and reparent
// all clients to root" — the caller is expected to have already issued the
// backend Unmap/reparent calls for every returned client before discarding
// this Tray; Shutdown also marks it unowned so a synthetic destroy
// of the selection window can be sent to provoke tray clients to
// rediscover a new tray.
func (t *Tray) Shutdown() []*TrayClient {
	clients := t.clients
	t.clients = nil
	t.owned = false
	return clients
}
