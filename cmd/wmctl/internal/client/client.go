// Package client implements the CommandChannel wire protocol's client
// side: the same 4-byte-big-endian-length-then-JSON framing
// internal/ipc's server speaks (spec.md §6), reimplemented here because
// that package's writeFrame/readFrame are unexported — a client living in
// a separate `main` binary talks the same external protocol any other
// CommandChannel peer would, not the server's internals.
package client

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"

	"github.com/bnema/wm/internal/ipc"
)

const maxFrameLen = 16 << 20

// DefaultSocketPath mirrors cmd/wm's own default
// ("$XDG_RUNTIME_DIR/wm/wm.sock"), so a bare `wmctl msg ...` talks to a
// daemon started with no `-socket` override.
func DefaultSocketPath() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "wm", "wm.sock")
}

// Client is one connection to a running wm daemon's CommandChannel.
type Client struct {
	nc net.Conn
}

// Dial connects to the daemon's UNIX socket at path.
func Dial(path string) (*Client, error) {
	nc, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("client: connect %s: %w", path, err)
	}
	return &Client{nc: nc}, nil
}

func (c *Client) Close() error { return c.nc.Close() }

// Call sends req and waits for the matching Response. It must not be used
// after Subscribe, since a subscribed connection receives a stream of
// Event frames instead of one Response per Request.
func (c *Client) Call(req ipc.Request) (*ipc.Response, error) {
	if err := writeFrame(c.nc, req); err != nil {
		return nil, err
	}
	var resp ipc.Response
	if err := readFrame(c.nc, &resp); err != nil {
		return nil, fmt.Errorf("client: read response: %w", err)
	}
	return &resp, nil
}

// RunCommand sends a run_command request carrying the raw batch string.
func (c *Client) RunCommand(cmdline string) (*ipc.Response, error) {
	payload, err := json.Marshal(ipc.RunCommandPayload{Command: cmdline})
	if err != nil {
		return nil, err
	}
	return c.Call(ipc.Request{Type: ipc.RequestRunCommand, Payload: payload})
}

// GetTree sends a get_tree request.
func (c *Client) GetTree() (*ipc.Response, error) {
	return c.Call(ipc.Request{Type: ipc.RequestGetTree})
}

// GetWorkspaces sends a get_workspaces request.
func (c *Client) GetWorkspaces() (*ipc.Response, error) {
	return c.Call(ipc.Request{Type: ipc.RequestGetWorkspaces})
}

// GetBarConfig sends a get_bar_config request.
func (c *Client) GetBarConfig() (*ipc.Response, error) {
	return c.Call(ipc.Request{Type: ipc.RequestGetBarConfig})
}

// GetConfigSchema sends a get_config_schema request.
func (c *Client) GetConfigSchema() (*ipc.Response, error) {
	return c.Call(ipc.Request{Type: ipc.RequestGetConfigSchema})
}

// Subscribe registers this connection for the given event types. After
// this call, use Event (not Call) to read the broadcast stream; the
// server sends no Response frame for a subscribe request.
func (c *Client) Subscribe(events []string) error {
	payload, err := json.Marshal(ipc.SubscribePayload{Events: events})
	if err != nil {
		return err
	}
	return writeFrame(c.nc, ipc.Request{Type: ipc.RequestSubscribe, Payload: payload})
}

// Event reads one broadcast frame off a subscribed connection.
func (c *Client) Event() (ipc.Event, error) {
	var ev ipc.Event
	err := readFrame(c.nc, &ev)
	return ev, err
}

func writeFrame(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("client: marshal frame: %w", err)
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("client: write frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("client: write frame payload: %w", err)
	}
	return nil
}

func readFrame(r io.Reader, v any) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > maxFrameLen {
		return fmt.Errorf("client: frame length %d exceeds limit", n)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("client: read frame payload: %w", err)
	}
	return json.Unmarshal(payload, v)
}
