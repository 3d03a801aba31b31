// Package ipc implements the CommandChannel external interface (spec.md
// §6): a length-prefixed message protocol over a UNIX socket carrying the
// same command language the interpreter parses, JSON replies, and a
// subscribe/broadcast mechanism for workspace/output/mode/window/
// barconfig_update/binding events.
package ipc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/bnema/wm/internal/command"
)

// maxFrameLen guards against a misbehaving or malicious peer claiming an
// absurd frame length and exhausting memory before the read even starts.
const maxFrameLen = 16 << 20

// writeFrame encodes v as JSON and writes it length-prefixed: a 4-byte
// big-endian length, then the JSON bytes. Grounded on spec.md §6's literal
// "length-prefixed messages over a UNIX socket"; the framing itself has no
// ecosystem library dedicated to it worth pulling in over encoding/binary
// + encoding/json, which is exactly what it is for.
func writeFrame(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ipc: marshal frame: %w", err)
	}
	var header [4]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("ipc: write frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("ipc: write frame payload: %w", err)
	}
	return nil
}

// readFrame reads one length-prefixed JSON frame and unmarshals it into v.
func readFrame(r io.Reader, v any) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > maxFrameLen {
		return fmt.Errorf("ipc: frame length %d exceeds limit", n)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return fmt.Errorf("ipc: read frame payload: %w", err)
	}
	if len(payload) == 0 {
		return nil
	}
	return json.Unmarshal(payload, v)
}

// RequestType selects which CommandChannel operation a Request invokes.
type RequestType string

const (
	// RequestRunCommand carries a raw command batch string in Payload,
	// parsed and executed the same way the key-binding dispatcher would.
	RequestRunCommand RequestType = "run_command"
	// RequestGetTree returns the serialized container tree (the same
	// format internal/tree.Serialize produces).
	RequestGetTree RequestType = "get_tree"
	// RequestGetWorkspaces returns a summary of every known workspace.
	RequestGetWorkspaces RequestType = "get_workspaces"
	// RequestGetBarConfig returns the current bar configuration snapshot.
	RequestGetBarConfig RequestType = "get_bar_config"
	// RequestGetConfigSchema returns the JSON Schema internal/config.Schema
	// generates, so a client can introspect the on-disk config format
	// without a copy of the Config struct.
	RequestGetConfigSchema RequestType = "get_config_schema"
	// RequestSubscribe registers the connection for a set of event types;
	// the connection then also receives an Event frame for each subscribed
	// event, and its later requests are still answered with Responses.
	RequestSubscribe RequestType = "subscribe"
)

// Request is one client message.
type Request struct {
	Type    RequestType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// SubscribePayload is RequestSubscribe's Payload shape.
type SubscribePayload struct {
	Events []string `json:"events"`
}

// RunCommandPayload is RequestRunCommand's Payload shape: the raw,
// unparsed command batch text (spec.md §4.3: "grammar out of scope" —
// this package never parses it itself, delegating to an injected Parser).
type RunCommandPayload struct {
	Command string `json:"command"`
}

// Response is the server's reply to any Request other than subscribe,
// which instead receives a stream of Event frames.
type Response struct {
	// Results carries one entry per parsed command for RequestRunCommand
	// (spec.md §6: "results are returned as JSON objects with
	// {success, error?}"); empty for every other request type.
	Results []command.Reply `json:"results,omitempty"`
	// Data carries the raw payload for get_tree/get_workspaces/
	// get_bar_config/get_config_schema requests.
	Data json.RawMessage `json:"data,omitempty"`
	// Error is set when the request itself (not an individual command)
	// could not be served, e.g. an unknown request type.
	Error string `json:"error,omitempty"`
}

// Event is one subscribe-broadcast frame (spec.md §6's six event kinds).
type Event struct {
	Type    string `json:"type"`
	Change  string `json:"change,omitempty"`
	Payload any    `json:"payload,omitempty"`
}
