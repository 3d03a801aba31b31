package ipc

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/bnema/wm/internal/command"
	"github.com/bnema/wm/internal/logging"
	"github.com/bnema/wm/internal/wmerr"
)

// CommandParser parses a raw command batch string into already-typed
// Command values. The grammar itself is out of scope for this package
// (spec.md §4.3); the caller injects the parser (cmd/wm binds its
// parseBatch), the way DisplayBackend is injected into internal/backend's
// consumers.
type CommandParser func(raw string) ([]command.Command, error)

// CommandExecutor runs a parsed command batch against the live tree,
// typically *command.Interpreter.ExecuteBatch.
type CommandExecutor func(ctx context.Context, cmds []command.Command) []command.Reply

// TreeSnapshot returns the current serialized container tree
// (internal/tree.Tree.Serialize's output), for RequestGetTree.
type TreeSnapshot func() ([]byte, error)

// BarConfigSnapshot returns the current bar configuration as JSON, for
// RequestGetBarConfig.
type BarConfigSnapshot func() ([]byte, error)

// ConfigSchemaSnapshot returns the config's JSON Schema
// (internal/config.SchemaJSON's output), for RequestGetConfigSchema.
type ConfigSchemaSnapshot func() ([]byte, error)

// CommandChannel is the external interface spec.md §1 names as an
// out-of-scope collaborator ("The IPC socket ... modeled as a
// CommandChannel ... input"). Server is this module's implementation.
type CommandChannel interface {
	// Serve accepts connections until ctx is canceled or Close is called.
	Serve(ctx context.Context) error
	// Notify broadcasts an event to every subscribed connection matching
	// its type (internal/event.Notifier and internal/command.Hooks.Notify
	// both target this method).
	Notify(eventType, change string, payload any)
	Close() error
}

// Server implements CommandChannel over a UNIX domain socket at SocketPath.
type Server struct {
	SocketPath   string
	Parse        CommandParser
	Execute      CommandExecutor
	Tree         TreeSnapshot
	Workspaces   TreeSnapshot
	BarConfig    BarConfigSnapshot
	ConfigSchema ConfigSchemaSnapshot
	Log          *logging.Logger

	mu        sync.Mutex
	listener  net.Listener
	conns     map[*conn]struct{}
	closeOnce sync.Once
}

type conn struct {
	nc   net.Conn
	subs map[string]bool
	mu   sync.Mutex
}

func (c *conn) subscribedTo(eventType string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subs[eventType]
}

func (c *conn) subscribe(events []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs == nil {
		c.subs = make(map[string]bool, len(events))
	}
	for _, e := range events {
		c.subs[e] = true
	}
}

func (c *conn) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeFrame(c.nc, v)
}

// Serve removes any stale socket file, binds SocketPath, and accepts
// connections until ctx is canceled. Each connection is handled on its own
// goroutine; the socket is SO_PEERCRED-logged once per connection (spec.md
// SPEC_FULL.md §B: "log the connecting PID").
func (s *Server) Serve(ctx context.Context) error {
	log := s.log()
	_ = os.Remove(s.SocketPath)

	ln, err := net.Listen("unix", s.SocketPath)
	if err != nil {
		return wmerr.Wrap(wmerr.KindResourceUnavailable, err, "ipc: listen on %s", s.SocketPath)
	}
	s.mu.Lock()
	s.listener = ln
	s.conns = make(map[*conn]struct{})
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	for {
		nc, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return wmerr.Wrap(wmerr.KindProtocol, err, "ipc: accept")
			}
		}
		logPeerCred(log, nc)
		c := &conn{nc: nc}
		s.mu.Lock()
		s.conns[c] = struct{}{}
		s.mu.Unlock()
		go s.handle(ctx, c)
	}
}

// Close stops accepting new connections and closes every live one.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.listener != nil {
			err = s.listener.Close()
		}
		for c := range s.conns {
			_ = c.nc.Close()
		}
	})
	return err
}

// Notify broadcasts an event frame to every connection subscribed to
// eventType (spec.md §6's six broadcast kinds).
func (s *Server) Notify(eventType, change string, payload any) {
	s.mu.Lock()
	conns := make([]*conn, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	ev := Event{Type: eventType, Change: change, Payload: payload}
	for _, c := range conns {
		if c.subscribedTo(eventType) {
			_ = c.send(ev)
		}
	}
}

func (s *Server) handle(ctx context.Context, c *conn) {
	defer func() {
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
		_ = c.nc.Close()
	}()
	for {
		var req Request
		if err := readFrame(c.nc, &req); err != nil {
			return
		}
		resp := s.dispatch(ctx, c, req)
		if resp == nil {
			continue // subscribe: no immediate reply, events stream instead
		}
		if err := c.send(resp); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(ctx context.Context, c *conn, req Request) *Response {
	switch req.Type {
	case RequestRunCommand:
		return s.runCommand(ctx, req)
	case RequestGetTree:
		return s.snapshot(s.Tree)
	case RequestGetWorkspaces:
		return s.snapshot(s.Workspaces)
	case RequestGetBarConfig:
		return s.snapshot(s.BarConfig)
	case RequestGetConfigSchema:
		return s.snapshot(s.ConfigSchema)
	case RequestSubscribe:
		var payload SubscribePayload
		_ = json.Unmarshal(req.Payload, &payload)
		c.subscribe(payload.Events)
		return nil
	default:
		return &Response{Error: "ipc: unrecognized request type " + string(req.Type)}
	}
}

func (s *Server) runCommand(ctx context.Context, req Request) *Response {
	if s.Parse == nil || s.Execute == nil {
		return &Response{Error: "ipc: run_command not supported"}
	}
	var payload RunCommandPayload
	if err := json.Unmarshal(req.Payload, &payload); err != nil {
		return &Response{Error: "ipc: malformed run_command payload: " + err.Error()}
	}
	cmds, err := s.Parse(payload.Command)
	if err != nil {
		return &Response{Results: []command.Reply{{Success: false, Error: err.Error(), ParseError: true}}}
	}
	return &Response{Results: s.Execute(ctx, cmds)}
}

func (s *Server) snapshot(fn func() ([]byte, error)) *Response {
	if fn == nil {
		return &Response{Error: "ipc: not supported"}
	}
	data, err := fn()
	if err != nil {
		return &Response{Error: err.Error()}
	}
	return &Response{Data: data}
}

func (s *Server) log() *logging.Logger {
	if s.Log == nil {
		return logging.Nop()
	}
	return s.Log.With("ipc")
}

// logPeerCred logs the connecting process's PID/UID via SO_PEERCRED
// (golang.org/x/sys/unix), matching the teacher's own use of
// golang.org/x/sys/unix for OS-level introspection
// (cmd/dumber/main_unix.go's RLIMIT_CORE handling) rather than shelling out.
func logPeerCred(log *logging.Logger, nc net.Conn) {
	uc, ok := nc.(*net.UnixConn)
	if !ok {
		return
	}
	raw, err := uc.SyscallConn()
	if err != nil {
		return
	}
	var cred *unix.Ucred
	var credErr error
	_ = raw.Control(func(fd uintptr) {
		cred, credErr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if credErr != nil || cred == nil {
		return
	}
	log.Debugf("ipc: connection from pid=%d uid=%d gid=%d", cred.Pid, cred.Uid, cred.Gid)
}

var _ CommandChannel = (*Server)(nil)
