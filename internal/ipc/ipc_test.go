package ipc

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/wm/internal/command"
)

func testSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), fmt.Sprintf("wm-ipc-test-%d.sock", time.Now().UnixNano()))
}

func startServer(t *testing.T, s *Server) (stop func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(ctx) }()
	require.Eventually(t, func() bool {
		c, err := dial(s.SocketPath)
		if err != nil {
			return false
		}
		_ = c.Close()
		return true
	}, time.Second, 5*time.Millisecond)
	return func() {
		cancel()
		_ = s.Close()
		<-errCh
	}
}

func dial(path string) (*clientConn, error) {
	nc, err := dialUnix(path)
	if err != nil {
		return nil, err
	}
	return &clientConn{nc: nc}, nil
}

func TestRunCommandRoundTrip(t *testing.T) {
	sock := testSocketPath(t)
	s := &Server{
		SocketPath: sock,
		Parse: func(raw string) ([]command.Command, error) {
			return []command.Command{{Verb: command.VerbWorkspace, Args: map[string]any{"selector": raw}}}, nil
		},
		Execute: func(ctx context.Context, cmds []command.Command) []command.Reply {
			out := make([]command.Reply, len(cmds))
			for i := range cmds {
				out[i] = command.Reply{Success: true}
			}
			return out
		},
	}
	stop := startServer(t, s)
	defer stop()

	c, err := dial(sock)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.writeReq(Request{Type: RequestRunCommand, Payload: mustJSON(RunCommandPayload{Command: "1"})}))
	var resp Response
	require.NoError(t, c.readResp(&resp))
	require.Len(t, resp.Results, 1)
	require.True(t, resp.Results[0].Success)
}

func TestRunCommandParseFailureSurfacesAsReply(t *testing.T) {
	sock := testSocketPath(t)
	s := &Server{
		SocketPath: sock,
		Parse: func(raw string) ([]command.Command, error) {
			return nil, fmt.Errorf("bad command %q", raw)
		},
		Execute: func(ctx context.Context, cmds []command.Command) []command.Reply { return nil },
	}
	stop := startServer(t, s)
	defer stop()

	c, err := dial(sock)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.writeReq(Request{Type: RequestRunCommand, Payload: mustJSON(RunCommandPayload{Command: "bogus"})}))
	var resp Response
	require.NoError(t, c.readResp(&resp))
	require.Len(t, resp.Results, 1)
	require.False(t, resp.Results[0].Success)
	require.True(t, resp.Results[0].ParseError)
}

func TestGetTreeReturnsSnapshotData(t *testing.T) {
	sock := testSocketPath(t)
	s := &Server{
		SocketPath: sock,
		Tree:       func() ([]byte, error) { return []byte(`{"role":"root"}`), nil },
	}
	stop := startServer(t, s)
	defer stop()

	c, err := dial(sock)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.writeReq(Request{Type: RequestGetTree}))
	var resp Response
	require.NoError(t, c.readResp(&resp))
	require.JSONEq(t, `{"role":"root"}`, string(resp.Data))
}

func TestUnknownRequestTypeReturnsError(t *testing.T) {
	sock := testSocketPath(t)
	s := &Server{SocketPath: sock}
	stop := startServer(t, s)
	defer stop()

	c, err := dial(sock)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.writeReq(Request{Type: "nonsense"}))
	var resp Response
	require.NoError(t, c.readResp(&resp))
	require.NotEmpty(t, resp.Error)
}

func TestSubscribeReceivesOnlyMatchingBroadcasts(t *testing.T) {
	sock := testSocketPath(t)
	s := &Server{SocketPath: sock}
	stop := startServer(t, s)
	defer stop()

	c, err := dial(sock)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.writeReq(Request{Type: RequestSubscribe, Payload: mustJSON(SubscribePayload{Events: []string{"workspace"}})}))

	// give the server a moment to register the subscription before
	// broadcasting, since subscribe has no synchronous reply to wait on.
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		for conn := range s.conns {
			if conn.subscribedTo("workspace") {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	s.Notify("mode", "default", nil)  // not subscribed, must not arrive
	s.Notify("workspace", "focus", "2")

	var ev Event
	require.NoError(t, c.readEvent(&ev))
	require.Equal(t, "workspace", ev.Type)
	require.Equal(t, "focus", ev.Change)
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
