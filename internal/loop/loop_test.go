package loop

import (
	"context"
	"os/exec"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bnema/wm/internal/command"
	"github.com/bnema/wm/internal/event"
	"github.com/bnema/wm/internal/status"
	"github.com/bnema/wm/internal/tree"
)

func TestPostSyncBlocksUntilJobCompletes(t *testing.T) {
	l := New(4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx, nil)

	var val int32
	require.NoError(t, l.PostSync(ctx, func(context.Context) { atomic.StoreInt32(&val, 42) }))
	require.EqualValues(t, 42, atomic.LoadInt32(&val))
}

func TestPostReturnsContextErrorWhenQueueFull(t *testing.T) {
	l := New(1, nil)
	// nobody is draining, so the one slot of queue capacity fills immediately.
	require.NoError(t, l.Post(context.Background(), func(context.Context) {}))

	cctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := l.Post(cctx, func(context.Context) {})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunBatchesJobsQueuedBetweenPolls(t *testing.T) {
	l := New(8, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var batches int32
	var ran int32
	go func() { _ = l.Run(ctx, func(context.Context) { atomic.AddInt32(&batches, 1) }) }()

	release := make(chan struct{})
	require.NoError(t, l.Post(ctx, func(context.Context) {
		atomic.AddInt32(&ran, 1)
		<-release
	}))
	// give the loop goroutine time to dequeue and block on release before
	// the next two jobs are queued behind it, so all three land in one batch.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, l.Post(ctx, func(context.Context) { atomic.AddInt32(&ran, 1) }))
	require.NoError(t, l.Post(ctx, func(context.Context) { atomic.AddInt32(&ran, 1) }))
	close(release)

	require.Eventually(t, func() bool { return atomic.LoadInt32(&ran) == 3 }, time.Second, time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt32(&batches))
}

type fakeXSource struct {
	events []event.Event
	i      int
}

func (f *fakeXSource) Next(ctx context.Context) (event.Event, error) {
	if f.i >= len(f.events) {
		<-ctx.Done()
		return event.Event{}, ctx.Err()
	}
	ev := f.events[f.i]
	f.i++
	return ev, nil
}

func TestPumpXEventsDispatchesInOrderThenStopsOnCancel(t *testing.T) {
	l := New(8, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx, nil) }()

	src := &fakeXSource{events: []event.Event{
		{Kind: event.KindMap, Window: tree.WindowHandle(1)},
		{Kind: event.KindUnmap, Window: tree.WindowHandle(2)},
	}}

	var mu sync.Mutex
	var got []event.Event
	done := make(chan error, 1)
	go func() {
		done <- PumpXEvents(ctx, l, src, nil, func(_ context.Context, ev event.Event) {
			mu.Lock()
			got = append(got, ev)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, time.Millisecond)

	mu.Lock()
	require.Equal(t, event.KindMap, got[0].Kind)
	require.Equal(t, event.KindUnmap, got[1].Kind)
	mu.Unlock()

	cancel()
	require.NoError(t, <-done)
}

func TestPumpStatusForwardsParsedUpdates(t *testing.T) {
	l := New(8, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx, nil) }()

	src, err := status.NewSource(ctx, `printf '{"version":1}\n[\n[{"full_text":"a"}]\n'`, nil)
	require.NoError(t, err)
	defer src.Close()

	var mu sync.Mutex
	var got []status.Update
	go func() {
		_ = PumpStatus(ctx, l, src, nil, func(_ context.Context, u status.Update) {
			mu.Lock()
			got = append(got, u)
			mu.Unlock()
		}, nil)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	require.Len(t, got[0].Blocks, 1)
	require.Equal(t, "a", got[0].Blocks[0].FullText)
	mu.Unlock()
}

func TestWatchChildrenReapsExitedProcess(t *testing.T) {
	l := New(8, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx, nil) }()

	var mu sync.Mutex
	var got []ChildExit
	go func() {
		_ = WatchChildren(ctx, l, nil, func(_ context.Context, ce ChildExit) {
			mu.Lock()
			got = append(got, ce)
			mu.Unlock()
		})
	}()

	cmd := exec.Command("true")
	require.NoError(t, cmd.Start())
	pid := cmd.Process.Pid

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, ce := range got {
			if ce.PID == pid {
				return ce.ExitCode == 0
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSyncCommandExecutorRunsOnLoopGoroutine(t *testing.T) {
	l := New(4, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx, nil) }()

	exec := SyncCommandExecutor(l, func(_ context.Context, cmds []command.Command) []command.Reply {
		return []command.Reply{{Success: true}}
	})

	replies := exec(ctx, []command.Command{{}})
	require.Len(t, replies, 1)
	require.True(t, replies[0].Success)
}
