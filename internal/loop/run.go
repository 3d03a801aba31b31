package loop

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/wm/internal/logging"
)

// Pump is one of the loop's reader goroutines: PumpXEvents, PumpStatus,
// WatchChildren, or ipc.Server.Serve all satisfy this shape.
type Pump func(ctx context.Context) error

// RunAll runs the loop's consumer (afterBatch fires once per drained
// batch, see Loop.Run) alongside every pump concurrently, cancelling all
// of them the moment either ctx is cancelled or any one of them returns a
// non-nil error — errgroup.WithContext is the direct mechanism spec.md §9
// describes only informally ("a poll over file descriptors for the X
// connection, IPC socket, status-source pipe, and SIGCHLD self-pipe"): in
// Go terms, one goroutine per descriptor, coordinated to live and die
// together.
func RunAll(ctx context.Context, l *Loop, log *logging.Logger, afterBatch func(ctx context.Context), pumps ...Pump) error {
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("loop.run")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return l.Run(gctx, afterBatch) })
	for _, p := range pumps {
		p := p
		g.Go(func() error { return p(gctx) })
	}

	err := g.Wait()
	if err != nil && gctx.Err() != nil && ctx.Err() == nil {
		log.Warnf("event loop stopped: %v", err)
	}
	return err
}
