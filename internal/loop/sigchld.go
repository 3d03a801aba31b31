package loop

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/bnema/wm/internal/logging"
)

// ChildExit is one reaped child's exit status, posted as a Job after a
// SIGCHLD wakes WatchChildren (spec.md §5: "external child processes
// [...] their exit triggers a SIGCHLD-driven cleanup event").
type ChildExit struct {
	PID      int
	ExitCode int
	Signaled bool
	Signal   syscall.Signal
}

// WatchChildren waits for SIGCHLD and, on each delivery, reaps every
// exited child with a non-blocking wait4 loop, posting one Job per
// reaped PID onto l. Go's os/signal package already does its own
// self-pipe handoff from the runtime's signal handler to a buffered
// channel; unix.Wait4 with WNOHANG is what turns "a SIGCHLD arrived" into
// the (pid, status) pairs the spec's cleanup event needs, since the
// signal itself carries no payload and several children can have exited
// before the handler ever runs.
func WatchChildren(ctx context.Context, l *Loop, log *logging.Logger, onExit func(ctx context.Context, ce ChildExit)) error {
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("loop.sigchld")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGCHLD)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sigCh:
			if err := reapExited(ctx, l, log, onExit); err != nil {
				return err
			}
		}
	}
}

func reapExited(ctx context.Context, l *Loop, log *logging.Logger, onExit func(ctx context.Context, ce ChildExit)) error {
	for {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
		if err != nil {
			if err == unix.ECHILD {
				return nil
			}
			if err == unix.EINTR {
				continue
			}
			log.Errorf("wait4: %v", err)
			return nil
		}
		if pid <= 0 {
			return nil
		}

		ce := ChildExit{PID: pid}
		switch {
		case ws.Exited():
			ce.ExitCode = ws.ExitStatus()
		case ws.Signaled():
			ce.Signaled = true
			ce.Signal = ws.Signal()
		}
		if err := l.Post(ctx, func(ctx context.Context) { onExit(ctx, ce) }); err != nil {
			return err
		}
	}
}
