// Package loop implements the single-threaded cooperative event loop
// (spec.md §5: "single-threaded cooperative event loop. The entire tree
// and bar state is accessed from one thread. No locks; no data races by
// construction") and its poll/batch suspension model (spec.md §9: "a poll
// over file descriptors for the X connection, IPC socket, status-source
// pipe, and SIGCHLD self-pipe; the loop batches X events by draining the
// queue between polls").
//
// Everything that can block — reading the X connection, reading the
// status-source pipe, waiting for SIGCHLD, accepting IPC connections —
// runs on its own goroutine. None of those goroutines touch the tree,
// bar, or command interpreter directly; each one only ever posts a Job
// onto the Loop, which runs it on the single consuming goroutine. That is
// the whole of this package's job: everything else (what a Job actually
// does) belongs to the collaborators cmd/wm wires together.
package loop

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/bnema/wm/internal/logging"
)

// Job is one unit of work run on the loop's single goroutine.
type Job func(ctx context.Context)

// Loop is the single-threaded event consumer. Reader goroutines (see
// PumpXEvents, PumpStatus, WatchChildren) post Jobs to it; Run drains them
// one batch at a time.
type Loop struct {
	jobs chan Job
	sem  *semaphore.Weighted
	log  *logging.Logger
}

// New builds a Loop with the given queue depth. The depth also bounds the
// number of Jobs that may be in flight (posted but not yet run) at once —
// Post blocks once the queue is full, giving the reader goroutines
// backpressure instead of an unbounded buffer.
func New(queueDepth int, log *logging.Logger) *Loop {
	if queueDepth <= 0 {
		queueDepth = 64
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Loop{
		jobs: make(chan Job, queueDepth),
		sem:  semaphore.NewWeighted(int64(queueDepth)),
		log:  log.With("loop"),
	}
}

// Post enqueues job to run on the loop goroutine. It blocks until there is
// queue room or ctx is done.
func (l *Loop) Post(ctx context.Context, job Job) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	select {
	case l.jobs <- job:
		return nil
	case <-ctx.Done():
		l.sem.Release(1)
		return ctx.Err()
	}
}

// PostSync runs job on the loop goroutine and blocks the caller until it
// completes, for collaborators that need a synchronous reply — the IPC
// executor (see SyncCommandExecutor) and cmd/wm's IPC tree and workspace
// snapshots.
func (l *Loop) PostSync(ctx context.Context, job Job) error {
	done := make(chan struct{})
	err := l.Post(ctx, func(ctx context.Context) {
		defer close(done)
		job(ctx)
	})
	if err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains Jobs until ctx is cancelled. Each poll wakes on the first
// queued Job, then drains whatever else has queued up behind it before
// calling afterBatch once — spec.md §4.3's "at end of a batch, the
// renderer walks the tree once", generalized to every batch-producing
// source, not only command batches. afterBatch may be nil.
func (l *Loop) Run(ctx context.Context, afterBatch func(ctx context.Context)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job := <-l.jobs:
			l.runOne(ctx, job)
			l.drainQueued(ctx)
			if afterBatch != nil {
				afterBatch(ctx)
			}
		}
	}
}

func (l *Loop) runOne(ctx context.Context, job Job) {
	defer l.sem.Release(1)
	job(ctx)
}

// drainQueued runs every Job already sitting in the queue without
// blocking, so a burst of same-type events (several ConfigureRequests
// arriving back to back, a status refresh plus an IPC command landing in
// the same tick) runs as one batch instead of one render per event.
func (l *Loop) drainQueued(ctx context.Context) {
	for {
		select {
		case job := <-l.jobs:
			l.runOne(ctx, job)
		default:
			return
		}
	}
}
