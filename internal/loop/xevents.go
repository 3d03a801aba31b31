package loop

import (
	"context"
	"errors"

	"github.com/bnema/wm/internal/event"
	"github.com/bnema/wm/internal/logging"
)

// XEventSource is the X11 event-pump collaborator (spec.md §5: "X
// connection: owned exclusively by the event loop; all protocol calls
// issued from there"). Next blocks until the next protocol event arrives,
// ctx is cancelled, or the connection fails. A concrete implementation
// lives alongside the DisplayBackend outside this module, the same
// externalize-as-capability shape as backend.DisplayBackend itself.
type XEventSource interface {
	Next(ctx context.Context) (event.Event, error)
}

// PumpXEvents reads src in a tight loop and posts one Job per event onto
// l, where onEvent is expected to be the Dispatcher's Dispatch method (or
// a closure wrapping it with error logging). It returns when ctx is
// cancelled or src.Next returns a non-context error.
func PumpXEvents(ctx context.Context, l *Loop, src XEventSource, log *logging.Logger, onEvent func(ctx context.Context, ev event.Event)) error {
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("loop.x")
	for {
		ev, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		if err := l.Post(ctx, func(ctx context.Context) { onEvent(ctx, ev) }); err != nil {
			return err
		}
	}
}
