package loop

import (
	"context"

	"github.com/bnema/wm/internal/logging"
	"github.com/bnema/wm/internal/status"
)

// PumpStatus forwards every status.Update and parse error from src onto l
// as Jobs, until ctx is cancelled or src's channels are closed (Close was
// called on the source). onUpdate is expected to end up calling
// bar.Core.SetStatusBlocks; onErr logs a malformed status line without
// tearing down the loop (spec.md §7: status-source protocol violations
// are not fatal).
func PumpStatus(ctx context.Context, l *Loop, src *status.Source, log *logging.Logger, onUpdate func(ctx context.Context, u status.Update), onErr func(ctx context.Context, err error)) error {
	if log == nil {
		log = logging.Nop()
	}
	log = log.With("loop.status")
	updates := src.Updates()
	errs := src.Errs()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			if err := l.Post(ctx, func(ctx context.Context) { onUpdate(ctx, u) }); err != nil {
				return err
			}
		case err, ok := <-errs:
			if !ok {
				continue
			}
			if onErr == nil {
				continue
			}
			if perr := l.Post(ctx, func(ctx context.Context) { onErr(ctx, err) }); perr != nil {
				return perr
			}
		}
	}
}
