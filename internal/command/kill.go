package command

import "context"

// cmdKill implements `kill [window|client]` (spec.md §4.3): asks the
// backend to close each matched window. The window and client forms are
// not told apart: the argument is not parsed, and every form makes the same
// backend.Kill call for each matched window.
func (in *Interpreter) cmdKill(ctx context.Context, c Command) Reply {
	if in.backend == nil {
		return fail("kill: no display backend configured")
	}
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	for _, m := range matches {
		if !m.HasWindow {
			continue
		}
		if err := in.backend.Kill(ctx, m.Window); err != nil {
			return reportable(err)
		}
	}
	return ok()
}
