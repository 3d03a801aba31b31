package loop

import (
	"context"

	"github.com/bnema/wm/internal/command"
	"github.com/bnema/wm/internal/ipc"
)

// SyncCommandExecutor adapts a command.Interpreter's ExecuteBatch (or any
// equivalent closure) into an ipc.CommandExecutor that runs on the loop
// goroutine instead of the IPC connection goroutine that received the
// request. Without this, two `wmctl` clients issuing commands
// concurrently would run ExecuteBatch on two different goroutines at
// once — exactly the data race spec.md §5 rules out by dedicating the
// tree and bar state to one thread. execute is expected to close over the
// real Interpreter.
func SyncCommandExecutor(l *Loop, execute func(ctx context.Context, cmds []command.Command) []command.Reply) ipc.CommandExecutor {
	return func(ctx context.Context, cmds []command.Command) []command.Reply {
		var out []command.Reply
		err := l.PostSync(ctx, func(ctx context.Context) {
			out = execute(ctx, cmds)
		})
		if err != nil {
			return []command.Reply{{Success: false, Error: err.Error()}}
		}
		return out
	}
}
