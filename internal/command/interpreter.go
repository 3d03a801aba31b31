package command

import (
	"context"

	"github.com/bnema/wm/internal/backend"
	"github.com/bnema/wm/internal/logging"
	"github.com/bnema/wm/internal/match"
	"github.com/bnema/wm/internal/tree"
	"github.com/bnema/wm/internal/wmerr"
)

// Hooks are the process-level actions a command can trigger that the
// interpreter itself has no business performing directly (spec.md §4.3's
// `reload`/`restart`/`exit` rows, and the `bar` command's per-bar config
// mutation). Each is optional; a nil hook makes its command a no-op
// PolicyRefusal rather than a panic.
type Hooks struct {
	Reload       func() error
	Restart      func() error
	Exit         func()
	SetBarOption func(barID, key, value string) error

	// Notify broadcasts an IPC subscribe event (spec.md §6: `workspace`,
	// `mode`, `barconfig_update`, …) whenever a command changes state a
	// subscribed client might care about. nil makes every call a no-op.
	Notify func(eventType, change string, payload any)
}

func (in *Interpreter) notify(eventType, change string, payload any) {
	if in.hooks.Notify != nil {
		in.hooks.Notify(eventType, change, payload)
	}
}

// gapsState is the live, runtime-mutable gap configuration the `gaps`
// command adjusts — distinct from internal/config's static declared
// defaults, which only seed this state at startup.
type gapsState struct {
	globalInner, globalOuter int
	perWorkspace             map[string]struct{ inner, outer int }
}

// Interpreter is the Command Interpreter (spec.md §4.3). It is used from
// the single event-loop goroutine only; like internal/tree, it carries no
// locking of its own.
type Interpreter struct {
	tree    *tree.Tree
	backend backend.DisplayBackend
	log     *logging.Logger
	hooks   Hooks

	mode     string
	prevMode string
	gaps     gapsState

	autoBackAndForth bool
	needsRender      bool
}

// New builds an Interpreter over tr, issuing backend calls through be.
// be may be nil in tests that only exercise tree-mutating commands.
func New(tr *tree.Tree, be backend.DisplayBackend, log *logging.Logger, hooks Hooks) *Interpreter {
	if log == nil {
		log = logging.Nop()
	}
	return &Interpreter{
		tree:    tr,
		backend: be,
		log:     log.With("command"),
		hooks:   hooks,
		mode:    "default",
		gaps:    gapsState{perWorkspace: make(map[string]struct{ inner, outer int })},
	}
}

// NeedsRender reports whether any command since the last ConsumeRender call
// set the `needs_tree_render` flag (spec.md §4.3's end-of-batch contract).
func (in *Interpreter) NeedsRender() bool { return in.needsRender }

// ConsumeRender clears and returns the needs-render flag, for the event
// loop to call once per batch.
func (in *Interpreter) ConsumeRender() bool {
	v := in.needsRender
	in.needsRender = false
	return v
}

func (in *Interpreter) markRender() { in.needsRender = true }

// ExecuteBatch runs every command in order (spec.md §5: "mutations are
// ordered by textual order in the command string"), collecting one Reply
// per command. A failing command does not roll back prior commands in the
// batch. An error from the tree, including the fatal InvariantViolation and
// ResourceUnavailable kinds, becomes a failure Reply like any other: its
// kind is not returned to the caller, and the process is not stopped.
func (in *Interpreter) ExecuteBatch(ctx context.Context, cmds []Command) []Reply {
	replies := make([]Reply, 0, len(cmds))
	for _, c := range cmds {
		replies = append(replies, in.execute(ctx, c))
	}
	return replies
}

func (in *Interpreter) execute(ctx context.Context, c Command) Reply {
	switch c.Verb {
	case VerbFocus:
		return in.cmdFocus(c)
	case VerbMove:
		return in.cmdMove(c)
	case VerbMoveWorkspace:
		return in.cmdMoveToWorkspace(c)
	case VerbMoveOutput:
		return in.cmdMoveWorkspaceToOutput(c)
	case VerbResize:
		return in.cmdResize(c)
	case VerbSplit:
		return in.cmdSplit(c)
	case VerbLayout:
		return in.cmdLayout(c)
	case VerbFloating:
		return in.cmdFloating(c)
	case VerbBorder:
		return in.cmdBorder(c)
	case VerbMark:
		return in.cmdMark(c)
	case VerbUnmark:
		return in.cmdUnmark(c)
	case VerbKill:
		return in.cmdKill(ctx, c)
	case VerbFullscreen:
		return in.cmdFullscreen(c)
	case VerbWorkspace:
		return in.cmdWorkspace(c)
	case VerbRenameWS:
		return in.cmdRenameWorkspace(c)
	case VerbAppendLayout:
		return in.cmdAppendLayout(c)
	case VerbTitleFormat:
		return in.cmdTitleFormat(c)
	case VerbGaps:
		return in.cmdGaps(c)
	case VerbExec:
		return in.cmdExec(ctx, c)
	case VerbMode:
		return in.cmdMode(c)
	case VerbBar:
		return in.cmdBar(c)
	case VerbReload:
		return in.cmdReload()
	case VerbRestart:
		return in.cmdRestart()
	case VerbExit:
		return in.cmdExit()
	default:
		return parseFail("unrecognized command verb: " + string(c.Verb))
	}
}

// resolve runs the match engine over c.Criteria, translating a compile
// error into a ParseError reply and an empty result into CriteriaMismatch
// semantics (spec.md §7: "command had [...] but no window matched —
// returns success:false").
func (in *Interpreter) resolve(c Command) ([]*tree.Container, *Reply) {
	matches, err := match.Resolve(in.tree, c.Criteria)
	if err != nil {
		r := parseFail(err.Error())
		return nil, &r
	}
	if len(matches) == 0 {
		r := fail("no window matched criteria")
		return nil, &r
	}
	return matches, nil
}

// reportable converts a wmerr into a Reply: a ParseError becomes a
// parse-error reply, and every other kind, fatal kinds included, an
// ordinary failure reply.
func reportable(err error) Reply {
	if err == nil {
		return ok()
	}
	if wmerr.KindOf(err) == wmerr.KindParse {
		return parseFail(err.Error())
	}
	return fail(err.Error())
}
