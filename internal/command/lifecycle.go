package command

import "context"

// cmdMode implements `mode <name>` (spec.md §4.3) plus the SPEC_FULL.md §C
// supplement: `mode toggle` swaps between the current and previously-active
// mode instead of switching to a literal mode named "toggle".
func (in *Interpreter) cmdMode(c Command) Reply {
	name := c.str("name")
	if name == "" {
		return parseFail("mode: missing mode name")
	}
	if name == "toggle" {
		in.toggleMode()
		return ok()
	}
	in.setMode(name)
	return ok()
}

func (in *Interpreter) setMode(name string) {
	if name == in.mode {
		return
	}
	in.prevMode = in.mode
	in.mode = name
	in.markRender() // bar redraws the binding-mode indicator
	in.notify("mode", name, nil)
}

func (in *Interpreter) toggleMode() {
	if in.prevMode == "" {
		return
	}
	in.setMode(in.prevMode)
}

// CurrentMode returns the active binding mode name, for the bar's
// binding-mode indicator.
func (in *Interpreter) CurrentMode() string { return in.mode }

// cmdExec implements `exec [--no-startup-id] <cmd>` (spec.md §4.3):
// spawned fire-and-forget via the backend (spec.md §5).
func (in *Interpreter) cmdExec(ctx context.Context, c Command) Reply {
	if in.backend == nil {
		return fail("exec: no display backend configured")
	}
	cmdline := c.str("cmdline")
	if cmdline == "" {
		return parseFail("exec: missing command line")
	}
	startupID := ""
	if !c.boolArg("no_startup_id") {
		startupID = "auto"
	}
	if err := in.backend.Exec(ctx, cmdline, startupID); err != nil {
		return reportable(err)
	}
	return ok()
}

// cmdBar implements `bar mode|hidden_state … [id]` (spec.md §4.3):
// delegates the actual config mutation to the bar core via the
// SetBarOption hook, since this package has no bar-config state of its
// own.
func (in *Interpreter) cmdBar(c Command) Reply {
	if in.hooks.SetBarOption == nil {
		return fail("bar: no bar configured")
	}
	key := c.str("key")
	value := c.str("value")
	barID := c.str("bar_id")
	if key == "" {
		return parseFail("bar: missing option key")
	}
	if err := in.hooks.SetBarOption(barID, key, value); err != nil {
		return reportable(err)
	}
	in.markRender()
	in.notify("barconfig_update", key, value)
	return ok()
}

// cmdReload implements `reload` (spec.md §4.3): re-reads config without
// re-exec'ing.
func (in *Interpreter) cmdReload() Reply {
	if in.hooks.Reload == nil {
		return fail("reload: not supported")
	}
	if err := in.hooks.Reload(); err != nil {
		return reportable(err)
	}
	in.markRender()
	return ok()
}

// cmdRestart implements `restart` (spec.md §4.3/§5): the hook is
// responsible for serializing the tree and re-exec'ing in place, transferring
// the X connection.
func (in *Interpreter) cmdRestart() Reply {
	if in.hooks.Restart == nil {
		return fail("restart: not supported")
	}
	if err := in.hooks.Restart(); err != nil {
		return reportable(err)
	}
	return ok()
}

// cmdExit implements `exit` (spec.md §4.3).
func (in *Interpreter) cmdExit() Reply {
	if in.hooks.Exit == nil {
		return fail("exit: not supported")
	}
	in.hooks.Exit()
	return ok()
}
