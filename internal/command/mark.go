package command

import "github.com/bnema/wm/internal/wmerr"

// cmdMark implements `mark [--add|--toggle] <identifier>` (spec.md §4.3).
// A mark must not be put onto more than one window: when criteria match
// more than one container, the command is rejected and nothing is applied,
// matching i3's cmd_mark (original_source/src/commands.c:1083-1086).
func (in *Interpreter) cmdMark(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	mark := c.str("identifier")
	if mark == "" {
		return parseFail("mark: missing identifier")
	}
	if len(matches) > 1 {
		return reportable(wmerr.New(wmerr.KindCriteriaMismatch, "a mark must not be put onto more than one window"))
	}
	target := matches[0]
	if err := in.tree.SetMark(target, mark, c.boolArg("toggle")); err != nil {
		return reportable(err)
	}
	in.markRender()
	return ok()
}

// cmdUnmark implements `unmark [identifier]` (spec.md §4.3): clears a
// specific mark by name if given, or every mark on the matched
// container(s) otherwise.
func (in *Interpreter) cmdUnmark(c Command) Reply {
	mark := c.str("identifier")
	if mark != "" {
		in.tree.Unmark(nil, mark)
		in.markRender()
		return ok()
	}
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	for _, m := range matches {
		in.tree.Unmark(m, "")
	}
	in.markRender()
	return ok()
}
