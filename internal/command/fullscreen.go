package command

import "github.com/bnema/wm/internal/tree"

// cmdFullscreen implements `fullscreen enable|disable|toggle [global]`
// (spec.md §4.3), preserving invariant 5 (at most one Global fullscreen
// tree-wide, at most one Output fullscreen per output).
func (in *Interpreter) cmdFullscreen(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	mode := tree.FullscreenOutput
	if c.boolArg("global") {
		mode = tree.FullscreenGlobal
	}
	action := c.str("mode") // "enable", "disable", "toggle"

	for _, m := range matches {
		switch {
		case action == "disable":
			if m.Fullscreen == tree.FullscreenNone {
				continue
			}
			if err := in.tree.ToggleFullscreen(m, m.Fullscreen); err != nil {
				return reportable(err)
			}
		case action == "toggle" && m.Fullscreen == mode:
			if err := in.tree.ToggleFullscreen(m, mode); err != nil {
				return reportable(err)
			}
		default: // enable, or toggle while not already in this mode
			if m.Fullscreen == mode {
				continue
			}
			if err := in.tree.ToggleFullscreen(m, mode); err != nil {
				return reportable(err)
			}
		}
	}
	in.markRender()
	return ok()
}
