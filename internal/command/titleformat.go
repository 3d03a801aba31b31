package command

// cmdTitleFormat implements `title_format <format>` (spec.md §4.3): stores
// a per-window title template the renderer substitutes %title into. A
// format of exactly "%title" is stored as the unset value (the renderer's
// default already renders the title verbatim).
func (in *Interpreter) cmdTitleFormat(c Command) Reply {
	matches, errReply := in.resolve(c)
	if errReply != nil {
		return *errReply
	}
	format := c.str("format")
	if format == "%title" {
		format = ""
	}
	for _, m := range matches {
		m.TitleFormat = format
	}
	in.markRender()
	return ok()
}
