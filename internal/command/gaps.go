package command

import "github.com/bnema/wm/internal/tree"

// cmdGaps implements `gaps inner|outer current|all set|plus|minus <px>`
// (spec.md §4.3): adjusts the live gap configuration the renderer consults,
// clamping every value to non-negative.
func (in *Interpreter) cmdGaps(c Command) Reply {
	dimension := c.str("dimension") // "inner" or "outer"
	scope := c.str("scope")         // "current" or "all"
	op := c.str("op")               // "set", "plus", "minus"
	px := c.intArg("px")

	if dimension != "inner" && dimension != "outer" {
		return parseFail("gaps: unrecognized dimension " + dimension)
	}

	if scope == "all" {
		switch dimension {
		case "inner":
			in.gaps.globalInner = applyGapOp(in.gaps.globalInner, op, px)
		case "outer":
			in.gaps.globalOuter = applyGapOp(in.gaps.globalOuter, op, px)
		}
		in.markRender()
		return ok()
	}

	ws := tree.WorkspaceOf(in.tree.Focused())
	if ws == nil {
		return fail("gaps: no focused workspace")
	}
	cur := in.gaps.perWorkspace[ws.WorkspaceName]
	switch dimension {
	case "inner":
		cur.inner = applyGapOp(cur.inner, op, px)
	case "outer":
		cur.outer = applyGapOp(cur.outer, op, px)
	}
	in.gaps.perWorkspace[ws.WorkspaceName] = cur
	in.markRender()
	return ok()
}

func applyGapOp(current int, op string, px int) int {
	var next int
	switch op {
	case "plus":
		next = current + px
	case "minus":
		next = current - px
	default: // "set"
		next = px
	}
	if next < 0 {
		return 0
	}
	return next
}

// GapsFor returns the effective inner/outer gap for a workspace, applying
// a per-workspace override over the global default (spec.md §6's
// declared defaults, overridden at runtime by `gaps`).
func (in *Interpreter) GapsFor(workspaceName string) (inner, outer int) {
	if override, ok := in.gaps.perWorkspace[workspaceName]; ok {
		return override.inner, override.outer
	}
	return in.gaps.globalInner, in.gaps.globalOuter
}

// SetGlobalGaps seeds the live gap state from config at startup.
func (in *Interpreter) SetGlobalGaps(inner, outer int) {
	in.gaps.globalInner = inner
	in.gaps.globalOuter = outer
}
