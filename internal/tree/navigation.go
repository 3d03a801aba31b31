package tree

import "sort"

// Workspaces returns every RoleWorkspace container in creation order
// (container ID order), regardless of which output currently hosts them.
func (t *Tree) Workspaces() []*Container {
	var out []*Container
	Walk(t.root, func(c *Container) bool {
		if c.Role == RoleWorkspace {
			out = append(out, c)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// NextWorkspace implements ContainerTree.workspace_next (spec.md §4.1):
// cycles to the workspace created immediately after current, wrapping
// around to the first. Returns nil if current is the only workspace.
func (t *Tree) NextWorkspace(current *Container) *Container {
	all := t.Workspaces()
	if len(all) < 2 {
		return nil
	}
	idx := indexOf(all, current)
	if idx < 0 {
		return all[0]
	}
	return all[(idx+1)%len(all)]
}

// PrevWorkspace implements ContainerTree.workspace_prev (spec.md §4.1): the
// mirror of NextWorkspace, cycling to the workspace created immediately
// before current.
func (t *Tree) PrevWorkspace(current *Container) *Container {
	all := t.Workspaces()
	if len(all) < 2 {
		return nil
	}
	idx := indexOf(all, current)
	if idx < 0 {
		return all[len(all)-1]
	}
	return all[(idx-1+len(all))%len(all)]
}

// SwitchToWorkspace implements the `workspace <name>` command's
// back-and-forth semantics (spec.md §4.3, §8 scenario 3): switching to the
// workspace that is already focused, with autoBackAndForth enabled,
// redirects to whichever workspace was focused immediately before it
// instead of being a no-op. Every other switch simply focuses target and
// records the previously-focused workspace's name for a future
// back-and-forth. Returns the workspace actually switched to (nil if the
// switch did not happen).
func (t *Tree) SwitchToWorkspace(target *Container, autoBackAndForth bool) *Container {
	if target == nil || target.Role != RoleWorkspace {
		return nil
	}
	current := WorkspaceOf(t.focused)

	if autoBackAndForth && current != nil && current == target {
		if t.backAndForth == "" || t.backAndForth == current.WorkspaceName {
			return nil
		}
		prev, ok := t.WorkspaceByName(t.backAndForth)
		if !ok {
			return nil
		}
		t.backAndForth = current.WorkspaceName
		t.Focus(prev)
		return prev
	}

	if current != nil && current != target {
		t.backAndForth = current.WorkspaceName
	}
	t.Focus(target)
	return target
}

// centerOf returns the geometric center point of a container's rect.
func centerOf(c *Container) (x, y float64) {
	return float64(c.Rect.X) + float64(c.Rect.W)/2, float64(c.Rect.Y) + float64(c.Rect.H)/2
}

// inDirection reports whether candidate's center lies in the given
// direction relative to origin's center.
func inDirection(origin, candidate *Container, direction Direction) bool {
	ox, oy := centerOf(origin)
	cx, cy := centerOf(candidate)
	switch direction {
	case DirLeft:
		return cx < ox
	case DirRight:
		return cx > ox
	case DirUp:
		return cy < oy
	case DirDown:
		return cy > oy
	}
	return false
}

func distance(origin, candidate *Container) float64 {
	ox, oy := centerOf(origin)
	cx, cy := centerOf(candidate)
	dx, dy := cx-ox, cy-oy
	return dx*dx + dy*dy
}

// FocusDirection implements ContainerTree.focus_direction (spec.md §4.1):
// finds the leaf whose rect center is nearest origin's center among every
// leaf lying in the requested direction, tried first within origin's own
// workspace and falling back to the whole tree (so focus can cross
// outputs). Ties are broken by lowest container ID, for determinism.
//
// Candidates are found by geometric position rather than tree adjacency
// alone, since a direction like "right" may need to cross several nested
// split containers to reach the nearest visible window.
func FocusDirection(root, origin *Container, direction Direction) *Container {
	best := bestCandidate(origin, direction, WorkspaceOf(origin))
	if best == nil {
		best = bestCandidate(origin, direction, root)
	}
	return best
}

func bestCandidate(origin *Container, direction Direction, scope *Container) *Container {
	if scope == nil {
		return nil
	}
	var best *Container
	var bestDist float64
	Walk(scope, func(c *Container) bool {
		if c.Role != RoleLeafWindow || c == origin {
			return true
		}
		if !inDirection(origin, c, direction) {
			return true
		}
		d := distance(origin, c)
		if best == nil || d < bestDist || (d == bestDist && c.ID < best.ID) {
			best = c
			bestDist = d
		}
		return true
	})
	return best
}
