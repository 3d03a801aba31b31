package match

import (
	"sort"

	"github.com/bnema/wm/internal/tree"
	"github.com/bnema/wm/internal/wmerr"
)

// Resolve implements the Match Engine (spec.md §4.2): given a criteria
// record and the tree's full container registry, returns an ordered list
// of matched containers. An empty criteria resolves to a single-element
// slice holding the currently focused container, matching the invariant
// that a bare command with no `[...]` operates on focus alone.
//
// con_id and window_id are treated as exact, narrowing matches: if either
// is set, only the single container with that identity can match (and it
// still has to pass every other field in the criteria, if any are also
// set). The urgent selector, when set without other fields, picks the
// single most (or least) recently urgent container across the whole
// registry rather than intersecting with anything else.
func Resolve(t *tree.Tree, c Criteria) ([]*tree.Container, error) {
	if c.IsEmpty() {
		if focused := t.Focused(); focused != nil {
			return []*tree.Container{focused}, nil
		}
		return nil, nil
	}

	if c.HasConID {
		con, ok := t.ByID(c.ContainerID)
		if !ok {
			return nil, nil
		}
		if matchesExtra(con, c) {
			return []*tree.Container{con}, nil
		}
		return nil, nil
	}
	if c.HasWindowID {
		var found *tree.Container
		for _, con := range t.All() {
			if con.HasWindow && con.Window == c.WindowID {
				found = con
				break
			}
		}
		if found == nil || !matchesExtra(found, c) {
			return nil, nil
		}
		return []*tree.Container{found}, nil
	}

	cm, err := compileCriteria(c)
	if err != nil {
		return nil, wmerr.Wrap(wmerr.KindParse, err, "compile match criteria")
	}

	var out []*tree.Container
	for _, con := range t.All() {
		if c.WindowType != nil && (con.Role != tree.RoleLeafWindow || con.WindowType != *c.WindowType) {
			continue
		}
		if !cm.matches(con) {
			continue
		}
		out = append(out, con)
	}

	if c.Urgent != UrgentNone {
		out = filterUrgentSelector(out, c.Urgent)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// matchesExtra checks the non-identity fields of c against con, used when
// con_id/window_id has already narrowed the candidate to a single
// container but other fields were also supplied.
func matchesExtra(con *tree.Container, c Criteria) bool {
	extra := c
	extra.HasConID = false
	extra.HasWindowID = false
	if extra.IsEmpty() {
		return true
	}
	cm, err := compileCriteria(extra)
	if err != nil {
		return false
	}
	if extra.WindowType != nil && (con.Role != tree.RoleLeafWindow || con.WindowType != *extra.WindowType) {
		return false
	}
	return cm.matches(con)
}

// filterUrgentSelector narrows candidates to the single most/least
// recently urgent container, per spec.md §4.2 ("urgent=Latest selects the
// single urgent container with the newest urgent timestamp").
func filterUrgentSelector(candidates []*tree.Container, sel UrgentSelector) []*tree.Container {
	var best *tree.Container
	for _, con := range candidates {
		if !con.Urgent {
			continue
		}
		if best == nil {
			best = con
			continue
		}
		switch sel {
		case UrgentLatest:
			if con.UrgentAt.After(best.UrgentAt) {
				best = con
			}
		case UrgentOldest:
			if con.UrgentAt.Before(best.UrgentAt) {
				best = con
			}
		}
	}
	if best == nil {
		return nil
	}
	return []*tree.Container{best}
}
