// Package match implements the Match Engine (spec.md §4.2): resolving a
// Criteria record against the container registry into an ordered working
// set, plus "did you mean" suggestions for the command interpreter.
package match

import (
	"regexp"

	"github.com/bnema/wm/internal/tree"
)

// UrgentSelector picks among multiple urgent containers when a criteria
// block's urgent field is set instead of (or in addition to) a regex.
type UrgentSelector int

const (
	UrgentNone UrgentSelector = iota
	UrgentLatest
	UrgentOldest
)

// Criteria is the parsed match-criteria record (spec.md §3): every field is
// optional; a zero-value Criteria means "the currently focused container".
type Criteria struct {
	Class       string
	Instance    string
	WindowRole  string
	Title       string
	WindowID    tree.WindowHandle
	HasWindowID bool
	ContainerID uint64
	HasConID    bool
	Mark        string
	Workspace   string
	WindowType  *tree.WindowType
	Urgent      UrgentSelector
}

// IsEmpty reports whether c specifies no field at all, meaning "the
// currently focused container" per spec.md §4.2.
func (c Criteria) IsEmpty() bool {
	return c.Class == "" && c.Instance == "" && c.WindowRole == "" && c.Title == "" &&
		!c.HasWindowID && !c.HasConID && c.Mark == "" && c.Workspace == "" &&
		c.WindowType == nil && c.Urgent == UrgentNone
}

// compiled holds the POSIX-extended regexes compiled once per Resolve call,
// rather than recompiling per candidate container.
type compiled struct {
	class, instance, windowRole, title, mark, workspace *regexp.Regexp
}

func compileCriteria(c Criteria) (compiled, error) {
	var out compiled
	var err error
	for _, pair := range []struct {
		pattern string
		dst     **regexp.Regexp
	}{
		{c.Class, &out.class},
		{c.Instance, &out.instance},
		{c.WindowRole, &out.windowRole},
		{c.Title, &out.title},
		{c.Mark, &out.mark},
		{c.Workspace, &out.workspace},
	} {
		if pair.pattern == "" {
			continue
		}
		*pair.dst, err = regexp.CompilePOSIX(pair.pattern)
		if err != nil {
			return compiled{}, err
		}
	}
	return out, nil
}

func (cm compiled) matches(c *tree.Container) bool {
	if cm.class != nil && !cm.class.MatchString(c.Class) {
		return false
	}
	if cm.instance != nil && !cm.instance.MatchString(c.Instance) {
		return false
	}
	if cm.windowRole != nil && !cm.windowRole.MatchString(c.WindowRole) {
		return false
	}
	if cm.title != nil && !cm.title.MatchString(c.Title) {
		return false
	}
	if cm.mark != nil && !cm.mark.MatchString(c.Mark) {
		return false
	}
	if cm.workspace != nil {
		ws := tree.WorkspaceOf(c)
		if ws == nil || !cm.workspace.MatchString(ws.WorkspaceName) {
			return false
		}
	}
	return true
}
