package tree

import (
	"github.com/bnema/wm/internal/logging"
)

// Tree is the ContainerTree (spec.md §4.1): the flat registry plus the
// rooted tree itself. There is exactly one Tree per running window manager;
// it is accessed from a single goroutine (the event loop, spec.md §5), so
// it carries no internal locking.
type Tree struct {
	root *Container

	byID    map[uint64]*Container
	nextID  uint64
	marks   map[string]*Container // mark -> holder, invariant 6
	focused *Container

	// backAndForth holds the name of the previously-focused workspace, for
	// the `workspace <name>` back-and-forth semantics (spec.md §4.3, §8
	// scenario 3).
	backAndForth string

	log *logging.Logger
}

// New creates an empty Tree: a synthetic root with no outputs yet. Outputs
// are attached as they are reported by the backend (spec.md §3 lifecycles).
func New(log *logging.Logger) *Tree {
	if log == nil {
		log = logging.Nop()
	}
	t := &Tree{
		byID:  make(map[uint64]*Container),
		marks: make(map[string]*Container),
		log:   log.With("tree"),
	}
	root := t.newContainer(RoleRoot)
	root.Percent = 1.0
	t.root = root
	t.focused = root
	return t
}

// Root returns the synthetic root container.
func (t *Tree) Root() *Container { return t.root }

// Focused returns the currently focused leaf or workspace (invariant 4).
func (t *Tree) Focused() *Container { return t.focused }

// BackAndForth returns the name of the workspace back-and-forth would
// switch to, or "" if none is recorded yet.
func (t *Tree) BackAndForth() string { return t.backAndForth }

// ByID looks up any container by its stable identity, for criteria
// matching (con_id) and IPC responses.
func (t *Tree) ByID(id uint64) (*Container, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// ByWindow finds the leaf window carrying handle, for correlating backend
// events (map/unmap/destroy/configure-request/property-change, spec.md
// §4.5) back to their tree node.
func (t *Tree) ByWindow(handle WindowHandle) (*Container, bool) {
	for _, c := range t.byID {
		if c.Role == RoleLeafWindow && c.HasWindow && c.Window == handle {
			return c, true
		}
	}
	return nil, false
}

// All returns every container in the tree (the "global registry", spec.md
// §3). The slice is freshly allocated; callers may retain it.
func (t *Tree) All() []*Container {
	out := make([]*Container, 0, len(t.byID))
	for _, c := range t.byID {
		out = append(out, c)
	}
	return out
}

// newContainer allocates and registers a new, detached container of the
// given role with a fresh identity. It is not yet attached to the tree.
func (t *Tree) newContainer(role Role) *Container {
	t.nextID++
	c := &Container{ID: t.nextID, Role: role}
	t.byID[c.ID] = c
	return c
}

// forget removes a container from the registry (after it has been fully
// detached and destroyed). It does not recurse; callers must forget an
// entire destroyed subtree bottom-up.
func (t *Tree) forget(c *Container) {
	if c.Mark != "" {
		if holder, ok := t.marks[c.Mark]; ok && holder == c {
			delete(t.marks, c.Mark)
		}
	}
	delete(t.byID, c.ID)
	if t.focused == c {
		t.focused = nil
	}
}

// WorkspaceByName finds an existing workspace by name anywhere in the tree,
// or returns (nil, false).
func (t *Tree) WorkspaceByName(name string) (*Container, bool) {
	var found *Container
	Walk(t.root, func(c *Container) bool {
		if c.Role == RoleWorkspace && c.WorkspaceName == name {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// Outputs returns every RoleOutput container, in layout order under root.
func (t *Tree) Outputs() []*Container {
	var outs []*Container
	for _, c := range t.root.layoutOrder {
		if c.Role == RoleOutput {
			outs = append(outs, c)
		}
	}
	return outs
}

// Walk performs a pre-order traversal of the subtree rooted at c, calling
// visit(node) for every node including c itself. If visit returns false,
// Walk stops descending into that node's children (but continues with its
// siblings at the caller's level, since recursion unwinds normally).
func Walk(c *Container, visit func(*Container) bool) {
	if c == nil {
		return
	}
	if !visit(c) {
		return
	}
	for _, child := range c.layoutOrder {
		Walk(child, visit)
	}
}

// WorkspaceOf returns the nearest RoleWorkspace ancestor of c (or c itself
// if it is a workspace), satisfying invariant 2 ("A Workspace is the unique
// ancestor-of-leaves containing a given leaf").
func WorkspaceOf(c *Container) *Container {
	for n := c; n != nil; n = n.parent {
		if n.Role == RoleWorkspace {
			return n
		}
	}
	return nil
}

// OutputOf returns the nearest RoleOutput ancestor of c.
func OutputOf(c *Container) *Container {
	for n := c; n != nil; n = n.parent {
		if n.Role == RoleOutput {
			return n
		}
	}
	return nil
}
