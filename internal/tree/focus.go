package tree

// Focus implements ContainerTree.con_focus (spec.md §4.1): walks ancestors
// from node to root, promoting the chain to the head of each parent's
// focus order, and updates the global focused pointer (invariant 4).
//
// Refuses (returns ok=false, no mutation) when node is not focusable under
// the current fullscreen state: "a node is focusable only if every
// fullscreen ancestor contains it" — i.e. focusing out of an active
// fullscreen subtree is blocked, matching spec.md §8 scenario 5
// ("fullscreen-global on leaf L; focus left ⇒ success:true but focus
// unchanged"). The caller (command interpreter) is responsible for mapping
// ok=false into a silent, non-rendering success reply.
func (t *Tree) Focus(node *Container) (ok bool) {
	if node == nil {
		return false
	}
	if !t.focusable(node) {
		return false
	}

	for n := node; n != nil && n.parent != nil; n = n.parent {
		promoteFocus(n.parent, n)
	}
	t.focused = node
	return true
}

// focusable reports whether node may become focused given the current
// fullscreen containers in the tree (invariant 5: at most one Global, at
// most one Output-fullscreen per output).
func (t *Tree) focusable(node *Container) bool {
	var globalFS *Container
	Walk(t.root, func(c *Container) bool {
		if c.Fullscreen == FullscreenGlobal {
			globalFS = c
			return false
		}
		return true
	})
	if globalFS != nil && !isDescendantOrSelf(globalFS, node) {
		return false
	}

	out := OutputOf(node)
	if out == nil {
		return true
	}
	var outputFS *Container
	Walk(out, func(c *Container) bool {
		if c.Fullscreen == FullscreenOutput {
			outputFS = c
			return false
		}
		return true
	})
	if outputFS != nil && outputFS != globalFS && !isDescendantOrSelf(outputFS, node) {
		return false
	}
	return true
}

// isDescendantOrSelf reports whether node is ancestor itself or is
// (transitively) contained within ancestor's subtree — i.e. focusing node
// stays within the fullscreen boundary rooted at ancestor.
func isDescendantOrSelf(ancestor, node *Container) bool {
	for n := node; n != nil; n = n.parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

// FocusHead returns the leaf or workspace that focus-order traversal from
// root would currently land on: walk each level's focus-order head until a
// leaf (or an empty workspace) is reached. Used to re-derive `focused`
// after a bulk mutation (e.g. restoring a persisted snapshot) without
// trusting a stored pointer.
func FocusHead(root *Container) *Container {
	n := root
	for {
		if len(n.focusOrder) == 0 {
			return n
		}
		head := n.focusOrder[0]
		if head.Role == RoleLeafWindow {
			return head
		}
		n = head
	}
}
