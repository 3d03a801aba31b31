package tree

import "github.com/bnema/wm/internal/wmerr"

// SetMark implements ContainerTree.set_mark (spec.md §4.1). If toggle is
// true and node already carries this exact mark, the mark is cleared
// instead. Setting a mark that another container already holds clears it
// from that other container first (invariant 6: marks are unique).
//
// spec.md §9's open question records that the source clears prior holders
// of a mark *before* rejecting a multi-match `mark` command; that ambiguity
// is about the command-level "which containers does `mark` apply to"
// question (resolved in internal/command), not this tree-level operation,
// which only ever targets one container and is unconditionally safe to
// apply.
func (t *Tree) SetMark(node *Container, mark string, toggle bool) error {
	if node == nil {
		return wmerr.New(wmerr.KindInvariant, "set mark: nil node")
	}
	if mark == "" {
		return wmerr.New(wmerr.KindParse, "set mark: empty mark")
	}

	if toggle && node.Mark == mark {
		delete(t.marks, mark)
		node.Mark = ""
		return nil
	}

	if holder, ok := t.marks[mark]; ok && holder != node {
		holder.Mark = ""
	}
	if node.Mark != "" {
		delete(t.marks, node.Mark)
	}
	node.Mark = mark
	t.marks[mark] = node
	return nil
}

// Unmark clears mark from whichever container holds it, or clears every
// mark on node if mark == "".
func (t *Tree) Unmark(node *Container, mark string) {
	if mark != "" {
		if holder, ok := t.marks[mark]; ok {
			holder.Mark = ""
			delete(t.marks, mark)
		}
		return
	}
	if node != nil && node.Mark != "" {
		delete(t.marks, node.Mark)
		node.Mark = ""
	}
}

// ByMark looks up the container holding mark, if any.
func (t *Tree) ByMark(mark string) (*Container, bool) {
	c, ok := t.marks[mark]
	return c, ok
}
