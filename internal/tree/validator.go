package tree

import (
	"fmt"
	"math"
)

const percentEpsilon = 1e-6

// Validate checks every tree invariant from spec.md §3 and returns the
// first violation found, or nil if the tree is consistent. Intended for use
// by property-based tests that apply random command sequences and assert
// the tree never leaves a valid state.
func (t *Tree) Validate() error {
	if err := t.validateAcyclicAndParentage(); err != nil {
		return err
	}
	if err := t.validateLeafAndWorkspaceShape(); err != nil {
		return err
	}
	if err := t.validatePercentages(); err != nil {
		return err
	}
	if err := t.validateFocusReachable(); err != nil {
		return err
	}
	if err := t.validateFullscreenCounts(); err != nil {
		return err
	}
	if err := t.validateMarks(); err != nil {
		return err
	}
	if err := t.validateWindowHandles(); err != nil {
		return err
	}
	return nil
}

// invariant 1: acyclic, single-path tree; every node reachable from root
// exactly once, and parent/child links agree.
func (t *Tree) validateAcyclicAndParentage() error {
	seen := make(map[uint64]bool)
	var walk func(c *Container) error
	walk = func(c *Container) error {
		if seen[c.ID] {
			return fmt.Errorf("invariant 1: container %d reachable via more than one path", c.ID)
		}
		seen[c.ID] = true
		for _, child := range c.layoutOrder {
			if child.parent != c {
				return fmt.Errorf("invariant 1: container %d's child %d has mismatched parent pointer", c.ID, child.ID)
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(t.root); err != nil {
		return err
	}
	if len(seen) != len(t.byID) {
		return fmt.Errorf("invariant 1: registry has %d containers but only %d reachable from root", len(t.byID), len(seen))
	}
	return nil
}

// invariant 2: LeafWindow is childless; Workspace is the unique
// ancestor-of-leaves for any leaf beneath it; a node's parent's child list
// contains it exactly once.
func (t *Tree) validateLeafAndWorkspaceShape() error {
	var err error
	Walk(t.root, func(c *Container) bool {
		if err != nil {
			return false
		}
		if c.Role == RoleLeafWindow && len(c.layoutOrder) > 0 {
			err = fmt.Errorf("invariant 2: leaf window %d has children", c.ID)
			return false
		}
		if c.Role == RoleLeafWindow {
			if ws := WorkspaceOf(c); ws == nil {
				err = fmt.Errorf("invariant 2: leaf window %d has no workspace ancestor", c.ID)
				return false
			}
		}
		if c.parent != nil {
			count := 0
			for _, sib := range c.parent.layoutOrder {
				if sib == c {
					count++
				}
			}
			if count != 1 {
				err = fmt.Errorf("invariant 2: container %d appears %d times in parent %d's child list", c.ID, count, c.parent.ID)
				return false
			}
		}
		return true
	})
	return err
}

// invariant 3: a SplitContainer's (or Workspace's) tiling children's
// percentages sum to 1.0 +/- epsilon and are all > 0.
func (t *Tree) validatePercentages() error {
	var err error
	Walk(t.root, func(c *Container) bool {
		if err != nil {
			return false
		}
		if !c.packsChildren() {
			return true
		}
		children := c.tilingChildren()
		if len(children) == 0 {
			return true
		}
		sum := 0.0
		for _, ch := range children {
			if ch.Percent <= 0 {
				err = fmt.Errorf("invariant 3: container %d has non-positive percent %f", ch.ID, ch.Percent)
				return false
			}
			sum += ch.Percent
		}
		if math.Abs(sum-1.0) > percentEpsilon {
			err = fmt.Errorf("invariant 3: container %d's tiling children sum to %f, want 1.0", c.ID, sum)
			return false
		}
		return true
	})
	return err
}

// invariant 4: the focused container is reachable from root by following
// each level's focus-order head.
func (t *Tree) validateFocusReachable() error {
	if t.focused == nil {
		return nil
	}
	if _, ok := t.byID[t.focused.ID]; !ok {
		return fmt.Errorf("invariant 4: focused container %d is not registered", t.focused.ID)
	}
	for n := t.focused; n != nil && n.parent != nil; n = n.parent {
		found := false
		for _, sib := range n.parent.focusOrder {
			if sib == n {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("invariant 4: container %d missing from parent %d's focus order", n.ID, n.parent.ID)
		}
	}
	return nil
}

// invariant 5: at most one Global-fullscreen container tree-wide; at most
// one Output-fullscreen container per output.
func (t *Tree) validateFullscreenCounts() error {
	globalCount := 0
	perOutput := make(map[uint64]int)
	var err error
	Walk(t.root, func(c *Container) bool {
		switch c.Fullscreen {
		case FullscreenGlobal:
			globalCount++
		case FullscreenOutput:
			if out := OutputOf(c); out != nil {
				perOutput[out.ID]++
			}
		}
		return true
	})
	if globalCount > 1 {
		err = fmt.Errorf("invariant 5: %d containers are Global-fullscreen, want <= 1", globalCount)
	}
	for outID, n := range perOutput {
		if n > 1 {
			return fmt.Errorf("invariant 5: output %d has %d Output-fullscreen containers, want <= 1", outID, n)
		}
	}
	return err
}

// invariant 6: marks are unique tree-wide, and the marks index agrees with
// each container's own Mark field.
func (t *Tree) validateMarks() error {
	seen := make(map[string]uint64)
	var err error
	Walk(t.root, func(c *Container) bool {
		if err != nil {
			return false
		}
		if c.Mark == "" {
			return true
		}
		if other, ok := seen[c.Mark]; ok {
			err = fmt.Errorf("invariant 6: mark %q held by both container %d and %d", c.Mark, other, c.ID)
			return false
		}
		seen[c.Mark] = c.ID
		if t.marks[c.Mark] != c {
			err = fmt.Errorf("invariant 6: mark index for %q does not point at container %d", c.Mark, c.ID)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if len(seen) != len(t.marks) {
		return fmt.Errorf("invariant 6: mark index has %d entries but %d containers carry a mark", len(t.marks), len(seen))
	}
	return nil
}

// invariant 7: every window-carrying leaf has a non-null backend handle.
func (t *Tree) validateWindowHandles() error {
	var err error
	Walk(t.root, func(c *Container) bool {
		if c.Role == RoleLeafWindow && (!c.HasWindow || c.Window == 0) {
			err = fmt.Errorf("invariant 7: leaf window %d has no backend handle", c.ID)
			return false
		}
		return true
	})
	return err
}
