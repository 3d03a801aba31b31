package tree

// acceptsChild reports whether a container of role parent may directly own
// a child of role child (spec.md §3's role tag set, generalized from the
// teacher's binary paneNode into an explicit role-compatibility table).
func acceptsChild(parent, child Role) bool {
	switch parent {
	case RoleRoot:
		return child == RoleOutput
	case RoleOutput:
		return child == RoleContent || child == RoleDockarea
	case RoleContent:
		return child == RoleWorkspace
	case RoleWorkspace:
		return child == RoleSplitContainer || child == RoleLeafWindow || child == RoleFloatingContainer
	case RoleSplitContainer:
		return child == RoleSplitContainer || child == RoleLeafWindow
	case RoleFloatingContainer:
		return child == RoleLeafWindow
	case RoleDockarea:
		return child == RoleLeafWindow
	default: // RoleLeafWindow never accepts children (invariant 2)
		return false
	}
}

// packsChildren reports whether a container's children participate in the
// percentage-sum invariant (invariant 3) and the split/tabbed/stacked
// layout packing of the Renderer. Floating containers are deliberately
// excluded: they keep explicit geometry and are "skipped by tiling
// layout" per the glossary.
func (c *Container) packsChildren() bool {
	switch c.Role {
	case RoleSplitContainer, RoleWorkspace, RoleContent:
		return true
	default:
		return false
	}
}

// tilingChildren returns c's children that participate in percentage
// packing, i.e. excluding floating containers and dockareas.
func (c *Container) tilingChildren() []*Container {
	out := make([]*Container, 0, len(c.layoutOrder))
	for _, child := range c.layoutOrder {
		if child.Role != RoleFloatingContainer {
			out = append(out, child)
		}
	}
	return out
}

// TilingChildren is the exported form of tilingChildren, for the renderer
// (spec.md §4.4), which needs to walk the same packing order the
// percentage invariant is checked against without reaching into this
// package's internals.
func (c *Container) TilingChildren() []*Container {
	return c.tilingChildren()
}
