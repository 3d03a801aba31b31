package tree

import "github.com/bnema/wm/internal/wmerr"

// ToggleFullscreen implements ContainerTree.toggle_fullscreen (spec.md
// §4.1). Enforces invariant 5: setting FullscreenGlobal clears any other
// Global fullscreen in the whole tree; setting FullscreenOutput clears any
// other Output fullscreen on the same output. Setting FullscreenNone simply
// clears node's own fullscreen mode.
func (t *Tree) ToggleFullscreen(node *Container, mode FullscreenMode) error {
	if node == nil {
		return wmerr.New(wmerr.KindInvariant, "toggle fullscreen: nil node")
	}

	if node.Fullscreen == mode {
		node.Fullscreen = FullscreenNone
		return nil
	}

	switch mode {
	case FullscreenGlobal:
		Walk(t.root, func(c *Container) bool {
			if c != node && c.Fullscreen == FullscreenGlobal {
				c.Fullscreen = FullscreenNone
			}
			return true
		})
	case FullscreenOutput:
		out := OutputOf(node)
		if out != nil {
			Walk(out, func(c *Container) bool {
				if c != node && c.Fullscreen == FullscreenOutput {
					c.Fullscreen = FullscreenNone
				}
				return true
			})
		}
	}

	node.Fullscreen = mode
	return nil
}

// FullscreenGlobalContainer returns the single Global-fullscreen container
// in the tree, if any (invariant 5).
func (t *Tree) FullscreenGlobalContainer() *Container {
	var found *Container
	Walk(t.root, func(c *Container) bool {
		if c.Fullscreen == FullscreenGlobal {
			found = c
			return false
		}
		return true
	})
	return found
}
