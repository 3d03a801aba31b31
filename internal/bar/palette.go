package bar

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bnema/wm/internal/config"
	"github.com/bnema/wm/internal/wmerr"
)

// StateColor is one workspace-button (or binding-mode indicator) color
// triple, parsed from the configured hex strings.
type StateColor struct {
	Foreground colorful.Color
	Background colorful.Color
	Border     colorful.Color
}

// Palette is BarCore's global color state (spec.md §4.6: "color palette
// (17 named slots, with binding-mode colors falling back to urgent colors
// if unset)"): a bar background, the statusline text color, and five
// workspace-button states (inactive/active/focus/urgent/binding_mode),
// each a foreground/background/border triple — 2 + 5*3 = 17 slots.
//
// Parsing (rather than keeping raw hex strings) through go-colorful
// catches a malformed configured color at startup instead of at first
// draw, and gives the draw path values it can blend or darken if a future
// indicator needs it.
type Palette struct {
	Background           colorful.Color
	StatuslineForeground colorful.Color

	Inactive    StateColor
	Active      StateColor
	Focus       StateColor
	Urgent      StateColor
	BindingMode StateColor
}

// BuildPalette parses every slot of c, returning a ParseError naming the
// first malformed hex string encountered.
func BuildPalette(c config.ColorSetConfig) (Palette, error) {
	var p Palette
	var err error
	if p.Background, err = parseHex("background", c.Background); err != nil {
		return Palette{}, err
	}
	if p.StatuslineForeground, err = parseHex("statusline", c.StatuslineForeground); err != nil {
		return Palette{}, err
	}
	if p.Inactive, err = parseState("inactive", c.Inactive); err != nil {
		return Palette{}, err
	}
	if p.Active, err = parseState("active", c.Active); err != nil {
		return Palette{}, err
	}
	if p.Focus, err = parseState("focus", c.Focus); err != nil {
		return Palette{}, err
	}
	if p.Urgent, err = parseState("urgent", c.Urgent); err != nil {
		return Palette{}, err
	}
	bindingMode := c.BindingMode
	if bindingMode == (config.StateColors{}) {
		bindingMode = c.Urgent
	}
	if p.BindingMode, err = parseState("binding_mode", bindingMode); err != nil {
		return Palette{}, err
	}
	return p, nil
}

func parseState(name string, s config.StateColors) (StateColor, error) {
	fg, err := parseHex(name+".foreground", s.Foreground)
	if err != nil {
		return StateColor{}, err
	}
	bg, err := parseHex(name+".background", s.Background)
	if err != nil {
		return StateColor{}, err
	}
	border, err := parseHex(name+".border", s.Border)
	if err != nil {
		return StateColor{}, err
	}
	return StateColor{Foreground: fg, Background: bg, Border: border}, nil
}

func parseHex(slot, s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, wmerr.Wrap(wmerr.KindParse, err, "bar: invalid color %q for %s", s, slot)
	}
	return c, nil
}

// StateFor resolves the button color for a workspace in the given
// relationship to focus/urgency. urgent takes precedence over
// active/focused, matching i3's own workspace-button precedence.
func (p Palette) StateFor(focused, active, urgent bool) StateColor {
	switch {
	case urgent:
		return p.Urgent
	case focused:
		return p.Focus
	case active:
		return p.Active
	default:
		return p.Inactive
	}
}
