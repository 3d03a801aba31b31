package bar

// Mode is the configured hide_on_modifier behavior (spec.md §6): whether
// the bar is always docked, hides until a modifier reveals it, or is fully
// invisible.
type Mode int

const (
	ModeDock Mode = iota
	ModeHide
	ModeInvisible
)

func ParseMode(s string) Mode {
	switch s {
	case "hide":
		return ModeHide
	case "invisible":
		return ModeInvisible
	default:
		return ModeDock
	}
}

// visibilityState is the {Shown, Hidden} half of the bar visibility state
// machine (spec.md §4.6).
type visibilityState int

const (
	stateShown visibilityState = iota
	stateHidden
)

// Visibility implements the bar visibility state machine: states {Dock,
// Hide, Invisible} × {Shown, Hidden}. Transitions: modifier-press in
// Hide→Shown; modifier-release + no urgent workspace + no binding-mode
// indicator → Hidden; any urgent workspace or recent mode activation
// forces Shown.
type Visibility struct {
	mode  Mode
	state visibilityState

	modifierHeld    bool
	anyUrgent       bool
	modeIndicatorOn bool

	// override pins the state regardless of mode/modifier/urgency when
	// non-nil — an explicit visibility-change event (spec.md §4.5),
	// distinct from the mode-driven reveal/hide transitions.
	override *bool
}

// NewVisibility builds a Visibility for the given hide_on_modifier mode,
// starting in the state that mode yields with no modifier held, no urgent
// workspace and no binding-mode indicator (Shown for Dock, Hidden for Hide
// and Invisible).
func NewVisibility(mode Mode) *Visibility {
	v := &Visibility{mode: mode, state: stateShown}
	v.recompute()
	return v
}

// SetMode changes the configured hide_on_modifier mode, re-evaluating
// visibility under the new mode immediately.
func (v *Visibility) SetMode(mode Mode) {
	v.mode = mode
	v.recompute()
}

// SetModifierHeld feeds a modifier-change event (spec.md §4.5) into the
// state machine.
func (v *Visibility) SetModifierHeld(held bool) {
	v.modifierHeld = held
	v.recompute()
}

// SetUrgent feeds "any urgent workspace" into the forcing condition.
func (v *Visibility) SetUrgent(urgent bool) {
	v.anyUrgent = urgent
	v.recompute()
}

// SetModeIndicator feeds "recent mode activation" (a non-default binding
// mode is active) into the forcing condition.
func (v *Visibility) SetModeIndicator(on bool) {
	v.modeIndicatorOn = on
	v.recompute()
}

// SetOverride pins visibility to a fixed value (an explicit
// visibility-change event), or clears the pin and returns control to the
// mode/modifier/urgency transitions when passed nil.
func (v *Visibility) SetOverride(visible *bool) {
	v.override = visible
	v.recompute()
}

func (v *Visibility) recompute() {
	if v.override != nil {
		if *v.override {
			v.state = stateShown
		} else {
			v.state = stateHidden
		}
		return
	}

	switch v.mode {
	case ModeInvisible:
		v.state = stateHidden
		return
	case ModeDock:
		v.state = stateShown
		return
	}

	// ModeHide.
	if v.anyUrgent || v.modeIndicatorOn || v.modifierHeld {
		v.state = stateShown
		return
	}
	v.state = stateHidden
}

// Visible reports whether the bar should currently be mapped.
func (v *Visibility) Visible() bool { return v.state == stateShown }
