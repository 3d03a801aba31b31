// Package config loads and hot-reloads the window manager's configuration,
// per spec.md §6. It is read once at startup; Manager.Load reads it again
// (the `reload` command does this), and once Watch has been called a change
// to the config file reloads it too. No signal triggers a reload.
package config

// Config is the complete set of recognized options (spec.md §6).
type Config struct {
	Bar        BarConfig        `mapstructure:"bar" toml:"bar"`
	Gaps       GapsConfig       `mapstructure:"gaps" toml:"gaps"`
	Workspace  WorkspaceConfig  `mapstructure:"workspace" toml:"workspace"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging"`
	Debug      DebugConfig      `mapstructure:"debug" toml:"debug"`
	Database   DatabaseConfig   `mapstructure:"database" toml:"database"`
	Persistent PersistentConfig `mapstructure:"persistence" toml:"persistence"`
	IPC        IPCConfig        `mapstructure:"ipc" toml:"ipc"`
}

// BarConfig groups every option in spec.md §6 concerning the status bar.
type BarConfig struct {
	Position                  string            `mapstructure:"position" toml:"position"`                                         // "top" | "bottom"
	HideOnModifier             string            `mapstructure:"hide_on_modifier" toml:"hide_on_modifier"`                         // "dock" | "hide" | "invisible"
	HiddenState                string            `mapstructure:"hidden_state" toml:"hidden_state"`                                 // "show" | "hide"
	Modifier                   uint32            `mapstructure:"modifier" toml:"modifier"`                                         // bitmask
	TrayOutput                 string            `mapstructure:"tray_output" toml:"tray_output"`                                   // name | "primary" | "none"
	TrayPadding                int               `mapstructure:"tray_padding" toml:"tray_padding"`                                 // px
	Height                     int               `mapstructure:"bar_height" toml:"bar_height"`                                     // px; 0 = auto from font
	SeparatorSymbol            string            `mapstructure:"separator_symbol" toml:"separator_symbol"`                         // optional
	DisableWorkspaceButtons    bool              `mapstructure:"disable_ws" toml:"disable_ws"`                                     // disable_ws
	DisableBindingModeIndicator bool             `mapstructure:"disable_binding_mode_indicator" toml:"disable_binding_mode_indicator"`
	StatusCommand              string            `mapstructure:"status_command" toml:"status_command"`                             // shell command feeding internal/status.Source; empty disables it
	Colors                     ColorSetConfig    `mapstructure:"colors" toml:"colors"`
	Bindings                   map[string]string `mapstructure:"bindings" toml:"bindings"` // mouse button -> command string
}

// ColorSetConfig is the bar's 17-slot color palette (spec.md §4.6): a bar
// background and a statusline text color, plus five workspace-button
// states each carrying foreground/background/border (2 + 5*3 = 17).
type ColorSetConfig struct {
	Background           string      `mapstructure:"background" toml:"background"`
	StatuslineForeground string      `mapstructure:"statusline" toml:"statusline"`
	Inactive             StateColors `mapstructure:"inactive" toml:"inactive"`
	Active               StateColors `mapstructure:"active" toml:"active"`
	Focus                StateColors `mapstructure:"focus" toml:"focus"`
	Urgent               StateColors `mapstructure:"urgent" toml:"urgent"`
	BindingMode          StateColors `mapstructure:"binding_mode" toml:"binding_mode"`
}

// StateColors is one workspace-button color triple.
type StateColors struct {
	Foreground string `mapstructure:"foreground" toml:"foreground"`
	Background string `mapstructure:"background" toml:"background"`
	Border     string `mapstructure:"border" toml:"border"`
}

// GapsConfig is the global default gap; per-workspace overrides are applied
// at runtime through the `gaps` command (spec.md §4.3) and are not part of
// the static config.
type GapsConfig struct {
	Inner int `mapstructure:"inner" toml:"inner"`
	Outer int `mapstructure:"outer" toml:"outer"`
}

// WorkspaceConfig holds workspace-selection behavior.
type WorkspaceConfig struct {
	AutoBackAndForth bool `mapstructure:"workspace_auto_back_and_forth" toml:"workspace_auto_back_and_forth"`
}

// LoggingConfig configures internal/logging.
type LoggingConfig struct {
	Level         string `mapstructure:"level" toml:"level"`
	Format        string `mapstructure:"format" toml:"format"` // "text" | "json"
	Dir           string `mapstructure:"dir" toml:"dir"`
	EnableFileLog bool   `mapstructure:"enable_file_log" toml:"enable_file_log"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups    int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAgeDays    int    `mapstructure:"max_age_days" toml:"max_age_days"`
	Compress      bool   `mapstructure:"compress" toml:"compress"`
}

// DebugConfig toggles the optional, debug-only tree/geometry validators
// (grounded on the teacher's DUMBER_DEBUG_WORKSPACE-gated validators).
type DebugConfig struct {
	TreeValidation bool   `mapstructure:"tree_validation" toml:"tree_validation"`
	Level          string `mapstructure:"level" toml:"level"` // "off" | "basic" | "full"
}

// DatabaseConfig points at the persistence sqlite file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path"`
}

// PersistentConfig configures the restart-time layout snapshot.
type PersistentConfig struct {
	SnapshotPath string `mapstructure:"snapshot_path" toml:"snapshot_path"`
}

// IPCConfig configures the CommandChannel's UNIX domain socket (spec.md
// §1, §6). An empty SocketPath resolves to
// "$XDG_RUNTIME_DIR/wm/wm.sock" at startup.
type IPCConfig struct {
	SocketPath string `mapstructure:"socket_path" toml:"socket_path"`
}

// Default returns the built-in defaults named in spec.md §6.
func Default() *Config {
	return &Config{
		Bar: BarConfig{
			Position:       "top",
			HideOnModifier: "dock",
			HiddenState:    "show",
			TrayOutput:     "primary",
			TrayPadding:    2,
			Height:         0,
			Colors: ColorSetConfig{
					Background:           "#000000",
					StatuslineForeground: "#FFFFFF",
					Inactive:             StateColors{Foreground: "#FFFFFF", Background: "#000000", Border: "#333333"},
					Active:               StateColors{Foreground: "#FFFFFF", Background: "#333333", Border: "#333333"},
					Focus:                StateColors{Foreground: "#FFFFFF", Background: "#285577", Border: "#4c7899"},
					Urgent:               StateColors{Foreground: "#FFFFFF", Background: "#900000", Border: "#2f343a"},
					// BindingMode is left unset, so resolveColors copies Urgent into it.
			},
			Bindings: map[string]string{},
		},
		Gaps: GapsConfig{Inner: 0, Outer: 0},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 14,
		},
		Debug: DebugConfig{Level: "off"},
		Database: DatabaseConfig{
			Path: "~/.local/share/wm/wm.db",
		},
		Persistent: PersistentConfig{
			SnapshotPath: "~/.local/share/wm/layout.json",
		},
	}
}

// resolveColors fills BindingMode with Urgent's colors whenever BindingMode
// was left unset, per spec.md §4.6 ("binding-mode colors falling back to
// urgent colors if unset").
func (c *Config) resolveColors() {
	if c.Bar.Colors.BindingMode == (StateColors{}) {
		c.Bar.Colors.BindingMode = c.Bar.Colors.Urgent
	}
}
