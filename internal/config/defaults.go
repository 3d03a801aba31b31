package config

import "github.com/spf13/viper"

// setViperDefaults registers every field of d as a viper default so that a
// partial config.toml only needs to specify the keys it overrides.
func setViperDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("bar.position", d.Bar.Position)
	v.SetDefault("bar.hide_on_modifier", d.Bar.HideOnModifier)
	v.SetDefault("bar.hidden_state", d.Bar.HiddenState)
	v.SetDefault("bar.modifier", d.Bar.Modifier)
	v.SetDefault("bar.tray_output", d.Bar.TrayOutput)
	v.SetDefault("bar.tray_padding", d.Bar.TrayPadding)
	v.SetDefault("bar.bar_height", d.Bar.Height)
	v.SetDefault("bar.separator_symbol", d.Bar.SeparatorSymbol)
	v.SetDefault("bar.disable_ws", d.Bar.DisableWorkspaceButtons)
	v.SetDefault("bar.disable_binding_mode_indicator", d.Bar.DisableBindingModeIndicator)
	v.SetDefault("bar.bindings", d.Bar.Bindings)

	v.SetDefault("bar.colors.background", d.Bar.Colors.Background)
	v.SetDefault("bar.colors.statusline", d.Bar.Colors.StatuslineForeground)
	setColorDefaults(v, "bar.colors.inactive", d.Bar.Colors.Inactive)
	setColorDefaults(v, "bar.colors.active", d.Bar.Colors.Active)
	setColorDefaults(v, "bar.colors.focus", d.Bar.Colors.Focus)
	setColorDefaults(v, "bar.colors.urgent", d.Bar.Colors.Urgent)
	setColorDefaults(v, "bar.colors.binding_mode", d.Bar.Colors.BindingMode)

	v.SetDefault("gaps.inner", d.Gaps.Inner)
	v.SetDefault("gaps.outer", d.Gaps.Outer)

	v.SetDefault("workspace.workspace_auto_back_and_forth", d.Workspace.AutoBackAndForth)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.dir", d.Logging.Dir)
	v.SetDefault("logging.enable_file_log", d.Logging.EnableFileLog)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", d.Logging.Compress)

	v.SetDefault("debug.tree_validation", d.Debug.TreeValidation)
	v.SetDefault("debug.level", d.Debug.Level)

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("persistence.snapshot_path", d.Persistent.SnapshotPath)
}

func setColorDefaults(v *viper.Viper, prefix string, c StateColors) {
	v.SetDefault(prefix+".foreground", c.Foreground)
	v.SetDefault(prefix+".background", c.Background)
	v.SetDefault(prefix+".border", c.Border)
}
