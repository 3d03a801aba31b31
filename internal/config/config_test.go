package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/wm/internal/logging"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Current()
	require.Equal(t, "top", cfg.Bar.Position)
	require.Equal(t, "#285577", cfg.Bar.Colors.Focus.Background)
	require.Equal(t, "#000000", cfg.Bar.Colors.Background)
	require.Equal(t, "#FFFFFF", cfg.Bar.Colors.StatuslineForeground)
	require.Equal(t, cfg.Bar.Colors.Urgent, cfg.Bar.Colors.BindingMode)
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "[bar]\nposition = \"bottom\"\n\n[gaps]\ninner = 8\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	m, err := NewManager(dir, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Current()
	require.Equal(t, "bottom", cfg.Bar.Position)
	require.Equal(t, 8, cfg.Gaps.Inner)
	require.Equal(t, 0, cfg.Gaps.Outer)
}

func TestOnChangeCallback(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, m.Load())

	called := false
	m.OnChange(func(c *Config) { called = true })
	// OnChange only fires through Watch()+fsnotify in production; directly
	// exercising reloadLocked + callback wiring here would require a real
	// file event, so this test only asserts registration does not panic.
	require.False(t, called)
}

func TestSchemaJSON(t *testing.T) {
	b, err := SchemaJSON()
	require.NoError(t, err)
	require.Contains(t, string(b), "bar")
}
