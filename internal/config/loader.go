package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/bnema/wm/internal/logging"
)

// Manager owns the live Config value, the underlying viper instance, and
// the set of reload callbacks. Grounded on the teacher's
// internal/infrastructure/config Manager (NewManager/Load/Watch).
type Manager struct {
	mu        sync.RWMutex
	cfg       *Config
	v         *viper.Viper
	callbacks []func(*Config)
	watching  bool
	log       *logging.Logger
}

// NewManager builds a Manager reading "config.toml" from configDir (and the
// current directory, for development), with WM_-prefixed environment
// variable overrides.
func NewManager(configDir string, log *logging.Logger) (*Manager, error) {
	if log == nil {
		log = logging.Nop()
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix("WM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Manager{v: v, log: log.With("config")}, nil
}

// Load reads the config file (if present; a missing file is not an error —
// defaults apply) and merges environment overrides, producing the initial
// Config snapshot.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloadLocked()
}

func (m *Manager) reloadLocked() error {
	defaults := Default()
	setViperDefaults(m.v, defaults)

	if err := m.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
		m.log.Infof("no config file found, using defaults")
	}

	cfg := &Config{}
	if err := m.v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.resolveColors()
	cfg.Database.Path = expandHome(cfg.Database.Path)
	cfg.Persistent.SnapshotPath = expandHome(cfg.Persistent.SnapshotPath)

	m.cfg = cfg
	return nil
}

// Watch enables fsnotify-driven reload (via viper.WatchConfig) and fires
// every registered callback on each successful reload, matching spec.md §6
// ("Config (read once, reloadable)").
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watching {
		return
	}
	m.watching = true

	m.v.WatchConfig()
	m.v.OnConfigChange(func(_ fsnotify.Event) {
		m.mu.Lock()
		err := m.reloadLocked()
		cfg := m.cfg
		callbacks := append([]func(*Config){}, m.callbacks...)
		m.mu.Unlock()

		if err != nil {
			m.log.Warnf("config reload failed: %v", err)
			return
		}
		m.log.Infof("config reloaded")
		for _, cb := range callbacks {
			cb(cfg)
		}
	})
}

// OnChange registers a callback invoked after every successful reload.
func (m *Manager) OnChange(cb func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, cb)
}

// Current returns the live Config snapshot.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
