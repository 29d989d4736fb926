package prefs

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/animated-dots/internal/config"
)

// Settings are the demo hosts' preferences. Counter values are never stored.
// An empty Style keeps the style each row is configured with.
type Settings struct {
	Style      config.Style `yaml:"style"`
	Muted      bool         `yaml:"muted"`
	ConfigPath string       `yaml:"configPath"`
}

// DefaultSettings returns the preferences of a first run.
func DefaultSettings() Settings {
	return Settings{}
}

const (
	settingsObject   = "preferences"
	settingsProperty = "demo"
)

// Manager loads and saves Settings through gdata. A nil gdata manager
// keeps settings in memory only.
type Manager struct {
	store    *gdata.Manager
	settings Settings
	log      logr.Logger
}

// Open creates a gdata store for appName and loads the saved settings.
// A store that cannot be opened degrades to in-memory settings.
func Open(appName string, log logr.Logger) *Manager {
	store, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Info("preferences will not be saved", "error", err.Error())
		store = nil
	}
	return NewManager(store, log)
}

// NewManager wraps an opened store and loads the saved settings. Load
// failures are logged and the defaults are used.
func NewManager(store *gdata.Manager, log logr.Logger) *Manager {
	m := &Manager{store: store, settings: DefaultSettings(), log: log}
	if err := m.Load(); err != nil {
		log.Info("failed to load preferences, using defaults", "error", err.Error())
	}
	return m
}

// Load reads the settings, falling back to the defaults when nothing is saved.
func (m *Manager) Load() error {
	m.settings = DefaultSettings()
	if m.store == nil || !m.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := m.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	switch loaded.Style {
	case config.StyleBasic, config.StyleEmbellished:
	default:
		loaded.Style = ""
	}
	m.settings = loaded
	return nil
}

// Save writes the settings. Without a store it does nothing.
func (m *Manager) Save() error {
	if m.store == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := m.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	m.log.V(1).Info("preferences saved")
	return nil
}

// Settings returns the current settings.
func (m *Manager) Settings() Settings { return m.settings }

// SetStyle changes the transition style; call Save to persist it.
func (m *Manager) SetStyle(s config.Style) { m.settings.Style = s }

// SetMuted changes the sound preference; call Save to persist it.
func (m *Manager) SetMuted(muted bool) { m.settings.Muted = muted }

// SetConfigPath remembers the last loaded configuration file.
func (m *Manager) SetConfigPath(path string) { m.settings.ConfigPath = path }
