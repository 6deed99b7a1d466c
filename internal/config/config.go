package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	UI         UIConfig         `json:"ui"`
	Thumbnails ThumbnailsConfig `json:"thumbnails"`
	Folders    FoldersConfig    `json:"folders"`
	Watch      WatchConfig      `json:"watch"`
	Hotkeys    HotkeysConfig    `json:"hotkeys"`
}

// UIConfig holds UI-related settings
type UIConfig struct {
	Theme         string `json:"theme"`         // "light" or "dark"
	IconSize      int    `json:"iconSize"`      // preview square side in px
	Spacing       int    `json:"spacing"`       // gap around grid items in px
	LabelTextSize int    `json:"labelTextSize"` // label font size in px
}

// ThumbnailsConfig controls preview generation
type ThumbnailsConfig struct {
	Async        bool `json:"async"` // generate on a worker pool instead of during rebuild
	Workers      int  `json:"workers"`
	CacheEntries int  `json:"cacheEntries"`
}

// FoldersConfig controls the folder selection
type FoldersConfig struct {
	RestoreOnStart  bool   `json:"restoreOnStart"`
	DefaultListFile string `json:"defaultListFile"` // Save/Load target when no name is typed
}

// WatchConfig controls rescans on folder changes
type WatchConfig struct {
	Enabled    bool `json:"enabled"`
	DebounceMs int  `json:"debounceMs"`
}

// Debounce returns the watcher debounce as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a new configuration manager
func NewManager() *Manager {
	return &Manager{
		config: DefaultConfig(),
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		UI: UIConfig{
			Theme:         "light",
			IconSize:      128,
			Spacing:       10,
			LabelTextSize: 13,
		},
		Thumbnails: ThumbnailsConfig{
			Async:        true,
			Workers:      4,
			CacheEntries: 2000,
		},
		Folders: FoldersConfig{
			RestoreOnStart:  true,
			DefaultListFile: filepath.Join(home, "folders.fecf"),
		},
		Watch: WatchConfig{
			Enabled:    true,
			DebounceMs: 300,
		},
		Hotkeys: DefaultHotkeys(),
	}
}

// sanitize replaces out-of-range values with defaults.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.UI.Theme != "light" && c.UI.Theme != "dark" {
		c.UI.Theme = def.UI.Theme
	}
	if c.UI.IconSize < 16 || c.UI.IconSize > 1024 {
		c.UI.IconSize = def.UI.IconSize
	}
	if c.UI.Spacing < 0 {
		c.UI.Spacing = def.UI.Spacing
	}
	if c.UI.LabelTextSize <= 0 {
		c.UI.LabelTextSize = def.UI.LabelTextSize
	}
	if c.Thumbnails.Workers <= 0 {
		c.Thumbnails.Workers = def.Thumbnails.Workers
	}
	if c.Thumbnails.CacheEntries < 0 {
		c.Thumbnails.CacheEntries = def.Thumbnails.CacheEntries
	}
	if c.Watch.DebounceMs <= 0 {
		c.Watch.DebounceMs = def.Watch.DebounceMs
	}
	c.Hotkeys.fillFrom(def.Hotkeys)
}

// ConfigPath returns the config file path: ~/.config/foldergrid/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "foldergrid", "config.json")
}

// Load reads the configuration from the default config file.
func (m *Manager) Load() error {
	return m.LoadFrom(ConfigPath())
}

// LoadFrom reads the configuration from path.
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
func (m *Manager) LoadFrom(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.path = path
	m.parseErr = nil

	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		log.Printf("Config: creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Missing keys keep their defaults.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		// Store error for UI display, use defaults
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil
	}
	cfg.sanitize()

	log.Printf("Config: loaded from %s", m.path)
	m.config = cfg
	return nil
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	if m.path == "" {
		return fmt.Errorf("config: no path to save to")
	}
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Path returns the file the configuration was loaded from.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetTheme updates the theme setting
func (m *Manager) SetTheme(theme string) {
	m.mu.Lock()
	m.config.UI.Theme = theme
	m.mu.Unlock()
	m.Save()
}

// SetIconSize updates the preview size
func (m *Manager) SetIconSize(size int) {
	m.mu.Lock()
	m.config.UI.IconSize = size
	m.mu.Unlock()
	m.Save()
}

// SetDefaultListFile updates the default folder list file
func (m *Manager) SetDefaultListFile(path string) {
	m.mu.Lock()
	m.config.Folders.DefaultListFile = path
	m.mu.Unlock()
	m.Save()
}

// IsDarkMode returns true if dark mode is enabled
func (m *Manager) IsDarkMode() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.UI.Theme == "dark"
}

// GenerateConfig backs up the config at path, if any, and writes a fresh
// default config in its place.
// Returns the backup path if a backup was created, or empty string if no existing config
func GenerateConfig(path string) (backupPath string, err error) {
	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(path), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}
	return backupPath, nil
}
