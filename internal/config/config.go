// Package config loads the TOML configuration file and supplies the
// defaults for everything the file leaves unset.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	General      General           `toml:"general"`
	Keyboard     map[string]string `toml:"keyboard"`
	Destinations Destinations      `toml:"destinations"`
}

// General holds editor-wide settings.
type General struct {
	Theme               string `toml:"theme"`
	LeaderKey           string `toml:"leader_key"`
	AutoSaveIntervalMS  int    `toml:"auto_save_interval_ms"`
	ShowHints           bool   `toml:"show_hints"`
	DataDir             string `toml:"data_dir"`
	FileWatch           bool   `toml:"file_watch"`
	FileWatchDebounceMS int    `toml:"file_watch_debounce_ms"`
	TabWidth            int    `toml:"tab_width"`
}

// Destinations controls which dispatch targets are enabled. Notes
// names the notes application (apple_notes, bear, obsidian) or "off".
// The optional fields pick a list, calendar, folder or vault; empty
// means the application default.
type Destinations struct {
	Reminders     bool   `toml:"reminders"`
	RemindersList string `toml:"reminders_list"`
	Calendar      bool   `toml:"calendar"`
	CalendarName  string `toml:"calendar_name"`
	Notes         string `toml:"notes"`
	NotesFolder   string `toml:"notes_folder"`
	ObsidianVault string `toml:"obsidian_vault"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		General: General{
			Theme:               "tokyo_night",
			LeaderKey:           " ",
			AutoSaveIntervalMS:  5000,
			ShowHints:           true,
			DataDir:             "~/.local/share/kenotex",
			FileWatch:           true,
			FileWatchDebounceMS: 300,
			TabWidth:            2,
		},
		Keyboard: map[string]string{},
		Destinations: Destinations{
			Reminders: true,
			Calendar:  true,
			Notes:     "apple_notes",
		},
	}
}

// Path returns the config file location, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "kenotex", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "kenotex", "config.toml"), nil
}

// Load reads the config from its standard location. A missing file is
// created with the defaults; a malformed file falls back to the
// defaults with the parse error returned for logging.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. The returned Config is always
// usable; the error only reports what went wrong along the way.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := writeDefault(path, cfg); werr != nil {
			return cfg, werr
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal on top of the defaults so missing keys keep them.
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func writeDefault(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	if c.General.Theme == "" {
		c.General.Theme = "tokyo_night"
	}
	if c.General.LeaderKey == "" {
		c.General.LeaderKey = " "
	}
	if c.General.AutoSaveIntervalMS <= 0 {
		c.General.AutoSaveIntervalMS = 5000
	}
	if c.General.FileWatchDebounceMS <= 0 {
		c.General.FileWatchDebounceMS = 300
	}
	if c.General.TabWidth <= 0 {
		c.General.TabWidth = 2
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "~/.local/share/kenotex"
	}
	if c.Keyboard == nil {
		c.Keyboard = map[string]string{}
	}
	if c.Destinations.Notes == "" {
		c.Destinations.Notes = "off"
	}
}

// DataDir returns the expanded data directory path.
func (c Config) DataDir() (string, error) {
	return expandHome(c.General.DataDir)
}

// AutoSaveInterval returns the auto-save period as a duration.
func (c Config) AutoSaveInterval() time.Duration {
	return time.Duration(c.General.AutoSaveIntervalMS) * time.Millisecond
}

// WatchDebounce returns the watcher coalescing window as a duration.
func (c Config) WatchDebounce() time.Duration {
	return time.Duration(c.General.FileWatchDebounceMS) * time.Millisecond
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
