package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kenotex", "config.toml")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.Theme != "tokyo_night" {
		t.Errorf("theme = %q, want default", cfg.General.Theme)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config was not written: %v", err)
	}

	// The written file must round-trip to the same defaults.
	again, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("second LoadFrom: %v", err)
	}
	if again.General != cfg.General {
		t.Errorf("round-trip general = %+v, want %+v", again.General, cfg.General)
	}
}

func TestLoadFromMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[general]
theme = "nord"
tab_width = 4

[keyboard]
move_left = "a"

[destinations]
reminders = false
notes = "bear"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.Theme != "nord" {
		t.Errorf("theme = %q, want nord", cfg.General.Theme)
	}
	if cfg.General.TabWidth != 4 {
		t.Errorf("tab_width = %d, want 4", cfg.General.TabWidth)
	}
	// Unset keys keep their defaults.
	if cfg.General.AutoSaveIntervalMS != 5000 {
		t.Errorf("auto_save_interval_ms = %d, want default 5000", cfg.General.AutoSaveIntervalMS)
	}
	if !cfg.General.ShowHints {
		t.Error("show_hints should default to true")
	}
	if cfg.Keyboard["move_left"] != "a" {
		t.Errorf("keyboard override = %q, want a", cfg.Keyboard["move_left"])
	}
	if cfg.Destinations.Reminders {
		t.Error("reminders should be disabled")
	}
	if cfg.Destinations.Notes != "bear" {
		t.Errorf("notes = %q, want bear", cfg.Destinations.Notes)
	}
}

func TestLoadFromMalformedFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if cfg.General.Theme != "tokyo_night" {
		t.Errorf("fallback theme = %q, want default", cfg.General.Theme)
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	if cfg.AutoSaveInterval().Milliseconds() != 5000 {
		t.Errorf("auto-save = %v", cfg.AutoSaveInterval())
	}
	if cfg.WatchDebounce().Milliseconds() != 300 {
		t.Errorf("debounce = %v", cfg.WatchDebounce())
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory in test environment")
	}
	got, err := expandHome("~/notes")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "notes") {
		t.Errorf("expandHome = %q", got)
	}

	got, err = expandHome("/absolute/path")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/absolute/path" {
		t.Errorf("absolute path changed: %q", got)
	}
}
