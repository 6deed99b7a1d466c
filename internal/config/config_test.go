package config

import (
	"os"
	"path/filepath"
	"testing"

	"gioui.org/io/key"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foldergrid", "config.json")
	m := NewManager()
	if err := m.LoadFrom(path); err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	cfg := m.Get()
	if cfg.UI.IconSize != 128 || cfg.UI.Spacing != 10 || !cfg.Thumbnails.Async {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if m.ParseError() != nil {
		t.Errorf("unexpected parse error %v", m.ParseError())
	}
}

func TestLoadPartialAndSanitize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"ui": {"theme": "dark", "iconSize": 3}, "watch": {"enabled": false}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.LoadFrom(path); err != nil {
		t.Fatal(err)
	}
	cfg := m.Get()
	if !m.IsDarkMode() {
		t.Error("expected dark theme")
	}
	if cfg.UI.IconSize != 128 {
		t.Errorf("expected invalid icon size replaced by default, got %d", cfg.UI.IconSize)
	}
	if cfg.Watch.Enabled {
		t.Error("expected watch disabled")
	}
	if cfg.Watch.DebounceMs != 300 {
		t.Errorf("expected missing key to keep default, got %d", cfg.Watch.DebounceMs)
	}
	if cfg.Hotkeys.SelectAll == "" {
		t.Error("expected default hotkeys filled in")
	}
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager()
	if err := m.LoadFrom(path); err != nil {
		t.Fatalf("parse errors should not fail Load: %v", err)
	}
	if m.ParseError() == nil {
		t.Error("expected parse error to be remembered")
	}
	if m.Get().UI.IconSize != 128 {
		t.Error("expected defaults after parse error")
	}
}

func TestSetAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m := NewManager()
	if err := m.LoadFrom(path); err != nil {
		t.Fatal(err)
	}
	m.SetIconSize(96)

	other := NewManager()
	if err := other.LoadFrom(path); err != nil {
		t.Fatal(err)
	}
	if other.Get().UI.IconSize != 96 {
		t.Errorf("expected saved icon size 96, got %d", other.Get().UI.IconSize)
	}
}

func TestGenerateConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	backup, err := GenerateConfig(path)
	if err != nil || backup != "" {
		t.Fatalf("first generate: backup=%q err=%v", backup, err)
	}
	backup, err = GenerateConfig(path)
	if err != nil || backup == "" {
		t.Fatalf("second generate: backup=%q err=%v", backup, err)
	}
	if _, err := os.Stat(backup); err != nil {
		t.Errorf("backup missing: %v", err)
	}
}

func TestParseHotkey(t *testing.T) {
	testCases := []struct {
		in   string
		want Hotkey
	}{
		{"Ctrl+A", Hotkey{Key: "A", Modifiers: key.ModCtrl}},
		{"ctrl+shift+o", Hotkey{Key: "O", Modifiers: key.ModCtrl | key.ModShift}},
		{"Cmd+Down", Hotkey{Key: key.NameDownArrow, Modifiers: key.ModCommand}},
		{"Escape", Hotkey{Key: key.NameEscape}},
		{"F5", Hotkey{Key: key.NameF5}},
		{"", Hotkey{}},
	}
	for _, tc := range testCases {
		if got := ParseHotkey(tc.in); got != tc.want {
			t.Errorf("ParseHotkey(%q): expected %+v, got %+v", tc.in, tc.want, got)
		}
	}

	if s := ParseHotkey("shift+ctrl+s").String(); s != "Ctrl+Shift+S" {
		t.Errorf("expected canonical string, got %q", s)
	}
}

func TestHotkeyMatches(t *testing.T) {
	h := ParseHotkey("Ctrl+O")
	if !h.Matches(key.Event{Name: "O", Modifiers: key.ModCtrl}) {
		t.Error("expected match")
	}
	if h.Matches(key.Event{Name: "O", Modifiers: key.ModCtrl | key.ModShift}) {
		t.Error("extra modifier should not match")
	}
	if len(NewHotkeyMatcher(DefaultHotkeys()).All()) != 8 {
		t.Error("expected every default hotkey to be configured")
	}
}
