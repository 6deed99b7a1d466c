package config

import (
	"strings"

	"gioui.org/io/event"
	"gioui.org/io/key"
)

// Hotkey is a parsed keyboard shortcut.
type Hotkey struct {
	Key       key.Name
	Modifiers key.Modifiers
}

var modifierNames = map[string]key.Modifiers{
	"ctrl":    key.ModCtrl,
	"control": key.ModCtrl,
	"shift":   key.ModShift,
	"alt":     key.ModAlt,
	"option":  key.ModAlt,
	"cmd":     key.ModCommand,
	"command": key.ModCommand,
	"super":   key.ModSuper,
	"meta":    key.ModSuper,
	"win":     key.ModSuper,
}

var keyNames = map[string]key.Name{
	"f1": key.NameF1, "f2": key.NameF2, "f3": key.NameF3, "f4": key.NameF4,
	"f5": key.NameF5, "f6": key.NameF6, "f7": key.NameF7, "f8": key.NameF8,
	"f9": key.NameF9, "f10": key.NameF10, "f11": key.NameF11, "f12": key.NameF12,

	"up":       key.NameUpArrow,
	"down":     key.NameDownArrow,
	"left":     key.NameLeftArrow,
	"right":    key.NameRightArrow,
	"home":     key.NameHome,
	"end":      key.NameEnd,
	"pageup":   key.NamePageUp,
	"pagedown": key.NamePageDown,

	"enter":     key.NameReturn,
	"return":    key.NameReturn,
	"tab":       key.NameTab,
	"space":     key.NameSpace,
	"backspace": key.NameDeleteBackward,
	"delete":    key.NameDeleteForward,
	"del":       key.NameDeleteForward,
	"escape":    key.NameEscape,
	"esc":       key.NameEscape,
}

// ParseHotkey parses a shortcut like "Ctrl+Shift+O". Unknown key names
// are passed through as-is.
func ParseHotkey(s string) Hotkey {
	var h Hotkey
	for _, part := range strings.Split(s, "+") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lower := strings.ToLower(part)
		if m, ok := modifierNames[lower]; ok {
			h.Modifiers |= m
			continue
		}
		switch {
		case len(part) == 1:
			h.Key = key.Name(strings.ToUpper(part))
		case keyNames[lower] != "":
			h.Key = keyNames[lower]
		default:
			h.Key = key.Name(part)
		}
	}
	return h
}

// Matches checks if a key event matches this hotkey exactly, so that
// Ctrl+O and Ctrl+Shift+O stay distinct.
func (h Hotkey) Matches(k key.Event) bool {
	if h.Key == "" {
		return false
	}
	return k.Name == h.Key && k.Modifiers == h.Modifiers
}

// IsEmpty returns true if the hotkey is not configured
func (h Hotkey) IsEmpty() bool {
	return h.Key == ""
}

// String returns a human-readable representation of the hotkey
func (h Hotkey) String() string {
	if h.Key == "" {
		return ""
	}
	var parts []string
	for _, m := range []struct {
		mod  key.Modifiers
		name string
	}{
		{key.ModCtrl, "Ctrl"},
		{key.ModCommand, "Cmd"},
		{key.ModShift, "Shift"},
		{key.ModAlt, "Alt"},
		{key.ModSuper, "Super"},
	} {
		if h.Modifiers.Contain(m.mod) {
			parts = append(parts, m.name)
		}
	}
	return strings.Join(append(parts, string(h.Key)), "+")
}

// Filter returns a key.Filter that matches this hotkey
func (h Hotkey) Filter(focus event.Tag) key.Filter {
	return key.Filter{
		Focus:    focus,
		Name:     h.Key,
		Required: h.Modifiers,
	}
}

// HotkeysConfig holds the configurable shortcuts as strings like "Ctrl+A".
type HotkeysConfig struct {
	Copy        string `json:"copy"`
	SelectAll   string `json:"selectAll"`
	Escape      string `json:"escape"`
	Open        string `json:"open"`
	Refresh     string `json:"refresh"`
	AddFolder   string `json:"addFolder"`
	SaveFolders string `json:"saveFolders"`
	LoadFolders string `json:"loadFolders"`
}

// fillFrom sets every empty shortcut to its value in def.
func (h *HotkeysConfig) fillFrom(def HotkeysConfig) {
	fields := []struct {
		dst *string
		src string
	}{
		{&h.Copy, def.Copy},
		{&h.SelectAll, def.SelectAll},
		{&h.Escape, def.Escape},
		{&h.Open, def.Open},
		{&h.Refresh, def.Refresh},
		{&h.AddFolder, def.AddFolder},
		{&h.SaveFolders, def.SaveFolders},
		{&h.LoadFolders, def.LoadFolders},
	}
	for _, f := range fields {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
}

// HotkeyMatcher provides efficient hotkey matching from config
type HotkeyMatcher struct {
	// Grid
	Copy      Hotkey
	SelectAll Hotkey
	Escape    Hotkey
	Open      Hotkey
	Refresh   Hotkey

	// Folder panel
	AddFolder   Hotkey
	SaveFolders Hotkey
	LoadFolders Hotkey
}

// NewHotkeyMatcher creates a matcher from config
func NewHotkeyMatcher(cfg HotkeysConfig) *HotkeyMatcher {
	return &HotkeyMatcher{
		Copy:      ParseHotkey(cfg.Copy),
		SelectAll: ParseHotkey(cfg.SelectAll),
		Escape:    ParseHotkey(cfg.Escape),
		Open:      ParseHotkey(cfg.Open),
		Refresh:   ParseHotkey(cfg.Refresh),

		AddFolder:   ParseHotkey(cfg.AddFolder),
		SaveFolders: ParseHotkey(cfg.SaveFolders),
		LoadFolders: ParseHotkey(cfg.LoadFolders),
	}
}

// All returns every configured hotkey, for building key filters.
func (m *HotkeyMatcher) All() []Hotkey {
	all := []Hotkey{m.Copy, m.SelectAll, m.Escape, m.Open, m.Refresh, m.AddFolder, m.SaveFolders, m.LoadFolders}
	out := all[:0]
	for _, h := range all {
		if !h.IsEmpty() {
			out = append(out, h)
		}
	}
	return out
}
