//go:build !darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for Windows/Linux
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Copy:        "Ctrl+C",
		SelectAll:   "Ctrl+A",
		Escape:      "Escape",
		Open:        "Enter",
		Refresh:     "F5",
		AddFolder:   "Ctrl+Shift+O",
		SaveFolders: "Ctrl+S",
		LoadFolders: "Ctrl+O",
	}
}
