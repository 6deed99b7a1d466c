//go:build darwin

package config

// DefaultHotkeys returns the default keyboard shortcuts for macOS
func DefaultHotkeys() HotkeysConfig {
	return HotkeysConfig{
		Copy:        "Cmd+C",
		SelectAll:   "Cmd+A",
		Escape:      "Escape",
		Open:        "Cmd+Down",
		Refresh:     "Cmd+R",
		AddFolder:   "Cmd+Shift+O",
		SaveFolders: "Cmd+S",
		LoadFolders: "Cmd+O",
	}
}
