package ui

// UIAction is a user intent the orchestrator must act on.
type UIAction int

const (
	ActionNone UIAction = iota
	ActionAddFolder
	ActionPickFolder
	ActionRemoveFolders
	ActionSaveFolders
	ActionLoadFolders
	ActionOpen
	ActionRescan
	ActionToggleTheme
)

func (a UIAction) String() string {
	switch a {
	case ActionAddFolder:
		return "add-folder"
	case ActionPickFolder:
		return "pick-folder"
	case ActionRemoveFolders:
		return "remove-folders"
	case ActionSaveFolders:
		return "save-folders"
	case ActionLoadFolders:
		return "load-folders"
	case ActionOpen:
		return "open"
	case ActionRescan:
		return "rescan"
	case ActionToggleTheme:
		return "toggle-theme"
	}
	return "none"
}

// UIEvent is returned from Renderer.Layout.
type UIEvent struct {
	Action UIAction
	Path   string   // folder to add, list file to save/load, file to open
	Paths  []string // picked folders
	Rows   []int    // folder rows to remove
}

// State is the orchestrator-owned data the UI displays.
type State struct {
	Folders  []string
	Scanning bool
	Skipped  int // folders that could not be read in the last scan
}
