//go:build linux

package platform

import (
	"strings"

	"github.com/rymdport/portal/filechooser"

	"github.com/justyntemme/foldergrid/internal/debug"
	"github.com/justyntemme/foldergrid/internal/model"
)

var listFilters = []*filechooser.Filter{{
	Name:  "Folder lists",
	Rules: []filechooser.Rule{{Type: filechooser.GlobPattern, Pattern: ListFilter}},
}}

// PickFolders asks the desktop portal for one or more directories.
// It blocks until the dialog closes; a cancelled dialog returns no paths
// and no error.
func PickFolders(title string) ([]string, error) {
	uris, err := filechooser.OpenFile("", title, &filechooser.OpenFileOptions{
		AcceptLabel: "Select",
		Directory:   true,
		Multiple:    true,
	})
	if err != nil {
		debug.Log(debug.APP, "portal folder chooser: %v", err)
		return nil, err
	}
	return uriPaths(uris), nil
}

// PickListFile asks for an existing folder list to load.
func PickListFile(title string) (string, error) {
	uris, err := filechooser.OpenFile("", title, &filechooser.OpenFileOptions{
		AcceptLabel:   "Load",
		Filters:       listFilters,
		CurrentFilter: listFilters[0],
	})
	if err != nil {
		return "", err
	}
	return firstPath(uris), nil
}

// PickSaveFile asks where to save a folder list.
func PickSaveFile(title, suggested string) (string, error) {
	uris, err := filechooser.SaveFile("", title, &filechooser.SaveFileOptions{
		AcceptLabel:   "Save",
		CurrentName:   suggested,
		Filters:       listFilters,
		CurrentFilter: listFilters[0],
	})
	if err != nil {
		return "", err
	}
	return firstPath(uris), nil
}

func uriPaths(uris []string) []string {
	return model.ParseURIList([]byte(strings.Join(uris, "\r\n")))
}

func firstPath(uris []string) string {
	if paths := uriPaths(uris); len(paths) > 0 {
		return paths[0]
	}
	return ""
}
