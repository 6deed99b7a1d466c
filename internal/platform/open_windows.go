//go:build windows

package platform

import "os/exec"

// Open launches path with its associated application.
func Open(path string) error {
	// 'cmd /c start "" "path"' is the standard way to launch files in Windows
	return exec.Command("cmd", "/c", "start", "", path).Start()
}
