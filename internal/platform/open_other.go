//go:build !linux && !darwin && !windows

package platform

import "os/exec"

// Open tries xdg-open, which most other Unix desktops provide.
func Open(path string) error {
	return exec.Command("xdg-open", path).Start()
}
