//go:build linux

package platform

import "os/exec"

// Open opens path with its default application via xdg-open.
func Open(path string) error {
	return exec.Command("xdg-open", path).Start()
}
