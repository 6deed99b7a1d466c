//go:build darwin

package platform

import "os/exec"

// Open opens path with the macOS 'open' command.
func Open(path string) error {
	return exec.Command("open", path).Start()
}
