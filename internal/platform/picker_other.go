//go:build !linux

package platform

// PickFolders is not available on this platform.
func PickFolders(title string) ([]string, error) { return nil, ErrNoDialog }

// PickListFile is not available on this platform.
func PickListFile(title string) (string, error) { return "", ErrNoDialog }

// PickSaveFile is not available on this platform.
func PickSaveFile(title, suggested string) (string, error) { return "", ErrNoDialog }
