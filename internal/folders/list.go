// Package folders holds the user's folder selection and its line-based
// save file format.
package folders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ext is the default extension of saved folder lists.
const Ext = ".fecf"

// List is an ordered list of folder paths. Duplicates are not stored.
type List struct {
	paths []string
}

// NewList returns a list holding paths, in order, without duplicates.
func NewList(paths ...string) *List {
	l := &List{}
	l.Merge(paths)
	return l
}

// Paths returns a copy of the folders in display order.
func (l *List) Paths() []string {
	out := make([]string, len(l.paths))
	copy(out, l.paths)
	return out
}

// Len returns the number of folders.
func (l *List) Len() int {
	return len(l.paths)
}

// Contains reports whether path is in the list.
func (l *List) Contains(path string) bool {
	for _, p := range l.paths {
		if p == path {
			return true
		}
	}
	return false
}

// Add appends path unless it is empty or already present. It reports
// whether the list changed.
func (l *List) Add(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" || l.Contains(path) {
		return false
	}
	l.paths = append(l.paths, path)
	return true
}

// Merge appends every path not already present, keeping the existing
// order. It returns the number of folders added.
func (l *List) Merge(paths []string) int {
	n := 0
	for _, p := range paths {
		if l.Add(p) {
			n++
		}
	}
	return n
}

// Remove deletes the folders at the given rows. Out-of-range rows are
// ignored. It reports whether anything was removed.
func (l *List) Remove(rows ...int) bool {
	drop := make(map[int]bool, len(rows))
	for _, r := range rows {
		if r >= 0 && r < len(l.paths) {
			drop[r] = true
		}
	}
	if len(drop) == 0 {
		return false
	}
	kept := l.paths[:0]
	for i, p := range l.paths {
		if !drop[i] {
			kept = append(kept, p)
		}
	}
	l.paths = kept
	return true
}

// SavePath returns name with the list extension appended, unless it
// already ends in .fecf or .txt.
func SavePath(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case Ext, ".txt":
		return name
	}
	return name + Ext
}

// Save writes one folder per line, newline-terminated, to SavePath(name).
// It returns the path actually written.
func (l *List) Save(name string) (string, error) {
	path := SavePath(name)
	var b strings.Builder
	for _, p := range l.paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("save folder list: %w", err)
	}
	return path, nil
}

// Read parses a saved folder list. Blank lines are skipped and
// surrounding whitespace is trimmed.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read folder list: %w", err)
	}
	defer f.Close()

	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read folder list: %w", err)
	}
	return paths, nil
}

// Load merges the folders saved at path into the list and returns how
// many were new.
func (l *List) Load(path string) (int, error) {
	paths, err := Read(path)
	if err != nil {
		return 0, err
	}
	return l.Merge(paths), nil
}
