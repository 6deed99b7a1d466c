// Package model holds the ordered collection of file entries shown in the
// icon grid. It is plain data plus a mutation API; view notification goes
// through the Listener interface so the reorder logic runs headless.
package model

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/justyntemme/foldergrid/internal/debug"
)

// ErrNoEntries is returned by moves against an empty collection or with
// an empty entry list.
var ErrNoEntries = errors.New("model: no entries")

// ErrTargetRange is returned when a move names a target row outside the
// collection.
var ErrTargetRange = errors.New("model: target row out of range")

// FileEntry is one file represented in the grid.
// Name and Folder together reconstruct the absolute path.
type FileEntry struct {
	Name    string
	Folder  string
	Preview image.Image // nil until generated, or when generation failed
	Size    int64
	ModTime time.Time
}

// Path returns the absolute path of the entry.
func (e *FileEntry) Path() string {
	return filepath.Join(e.Folder, e.Name)
}

// Previewer produces the fixed-size preview for a file.
type Previewer interface {
	Preview(path string) image.Image
}

// Listener is notified after the collection changes.
type Listener interface {
	Rebuilt(n int)
	RowsMoved(rows []int, to int)
}

// Collection is the ordered sequence of entries backing the grid.
// Pointer identity is entry identity: duplicates by path are allowed.
type Collection struct {
	entries   []*FileEntry
	previewer Previewer
	listener  Listener
	gen       int64
}

// NewCollection creates an empty collection. previewer may be nil, in
// which case Rebuild leaves previews unset.
func NewCollection(previewer Previewer) *Collection {
	return &Collection{previewer: previewer}
}

// SetListener installs the change listener (nil to remove).
func (c *Collection) SetListener(l Listener) {
	c.listener = l
}

// Generation returns the rebuild counter. It increments on every rebuild.
func (c *Collection) Generation() int64 {
	return c.gen
}

// Len returns the number of entries.
func (c *Collection) Len() int {
	return len(c.entries)
}

// At returns the entry at row, or nil when out of range.
func (c *Collection) At(row int) *FileEntry {
	if row < 0 || row >= len(c.entries) {
		return nil
	}
	return c.entries[row]
}

// Entries returns a copy of the entry slice in display order.
func (c *Collection) Entries() []*FileEntry {
	out := make([]*FileEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// IndexOf returns the row of e, or -1.
func (c *Collection) IndexOf(e *FileEntry) int {
	for i, cur := range c.entries {
		if cur == e {
			return i
		}
	}
	return -1
}

// Rebuild replaces the collection with one entry per regular file in
// paths, in input order, each with a generated preview.
func (c *Collection) Rebuild(paths []string) {
	c.rebuild(paths, c.previewer)
}

// RebuildDeferred is Rebuild without preview generation. Previews are
// expected to arrive later through AdoptPreview.
func (c *Collection) RebuildDeferred(paths []string) {
	c.rebuild(paths, nil)
}

func (c *Collection) rebuild(paths []string, previewer Previewer) {
	c.gen++
	c.entries = make([]*FileEntry, 0, len(paths))

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			debug.Log(debug.FS_ENTRY, "rebuild: skipping %q: %v", p, err)
			continue
		}
		if !info.Mode().IsRegular() {
			debug.Log(debug.FS_ENTRY, "rebuild: skipping %q: not a regular file", p)
			continue
		}
		e := &FileEntry{
			Name:    filepath.Base(p),
			Folder:  filepath.Dir(p),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if previewer != nil {
			e.Preview = previewer.Preview(p)
		}
		c.entries = append(c.entries, e)
	}

	debug.Log(debug.MODEL, "rebuild gen=%d: %d paths -> %d entries", c.gen, len(paths), len(c.entries))
	if c.listener != nil {
		c.listener.Rebuilt(len(c.entries))
	}
}

// AdoptPreview installs an asynchronously generated preview. It reports
// false when the result is stale: a newer rebuild happened or the entry
// is no longer in the collection.
func (c *Collection) AdoptPreview(gen int64, e *FileEntry, img image.Image) bool {
	if gen != c.gen || img == nil {
		return false
	}
	if c.IndexOf(e) < 0 {
		return false
	}
	e.Preview = img
	return true
}

// Insert places entries at row, shifting later entries down.
// row is clamped to [0, Len].
func (c *Collection) Insert(row int, entries ...*FileEntry) {
	if row < 0 {
		row = 0
	}
	if row > len(c.entries) {
		row = len(c.entries)
	}
	grown := make([]*FileEntry, 0, len(c.entries)+len(entries))
	grown = append(grown, c.entries[:row]...)
	grown = append(grown, entries...)
	grown = append(grown, c.entries[row:]...)
	c.entries = grown
}

// Take removes and returns the entry at row, or nil when out of range.
func (c *Collection) Take(row int) *FileEntry {
	if row < 0 || row >= len(c.entries) {
		return nil
	}
	e := c.entries[row]
	c.entries = append(c.entries[:row], c.entries[row+1:]...)
	return e
}

// MoveEntries removes every entry in entries from its current position
// and reinserts the whole ordered list immediately after afterIndex
// (-1 means the front), keeping the given relative order. An anchor at
// afterIndex that is itself moved is re-resolved as in MoveToTarget.
// It returns the row of the first inserted entry.
func (c *Collection) MoveEntries(entries []*FileEntry, afterIndex int) (int, error) {
	if len(entries) == 0 || len(c.entries) == 0 {
		return -1, ErrNoEntries
	}
	if afterIndex < -1 || afterIndex >= len(c.entries) {
		afterIndex = len(c.entries) - 1
	}
	if afterIndex == -1 {
		return c.MoveToTarget(entries, 0, false)
	}
	return c.MoveToTarget(entries, afterIndex, true)
}

// MoveToTarget moves entries next to the entry at row target, before it
// or after it. Entries other than the target are removed highest row
// first, then the target's row is re-resolved. A target that is itself
// moved is removed last; if it is then the last row, the block goes in
// its slot instead of after it.
// It returns the row of the first inserted entry.
func (c *Collection) MoveToTarget(entries []*FileEntry, target int, after bool) (int, error) {
	if len(entries) == 0 || len(c.entries) == 0 {
		return -1, ErrNoEntries
	}
	if target < 0 || target >= len(c.entries) {
		return -1, ErrTargetRange
	}
	anchor := c.entries[target]

	// Snapshot original rows before touching anything.
	type moved struct {
		row   int
		entry *FileEntry
	}
	var rows []moved
	anchorMoved := false
	seen := make(map[*FileEntry]bool, len(entries))
	for _, e := range entries {
		if seen[e] {
			continue
		}
		row := c.IndexOf(e)
		if row < 0 {
			continue
		}
		seen[e] = true
		if e == anchor {
			anchorMoved = true
			continue
		}
		rows = append(rows, moved{row, e})
	}
	if len(rows) == 0 && !anchorMoved {
		return -1, ErrNoEntries
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].row > rows[j].row })
	from := make([]int, 0, len(rows)+1)
	for _, m := range rows {
		c.Take(m.row)
		from = append(from, m.row)
	}

	insertAt := c.IndexOf(anchor)
	if anchorMoved {
		if after && insertAt == len(c.entries)-1 {
			after = false
		}
		from = append(from, target)
		c.Take(insertAt)
	}
	if after {
		insertAt++
	}

	block := make([]*FileEntry, 0, len(seen))
	for _, e := range entries {
		if seen[e] {
			block = append(block, e)
			delete(seen, e)
		}
	}
	c.Insert(insertAt, block...)

	debug.Log(debug.MODEL, "moved %d entries to row %d (after=%v) -> rows %d..%d",
		len(block), target, after, insertAt, insertAt+len(block)-1)
	if c.listener != nil {
		sort.Ints(from)
		c.listener.RowsMoved(from, insertAt)
	}
	return insertAt, nil
}

// ExportAsPaths returns the absolute paths of the referenced rows in
// ascending row order. Out-of-range and repeated indices are ignored.
func (c *Collection) ExportAsPaths(indices []int) []string {
	rows := make([]int, 0, len(indices))
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if i < 0 || i >= len(c.entries) || seen[i] {
			continue
		}
		seen[i] = true
		rows = append(rows, i)
	}
	sort.Ints(rows)

	paths := make([]string, len(rows))
	for n, i := range rows {
		paths[n] = c.entries[i].Path()
	}
	return paths
}
