package app

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/foldergrid/internal/debug"
)

// FolderWatcher watches the selected folders and reports, debounced, when
// the set of files inside one of them changed.
type FolderWatcher struct {
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	watching map[string]bool
	notify   chan string
	done     chan struct{}
	debounce time.Duration
	wake     func()
}

// NewFolderWatcher starts a watcher. wake, if non-nil, is called after a
// notification is queued.
func NewFolderWatcher(debounce time.Duration, wake func()) (*FolderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	fw := &FolderWatcher{
		watcher:  w,
		watching: make(map[string]bool),
		notify:   make(chan string, 10),
		done:     make(chan struct{}),
		debounce: debounce,
		wake:     wake,
	}
	go fw.run()
	return fw, nil
}

// affects reports whether op changes the file set. Plain writes only
// change content, which the grid does not show.
func affects(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename)
}

func (fw *FolderWatcher) run() {
	lastEvent := make(map[string]time.Time)
	ticker := time.NewTicker(fw.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-fw.done:
			return

		case ev, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !affects(ev.Op) {
				continue
			}
			dir := filepath.Dir(ev.Name)
			fw.mu.Lock()
			if fw.watching[dir] {
				lastEvent[dir] = time.Now()
				debug.Log(debug.WATCH, "%s on %s", ev.Op, ev.Name)
			} else if fw.watching[ev.Name] {
				// the watched folder itself went away or was renamed
				lastEvent[ev.Name] = time.Now()
				debug.Log(debug.WATCH, "%s on watched folder %s", ev.Op, ev.Name)
			}
			fw.mu.Unlock()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "fsnotify error: %v", err)

		case now := <-ticker.C:
			for dir, at := range lastEvent {
				if now.Sub(at) < fw.debounce {
					continue
				}
				delete(lastEvent, dir)
				select {
				case fw.notify <- dir:
					debug.Log(debug.WATCH, "file set changed: %s", dir)
					if fw.wake != nil {
						fw.wake()
					}
				default:
					// a rescan is already pending
				}
			}
		}
	}
}

// Sync makes the watch list equal to folders. Folders that cannot be
// watched are logged and skipped.
func (fw *FolderWatcher) Sync(folders []string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	want := make(map[string]bool, len(folders))
	for _, f := range folders {
		want[f] = true
		if fw.watching[f] {
			continue
		}
		if err := fw.watcher.Add(f); err != nil {
			debug.Log(debug.WATCH, "cannot watch %s: %v", f, err)
			continue
		}
		fw.watching[f] = true
	}
	for f := range fw.watching {
		if want[f] {
			continue
		}
		if err := fw.watcher.Remove(f); err != nil {
			// path may already be gone
			debug.Log(debug.WATCH, "unwatch %s: %v", f, err)
		}
		delete(fw.watching, f)
	}
	debug.Log(debug.WATCH, "watching %d folders", len(fw.watching))
}

// Watching returns the number of watched folders.
func (fw *FolderWatcher) Watching() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return len(fw.watching)
}

// Notify returns the channel that receives changed folder paths.
func (fw *FolderWatcher) Notify() <-chan string {
	return fw.notify
}

// Close shuts down the watcher
func (fw *FolderWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}
