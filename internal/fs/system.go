package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/foldergrid/internal/debug"
)

type OpType int

const (
	ScanFolders OpType = iota
	CancelScan
)

type Request struct {
	Op      OpType
	Folders []string
	Gen     int64 // Generation counter to track stale requests
}

// Entry is one regular file found directly inside a scanned folder.
type Entry struct {
	Name    string
	Path    string
	Folder  string
	Size    int64
	ModTime time.Time
}

type Response struct {
	Op        OpType
	Folders   []string
	Entries   []Entry
	Skipped   []string // folders that could not be read
	Err       error
	Gen       int64 // Generation counter from request
	Cancelled bool
}

// Paths returns the absolute path of every entry, in scan order.
func (r Response) Paths() []string {
	paths := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		paths[i] = e.Path
	}
	return paths
}

type System struct {
	RequestChan  chan Request
	ResponseChan chan Response

	// Notify, if set, is called after every response is queued.
	Notify func()

	cancelMu   sync.Mutex
	cancelFunc context.CancelFunc
	currentGen int64
}

func NewSystem() *System {
	return &System{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

func (s *System) Start() {
	for req := range s.RequestChan {
		debug.Log(debug.FS, "Request: op=%d folders=%d gen=%d", req.Op, len(req.Folders), req.Gen)

		switch req.Op {
		case CancelScan:
			s.cancel()

		case ScanFolders:
			s.cancelMu.Lock()
			if s.cancelFunc != nil {
				debug.Log(debug.FS, "Cancelling scan gen %d before gen %d", s.currentGen, req.Gen)
				s.cancelFunc()
			}
			ctx, cancel := context.WithCancel(context.Background())
			s.cancelFunc = cancel
			s.currentGen = req.Gen
			s.cancelMu.Unlock()

			// Scan in a goroutine so newer requests can cancel it.
			go func(ctx context.Context, req Request) {
				resp := s.scanFolders(ctx, req.Folders)
				resp.Gen = req.Gen
				if ctx.Err() != nil {
					resp.Cancelled = true
					debug.Log(debug.FS, "Scan cancelled (gen %d)", req.Gen)
				}
				debug.Log(debug.FS, "Scan response: folders=%d entries=%d skipped=%d gen=%d",
					len(resp.Folders), len(resp.Entries), len(resp.Skipped), resp.Gen)
				s.respond(resp)
			}(ctx, req)
		}
	}
}

// Submit queues req without blocking. When the queue is full, the oldest
// queued requests are dropped: only the newest generation is ever applied.
func (s *System) Submit(req Request) {
	for {
		select {
		case s.RequestChan <- req:
			return
		default:
		}
		select {
		case old := <-s.RequestChan:
			debug.Log(debug.FS, "Dropping queued request op=%d gen=%d for gen %d", old.Op, old.Gen, req.Gen)
		default:
		}
	}
}

func (s *System) cancel() {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	if s.cancelFunc != nil {
		debug.Log(debug.FS, "Cancelling current scan (gen %d)", s.currentGen)
		s.cancelFunc()
		s.cancelFunc = nil
	}
}

func (s *System) respond(resp Response) {
	s.ResponseChan <- resp
	if s.Notify != nil {
		s.Notify()
	}
}

// skipDirRoots contains top-level pseudo filesystems we refuse to scan.
var skipDirRoots = map[string]bool{
	"dev":        true,
	"proc":       true,
	"sys":        true,
	"run":        true,
	"snap":       true,
	"boot":       true,
	"lost+found": true,
}

// shouldSkipPath returns true if path lies under one of skipDirRoots.
func shouldSkipPath(path string) bool {
	if len(path) < 2 || path[0] != '/' {
		return false
	}
	rest := path[1:]
	slashIdx := strings.IndexByte(rest, '/')
	var firstComponent string
	if slashIdx == -1 {
		firstComponent = rest
	} else {
		firstComponent = rest[:slashIdx]
	}
	return skipDirRoots[firstComponent]
}

// scanFolders lists the regular files directly inside each folder.
// Folders keep their given order; files within a folder are sorted by
// name. Unreadable folders are reported in Skipped, not as an error.
func (s *System) scanFolders(ctx context.Context, folders []string) Response {
	resp := Response{Op: ScanFolders, Folders: folders}
	for _, folder := range folders {
		if ctx.Err() != nil {
			return resp
		}
		if shouldSkipPath(folder) {
			debug.Log(debug.FS, "scan: refusing system path %q", folder)
			resp.Skipped = append(resp.Skipped, folder)
			continue
		}
		entries, err := listFiles(folder)
		if err != nil {
			debug.Log(debug.FS, "scan: skipping %q: %v", folder, err)
			resp.Skipped = append(resp.Skipped, folder)
			continue
		}
		resp.Entries = append(resp.Entries, entries...)
	}
	return resp
}

// listFiles returns the regular files directly inside folder, following
// symlinks, sorted by name.
func listFiles(folder string) ([]Entry, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "scan", Path: folder, Err: fs.ErrInvalid}
	}
	folder = filepath.Clean(folder)

	var result []Entry
	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: true, // Follow symlinks to get target info
	}

	err = fastwalk.Walk(conf, folder, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS_ENTRY, "scan: walk error at %q: %v", fullPath, err)
			return nil
		}
		if fullPath == folder {
			return nil
		}
		// Only direct children.
		if filepath.Dir(fullPath) != folder {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			debug.Log(debug.FS_ENTRY, "scan: skipping %q: stat error: %v", d.Name(), err)
			return nil
		}
		if !info.Mode().IsRegular() {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		mu.Lock()
		result = append(result, Entry{
			Name:    d.Name(),
			Path:    fullPath,
			Folder:  folder,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	debug.Log(debug.FS, "scan: %q -> %d files", folder, len(result))
	return result, nil
}
