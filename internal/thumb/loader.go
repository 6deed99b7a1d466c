package thumb

import (
	"context"
	"image"
	"sync"

	"github.com/justyntemme/foldergrid/internal/debug"
	"github.com/justyntemme/foldergrid/internal/model"
)

// Result is a finished preview for one entry of a rebuild generation.
type Result struct {
	Gen   int64
	Entry *model.FileEntry
	Image image.Image
}

// Loader generates previews on a worker pool. Each Start supersedes the
// previous batch: its context is cancelled and its results are dropped.
type Loader struct {
	gen     *Generator
	workers int
	notify  func()
	results chan Result

	mu      sync.Mutex
	current int64
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewLoader creates a loader with the given number of workers. notify,
// if non-nil, is called after each result is queued (typically to wake
// the UI goroutine).
func NewLoader(g *Generator, workers int, notify func()) *Loader {
	if workers < 1 {
		workers = 1
	}
	return &Loader{
		gen:     g,
		workers: workers,
		notify:  notify,
		results: make(chan Result, 256),
	}
}

// Results returns the channel finished previews are delivered on. The
// receiver must still check Gen against its own generation.
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Start cancels any running batch and begins generating previews for
// entries, tagged with gen.
func (l *Loader) Start(gen int64, entries []*model.FileEntry) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.current = gen
	l.mu.Unlock()

	jobs := make(chan *model.FileEntry)
	for i := 0; i < l.workers; i++ {
		l.wg.Add(1)
		go l.work(ctx, gen, jobs)
	}
	go func() {
		defer close(jobs)
		for _, e := range entries {
			select {
			case jobs <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	debug.Log(debug.THUMB, "loader: gen %d queued %d entries on %d workers", gen, len(entries), l.workers)
}

// Current returns the generation of the latest batch.
func (l *Loader) Current() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Stop cancels the running batch and waits for the workers to exit.
func (l *Loader) Stop() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.mu.Unlock()
	l.wg.Wait()
}

func (l *Loader) work(ctx context.Context, gen int64, jobs <-chan *model.FileEntry) {
	defer l.wg.Done()
	for e := range jobs {
		if ctx.Err() != nil {
			return
		}
		img := l.gen.Preview(e.Path())
		if l.Current() != gen {
			debug.Log(debug.THUMB, "loader: dropping stale result for %s (gen %d)", e.Name, gen)
			return
		}
		select {
		case l.results <- Result{Gen: gen, Entry: e, Image: img}:
			if l.notify != nil {
				l.notify()
			}
		case <-ctx.Done():
			return
		}
	}
}
