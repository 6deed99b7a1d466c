package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/justyntemme/foldergrid/internal/debug"
	"github.com/justyntemme/foldergrid/internal/grid"
	"github.com/justyntemme/foldergrid/internal/model"
	"github.com/justyntemme/foldergrid/internal/render"
	"github.com/justyntemme/foldergrid/internal/thumb"
)

// Explorer is the file grid: the collection, its view and the preview
// pipeline. It must be used from the UI goroutine.
type Explorer struct {
	Collection *model.Collection
	Grid       *GridView

	loader *thumb.Loader // nil: previews are generated during rebuild
}

// ExplorerOptions configures NewExplorer.
type ExplorerOptions struct {
	Generator *thumb.Generator
	Delegate  *render.Delegate
	Spacing   int
	Async     bool
	Workers   int
	Notify    func() // wakes the UI goroutine when previews arrive
}

// NewExplorer wires a collection to a grid view.
func NewExplorer(opts ExplorerOptions) *Explorer {
	var previewer model.Previewer
	if opts.Generator != nil {
		previewer = opts.Generator
	}
	c := model.NewCollection(previewer)
	ex := &Explorer{
		Collection: c,
		Grid:       NewGridView(grid.NewController(c, opts.Spacing), opts.Delegate),
	}
	if opts.Async && opts.Generator != nil {
		ex.loader = thumb.NewLoader(opts.Generator, opts.Workers, opts.Notify)
	}
	c.SetListener(ex)
	return ex
}

// SetFileList rebuilds the grid from paths in the given order. With an
// async loader, entries appear at once with placeholders and previews
// follow through AdoptPreviews.
func (e *Explorer) SetFileList(paths []string) {
	if e.loader == nil {
		e.Collection.Rebuild(paths)
		return
	}
	e.Collection.RebuildDeferred(paths)
	e.loader.Start(e.Collection.Generation(), e.Collection.Entries())
}

// AdoptPreviews installs every preview that is ready without blocking.
// It returns how many were adopted.
func (e *Explorer) AdoptPreviews() int {
	if e.loader == nil {
		return 0
	}
	n := 0
	for {
		select {
		case res := <-e.loader.Results():
			if e.Collection.AdoptPreview(res.Gen, res.Entry, res.Image) {
				n++
			}
		default:
			if n > 0 {
				debug.Log(debug.THUMB, "adopted %d previews", n)
			}
			return n
		}
	}
}

// Rebuilt implements model.Listener.
func (e *Explorer) Rebuilt(n int) {
	e.Grid.Ctl.Reset()
	e.Grid.Reset()
}

// RowsMoved implements model.Listener.
func (e *Explorer) RowsMoved(rows []int, to int) {
	debug.Log(debug.UI, "rows %v moved to %d", rows, to)
	e.Grid.Invalidate()
}

// Status summarises the grid for the status line, e.g.
// "42 files, 1.2 MB (3 selected)".
func (e *Explorer) Status() string {
	var total uint64
	for _, fe := range e.Collection.Entries() {
		total += uint64(fe.Size)
	}
	n := e.Collection.Len()
	s := fmt.Sprintf("%s %s, %s", humanize.Comma(int64(n)), plural(n, "file", "files"), humanize.Bytes(total))
	if sel := e.Grid.Ctl.Selection.Len(); sel > 0 {
		s += fmt.Sprintf(" (%d selected)", sel)
	}
	return s
}

// Close stops background preview generation.
func (e *Explorer) Close() {
	if e.loader != nil {
		e.loader.Stop()
	}
}
