package grid

import (
	"image"

	"github.com/google/uuid"

	"github.com/justyntemme/foldergrid/internal/debug"
	"github.com/justyntemme/foldergrid/internal/model"
)

// DragState is the state of the reorder state machine.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// SessionItem is one dragged entry and the row it started from.
type SessionItem struct {
	Row   int
	Entry *model.FileEntry
}

// DragSession records which entries a drag gesture is relocating.
// Items are ordered by original row.
type DragSession struct {
	ID    uuid.UUID
	Start image.Point
	Items []SessionItem
}

// Rows returns the original rows of the dragged entries.
func (d *DragSession) Rows() []int {
	rows := make([]int, len(d.Items))
	for i, it := range d.Items {
		rows[i] = it.Row
	}
	return rows
}

// DropResult describes what a drop did.
type DropResult struct {
	Handled bool // false: not ours, let the platform handle it
	Moved   bool
	Target  Target
	Rows    []int // rows the moved block occupies
}

// Controller owns the selection, the current item geometry and the drag
// session for one grid. All methods must be called from the UI goroutine.
type Controller struct {
	Collection *model.Collection
	Selection  *Selection
	Spacing    int

	rects   []image.Rectangle
	state   DragState
	session *DragSession
}

// NewController binds a controller to c.
func NewController(c *model.Collection, spacing int) *Controller {
	return &Controller{
		Collection: c,
		Selection:  NewSelection(),
		Spacing:    spacing,
	}
}

// SetGeometry records the item rectangles of the last layout pass, in
// content coordinates, one per row.
func (g *Controller) SetGeometry(rects []image.Rectangle) {
	g.rects = rects
}

// Geometry returns the rectangles recorded by SetGeometry.
func (g *Controller) Geometry() []image.Rectangle {
	return g.rects
}

// State returns the drag state.
func (g *Controller) State() DragState {
	return g.state
}

// Session returns the active drag session, or nil.
func (g *Controller) Session() *DragSession {
	return g.session
}

// Reset is called after a rebuild: row indices are no longer valid.
func (g *Controller) Reset() {
	g.Selection.Clear()
	g.rects = nil
	g.state = Idle
	g.session = nil
}

// BeginDrag captures the current selection as a drag session. It fails
// when nothing is selected or a drag is already running.
func (g *Controller) BeginDrag(start image.Point) bool {
	if g.state != Idle || g.Selection.Len() == 0 {
		return false
	}
	s := &DragSession{ID: uuid.New(), Start: start}
	for _, r := range g.Selection.Rows() {
		if e := g.Collection.At(r); e != nil {
			s.Items = append(s.Items, SessionItem{Row: r, Entry: e})
		}
	}
	if len(s.Items) == 0 {
		return false
	}
	g.session = s
	g.state = Dragging
	debug.Log(debug.GRID, "drag %s: start with %d items at %v", s.ID, len(s.Items), start)
	return true
}

// Cancel abandons the drag session. Order and selection are unchanged.
func (g *Controller) Cancel() {
	if g.session != nil {
		debug.Log(debug.GRID, "drag %s: cancelled", g.session.ID)
	}
	g.state = Idle
	g.session = nil
}

// Drop ends the drag at pt (content coordinates). Drops whose source is
// another view or application are left unhandled.
func (g *Controller) Drop(pt image.Point, sameSource bool) DropResult {
	if !sameSource {
		g.Cancel()
		return DropResult{}
	}
	session := g.session
	g.state = Idle
	g.session = nil
	if session == nil {
		return DropResult{Handled: true}
	}

	target, ok := ResolveDrop(g.rects, g.Spacing, pt)
	if !ok {
		debug.Log(debug.GRID, "drag %s: drop at %v resolved no target", session.ID, pt)
		return DropResult{Handled: true}
	}

	// Rows may have shifted if the collection changed mid-drag; go by
	// entry identity.
	var rows []int
	for _, it := range session.Items {
		if r := g.Collection.IndexOf(it.Entry); r >= 0 {
			rows = append(rows, r)
		}
	}
	moved, ok := Reorder(g.Collection, rows, target)
	if !ok {
		return DropResult{Handled: true, Target: target}
	}
	g.Selection.SetRows(moved)
	debug.Log(debug.GRID, "drag %s: dropped at %v -> %+v", session.ID, pt, target)
	return DropResult{Handled: true, Moved: true, Target: target, Rows: moved}
}

// DropTarget previews where a drop at pt would land, for the insertion
// indicator. It returns false when idle or without items.
func (g *Controller) DropTarget(pt image.Point) (Target, bool) {
	if g.state != Dragging {
		return Target{}, false
	}
	return ResolveDrop(g.rects, g.Spacing, pt)
}

// ExportPaths returns the selected entries' paths in ascending row order.
func (g *Controller) ExportPaths() []string {
	return g.Collection.ExportAsPaths(g.Selection.Rows())
}
