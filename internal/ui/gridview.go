package ui

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/clipboard"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"github.com/justyntemme/foldergrid/internal/config"
	"github.com/justyntemme/foldergrid/internal/debug"
	"github.com/justyntemme/foldergrid/internal/grid"
	"github.com/justyntemme/foldergrid/internal/model"
	"github.com/justyntemme/foldergrid/internal/render"
)

// autoScrollEdge is the band at the top and bottom of the viewport where
// a drag scrolls the grid.
const autoScrollEdge = unit.Dp(24)

// GridView is the free-flow icon grid. Item geometry comes from the
// delegate and grid.FlowLayout; selection and reordering go through the
// grid controller.
type GridView struct {
	Ctl      *grid.Controller
	Delegate *render.Delegate
	Hotkeys  *config.HotkeyMatcher

	touch  ClickAndDraggable
	scroll gesture.Scroll
	offset int

	labelSizes map[string]image.Point
	contentH   int
	width      int
	dirty      bool

	images map[image.Image]paint.ImageOp

	pressRow      int
	pendingSelect int
	dragPos       image.Point // viewport coordinates
	notices       []string
	dark          bool
}

// NewGridView returns a view over ctl painted with d.
func NewGridView(ctl *grid.Controller, d *render.Delegate) *GridView {
	g := &GridView{
		Ctl:      ctl,
		Delegate: d,
		Hotkeys:  config.NewHotkeyMatcher(config.DefaultHotkeys()),
	}
	g.touch.Type = model.URIListMIME
	g.Reset()
	return g
}

// Reset forgets all per-entry state after the collection was rebuilt.
func (g *GridView) Reset() {
	g.labelSizes = make(map[string]image.Point)
	g.images = make(map[image.Image]paint.ImageOp)
	g.offset = 0
	g.pressRow, g.pendingSelect = -1, -1
	g.dirty = true
}

// Invalidate schedules a relayout, e.g. after rows moved.
func (g *GridView) Invalidate() {
	g.dirty = true
}

// SetDark switches label colors for a dark background.
func (g *GridView) SetDark(dark bool) {
	g.dark = dark
}

// takeNotices returns and clears messages meant for the status toast.
func (g *GridView) takeNotices() []string {
	n := g.notices
	g.notices = nil
	return n
}

// relayout recomputes item rectangles for the given viewport width.
func (g *GridView) relayout(width int) {
	if !g.dirty && width == g.width {
		return
	}
	entries := g.Ctl.Collection.Entries()
	sizes := make([]image.Point, len(entries))
	for i, e := range entries {
		sz, ok := g.labelSizes[e.Name]
		if !ok {
			sz = g.Delegate.SizeOf(e.Name)
			g.labelSizes[e.Name] = sz
		}
		sizes[i] = sz
	}
	rects := grid.FlowLayout(sizes, width, g.Ctl.Spacing)
	g.Ctl.SetGeometry(rects)
	g.contentH = grid.ContentHeight(rects, g.Ctl.Spacing)
	g.width, g.dirty = width, false
	debug.Log(debug.UI_LAYOUT, "grid relayout: %d items, width %d, content height %d", len(rects), width, g.contentH)
}

// Layout handles input and paints the grid filling the constraints.
func (g *GridView) Layout(gtx layout.Context, th *material.Theme, eventOut *UIEvent) layout.Dimensions {
	size := gtx.Constraints.Max
	g.relayout(size.X)

	g.processKeys(gtx, eventOut)

	if mime, ok := g.touch.Update(gtx); ok {
		data := model.URIList(g.dragPaths())
		g.touch.Offer(gtx, mime, io.NopCloser(bytes.NewReader(data)))
		debug.Log(debug.UI, "offered %d bytes of %s", len(data), mime)
	}

	for _, e := range g.touch.Events(gtx) {
		g.processTouch(gtx, e, size, eventOut)
	}
	g.relayout(size.X)

	maxOff := max(0, g.contentH-size.Y)
	dist := g.scroll.Update(gtx.Metric, gtx.Source, gtx.Now, gesture.Vertical,
		pointer.ScrollRange{}, pointer.ScrollRange{Min: -g.offset, Max: maxOff - g.offset})
	g.offset += dist
	g.autoScroll(gtx, size.Y)
	g.offset = min(max(g.offset, 0), maxOff)

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	paint.FillShape(gtx.Ops, colGridBg, clip.Rect{Max: size}.Op())

	g.paintItems(gtx, th, size)
	g.paintIndicator(gtx, size)
	g.paintDragBadge(gtx, th)

	// Input areas for next frame's events
	g.scroll.Add(gtx.Ops)
	g.touch.Add(gtx, size)
	event.Op(gtx.Ops, g)

	return layout.Dimensions{Size: size}
}

func (g *GridView) toContent(p image.Point) image.Point {
	return p.Add(image.Pt(0, g.offset))
}

func (g *GridView) processKeys(gtx layout.Context, eventOut *UIEvent) {
	hk := g.Hotkeys
	filters := []event.Filter{key.FocusFilter{Target: g}}
	for _, h := range []config.Hotkey{hk.Copy, hk.SelectAll, hk.Escape, hk.Open} {
		if !h.IsEmpty() {
			filters = append(filters, h.Filter(g))
		}
	}

	sel := g.Ctl.Selection
	for {
		ev, ok := gtx.Event(filters...)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		switch {
		case hk.SelectAll.Matches(e):
			sel.SelectAll(g.Ctl.Collection.Len())
		case hk.Escape.Matches(e):
			if g.Ctl.State() == grid.Dragging {
				g.Ctl.Cancel()
			} else {
				sel.Clear()
			}
		case hk.Copy.Matches(e):
			paths := g.Ctl.ExportPaths()
			if len(paths) == 0 {
				continue
			}
			// Gio's clipboard only carries text; the payload is still a uri-list.
			gtx.Execute(clipboard.WriteCmd{
				Type: "application/text",
				Data: io.NopCloser(bytes.NewReader(model.URIList(paths))),
			})
			g.notices = append(g.notices, fmt.Sprintf("Copied %d %s", len(paths), plural(len(paths), "item", "items")))
		case hk.Open.Matches(e):
			if paths := g.Ctl.ExportPaths(); len(paths) > 0 {
				*eventOut = UIEvent{Action: ActionOpen, Paths: paths}
			}
		}
	}
}

// processTouch applies extended-selection rules: Ctrl/Cmd toggles, Shift
// extends from the anchor, a plain press selects a single item. A plain
// press on an already selected item waits for the click so the whole
// selection can be dragged.
func (g *GridView) processTouch(gtx layout.Context, e TouchEvent, size image.Point, eventOut *UIEvent) {
	sel := g.Ctl.Selection
	rects := g.Ctl.Geometry()
	pt := g.toContent(e.Position)

	switch e.Kind {
	case TouchPress:
		gtx.Execute(key.FocusCmd{Tag: g})
		row := grid.HitTest(rects, pt)
		g.pressRow, g.pendingSelect = row, -1
		switch {
		case row < 0:
			if !e.Modifiers.Contain(key.ModShortcut) && !e.Modifiers.Contain(key.ModShift) {
				sel.Clear()
			}
		case e.Modifiers.Contain(key.ModShortcut):
			sel.Toggle(row)
		case e.Modifiers.Contain(key.ModShift):
			sel.Extend(row)
		case sel.Has(row):
			g.pendingSelect = row
		default:
			sel.Select(row)
		}

	case TouchClick:
		if g.pendingSelect >= 0 {
			sel.Select(g.pendingSelect)
			g.pendingSelect = -1
		}
		if e.NumClicks == 2 {
			if row := grid.HitTest(rects, pt); row >= 0 {
				*eventOut = UIEvent{Action: ActionOpen, Paths: []string{g.Ctl.Collection.At(row).Path()}}
			}
		}

	case TouchDragStart:
		g.pendingSelect = -1
		g.dragPos = e.Position
		if g.pressRow >= 0 && sel.Has(g.pressRow) {
			g.Ctl.BeginDrag(pt)
		}

	case TouchDragMove:
		g.dragPos = e.Position

	case TouchDrop:
		if g.Ctl.State() != grid.Dragging {
			return
		}
		if !e.Position.In(image.Rectangle{Max: size}) {
			debug.Log(debug.UI, "drag released outside the grid at %v", e.Position)
			g.Ctl.Cancel()
			return
		}
		if res := g.Ctl.Drop(pt, true); res.Moved {
			g.dirty = true
		}

	case TouchCancel:
		g.Ctl.Cancel()
	}
}

func (g *GridView) autoScroll(gtx layout.Context, height int) {
	if g.Ctl.State() != grid.Dragging {
		return
	}
	edge := gtx.Dp(autoScrollEdge)
	step := gtx.Dp(unit.Dp(8))
	switch {
	case g.dragPos.Y < edge && g.offset > 0:
		g.offset -= step
	case g.dragPos.Y > height-edge && g.offset < g.contentH-height:
		g.offset += step
	default:
		return
	}
	gtx.Execute(op.InvalidateCmd{})
}

// dragPaths returns the paths a drop target receives: the dragged
// entries, or the selection when no reorder session is running.
func (g *GridView) dragPaths() []string {
	s := g.Ctl.Session()
	if s == nil {
		return g.Ctl.ExportPaths()
	}
	paths := make([]string, len(s.Items))
	for i, it := range s.Items {
		paths[i] = it.Entry.Path()
	}
	return paths
}

func (g *GridView) paintItems(gtx layout.Context, th *material.Theme, size image.Point) {
	view := image.Rect(0, g.offset, size.X, g.offset+size.Y)
	defer op.Offset(image.Pt(0, -g.offset)).Push(gtx.Ops).Pop()

	for row, r := range g.Ctl.Geometry() {
		if !r.Overlaps(view) {
			continue
		}
		e := g.Ctl.Collection.At(row)
		if e == nil {
			continue
		}
		g.paintScene(gtx, th, g.Delegate.Paint(e, r, g.Ctl.Selection.Has(row)))
	}
}

func (g *GridView) paintScene(gtx layout.Context, th *material.Theme, s render.Scene) {
	if s.Image == nil {
		paint.FillShape(gtx.Ops, render.Placeholder, clip.Rect(s.IconBox).Op())
	} else {
		g.paintImage(gtx, s.Image, s.ImageAt)
	}
	if s.Tint != nil {
		paint.FillShape(gtx.Ops, *s.Tint, clip.Rect(s.IconBox).Op())
	}

	textColor := s.Color
	if g.dark {
		textColor = colBlack
		if s.Tint != nil {
			textColor = colAccent
		}
	}
	textSize := g.labelTextSize(gtx)
	for _, line := range s.Lines {
		stack := op.Offset(line.At).Push(gtx.Ops)
		lgtx := gtx
		lgtx.Constraints = layout.Constraints{Max: image.Pt(s.IconBox.Dx()+gtx.Dp(8), g.Delegate.Measurer.LineHeight()*2)}
		lbl := material.Label(th, textSize, line.Text)
		lbl.Color = textColor
		lbl.MaxLines = 1
		lbl.Layout(lgtx)
		stack.Pop()
	}
}

// labelTextSize converts the measurer's pixel size to Sp for the
// current display so shaped labels match the measured wrap.
func (g *GridView) labelTextSize(gtx layout.Context) unit.Sp {
	px := float32(13)
	if fm, ok := g.Delegate.Measurer.(*render.FontMeasurer); ok {
		px = float32(fm.Size())
	}
	if gtx.Metric.PxPerSp <= 0 {
		return unit.Sp(px)
	}
	return unit.Sp(px / gtx.Metric.PxPerSp)
}

func (g *GridView) paintImage(gtx layout.Context, img image.Image, at image.Rectangle) {
	imgOp, ok := g.images[img]
	if !ok {
		imgOp = paint.NewImageOp(img)
		imgOp.Filter = paint.FilterLinear
		g.images[img] = imgOp
	}
	sz := img.Bounds().Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return
	}

	defer op.Offset(at.Min).Push(gtx.Ops).Pop()
	if sz != at.Size() {
		scale := f32.Pt(float32(at.Dx())/float32(sz.X), float32(at.Dy())/float32(sz.Y))
		defer op.Affine(f32.Affine2D{}.Scale(f32.Point{}, scale)).Push(gtx.Ops).Pop()
	}
	imgOp.Add(gtx.Ops)
	defer clip.Rect{Max: sz}.Push(gtx.Ops).Pop()
	paint.PaintOp{}.Add(gtx.Ops)
}

// paintIndicator draws the insertion bar where a drop would land.
func (g *GridView) paintIndicator(gtx layout.Context, size image.Point) {
	t, ok := g.Ctl.DropTarget(g.toContent(g.dragPos))
	if !ok {
		return
	}
	rects := g.Ctl.Geometry()
	r := rects[t.Row]
	half := g.Ctl.Spacing / 2
	x := r.Min.X - half
	if t.After {
		x = r.Max.X + half
	}
	w := max(gtx.Dp(unit.Dp(2)), 2)
	bar := image.Rect(x-w/2, r.Min.Y-g.offset, x-w/2+w, r.Max.Y-g.offset)
	if !bar.Overlaps(image.Rectangle{Max: size}) {
		return
	}
	paint.FillShape(gtx.Ops, colAccent, clip.Rect(bar).Op())
}

// paintDragBadge shows the number of dragged items next to the pointer.
func (g *GridView) paintDragBadge(gtx layout.Context, th *material.Theme) {
	s := g.Ctl.Session()
	if s == nil || g.Ctl.State() != grid.Dragging {
		return
	}
	macro := op.Record(gtx.Ops)
	off := op.Offset(g.dragPos.Add(image.Pt(gtx.Dp(12), gtx.Dp(12)))).Push(gtx.Ops)

	inner := op.Record(gtx.Ops)
	dims := layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		lbl := material.Body2(th, fmt.Sprintf("%d %s", len(s.Items), plural(len(s.Items), "item", "items")))
		lbl.Color = colWhite
		if g.dark {
			lbl.Color = colBlack
		}
		return lbl.Layout(gtx)
	})
	call := inner.Stop()
	rr := gtx.Dp(unit.Dp(4))
	paint.FillShape(gtx.Ops, colDragBadge, clip.RRect{Rect: image.Rectangle{Max: dims.Size}, NE: rr, NW: rr, SE: rr, SW: rr}.Op(gtx.Ops))
	call.Add(gtx.Ops)

	off.Pop()
	op.Defer(gtx.Ops, macro.Stop())
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
