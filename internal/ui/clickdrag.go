package ui

import (
	"image"
	"io"

	"gioui.org/f32"
	"gioui.org/gesture"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/transfer"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/unit"
)

// dragThreshold is how far the pointer must travel from the press before
// a press turns into a drag.
const dragThreshold = unit.Dp(6)

// TouchKind classifies a TouchEvent.
type TouchKind int

const (
	TouchPress TouchKind = iota
	TouchClick
	TouchDragStart
	TouchDragMove
	TouchDrop
	TouchCancel
)

// TouchEvent is one step of a press, click or drag on the tracked area.
// Position is relative to the area.
type TouchEvent struct {
	Kind      TouchKind
	Position  image.Point
	Modifiers key.Modifiers
	NumClicks int
}

// ClickAndDraggable tracks click and drag gestures on one area.
// gesture.Drag supplies press, move and release; gesture.Click supplies
// click counts. A press becomes a drag once it moves past dragThreshold,
// and a click is not reported for a press that became a drag.
type ClickAndDraggable struct {
	// Type is the MIME type offered to drop targets.
	Type string

	click gesture.Click
	drag  gesture.Drag

	pid         pointer.ID
	pressPos    f32.Point
	pressMods   key.Modifiers
	pos         f32.Point
	pressed     bool
	dragStarted bool
	dropped     bool
}

// Dragging reports whether a press has turned into a drag.
func (c *ClickAndDraggable) Dragging() bool {
	return c.pressed && c.dragStarted
}

// Pos returns the last pointer position seen while pressed.
func (c *ClickAndDraggable) Pos() image.Point {
	return c.pos.Round()
}

// Events drains the gestures and returns what happened since the last
// frame, in order.
func (c *ClickAndDraggable) Events(gtx layout.Context) []TouchEvent {
	var out []TouchEvent
	threshold := float32(gtx.Dp(dragThreshold))

	for {
		e, ok := c.drag.Update(gtx.Metric, gtx.Source, gesture.Both)
		if !ok {
			break
		}
		switch e.Kind {
		case pointer.Press:
			c.pid = e.PointerID
			c.pressPos, c.pos = e.Position, e.Position
			c.pressMods = e.Modifiers
			c.pressed = true
			c.dragStarted, c.dropped = false, false
			out = append(out, TouchEvent{Kind: TouchPress, Position: e.Position.Round(), Modifiers: e.Modifiers})
		case pointer.Drag:
			if e.PointerID != c.pid || !c.pressed {
				continue
			}
			c.pos = e.Position
			if !c.dragStarted {
				d := e.Position.Sub(c.pressPos)
				if d.X*d.X+d.Y*d.Y < threshold*threshold {
					continue
				}
				c.dragStarted = true
				out = append(out, TouchEvent{Kind: TouchDragStart, Position: c.pressPos.Round(), Modifiers: c.pressMods})
			}
			out = append(out, TouchEvent{Kind: TouchDragMove, Position: e.Position.Round()})
		case pointer.Release:
			if c.pressed && c.dragStarted {
				c.dropped = true
				out = append(out, TouchEvent{Kind: TouchDrop, Position: e.Position.Round()})
			}
			c.pressed, c.dragStarted = false, false
		case pointer.Cancel:
			if c.dragStarted {
				out = append(out, TouchEvent{Kind: TouchCancel})
			}
			c.pressed, c.dragStarted = false, false
		}
	}

	for {
		e, ok := c.click.Update(gtx.Source)
		if !ok {
			break
		}
		if e.Kind == gesture.KindClick && !c.dropped {
			out = append(out, TouchEvent{
				Kind:      TouchClick,
				Position:  e.Position,
				Modifiers: e.Modifiers,
				NumClicks: e.NumClicks,
			})
		}
	}
	return out
}

// Update reports whether a drop target requested the dragged data.
func (c *ClickAndDraggable) Update(gtx layout.Context) (mime string, requested bool) {
	for {
		ev, ok := gtx.Event(transfer.SourceFilter{Target: c, Type: c.Type})
		if !ok {
			break
		}
		if e, ok := ev.(transfer.RequestEvent); ok {
			return e.Type, true
		}
	}
	return "", false
}

// Offer provides data for a drag-and-drop transfer.
func (c *ClickAndDraggable) Offer(gtx layout.Context, mime string, data io.ReadCloser) {
	gtx.Execute(transfer.OfferCmd{Tag: c, Type: mime, Data: data})
}

// Add registers the gestures over an area of the given size.
func (c *ClickAndDraggable) Add(gtx layout.Context, size image.Point) {
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	c.click.Add(gtx.Ops)
	c.drag.Add(gtx.Ops)
	event.Op(gtx.Ops, c)
}
