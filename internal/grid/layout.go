// Package grid is the headless core of the icon grid: flow layout,
// selection, drop resolution and the drag-reorder state machine. It has
// no dependency on the windowing toolkit; internal/ui adapts it.
package grid

import "image"

// FlowLayout places items left to right, wrapping to a new row when the
// next item would not fit in width. Every item is surrounded by spacing
// pixels and a row is as tall as its tallest item. The returned
// rectangles are in content coordinates and parallel sizes.
func FlowLayout(sizes []image.Point, width, spacing int) []image.Rectangle {
	rects := make([]image.Rectangle, len(sizes))
	x, y := spacing, spacing
	rowHeight := 0

	for i, sz := range sizes {
		// Wrap unless this is the first item on the row.
		if x > spacing && x+sz.X+spacing > width {
			x = spacing
			y += rowHeight + spacing
			rowHeight = 0
		}
		rects[i] = image.Rect(x, y, x+sz.X, y+sz.Y)
		x += sz.X + spacing
		if sz.Y > rowHeight {
			rowHeight = sz.Y
		}
	}
	return rects
}

// ContentHeight returns the total height needed to show rects.
func ContentHeight(rects []image.Rectangle, spacing int) int {
	h := 0
	for _, r := range rects {
		if r.Max.Y > h {
			h = r.Max.Y
		}
	}
	return h + spacing
}

// HitTest returns the index of the rectangle containing pt, or -1.
func HitTest(rects []image.Rectangle, pt image.Point) int {
	for i, r := range rects {
		if pt.In(r) {
			return i
		}
	}
	return -1
}
