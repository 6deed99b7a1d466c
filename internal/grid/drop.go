package grid

import (
	"image"
	"math"

	"github.com/justyntemme/foldergrid/internal/debug"
	"github.com/justyntemme/foldergrid/internal/model"
)

// Target is a resolved drop position: the block lands before or after
// Row.
type Target struct {
	Row   int
	After bool
}

// ResolveDrop maps a drop point in content coordinates to a target row.
// It returns false when there are no items.
//
// Below the last item, or level with it and to its right, always means
// "after the last item". Anywhere else the nearest item centre wins, and
// the side of that centre the point falls on decides before/after.
func ResolveDrop(rects []image.Rectangle, spacing int, pt image.Point) (Target, bool) {
	if len(rects) == 0 {
		return Target{}, false
	}
	last := len(rects) - 1
	lastRect := rects[last]
	half := float64(spacing) / 2
	x, y := float64(pt.X), float64(pt.Y)

	if y > float64(lastRect.Max.Y)+half {
		return Target{Row: last, After: true}, true
	}
	if y > float64(lastRect.Min.Y)-half && x > float64(lastRect.Max.X) {
		return Target{Row: last, After: true}, true
	}

	best := -1
	bestDist := math.Inf(1)
	after := false
	for i, r := range rects {
		cx := float64(r.Min.X+r.Max.X) / 2
		cy := float64(r.Min.Y+r.Max.Y) / 2
		d := math.Hypot(cx-x, cy-y)
		if d < bestDist {
			best, bestDist = i, d
			after = x > cx
		}
	}
	return Target{Row: best, After: after}, true
}

// Reorder moves the selected rows of c to the drop target, preserving
// their relative order, and returns the rows the block now occupies.
//
// Selected rows other than the target are removed highest first, then
// the target's row is re-resolved. A target that is itself selected is
// removed last; when it was the last row, insert-after turns into
// insert-before so the block never lands past the end.
func Reorder(c *model.Collection, selected []int, t Target) ([]int, bool) {
	if c.Len() == 0 || t.Row < 0 || t.Row >= c.Len() {
		return nil, false
	}

	var entries []*model.FileEntry
	for _, r := range sortedUnique(selected) {
		if e := c.At(r); e != nil {
			entries = append(entries, e)
		}
	}
	if len(entries) == 0 {
		return nil, false
	}

	first, err := c.MoveToTarget(entries, t.Row, t.After)
	if err != nil {
		debug.Log(debug.GRID, "reorder: %v", err)
		return nil, false
	}

	rows := make([]int, len(entries))
	for i := range rows {
		rows[i] = first + i
	}
	debug.Log(debug.GRID, "reorder: %d rows to target %d (after=%v) -> %v", len(entries), t.Row, t.After, rows)
	return rows, true
}

func sortedUnique(rows []int) []int {
	s := NewSelection()
	for _, r := range rows {
		s.rows[r] = true
	}
	return s.Rows()
}
