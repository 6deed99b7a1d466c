package grid

import (
	"image"
	"reflect"
	"testing"

	"github.com/justyntemme/foldergrid/internal/model"
)

const testSpacing = 10

// uniformRects lays out n 100x100 items three to a row.
func uniformRects(n int) []image.Rectangle {
	sizes := make([]image.Point, n)
	for i := range sizes {
		sizes[i] = image.Pt(100, 100)
	}
	return FlowLayout(sizes, 340, testSpacing)
}

func newCollection(n int) *model.Collection {
	c := model.NewCollection(nil)
	for i := 0; i < n; i++ {
		c.Insert(c.Len(), &model.FileEntry{Name: string(rune('a' + i)), Folder: "/data"})
	}
	return c
}

func order(c *model.Collection) string {
	s := ""
	for _, e := range c.Entries() {
		s += e.Name
	}
	return s
}

func TestFlowLayout(t *testing.T) {
	rects := FlowLayout([]image.Point{
		image.Pt(100, 100), image.Pt(100, 130), image.Pt(100, 100), image.Pt(100, 100),
	}, 340, testSpacing)

	want := []image.Rectangle{
		image.Rect(10, 10, 110, 110),
		image.Rect(120, 10, 220, 140),
		image.Rect(230, 10, 330, 110),
		image.Rect(10, 150, 110, 250), // row height follows the tallest item
	}
	if !reflect.DeepEqual(rects, want) {
		t.Errorf("expected %v, got %v", want, rects)
	}
	if h := ContentHeight(rects, testSpacing); h != 260 {
		t.Errorf("expected content height 260, got %d", h)
	}
}

func TestFlowLayoutNarrowViewport(t *testing.T) {
	rects := FlowLayout([]image.Point{image.Pt(100, 100), image.Pt(100, 100)}, 50, testSpacing)
	if rects[0].Min != image.Pt(10, 10) || rects[1].Min != image.Pt(10, 120) {
		t.Errorf("expected one item per row, got %v", rects)
	}
}

func TestHitTest(t *testing.T) {
	rects := uniformRects(4)
	if got := HitTest(rects, image.Pt(150, 50)); got != 1 {
		t.Errorf("expected row 1, got %d", got)
	}
	if got := HitTest(rects, image.Pt(115, 50)); got != -1 {
		t.Errorf("expected gap to miss, got %d", got)
	}
}

func TestResolveDrop(t *testing.T) {
	rects := uniformRects(5) // last item at (120,120)-(220,220)

	testCases := []struct {
		name string
		pt   image.Point
		want Target
	}{
		{"far below and right", image.Pt(2000, 2000), Target{Row: 4, After: true}},
		{"below last row, far left", image.Pt(0, 300), Target{Row: 4, After: true}},
		{"right of last item", image.Pt(300, 170), Target{Row: 4, After: true}},
		{"left of item 1 centre", image.Pt(165, 60), Target{Row: 1, After: false}},
		{"right of item 1 centre", image.Pt(175, 60), Target{Row: 1, After: true}},
		{"on item 3", image.Pt(40, 170), Target{Row: 3, After: false}},
		{"above the first row", image.Pt(50, 0), Target{Row: 0, After: false}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveDrop(rects, testSpacing, tc.pt)
			if !ok {
				t.Fatal("expected a target")
			}
			if got != tc.want {
				t.Errorf("ResolveDrop(%v): expected %+v, got %+v", tc.pt, tc.want, got)
			}
		})
	}
}

func TestResolveDropEmpty(t *testing.T) {
	if _, ok := ResolveDrop(nil, testSpacing, image.Pt(10, 10)); ok {
		t.Error("expected no target for an empty grid")
	}
}

func TestReorder(t *testing.T) {
	testCases := []struct {
		name     string
		selected []int
		target   Target
		want     string
		wantRows []int
	}{
		{"single after later item", []int{0}, Target{Row: 2, After: true}, "bcade", []int{2}},
		{"single before earlier item", []int{4}, Target{Row: 1}, "aebcd", []int{1}},
		{"before first row", []int{2, 3}, Target{Row: 0}, "cdabe", []int{0, 1}},
		{"after last row", []int{0, 1}, Target{Row: 4, After: true}, "cdeab", []int{3, 4}},
		{"unsorted selection keeps row order", []int{3, 0}, Target{Row: 2}, "badce", []int{1, 2}},
		{"target selected and last", []int{3, 4}, Target{Row: 4, After: true}, "abcde", []int{3, 4}},
		{"target selected, before", []int{1, 3}, Target{Row: 3}, "acbde", []int{2, 3}},
		{"target selected, after, not last", []int{0, 1}, Target{Row: 1, After: true}, "cabde", []int{1, 2}},
		{"only the target selected, after", []int{1}, Target{Row: 1, After: true}, "acbde", []int{2}},
		{"only the last row selected, after", []int{4}, Target{Row: 4, After: true}, "abcde", []int{4}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCollection(5)
			rows, ok := Reorder(c, tc.selected, tc.target)
			if !ok {
				t.Fatal("Reorder reported failure")
			}
			if got := order(c); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
			if !reflect.DeepEqual(rows, tc.wantRows) {
				t.Errorf("expected rows %v, got %v", tc.wantRows, rows)
			}
		})
	}
}

func TestReorderNoOp(t *testing.T) {
	c := newCollection(3)
	if _, ok := Reorder(c, nil, Target{Row: 1}); ok {
		t.Error("expected failure with empty selection")
	}
	if _, ok := Reorder(c, []int{0}, Target{Row: 9}); ok {
		t.Error("expected failure with out-of-range target")
	}
	if _, ok := Reorder(model.NewCollection(nil), []int{0}, Target{}); ok {
		t.Error("expected failure on empty collection")
	}
	if got := order(c); got != "abc" {
		t.Errorf("failed reorder changed order to %q", got)
	}
}

func TestSelection(t *testing.T) {
	var s Selection
	s.Toggle(3)
	s.Toggle(1)
	if !reflect.DeepEqual(s.Rows(), []int{1, 3}) {
		t.Errorf("expected [1 3], got %v", s.Rows())
	}
	s.Toggle(3)
	if s.Has(3) {
		t.Error("toggle did not deselect row 3")
	}

	s.Select(2)
	s.Extend(5)
	if !reflect.DeepEqual(s.Rows(), []int{2, 3, 4, 5}) {
		t.Errorf("expected [2 3 4 5], got %v", s.Rows())
	}
	s.Extend(0)
	if !reflect.DeepEqual(s.Rows(), []int{0, 1, 2}) {
		t.Errorf("expected range to pivot on the anchor, got %v", s.Rows())
	}

	s.SelectAll(3)
	if s.Len() != 3 {
		t.Errorf("expected 3 rows, got %d", s.Len())
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("expected empty selection, got %v", s.Rows())
	}
}

func TestControllerDragLifecycle(t *testing.T) {
	c := newCollection(5)
	g := NewController(c, testSpacing)
	g.SetGeometry(uniformRects(5))

	if g.BeginDrag(image.Pt(0, 0)) {
		t.Fatal("drag started without a selection")
	}

	g.Selection.SetRows([]int{0, 2})
	if !g.BeginDrag(image.Pt(60, 60)) {
		t.Fatal("drag did not start")
	}
	if g.State() != Dragging {
		t.Errorf("expected dragging, got %v", g.State())
	}
	if !reflect.DeepEqual(g.Session().Rows(), []int{0, 2}) {
		t.Errorf("expected session rows [0 2], got %v", g.Session().Rows())
	}
	if _, ok := g.DropTarget(image.Pt(2000, 2000)); !ok {
		t.Error("expected a drop preview while dragging")
	}

	res := g.Drop(image.Pt(2000, 2000), true)
	if !res.Handled || !res.Moved {
		t.Fatalf("expected handled move, got %+v", res)
	}
	if got := order(c); got != "bdeac" {
		t.Errorf("expected %q, got %q", "bdeac", got)
	}
	if !reflect.DeepEqual(g.Selection.Rows(), []int{3, 4}) {
		t.Errorf("expected selection to follow the block, got %v", g.Selection.Rows())
	}
	if g.State() != Idle || g.Session() != nil {
		t.Error("drop did not end the session")
	}
}

func TestControllerCancelAndForeignDrop(t *testing.T) {
	c := newCollection(3)
	g := NewController(c, testSpacing)
	g.SetGeometry(uniformRects(3))
	g.Selection.Select(0)

	g.BeginDrag(image.Pt(50, 50))
	g.Cancel()
	if g.State() != Idle || order(c) != "abc" || !g.Selection.Has(0) {
		t.Error("cancel changed state, order or selection")
	}

	g.BeginDrag(image.Pt(50, 50))
	if res := g.Drop(image.Pt(2000, 2000), false); res.Handled {
		t.Error("foreign drop reported as handled")
	}
	if order(c) != "abc" {
		t.Errorf("foreign drop reordered to %q", order(c))
	}
}

func TestControllerResetClearsSelection(t *testing.T) {
	g := NewController(newCollection(3), testSpacing)
	g.Selection.SelectAll(3)
	g.BeginDrag(image.Pt(0, 0))
	g.Reset()
	if g.Selection.Len() != 0 || g.State() != Idle || g.Geometry() != nil {
		t.Error("reset left stale state behind")
	}
}

func TestExportPaths(t *testing.T) {
	g := NewController(newCollection(3), testSpacing)
	g.Selection.SetRows([]int{2, 0})
	got := g.ExportPaths()
	if len(got) != 2 || got[0] != "/data/a" || got[1] != "/data/c" {
		t.Errorf("expected [/data/a /data/c], got %v", got)
	}
}
