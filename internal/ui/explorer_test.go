package ui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/justyntemme/foldergrid/internal/render"
	"github.com/justyntemme/foldergrid/internal/thumb"
)

type monoMeasurer struct{}

func (monoMeasurer) Advance(s string) int { return 8 * len([]rune(s)) }
func (monoMeasurer) LineHeight() int      { return 14 }

func writeFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	var paths []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte("content of "+n), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func newTestExplorer(async bool) *Explorer {
	return NewExplorer(ExplorerOptions{
		Generator: thumb.NewGenerator(32, thumb.NewCache(16)),
		Delegate:  render.NewDelegate(32, monoMeasurer{}),
		Spacing:   10,
		Async:     async,
		Workers:   2,
	})
}

func TestExplorerSetFileList(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "b.txt", "a.txt", "c.txt")

	ex := newTestExplorer(false)
	defer ex.Close()
	ex.SetFileList(append(paths, filepath.Join(dir, "missing.txt")))

	if ex.Collection.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", ex.Collection.Len())
	}
	if got := ex.Collection.At(0).Name; got != "b.txt" {
		t.Errorf("expected input order to be kept, first entry is %q", got)
	}
	for _, e := range ex.Collection.Entries() {
		if e.Preview == nil {
			t.Errorf("%s has no preview after a synchronous rebuild", e.Name)
		}
	}
}

func TestExplorerRebuildResetsSelection(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "a", "b", "c")

	ex := newTestExplorer(false)
	ex.SetFileList(paths)
	ex.Grid.relayout(200)
	ex.Grid.Ctl.Selection.SelectAll(3)
	ex.Grid.offset = 40

	ex.SetFileList(paths[:2])
	if ex.Grid.Ctl.Selection.Len() != 0 {
		t.Error("selection survived a rebuild")
	}
	if ex.Grid.offset != 0 || !ex.Grid.dirty {
		t.Error("grid view was not reset")
	}
}

func TestExplorerAsyncPreviews(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	f, err := os.Create(filepath.Join(dir, "pic.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	paths := append([]string{f.Name()}, writeFiles(t, dir, "notes.txt")...)

	ex := newTestExplorer(true)
	defer ex.Close()
	ex.SetFileList(paths)

	for _, e := range ex.Collection.Entries() {
		if e.Preview != nil {
			t.Fatalf("%s has a preview before the loader delivered it", e.Name)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	adopted := 0
	for adopted < 2 && time.Now().Before(deadline) {
		adopted += ex.AdoptPreviews()
		time.Sleep(10 * time.Millisecond)
	}
	if adopted != 2 {
		t.Fatalf("expected 2 adopted previews, got %d", adopted)
	}
	pic := ex.Collection.At(0).Preview
	if pic.Bounds().Dx() != 32 {
		t.Errorf("expected a 32px thumbnail, got %v", pic.Bounds())
	}
}

func TestExplorerStatus(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "a", "b")

	ex := newTestExplorer(false)
	ex.SetFileList(paths)
	if got := ex.Status(); !strings.HasPrefix(got, "2 files, ") {
		t.Errorf("unexpected status %q", got)
	}
	ex.Grid.Ctl.Selection.Select(1)
	if got := ex.Status(); !strings.HasSuffix(got, "(1 selected)") {
		t.Errorf("expected selection count in %q", got)
	}
}

func TestGridRelayoutAndDragPaths(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "a", "b", "c")

	ex := newTestExplorer(false)
	ex.SetFileList(paths)
	g := ex.Grid
	g.relayout(200)

	rects := g.Ctl.Geometry()
	if len(rects) != 3 {
		t.Fatalf("expected 3 rects, got %d", len(rects))
	}
	if rects[0].Min != image.Pt(10, 10) || rects[1].Min.X != 52 {
		t.Errorf("unexpected geometry %v", rects)
	}
	if g.dirty {
		t.Error("relayout left the view dirty")
	}

	g.Ctl.Selection.SetRows([]int{2, 0})
	if got := g.dragPaths(); len(got) != 2 || got[0] != paths[0] || got[1] != paths[2] {
		t.Errorf("expected selection paths in row order, got %v", got)
	}

	g.Ctl.BeginDrag(image.Pt(15, 15))
	g.Ctl.Selection.Clear()
	if got := g.dragPaths(); len(got) != 2 {
		t.Errorf("expected dragged paths from the session, got %v", got)
	}

	// Moving rows marks the view for relayout.
	g.Ctl.Drop(image.Pt(1000, 1000), true)
	if !g.dirty {
		t.Error("move did not invalidate the layout")
	}
}

func TestPaletteApply(t *testing.T) {
	defer lightPalette.apply()
	darkPalette.apply()
	if colWhite != darkPalette.white || colBlack != darkPalette.black {
		t.Error("dark palette not applied")
	}
	lightPalette.apply()
	if colWhite != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Error("light palette not restored")
	}
}
