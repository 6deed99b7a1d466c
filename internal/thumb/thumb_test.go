package thumb

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/justyntemme/foldergrid/internal/model"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestIsImage(t *testing.T) {
	testCases := []struct {
		path string
		want bool
	}{
		{"/a/photo.JPG", true},
		{"/a/photo.jpeg", true},
		{"/a/icon.ico", true},
		{"/a/scan.TIFF", true},
		{"/a/notes.txt", false},
		{"/a/noext", false},
		{"/a/archive.png.zip", false},
	}
	for _, tc := range testCases {
		if got := IsImage(tc.path); got != tc.want {
			t.Errorf("IsImage(%q): expected %v, got %v", tc.path, tc.want, got)
		}
	}
}

func TestGenerateScalesImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.png")
	writePNG(t, path, 256, 128)

	img := NewGenerator(128, nil).Generate(path)
	if img == nil {
		t.Fatal("expected a preview")
	}
	if got := img.Bounds().Size(); got != image.Pt(128, 64) {
		t.Errorf("expected 128x64, got %v", got)
	}
	if _, ok := img.(*image.NRGBA); !ok {
		t.Errorf("expected *image.NRGBA, got %T", img)
	}
}

func TestGenerateKeepsSmallImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.png")
	writePNG(t, path, 40, 20)

	img := NewGenerator(128, nil).Generate(path)
	if img == nil || img.Bounds().Size() != image.Pt(40, 20) {
		t.Errorf("expected small image unscaled, got %v", img)
	}
}

func TestGenerateNonImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	writeFile(t, path, "hello")

	img := NewGenerator(128, nil).Generate(path)
	if img == nil {
		t.Fatal("expected generic icon")
	}
	if got := img.Bounds().Size(); got != image.Pt(128, 128) {
		t.Errorf("expected 128x128, got %v", got)
	}
}

func TestGenerateCorruptImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	writeFile(t, path, "definitely not a jpeg")

	g := NewGenerator(128, nil)
	if img := g.Generate(path); img != nil {
		t.Errorf("expected nil for corrupt image, got %v", img.Bounds())
	}
	if img := g.Preview(path); img == nil {
		t.Error("Preview should fall back to the generic icon")
	}
}

func TestGenerateMissingFile(t *testing.T) {
	if img := NewGenerator(64, nil).Generate("/does/not/exist.png"); img != nil {
		t.Error("expected nil for missing file")
	}
}

func TestRebuildWithFallbacks(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "readme.md")
	corrupt := filepath.Join(dir, "bad.png")
	writeFile(t, text, "# readme")
	writeFile(t, corrupt, "\x89PNG garbage")

	c := model.NewCollection(NewGenerator(128, nil))
	c.Rebuild([]string{text, corrupt})

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	for _, e := range c.Entries() {
		if e.Preview == nil {
			t.Errorf("%s has no fallback preview", e.Name)
		}
	}
}

func TestGeneratorCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.png")
	writePNG(t, path, 300, 300)

	cache := NewCache(8)
	g := NewGenerator(64, cache)
	first := g.Generate(path)
	second := g.Generate(path)
	if first == nil || first != second {
		t.Error("expected second call to be served from cache")
	}
	if cache.Len() != 1 {
		t.Errorf("expected 1 cached entry, got %d", cache.Len())
	}

	// A changed file gets a new key.
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if third := g.Generate(path); third == first {
		t.Error("modified file served stale preview")
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(2)
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	k := func(p string) CacheKey { return CacheKey{Path: p, IconSize: 128} }

	c.Put(k("a"), img)
	c.Put(k("b"), img)
	c.Get(k("a")) // a is now most recent
	c.Put(k("c"), img)

	if _, ok := c.Get(k("b")); ok {
		t.Error("expected b to be evicted")
	}
	if _, ok := c.Get(k("a")); !ok {
		t.Error("expected a to survive")
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}

// icoWith wraps one image payload in an ICO container.
func icoWith(w, h int, bitCount uint16, payload []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 1})
	buf.Write([]byte{byte(w), byte(h), 0, 0})
	binary.Write(&buf, binary.LittleEndian, []uint16{1, bitCount})
	binary.Write(&buf, binary.LittleEndian, []uint32{uint32(len(payload)), icoDirSize + icoEntrySize})
	buf.Write(payload)
	return buf.Bytes()
}

func TestDecodeICOWithPNG(t *testing.T) {
	var p bytes.Buffer
	png.Encode(&p, image.NewNRGBA(image.Rect(0, 0, 32, 16)))

	img, format, err := image.Decode(bytes.NewReader(icoWith(32, 16, 32, p.Bytes())))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "ico" {
		t.Errorf("expected format ico, got %q", format)
	}
	if img.Bounds().Size() != image.Pt(32, 16) {
		t.Errorf("expected 32x16, got %v", img.Bounds().Size())
	}
}

func TestDecodeICOWithBitmap(t *testing.T) {
	// 2x2 24-bit DIB, every pixel red, followed by its AND mask.
	var dib bytes.Buffer
	binary.Write(&dib, binary.LittleEndian, uint32(40))
	binary.Write(&dib, binary.LittleEndian, []int32{2, 4})
	binary.Write(&dib, binary.LittleEndian, []uint16{1, 24})
	binary.Write(&dib, binary.LittleEndian, []uint32{0, 16, 0, 0, 0, 0})
	for row := 0; row < 2; row++ {
		dib.Write([]byte{0, 0, 255, 0, 0, 255, 0, 0}) // BGR BGR pad
	}
	dib.Write(make([]byte, 8))

	img, _, err := image.Decode(bytes.NewReader(icoWith(2, 2, 24, dib.Bytes())))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Size() != image.Pt(2, 2) {
		t.Fatalf("expected 2x2, got %v", img.Bounds().Size())
	}
	r, g, b, _ := img.At(1, 1).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("expected red pixel, got %v", img.At(1, 1))
	}
}

func TestDecodeICORejectsGarbage(t *testing.T) {
	if _, err := decodeICO(bytes.NewReader([]byte{0, 0, 1, 0, 0, 0})); err == nil {
		t.Error("expected error for ICO without entries")
	}
}

func TestGenericIcon(t *testing.T) {
	img := GenericIcon("pdf", 100)
	if img.Bounds().Size() != image.Pt(100, 100) {
		t.Errorf("expected 100x100, got %v", img.Bounds())
	}
	if got := img.NRGBAAt(50, 60); got != ExtensionColor("pdf") {
		t.Errorf("expected badge colour at centre, got %v", got)
	}
	if got := img.NRGBAAt(1, 1); got.A != 0 {
		t.Errorf("expected transparent margin, got %v", got)
	}
}

func TestLoaderDiscardsSupersededResults(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.png", "b.png", "c.txt", "d.png"} {
		p := filepath.Join(dir, name)
		if filepath.Ext(p) == ".png" {
			writePNG(t, p, 64, 64)
		} else {
			writeFile(t, p, "x")
		}
		paths = append(paths, p)
	}

	c := model.NewCollection(nil)
	l := NewLoader(NewGenerator(32, nil), 2, nil)
	defer l.Stop()

	c.RebuildDeferred(paths)
	l.Start(c.Generation(), c.Entries())
	c.RebuildDeferred(paths)
	l.Start(c.Generation(), c.Entries())

	pending := c.Len()
	timeout := time.After(10 * time.Second)
	for pending > 0 {
		select {
		case res := <-l.Results():
			adopted := c.AdoptPreview(res.Gen, res.Entry, res.Image)
			if res.Gen != c.Generation() {
				if adopted {
					t.Fatalf("stale result for %s was adopted", res.Entry.Name)
				}
				continue
			}
			if !adopted {
				t.Fatalf("current result for %s was rejected", res.Entry.Name)
			}
			pending--
		case <-timeout:
			t.Fatalf("timed out with %d previews outstanding", pending)
		}
	}

	for _, e := range c.Entries() {
		if e.Preview == nil || e.Preview.Bounds().Dx() != 32 {
			t.Errorf("%s: expected a 32px preview, got %v", e.Name, e.Preview)
		}
	}
}
