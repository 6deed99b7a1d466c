package thumb

import (
	"image"
	"os"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/justyntemme/foldergrid/internal/debug"
)

// Generator produces previews of a fixed size. It holds no mutable state
// besides the optional cache, so it is safe for concurrent use.
type Generator struct {
	Size  int
	Cache *Cache // nil disables caching
}

// NewGenerator returns a generator for size×size previews.
func NewGenerator(size int, cache *Cache) *Generator {
	if size <= 0 {
		size = DefaultIconSize
	}
	return &Generator{Size: size, Cache: cache}
}

// Generate returns the scaled bitmap of an image file, or the generic
// icon for other files. It returns nil when an image fails to decode.
func (g *Generator) Generate(path string) image.Image {
	info, err := os.Stat(path)
	if err != nil {
		debug.Log(debug.THUMB, "stat %s: %v", path, err)
		return nil
	}
	key := KeyFor(path, info.ModTime(), info.Size(), g.Size)
	if g.Cache != nil {
		if img, ok := g.Cache.Get(key); ok {
			return img
		}
	}

	var img image.Image
	if IsImage(path) {
		img = g.scaled(path)
		if img == nil {
			return nil
		}
	} else {
		img = GenericIcon(Ext(path), g.Size)
	}

	if g.Cache != nil {
		g.Cache.Put(key, img)
	}
	return img
}

// Preview is Generate with a fallback: undecodable images get the
// generic icon. It never returns nil.
func (g *Generator) Preview(path string) image.Image {
	if img := g.Generate(path); img != nil {
		return img
	}
	return GenericIcon(Ext(path), g.Size)
}

func (g *Generator) scaled(path string) image.Image {
	src, err := decodeFile(path)
	if err != nil {
		debug.Log(debug.THUMB, "decode %s: %v", path, err)
		return nil
	}
	size := uint(g.Size)
	thumb := resize.Thumbnail(size, size, src, resize.Lanczos3)
	debug.Log(debug.THUMB, "%s: %v -> %v", path, src.Bounds().Size(), thumb.Bounds().Size())
	return toNRGBA(thumb)
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if ext := Ext(path); ext == "heic" || ext == "heif" {
		return decodeHEIC(f)
	}
	img, _, err := image.Decode(f)
	return img, err
}

// toNRGBA converts img to the non-premultiplied format the UI uploads.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
