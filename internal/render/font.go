package render

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontMeasurer measures text with the Go Regular face, the same family
// Gio's gofont collection shapes labels with.
type FontMeasurer struct {
	mu   sync.Mutex
	face font.Face
	size float64
}

// NewFontMeasurer returns a measurer for a face of sizePx pixels.
func NewFontMeasurer(sizePx float64) (*FontMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go regular: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72, // 1pt == 1px
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &FontMeasurer{face: face, size: sizePx}, nil
}

// Size returns the face size in pixels.
func (m *FontMeasurer) Size() float64 {
	return m.size
}

// Advance returns the advance width of s, rounded up.
func (m *FontMeasurer) Advance(s string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return font.MeasureString(m.face, s).Ceil()
}

// LineHeight returns the recommended line height of the face.
func (m *FontMeasurer) LineHeight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.face.Metrics().Height.Ceil()
}
