// Package render is the item delegate of the icon grid: it sizes each
// item and describes how to paint it. Painting produces a Scene that the
// UI layer draws, so layout and paint decisions are testable without a
// window.
package render

import (
	"image"
	"image/color"

	"github.com/justyntemme/foldergrid/internal/model"
)

// Measurer measures text in pixels with the label font.
type Measurer interface {
	// Advance returns the horizontal advance of s.
	Advance(s string) int
	// LineHeight returns the distance between consecutive baselines.
	LineHeight() int
}

// Colors used for item painting.
var (
	// SelectionTint is drawn over the icon box of selected items.
	SelectionTint = color.NRGBA{R: 51, G: 153, B: 255, A: 51}
	// Placeholder fills the icon box when an entry has no preview.
	Placeholder = color.NRGBA{R: 230, G: 230, B: 230, A: 255}

	TextColor         = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	SelectedTextColor = color.NRGBA{R: 0, G: 0, B: 128, A: 255}
)

// Delegate computes item sizes and paint scenes.
type Delegate struct {
	IconSize int
	Measurer Measurer
}

// NewDelegate returns a delegate for icons of iconSize pixels.
func NewDelegate(iconSize int, m Measurer) *Delegate {
	return &Delegate{IconSize: iconSize, Measurer: m}
}

// Wrap breaks name greedily, one character at a time, so that no line is
// wider than width. A character that alone exceeds width still gets its
// own line rather than producing an empty one.
func Wrap(name string, width int, m Measurer) []string {
	if name == "" {
		return nil
	}
	var lines []string
	line := ""
	for _, ch := range name {
		candidate := line + string(ch)
		if line != "" && m.Advance(candidate) > width {
			lines = append(lines, line)
			line = string(ch)
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// Lines returns the wrapped label of name.
func (d *Delegate) Lines(name string) []string {
	return Wrap(name, d.IconSize, d.Measurer)
}

// TextHeight is the height of the wrapped label. An empty label still
// reserves one line.
func (d *Delegate) TextHeight(name string) int {
	n := len(d.Lines(name))
	if n == 0 {
		n = 1
	}
	return n * d.Measurer.LineHeight()
}

// SizeOf returns the item size: the icon box plus the wrapped label.
func (d *Delegate) SizeOf(name string) image.Point {
	return image.Pt(d.IconSize, d.IconSize+d.TextHeight(name))
}

// Sizes returns SizeOf for every entry, in order.
func (d *Delegate) Sizes(entries []*model.FileEntry) []image.Point {
	sizes := make([]image.Point, len(entries))
	for i, e := range entries {
		sizes[i] = d.SizeOf(e.Name)
	}
	return sizes
}

// TextLine is one positioned label line.
type TextLine struct {
	Text string
	At   image.Point // top-left of the line box
}

// Scene describes how to paint one item. Coordinates are in the same
// space as the item rectangle passed to Paint.
type Scene struct {
	IconBox image.Rectangle
	Image   image.Image     // nil: fill IconBox with Placeholder
	ImageAt image.Rectangle // where Image goes, centred in IconBox
	Tint    *color.NRGBA    // non-nil when selected
	Lines   []TextLine
	Color   color.NRGBA
}

// Paint describes the item e occupying rect.
func (d *Delegate) Paint(e *model.FileEntry, rect image.Rectangle, selected bool) Scene {
	icon := image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+d.IconSize, rect.Min.Y+d.IconSize)
	s := Scene{IconBox: icon, Color: TextColor}

	if e.Preview != nil {
		s.Image = e.Preview
		s.ImageAt = fitCentered(e.Preview.Bounds().Size(), icon)
	}
	if selected {
		tint := SelectionTint
		s.Tint = &tint
		s.Color = SelectedTextColor
	}

	lineHeight := d.Measurer.LineHeight()
	y := icon.Max.Y
	for _, line := range d.Lines(e.Name) {
		x := icon.Min.X + (d.IconSize-d.Measurer.Advance(line))/2
		s.Lines = append(s.Lines, TextLine{Text: line, At: image.Pt(x, y)})
		y += lineHeight
	}
	return s
}

// fitCentered centres an image of size sz in box, shrinking it to fit
// while keeping its aspect ratio.
func fitCentered(sz image.Point, box image.Rectangle) image.Rectangle {
	bw, bh := box.Dx(), box.Dy()
	w, h := sz.X, sz.Y
	if w <= 0 || h <= 0 {
		return box
	}
	if w > bw || h > bh {
		if w*bh > h*bw {
			h = h * bw / w
			w = bw
		} else {
			w = w * bh / h
			h = bh
		}
	}
	x := box.Min.X + (bw-w)/2
	y := box.Min.Y + (bh-h)/2
	return image.Rect(x, y, x+w, y+h)
}
