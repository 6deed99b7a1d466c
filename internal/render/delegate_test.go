package render

import (
	"image"
	"reflect"
	"testing"

	"github.com/justyntemme/foldergrid/internal/model"
)

// monoMeasurer gives every rune the same advance.
type monoMeasurer struct {
	advance, line int
}

func (m monoMeasurer) Advance(s string) int { return len([]rune(s)) * m.advance }
func (m monoMeasurer) LineHeight() int      { return m.line }

func TestWrap(t *testing.T) {
	m := monoMeasurer{advance: 10, line: 14}

	testCases := []struct {
		text  string
		width int
		want  []string
	}{
		{"abcdefgh", 40, []string{"abcd", "efgh"}},
		{"abcdefghi", 40, []string{"abcd", "efgh", "i"}},
		{"abc", 40, []string{"abc"}},
		{"a b c d e", 40, []string{"a b ", "c d ", "e"}}, // not word-boundary aware
		{"ab", 5, []string{"a", "b"}},                   // over-wide rune keeps its own line
		{"", 40, nil},
		{"héllo", 30, []string{"hél", "lo"}}, // wraps by rune, not byte
	}

	for _, tc := range testCases {
		got := Wrap(tc.text, tc.width, m)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Wrap(%q, %d): expected %q, got %q", tc.text, tc.width, tc.want, got)
		}
	}
}

func TestSizeOf(t *testing.T) {
	d := NewDelegate(40, monoMeasurer{advance: 10, line: 14})

	if got := d.SizeOf("abcdefgh"); got != image.Pt(40, 40+28) {
		t.Errorf("expected 40x68, got %v", got)
	}
	if got := d.SizeOf(""); got != image.Pt(40, 54) {
		t.Errorf("expected empty label to reserve one line, got %v", got)
	}

	sizes := d.Sizes([]*model.FileEntry{{Name: "ab"}, {Name: "abcdefghij"}})
	if sizes[0].Y != 54 || sizes[1].Y != 82 {
		t.Errorf("unexpected sizes %v", sizes)
	}
}

func TestPaint(t *testing.T) {
	d := NewDelegate(40, monoMeasurer{advance: 10, line: 14})
	rect := image.Rect(100, 200, 140, 268)
	e := &model.FileEntry{Name: "abcdef", Preview: image.NewNRGBA(image.Rect(0, 0, 40, 20))}

	s := d.Paint(e, rect, false)
	if s.IconBox != image.Rect(100, 200, 140, 240) {
		t.Errorf("unexpected icon box %v", s.IconBox)
	}
	if s.ImageAt != image.Rect(100, 210, 140, 230) {
		t.Errorf("expected image centred vertically, got %v", s.ImageAt)
	}
	if s.Tint != nil {
		t.Error("unselected item has a tint")
	}
	if s.Color != TextColor {
		t.Errorf("expected normal text color, got %v", s.Color)
	}
	want := []TextLine{
		{Text: "abcd", At: image.Pt(100, 240)},
		{Text: "ef", At: image.Pt(110, 254)}, // centred: (40-20)/2
	}
	if !reflect.DeepEqual(s.Lines, want) {
		t.Errorf("expected lines %+v, got %+v", want, s.Lines)
	}

	sel := d.Paint(&model.FileEntry{Name: "x"}, rect, true)
	if sel.Tint == nil || *sel.Tint != SelectionTint {
		t.Errorf("expected selection tint, got %v", sel.Tint)
	}
	if sel.Color != SelectedTextColor {
		t.Errorf("expected selected text color, got %v", sel.Color)
	}
	if sel.Image != nil {
		t.Error("entry without preview should paint the placeholder")
	}
}

func TestFitCentered(t *testing.T) {
	box := image.Rect(0, 0, 128, 128)
	if got := fitCentered(image.Pt(64, 32), box); got != image.Rect(32, 48, 96, 80) {
		t.Errorf("small image: got %v", got)
	}
	if got := fitCentered(image.Pt(256, 128), box); got != image.Rect(0, 32, 128, 96) {
		t.Errorf("wide image: got %v", got)
	}
}

func TestFontMeasurer(t *testing.T) {
	m, err := NewFontMeasurer(14)
	if err != nil {
		t.Fatalf("NewFontMeasurer: %v", err)
	}
	if m.LineHeight() <= 0 {
		t.Errorf("expected positive line height, got %d", m.LineHeight())
	}
	if a, b := m.Advance("i"), m.Advance("iiii"); b <= a {
		t.Errorf("advance should grow with text: %d vs %d", a, b)
	}
	if m.Advance("") != 0 {
		t.Errorf("expected zero advance for empty text, got %d", m.Advance(""))
	}
}
