package folders

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestAddRemove(t *testing.T) {
	l := NewList("/a", "/b", "/a")
	if !reflect.DeepEqual(l.Paths(), []string{"/a", "/b"}) {
		t.Fatalf("expected duplicates dropped, got %v", l.Paths())
	}
	if l.Add("/b") || l.Add("  ") {
		t.Error("Add accepted a duplicate or blank path")
	}
	l.Add("/c")
	l.Add("/d")

	if !l.Remove(3, 1, 99) {
		t.Fatal("Remove reported no change")
	}
	if !reflect.DeepEqual(l.Paths(), []string{"/a", "/c"}) {
		t.Errorf("expected [/a /c], got %v", l.Paths())
	}
	if l.Remove(-1, 5) {
		t.Error("Remove with only out-of-range rows reported a change")
	}
}

func TestSavePath(t *testing.T) {
	testCases := []struct {
		name string
		want string
	}{
		{"set", "set.fecf"},
		{"set.fecf", "set.fecf"},
		{"set.FECF", "set.FECF"},
		{"set.txt", "set.txt"},
		{"set.list", "set.list.fecf"},
	}
	for _, tc := range testCases {
		if got := SavePath(tc.name); got != tc.want {
			t.Errorf("SavePath(%q): expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestSaveFormat(t *testing.T) {
	dir := t.TempDir()
	l := NewList("/photos/2023", "/home/me/scans")

	path, err := l.Save(filepath.Join(dir, "mine"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "mine.fecf" {
		t.Errorf("expected mine.fecf, got %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "/photos/2023\n/home/me/scans\n" {
		t.Errorf("unexpected file contents %q", data)
	}
}

func TestLoadIsUnion(t *testing.T) {
	dir := t.TempDir()
	saved := filepath.Join(dir, "saved.txt")
	if err := os.WriteFile(saved, []byte("/b\n\n  /c  \r\n/a\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewList("/a", "/b")
	n, err := l.Load(saved)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 new folder, got %d", n)
	}
	if !reflect.DeepEqual(l.Paths(), []string{"/a", "/b", "/c"}) {
		t.Errorf("expected [/a /b /c], got %v", l.Paths())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	orig := NewList("/x", "/y", "/z")
	path, err := orig.Save(filepath.Join(dir, "rt.fecf"))
	if err != nil {
		t.Fatal(err)
	}

	got := NewList()
	if _, err := got.Load(path); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Paths(), orig.Paths()) {
		t.Errorf("expected %v, got %v", orig.Paths(), got.Paths())
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := NewList().Load(filepath.Join(t.TempDir(), "nope.fecf")); err == nil {
		t.Error("expected error for missing file")
	}
}
