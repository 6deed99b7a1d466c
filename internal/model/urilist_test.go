package model

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestURIList(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("unix paths")
	}
	got := string(URIList([]string{"/data/a.png", "/data/my file.txt"}))
	want := "file:///data/a.png\r\nfile:///data/my%20file.txt\r\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if got := URIList(nil); len(got) != 0 {
		t.Errorf("expected empty payload, got %q", got)
	}
}

func TestParseURIList(t *testing.T) {
	if filepath.Separator != '/' {
		t.Skip("unix paths")
	}
	testCases := []struct {
		name string
		data string
		want []string
	}{
		{"crlf lines", "file:///data/a.png\r\nfile:///data/my%20file.txt\r\n", []string{"/data/a.png", "/data/my file.txt"}},
		{"comments and blanks", "# copied\n\nfile:///x\n", []string{"/x"}},
		{"non-file uris skipped", "https://example.com/a\nfile:///y\n", []string{"/y"}},
		{"empty", "", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseURIList([]byte(tc.data))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
