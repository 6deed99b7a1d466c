package model

import (
	"net/url"
	"path/filepath"
	"strings"
)

// URIListMIME is the standard MIME type for a list of file URIs.
const URIListMIME = "text/uri-list"

// FileURI converts an absolute path to a file:// URI.
func FileURI(path string) string {
	p := filepath.ToSlash(path)
	// Windows drive paths need a leading slash: file:///C:/x
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// URIList renders paths as a text/uri-list payload, one URI per line,
// each line CRLF terminated.
func URIList(paths []string) []byte {
	var b strings.Builder
	for _, p := range paths {
		b.WriteString(FileURI(p))
		b.WriteString("\r\n")
	}
	return []byte(b.String())
}

// ParseURIList extracts local paths from a text/uri-list payload.
// Comment lines and non-file URIs are skipped.
func ParseURIList(data []byte) []string {
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		u, err := url.Parse(line)
		if err != nil || u.Scheme != "file" {
			continue
		}
		p := u.Path
		// /C:/x -> C:/x
		if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
		paths = append(paths, filepath.FromSlash(p))
	}
	return paths
}
