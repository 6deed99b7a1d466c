// Package thumb turns files into fixed-size preview images: scaled
// bitmaps for recognised image formats, a drawn generic icon otherwise.
package thumb

import (
	"path/filepath"
	"strings"

	// Registered decoders.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultIconSize is the side of the preview square in pixels.
const DefaultIconSize = 128

var imageExts = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"bmp":  true,
	"gif":  true,
	"tiff": true,
	"tif":  true,
	"ico":  true,
	"webp": true,
}

// Ext returns the lower-cased extension of path without the dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// IsImage reports whether path has an extension we decode.
func IsImage(path string) bool {
	ext := Ext(path)
	if ext == "heic" || ext == "heif" {
		return heicSupported()
	}
	return imageExts[ext]
}
