//go:build !linux || !cgo

package thumb

import (
	"errors"
	"image"
	"io"
)

func decodeHEIC(r io.Reader) (image.Image, error) {
	return nil, errors.New("thumb: HEIC decoding not supported on this platform")
}

func heicSupported() bool {
	return false
}
