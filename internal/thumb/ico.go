package thumb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
)

// ICO containers hold one or more PNG or headerless BMP images. We decode
// the largest one.

const (
	icoDirSize   = 6
	icoEntrySize = 16
	bmpFileSize  = 14
)

var errNotICO = errors.New("ico: invalid header")

func init() {
	image.RegisterFormat("ico", "\x00\x00\x01\x00", decodeICO, decodeICOConfig)
}

type icoEntry struct {
	width, height int
	bitCount      uint16
	size, offset  uint32
}

// largestICOImage returns the raw payload of the biggest image in data.
func largestICOImage(data []byte) ([]byte, error) {
	if len(data) < icoDirSize {
		return nil, errNotICO
	}
	if binary.LittleEndian.Uint16(data[0:]) != 0 || binary.LittleEndian.Uint16(data[2:]) != 1 {
		return nil, errNotICO
	}
	count := int(binary.LittleEndian.Uint16(data[4:]))
	if count == 0 || len(data) < icoDirSize+count*icoEntrySize {
		return nil, errNotICO
	}

	var best *icoEntry
	for i := 0; i < count; i++ {
		b := data[icoDirSize+i*icoEntrySize:]
		e := icoEntry{
			width:    int(b[0]),
			height:   int(b[1]),
			bitCount: binary.LittleEndian.Uint16(b[6:]),
			size:     binary.LittleEndian.Uint32(b[8:]),
			offset:   binary.LittleEndian.Uint32(b[12:]),
		}
		if e.width == 0 {
			e.width = 256
		}
		if e.height == 0 {
			e.height = 256
		}
		if uint64(e.offset)+uint64(e.size) > uint64(len(data)) {
			continue
		}
		if best == nil || e.width*e.height > best.width*best.height ||
			(e.width*e.height == best.width*best.height && e.bitCount > best.bitCount) {
			best = &e
		}
	}
	if best == nil {
		return nil, fmt.Errorf("ico: no readable image among %d entries", count)
	}
	return data[best.offset : best.offset+best.size], nil
}

// asImageFile wraps a headerless DIB in a BMP file header so the bmp
// decoder accepts it. PNG payloads pass through.
func asImageFile(payload []byte) ([]byte, error) {
	if bytes.HasPrefix(payload, []byte("\x89PNG")) {
		return payload, nil
	}
	if len(payload) < 40 {
		return nil, errors.New("ico: truncated bitmap header")
	}
	headerSize := binary.LittleEndian.Uint32(payload[0:])
	if headerSize < 40 || int(headerSize) > len(payload) {
		return nil, fmt.Errorf("ico: bad bitmap header size %d", headerSize)
	}

	dib := make([]byte, len(payload))
	copy(dib, payload)
	// The stored height covers the colour bitmap plus the AND mask.
	height := int32(binary.LittleEndian.Uint32(dib[8:]))
	binary.LittleEndian.PutUint32(dib[8:], uint32(height/2))

	bitCount := binary.LittleEndian.Uint16(dib[14:])
	paletteSize := 0
	if bitCount <= 8 {
		colors := int(binary.LittleEndian.Uint32(dib[32:]))
		if colors == 0 {
			colors = 1 << bitCount
		}
		paletteSize = colors * 4
	}

	file := make([]byte, bmpFileSize, bmpFileSize+len(dib))
	file[0], file[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(file[2:], uint32(bmpFileSize+len(dib)))
	binary.LittleEndian.PutUint32(file[10:], uint32(bmpFileSize+int(headerSize)+paletteSize))
	return append(file, dib...), nil
}

func icoPayload(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	payload, err := largestICOImage(data)
	if err != nil {
		return nil, err
	}
	return asImageFile(payload)
}

func decodeICO(r io.Reader) (image.Image, error) {
	file, err := icoPayload(r)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(file))
	return img, err
}

func decodeICOConfig(r io.Reader) (image.Config, error) {
	file, err := icoPayload(r)
	if err != nil {
		return image.Config{}, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(file))
	return cfg, err
}
