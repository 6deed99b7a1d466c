package thumb

import (
	"image"
	"image/color"
	"image/draw"
)

var (
	iconAccent = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	iconPaper  = color.NRGBA{R: 227, G: 242, B: 253, A: 255}
)

// GenericIcon draws a document icon of size×size pixels with a coloured
// badge for the extension ext (no dot).
func GenericIcon(ext string, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	s := float64(size)

	fileX, fileY := int(s*0.22), int(s*0.08)
	fileW, fileH := int(s*0.56), int(s*0.78)
	body := image.Rect(fileX, fileY, fileX+fileW, fileY+fileH)
	fill(img, body, iconPaper)

	border := max(1, size/64)
	fill(img, image.Rect(body.Min.X, body.Min.Y, body.Max.X, body.Min.Y+border), iconAccent)
	fill(img, image.Rect(body.Min.X, body.Max.Y-border, body.Max.X, body.Max.Y), iconAccent)
	fill(img, image.Rect(body.Min.X, body.Min.Y, body.Min.X+border, body.Max.Y), iconAccent)
	fill(img, image.Rect(body.Max.X-border, body.Min.Y, body.Max.X, body.Max.Y), iconAccent)

	// Folded corner.
	corner := int(s * 0.12)
	fill(img, image.Rect(body.Max.X-corner, body.Min.Y, body.Max.X, body.Min.Y+corner), iconAccent)

	if ext != "" && len(ext) <= 5 {
		boxW, boxH := int(s*0.44), int(s*0.22)
		boxX, boxY := int(s*0.5)-boxW/2, int(s*0.50)
		fill(img, image.Rect(boxX, boxY, boxX+boxW, boxY+boxH), ExtensionColor(ext))
	}
	return img
}

// ExtensionColor picks the badge colour for a file extension.
func ExtensionColor(ext string) color.NRGBA {
	switch ext {
	case "go":
		return color.NRGBA{R: 0, G: 173, B: 216, A: 255}
	case "js", "ts", "jsx", "tsx":
		return color.NRGBA{R: 247, G: 223, B: 30, A: 255}
	case "py":
		return color.NRGBA{R: 55, G: 118, B: 171, A: 255}
	case "rs":
		return color.NRGBA{R: 222, G: 165, B: 132, A: 255}
	case "md", "txt", "fecf":
		return color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	case "json", "yaml", "yml", "toml":
		return color.NRGBA{R: 130, G: 80, B: 160, A: 255}
	case "html", "css":
		return color.NRGBA{R: 228, G: 77, B: 38, A: 255}
	case "png", "jpg", "jpeg", "gif", "webp", "heic", "heif", "bmp", "tif", "tiff", "ico":
		return color.NRGBA{R: 76, G: 175, B: 80, A: 255} // undecodable image
	case "pdf":
		return color.NRGBA{R: 244, G: 67, B: 54, A: 255}
	case "zip", "tar", "gz", "7z", "rar":
		return color.NRGBA{R: 121, G: 85, B: 72, A: 255}
	default:
		return iconAccent
	}
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}
