package ui

import "image/color"

// Theme colors - these are variables so they can be modified for dark mode
var (
	colWhite     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colBlack     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	colGray      = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colLightGray = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colSelected  = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
	colSidebar   = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colAccent    = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colDanger    = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colGridBg    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	colErrorBannerBg   = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colErrorBannerText = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colDragBadge       = color.NRGBA{R: 66, G: 133, B: 244, A: 220}
)

type palette struct {
	white, black, gray, lightGray, selected, sidebar, gridBg color.NRGBA
}

var (
	lightPalette = palette{
		white:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		black:     color.NRGBA{R: 0, G: 0, B: 0, A: 255},
		gray:      color.NRGBA{R: 100, G: 100, B: 100, A: 255},
		lightGray: color.NRGBA{R: 200, G: 200, B: 200, A: 255},
		selected:  color.NRGBA{R: 200, G: 220, B: 255, A: 255},
		sidebar:   color.NRGBA{R: 245, G: 245, B: 245, A: 255},
		gridBg:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
	darkPalette = palette{
		white:     color.NRGBA{R: 32, G: 33, B: 36, A: 255},
		black:     color.NRGBA{R: 232, G: 234, B: 237, A: 255},
		gray:      color.NRGBA{R: 154, G: 160, B: 166, A: 255},
		lightGray: color.NRGBA{R: 80, G: 80, B: 84, A: 255},
		selected:  color.NRGBA{R: 48, G: 70, B: 110, A: 255},
		sidebar:   color.NRGBA{R: 41, G: 42, B: 45, A: 255},
		gridBg:    color.NRGBA{R: 48, G: 49, B: 52, A: 255},
	}
)

func (p palette) apply() {
	colWhite, colBlack, colGray, colLightGray = p.white, p.black, p.gray, p.lightGray
	colSelected, colSidebar, colGridBg = p.selected, p.sidebar, p.gridBg
}
