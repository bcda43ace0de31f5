package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/wellring/core"
)

// Palette, Tokyo Night inspired
var (
	RgbBackground = core.RGB{R: 26, G: 27, B: 38}
	RgbBand       = core.RGB{R: 36, G: 40, B: 59}
	RgbRim        = core.RGB{R: 86, G: 95, B: 137}
	RgbField      = core.RGB{R: 61, G: 89, B: 161}
	RgbLink       = core.RGB{R: 65, G: 72, B: 104}
	RgbWell       = core.RGB{R: 224, G: 175, B: 104}
	RgbAgentFree  = core.RGB{R: 192, G: 202, B: 245}
	RgbAgentHeld  = core.RGB{R: 247, G: 118, B: 142}

	RgbStatusFg   = tcell.NewRGBColor(192, 202, 245)
	RgbStatusBg   = tcell.NewRGBColor(22, 22, 30)
	RgbSelectedFg = tcell.NewRGBColor(26, 27, 38)
	RgbSelectedBg = tcell.NewRGBColor(224, 175, 104)
	RgbHelpFg     = tcell.NewRGBColor(120, 124, 153)
)

// ColorMode selects how RGB pixels reach the terminal
type ColorMode uint8

const (
	ModeTrueColor ColorMode = iota
	Mode256
	ModeMono
)

// ParseColorMode maps a config string to a ColorMode, unknown values fall back to true color
func ParseColorMode(s string) ColorMode {
	switch s {
	case "256":
		return Mode256
	case "mono":
		return ModeMono
	}
	return ModeTrueColor
}

// toTcell converts c for the given mode
func toTcell(c core.RGB, mode ColorMode) tcell.Color {
	switch mode {
	case Mode256:
		return tcell.PaletteColor(cubeIndex(c))
	case ModeMono:
		if luminance(c) > 96 {
			return tcell.ColorWhite
		}
		return tcell.ColorBlack
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cubeIndex maps c onto the xterm 6×6×6 color cube (palette 16..231)
func cubeIndex(c core.RGB) int {
	q := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	return 16 + 36*q(c.R) + 6*q(c.G) + q(c.B)
}

// luminance is the Rec. 601 luma of c in [0, 255]
func luminance(c core.RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}
