package render

import "math"

// Viewport maps canvas units onto a half-block pixel grid
// Each terminal cell holds two vertically stacked pixels, so pixels are roughly square
type Viewport struct {
	// PixW, PixH are the pixel grid dimensions
	PixW, PixH int
	// Scale is pixels per canvas unit
	Scale float64
	// OffX, OffY center the canvas in the grid (pixels)
	OffX, OffY float64
}

// NewViewport fits a canvasW×canvasH canvas into a pixW×pixH grid preserving aspect
func NewViewport(pixW, pixH int, canvasW, canvasH float64) Viewport {
	v := Viewport{PixW: max(0, pixW), PixH: max(0, pixH)}
	if canvasW <= 0 || canvasH <= 0 || v.PixW == 0 || v.PixH == 0 {
		return v
	}
	v.Scale = math.Min(float64(v.PixW)/canvasW, float64(v.PixH)/canvasH)
	v.OffX = 0.5 * (float64(v.PixW) - canvasW*v.Scale)
	v.OffY = 0.5 * (float64(v.PixH) - canvasH*v.Scale)
	return v
}

// ToPixel returns the continuous pixel coordinate of canvas point (x, y)
func (v Viewport) ToPixel(x, y float64) (float64, float64) {
	return v.OffX + x*v.Scale, v.OffY + y*v.Scale
}

// ToCanvas is the inverse of ToPixel, for pixel centers
func (v Viewport) ToCanvas(px, py float64) (float64, float64) {
	if v.Scale == 0 {
		return 0, 0
	}
	return (px - v.OffX) / v.Scale, (py - v.OffY) / v.Scale
}

// CanvasFor returns a canvas of the given height with the pixel grid's aspect ratio
// Used on terminal resize so the ring fills the available area
func CanvasFor(pixW, pixH int, height float64) (float64, float64) {
	if pixW <= 0 || pixH <= 0 {
		return height, height
	}
	return height * float64(pixW) / float64(pixH), height
}
