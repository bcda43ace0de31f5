package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

// TestNewRing verifies ring fitting into a non-square canvas
func TestNewRing(t *testing.T) {
	r := NewRing(800, 600, 0.3)
	assert.Equal(t, r2.Vec{X: 400, Y: 300}, r.Center)
	assert.InDelta(t, 285, r.Outer, 1e-9)
	assert.InDelta(t, 85.5, r.Inner, 1e-9)
	assert.InDelta(t, 199.5, r.Band(), 1e-9)
	assert.InDelta(t, 185.25, r.Mid(), 1e-9)
}

// TestRingLimits verifies admissible radii and midline collapse for oversized disks
func TestRingLimits(t *testing.T) {
	tests := []struct {
		name   string
		ring   Ring
		radius float64
		lo, hi float64
	}{
		{"normal", Ring{Inner: 100, Outer: 400}, 10, 110, 390},
		{"zero radius", Ring{Inner: 100, Outer: 400}, 0, 100, 400},
		{"exact fit", Ring{Inner: 100, Outer: 120}, 10, 110, 110},
		{"too thin", Ring{Inner: 100, Outer: 110}, 20, 105, 105},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.ring.Limits(tt.radius)
			assert.InDelta(t, tt.lo, lo, 1e-12)
			assert.InDelta(t, tt.hi, hi, 1e-12)
		})
	}
}

// TestRingBandFloor verifies a degenerate ring reports band width 1
func TestRingBandFloor(t *testing.T) {
	assert.Equal(t, 1.0, Ring{Inner: 50, Outer: 50}.Band())
	assert.Equal(t, 1.0, NewRing(0, 0, 0.3).Band())
}

// TestNewAgent verifies velocity and heading agree
func TestNewAgent(t *testing.T) {
	a := NewAgent(r2.Vec{X: 1, Y: 2}, math.Pi/2, 10)
	assert.InDelta(t, 0, a.Vel.X, 1e-9)
	assert.InDelta(t, 10, a.Vel.Y, 1e-9)
	assert.Equal(t, math.Pi/2, a.Heading)

	v := a.View()
	assert.Equal(t, AgentView{X: 1, Y: 2, Theta: math.Pi / 2}, v)
	assert.Equal(t, WellView{X: 3, Y: 4}, Well{Pos: r2.Vec{X: 3, Y: 4}}.View())
}

// TestHSL verifies primary hues and hue wrapping
func TestHSL(t *testing.T) {
	tests := []struct {
		hue  float64
		want RGB
	}{
		{0, RGB{255, 0, 0}},
		{30, RGB{255, 128, 0}},
		{120, RGB{0, 255, 0}},
		{240, RGB{0, 0, 255}},
		{360, RGB{255, 0, 0}},
		{-120, RGB{0, 0, 255}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HSL(tt.hue, 1, 0.5), "hue %v", tt.hue)
	}
	assert.Equal(t, RGBWhite, HSL(77, 0.3, 1))
	assert.Equal(t, RGBBlack, HSL(77, 0.3, 0))
}

// TestHeadingColor verifies opposite headings map to distinct hues and -π matches π
func TestHeadingColor(t *testing.T) {
	assert.NotEqual(t, HeadingColor(0), HeadingColor(math.Pi))
	assert.Equal(t, HeadingColor(math.Pi), HeadingColor(-math.Pi))
}

// TestBlendScale verifies alpha endpoints
func TestBlendScale(t *testing.T) {
	c := RGB{100, 50, 200}
	assert.Equal(t, c, c.Blend(RGBWhite, 0))
	assert.Equal(t, RGBWhite, c.Blend(RGBWhite, 1))
	assert.Equal(t, RGBBlack, c.Scale(0))
	assert.Equal(t, RGB{50, 25, 100}, c.Scale(0.5))
}
