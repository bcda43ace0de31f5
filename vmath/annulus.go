package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Ring geometry ratios
const (
	// OuterRatio is the outer radius as a fraction of half the smaller canvas side
	OuterRatio = 0.95
	// MaxInnerRatio caps the inner radius as a fraction of the outer radius
	MaxInnerRatio = 0.9
)

// RingRadii returns inner and outer radii of the annulus fitted into a w×h canvas
func RingRadii(w, h, innerFraction float64) (inner, outer float64) {
	outer = OuterRatio * 0.5 * math.Min(w, h)
	if outer < 0 {
		outer = 0
	}
	inner = Clamp(innerFraction*outer, 0, MaxInnerRatio*outer)
	return inner, outer
}

// SampleAnnulus draws a point uniformly by area between radii inner and outer
// Radius is sqrt of a uniform mix of the squared radii, so density grows with r
func SampleAnnulus(rng *FastRand, center r2.Vec, inner, outer float64) r2.Vec {
	u := rng.Float64()
	r := math.Sqrt((1-u)*inner*inner + u*outer*outer)
	return r2.Add(center, FromPolar(r, rng.Angle()))
}

// PointOnCircle returns the point at angle theta on the circle of radius r
func PointOnCircle(center r2.Vec, r, theta float64) r2.Vec {
	return r2.Add(center, FromPolar(r, theta))
}

// EvenAngle returns the angle of slot i out of n evenly spaced slots, n < 1 treated as 1
func EvenAngle(i, n int) float64 {
	if n < 1 {
		n = 1
	}
	return float64(i) / float64(n) * TwoPi
}
