package core

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/wellring/vmath"
)

// Ring is the annular domain, derived from canvas size and inner fraction
type Ring struct {
	Center       r2.Vec
	Inner, Outer float64
}

// NewRing fits a ring into a w×h canvas centered at (w/2, h/2)
func NewRing(w, h, innerFraction float64) Ring {
	inner, outer := vmath.RingRadii(w, h, innerFraction)
	return Ring{
		Center: r2.Vec{X: 0.5 * w, Y: 0.5 * h},
		Inner:  inner,
		Outer:  outer,
	}
}

// Band returns outer minus inner radius, at least 1
func (r Ring) Band() float64 {
	return max(1, r.Outer-r.Inner)
}

// Mid returns the radius of the band midline
func (r Ring) Mid() float64 {
	return 0.5 * (r.Inner + r.Outer)
}

// Radius returns the distance of p from the ring center
func (r Ring) Radius(p r2.Vec) float64 {
	return r2.Norm(r2.Sub(p, r.Center))
}

// Limits returns the admissible center-distance range for a disk of given radius
// A band thinner than the disk collapses both limits to the midline
func (r Ring) Limits(radius float64) (lo, hi float64) {
	lo, hi = r.Inner+radius, r.Outer-radius
	if lo > hi {
		mid := r.Mid()
		return mid, mid
	}
	return lo, hi
}
