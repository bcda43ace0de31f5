package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Normalize returns the unit vector of v, zero-safe
func Normalize(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n < Epsilon {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

// FromPolar returns the vector of magnitude mag at angle theta
func FromPolar(mag, theta float64) r2.Vec {
	sin, cos := math.Sincos(theta)
	return r2.Vec{X: mag * cos, Y: mag * sin}
}

// Heading returns atan2(y, x) and true when |v|² exceeds Epsilon
// Near-zero vectors have no stable direction and report false
func Heading(v r2.Vec) (float64, bool) {
	if r2.Norm2(v) <= Epsilon {
		return 0, false
	}
	return math.Atan2(v.Y, v.X), true
}

// Reflect returns velocity reflected off surface with given unit normal
// vel' = vel - 2 * dot(vel, normal) * normal
func Reflect(vel, normal r2.Vec) r2.Vec {
	return r2.Sub(vel, r2.Scale(2*r2.Dot(vel, normal), normal))
}

// Decompose splits v into components parallel and perpendicular to unit direction dir
func Decompose(v, dir r2.Vec) (parallel, perpendicular r2.Vec) {
	parallel = r2.Scale(r2.Dot(v, dir), dir)
	return parallel, r2.Sub(v, parallel)
}
