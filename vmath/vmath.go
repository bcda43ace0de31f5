package vmath

import (
	"math"
	"math/rand/v2"
)

// Epsilon guards denominators and near-zero speeds
const Epsilon = 1e-9

// TwoPi is a full turn in radians
const TwoPi = 2 * math.Pi

// --- Scalars ---

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// WrapAngle maps an angle into (-π, π]
func WrapAngle(theta float64) float64 {
	if theta > -math.Pi && theta <= math.Pi {
		return theta
	}
	theta = math.Mod(theta+math.Pi, TwoPi)
	if theta <= 0 {
		theta += TwoPi
	}
	return theta - math.Pi
}

// --- Randomness ---

// FastRand is a xorshift64 generator implementing math/rand/v2 Source
// Not safe for concurrent use; every simulation owns one so runs are reproducible for a seed
type FastRand struct {
	state uint64
}

var _ rand.Source = (*FastRand)(nil)

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Uint64() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a uniform value in [0, 1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Angle returns a uniform angle in [0, 2π)
func (r *FastRand) Angle() float64 {
	return r.Float64() * TwoPi
}
