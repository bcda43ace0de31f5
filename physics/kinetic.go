package physics

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/wellring/core"
	"github.com/lixenwraith/wellring/vmath"
)

// Integrate performs semi-implicit Euler: v = v + a*dt; p = p + v*dt
func Integrate(k *core.Kinetic, accel r2.Vec, dt float64) {
	k.Vel = r2.Add(k.Vel, r2.Scale(dt, accel))
	k.Pos = r2.Add(k.Pos, r2.Scale(dt, k.Vel))
}

// SyncHeading sets heading from velocity when speed is above epsilon, leaves it otherwise
func SyncHeading(a *core.Agent) {
	if theta, ok := vmath.Heading(a.Vel); ok {
		a.Heading = theta
	}
}

// ReflectOnRim clamps an agent of given radius back into the ring band and
// mirrors its velocity across the outward radial normal, returns true if a rim was hit
// An agent at the exact center uses +X as its normal
func ReflectOnRim(a *core.Agent, ring core.Ring, radius float64) bool {
	off := r2.Sub(a.Pos, ring.Center)
	r := r2.Norm(off)

	normal := r2.Vec{X: 1}
	if r >= vmath.Epsilon {
		normal = r2.Scale(1/r, off)
	}

	lo, hi := ring.Limits(radius)
	var target float64
	switch {
	case r < lo:
		target = lo
	case r > hi:
		target = hi
	default:
		return false
	}

	a.Pos = r2.Add(ring.Center, r2.Scale(target, normal))
	a.Vel = vmath.Reflect(a.Vel, normal)
	SyncHeading(a)
	return true
}

// ReflectAll applies ReflectOnRim to every agent, returns the number of rim hits
func ReflectAll(agents []core.Agent, ring core.Ring, radius float64) int {
	hits := 0
	for i := range agents {
		if ReflectOnRim(&agents[i], ring, radius) {
			hits++
		}
	}
	return hits
}
