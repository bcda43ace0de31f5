package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/wellring/core"
)

// CollisionReport summarizes one resolver call
type CollisionReport struct {
	// Corrections counts pair pushes over all sweeps
	Corrections int
	// Coincident counts skipped exact-overlap pairs over all sweeps
	Coincident int
	// RimHits counts boundary reflections triggered by pushes
	RimHits int
	// MaxOverlap is the largest 2r-d left after the last sweep, 0 when fully separated
	MaxOverlap float64
}

// ResolveCollisions separates overlapping disks of given radius by symmetric positional correction
// Each sweep visits pairs (i<j) in index order and pushes both by half the overlap along
// the connecting unit vector, then reflects every agent back into the ring.
// Result is approximate; residual overlap bounded by the sweep budget is reported, not removed
func ResolveCollisions(agents []core.Agent, ring core.Ring, radius float64, iterations int) CollisionReport {
	var rep CollisionReport
	minDist := 2 * radius
	minDist2 := minDist * minDist

	for it := 0; it < iterations; it++ {
		for i := 0; i < len(agents); i++ {
			a := &agents[i]
			for j := i + 1; j < len(agents); j++ {
				b := &agents[j]
				delta := r2.Sub(b.Pos, a.Pos)
				d2 := r2.Norm2(delta)
				if d2 >= minDist2 {
					continue
				}
				if d2 == 0 {
					rep.Coincident++
					continue
				}
				d := math.Sqrt(d2)
				push := r2.Scale(0.5*(minDist-d)/d, delta)
				a.Pos = r2.Sub(a.Pos, push)
				b.Pos = r2.Add(b.Pos, push)
				rep.Corrections++
			}
		}
		rep.RimHits += ReflectAll(agents, ring, radius)
	}

	rep.MaxOverlap = MaxOverlap(agents, radius)
	return rep
}

// MaxOverlap returns the largest pairwise penetration 2r-d, 0 if no pair overlaps
func MaxOverlap(agents []core.Agent, radius float64) float64 {
	minDist := 2 * radius
	worst := 0.0
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			d := r2.Norm(r2.Sub(agents[j].Pos, agents[i].Pos))
			if o := minDist - d; o > worst {
				worst = o
			}
		}
	}
	return worst
}
