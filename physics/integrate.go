package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lixenwraith/wellring/core"
	"github.com/lixenwraith/wellring/parameter"
	"github.com/lixenwraith/wellring/vmath"
)

// Dynamics holds every coefficient the integrator reads
type Dynamics struct {
	Speed    float64 // propulsion speed (units/sec)
	Noise    float64 // heading noise intensity (rad/sqrt(sec))
	Coupling float64 // well coupling strength
	Radius   float64 // agent disk radius (units)

	DampingBase       float64 // baseline linear damping (1/sec)
	DriveRelax        float64 // propulsion relaxation rate (1/sec)
	CaptureDamping    float64 // extra damping at full capture (1/sec)
	TangentialDamping float64 // cross-field damping at full capture (1/sec)
	CaptureThreshold  float64 // capture weight enabling tangential damping

	CollisionIterations int // resolver sweeps per step
}

// DefaultDynamics returns the tuned default coefficients
func DefaultDynamics() Dynamics {
	return Dynamics{
		Speed:               parameter.DefaultSpeed,
		Noise:               parameter.DefaultNoise,
		Coupling:            parameter.DefaultCoupling,
		Radius:              parameter.DefaultParticleRadius,
		DampingBase:         parameter.DampingBaseDefault,
		DriveRelax:          parameter.DriveRelaxDefault,
		CaptureDamping:      parameter.CaptureDampingDefault,
		TangentialDamping:   parameter.TangentialDampingDefault,
		CaptureThreshold:    parameter.CaptureThresholdDefault,
		CollisionIterations: parameter.CollisionIterationsDefault,
	}
}

// StepReport summarizes one integrator step
type StepReport struct {
	// Captured/Released count agents whose capture weight crossed CaptureEventLevel up/down
	Captured, Released int
	// Held counts agents at or above CaptureEventLevel after the step
	Held int
	// MeanCapture is the population mean capture weight
	MeanCapture float64
	// RimHits counts boundary reflections during integration
	RimHits    int
	Collisions CollisionReport
}

// Step advances all agents by dt then resolves collisions once
// rng may be nil when Noise is zero
func Step(agents []core.Agent, wells []core.Well, ring core.Ring, dyn Dynamics, rng *vmath.FastRand, dt float64) StepReport {
	var rep StepReport
	field := DeriveField(dyn.Coupling, dyn.Speed, ring)
	sqrtDt := math.Sqrt(dt)

	// Wiener increment on heading, drawn from the simulation's own source
	var noise *distuv.Normal
	if dyn.Noise != 0 && rng != nil {
		noise = &distuv.Normal{Mu: 0, Sigma: dyn.Noise * sqrtDt, Src: rng}
	}

	for i := range agents {
		a := &agents[i]
		prev := a.Capture

		if noise != nil {
			a.Heading = vmath.WrapAngle(a.Heading + noise.Rand())
		}

		accel := Acceleration(a, wells, field, dyn)
		Integrate(&a.Kinetic, accel, dt)
		SyncHeading(a)
		if ReflectOnRim(a, ring, dyn.Radius) {
			rep.RimHits++
		}

		switch level := parameter.CaptureEventLevel; {
		case prev < level && a.Capture >= level:
			rep.Captured++
		case prev >= level && a.Capture < level:
			rep.Released++
		}
		if a.Capture >= parameter.CaptureEventLevel {
			rep.Held++
		}
		rep.MeanCapture += a.Capture
	}
	if len(agents) > 0 {
		rep.MeanCapture /= float64(len(agents))
	}

	rep.Collisions = ResolveCollisions(agents, ring, dyn.Radius, dyn.CollisionIterations)
	return rep
}

// Acceleration evaluates the total acceleration of a and stores its capture weight
// Drive fades with capture, damping grows with it, and captured agents lose
// velocity across the field direction so they cannot orbit a well indefinitely
func Acceleration(a *core.Agent, wells []core.Well, field Field, dyn Dynamics) r2.Vec {
	drive := vmath.FromPolar(dyn.Speed, a.Heading)
	force, c := ForceAndCapture(a.Pos, wells, field)
	a.Capture = c

	gamma := dyn.DampingBase + dyn.CaptureDamping*c
	aDrive := r2.Scale(dyn.DriveRelax*(1-c), r2.Sub(drive, a.Vel))

	var aTan r2.Vec
	if fmag := r2.Norm(force); fmag > parameter.ForceEpsilon && c > dyn.CaptureThreshold {
		_, vt := vmath.Decompose(a.Vel, r2.Scale(1/fmag, force))
		aTan = r2.Scale(-dyn.TangentialDamping*c, vt)
	}

	accel := r2.Add(aDrive, force)
	accel = r2.Add(accel, aTan)
	return r2.Sub(accel, r2.Scale(gamma, a.Vel))
}
