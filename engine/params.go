package engine

import (
	"github.com/lixenwraith/wellring/parameter"
	"github.com/lixenwraith/wellring/physics"
)

// Params is the full set of tunables owned by a Simulation
type Params struct {
	Wells             int
	Agents            int
	ParticleRadius    float64
	InnerFraction     float64
	Speed             float64
	Noise             float64
	Coupling          float64
	ObservationRadius float64

	DampingBase         float64
	DriveRelax          float64
	CaptureDamping      float64
	TangentialDamping   float64
	CaptureThreshold    float64
	CollisionIterations int
}

// DefaultParams returns the stock configuration
func DefaultParams() Params {
	return Params{
		Wells:               parameter.DefaultWells,
		Agents:              parameter.DefaultAgents,
		ParticleRadius:      parameter.DefaultParticleRadius,
		InnerFraction:       parameter.DefaultInnerFraction,
		Speed:               parameter.DefaultSpeed,
		Noise:               parameter.DefaultNoise,
		Coupling:            parameter.DefaultCoupling,
		ObservationRadius:   parameter.DefaultObservationRadius,
		DampingBase:         parameter.DampingBaseDefault,
		DriveRelax:          parameter.DriveRelaxDefault,
		CaptureDamping:      parameter.CaptureDampingDefault,
		TangentialDamping:   parameter.TangentialDampingDefault,
		CaptureThreshold:    parameter.CaptureThresholdDefault,
		CollisionIterations: parameter.CollisionIterationsDefault,
	}
}

// Get returns the value of id as float64
func (p *Params) Get(id parameter.ID) float64 {
	switch id {
	case parameter.Wells:
		return float64(p.Wells)
	case parameter.Agents:
		return float64(p.Agents)
	case parameter.ParticleRadius:
		return p.ParticleRadius
	case parameter.InnerFraction:
		return p.InnerFraction
	case parameter.Speed:
		return p.Speed
	case parameter.Noise:
		return p.Noise
	case parameter.Coupling:
		return p.Coupling
	case parameter.ObservationRadius:
		return p.ObservationRadius
	case parameter.DampingBase:
		return p.DampingBase
	case parameter.DriveRelax:
		return p.DriveRelax
	case parameter.CaptureDamping:
		return p.CaptureDamping
	case parameter.TangentialDamping:
		return p.TangentialDamping
	case parameter.CaptureThreshold:
		return p.CaptureThreshold
	case parameter.CollisionIterations:
		return float64(p.CollisionIterations)
	}
	return 0
}

// set stores v without clamping; callers clamp first
func (p *Params) set(id parameter.ID, v float64) {
	switch id {
	case parameter.Wells:
		p.Wells = int(v)
	case parameter.Agents:
		p.Agents = int(v)
	case parameter.ParticleRadius:
		p.ParticleRadius = v
	case parameter.InnerFraction:
		p.InnerFraction = v
	case parameter.Speed:
		p.Speed = v
	case parameter.Noise:
		p.Noise = v
	case parameter.Coupling:
		p.Coupling = v
	case parameter.ObservationRadius:
		p.ObservationRadius = v
	case parameter.DampingBase:
		p.DampingBase = v
	case parameter.DriveRelax:
		p.DriveRelax = v
	case parameter.CaptureDamping:
		p.CaptureDamping = v
	case parameter.TangentialDamping:
		p.TangentialDamping = v
	case parameter.CaptureThreshold:
		p.CaptureThreshold = v
	case parameter.CollisionIterations:
		p.CollisionIterations = int(v)
	}
}

// Clamped returns a copy with every field limited to its range
func (p Params) Clamped() Params {
	for _, id := range parameter.All() {
		p.set(id, id.Range().Clamp(p.Get(id)))
	}
	return p
}

// Dynamics projects the integrator coefficients out of p
func (p *Params) Dynamics() physics.Dynamics {
	return physics.Dynamics{
		Speed:               p.Speed,
		Noise:               p.Noise,
		Coupling:            p.Coupling,
		Radius:              p.ParticleRadius,
		DampingBase:         p.DampingBase,
		DriveRelax:          p.DriveRelax,
		CaptureDamping:      p.CaptureDamping,
		TangentialDamping:   p.TangentialDamping,
		CaptureThreshold:    p.CaptureThreshold,
		CollisionIterations: p.CollisionIterations,
	}
}
