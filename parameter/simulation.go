package parameter

// Population and geometry defaults
const (
	// DefaultWells is the number of attractor wells
	DefaultWells = 5
	// DefaultAgents is the number of self-propelled agents
	DefaultAgents = 20
	// DefaultParticleRadius is the agent disk radius (canvas units)
	DefaultParticleRadius = 15.0
	// DefaultInnerFraction is the inner radius as a fraction of the outer radius
	DefaultInnerFraction = 0.30
	// DefaultSpeed is the self-propulsion speed (units/sec)
	DefaultSpeed = 85.0
	// DefaultNoise is the heading noise intensity (rad/sqrt(sec))
	DefaultNoise = 1.0
	// DefaultCoupling scales well attraction
	DefaultCoupling = 1.0
	// DefaultObservationRadius is the link distance drawn by renderers (units), not used by the dynamics
	DefaultObservationRadius = 100.0

	// DefaultCanvasWidth/Height size the device-independent canvas the ring is fitted into
	DefaultCanvasWidth  = 1000.0
	DefaultCanvasHeight = 1000.0

	// DefaultSeed drives the simulation RNG when none is configured
	DefaultSeed = 1
)

// Seeding margins
const (
	// AgentSeedMargin keeps seeded agents this far inside the admissible band (units)
	AgentSeedMargin = 1.0
	// WellSeedPadding keeps seeded wells this far inside the rims (units)
	WellSeedPadding = 6.0
)

// Time step bounds applied to every positive Step dt (seconds)
const (
	MinStepDt = 0.001
	MaxStepDt = 0.033
)
