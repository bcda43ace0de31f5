package parameter

// Integrator tunables. Empirically tuned for qualitatively stable capture, not physical constants
const (
	// DampingBaseDefault is the linear damping applied to every agent (1/sec)
	DampingBaseDefault = 1.1
	// DriveRelaxDefault is the rate velocity relaxes toward the propulsion velocity (1/sec)
	DriveRelaxDefault = 2.2
	// CaptureDampingDefault is added to linear damping in proportion to capture weight (1/sec)
	CaptureDampingDefault = 4.0
	// TangentialDampingDefault damps velocity across the field direction of captured agents (1/sec)
	TangentialDampingDefault = 6.0
	// CaptureThresholdDefault is the capture weight above which tangential damping engages
	CaptureThresholdDefault = 0.2

	// CaptureEventLevel is the capture weight whose crossing is reported as capture/release
	CaptureEventLevel = 0.5

	// CollisionIterationsDefault is the resolver sweep budget per step
	CollisionIterationsDefault = 2

	// ForceEpsilon is the field magnitude below which the field has no usable direction
	ForceEpsilon = 1e-9
)

// Well field shaping, as fractions of ring band width
const (
	FieldSigmaBase   = 0.10
	FieldSigmaMin    = 0.05
	FieldSigmaMax    = 0.12
	FieldSigmaShrink = 0.3

	FieldAmpBase = 0.25
	FieldAmpGain = 0.6
	FieldAmpMax  = 0.85

	// CaptureSigmaRatio widens the capture kernel relative to the force kernel
	CaptureSigmaRatio = 1.25
)
