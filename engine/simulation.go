package engine

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/wellring/core"
	"github.com/lixenwraith/wellring/parameter"
	"github.com/lixenwraith/wellring/physics"
	"github.com/lixenwraith/wellring/status"
	"github.com/lixenwraith/wellring/vmath"
)

// StepObserver is called after every integrating step with its report
type StepObserver func(physics.StepReport)

// Simulation owns agents, wells and tunables and advances them one step at a time
// Not safe for concurrent use; wrap in a Scheduler to share across goroutines
type Simulation struct {
	params        Params
	width, height float64
	running       bool

	seed uint64
	rng  *vmath.FastRand

	agents []core.Agent
	wells  []core.Well

	steps   uint64
	simTime float64
	last    physics.StepReport
	runID   uuid.UUID

	log       *zap.Logger
	reg       *status.Registry
	observers []StepObserver

	// Cached metric pointers
	statRunning     *atomic.Bool
	statFrames      *atomic.Int64
	statAgents      *atomic.Int64
	statWells       *atomic.Int64
	statHeld        *atomic.Int64
	statCaptures    *atomic.Int64
	statReleases    *atomic.Int64
	statRimHits     *atomic.Int64
	statCorrections *atomic.Int64
	statMeanCapture *status.AtomicFloat
	statOverlap     *status.AtomicFloat
	statWorstLap    *status.AtomicFloat
	statSimTime     *status.AtomicFloat
	statDt          *status.AtomicFloat
}

// Option configures a Simulation at construction
type Option func(*Simulation)

// WithSeed fixes the random seed; equal seeds and inputs give equal runs
func WithSeed(seed uint64) Option {
	return func(s *Simulation) { s.seed = seed }
}

// WithLogger sets the logger, default is a no-op logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Simulation) {
		if log != nil {
			s.log = log
		}
	}
}

// WithRegistry publishes step metrics into reg
func WithRegistry(reg *status.Registry) Option {
	return func(s *Simulation) {
		if reg != nil {
			s.reg = reg
		}
	}
}

// WithCanvas sets the canvas the ring is fitted into
func WithCanvas(w, h float64) Option {
	return func(s *Simulation) { s.width, s.height = w, h }
}

// WithObserver registers fn to receive every integrating step report
func WithObserver(fn StepObserver) Option {
	return func(s *Simulation) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// NewSimulation builds a paused simulation with clamped params and freshly seeded agents and wells
func NewSimulation(params Params, opts ...Option) *Simulation {
	s := &Simulation{
		params: params.Clamped(),
		width:  parameter.DefaultCanvasWidth,
		height: parameter.DefaultCanvasHeight,
		seed:   parameter.DefaultSeed,
		log:    zap.NewNop(),
		runID:  uuid.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reg == nil {
		s.reg = status.NewRegistry()
	}
	s.width, s.height = canvasExtent(s.width), canvasExtent(s.height)
	s.rng = vmath.NewFastRand(s.seed)
	s.log = s.log.With(zap.String("run_id", s.runID.String()))

	s.cacheMetrics()
	s.reg.Strings.Get(status.KeyRunID).Store(s.runID.String())

	s.ReseedAll()
	s.log.Info("simulation created",
		zap.Uint64("seed", s.seed),
		zap.Float64("width", s.width),
		zap.Float64("height", s.height),
		zap.Int("agents", s.params.Agents),
		zap.Int("wells", s.params.Wells),
	)
	return s
}

func (s *Simulation) cacheMetrics() {
	s.statRunning = s.reg.Bools.Get(status.KeyRunning)
	s.statFrames = s.reg.Ints.Get(status.KeyFrames)
	s.statAgents = s.reg.Ints.Get(status.KeyAgents)
	s.statWells = s.reg.Ints.Get(status.KeyWells)
	s.statHeld = s.reg.Ints.Get(status.KeyHeld)
	s.statCaptures = s.reg.Ints.Get(status.KeyCaptures)
	s.statReleases = s.reg.Ints.Get(status.KeyReleases)
	s.statRimHits = s.reg.Ints.Get(status.KeyRimHits)
	s.statCorrections = s.reg.Ints.Get(status.KeyCorrections)
	s.statMeanCapture = s.reg.Floats.Get(status.KeyMeanCapture)
	s.statOverlap = s.reg.Floats.Get(status.KeyOverlap)
	s.statWorstLap = s.reg.Floats.Get(status.KeyWorstLap)
	s.statSimTime = s.reg.Floats.Get(status.KeySimTime)
	s.statDt = s.reg.Floats.Get(status.KeyLastDt)
}

// Ring returns the annulus for the current canvas and inner fraction
func (s *Simulation) Ring() core.Ring {
	return core.NewRing(s.width, s.height, s.params.InnerFraction)
}

// Field returns the well field for the current parameters and ring
func (s *Simulation) Field() physics.Field {
	return physics.DeriveField(s.params.Coupling, s.params.Speed, s.Ring())
}

// Params returns a copy of the current tunables
func (s *Simulation) Params() Params { return s.params }

func (s *Simulation) Running() bool { return s.running }

func (s *Simulation) Steps() uint64 { return s.steps }

func (s *Simulation) RunID() uuid.UUID { return s.runID }

// Registry returns the metric registry the simulation publishes into
func (s *Simulation) Registry() *status.Registry { return s.reg }

// ReseedAgents replaces all agents with area-uniform samples inside the admissible band,
// each moving at the configured speed along a uniform random heading
func (s *Simulation) ReseedAgents() {
	ring := s.Ring()
	lo, hi := ring.Limits(s.params.ParticleRadius)
	lo, hi = lo+parameter.AgentSeedMargin, hi-parameter.AgentSeedMargin
	if lo > hi {
		lo, hi = ring.Mid(), ring.Mid()
	}

	agents := make([]core.Agent, s.params.Agents)
	for i := range agents {
		pos := vmath.SampleAnnulus(s.rng, ring.Center, lo, hi)
		heading := vmath.WrapAngle(s.rng.Angle())
		agents[i] = core.NewAgent(pos, heading, s.params.Speed)
	}
	s.agents = agents
	s.statAgents.Store(int64(len(agents)))
	s.log.Debug("agents reseeded", zap.Int("count", len(agents)), zap.Float64("lo", lo), zap.Float64("hi", hi))
}

// ReseedWells replaces all wells with area-uniform samples padded away from both rims
func (s *Simulation) ReseedWells() {
	ring := s.Ring()
	lo, hi := ring.Inner+parameter.WellSeedPadding, ring.Outer-parameter.WellSeedPadding
	if lo > hi {
		lo, hi = ring.Mid(), ring.Mid()
	}

	wells := make([]core.Well, s.params.Wells)
	for i := range wells {
		wells[i].Pos = vmath.SampleAnnulus(s.rng, ring.Center, lo, hi)
	}
	s.wells = wells
	s.statWells.Store(int64(len(wells)))
	s.log.Debug("wells reseeded", zap.Int("count", len(wells)))
}

// ReseedAll reseeds wells then agents
func (s *Simulation) ReseedAll() {
	s.ReseedWells()
	s.ReseedAgents()
}

// AlignWellsEquidistant places well i on the band midline at angle 2πi/P
func (s *Simulation) AlignWellsEquidistant() {
	ring := s.Ring()
	mid := ring.Mid()
	n := len(s.wells)
	for i := range s.wells {
		s.wells[i].Pos = vmath.PointOnCircle(ring.Center, mid, vmath.EvenAngle(i, n))
	}
	s.log.Debug("wells aligned", zap.Int("count", n), zap.Float64("radius", mid))
}

// SetRunning sets the play state consulted by Tick
func (s *Simulation) SetRunning(running bool) {
	if s.running == running {
		return
	}
	s.running = running
	s.statRunning.Store(running)
	s.log.Debug("run state changed", zap.Bool("running", running))
}

// TogglePlay flips the play state and returns the new value
func (s *Simulation) TogglePlay() bool {
	s.SetRunning(!s.running)
	return s.running
}

// SetParameter clamps value into the range of id, applies it and returns the applied value
// Population, radius and inner fraction changes reseed agents; well count changes reseed wells
func (s *Simulation) SetParameter(id parameter.ID, value float64) float64 {
	if !id.Valid() {
		s.log.Warn("unknown parameter ignored", zap.Uint8("id", uint8(id)), zap.Float64("value", value))
		return 0
	}

	applied := id.Range().Clamp(value)
	if applied != value {
		s.log.Debug("parameter clamped",
			zap.Stringer("param", id),
			zap.Float64("requested", value),
			zap.Float64("applied", applied),
		)
	}

	prev := s.params.Get(id)
	s.params.set(id, applied)
	if prev == applied {
		return applied
	}

	switch id {
	case parameter.Agents, parameter.ParticleRadius, parameter.InnerFraction:
		s.ReseedAgents()
	case parameter.Wells:
		s.ReseedWells()
	}
	s.log.Debug("parameter set", zap.Stringer("param", id), zap.Float64("value", applied))
	return applied
}

// AdjustParameter moves id by steps increments of its range step and returns the applied value
func (s *Simulation) AdjustParameter(id parameter.ID, steps int) float64 {
	return s.SetParameter(id, s.params.Get(id)+float64(steps)*id.Range().Step)
}

// SetCanvas resizes the canvas and reseeds agents into the new ring
func (s *Simulation) SetCanvas(w, h float64) {
	w, h = canvasExtent(w), canvasExtent(h)
	if w == s.width && h == s.height {
		return
	}
	s.width, s.height = w, h
	s.ReseedAgents()
	s.log.Debug("canvas resized", zap.Float64("width", w), zap.Float64("height", h))
}

// canvasExtent maps negative and non-finite extents to an empty canvas
func canvasExtent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Canvas returns the canvas size
func (s *Simulation) Canvas() (w, h float64) {
	return s.width, s.height
}

// Step advances the simulation by dt seconds regardless of play state
// dt <= 0 or NaN only applies pending boundary and collision corrections; positive dt is
// clamped to [MinStepDt, MaxStepDt] before integrating
func (s *Simulation) Step(dt float64) physics.StepReport {
	ring := s.Ring()
	dyn := s.params.Dynamics()

	if !(dt > 0) {
		rep := physics.StepReport{RimHits: physics.ReflectAll(s.agents, ring, dyn.Radius)}
		rep.Collisions = physics.ResolveCollisions(s.agents, ring, dyn.Radius, dyn.CollisionIterations)
		rep.Held, rep.MeanCapture = s.captureSummary()
		s.publish(rep, 0)
		return rep
	}

	dt = vmath.Clamp(dt, parameter.MinStepDt, parameter.MaxStepDt)
	rep := physics.Step(s.agents, s.wells, ring, dyn, s.rng, dt)
	s.steps++
	s.simTime += dt
	s.publish(rep, dt)

	if rep.Captured > 0 || rep.Released > 0 {
		s.log.Debug("capture transition",
			zap.Uint64("step", s.steps),
			zap.Int("captured", rep.Captured),
			zap.Int("released", rep.Released),
			zap.Int("held", rep.Held),
		)
	}
	for _, fn := range s.observers {
		fn(rep)
	}
	return rep
}

// Tick is the frame entry: advances by elapsed wall time only while running
func (s *Simulation) Tick(elapsed time.Duration) (physics.StepReport, bool) {
	if !s.running {
		return physics.StepReport{}, false
	}
	return s.Step(elapsed.Seconds()), true
}

func (s *Simulation) captureSummary() (held int, mean float64) {
	for i := range s.agents {
		c := s.agents[i].Capture
		if c >= parameter.CaptureEventLevel {
			held++
		}
		mean += c
	}
	if len(s.agents) > 0 {
		mean /= float64(len(s.agents))
	}
	return held, mean
}

func (s *Simulation) publish(rep physics.StepReport, dt float64) {
	s.last = rep
	s.statFrames.Store(int64(s.steps))
	s.statHeld.Store(int64(rep.Held))
	s.statCaptures.Add(int64(rep.Captured))
	s.statReleases.Add(int64(rep.Released))
	s.statRimHits.Add(int64(rep.RimHits + rep.Collisions.RimHits))
	s.statCorrections.Add(int64(rep.Collisions.Corrections))
	s.statMeanCapture.Set(rep.MeanCapture)
	s.statOverlap.Set(rep.Collisions.MaxOverlap)
	s.statWorstLap.StoreMax(rep.Collisions.MaxOverlap)
	s.statSimTime.Set(s.simTime)
	if dt > 0 {
		s.statDt.Set(dt)
	}
}
