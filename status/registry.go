package status

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Metric keys published by the simulation controller
const (
	KeyRunID       = "run.id"
	KeyRunning     = "sim.running"
	KeyFrames      = "sim.frames"
	KeyAgents      = "sim.agents"
	KeyWells       = "sim.wells"
	KeyHeld        = "sim.held"
	KeyCaptures    = "sim.captures"
	KeyReleases    = "sim.releases"
	KeyRimHits     = "sim.rim_hits"
	KeyCorrections = "sim.corrections"
	KeyMeanCapture = "sim.mean_capture"
	KeyOverlap     = "sim.max_overlap"
	KeyWorstLap    = "sim.worst_overlap"
	KeySimTime     = "sim.time"
	KeyLastDt      = "sim.dt"
)

// Registry groups metric maps by value type
// Writers cache pointers once; readers poll without locking the writer
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Fields returns every metric as zap fields, grouped by type and sorted by key
func (r *Registry) Fields() []zap.Field {
	fields := make([]zap.Field, 0, r.TotalCount())
	r.Bools.Range(func(k string, v *atomic.Bool) { fields = append(fields, zap.Bool(k, v.Load())) })
	r.Ints.Range(func(k string, v *atomic.Int64) { fields = append(fields, zap.Int64(k, v.Load())) })
	r.Floats.Range(func(k string, v *AtomicFloat) { fields = append(fields, zap.Float64(k, v.Get())) })
	r.Strings.Range(func(k string, v *AtomicString) { fields = append(fields, zap.String(k, v.Load())) })
	return fields
}

// MarshalLogObject lets a Registry be logged inline with zap.Object
func (r *Registry) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, f := range r.Fields() {
		f.AddTo(enc)
	}
	return nil
}
