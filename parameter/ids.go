package parameter

import (
	"fmt"
	"math"
	"strings"
)

// ID names a tunable exposed to control collaborators
type ID uint8

const (
	Wells ID = iota
	Agents
	ParticleRadius
	InnerFraction
	Speed
	Noise
	Coupling
	ObservationRadius
	DampingBase
	DriveRelax
	CaptureDamping
	TangentialDamping
	CaptureThreshold
	CollisionIterations

	idCount
)

// Range is the admissible interval of a tunable
// Integer ranges round before clamping
type Range struct {
	Min, Max float64
	Integer  bool
	// Step is the increment used by interactive +/- adjustment
	Step float64
}

// Clamp rounds (integer ranges) and limits v to the range; NaN maps to Min
func (r Range) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	if r.Integer {
		v = math.Round(v)
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

type spec struct {
	name  string
	label string
	rng   Range
}

var specs = [idCount]spec{
	Wells:               {"wells", "wells", Range{Min: 1, Max: 64, Integer: true, Step: 1}},
	Agents:              {"agents", "agents", Range{Min: 1, Max: 500, Integer: true, Step: 1}},
	ParticleRadius:      {"radius", "radius", Range{Min: 1, Max: 60, Step: 1}},
	InnerFraction:       {"inner", "inner", Range{Min: 0, Max: 0.9, Step: 0.05}},
	Speed:               {"speed", "speed", Range{Min: 0, Max: 400, Step: 5}},
	Noise:               {"noise", "noise", Range{Min: 0, Max: 10, Step: 0.1}},
	Coupling:            {"coupling", "coupling", Range{Min: 0, Max: 10, Step: 0.1}},
	ObservationRadius:   {"observe", "observe", Range{Min: 0, Max: 1000, Step: 10}},
	DampingBase:         {"damping", "damp", Range{Min: 0, Max: 50, Step: 0.1}},
	DriveRelax:          {"relax", "relax", Range{Min: 0, Max: 50, Step: 0.1}},
	CaptureDamping:      {"capture_damping", "cdamp", Range{Min: 0, Max: 50, Step: 0.5}},
	TangentialDamping:   {"tangential_damping", "tdamp", Range{Min: 0, Max: 50, Step: 0.5}},
	CaptureThreshold:    {"capture_threshold", "cthr", Range{Min: 0, Max: 1, Step: 0.05}},
	CollisionIterations: {"collision_iterations", "iters", Range{Min: 1, Max: 16, Integer: true, Step: 1}},
}

// All returns every ID in declaration order
func All() []ID {
	ids := make([]ID, idCount)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// Valid reports whether id names a known tunable
func (id ID) Valid() bool {
	return id < idCount
}

// String returns the config/CLI key of id
func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", uint8(id))
	}
	return specs[id].name
}

// Label returns the short status-bar label of id
func (id ID) Label() string {
	if !id.Valid() {
		return "?"
	}
	return specs[id].label
}

// Range returns the admissible interval of id
func (id ID) Range() Range {
	if !id.Valid() {
		return Range{}
	}
	return specs[id].rng
}

// Parse resolves a config/CLI key to its ID
func Parse(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, s := range specs {
		if s.name == name {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown parameter %q", name)
}
