package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Agent is a self-propelled disk
type Agent struct {
	Kinetic
	// Heading is the propulsion direction in (-π, π], kept in sync with Vel above a speed epsilon
	Heading float64
	// Capture is the last evaluated capture weight in [0, 1)
	Capture float64
}

// NewAgent returns an agent at pos moving at speed along heading
func NewAgent(pos r2.Vec, heading, speed float64) Agent {
	sin, cos := math.Sincos(heading)
	return Agent{
		Kinetic: Kinetic{
			Pos: pos,
			Vel: r2.Vec{X: speed * cos, Y: speed * sin},
		},
		Heading: heading,
	}
}

// Well is a fixed attractor point
type Well struct {
	Pos r2.Vec
}

// AgentView is the read-only per-agent record handed to renderers
type AgentView struct {
	X, Y    float64
	Theta   float64
	Capture float64
}

// WellView is the read-only per-well record handed to renderers
type WellView struct {
	X, Y float64
}

// View returns the renderer record of a
func (a *Agent) View() AgentView {
	return AgentView{X: a.Pos.X, Y: a.Pos.Y, Theta: a.Heading, Capture: a.Capture}
}

// View returns the renderer record of w
func (w Well) View() WellView {
	return WellView{X: w.Pos.X, Y: w.Pos.Y}
}
