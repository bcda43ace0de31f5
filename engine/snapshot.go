package engine

import (
	"github.com/lixenwraith/wellring/core"
	"github.com/lixenwraith/wellring/physics"
)

// Snapshot is a detached copy of simulation state for renderers
type Snapshot struct {
	Agents []core.AgentView
	Wells  []core.WellView

	Ring  core.Ring
	Field physics.Field

	Params        Params
	Width, Height float64

	Running bool
	Steps   uint64
	SimTime float64
	Last    physics.StepReport
	RunID   string
}

// Snapshot copies agents and wells in index order along with derived geometry
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Agents:  make([]core.AgentView, len(s.agents)),
		Wells:   make([]core.WellView, len(s.wells)),
		Ring:    s.Ring(),
		Field:   s.Field(),
		Params:  s.params,
		Width:   s.width,
		Height:  s.height,
		Running: s.running,
		Steps:   s.steps,
		SimTime: s.simTime,
		Last:    s.last,
		RunID:   s.runID.String(),
	}
	for i := range s.agents {
		snap.Agents[i] = s.agents[i].View()
	}
	for i := range s.wells {
		snap.Wells[i] = s.wells[i].View()
	}
	return snap
}
