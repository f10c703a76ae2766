package world

import (
	"fmt"

	"gridhunt.ai/internal/sim/world/logic/orient"
)

// RelPos classifies where a detected energy entity sits relative to the
// robot's facing.
type RelPos string

const (
	RelNone  RelPos = ""
	RelAhead RelPos = "ahead"
	RelSide  RelPos = "side"
)

// EnergyReading is the neighborhood energy detector's output: whether any
// monster occupies one of the five neighbor cells (the cell directly behind
// is excluded), where the nearest hit sits, and its absolute direction.
type EnergyReading struct {
	Detected bool
	Class    RelPos
	Dir      orient.Orientation
}

// Percept is the transient per-tick sensor snapshot. It is rebuilt from
// world state every tick and never stored beyond the current decision.
type Percept struct {
	Facing         orient.Orientation
	EnergyInCell   bool
	MaterialAhead  bool
	ForwardBlocked bool
	Energy         EnergyReading
}

// perceive reads all five sensor channels for r against current state.
func (w *World) perceive(r *Robot) Percept {
	ahead := r.Pos.Step(r.Facing)
	return Percept{
		Facing:         r.Facing,
		EnergyInCell:   w.monsterAt(r.Pos) != nil,
		MaterialAhead:  w.robotAt(ahead, r.ID) != nil,
		ForwardBlocked: r.collided,
		Energy:         w.scanEnergy(r),
	}
}

// scanEnergy sweeps the five neighbors excluding the one directly behind
// the facing, in the stable orientation order.
func (w *World) scanEnergy(r *Robot) EnergyReading {
	behind := r.Facing.Opposite()
	for _, o := range orient.All {
		if o == behind {
			continue
		}
		if w.monsterAt(r.Pos.Step(o)) == nil {
			continue
		}
		class := RelSide
		if o == r.Facing {
			class = RelAhead
		}
		return EnergyReading{Detected: true, Class: class, Dir: o}
	}
	return EnergyReading{}
}

// Key projects the percept onto the decision-table key domain.
func (p Percept) Key() DecisionKey {
	return DecisionKey{
		EnergyInCell:   p.EnergyInCell,
		MaterialAhead:  p.MaterialAhead,
		EnergyDetected: p.Energy.Detected,
		EnergyClass:    p.Energy.Class,
		Collided:       p.ForwardBlocked,
	}
}

// summary renders the percept for episodic memory. Two ticks with equal
// summaries are indistinguishable to loop detection.
func (p Percept) summary(pos Vec3i) string {
	return fmt.Sprintf("%s|E%t|R%t|M%t-%s|V%t|(%d,%d,%d)",
		p.Facing, p.EnergyInCell, p.MaterialAhead,
		p.Energy.Detected, p.Energy.Class, p.ForwardBlocked,
		pos.X, pos.Y, pos.Z)
}
