package world

import (
	"gridhunt.ai/internal/protocol"
	"gridhunt.ai/internal/sim/world/logic/orient"
)

// DecisionKey is the composite percept key of the mapping table.
type DecisionKey struct {
	EnergyInCell   bool
	MaterialAhead  bool
	EnergyDetected bool
	EnergyClass    RelPos
	Collided       bool
}

// TableAction is one table entry: the effector plus its parameter. Turn is
// a relative quarter-turn ("+90"/"-90"); AlignToEnergy resolves the absolute
// target from the percept's detected direction at decision time.
type TableAction struct {
	Effector      string
	Turn          string
	AlignToEnergy bool
	Reason        string
}

// DecisionTable is the total percept→action mapping: lookups that miss fall
// through to the explicit default (advance), so every key resolves.
type DecisionTable map[DecisionKey]TableAction

// Decision is the resolved choice for one tick.
type Decision struct {
	Effector string
	Turn     string
	AbsDir   orient.Orientation
	HasAbs   bool
	Tier     string
	Reason   string
}

const (
	reasonEnergyInCell  = "energy_in_cell"
	reasonObstacleAhead = "obstacle_ahead"
	reasonRobotAhead    = "robot_ahead"
	reasonEnergyAhead   = "energy_ahead"
	reasonAlignToEnergy = "align_to_energy"
	reasonDefaultAction = "default_action"
)

// baseTable enumerates the full key domain the way the rule sheet lays it
// out: destroy whenever energy shares the cell, rotate away after a
// collision, yield to a robot ahead, chase or align toward detected energy,
// advance otherwise.
var baseTable = func() DecisionTable {
	t := DecisionTable{}

	put := func(k DecisionKey, a TableAction) { t[k] = a }
	classes := []struct {
		det   bool
		class RelPos
	}{
		{false, RelNone},
		{true, RelAhead},
		{true, RelSide},
	}

	for _, material := range []bool{false, true} {
		for _, ec := range classes {
			for _, collided := range []bool{false, true} {
				// Tier 1: energy in cell always destroys.
				put(DecisionKey{true, material, ec.det, ec.class, collided},
					TableAction{Effector: protocol.ActionDestroy, Reason: reasonEnergyInCell})
			}
			// Tier 2: collision flag forces a rotation.
			put(DecisionKey{false, material, ec.det, ec.class, true},
				TableAction{Effector: protocol.ActionReorient, Turn: "+90", Reason: reasonObstacleAhead})
		}
	}
	for _, ec := range classes {
		// Tier 3: yield to the robot ahead.
		put(DecisionKey{false, true, ec.det, ec.class, false},
			TableAction{Effector: protocol.ActionReorient, Turn: "+90", Reason: reasonRobotAhead})
	}
	// Tier 4: chase detected energy.
	put(DecisionKey{false, false, true, RelAhead, false},
		TableAction{Effector: protocol.ActionAdvance, Reason: reasonEnergyAhead})
	put(DecisionKey{false, false, true, RelSide, false},
		TableAction{Effector: protocol.ActionReorient, AlignToEnergy: true, Reason: reasonAlignToEnergy})
	// Tier 5: default.
	put(DecisionKey{false, false, false, RelNone, false},
		TableAction{Effector: protocol.ActionAdvance, Reason: reasonDefaultAction})

	return t
}()

// decide applies the strict priority order; the table is consulted only when
// no priority rule fires, and a missing key resolves to the default advance.
// The returned Tier names which rule fired, for introspection and tests.
func decide(table DecisionTable, p Percept) Decision {
	// 1. Same-cell energy: destroy, overriding everything.
	if p.EnergyInCell {
		return Decision{Effector: protocol.ActionDestroy, Tier: protocol.TierSameCellEnergy, Reason: reasonEnergyInCell}
	}
	// 2. Repeated-collision avoidance outranks cooperation and exploration.
	if p.ForwardBlocked {
		return Decision{Effector: protocol.ActionReorient, Turn: "+90", Tier: protocol.TierForwardBlocked, Reason: reasonObstacleAhead}
	}
	// 3. Cooperative yield: the forward cell cannot hold two robots.
	if p.MaterialAhead {
		return Decision{Effector: protocol.ActionReorient, Turn: "+90", Tier: protocol.TierMaterialAhead, Reason: reasonRobotAhead}
	}
	// 4. Detected energy: advance on it or align toward it.
	if p.Energy.Detected {
		if p.Energy.Class == RelAhead {
			return Decision{Effector: protocol.ActionAdvance, Tier: protocol.TierEnergyAhead, Reason: reasonEnergyAhead}
		}
		return Decision{Effector: protocol.ActionReorient, AbsDir: p.Energy.Dir, HasAbs: true, Tier: protocol.TierEnergySide, Reason: reasonAlignToEnergy}
	}
	// 5. Table lookup with explicit default.
	if a, ok := table[p.Key()]; ok {
		d := Decision{Effector: a.Effector, Turn: a.Turn, Tier: protocol.TierTable, Reason: a.Reason}
		if a.AlignToEnergy {
			d.AbsDir = p.Energy.Dir
			d.HasAbs = p.Energy.Detected
		}
		return d
	}
	return Decision{Effector: protocol.ActionAdvance, Tier: protocol.TierTableDefault, Reason: reasonDefaultAction}
}
