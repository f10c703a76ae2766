package world

import (
	"gridhunt.ai/internal/protocol"
	"gridhunt.ai/internal/sim/world/logic/orient"
	"gridhunt.ai/internal/sim/world/terrain"
)

// effectorResult is the outcome an effector reports into the tick event.
type effectorResult struct {
	Success bool
	Reason  string
}

// advance moves the robot one cell along its facing. A Blocked (or
// out-of-bounds) forward cell leaves the position unchanged and arms the
// collision flag for next tick's forward-blocked sensor. Cell state is
// never mutated here.
func (w *World) advance(r *Robot) effectorResult {
	next := r.Pos.Step(r.Facing)
	w.metrics.ActionExecuted(protocol.KindRobot, protocol.ActionAdvance)
	if w.grid.CellAt(next.X, next.Y, next.Z) != terrain.Free {
		r.collided = true
		w.metrics.Collision()
		return effectorResult{Success: false, Reason: protocol.ReasonCollision}
	}
	r.Pos = next
	r.collided = false
	return effectorResult{Success: true, Reason: protocol.ReasonAdvanced}
}

// reorient sets the facing. Absolute alignment may select any of the six
// orientations; a relative turn cycles within the horizontal ring only.
// It cannot fail.
func (w *World) reorient(r *Robot, d Decision) effectorResult {
	w.metrics.ActionExecuted(protocol.KindRobot, protocol.ActionReorient)
	if d.HasAbs {
		r.Facing = d.AbsDir
		return effectorResult{Success: true, Reason: protocol.ReasonAligned}
	}
	if d.Turn == "-90" {
		r.Facing = r.Facing.TurnCCW()
	} else {
		r.Facing = r.Facing.TurnCW()
	}
	return effectorResult{Success: true, Reason: protocol.ReasonTurned}
}

// destroy removes every monster co-located with the robot, burns the cell,
// and removes the robot itself. Self-removal is unconditional: the effector
// is a single-use weapon, and firing it ends the robot's participation even
// when no monster was actually caught. Success reports only whether at
// least one monster was removed.
func (w *World) destroy(r *Robot) effectorResult {
	w.metrics.ActionExecuted(protocol.KindRobot, protocol.ActionDestroy)

	killed := 0
	for _, id := range append([]int(nil), w.monsterOrder...) {
		m := w.monsters[id]
		if m == nil || m.Pos != r.Pos {
			continue
		}
		if w.RemoveMonster(id) {
			killed++
		}
	}

	w.Vacate(r.Pos)
	w.RemoveRobot(r.ID)

	if killed > 0 {
		w.metrics.MonstersDestroyed(killed)
		return effectorResult{Success: true, Reason: protocol.ReasonDestroyed}
	}
	return effectorResult{Success: false, Reason: protocol.ReasonNoTarget}
}

// execute dispatches the decided effector.
func (w *World) execute(r *Robot, d Decision) effectorResult {
	switch d.Effector {
	case protocol.ActionAdvance:
		return w.advance(r)
	case protocol.ActionReorient:
		return w.reorient(r, d)
	case protocol.ActionDestroy:
		return w.destroy(r)
	}
	// Unreachable with a total table; degrade to idle semantics.
	return effectorResult{Success: false, Reason: protocol.ReasonNoTarget}
}

// evade perturbs the robot out of a detected behavioral cycle: pick a fresh
// orientation that is neither the current one, its opposite, nor any facing
// used in the recent history window (relaxed to current+opposite only when
// the filtered set is empty), then with a fixed probability attempt one
// advance. Best effort; it does not guarantee the cycle breaks.
func (w *World) evade(r *Robot) {
	recent := r.mem.recentFacings(w.cfg.EvadeWindow)

	candidates := make([]orient.Orientation, 0, len(orient.All))
	for _, o := range orient.All {
		if o == r.Facing || o == r.Facing.Opposite() || recent[o] {
			continue
		}
		candidates = append(candidates, o)
	}
	if len(candidates) == 0 {
		for _, o := range orient.All {
			if o == r.Facing || o == r.Facing.Opposite() {
				continue
			}
			candidates = append(candidates, o)
		}
	}

	next := candidates[w.rng.Intn(len(candidates))]
	w.reorient(r, Decision{AbsDir: next, HasAbs: true})
	if w.rng.Intn(1000) < w.cfg.EvadeAdvancePermille {
		w.advance(r)
	}
}
