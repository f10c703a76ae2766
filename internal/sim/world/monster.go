package world

import (
	"gridhunt.ai/internal/protocol"
	"gridhunt.ai/internal/sim/world/logic/orient"
	"gridhunt.ai/internal/sim/world/terrain"
)

// Monster is the reflex energy entity: no memory, no rules, just a periodic
// activation gate and a random walk over Free neighbors.
type Monster struct {
	ID           int
	Pos          Vec3i
	MovePermille int
	Actions      int
}

// stepMonster runs one reflex cycle. Every edge case degrades to IDLE with
// a reason code; nothing here can fail hard.
//
// The activation gate runs before any random draw so an unscheduled tick
// consumes no randomness and the outcome is deterministic for all t with
// t mod K != 0.
func (w *World) stepMonster(m *Monster, t uint64) protocol.AgentEvent {
	ev := protocol.AgentEvent{
		AgentID: m.ID,
		Kind:    protocol.KindMonster,
		Tick:    t,
		Action:  protocol.ActionIdle,
		Pos:     m.Pos.Arr(),
	}

	if t%uint64(w.cfg.MonsterPeriodK) != 0 {
		ev.Reason = protocol.ReasonNotScheduled
		return ev
	}
	if w.rng.Intn(1000) >= m.MovePermille {
		ev.Reason = protocol.ReasonProbabilityNotMet
		return ev
	}

	valid := m.validMoves(w.grid)
	if len(valid) == 0 {
		ev.Reason = protocol.ReasonNoValidMoves
		return ev
	}

	m.Pos = valid[w.rng.Intn(len(valid))]
	m.Actions++
	w.metrics.ActionExecuted(protocol.KindMonster, protocol.ActionMove)

	ev.Action = protocol.ActionMove
	ev.Success = true
	ev.Reason = protocol.ReasonMoved
	ev.Pos = m.Pos.Arr()
	return ev
}

// validMoves lists the orthogonal neighbors a monster may enter. Only the
// cell type constrains it; occupancy by other entities does not.
func (m *Monster) validMoves(g *terrain.Grid) []Vec3i {
	out := make([]Vec3i, 0, len(orient.All))
	for _, o := range orient.All {
		p := m.Pos.Step(o)
		if g.CellAt(p.X, p.Y, p.Z) != terrain.Blocked {
			out = append(out, p)
		}
	}
	return out
}
