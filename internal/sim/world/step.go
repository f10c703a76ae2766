package world

import (
	"gridhunt.ai/internal/protocol"
)

// Step runs one tick: every monster acts first, then every robot, each
// perceive→decide→act cycle running to completion before the next agent
// begins. The agent orders are snapshotted at tick start, so an agent
// removing itself (or a monster) mid-tick cannot corrupt iteration.
func (w *World) Step() protocol.TickLogEntry {
	t := w.tick
	events := make([]protocol.AgentEvent, 0, len(w.monsters)+len(w.robots))

	monsterIDs := append([]int(nil), w.monsterOrder...)
	for _, id := range monsterIDs {
		m, ok := w.monsters[id]
		if !ok {
			continue
		}
		events = append(events, w.stepMonster(m, t))
	}

	robotIDs := append([]int(nil), w.robotOrder...)
	for _, id := range robotIDs {
		r, ok := w.robots[id]
		if !ok || !r.Active {
			continue
		}
		events = append(events, w.stepRobot(r, t))
	}

	w.tick++

	entry := protocol.TickLogEntry{
		Tick:   t,
		Events: events,
		Robots: len(w.robots),
		Energy: len(w.monsters),
		Digest: w.StateDigest(),
	}
	if w.tickLogger != nil {
		_ = w.tickLogger.WriteTick(entry)
	}
	return entry
}

// stepRobot runs one full rational cycle for r.
func (w *World) stepRobot(r *Robot, t uint64) protocol.AgentEvent {
	p := w.perceive(r)

	// The collision flag is transient: it is consumed by this percept and
	// re-armed only if this tick's advance collides again.
	r.collided = false

	d := decide(r.table, p)
	w.metrics.RuleFired(d.Tier)
	r.mem.record(p, r.Pos, d.Effector)

	res := w.execute(r, d)

	if _, ok := r.mem.detectLoop(w.cfg.LoopMinLen, w.cfg.LoopMinRepeats); ok {
		w.metrics.LoopDetected()
		if r.Active {
			w.evade(r)
		}
	}

	return protocol.AgentEvent{
		AgentID: r.ID,
		Kind:    protocol.KindRobot,
		Tick:    t,
		Action:  d.Effector,
		Success: res.Success,
		Reason:  res.Reason,
		Tier:    d.Tier,
		Pos:     r.Pos.Arr(),
		Facing:  r.Facing.String(),
	}
}
