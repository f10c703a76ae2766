package world

import (
	"testing"

	"gridhunt.ai/internal/protocol"
	"gridhunt.ai/internal/sim/world/logic/mathx"
	"gridhunt.ai/internal/sim/world/logic/orient"
)

func TestMonster_UnscheduledTickIdles(t *testing.T) {
	cfg := testConfig(6)
	cfg.MonsterPeriodK = 3
	w := newTestWorld(t, cfg)
	mustRegisterMonster(t, w, Vec3i{2, 2, 2}, 1000)

	w.Step() // tick 0 is on the schedule
	for _, tick := range []uint64{1, 2} {
		entry := w.Step()
		ev := entry.Events[0]
		if ev.Tick != tick {
			t.Fatalf("tick mismatch: got %d want %d", ev.Tick, tick)
		}
		if ev.Action != protocol.ActionIdle || ev.Reason != protocol.ReasonNotScheduled {
			t.Fatalf("tick %d: got %s/%s want IDLE/not_scheduled", tick, ev.Action, ev.Reason)
		}
		if ev.Success {
			t.Fatalf("idle event reported success")
		}
	}
}

func TestMonster_ZeroProbabilityNeverMoves(t *testing.T) {
	w := newTestWorld(t, testConfig(6))
	m := mustRegisterMonster(t, w, Vec3i{2, 2, 2}, 0)

	entry := w.Step()
	ev := entry.Events[0]
	if ev.Action != protocol.ActionIdle || ev.Reason != protocol.ReasonProbabilityNotMet {
		t.Fatalf("got %s/%s want IDLE/probability_not_met", ev.Action, ev.Reason)
	}
	if m.Pos != (Vec3i{2, 2, 2}) || m.Actions != 0 {
		t.Fatalf("monster mutated on an idle tick: %+v", m)
	}
}

func TestMonster_BoxedInReportsNoValidMoves(t *testing.T) {
	w := newTestWorld(t, testConfig(5))
	pos := Vec3i{2, 2, 2}
	m := mustRegisterMonster(t, w, pos, 1000)
	for _, o := range orient.All {
		setBlocked(w, pos.Step(o))
	}

	entry := w.Step()
	ev := entry.Events[0]
	if ev.Action != protocol.ActionIdle || ev.Reason != protocol.ReasonNoValidMoves {
		t.Fatalf("got %s/%s want IDLE/no_valid_moves", ev.Action, ev.Reason)
	}
	if m.Pos != pos {
		t.Fatalf("boxed monster moved to %v", m.Pos)
	}
}

func TestMonster_MovesToOrthogonalFreeNeighbor(t *testing.T) {
	w := newTestWorld(t, testConfig(6))
	start := Vec3i{2, 2, 2}
	m := mustRegisterMonster(t, w, start, 1000)

	entry := w.Step()
	ev := entry.Events[0]
	if ev.Action != protocol.ActionMove || !ev.Success || ev.Reason != protocol.ReasonMoved {
		t.Fatalf("got %s/%s success=%v", ev.Action, ev.Reason, ev.Success)
	}
	if m.Actions != 1 {
		t.Fatalf("action count %d want 1", m.Actions)
	}
	d := mathx.AbsInt(m.Pos.X-start.X) + mathx.AbsInt(m.Pos.Y-start.Y) + mathx.AbsInt(m.Pos.Z-start.Z)
	if d != 1 {
		t.Fatalf("move was not orthogonal unit step: %v -> %v", start, m.Pos)
	}
	if ev.Pos != m.Pos.Arr() {
		t.Fatalf("event pos %v disagrees with monster pos %v", ev.Pos, m.Pos)
	}
}
