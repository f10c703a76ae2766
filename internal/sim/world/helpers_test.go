package world

import (
	"testing"

	"gridhunt.ai/internal/sim/world/logic/orient"
	"gridhunt.ai/internal/sim/world/terrain"
)

// testConfig is an open arena: permille 0 keeps the whole interior Free so
// scenarios place obstacles explicitly.
func testConfig(side int) Config {
	return Config{
		Side:                 side,
		BlockedPermille:      0,
		Seed:                 42,
		MonsterPeriodK:       3,
		MonsterMovePermille:  700,
		HistoryLimit:         256,
		LoopMinLen:           2,
		LoopMinRepeats:       2,
		EvadeWindow:          6,
		EvadeAdvancePermille: 0,
	}
}

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return w
}

func setBlocked(w *World, p Vec3i) {
	w.grid.SetCell(p.X, p.Y, p.Z, terrain.Blocked)
}

func mustRegisterRobot(t *testing.T, w *World, p Vec3i, facing string) *Robot {
	t.Helper()
	o, ok := orient.Parse(facing)
	if !ok {
		t.Fatalf("bad facing %q", facing)
	}
	r, err := w.RegisterRobot(p, o)
	if err != nil {
		t.Fatalf("register robot at (%d,%d,%d): %v", p.X, p.Y, p.Z, err)
	}
	return r
}

func mustRegisterMonster(t *testing.T, w *World, p Vec3i, movePermille int) *Monster {
	t.Helper()
	m, err := w.RegisterMonster(p, movePermille)
	if err != nil {
		t.Fatalf("register monster at (%d,%d,%d): %v", p.X, p.Y, p.Z, err)
	}
	return m
}
