package world

import (
	"strings"
	"testing"
)

func TestRenderLayer(t *testing.T) {
	w := newTestWorld(t, testConfig(4))
	mustRegisterRobot(t, w, Vec3i{1, 1, 1}, "+X")
	mustRegisterMonster(t, w, Vec3i{2, 2, 1}, 0)
	mustRegisterMonster(t, w, Vec3i{1, 1, 1}, 0) // shares the robot's cell

	out := w.RenderLayer(1)
	rows := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(rows) != 4 {
		t.Fatalf("got %d rows want 4", len(rows))
	}
	if rows[0] != "[#][#][#][#]" {
		t.Fatalf("shell row: %q", rows[0])
	}
	// Robot wins the shared cell; the lone monster renders as [M].
	if rows[1] != "[#][R][ ][#]" {
		t.Fatalf("row 1: %q", rows[1])
	}
	if rows[2] != "[#][ ][M][#]" {
		t.Fatalf("row 2: %q", rows[2])
	}
}

func TestRenderLayer_OutOfRange(t *testing.T) {
	w := newTestWorld(t, testConfig(4))
	if w.RenderLayer(-1) != "" || w.RenderLayer(4) != "" {
		t.Fatalf("out-of-range layer rendered")
	}
}
