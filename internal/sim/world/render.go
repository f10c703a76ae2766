package world

import (
	"strings"

	"gridhunt.ai/internal/sim/world/terrain"
)

// RenderLayer draws one Z layer as rows of cells: [R] robot, [M] monster,
// [#] blocked, [ ] free. A robot sharing a cell with a monster renders as
// the robot. Out-of-range z yields an empty string.
func (w *World) RenderLayer(z int) string {
	n := w.grid.Side()
	if z < 0 || z >= n {
		return ""
	}

	robotHere := map[[2]int]bool{}
	for _, id := range w.robotOrder {
		if r := w.robots[id]; r != nil && r.Pos.Z == z {
			robotHere[[2]int{r.Pos.X, r.Pos.Y}] = true
		}
	}
	monsterHere := map[[2]int]bool{}
	for _, id := range w.monsterOrder {
		if m := w.monsters[id]; m != nil && m.Pos.Z == z {
			monsterHere[[2]int{m.Pos.X, m.Pos.Y}] = true
		}
	}

	var b strings.Builder
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			switch {
			case robotHere[[2]int{x, y}]:
				b.WriteString("[R]")
			case monsterHere[[2]int{x, y}]:
				b.WriteString("[M]")
			case w.grid.CellAt(x, y, z) == terrain.Blocked:
				b.WriteString("[#]")
			default:
				b.WriteString("[ ]")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
