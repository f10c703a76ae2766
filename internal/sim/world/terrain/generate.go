package terrain

import (
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"

	"gridhunt.ai/internal/sim/world/logic/mathx"
)

// Generate builds a Side^3 grid from gen. Interior cells are Blocked with
// probability BlockedPermille/1000, the outer shell is forced Blocked, and
// the center cell is forced Free as a guaranteed interior reference point.
// The result is fully determined by gen.
func Generate(gen Gen) (*Grid, error) {
	if gen.Side < 1 {
		return nil, fmt.Errorf("terrain: side %d < 1", gen.Side)
	}
	if gen.BlockedPermille < 0 || gen.BlockedPermille > 1000 {
		return nil, fmt.Errorf("terrain: blocked_permille %d out of [0,1000]", gen.BlockedPermille)
	}
	mode := gen.Mode
	if mode == "" {
		mode = GenUniform
	}

	g := &Grid{
		side:  gen.Side,
		cells: make([]Cell, gen.Side*gen.Side*gen.Side),
	}

	blocked := func(x, y, z int) bool {
		return mathx.Hash3(gen.Seed, x, y, z)%1000 < uint64(mathx.ClampPermille(gen.BlockedPermille))
	}
	if mode == GenClustered {
		noise := opensimplex.NewNormalized(gen.Seed)
		// Threshold normalized [0,1] noise at the blocked fraction so the
		// expected blocked share tracks BlockedPermille while neighbors stay
		// correlated.
		cut := float64(mathx.ClampPermille(gen.BlockedPermille)) / 1000.0
		blocked = func(x, y, z int) bool {
			return noise.Eval3(float64(x)*0.35, float64(y)*0.35, float64(z)*0.35) < cut
		}
	}

	for x := 0; x < gen.Side; x++ {
		for y := 0; y < gen.Side; y++ {
			for z := 0; z < gen.Side; z++ {
				c := Free
				if onShell(gen.Side, x, y, z) || blocked(x, y, z) {
					c = Blocked
				}
				g.cells[g.index(x, y, z)] = c
			}
		}
	}

	// Guaranteed interior reference cell.
	if gen.Side >= 3 {
		c := gen.Side / 2
		g.cells[g.index(c, c, c)] = Free
	}

	g.dirty = true
	_ = g.Digest()
	return g, nil
}

func onShell(side, x, y, z int) bool {
	return x == 0 || x == side-1 ||
		y == 0 || y == side-1 ||
		z == 0 || z == side-1
}
