package terrain

import (
	"crypto/sha256"
)

// Cell is the occupancy class of one zone in the cube.
type Cell uint8

const (
	// Free zones can be entered and traversed.
	Free Cell = iota
	// Blocked zones cannot be entered. The outer shell is always Blocked,
	// out-of-bounds lookups report Blocked, and a vacated zone becomes
	// Blocked permanently (burned, not reusable).
	Blocked
)

func (c Cell) String() string {
	if c == Blocked {
		return "BLOCKED"
	}
	return "FREE"
}

// GenMode selects how interior cells are assigned during generation.
type GenMode string

const (
	// GenUniform draws each interior cell independently from a seeded hash.
	GenUniform GenMode = "uniform"
	// GenClustered thresholds smooth 3D noise so blocked zones form blobs
	// instead of salt-and-pepper scatter.
	GenClustered GenMode = "clustered"
)

// Gen holds the generation parameters for a cube.
type Gen struct {
	Side            int
	BlockedPermille int
	Seed            int64
	Mode            GenMode
}

// Grid is a cube of Side^3 cells. It is created once and never resized;
// the only mutation after generation is Vacate.
type Grid struct {
	side  int
	cells []Cell

	dirty bool
	hash  [32]byte
}

func (g *Grid) Side() int { return g.side }

func (g *Grid) index(x, y, z int) int {
	return (x*g.side+y)*g.side + z
}

// InBounds reports whether the coordinate lies inside the cube.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.side && y >= 0 && y < g.side && z >= 0 && z < g.side
}

// CellAt is total: any out-of-bounds coordinate reads as Blocked.
func (g *Grid) CellAt(x, y, z int) Cell {
	if !g.InBounds(x, y, z) {
		return Blocked
	}
	return g.cells[g.index(x, y, z)]
}

// SetCell overwrites the cell at (x,y,z); no-op out of bounds. Scenario
// setup uses it; simulation mutation goes through Vacate only.
func (g *Grid) SetCell(x, y, z int, c Cell) {
	if !g.InBounds(x, y, z) {
		return
	}
	i := g.index(x, y, z)
	if g.cells[i] == c {
		return
	}
	g.cells[i] = c
	g.dirty = true
}

// Vacate burns the zone at (x,y,z): it becomes Blocked and never returns to
// play. No-op out of bounds.
func (g *Grid) Vacate(x, y, z int) {
	if !g.InBounds(x, y, z) {
		return
	}
	i := g.index(x, y, z)
	if g.cells[i] == Blocked {
		return
	}
	g.cells[i] = Blocked
	g.dirty = true
}

// FreeCount returns the number of Free cells.
func (g *Grid) FreeCount() int {
	n := 0
	for _, c := range g.cells {
		if c == Free {
			n++
		}
	}
	return n
}

// Digest is a content hash of the cell array, cached until the next Vacate.
func (g *Grid) Digest() [32]byte {
	if g.dirty || g.hash == ([32]byte{}) {
		h := sha256.New()
		buf := make([]byte, len(g.cells))
		for i, c := range g.cells {
			buf[i] = byte(c)
		}
		h.Write(buf)
		copy(g.hash[:], h.Sum(nil))
		g.dirty = false
	}
	return g.hash
}
