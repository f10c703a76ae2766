// Package orient provides the six axis-aligned orientations a robot can face
// and the rotation math over them.
package orient

// Orientation is one of the six unit directions along ±X, ±Y, ±Z.
type Orientation uint8

const (
	PosX Orientation = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// All lists every orientation in a stable order.
var All = []Orientation{PosX, NegX, PosY, NegY, PosZ, NegZ}

// cycle is the relative-turn ring in the XY plane. Relative ±90 turns never
// select a vertical orientation; only absolute alignment can.
var cycle = []Orientation{PosX, PosY, NegX, NegY}

var vecs = [6][3]int{
	PosX: {1, 0, 0},
	NegX: {-1, 0, 0},
	PosY: {0, 1, 0},
	NegY: {0, -1, 0},
	PosZ: {0, 0, 1},
	NegZ: {0, 0, -1},
}

var labels = [6]string{
	PosX: "+X",
	NegX: "-X",
	PosY: "+Y",
	NegY: "-Y",
	PosZ: "+Z",
	NegZ: "-Z",
}

func (o Orientation) Vec() (dx, dy, dz int) {
	v := vecs[o]
	return v[0], v[1], v[2]
}

func (o Orientation) String() string { return labels[o] }

func (o Orientation) Opposite() Orientation {
	// Pairs are adjacent in the enum.
	return o ^ 1
}

// Parse maps a "+X".."-Z" label back to an Orientation.
func Parse(s string) (Orientation, bool) {
	for _, o := range All {
		if labels[o] == s {
			return o, true
		}
	}
	return PosX, false
}

// TurnCW rotates one quarter-turn clockwise within the XY ring. A vertical
// orientation re-enters the ring at +X, matching the reorient effector's
// fallback for out-of-plane facings.
func (o Orientation) TurnCW() Orientation {
	return turn(o, 1)
}

// TurnCCW rotates one quarter-turn counter-clockwise within the XY ring.
func (o Orientation) TurnCCW() Orientation {
	return turn(o, -1)
}

func turn(o Orientation, step int) Orientation {
	idx := -1
	for i, c := range cycle {
		if c == o {
			idx = i
			break
		}
	}
	if idx < 0 {
		// Vertical facing: drop into the ring before turning.
		o = PosX
		idx = 0
	}
	n := len(cycle)
	return cycle[((idx+step)%n+n)%n]
}
