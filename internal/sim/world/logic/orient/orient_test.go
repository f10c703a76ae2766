package orient

import "testing"

func TestTurnCycle(t *testing.T) {
	want := []Orientation{PosY, NegX, NegY, PosX}
	o := PosX
	for i, w := range want {
		o = o.TurnCW()
		if o != w {
			t.Fatalf("cw step %d: got %s want %s", i, o, w)
		}
	}
	o = PosX
	wantCCW := []Orientation{NegY, NegX, PosY, PosX}
	for i, w := range wantCCW {
		o = o.TurnCCW()
		if o != w {
			t.Fatalf("ccw step %d: got %s want %s", i, o, w)
		}
	}
}

func TestTurnFromVertical(t *testing.T) {
	// A vertical facing drops into the ring at +X before stepping.
	if got := PosZ.TurnCW(); got != PosY {
		t.Fatalf("PosZ cw: got %s want +Y", got)
	}
	if got := NegZ.TurnCW(); got != PosY {
		t.Fatalf("NegZ cw: got %s want +Y", got)
	}
	if got := PosZ.TurnCCW(); got != NegY {
		t.Fatalf("PosZ ccw: got %s want -Y", got)
	}
}

func TestOpposite(t *testing.T) {
	pairs := [][2]Orientation{{PosX, NegX}, {PosY, NegY}, {PosZ, NegZ}}
	for _, p := range pairs {
		if p[0].Opposite() != p[1] || p[1].Opposite() != p[0] {
			t.Fatalf("opposite broken for %s/%s", p[0], p[1])
		}
	}
	for _, o := range All {
		dx, dy, dz := o.Vec()
		ox, oy, oz := o.Opposite().Vec()
		if dx+ox != 0 || dy+oy != 0 || dz+oz != 0 {
			t.Fatalf("%s and %s vectors do not cancel", o, o.Opposite())
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, o := range All {
		got, ok := Parse(o.String())
		if !ok || got != o {
			t.Fatalf("parse %q: got %s ok=%v", o.String(), got, ok)
		}
	}
	if _, ok := Parse("north"); ok {
		t.Fatalf("parse accepted garbage label")
	}
}
