package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// StateDigest hashes the full observable world state: grid cells, tick, and
// every agent's registration-ordered state. Twin worlds fed identical
// configs and call orders produce identical digests every tick.
func (w *World) StateDigest() string {
	h := sha256.New()

	gd := w.grid.Digest()
	h.Write(gd[:])

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], w.tick)
	h.Write(buf[:])

	writeInt := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		h.Write(buf[:])
	}

	for _, id := range w.robotOrder {
		r, ok := w.robots[id]
		if !ok {
			continue
		}
		writeInt(r.ID)
		writeInt(r.Pos.X)
		writeInt(r.Pos.Y)
		writeInt(r.Pos.Z)
		writeInt(int(r.Facing))
		if r.collided {
			writeInt(1)
		} else {
			writeInt(0)
		}
	}
	for _, id := range w.monsterOrder {
		m, ok := w.monsters[id]
		if !ok {
			continue
		}
		writeInt(m.ID)
		writeInt(m.Pos.X)
		writeInt(m.Pos.Y)
		writeInt(m.Pos.Z)
		writeInt(m.Actions)
	}

	return hex.EncodeToString(h.Sum(nil))
}
