package world

import (
	"fmt"

	"gridhunt.ai/internal/protocol"
	"gridhunt.ai/internal/sim/world/logic/orient"
	"gridhunt.ai/internal/sim/world/terrain"
)

// RejectError is a typed, recoverable registration rejection. The caller is
// expected to retry with a different coordinate.
type RejectError struct {
	Code string
	Pos  Vec3i
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("%s at (%d,%d,%d)", e.Code, e.Pos.X, e.Pos.Y, e.Pos.Z)
}

// RejectCode extracts the rejection code from a registration error, or ""
// if err is not a rejection.
func RejectCode(err error) string {
	if re, ok := err.(*RejectError); ok {
		return re.Code
	}
	return ""
}

// CellType is a total cell query: out-of-bounds coordinates read Blocked.
func (w *World) CellType(x, y, z int) terrain.Cell {
	return w.grid.CellAt(x, y, z)
}

// RegisterRobot validates both occupancy invariants and inserts the robot.
// A rejected registration performs no mutation. The assigned id is stable
// for the life of the run.
func (w *World) RegisterRobot(pos Vec3i, facing orient.Orientation) (*Robot, error) {
	if w.grid.CellAt(pos.X, pos.Y, pos.Z) == terrain.Blocked {
		return nil, &RejectError{Code: protocol.ErrBlockedCell, Pos: pos}
	}
	for _, id := range w.robotOrder {
		if r := w.robots[id]; r != nil && r.Pos == pos {
			return nil, &RejectError{Code: protocol.ErrOccupiedSameKind, Pos: pos}
		}
	}
	w.nextRobotID++
	r := newRobot(w.nextRobotID, pos, facing, w.cfg.HistoryLimit)
	w.robots[r.ID] = r
	w.robotOrder = append(w.robotOrder, r.ID)
	return r, nil
}

// RegisterMonster validates both occupancy invariants and inserts the
// monster. Monsters may share a cell with robots but not with each other.
func (w *World) RegisterMonster(pos Vec3i, movePermille int) (*Monster, error) {
	if w.grid.CellAt(pos.X, pos.Y, pos.Z) == terrain.Blocked {
		return nil, &RejectError{Code: protocol.ErrBlockedCell, Pos: pos}
	}
	for _, id := range w.monsterOrder {
		if m := w.monsters[id]; m != nil && m.Pos == pos {
			return nil, &RejectError{Code: protocol.ErrOccupiedSameKind, Pos: pos}
		}
	}
	w.nextMonsterID++
	m := &Monster{ID: w.nextMonsterID, Pos: pos, MovePermille: movePermille}
	w.monsters[m.ID] = m
	w.monsterOrder = append(w.monsterOrder, m.ID)
	return m, nil
}

// RemoveRobot deactivates and removes the robot. Removing an absent id is a
// no-op reported by the return value, never a failure.
func (w *World) RemoveRobot(id int) bool {
	r, ok := w.robots[id]
	if !ok {
		return false
	}
	r.Active = false
	delete(w.robots, id)
	return true
}

// RemoveMonster removes the monster; idempotent like RemoveRobot.
func (w *World) RemoveMonster(id int) bool {
	if _, ok := w.monsters[id]; !ok {
		return false
	}
	delete(w.monsters, id)
	return true
}

// Vacate burns the cell at pos. Any future registration there is rejected.
func (w *World) Vacate(pos Vec3i) {
	w.grid.Vacate(pos.X, pos.Y, pos.Z)
}

// Populate registers n robots and m monsters at random Free cells, retrying
// rejected placements. Placement draws come from the world's seeded source,
// so the accepted/rejected sequence is reproducible.
func (w *World) Populate(robots, monsters int) error {
	const maxTries = 10000
	for i := 0; i < robots; i++ {
		placed := false
		for try := 0; try < maxTries; try++ {
			pos := w.randomPos()
			facing := orient.All[w.rng.Intn(len(orient.All))]
			if _, err := w.RegisterRobot(pos, facing); err == nil {
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("populate: no free cell for robot %d", i+1)
		}
	}
	for i := 0; i < monsters; i++ {
		placed := false
		for try := 0; try < maxTries; try++ {
			pos := w.randomPos()
			if _, err := w.RegisterMonster(pos, w.cfg.MonsterMovePermille); err == nil {
				placed = true
				break
			}
		}
		if !placed {
			return fmt.Errorf("populate: no free cell for monster %d", i+1)
		}
	}
	return nil
}

func (w *World) randomPos() Vec3i {
	n := w.grid.Side()
	return Vec3i{X: w.rng.Intn(n), Y: w.rng.Intn(n), Z: w.rng.Intn(n)}
}

// Robots returns snapshots in registration order.
func (w *World) Robots() []RobotSnapshot {
	out := make([]RobotSnapshot, 0, len(w.robots))
	for _, id := range w.robotOrder {
		r, ok := w.robots[id]
		if !ok {
			continue
		}
		out = append(out, RobotSnapshot{ID: r.ID, Pos: r.Pos, Facing: r.Facing, Active: r.Active})
	}
	return out
}

// Monsters returns snapshots in registration order.
func (w *World) Monsters() []MonsterSnapshot {
	out := make([]MonsterSnapshot, 0, len(w.monsters))
	for _, id := range w.monsterOrder {
		m, ok := w.monsters[id]
		if !ok {
			continue
		}
		out = append(out, MonsterSnapshot{ID: m.ID, Pos: m.Pos, Actions: m.Actions})
	}
	return out
}

func (w *World) monsterAt(pos Vec3i) *Monster {
	for _, id := range w.monsterOrder {
		if m := w.monsters[id]; m != nil && m.Pos == pos {
			return m
		}
	}
	return nil
}

func (w *World) robotAt(pos Vec3i, excludeID int) *Robot {
	for _, id := range w.robotOrder {
		if id == excludeID {
			continue
		}
		if r := w.robots[id]; r != nil && r.Pos == pos {
			return r
		}
	}
	return nil
}
