package world

import "gridhunt.ai/internal/sim/world/logic/orient"

// Vec3i is a cell coordinate inside the cube.
type Vec3i struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (v Vec3i) Add(dx, dy, dz int) Vec3i {
	return Vec3i{X: v.X + dx, Y: v.Y + dy, Z: v.Z + dz}
}

// Step returns the neighbor cell one step along o.
func (v Vec3i) Step(o orient.Orientation) Vec3i {
	dx, dy, dz := o.Vec()
	return v.Add(dx, dy, dz)
}

func (v Vec3i) Arr() [3]int { return [3]int{v.X, v.Y, v.Z} }

// RobotSnapshot is a read-only view of one robot for drivers and observers.
type RobotSnapshot struct {
	ID     int
	Pos    Vec3i
	Facing orient.Orientation
	Active bool
}

// MonsterSnapshot is a read-only view of one monster.
type MonsterSnapshot struct {
	ID      int
	Pos     Vec3i
	Actions int
}
