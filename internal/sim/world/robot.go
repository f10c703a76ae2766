package world

import (
	"gridhunt.ai/internal/sim/world/logic/orient"
)

// Robot is the rational material agent: five sensors, a priority policy over
// a total decision table, three effectors, and private episodic memory.
type Robot struct {
	ID     int
	Pos    Vec3i
	Facing orient.Orientation
	Active bool

	// Set by a failed advance, cleared by a successful one. This is the
	// forward-blocked sensor's backing state: the sensor reads last tick's
	// collision, not a live raycast.
	collided bool

	mem   agentMemory
	table DecisionTable
}

func newRobot(id int, pos Vec3i, facing orient.Orientation, historyLimit int) *Robot {
	return &Robot{
		ID:     id,
		Pos:    pos,
		Facing: facing,
		Active: true,
		mem:    newAgentMemory(historyLimit),
		table:  baseTable,
	}
}
