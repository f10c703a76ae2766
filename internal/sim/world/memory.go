package world

import (
	"gridhunt.ai/internal/sim/world/logic/looptrace"
	"gridhunt.ai/internal/sim/world/logic/orient"
)

// agentMemory is a robot's private episodic log. Only the owning robot reads
// or writes it; neither the environment nor any other agent touches it.
type agentMemory struct {
	frames  []looptrace.Frame
	facings []orient.Orientation
	limit   int
}

func newAgentMemory(limit int) agentMemory {
	return agentMemory{limit: limit}
}

// record appends one (percept-summary, action) frame, trimming the front
// when the bound is exceeded. Loop detection only inspects trailing
// windows, so trimming old frames never changes its verdict.
func (m *agentMemory) record(p Percept, pos Vec3i, action string) {
	m.frames = append(m.frames, looptrace.Frame{Key: p.summary(pos), Action: action})
	m.facings = append(m.facings, p.Facing)
	if m.limit > 0 && len(m.frames) > m.limit {
		m.frames = m.frames[len(m.frames)-m.limit:]
		m.facings = m.facings[len(m.facings)-m.limit:]
	}
}

// detectLoop scans trailing history for a repeating percept/action pattern.
func (m *agentMemory) detectLoop(minLen, minRepeats int) (looptrace.Loop, bool) {
	return looptrace.Detect(m.frames, minLen, minRepeats)
}

// recentFacings reports the orientations recorded in the last window frames.
func (m *agentMemory) recentFacings(window int) map[orient.Orientation]bool {
	out := map[orient.Orientation]bool{}
	start := len(m.facings) - window
	if start < 0 {
		start = 0
	}
	for _, o := range m.facings[start:] {
		out[o] = true
	}
	return out
}

func (m *agentMemory) len() int { return len(m.frames) }
