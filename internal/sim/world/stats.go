package world

// MetricsSink is the injected capability agents and effectors report into.
// It is always present; the default is a no-op. Nothing in the core keeps a
// back-reference to the driver.
type MetricsSink interface {
	ActionExecuted(kind, action string)
	Collision()
	MonstersDestroyed(n int)
	LoopDetected()
	RuleFired(tier string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) ActionExecuted(string, string) {}
func (NopMetrics) Collision()                    {}
func (NopMetrics) MonstersDestroyed(int)         {}
func (NopMetrics) LoopDetected()                 {}
func (NopMetrics) RuleFired(string)              {}

// RunStats aggregates one run's metrics. Single-threaded like the world; no
// locking.
type RunStats struct {
	Actions map[string]int // "ROBOT/ADVANCE" etc.

	Collisions             int
	CollisionsPreFirstKill int
	Destroyed              int
	Loops                  int
	TiersFired             map[string]int

	firstKill bool
}

func NewRunStats() *RunStats {
	return &RunStats{
		Actions:    map[string]int{},
		TiersFired: map[string]int{},
	}
}

func (s *RunStats) ActionExecuted(kind, action string) {
	s.Actions[kind+"/"+action]++
}

func (s *RunStats) Collision() {
	s.Collisions++
	if !s.firstKill {
		s.CollisionsPreFirstKill++
	}
}

func (s *RunStats) MonstersDestroyed(n int) {
	s.Destroyed += n
	if n > 0 {
		s.firstKill = true
	}
}

func (s *RunStats) LoopDetected() { s.Loops++ }

func (s *RunStats) RuleFired(tier string) { s.TiersFired[tier]++ }

// DistinctTiers reports how many distinct decision tiers fired.
func (s *RunStats) DistinctTiers() int { return len(s.TiersFired) }
