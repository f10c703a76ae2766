package protocol

// Agent kinds.
const (
	KindRobot   = "ROBOT"
	KindMonster = "MONSTER"
)

// Actions an agent can report in its per-tick event.
const (
	ActionIdle     = "IDLE"
	ActionMove     = "MOVE"
	ActionAdvance  = "ADVANCE"
	ActionReorient = "REORIENT"
	ActionDestroy  = "DESTROY"
)

// Decision tiers, recorded before the chosen effector runs. Tiers 1-4 are
// the fixed priority rules; TierTable and TierTableDefault mark decisions
// resolved by the mapping table and its catch-all entry.
const (
	TierSameCellEnergy = "same_cell_energy"
	TierForwardBlocked = "forward_blocked"
	TierMaterialAhead  = "material_ahead"
	TierEnergyAhead    = "energy_ahead"
	TierEnergySide     = "energy_side"
	TierTable          = "table"
	TierTableDefault   = "table_default"
)

// Reason codes carried on event records. Per-tick anomalies are encoded
// here, never as errors.
const (
	// Monster idle reasons.
	ReasonNotScheduled      = "not_scheduled"
	ReasonProbabilityNotMet = "probability_not_met"
	ReasonNoValidMoves      = "no_valid_moves"
	ReasonMoved             = "moved"

	// Robot outcome reasons.
	ReasonAdvanced    = "advanced"
	ReasonCollision   = "collision"
	ReasonAligned     = "aligned"
	ReasonTurned      = "turned"
	ReasonDestroyed = "destroyed"
	ReasonNoTarget  = "no_target"
)

// AgentEvent is the sole per-tick observable output of one agent's turn.
type AgentEvent struct {
	AgentID int    `json:"agent_id"`
	Kind    string `json:"kind"`
	Tick    uint64 `json:"tick"`
	Action  string `json:"action"`
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
	Tier    string `json:"tier,omitempty"`
	Pos     [3]int `json:"pos"`
	Facing  string `json:"facing,omitempty"`
}

// TickLogEntry is one JSONL record in the persisted tick log.
type TickLogEntry struct {
	Tick   uint64       `json:"tick"`
	Events []AgentEvent `json:"events"`
	Robots int          `json:"robots"`
	Energy int          `json:"energy"`
	Digest string       `json:"digest"`
}
