package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	Grid   Grid   `yaml:"grid"`
	Agents Agents `yaml:"agents"`
	Run    Run    `yaml:"run"`
	Memory Memory `yaml:"memory"`
}

type Grid struct {
	Side            int    `yaml:"side"`
	BlockedPermille int    `yaml:"blocked_permille"`
	GenMode         string `yaml:"gen_mode"`
}

type Agents struct {
	Robots              int `yaml:"robots"`
	Monsters            int `yaml:"monsters"`
	MonsterPeriodK      int `yaml:"monster_period_k"`
	MonsterMovePermille int `yaml:"monster_move_permille"`
}

type Run struct {
	Ticks       int  `yaml:"ticks"`
	TickDelayMs int  `yaml:"tick_delay_ms"`
	RenderLayer bool `yaml:"render_layer"`
}

type Memory struct {
	HistoryLimit         int `yaml:"history_limit"`
	LoopMinLen           int `yaml:"loop_min_len"`
	LoopMinRepeats       int `yaml:"loop_min_repeats"`
	EvadeWindow          int `yaml:"evade_window"`
	EvadeAdvancePermille int `yaml:"evade_advance_permille"`
}

func Defaults() Tuning {
	return Tuning{
		ProtocolVersion: "1.0",
		Grid: Grid{
			Side:            6,
			BlockedPermille: 200,
			GenMode:         "uniform",
		},
		Agents: Agents{
			Robots:              2,
			Monsters:            2,
			MonsterPeriodK:      3,
			MonsterMovePermille: 700,
		},
		Run: Run{
			Ticks:       15,
			TickDelayMs: 0,
			RenderLayer: true,
		},
		Memory: Memory{
			HistoryLimit:         256,
			LoopMinLen:           2,
			LoopMinRepeats:       2,
			EvadeWindow:          6,
			EvadeAdvancePermille: 400,
		},
	}
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

// Validate reports the first configuration error. All of these are fatal at
// construction; no partial world is ever built from an invalid Tuning.
func (t Tuning) Validate() error {
	if t.Grid.Side < 1 {
		return fmt.Errorf("grid.side %d < 1", t.Grid.Side)
	}
	if t.Grid.BlockedPermille < 0 || t.Grid.BlockedPermille > 1000 {
		return fmt.Errorf("grid.blocked_permille %d out of [0,1000]", t.Grid.BlockedPermille)
	}
	switch t.Grid.GenMode {
	case "", "uniform", "clustered":
	default:
		return fmt.Errorf("grid.gen_mode %q unknown", t.Grid.GenMode)
	}
	if t.Agents.Robots < 0 || t.Agents.Monsters < 0 {
		return fmt.Errorf("agents: negative population")
	}
	if t.Agents.MonsterPeriodK < 1 {
		return fmt.Errorf("agents.monster_period_k %d < 1", t.Agents.MonsterPeriodK)
	}
	if t.Agents.MonsterMovePermille < 0 || t.Agents.MonsterMovePermille > 1000 {
		return fmt.Errorf("agents.monster_move_permille %d out of [0,1000]", t.Agents.MonsterMovePermille)
	}
	if t.Run.Ticks < 0 {
		return fmt.Errorf("run.ticks %d < 0", t.Run.Ticks)
	}
	if t.Memory.HistoryLimit < 1 {
		return fmt.Errorf("memory.history_limit %d < 1", t.Memory.HistoryLimit)
	}
	if t.Memory.LoopMinLen < 1 {
		return fmt.Errorf("memory.loop_min_len %d < 1", t.Memory.LoopMinLen)
	}
	if t.Memory.LoopMinRepeats < 2 {
		return fmt.Errorf("memory.loop_min_repeats %d < 2", t.Memory.LoopMinRepeats)
	}
	if t.Memory.EvadeWindow < 0 {
		return fmt.Errorf("memory.evade_window %d < 0", t.Memory.EvadeWindow)
	}
	if t.Memory.EvadeAdvancePermille < 0 || t.Memory.EvadeAdvancePermille > 1000 {
		return fmt.Errorf("memory.evade_advance_permille %d out of [0,1000]", t.Memory.EvadeAdvancePermille)
	}
	return nil
}
