package world

import (
	"fmt"
	"math/rand"

	"gridhunt.ai/internal/protocol"
	"gridhunt.ai/internal/sim/tuning"
	"gridhunt.ai/internal/sim/world/terrain"
)

// Config carries every construction input of a world. Identical Config plus
// identical call order yields an identical run.
type Config struct {
	Side            int
	BlockedPermille int
	GenMode         terrain.GenMode
	Seed            int64

	MonsterPeriodK      int
	MonsterMovePermille int

	HistoryLimit         int
	LoopMinLen           int
	LoopMinRepeats       int
	EvadeWindow          int
	EvadeAdvancePermille int
}

// ConfigFromTuning maps validated tuning onto a world Config.
func ConfigFromTuning(t tuning.Tuning, seed int64) Config {
	return Config{
		Side:                 t.Grid.Side,
		BlockedPermille:      t.Grid.BlockedPermille,
		GenMode:              terrain.GenMode(t.Grid.GenMode),
		Seed:                 seed,
		MonsterPeriodK:       t.Agents.MonsterPeriodK,
		MonsterMovePermille:  t.Agents.MonsterMovePermille,
		HistoryLimit:         t.Memory.HistoryLimit,
		LoopMinLen:           t.Memory.LoopMinLen,
		LoopMinRepeats:       t.Memory.LoopMinRepeats,
		EvadeWindow:          t.Memory.EvadeWindow,
		EvadeAdvancePermille: t.Memory.EvadeAdvancePermille,
	}
}

// TickLogger receives one entry per completed tick. Implemented in
// internal/persistence/log; may be nil.
type TickLogger interface {
	WriteTick(entry protocol.TickLogEntry) error
}

// World is the single-threaded authoritative simulation: the cube, both
// agent registries, and the one random source every stochastic decision
// draws from. All state must be accessed from one goroutine.
type World struct {
	cfg  Config
	grid *terrain.Grid
	rng  *rand.Rand

	tick uint64

	robots   map[int]*Robot
	monsters map[int]*Monster
	// Registration order; ticks iterate a snapshot of these so removal
	// during a tick cannot corrupt iteration.
	robotOrder   []int
	monsterOrder []int

	nextRobotID   int
	nextMonsterID int

	metrics MetricsSink

	// Optional tick log sink (may be nil).
	tickLogger TickLogger
}

// New builds a world from cfg. Configuration errors are fatal here; no
// partial world is returned.
func New(cfg Config) (*World, error) {
	if cfg.MonsterPeriodK < 1 {
		return nil, fmt.Errorf("world: monster period %d < 1", cfg.MonsterPeriodK)
	}
	if cfg.MonsterMovePermille < 0 || cfg.MonsterMovePermille > 1000 {
		return nil, fmt.Errorf("world: monster move permille %d out of [0,1000]", cfg.MonsterMovePermille)
	}
	if cfg.HistoryLimit < 1 {
		cfg.HistoryLimit = 256
	}
	if cfg.LoopMinLen < 1 {
		cfg.LoopMinLen = 2
	}
	if cfg.LoopMinRepeats < 2 {
		cfg.LoopMinRepeats = 2
	}
	g, err := terrain.Generate(terrain.Gen{
		Side:            cfg.Side,
		BlockedPermille: cfg.BlockedPermille,
		Seed:            cfg.Seed,
		Mode:            cfg.GenMode,
	})
	if err != nil {
		return nil, err
	}
	return &World{
		cfg:      cfg,
		grid:     g,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		robots:   map[int]*Robot{},
		monsters: map[int]*Monster{},
		metrics:  NopMetrics{},
	}, nil
}

func (w *World) Config() Config { return w.cfg }
func (w *World) Tick() uint64   { return w.tick }
func (w *World) Side() int      { return w.grid.Side() }

// SetMetrics injects a metrics sink. A nil sink restores the no-op default.
func (w *World) SetMetrics(m MetricsSink) {
	if m == nil {
		m = NopMetrics{}
	}
	w.metrics = m
}

// SetTickLogger injects the persisted tick-log sink.
func (w *World) SetTickLogger(l TickLogger) { w.tickLogger = l }
