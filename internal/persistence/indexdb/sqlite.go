// Package indexdb maintains a small SQLite read model of completed and
// in-flight runs. It never affects sim determinism; writes happen on a
// background goroutine and failures are reported, not fatal.
package indexdb

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

type SQLiteIndex struct {
	db *sqlx.DB

	ch   chan req
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type reqKind int

const (
	reqRun reqKind = iota + 1
	reqFinish
)

type req struct {
	kind   reqKind
	run    RunRow
	finish FinishRow
}

// RunRow records a run's construction inputs at start time.
type RunRow struct {
	RunID           string `db:"run_id"`
	Seed            int64  `db:"seed"`
	Side            int    `db:"side"`
	BlockedPermille int    `db:"blocked_permille"`
	GenMode         string `db:"gen_mode"`
	Robots          int    `db:"robots"`
	Monsters        int    `db:"monsters"`
	Ticks           int    `db:"ticks"`
	StartedAt       string `db:"started_at"`
}

// FinishRow records the outcome summary when a run completes.
type FinishRow struct {
	RunID       string `db:"run_id"`
	FinishedAt  string `db:"finished_at"`
	FinalDigest string `db:"final_digest"`

	Advances               int `db:"advances"`
	Rotations              int `db:"rotations"`
	Destroys               int `db:"destroys"`
	MonsterMoves           int `db:"monster_moves"`
	Collisions             int `db:"collisions"`
	CollisionsPreFirstKill int `db:"collisions_pre_first_kill"`
	MonstersDestroyed      int `db:"monsters_destroyed"`
	LoopsDetected          int `db:"loops_detected"`
	DistinctTiers          int `db:"distinct_tiers"`
	RobotsLeft             int `db:"robots_left"`
	MonstersLeft           int `db:"monsters_left"`
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id           TEXT PRIMARY KEY,
	seed             INTEGER NOT NULL,
	side             INTEGER NOT NULL,
	blocked_permille INTEGER NOT NULL,
	gen_mode         TEXT NOT NULL,
	robots           INTEGER NOT NULL,
	monsters         INTEGER NOT NULL,
	ticks            INTEGER NOT NULL,
	started_at       TEXT NOT NULL,
	finished_at      TEXT,
	final_digest     TEXT
);
CREATE TABLE IF NOT EXISTS run_summaries (
	run_id                    TEXT PRIMARY KEY REFERENCES runs(run_id),
	advances                  INTEGER NOT NULL,
	rotations                 INTEGER NOT NULL,
	destroys                  INTEGER NOT NULL,
	monster_moves             INTEGER NOT NULL,
	collisions                INTEGER NOT NULL,
	collisions_pre_first_kill INTEGER NOT NULL,
	monsters_destroyed        INTEGER NOT NULL,
	loops_detected            INTEGER NOT NULL,
	distinct_tiers            INTEGER NOT NULL,
	robots_left               INTEGER NOT NULL,
	monsters_left             INTEGER NOT NULL
);
`

func Open(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	idx := &SQLiteIndex{
		db: db,
		ch: make(chan req, 64),
	}
	idx.wg.Add(1)
	go idx.writer()
	return idx, nil
}

// InsertRun enqueues the run-start row. Non-blocking best effort once the
// index is closed.
func (s *SQLiteIndex) InsertRun(r RunRow) {
	s.enqueue(req{kind: reqRun, run: r})
}

// FinishRun enqueues the completion update and summary insert.
func (s *SQLiteIndex) FinishRun(f FinishRow) {
	s.enqueue(req{kind: reqFinish, finish: f})
}

func (s *SQLiteIndex) enqueue(r req) {
	if s.closed.Load() {
		return
	}
	select {
	case s.ch <- r:
	case <-time.After(2 * time.Second):
		// Writer stalled; drop rather than block the sim.
	}
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) writer() {
	defer s.wg.Done()
	for r := range s.ch {
		switch r.kind {
		case reqRun:
			_, _ = s.db.NamedExec(`INSERT OR REPLACE INTO runs
				(run_id, seed, side, blocked_permille, gen_mode, robots, monsters, ticks, started_at)
				VALUES (:run_id, :seed, :side, :blocked_permille, :gen_mode, :robots, :monsters, :ticks, :started_at)`, r.run)
		case reqFinish:
			_, _ = s.db.NamedExec(`UPDATE runs SET finished_at = :finished_at, final_digest = :final_digest
				WHERE run_id = :run_id`, r.finish)
			_, _ = s.db.NamedExec(`INSERT OR REPLACE INTO run_summaries
				(run_id, advances, rotations, destroys, monster_moves, collisions,
				 collisions_pre_first_kill, monsters_destroyed, loops_detected,
				 distinct_tiers, robots_left, monsters_left)
				VALUES (:run_id, :advances, :rotations, :destroys, :monster_moves, :collisions,
				 :collisions_pre_first_kill, :monsters_destroyed, :loops_detected,
				 :distinct_tiers, :robots_left, :monsters_left)`, r.finish)
		}
	}
}

// LatestRuns returns up to limit runs ordered most recent first. Used by
// tooling and tests, not the sim.
func (s *SQLiteIndex) LatestRuns(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []RunRow
	err := s.db.Select(&out, `SELECT run_id, seed, side, blocked_permille, gen_mode,
		robots, monsters, ticks, started_at
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	return out, err
}
