package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"gridhunt.ai/internal/persistence/indexdb"
	persistlog "gridhunt.ai/internal/persistence/log"
	"gridhunt.ai/internal/protocol"
	"gridhunt.ai/internal/sim/tuning"
	"gridhunt.ai/internal/sim/world"
	"gridhunt.ai/internal/transport/observer"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "observer http listen address (empty to disable)")
		tuningPath = flag.String("tuning", "./configs/tuning.yaml", "path to tuning.yaml")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		seed       = flag.Int64("seed", 42, "world seed")
		ticks      = flag.Int("ticks", 0, "tick count override (0 = use tuning)")
		disableDB  = flag.Bool("disable_db", false, "disable the run index database")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[simd] ", log.LstdFlags|log.Lmicroseconds)

	tune, err := tuning.Load(*tuningPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("tuning not found (%s); using defaults", *tuningPath)
			tune = tuning.Defaults()
		} else {
			logger.Fatalf("load tuning: %v", err)
		}
	}
	if err := tune.Validate(); err != nil {
		logger.Fatalf("invalid tuning: %v", err)
	}

	runTicks := tune.Run.Ticks
	if *ticks > 0 {
		runTicks = *ticks
	}

	w, err := world.New(world.ConfigFromTuning(tune, *seed))
	if err != nil {
		logger.Fatalf("create world: %v", err)
	}

	stats := world.NewRunStats()
	w.SetMetrics(stats)

	if err := w.Populate(tune.Agents.Robots, tune.Agents.Monsters); err != nil {
		logger.Fatalf("populate: %v", err)
	}

	runID := uuid.NewString()
	logger.Printf("run %s: side=%d seed=%d robots=%d monsters=%d ticks=%d",
		runID, tune.Grid.Side, *seed, tune.Agents.Robots, tune.Agents.Monsters, runTicks)

	tl := persistlog.NewTickLogger(*dataDir, runID)
	defer tl.Close()
	w.SetTickLogger(tl)

	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.Open(filepath.Join(*dataDir, "index.db"))
		if err != nil {
			logger.Fatalf("open run index: %v", err)
		}
		defer idx.Close()
		idx.InsertRun(indexdb.RunRow{
			RunID:           runID,
			Seed:            *seed,
			Side:            tune.Grid.Side,
			BlockedPermille: tune.Grid.BlockedPermille,
			GenMode:         string(w.Config().GenMode),
			Robots:          tune.Agents.Robots,
			Monsters:        tune.Agents.Monsters,
			Ticks:           runTicks,
			StartedAt:       time.Now().UTC().Format(time.RFC3339),
		})
	}

	var obs *observer.Server
	var httpSrv *http.Server
	if strings.TrimSpace(*addr) != "" {
		obs = observer.NewServer(protocol.RunMsg{
			Type:            protocol.TypeRun,
			ProtocolVersion: protocol.Version,
			RunID:           runID,
			Seed:            *seed,
			Side:            tune.Grid.Side,
			Ticks:           runTicks,
		}, logger)

		mux := http.NewServeMux()
		mux.HandleFunc("/v1/observe", obs.Handler())
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)

		httpSrv = &http.Server{Addr: *addr, Handler: mux}
		go func() {
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("observer http: %v", err)
			}
		}()
		logger.Printf("observer stream on ws://%s/v1/observe", *addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	midLayer := tune.Grid.Side / 2
	delay := time.Duration(tune.Run.TickDelayMs) * time.Millisecond

	err = w.Run(ctx, runTicks, delay, func(entry protocol.TickLogEntry) {
		layer := ""
		if tune.Run.RenderLayer || obs != nil {
			layer = w.RenderLayer(midLayer)
		}
		if tune.Run.RenderLayer {
			fmt.Printf("--- tick %d (layer z=%d) ---\n%s", entry.Tick, midLayer, layer)
		}
		for _, ev := range entry.Events {
			if ev.Kind == protocol.KindRobot {
				logger.Printf("robot %d -> %s (%s) %s", ev.AgentID, ev.Action, ev.Facing, ev.Reason)
			}
		}
		if obs != nil {
			obs.Broadcast(protocol.FrameMsg{
				Type:            protocol.TypeFrame,
				ProtocolVersion: protocol.Version,
				Tick:            entry.Tick,
				Layer:           layer,
				Events:          entry.Events,
				Digest:          entry.Digest,
			})
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Printf("run: %v", err)
	}

	logger.Printf("run %s finished: tick=%d robots=%d monsters=%d destroyed=%d collisions=%d loops=%d",
		runID, w.Tick(), len(w.Robots()), len(w.Monsters()), stats.Destroyed, stats.Collisions, stats.Loops)

	if idx != nil {
		idx.FinishRun(indexdb.FinishRow{
			RunID:                  runID,
			FinishedAt:             time.Now().UTC().Format(time.RFC3339),
			FinalDigest:            w.StateDigest(),
			Advances:               stats.Actions[protocol.KindRobot+"/"+protocol.ActionAdvance],
			Rotations:              stats.Actions[protocol.KindRobot+"/"+protocol.ActionReorient],
			Destroys:               stats.Actions[protocol.KindRobot+"/"+protocol.ActionDestroy],
			MonsterMoves:           stats.Actions[protocol.KindMonster+"/"+protocol.ActionMove],
			Collisions:             stats.Collisions,
			CollisionsPreFirstKill: stats.CollisionsPreFirstKill,
			MonstersDestroyed:      stats.Destroyed,
			LoopsDetected:          stats.Loops,
			DistinctTiers:          stats.DistinctTiers(),
			RobotsLeft:             len(w.Robots()),
			MonstersLeft:           len(w.Monsters()),
		})
	}

	if httpSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}
}
