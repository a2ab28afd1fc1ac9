package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/frontdesk/internal/ai"
	"github.com/udisondev/frontdesk/internal/config"
	"github.com/udisondev/frontdesk/internal/db"
	"github.com/udisondev/frontdesk/internal/journal"
	"github.com/udisondev/frontdesk/internal/sim"
)

const (
	DefaultConfigPath = "config/visitsim.yaml"
	progressProfile   = "default"
	statsInterval     = 30 * time.Second
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfgPath := flag.String("config", DefaultConfigPath, "simulation config (env "+config.EnvPath+" wins)")
	fast := flag.Bool("fast", false, "step without waiting; needs a positive duration")
	flag.Parse()

	if err := run(ctx, config.ResolvePath(*cfgPath), *fast); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string, fast bool) error {
	// Load config FIRST to determine log level
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Enable AI debug logging if log level is debug
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	runID := uuid.New()
	slog.Info("visitsim starting", "config", cfgPath, "run_id", runID, "log_level", cfg.LogLevel)

	var opts []sim.Option

	var jw *journal.Writer
	if cfg.Journal.Enabled {
		level, err := journal.ParseLevel(cfg.Journal.Level)
		if err != nil {
			return err
		}
		jw, err = journal.Create(cfg.Journal.Path, runID.String(), level)
		if err != nil {
			return fmt.Errorf("opening journal: %w", err)
		}
		defer func() {
			if err := jw.Close(); err != nil {
				slog.Error("closing journal", "error", err)
				return
			}
			sum, err := journal.Summarize(cfg.Journal.Path)
			if err != nil {
				slog.Error("reading journal back", "error", err)
				return
			}
			slog.Info("journal closed",
				"path", cfg.Journal.Path,
				"records", sum.Records,
				"spawned", sum.Spawned,
				"yields", sum.Yields,
				"outcomes", sum.Outcomes)
		}()
		opts = append(opts, sim.WithEventSink(jw), sim.WithOutcomeSink(jw))
	}

	var (
		database *db.DB
		ledger   *db.Ledger
	)
	if cfg.Database.Enabled {
		database, err = db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		ledger = db.NewLedger(database.Outcomes(), runID)
		opts = append(opts, sim.WithOutcomeSink(ledger))
	}

	s, err := sim.New(cfg, opts...)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}

	if database != nil {
		pr, ok, err := database.Progress().Load(ctx, progressProfile)
		if err != nil {
			return err
		}
		if ok {
			s.Player().Restore(pr)
			slog.Info("player progress restored", "level", pr.Level, "balance", pr.Balance, "reputation", pr.Reputation)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	// the simulation finishing ends the run; ledger and stats follow it
	simCtx, stopAll := context.WithCancel(gctx)
	defer stopAll()

	g.Go(func() error {
		defer stopAll()
		var err error
		if fast {
			err = s.RunFast(simCtx)
		} else {
			err = s.Run(simCtx)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	if ledger != nil {
		g.Go(func() error {
			return ledger.Run(simCtx)
		})
	}

	if !fast {
		g.Go(func() error {
			ticker := time.NewTicker(statsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-simCtx.Done():
					return nil
				case <-ticker.C:
					slog.Info("simulation stats", "stats", s.Stats())
					if ai.IsDebugEnabled() {
						for _, sn := range s.Registry().Snapshots() {
							slog.Debug("visitor",
								"visitorID", sn.ID,
								"role", sn.Role,
								"station", sn.Station,
								"phase", sn.Phase,
								"slot", sn.Slot,
								"yielded", sn.Yielded)
						}
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	stats := s.Stats()
	slog.Info("simulation summary", "stats", stats, "seed", s.Seed())

	if ledger != nil {
		saved, dropped, failed := ledger.Stats()
		slog.Info("outcome ledger", "saved", saved, "dropped", dropped, "failed", failed)
	}

	if database != nil {
		// parent ctx may already be cancelled by a signal
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := database.Progress().Save(saveCtx, progressProfile, stats.Player); err != nil {
			return fmt.Errorf("saving player progress: %w", err)
		}
		slog.Info("player progress saved", "profile", progressProfile)
	}

	return nil
}
