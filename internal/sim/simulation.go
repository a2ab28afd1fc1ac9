// Package sim assembles the hall: stations, spawner, visitor AIs, the
// proximity monitor and the player, and drives them on a fixed tick.
package sim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/frontdesk/internal/ai"
	"github.com/udisondev/frontdesk/internal/config"
	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
	"github.com/udisondev/frontdesk/internal/nav"
	"github.com/udisondev/frontdesk/internal/panel"
	"github.com/udisondev/frontdesk/internal/player"
	"github.com/udisondev/frontdesk/internal/spawn"
	"github.com/udisondev/frontdesk/internal/world"
)

// Option customizes a Simulation.
type Option func(*Simulation)

// WithEventSink adds an event sink (journal, tests).
func WithEventSink(s ai.EventSink) Option {
	return func(sim *Simulation) {
		sim.deps.Events = append(sim.deps.Events, s)
	}
}

// WithOutcomeSink adds an outcome sink (journal, ledger).
func WithOutcomeSink(s ai.OutcomeSink) Option {
	return func(sim *Simulation) {
		sim.deps.Outcomes = append(sim.deps.Outcomes, s)
	}
}

// WithRenderer replaces the logging renderer.
func WithRenderer(r ai.Renderer) Option {
	return func(sim *Simulation) {
		sim.deps.Renderer = r
	}
}

// WithStart sets the simulated clock origin.
func WithStart(t time.Time) Option {
	return func(sim *Simulation) {
		sim.start = t
		sim.now = t
	}
}

// Simulation owns all runtime state. Step runs on one goroutine; Stats
// may be called from another.
type Simulation struct {
	mu sync.Mutex // guards Step against Stats

	cfg   config.Simulation
	seed  uint64
	start time.Time
	now   time.Time
	steps int

	registry  *world.Registry
	ticks     *ai.TickManager
	nav       *nav.Linear
	proximity *ai.ProximityMonitor
	stations  map[model.Role]*model.Station
	catalog   *spawn.Catalog
	spawner   *spawn.Spawner
	player    *player.Player
	shelf     *player.Shelf
	pilot     *player.Autopilot
	deps      *ai.Deps

	despawned int
}

// New builds a simulation from validated config.
func New(cfg config.Simulation, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	stations, err := spawn.BuildStations(cfg.Stations)
	if err != nil {
		return nil, fmt.Errorf("building stations: %w", err)
	}
	catalog, err := spawn.NewCatalog(cfg.Catalog, cfg.Fictitious)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	texts, err := panel.NewManager(cfg.Panels.TemplatesDir, cfg.Panels.Lazy)
	if err != nil {
		return nil, fmt.Errorf("loading panels: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	p := player.New(cfg.Player)
	s := &Simulation{
		cfg:      cfg,
		seed:     seed,
		start:    time.Now(),
		registry: world.NewRegistry(),
		ticks:    ai.NewTickManager(),
		nav:      nav.NewLinear(cfg.Agent.Speed),
		stations: stations,
		catalog:  catalog,
		player:   p,
		shelf:    player.NewShelf(0),
	}
	s.now = s.start
	s.deps = &ai.Deps{
		Nav:        s.nav,
		Renderer:   panel.NewLogRenderer(),
		Texts:      texts,
		Inventory:  p.Hands,
		Wallet:     p.Wallet,
		Reputation: p.Reputation,
		Experience: p.Experience,
		Desk:       dialog.NewDesk(),
		Tuning:     tuning(cfg.Agent),
		Rewards:    rewards(cfg.Rewards),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.proximity = ai.NewProximityMonitor(s.registry, s.ticks, s.nav, cfg.Proximity.Interval, cfg.Proximity.MinDistance)
	s.spawner = spawn.NewSpawner(cfg.Spawner, stations, catalog, s.registry, s.ticks, s.deps,
		rand.New(rand.NewPCG(seed, 1)))

	deskStations := make([]*model.Station, 0, len(stations))
	for _, role := range model.Roles() {
		if st, ok := stations[role]; ok {
			deskStations = append(deskStations, st)
		}
	}
	s.pilot = player.NewAutopilot(cfg.Autopilot, p, s.shelf, s.ticks, deskStations, s.spawner,
		rand.New(rand.NewPCG(seed, 2)))

	s.spawner.Start(s.now)
	return s, nil
}

func tuning(a config.Agent) ai.Tuning {
	return ai.Tuning{
		DoorArriveRadius:    a.DoorArriveRadius,
		StationArriveRadius: a.StationArriveRadius,
		ArriveRadius:        a.ArriveRadius,
		DespawnThreshold:    a.DespawnThreshold,
		QueueSettleRadius:   a.QueueSettleRadius,
		DoorOpenDelay:       a.DoorOpenDelay,
		ExitDoorPause:       a.ExitDoorPause,
		FarewellDelay:       a.FarewellDelay,
	}
}

func rewards(r config.Rewards) ai.Rewards {
	return ai.Rewards{
		PatronAcceptExp:      r.PatronAcceptExp,
		SearcherReturnExp:    r.SearcherReturnExp,
		OfficerContrabandExp: r.OfficerContrabandExp,
		SearcherReturnMoney:  r.SearcherReturnMoney,
		ContrabandReputation: r.ContrabandReputation,
		FalseCallFine:        r.FalseCallFine,
	}
}

// Seed returns the seed actually used.
func (s *Simulation) Seed() uint64 { return s.seed }

// Now returns simulated time.
func (s *Simulation) Now() time.Time { return s.now }

// Elapsed returns simulated time since start.
func (s *Simulation) Elapsed() time.Duration { return s.now.Sub(s.start) }

// Player returns the player.
func (s *Simulation) Player() *player.Player { return s.player }

// Spawner returns the spawner (for manual spawns and police calls).
func (s *Simulation) Spawner() *spawn.Spawner { return s.spawner }

// Registry returns live visitors.
func (s *Simulation) Registry() *world.Registry { return s.registry }

// Ticks returns the controller manager.
func (s *Simulation) Ticks() *ai.TickManager { return s.ticks }

// Stations returns stations by role. Roles may share one station.
func (s *Simulation) Stations() map[model.Role]*model.Station { return s.stations }

// Step advances simulated time by one tick interval.
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt := s.cfg.TickInterval
	s.now = s.now.Add(dt)
	s.steps++

	s.nav.Advance(dt)
	s.spawner.Tick(s.now)
	s.ticks.TickAll(s.now)
	s.proximity.Tick(s.now)
	s.pilot.Tick(s.now)

	for _, id := range s.ticks.Reap() {
		s.registry.Remove(id)
		s.despawned++
	}
}

// Done reports whether the configured duration has elapsed.
// Zero duration runs forever.
func (s *Simulation) Done() bool {
	return s.cfg.Duration > 0 && s.Elapsed() >= s.cfg.Duration
}

// Run steps in real time until ctx is cancelled or the duration elapses.
func (s *Simulation) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	slog.Info("simulation started",
		"seed", s.seed,
		"tick", s.cfg.TickInterval,
		"duration", s.cfg.Duration)

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation stopping", "elapsed", s.Elapsed())
			return ctx.Err()

		case <-ticker.C:
			s.Step()
			if s.Done() {
				slog.Info("simulation finished", "elapsed", s.Elapsed())
				return nil
			}
		}
	}
}

// RunFast steps without waiting until the duration elapses. Checks ctx
// between steps.
func (s *Simulation) RunFast(ctx context.Context) error {
	if s.cfg.Duration <= 0 {
		return errors.New("fast run needs a positive duration")
	}
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Step()
	}
	return nil
}

// Stats summarizes the run so far.
type Stats struct {
	Elapsed   time.Duration
	Steps     int
	Spawned   int
	Active    int
	Despawned int
	Shelf     int
	Player    player.Progress
}

// Stats returns current counters.
func (s *Simulation) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Stats{
		Elapsed:   s.Elapsed(),
		Steps:     s.steps,
		Spawned:   s.spawner.SpawnCount(),
		Active:    s.registry.Count(),
		Despawned: s.despawned,
		Shelf:     s.shelf.Len(),
		Player:    s.player.Progress(),
	}
}

// LogValue implements slog.LogValuer.
func (st Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("elapsed", st.Elapsed),
		slog.Int("spawned", st.Spawned),
		slog.Int("active", st.Active),
		slog.Int("despawned", st.Despawned),
		slog.Int("shelf", st.Shelf),
		slog.Int("level", st.Player.Level),
		slog.Int64("balance", st.Player.Balance),
		slog.Int("reputation", st.Player.Reputation),
	)
}
