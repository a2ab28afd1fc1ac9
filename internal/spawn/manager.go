package spawn

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/udisondev/frontdesk/internal/ai"
	"github.com/udisondev/frontdesk/internal/config"
	"github.com/udisondev/frontdesk/internal/model"
	"github.com/udisondev/frontdesk/internal/world"
)

var (
	// ErrNothingToSpawn is returned when every role has zero effective weight.
	ErrNothingToSpawn = errors.New("no role eligible for spawn")
	// ErrOfficerBusy is returned by CallOfficer while an officer is on duty.
	ErrOfficerBusy = errors.New("officer already on duty")
	// ErrNoStation is returned for a role without a configured station.
	ErrNoStation = errors.New("role has no station")
)

// Spawner creates visitors at random intervals, choosing the role by
// weight among roles whose station can take one more visitor.
type Spawner struct {
	cfg      config.Spawner
	stations map[model.Role]*model.Station
	catalog  *Catalog
	registry *world.Registry
	ticks    *ai.TickManager
	deps     *ai.Deps
	rng      *rand.Rand

	nextSpawnAt time.Time

	objectIDCounter atomic.Uint32 // for generating unique objectIDs
	spawnCount      atomic.Int32  // visitors spawned since start
}

// NewSpawner creates spawner.
func NewSpawner(
	cfg config.Spawner,
	stations map[model.Role]*model.Station,
	catalog *Catalog,
	registry *world.Registry,
	ticks *ai.TickManager,
	deps *ai.Deps,
	rng *rand.Rand,
) *Spawner {
	s := &Spawner{
		cfg:      cfg,
		stations: stations,
		catalog:  catalog,
		registry: registry,
		ticks:    ticks,
		deps:     deps,
		rng:      rng,
	}

	// Start objectID counter from 100000 (player uses lower IDs)
	s.objectIDCounter.Store(100000)

	return s
}

// Start schedules the first spawn attempt.
func (s *Spawner) Start(now time.Time) {
	s.schedule(now)
	slog.Info("spawner started",
		"autoSpawn", s.cfg.EnableAutoSpawn,
		"firstAttempt", s.nextSpawnAt.Sub(now))
}

// NextSpawnAt returns time of the next automatic attempt.
func (s *Spawner) NextSpawnAt() time.Time {
	return s.nextSpawnAt
}

// SpawnCount returns number of visitors spawned.
func (s *Spawner) SpawnCount() int {
	return int(s.spawnCount.Load())
}

// Tick attempts one spawn when due and reschedules whether or not the
// attempt succeeded.
func (s *Spawner) Tick(now time.Time) {
	if !s.cfg.EnableAutoSpawn {
		return
	}
	if s.nextSpawnAt.IsZero() {
		s.schedule(now)
		return
	}
	if now.Before(s.nextSpawnAt) {
		return
	}

	if _, err := s.TrySpawn(now); err != nil {
		if errors.Is(err, ErrNothingToSpawn) {
			slog.Debug("spawn skipped", "reason", err)
		} else {
			slog.Warn("spawn attempt failed", "error", err)
		}
	}
	s.schedule(now)
}

func (s *Spawner) schedule(now time.Time) {
	s.nextSpawnAt = now.Add(s.delay())
}

// delay returns uniform random delay in [MinDelay, MaxDelay].
func (s *Spawner) delay() time.Duration {
	lo, hi := s.cfg.MinDelay, s.cfg.MaxDelay
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(s.rng.Int64N(int64(hi-lo)+1))
}

// Weights returns current effective weight per role.
// A role weighs zero when disabled, when its station is full or when the
// station lacks approach or exit points.
func (s *Spawner) Weights() map[model.Role]int {
	out := make(map[model.Role]int, len(model.Roles()))
	for _, role := range model.Roles() {
		out[role] = s.effectiveWeight(role)
	}
	return out
}

func (s *Spawner) effectiveWeight(role model.Role) int {
	var w int
	switch role {
	case model.RolePatron:
		w = s.cfg.Weights.Patron
	case model.RoleSearcher:
		w = s.cfg.Weights.Searcher
	case model.RoleOfficer:
		if !s.cfg.AutoSpawnOfficer {
			return 0
		}
		w = s.cfg.Weights.Officer
	}
	if w <= 0 {
		return 0
	}

	st, ok := s.stations[role]
	if !ok || !st.HasCapacity() || st.Validate() != nil {
		return 0
	}
	return w
}

// pickRole draws a role proportionally to weights, walking roles in
// fixed order Patron, Searcher, Officer.
func (s *Spawner) pickRole(weights map[model.Role]int) (model.Role, bool) {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0, false
	}

	roll := s.rng.IntN(total)
	for _, role := range model.Roles() {
		w := weights[role]
		if roll < w {
			return role, true
		}
		roll -= w
	}
	return 0, false
}

// TrySpawn spawns one visitor of a weighted random role.
func (s *Spawner) TrySpawn(now time.Time) (*ai.VisitorAI, error) {
	role, ok := s.pickRole(s.Weights())
	if !ok {
		return nil, ErrNothingToSpawn
	}
	return s.SpawnRole(now, role)
}

// CallOfficer spawns an officer on demand unless one is already active.
func (s *Spawner) CallOfficer(now time.Time) (*ai.VisitorAI, error) {
	if s.registry.ActiveWithRole(model.RoleOfficer) > 0 {
		return nil, ErrOfficerBusy
	}
	return s.SpawnRole(now, model.RoleOfficer)
}

// SpawnRole spawns one visitor of the given role. The station must be
// fully configured and have free capacity. On any failure nothing stays
// registered and the station capacity is untouched.
func (s *Spawner) SpawnRole(now time.Time, role model.Role) (*ai.VisitorAI, error) {
	st, ok := s.stations[role]
	if !ok {
		return nil, fmt.Errorf("spawning %s: %w", role, ErrNoStation)
	}
	if err := st.Validate(); err != nil {
		slog.Warn("spawn aborted, station misconfigured",
			"role", role,
			"station", st.Name(),
			"error", err)
		return nil, fmt.Errorf("spawning %s: %w", role, err)
	}

	// Generate unique objectID
	objectID := s.objectIDCounter.Add(1)

	if err := st.Bind(objectID); err != nil {
		return nil, fmt.Errorf("spawning %s: %w", role, err)
	}

	v := model.NewVisitor(objectID, role, st)
	s.equip(v)

	visitorAI, err := ai.NewVisitorAI(v, s.deps)
	if err != nil {
		s.rollback(st, objectID, false, false)
		return nil, fmt.Errorf("spawning %s: %w", role, err)
	}

	if err := s.registry.Add(v); err != nil {
		s.rollback(st, objectID, false, false)
		return nil, fmt.Errorf("adding visitor to registry: %w", err)
	}

	if err := s.ticks.Register(visitorAI); err != nil {
		s.rollback(st, objectID, true, false)
		return nil, fmt.Errorf("registering visitor AI: %w", err)
	}

	if err := visitorAI.Enter(now); err != nil {
		s.rollback(st, objectID, true, true)
		return nil, fmt.Errorf("entering visitor %d: %w", objectID, err)
	}

	s.spawnCount.Add(1)

	attrs := []any{
		"objectID", objectID,
		"role", role,
		"station", st.Name(),
		"occupancy", st.Occupancy(),
	}
	if item := v.HeldItem(); item != nil {
		attrs = append(attrs, "item", item.Name())
	}
	if w := v.WantedItem(); w != nil {
		attrs = append(attrs, "wanted", w.Name, "real", w.Real, "detail", w.Detail)
	}
	slog.Info("visitor spawned", attrs...)

	return visitorAI, nil
}

// equip hands out role props: a found item for patrons, a wanted item for
// searchers.
func (s *Spawner) equip(v *model.Visitor) {
	if s.catalog == nil {
		return
	}
	switch v.Role() {
	case model.RolePatron:
		v.SetHeldItem(s.catalog.Random(s.rng))
	case model.RoleSearcher:
		if w, ok := s.catalog.Wanted(s.rng, s.cfg.SearcherCanLie); ok {
			v.SetWantedItem(w)
		}
	}
}

func (s *Spawner) rollback(st *model.Station, objectID uint32, inRegistry, inTicks bool) {
	if inTicks {
		s.ticks.Unregister(objectID)
	}
	if inRegistry {
		s.registry.Remove(objectID)
	}
	if err := st.Release(objectID); err != nil {
		slog.Error("spawn rollback failed", "objectID", objectID, "error", err)
	}
}
