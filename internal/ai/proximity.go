package ai

import (
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/frontdesk/internal/model"
	"github.com/udisondev/frontdesk/internal/world"
)

// ProximityMonitor holds traveling visitors that come too close to another
// active visitor, and releases them once the way is clear.
//
// Runs on its own cadence, not every tick: a pass is O(n²).
// Visitors are processed from newest to oldest and a visitor never yields
// to one that is already yielding, so of two close visitors the older one
// keeps walking.
type ProximityMonitor struct {
	registry    *world.Registry
	ticks       *TickManager
	nav         Navigator
	interval    time.Duration
	minDistance float64

	nextRun time.Time
	passes  int
}

// NewProximityMonitor creates monitor.
func NewProximityMonitor(registry *world.Registry, ticks *TickManager, nav Navigator, interval time.Duration, minDistance float64) *ProximityMonitor {
	return &ProximityMonitor{
		registry:    registry,
		ticks:       ticks,
		nav:         nav,
		interval:    interval,
		minDistance: minDistance,
	}
}

// Passes returns number of completed passes.
func (m *ProximityMonitor) Passes() int {
	return m.passes
}

// Tick runs a pass if the cadence allows it.
func (m *ProximityMonitor) Tick(now time.Time) {
	if !m.nextRun.IsZero() && now.Before(m.nextRun) {
		return
	}
	m.nextRun = now.Add(m.interval)
	m.Pass(now)
}

type placed struct {
	v   *model.Visitor
	ai  *VisitorAI
	pos model.Point
}

// Pass checks all visitors once.
func (m *ProximityMonitor) Pass(now time.Time) {
	m.passes++

	all := m.registry.All()
	active := make([]placed, 0, len(all))
	for _, v := range all {
		if v.State() == model.StateFinished {
			continue
		}
		a, ok := m.ticks.Visitor(v.ID())
		if !ok || a.Destroyed() {
			continue
		}
		pos, ok := m.nav.Position(v.ID())
		if !ok {
			continue
		}
		active = append(active, placed{v: v, ai: a, pos: pos})
	}

	minSq := m.minDistance * m.minDistance
	changed := 0

	for _, p := range slices.Backward(active) {
		if !p.v.State().IsTraveling() {
			// stationary by construction
			if p.v.Yielded() {
				p.ai.setYield(now, false)
				changed++
			}
			continue
		}

		yield := false
		for _, other := range active {
			if other.v == p.v || other.v.Yielded() {
				continue
			}
			if p.pos.DistanceSquared(other.pos) < minSq {
				yield = true
				break
			}
		}

		if yield != p.v.Yielded() {
			p.ai.setYield(now, yield)
			changed++
		}
	}

	if changed > 0 && IsDebugEnabled() {
		slog.Debug("proximity pass", "visitors", len(active), "changed", changed)
	}
}
