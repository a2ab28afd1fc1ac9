// Package nav moves visitors in straight lines at constant speed.
// It stands in for a pathfinding service: no obstacles, no collisions.
package nav

import (
	"sync"
	"time"

	"github.com/udisondev/frontdesk/internal/model"
)

type agent struct {
	pos     model.Point
	dest    model.Point
	hasDest bool
	held    bool
}

// Linear is a navigator without pathfinding.
type Linear struct {
	mu     sync.RWMutex
	speed  float64 // units per second
	agents map[uint32]*agent
}

// NewLinear creates navigator moving agents at speed units per second.
func NewLinear(speed float64) *Linear {
	return &Linear{
		speed:  speed,
		agents: make(map[uint32]*agent),
	}
}

// Place puts agent at p with no destination.
func (n *Linear) Place(id uint32, p model.Point) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.agents[id] = &agent{pos: p}
}

// SetDestination starts moving agent toward p.
func (n *Linear) SetDestination(id uint32, p model.Point) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if a, ok := n.agents[id]; ok {
		a.dest = p
		a.hasDest = true
	}
}

// HasArrived reports whether agent is within radius of its destination.
func (n *Linear) HasArrived(id uint32, radius float64) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	a, ok := n.agents[id]
	if !ok || !a.hasDest {
		return false
	}
	return a.pos.DistanceSquared(a.dest) <= radius*radius
}

// RemainingDistance returns distance left to walk, 0 without destination.
func (n *Linear) RemainingDistance(id uint32) float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	a, ok := n.agents[id]
	if !ok || !a.hasDest {
		return 0
	}
	return a.pos.Distance(a.dest)
}

// HoldMovement freezes or releases agent. Destination is kept.
func (n *Linear) HoldMovement(id uint32, hold bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if a, ok := n.agents[id]; ok {
		a.held = hold
	}
}

// Position returns agent position.
func (n *Linear) Position(id uint32) (model.Point, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	a, ok := n.agents[id]
	if !ok {
		return model.Point{}, false
	}
	return a.pos, true
}

// Remove forgets agent.
func (n *Linear) Remove(id uint32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.agents, id)
}

// Count returns number of placed agents.
func (n *Linear) Count() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.agents)
}

// Advance moves every free agent toward its destination by speed*dt,
// stopping exactly on the destination.
func (n *Linear) Advance(dt time.Duration) {
	step := n.speed * dt.Seconds()
	if step <= 0 {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	for _, a := range n.agents {
		if a.held || !a.hasDest {
			continue
		}
		delta := a.dest.Sub(a.pos)
		dist := delta.Len()
		if dist <= step {
			a.pos = a.dest
			continue
		}
		a.pos = a.pos.Add(delta.Scale(step / dist))
	}
}
