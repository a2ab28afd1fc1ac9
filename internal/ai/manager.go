package ai

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// TickManager manages AI ticks for all registered visitors.
// Ticks run in ascending object ID order so runs are reproducible.
type TickManager struct {
	mu              sync.RWMutex
	controllers     map[uint32]Controller // objectID → controller
	controllerCount atomic.Int32          // cached count of controllers (O(1) access)
}

// NewTickManager creates new AI tick manager
func NewTickManager() *TickManager {
	return &TickManager{
		controllers: make(map[uint32]Controller),
	}
}

// Register registers AI controller and starts it.
func (m *TickManager) Register(controller Controller) error {
	id := controller.ID()

	m.mu.Lock()
	if _, ok := m.controllers[id]; ok {
		m.mu.Unlock()
		return fmt.Errorf("controller already registered for objectID %d", id)
	}
	m.controllers[id] = controller
	m.mu.Unlock()

	m.controllerCount.Add(1)
	controller.Start()

	slog.Debug("AI controller registered",
		"objectID", id,
		"state", controller.State())
	return nil
}

// Unregister unregisters and stops AI controller
func (m *TickManager) Unregister(objectID uint32) {
	m.mu.Lock()
	controller, ok := m.controllers[objectID]
	delete(m.controllers, objectID)
	m.mu.Unlock()

	if !ok {
		return
	}

	m.controllerCount.Add(-1)
	controller.Stop()

	slog.Debug("AI controller unregistered", "objectID", objectID)
}

// TickAll ticks all registered controllers in ascending ID order.
func (m *TickManager) TickAll(now time.Time) {
	controllers := m.sorted()
	for _, c := range controllers {
		c.Tick(now)
	}

	if len(controllers) > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", len(controllers))
	}
}

// Reap unregisters destroyed controllers and returns their IDs.
func (m *TickManager) Reap() []uint32 {
	var ids []uint32
	for _, c := range m.sorted() {
		if c.Destroyed() {
			ids = append(ids, c.ID())
		}
	}
	for _, id := range ids {
		m.Unregister(id)
	}
	return ids
}

// Count returns number of registered controllers (O(1) cached count)
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// Controller returns controller by object ID
func (m *TickManager) Controller(objectID uint32) (Controller, error) {
	m.mu.RLock()
	c, ok := m.controllers[objectID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("controller not found for objectID %d", objectID)
	}
	return c, nil
}

// Visitor returns visitor AI by object ID.
func (m *TickManager) Visitor(objectID uint32) (*VisitorAI, bool) {
	c, err := m.Controller(objectID)
	if err != nil {
		return nil, false
	}
	v, ok := c.(*VisitorAI)
	return v, ok
}

func (m *TickManager) sorted() []Controller {
	m.mu.RLock()
	out := make([]Controller, 0, len(m.controllers))
	for _, c := range m.controllers {
		out = append(out, c)
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(a, b Controller) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}
