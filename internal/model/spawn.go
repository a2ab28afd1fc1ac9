package model

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrStationFull is returned by Bind when capacity is exhausted.
	ErrStationFull = errors.New("station is at capacity")
	// ErrAlreadyBound is returned when a visitor is bound twice.
	ErrAlreadyBound = errors.New("visitor already bound to station")
	// ErrNotBound is returned when releasing or queueing an unknown visitor.
	ErrNotBound = errors.New("visitor not bound to station")
	// ErrAlreadyQueued is returned by a second AssignSlot for the same visitor.
	ErrAlreadyQueued = errors.New("visitor already has a queue slot")
	// ErrStationNotConfigured is returned when approach or exit point is unset.
	ErrStationNotConfigured = errors.New("station points not configured")
)

// DefaultQueueSpacing is the distance between neighbouring queue slots.
const DefaultQueueSpacing = 2.0

type queueEntry struct {
	visitorID uint32
	slot      int
}

// Station represents a service point visitors queue at.
// Configured once at startup; the core only mutates membership.
type Station struct {
	name     string
	capacity int

	approach    Point
	hasApproach bool
	exit        Point
	hasExit     bool
	door        Point
	hasDoor     bool
	spawn       Point
	hasSpawn    bool

	queueDirection Point
	queueSpacing   float64

	mu      sync.RWMutex
	members map[uint32]struct{} // bound, not finished (capacity accounting)
	queue   []queueEntry        // arrival order at the approach point
}

// NewStation creates a station with the given capacity.
// Points are set separately; a station without approach and exit points
// is reported as not configured.
func NewStation(name string, capacity int) *Station {
	return &Station{
		name:           name,
		capacity:       capacity,
		queueDirection: NewPoint(0, 0, 1),
		queueSpacing:   DefaultQueueSpacing,
		members:        make(map[uint32]struct{}, capacity),
		queue:          make([]queueEntry, 0, capacity),
	}
}

// SetApproachPoint sets the point visitors walk to before queueing.
func (s *Station) SetApproachPoint(p Point) {
	s.approach = p
	s.hasApproach = true
}

// SetExitPoint sets the point visitors leave through.
func (s *Station) SetExitPoint(p Point) {
	s.exit = p
	s.hasExit = true
}

// SetDoorWaypoint sets the door visitors pass on the way in and out.
func (s *Station) SetDoorWaypoint(p Point) {
	s.door = p
	s.hasDoor = true
}

// SetSpawnPoint sets where visitors are materialized.
func (s *Station) SetSpawnPoint(p Point) {
	s.spawn = p
	s.hasSpawn = true
}

// SetQueueLayout sets queue direction and spacing between slots.
// Zero-length direction falls back to +Z.
func (s *Station) SetQueueLayout(direction Point, spacing float64) {
	dir := direction.Normalize()
	if dir.IsZero() {
		dir = NewPoint(0, 0, 1)
	}
	s.queueDirection = dir
	if spacing > 0 {
		s.queueSpacing = spacing
	}
}

// Name returns station name
func (s *Station) Name() string {
	return s.name
}

// Capacity returns max concurrent non-finished visitors
func (s *Station) Capacity() int {
	return s.capacity
}

// ApproachPoint returns the queue head point
func (s *Station) ApproachPoint() Point {
	return s.approach
}

// ExitPoint returns exit point and whether it is set
func (s *Station) ExitPoint() (Point, bool) {
	return s.exit, s.hasExit
}

// DoorWaypoint returns door waypoint and whether it is set
func (s *Station) DoorWaypoint() (Point, bool) {
	return s.door, s.hasDoor
}

// SpawnPoint returns materialization point; defaults to the exit point.
func (s *Station) SpawnPoint() Point {
	if s.hasSpawn {
		return s.spawn
	}
	return s.exit
}

// Validate checks that the station can receive visitors.
func (s *Station) Validate() error {
	if !s.hasApproach || !s.hasExit {
		return fmt.Errorf("station %q: %w", s.name, ErrStationNotConfigured)
	}
	if s.capacity <= 0 {
		return fmt.Errorf("station %q: capacity %d: %w", s.name, s.capacity, ErrStationNotConfigured)
	}
	return nil
}

// SlotPosition returns physical waiting spot for a queue slot.
func (s *Station) SlotPosition(slot int) Point {
	return s.approach.Add(s.queueDirection.Scale(s.queueSpacing * float64(slot)))
}

// Bind reserves capacity for a visitor at spawn time.
func (s *Station) Bind(visitorID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[visitorID]; ok {
		return fmt.Errorf("station %q visitor %d: %w", s.name, visitorID, ErrAlreadyBound)
	}
	if len(s.members) >= s.capacity {
		return fmt.Errorf("station %q (%d/%d): %w", s.name, len(s.members), s.capacity, ErrStationFull)
	}
	s.members[visitorID] = struct{}{}
	return nil
}

// IsBound reports whether visitor holds a capacity reservation.
func (s *Station) IsBound(visitorID uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[visitorID]
	return ok
}

// Occupancy returns number of bound non-finished visitors.
func (s *Station) Occupancy() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

// HasCapacity reports whether one more visitor can be bound.
func (s *Station) HasCapacity() bool {
	return s.Occupancy() < s.capacity
}

// AssignSlot gives the visitor the next queue slot: 1 + max slot of the
// visitors currently queued. Slots are never repacked, so a finished
// visitor's gap stays empty and nobody visibly jumps forward.
func (s *Station) AssignSlot(visitorID uint32) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[visitorID]; !ok {
		return -1, fmt.Errorf("station %q visitor %d: %w", s.name, visitorID, ErrNotBound)
	}

	maxSlot := -1
	for _, e := range s.queue {
		if e.visitorID == visitorID {
			return -1, fmt.Errorf("station %q visitor %d slot %d: %w", s.name, visitorID, e.slot, ErrAlreadyQueued)
		}
		maxSlot = max(maxSlot, e.slot)
	}

	slot := maxSlot + 1
	s.queue = append(s.queue, queueEntry{visitorID: visitorID, slot: slot})
	return slot, nil
}

// SlotOf returns the visitor's queue slot.
func (s *Station) SlotOf(visitorID uint32) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.queue {
		if e.visitorID == visitorID {
			return e.slot, true
		}
	}
	return -1, false
}

// QueuedIDs returns queued visitor IDs in arrival order.
func (s *Station) QueuedIDs() []uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uint32, len(s.queue))
	for i, e := range s.queue {
		ids[i] = e.visitorID
	}
	return ids
}

// QueueLen returns number of queued visitors.
func (s *Station) QueueLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.queue)
}

// Release drops the visitor's capacity reservation and queue membership.
// Remaining slots are not renumbered.
func (s *Station) Release(visitorID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.members[visitorID]; !ok {
		return fmt.Errorf("station %q visitor %d: %w", s.name, visitorID, ErrNotBound)
	}
	delete(s.members, visitorID)

	for i, e := range s.queue {
		if e.visitorID == visitorID {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
	return nil
}
