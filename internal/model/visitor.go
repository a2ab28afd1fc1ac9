package model

import "sync"

// HoldReason is a bitmask of reasons a visitor's movement is held.
// Movement resumes only when every reason is cleared.
type HoldReason uint8

const (
	// HoldDoor - waiting for the door to open
	HoldDoor HoldReason = 1 << iota
	// HoldProximity - yielding to a nearby visitor
	HoldProximity
	// HoldDialog - talking to the player
	HoldDialog
	// HoldExitDoor - short pause at the door on the way out
	HoldExitDoor
)

// Visitor is the data part of a spawned visitor.
// Behavior lives in ai.VisitorAI; Visitor only stores state.
type Visitor struct {
	id      uint32
	role    Role
	station *Station

	mu sync.RWMutex

	state  LifecycleState
	phase  LifecycleState // reported state; differs from state only during the exit sequence
	slot   int
	holds  HoldReason
	yield  bool
	search bool

	doorPhaseDone       bool
	doorPhaseDoneOnExit bool

	heldItem   *Item
	wantedItem *WantedItem
}

// NewVisitor creates visitor bound to station.
// Station binding is immutable.
func NewVisitor(id uint32, role Role, station *Station) *Visitor {
	return &Visitor{
		id:      id,
		role:    role,
		station: station,
		state:   StateIdle,
		phase:   StateIdle,
		slot:    -1,
	}
}

// ID returns visitor object ID
func (v *Visitor) ID() uint32 {
	return v.id
}

// Role returns visitor role
func (v *Visitor) Role() Role {
	return v.role
}

// Station returns bound station
func (v *Visitor) Station() *Station {
	return v.station
}

// State returns lifecycle state.
func (v *Visitor) State() LifecycleState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Phase returns the externally reported state.
// Equals State except while the exit sequence runs, when it is StateExiting.
func (v *Visitor) Phase() LifecycleState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.phase
}

// SetState sets lifecycle state and reported phase.
func (v *Visitor) SetState(s LifecycleState) {
	v.mu.Lock()
	v.state = s
	v.phase = s
	v.mu.Unlock()
}

// MarkExiting switches reported phase to Exiting.
// Lifecycle state must already be Finished.
func (v *Visitor) MarkExiting() {
	v.mu.Lock()
	v.phase = StateExiting
	v.mu.Unlock()
}

// QueueSlot returns queue slot (-1 if unassigned).
func (v *Visitor) QueueSlot() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.slot
}

// SetQueueSlot stores queue slot.
func (v *Visitor) SetQueueSlot(slot int) {
	v.mu.Lock()
	v.slot = slot
	v.mu.Unlock()
}

// Yielded reports whether visitor currently yields to a neighbour.
func (v *Visitor) Yielded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.yield
}

// SetYielded sets proximity yield flag
func (v *Visitor) SetYielded(yielded bool) {
	v.mu.Lock()
	v.yield = yielded
	v.mu.Unlock()
}

// Searching reports whether a searcher went looking and will ask again.
func (v *Visitor) Searching() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.search
}

// SetSearching sets searcher loop-back flag
func (v *Visitor) SetSearching(searching bool) {
	v.mu.Lock()
	v.search = searching
	v.mu.Unlock()
}

// DoorPhaseDone reports whether the entry door phase is complete.
func (v *Visitor) DoorPhaseDone() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.doorPhaseDone
}

// SetDoorPhaseDone marks entry door phase complete.
func (v *Visitor) SetDoorPhaseDone(done bool) {
	v.mu.Lock()
	v.doorPhaseDone = done
	v.mu.Unlock()
}

// DoorPhaseDoneOnExit reports whether the door was passed on the way out.
func (v *Visitor) DoorPhaseDoneOnExit() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.doorPhaseDoneOnExit
}

// SetDoorPhaseDoneOnExit marks exit door phase complete.
func (v *Visitor) SetDoorPhaseDoneOnExit(done bool) {
	v.mu.Lock()
	v.doorPhaseDoneOnExit = done
	v.mu.Unlock()
}

// SetHold sets or clears one hold reason.
// Returns whether the combined hold flipped and the new combined value.
func (v *Visitor) SetHold(reason HoldReason, on bool) (changed, held bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	before := v.holds != 0
	if on {
		v.holds |= reason
	} else {
		v.holds &^= reason
	}
	after := v.holds != 0
	return before != after, after
}

// Holds returns active hold reasons.
func (v *Visitor) Holds() HoldReason {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.holds
}

// HeldItem returns item the visitor carries (patron), or nil.
func (v *Visitor) HeldItem() *Item {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.heldItem
}

// SetHeldItem sets carried item
func (v *Visitor) SetHeldItem(item *Item) {
	v.mu.Lock()
	v.heldItem = item
	v.mu.Unlock()
}

// WantedItem returns item the visitor asks for (searcher), or nil.
func (v *Visitor) WantedItem() *WantedItem {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.wantedItem
}

// SetWantedItem sets requested item
func (v *Visitor) SetWantedItem(item *WantedItem) {
	v.mu.Lock()
	v.wantedItem = item
	v.mu.Unlock()
}

// Snapshot is a read-only copy of visitor state for diagnostics.
type Snapshot struct {
	ID      uint32
	Role    Role
	Station string
	Phase   LifecycleState
	Slot    int
	Yielded bool
}

// Snapshot returns consistent copy of reported fields.
func (v *Visitor) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Snapshot{
		ID:      v.id,
		Role:    v.role,
		Station: v.station.Name(),
		Phase:   v.phase,
		Slot:    v.slot,
		Yielded: v.yield,
	}
}
