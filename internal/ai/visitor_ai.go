package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

// ErrInvalidTransition is returned when an operation is not allowed in the
// visitor's current state. The visitor is left unchanged.
var ErrInvalidTransition = errors.New("invalid visitor transition")

// VisitorAI drives one visitor through travel, queue, dialog and exit.
// All methods are called from the simulation goroutine.
type VisitorAI struct {
	v    *model.Visitor
	role Role
	deps *Deps

	running   atomic.Bool
	destroyed atomic.Bool

	wait      *continuation
	autoClose bool // wait holds a dialog auto-close
	farewell  bool // wait holds the end of a farewell
	session   *dialog.Session

	target    model.Point
	hasTarget bool
	retries   int

	exit exitPhase
}

// NewVisitorAI creates AI for visitor.
func NewVisitorAI(v *model.Visitor, deps *Deps) (*VisitorAI, error) {
	role, err := RoleFor(v.Role())
	if err != nil {
		return nil, fmt.Errorf("visitor %d: %w", v.ID(), err)
	}
	if deps.Nav == nil || deps.Renderer == nil || deps.Texts == nil || deps.Desk == nil || deps.Inventory == nil {
		return nil, fmt.Errorf("visitor %d: incomplete AI dependencies", v.ID())
	}
	return &VisitorAI{v: v, role: role, deps: deps}, nil
}

// ID returns visitor object ID
func (a *VisitorAI) ID() uint32 {
	return a.v.ID()
}

// Visitor returns controlled visitor
func (a *VisitorAI) Visitor() *model.Visitor {
	return a.v
}

// State returns lifecycle state
func (a *VisitorAI) State() model.LifecycleState {
	return a.v.State()
}

// Session returns dialog session (nil when none).
func (a *VisitorAI) Session() *dialog.Session {
	return a.session
}

// Retries returns number of SetDestination re-issues for a stalled route.
func (a *VisitorAI) Retries() int {
	return a.retries
}

// Destroyed reports whether the visitor left the hall.
func (a *VisitorAI) Destroyed() bool {
	return a.destroyed.Load()
}

// Start starts AI controller
func (a *VisitorAI) Start() {
	a.running.Store(true)
	slog.Debug("visitor AI started",
		"visitorID", a.v.ID(),
		"role", a.v.Role(),
		"station", a.v.Station().Name())
}

// Stop stops AI controller
func (a *VisitorAI) Stop() {
	a.running.Store(false)
	slog.Debug("visitor AI stopped", "visitorID", a.v.ID())
}

// Enter materializes the visitor at its station's spawn point and sends it
// toward the door, or straight to the station if there is no door.
func (a *VisitorAI) Enter(now time.Time) error {
	if a.v.State() != model.StateIdle {
		return fmt.Errorf("visitor %d enter from %s: %w", a.v.ID(), a.v.State(), ErrInvalidTransition)
	}

	st := a.v.Station()
	a.deps.Nav.Place(a.v.ID(), st.SpawnPoint())
	a.deps.emit(Event{At: now, VisitorID: a.v.ID(), Role: a.v.Role().String(), Kind: EventSpawned, State: model.StateIdle})

	if door, ok := st.DoorWaypoint(); ok {
		a.setState(now, model.StateApproachingDoor)
		a.moveTo(door)
		return nil
	}

	a.v.SetDoorPhaseDone(true)
	a.setState(now, model.StateApproachingStation)
	a.moveTo(st.ApproachPoint())
	return nil
}

// Tick performs AI tick
func (a *VisitorAI) Tick(now time.Time) {
	if !a.running.Load() || a.destroyed.Load() {
		return
	}

	if a.wait != nil {
		if !a.wait.due(now) {
			return
		}
		fn := a.wait.fn
		a.wait = nil
		fn(now)
		return
	}

	switch a.v.State() {
	case model.StateApproachingDoor:
		a.tickApproachDoor(now)
	case model.StateApproachingStation:
		a.tickApproachStation(now)
	case model.StateQueued:
		a.tickQueued()
	case model.StateFinished:
		a.tickExit(now)
	}
}

func (a *VisitorAI) tickApproachDoor(now time.Time) {
	door, _ := a.v.Station().DoorWaypoint()
	if !a.deps.Nav.HasArrived(a.v.ID(), a.deps.Tuning.DoorArriveRadius) {
		a.keepMoving(door)
		return
	}

	a.setState(now, model.StateWaitingAtDoor)
	a.hold(model.HoldDoor, true)
	a.after(now, a.deps.Tuning.DoorOpenDelay, func(now time.Time) {
		a.v.SetDoorPhaseDone(true)
		a.hold(model.HoldDoor, false)
		a.setState(now, model.StateApproachingStation)
		a.moveTo(a.travelTarget())
	})
}

func (a *VisitorAI) tickApproachStation(now time.Time) {
	target := a.travelTarget()
	if target != a.v.Station().ApproachPoint() {
		a.keepMoving(target)
		return
	}
	if !a.deps.Nav.HasArrived(a.v.ID(), a.deps.Tuning.StationArriveRadius) {
		a.keepMoving(target)
		return
	}
	a.enterQueue(now)
}

// travelTarget returns where a not-yet-queued visitor heads.
// The door takes precedence until the door phase completes.
func (a *VisitorAI) travelTarget() model.Point {
	st := a.v.Station()
	if door, ok := st.DoorWaypoint(); ok && !a.v.DoorPhaseDone() {
		return door
	}
	return st.ApproachPoint()
}

func (a *VisitorAI) enterQueue(now time.Time) {
	st := a.v.Station()
	slot, err := st.AssignSlot(a.v.ID())
	if err != nil {
		slog.Warn("queue slot assignment rejected",
			"visitorID", a.v.ID(),
			"station", st.Name(),
			"error", err)
		return
	}

	a.v.SetQueueSlot(slot)
	a.clearYield()
	a.setState(now, model.StateQueued)
	a.moveTo(st.SlotPosition(slot))

	a.deps.emit(Event{At: now, VisitorID: a.v.ID(), Role: a.v.Role().String(), Kind: EventQueued, State: model.StateQueued, Slot: slot})
	slog.Info("visitor queued",
		"visitorID", a.v.ID(),
		"role", a.v.Role(),
		"station", st.Name(),
		"slot", slot)
}

// tickQueued re-targets the slot position until the visitor settles.
func (a *VisitorAI) tickQueued() {
	slot := a.v.QueueSlot()
	if slot < 0 {
		return
	}
	pos := a.v.Station().SlotPosition(slot)
	if a.deps.Nav.HasArrived(a.v.ID(), a.deps.Tuning.QueueSettleRadius) {
		return
	}
	a.keepMoving(pos)
}

// moveTo sets a new destination.
func (a *VisitorAI) moveTo(p model.Point) {
	a.target = p
	a.hasTarget = true
	a.deps.Nav.SetDestination(a.v.ID(), p)

	if IsDebugEnabled() {
		slog.Debug("visitor retargeted", "visitorID", a.v.ID(), "target", p)
	}
}

// keepMoving keeps the visitor heading to p. A navigator that stopped short
// of the target (nothing left to walk, not arrived) gets the same
// destination again; there is no give-up timeout.
func (a *VisitorAI) keepMoving(p model.Point) {
	if !a.hasTarget || a.target != p {
		a.moveTo(p)
		return
	}
	if a.v.Holds() != 0 {
		return
	}
	if a.deps.Nav.RemainingDistance(a.v.ID()) <= 0 {
		a.retries++
		a.deps.Nav.SetDestination(a.v.ID(), p)
		slog.Debug("navigation stalled, destination re-issued",
			"visitorID", a.v.ID(),
			"target", p,
			"retries", a.retries)
	}
}

// hold sets one hold reason and forwards the combined hold to navigation.
func (a *VisitorAI) hold(reason model.HoldReason, on bool) {
	if changed, held := a.v.SetHold(reason, on); changed {
		a.deps.Nav.HoldMovement(a.v.ID(), held)
	}
}

func (a *VisitorAI) after(now time.Time, d time.Duration, fn func(now time.Time)) {
	a.wait = &continuation{at: now.Add(d), fn: fn}
}

func (a *VisitorAI) setState(now time.Time, s model.LifecycleState) {
	from := a.v.State()
	a.v.SetState(s)
	if from == s {
		return
	}
	a.deps.emit(Event{At: now, VisitorID: a.v.ID(), Role: a.v.Role().String(), Kind: EventState, State: s, Slot: a.v.QueueSlot()})

	if IsDebugEnabled() {
		slog.Debug("visitor state changed",
			"visitorID", a.v.ID(),
			"from", from,
			"to", s)
	}
}

// setYield applies a proximity decision.
func (a *VisitorAI) setYield(now time.Time, yielded bool) {
	if a.v.Yielded() == yielded {
		return
	}
	a.v.SetYielded(yielded)
	a.hold(model.HoldProximity, yielded)
	a.deps.emit(Event{At: now, VisitorID: a.v.ID(), Role: a.v.Role().String(), Kind: EventYield, State: a.v.State(), Yielded: yielded})
}

func (a *VisitorAI) clearYield() {
	if a.v.Yielded() {
		a.v.SetYielded(false)
		a.hold(model.HoldProximity, false)
	}
}
