package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/frontdesk/internal/model"
)

// exitPhase is the step of the departure sequence.
type exitPhase int32

const (
	exitNone exitPhase = iota
	exitToDoor
	exitToPoint
)

// finish marks the visitor Finished, frees its station slot and starts
// the departure: door (if any) → short pause → exit point → destroy.
func (a *VisitorAI) finish(now time.Time) {
	a.settle(now)
	a.depart(now)
}

// settle marks the visitor Finished and frees its station slot.
func (a *VisitorAI) settle(now time.Time) {
	if err := a.v.Station().Release(a.v.ID()); err != nil {
		slog.Warn("station release rejected", "visitorID", a.v.ID(), "error", err)
	}

	a.setState(now, model.StateFinished)
	a.v.MarkExiting()
	a.clearYield()
	a.hold(model.HoldDoor, false)
}

func (a *VisitorAI) depart(now time.Time) {
	st := a.v.Station()
	if door, ok := st.DoorWaypoint(); ok {
		a.exit = exitToDoor
		a.moveTo(door)
		return
	}
	if exit, ok := st.ExitPoint(); ok {
		a.exit = exitToPoint
		a.moveTo(exit)
		return
	}

	slog.Warn("station has no exit point, visitor removed in place",
		"visitorID", a.v.ID(),
		"station", st.Name())
	a.destroy(now)
}

func (a *VisitorAI) tickExit(now time.Time) {
	switch a.exit {
	case exitToDoor:
		if !a.deps.Nav.HasArrived(a.v.ID(), a.deps.Tuning.DoorArriveRadius) {
			door, _ := a.v.Station().DoorWaypoint()
			a.keepMoving(door)
			return
		}
		a.v.SetDoorPhaseDoneOnExit(true)
		a.hold(model.HoldExitDoor, true)
		a.after(now, a.deps.Tuning.ExitDoorPause, func(now time.Time) {
			a.hold(model.HoldExitDoor, false)
			exit, ok := a.v.Station().ExitPoint()
			if !ok {
				a.destroy(now)
				return
			}
			a.exit = exitToPoint
			a.moveTo(exit)
		})

	case exitToPoint:
		exit, _ := a.v.Station().ExitPoint()
		if a.deps.Nav.RemainingDistance(a.v.ID()) > a.deps.Tuning.despawnRadius() {
			a.keepMoving(exit)
			return
		}
		a.destroy(now)
	}
}

// destroy removes the visitor from navigation and station bookkeeping.
// Registry removal happens when the tick manager reaps the controller.
func (a *VisitorAI) destroy(now time.Time) {
	if a.destroyed.Swap(true) {
		return
	}

	st := a.v.Station()
	if st.IsBound(a.v.ID()) {
		if err := st.Release(a.v.ID()); err != nil {
			slog.Warn("station release on despawn failed", "visitorID", a.v.ID(), "error", err)
		}
	}

	a.exit = exitNone
	a.wait = nil
	a.autoClose, a.farewell = false, false
	a.deps.Renderer.Hide(a.v.ID())
	a.deps.Desk.Release(a.v.ID())
	a.deps.Nav.Remove(a.v.ID())

	a.deps.emit(Event{At: now, VisitorID: a.v.ID(), Role: a.v.Role().String(), Kind: EventDespawned, State: a.v.State()})
	slog.Info("visitor despawned",
		"visitorID", a.v.ID(),
		"role", a.v.Role(),
		"station", st.Name())
}
