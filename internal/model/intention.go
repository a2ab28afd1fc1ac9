package model

// LifecycleState is the visitor state machine position.
// Values are ordered: a visitor only moves forward through them, except
// for dialog interrupts and the searcher loop-back which return to Queued.
type LifecycleState int32

const (
	// StateIdle - visitor is not materialized yet (or waits without a target)
	StateIdle LifecycleState = iota
	// StateApproachingDoor - walking to the door waypoint
	StateApproachingDoor
	// StateWaitingAtDoor - standing at the door while it opens
	StateWaitingAtDoor
	// StateApproachingStation - walking to the station approach point
	StateApproachingStation
	// StateQueued - waiting at the assigned queue slot
	StateQueued
	// StateInDialog - talking to the player
	StateInDialog
	// StateExiting - departure in progress; reported as a phase, visitor is logically finished
	StateExiting
	// StateFinished - done interacting; station slot released
	StateFinished
)

// String returns human-readable state name
func (s LifecycleState) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateApproachingDoor:
		return "APPROACHING_DOOR"
	case StateWaitingAtDoor:
		return "WAITING_AT_DOOR"
	case StateApproachingStation:
		return "APPROACHING_STATION"
	case StateQueued:
		return "QUEUED"
	case StateInDialog:
		return "IN_DIALOG"
	case StateExiting:
		return "EXITING"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// IsTraveling reports whether the visitor is still on its way to the queue.
// Only traveling visitors are subject to proximity yielding.
func (s LifecycleState) IsTraveling() bool {
	return s == StateIdle || s == StateApproachingDoor || s == StateApproachingStation
}

// IsDone reports whether the visitor no longer counts toward station capacity.
func (s LifecycleState) IsDone() bool {
	return s == StateExiting || s == StateFinished
}
