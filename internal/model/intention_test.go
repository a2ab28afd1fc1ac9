package model

import (
	"slices"
	"testing"
)

func TestLifecycleState_String(t *testing.T) {
	tests := []struct {
		state LifecycleState
		want  string
	}{
		{StateIdle, "IDLE"},
		{StateApproachingDoor, "APPROACHING_DOOR"},
		{StateWaitingAtDoor, "WAITING_AT_DOOR"},
		{StateApproachingStation, "APPROACHING_STATION"},
		{StateQueued, "QUEUED"},
		{StateInDialog, "IN_DIALOG"},
		{StateExiting, "EXITING"},
		{StateFinished, "FINISHED"},
		{LifecycleState(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("LifecycleState(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestLifecycleState_IsTraveling(t *testing.T) {
	traveling := map[LifecycleState]bool{
		StateIdle:               true,
		StateApproachingDoor:    true,
		StateWaitingAtDoor:      false,
		StateApproachingStation: true,
		StateQueued:             false,
		StateInDialog:           false,
		StateExiting:            false,
		StateFinished:           false,
	}
	for s, want := range traveling {
		if got := s.IsTraveling(); got != want {
			t.Errorf("%v.IsTraveling() = %v, want %v", s, got, want)
		}
	}
}

func TestRole_Parse(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseRole(r.String())
		if err != nil {
			t.Fatalf("ParseRole(%q) error = %v", r.String(), err)
		}
		if got != r {
			t.Errorf("ParseRole(%q) = %v, want %v", r.String(), got, r)
		}
	}

	if _, err := ParseRole("janitor"); err == nil {
		t.Error("ParseRole(janitor) should fail")
	}
}

func TestRoles_CallerCannotReorder(t *testing.T) {
	roles := Roles()
	roles[0], roles[2] = roles[2], roles[0]

	want := []Role{RolePatron, RoleSearcher, RoleOfficer}
	if got := Roles(); !slices.Equal(got, want) {
		t.Errorf("Roles() = %v after caller swap, want %v", got, want)
	}
}
