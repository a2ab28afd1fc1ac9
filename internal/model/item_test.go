package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	item, err := NewItem(1, "Watch", "Old pocket watch.", false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), item.ID())
	assert.Equal(t, "Watch", item.Name())
	assert.False(t, item.IsContraband())

	_, err = NewItem(2, "", "nameless", true)
	assert.Error(t, err)
}

func TestDetailLevel_Apply(t *testing.T) {
	desc := "Brass compass. Needle points west. Scratched lid."

	assert.Equal(t, desc, DetailFull.Apply(desc))
	assert.Equal(t, "Brass compass. Needle points west.", DetailBrief.Apply(desc))
	assert.Equal(t, "Single sentence.", DetailBrief.Apply("Single sentence"))

	half := DetailHalf.Apply("abcdef")
	assert.Equal(t, "abc...", half)
}

func TestVisitor_SetHold(t *testing.T) {
	v := NewVisitor(1, RolePatron, newTestStation(1))

	changed, held := v.SetHold(HoldDialog, true)
	assert.True(t, changed)
	assert.True(t, held)

	changed, held = v.SetHold(HoldProximity, true)
	assert.False(t, changed, "already held")
	assert.True(t, held)

	changed, held = v.SetHold(HoldDialog, false)
	assert.False(t, changed)
	assert.True(t, held, "proximity hold remains")

	changed, held = v.SetHold(HoldProximity, false)
	assert.True(t, changed)
	assert.False(t, held)
}

func TestVisitor_PhaseDuringExit(t *testing.T) {
	v := NewVisitor(1, RoleOfficer, newTestStation(1))
	assert.Equal(t, -1, v.QueueSlot())

	v.SetState(StateFinished)
	v.MarkExiting()
	assert.Equal(t, StateFinished, v.State())
	assert.Equal(t, StateExiting, v.Phase())
	assert.Equal(t, StateExiting, v.Snapshot().Phase)
}
