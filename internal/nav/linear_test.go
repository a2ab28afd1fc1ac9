package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontdesk/internal/model"
)

func TestLinear_WalksAtSpeed(t *testing.T) {
	n := NewLinear(2)
	n.Place(1, model.NewPoint(0, 0, 0))
	n.SetDestination(1, model.NewPoint(10, 0, 0))

	n.Advance(time.Second)
	pos, ok := n.Position(1)
	require.True(t, ok)
	assert.InDelta(t, 2, pos.X, 1e-9)
	assert.InDelta(t, 8, n.RemainingDistance(1), 1e-9)
	assert.False(t, n.HasArrived(1, 1))

	n.Advance(4500 * time.Millisecond)
	assert.True(t, n.HasArrived(1, 0))
	assert.Equal(t, 0.0, n.RemainingDistance(1))
	pos, _ = n.Position(1)
	assert.Equal(t, model.NewPoint(10, 0, 0), pos, "no overshoot")
}

func TestLinear_Hold(t *testing.T) {
	n := NewLinear(1)
	n.Place(1, model.NewPoint(0, 0, 0))
	n.SetDestination(1, model.NewPoint(0, 0, 5))
	n.HoldMovement(1, true)

	n.Advance(time.Second)
	pos, _ := n.Position(1)
	assert.True(t, pos.IsZero())
	assert.Equal(t, 5.0, n.RemainingDistance(1))

	n.HoldMovement(1, false)
	n.Advance(time.Second)
	pos, _ = n.Position(1)
	assert.InDelta(t, 1, pos.Z, 1e-9)
}

func TestLinear_NoDestination(t *testing.T) {
	n := NewLinear(1)
	n.Place(1, model.NewPoint(3, 0, 0))

	assert.False(t, n.HasArrived(1, 100))
	assert.Equal(t, 0.0, n.RemainingDistance(1))
	n.Advance(time.Second)
	pos, _ := n.Position(1)
	assert.Equal(t, model.NewPoint(3, 0, 0), pos)
}

func TestLinear_Remove(t *testing.T) {
	n := NewLinear(1)
	n.Place(1, model.Point{})
	n.Place(2, model.Point{})
	assert.Equal(t, 2, n.Count())

	n.Remove(1)
	_, ok := n.Position(1)
	assert.False(t, ok)
	assert.Equal(t, 1, n.Count())

	// unknown ids are ignored
	n.SetDestination(1, model.NewPoint(1, 1, 1))
	n.HoldMovement(1, true)
	assert.False(t, n.HasArrived(1, 10))
}
