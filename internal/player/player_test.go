package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontdesk/internal/config"
	"github.com/udisondev/frontdesk/internal/testutil"
)

func TestHands(t *testing.T) {
	h := NewHands()
	assert.False(t, h.HasItem())
	assert.False(t, h.AddItem(nil))

	umbrella := testutil.MustItem(1, "Umbrella", false)
	require.True(t, h.AddItem(umbrella))
	assert.False(t, h.AddItem(testutil.MustItem(2, "Scarf", false)), "one slot")
	assert.Same(t, umbrella, h.CurrentItem())

	assert.Same(t, umbrella, h.RemoveItem())
	assert.Nil(t, h.RemoveItem())
	assert.False(t, h.HasItem())
}

func TestWallet(t *testing.T) {
	w := NewWallet(1000)
	assert.Equal(t, int64(1100), w.Adjust(100))
	assert.Equal(t, int64(0), w.Adjust(-5000), "clamped at zero")

	w.Adjust(300)
	assert.Equal(t, int64(100), w.Adjust(-200))
	assert.Equal(t, int64(100), w.Balance())

	assert.Equal(t, int64(0), NewWallet(-10).Balance())
}

func TestReputation(t *testing.T) {
	r := NewReputation(50, 0, 100)
	assert.Equal(t, 60, r.Adjust(10))
	assert.Equal(t, 100, r.Adjust(500))
	assert.Equal(t, 0, r.Adjust(-1000))

	assert.Equal(t, 10, NewReputation(99, 10, 0).Value(), "inverted bounds swapped and clamped")
}

func TestCurve_Required(t *testing.T) {
	c := Curve{BaseToLevel2: 100, Increment: 50, MaxLevel: 10}
	tests := []struct {
		level int
		want  int
	}{
		{1, 0},
		{2, 100},
		{3, 150},
		{10, 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Required(tt.level), "level %d", tt.level)
	}
}

func TestExperience_Award(t *testing.T) {
	e := NewExperience(Curve{BaseToLevel2: 100, Increment: 50, MaxLevel: 10})
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 100, e.ToNext())

	e.Award(30, "test")
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 30, e.Current())

	// 70 to level 2, 150 to level 3, 10 left over
	e.Award(230, "test")
	assert.Equal(t, 3, e.Level())
	assert.Equal(t, 10, e.Current())
	assert.Equal(t, 200, e.ToNext())
	assert.Equal(t, 260, e.Total())

	e.Award(0, "nothing")
	e.Award(-5, "nothing")
	assert.Equal(t, 260, e.Total())
}

func TestExperience_MaxLevel(t *testing.T) {
	e := NewExperience(Curve{BaseToLevel2: 100, Increment: 50, MaxLevel: 2})
	e.Award(1000, "test")
	assert.Equal(t, 2, e.Level())
	assert.Equal(t, 0, e.Current())
	assert.Equal(t, 0, e.ToNext())
}

func TestExperience_Restore(t *testing.T) {
	e := NewExperience(Curve{BaseToLevel2: 100, Increment: 50, MaxLevel: 5})

	e.Restore(3, 500)
	assert.Equal(t, 3, e.Level())
	assert.Equal(t, 199, e.Current(), "clamped below next level")

	e.Restore(99, 10)
	assert.Equal(t, 5, e.Level())
	assert.Equal(t, 0, e.Current())

	e.Restore(0, -3)
	assert.Equal(t, 1, e.Level())
	assert.Equal(t, 0, e.Current())
}

func TestPlayer_ProgressRoundTrip(t *testing.T) {
	cfg := config.DefaultSimulation().Player
	p := New(cfg)

	assert.Equal(t, Progress{Level: 1, Balance: 1000, Reputation: 50}, p.Progress())

	p.Restore(Progress{Level: 4, Exp: 20, Balance: 250, Reputation: 80})
	assert.Equal(t, Progress{Level: 4, Exp: 20, Balance: 250, Reputation: 80}, p.Progress())
}

func TestShelf(t *testing.T) {
	s := NewShelf(2)
	assert.False(t, s.Put(nil))
	require.True(t, s.Put(testutil.MustItem(1, "Umbrella", false)))
	require.True(t, s.Put(testutil.MustItem(2, "Vial", true)))
	assert.False(t, s.Put(testutil.MustItem(3, "Scarf", false)), "full")

	assert.Nil(t, s.TakeByName("Scarf"))
	got := s.TakeByName("umbrella")
	require.NotNil(t, got)
	assert.Equal(t, "Umbrella", got.Name())

	c := s.TakeContraband()
	require.NotNil(t, c)
	assert.Equal(t, "Vial", c.Name())
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.TakeContraband())
}
