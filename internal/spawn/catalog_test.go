package spawn

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontdesk/internal/config"
	"github.com/udisondev/frontdesk/internal/model"
)

func TestCatalog_Build(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, 2, c.Len())

	vial, ok := c.Get(2)
	require.True(t, ok)
	assert.True(t, vial.IsContraband())

	_, ok = c.Get(99)
	assert.False(t, ok)
}

func TestCatalog_Errors(t *testing.T) {
	_, err := NewCatalog([]config.Item{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}, nil)
	assert.ErrorContains(t, err, "duplicate")

	_, err = NewCatalog([]config.Item{{ID: 1}}, nil)
	assert.Error(t, err, "empty name")
}

func TestCatalog_EmptyRandom(t *testing.T) {
	c, err := NewCatalog(nil, nil)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(1, 2))

	assert.Nil(t, c.Random(rng))
	_, ok := c.Wanted(rng, true)
	assert.False(t, ok)
}

func TestCatalog_WantedLies(t *testing.T) {
	c := testCatalog(t)
	rng := rand.New(rand.NewPCG(5, 6))

	var lies, truths int
	details := make(map[model.DetailLevel]bool)
	for range 500 {
		w, ok := c.Wanted(rng, true)
		require.True(t, ok)
		details[w.Detail] = true
		if w.Real {
			truths++
			assert.Contains(t, []string{"Umbrella", "Vial"}, w.Name)
		} else {
			lies++
			assert.Equal(t, "Golden Compass", w.Name)
		}
	}
	assert.Positive(t, lies)
	assert.Positive(t, truths)
	assert.Len(t, details, 3, "all detail levels drawn")
}

func TestCatalog_OnlyFictitious(t *testing.T) {
	c, err := NewCatalog(nil, []config.Item{{Name: "Ghost Ring", Description: "Invisible."}})
	require.NoError(t, err)

	w, ok := c.Wanted(rand.New(rand.NewPCG(1, 1)), true)
	require.True(t, ok)
	assert.False(t, w.Real)
	assert.Equal(t, "Ghost Ring", w.Name)
}

func TestBuildStations(t *testing.T) {
	cfg := config.DefaultSimulation().Stations
	stations, err := BuildStations(cfg)
	require.NoError(t, err)

	require.Len(t, stations, 3)
	assert.Same(t, stations[model.RolePatron], stations[model.RoleSearcher], "shared desk")
	assert.NotSame(t, stations[model.RolePatron], stations[model.RoleOfficer])

	desk := stations[model.RolePatron]
	assert.NoError(t, desk.Validate())
	assert.Equal(t, 4, desk.Capacity())
	door, ok := desk.DoorWaypoint()
	require.True(t, ok)
	assert.Equal(t, model.NewPoint(0, 0, -8), door)
	assert.Equal(t, model.NewPoint(2, 0, 0), desk.SlotPosition(1))
	assert.Equal(t, model.NewPoint(0, 0, -16), desk.SpawnPoint(), "spawn defaults to exit")
}

func TestBuildStations_Errors(t *testing.T) {
	_, err := BuildStations(map[string]config.Station{"janitor": {Name: "x", Capacity: 1}})
	assert.ErrorContains(t, err, "unknown visitor role")

	_, err = BuildStations(map[string]config.Station{"patron": {Capacity: 1}})
	assert.ErrorContains(t, err, "name is required")

	_, err = BuildStations(map[string]config.Station{"patron": {Name: "x", Approach: config.Vec3{1}}})
	assert.ErrorContains(t, err, "[x, y, z]")
}

func TestBuildStations_MisconfiguredKept(t *testing.T) {
	stations, err := BuildStations(map[string]config.Station{"officer": {Name: "bare", Capacity: 1}})
	require.NoError(t, err)
	require.Contains(t, stations, model.RoleOfficer)
	assert.ErrorIs(t, stations[model.RoleOfficer].Validate(), model.ErrStationNotConfigured)
}
