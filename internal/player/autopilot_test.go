package player

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontdesk/internal/ai"
	"github.com/udisondev/frontdesk/internal/config"
	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
	"github.com/udisondev/frontdesk/internal/testutil"
)

type desk struct {
	t       *testing.T
	now     time.Time
	nav     *testutil.FakeNavigator
	player  *Player
	shelf   *Shelf
	ticks   *ai.TickManager
	deps    *ai.Deps
	station *model.Station
	pilot   *Autopilot
	caller  *countingCaller
}

type countingCaller struct {
	calls int
}

func (c *countingCaller) CallOfficer(time.Time) (*ai.VisitorAI, error) {
	c.calls++
	return nil, nil
}

func newDesk(t *testing.T, interruptChance float64) *desk {
	t.Helper()
	d := &desk{
		t:       t,
		now:     time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		nav:     testutil.NewFakeNavigator(),
		player:  New(config.DefaultSimulation().Player),
		shelf:   NewShelf(0),
		ticks:   ai.NewTickManager(),
		station: testutil.NewStation("desk", 5, false),
		caller:  &countingCaller{},
	}
	d.deps = &ai.Deps{
		Nav:        d.nav,
		Renderer:   testutil.NewRecordingRenderer(),
		Texts:      testutil.NodeTexts{},
		Inventory:  d.player.Hands,
		Wallet:     d.player.Wallet,
		Reputation: d.player.Reputation,
		Experience: d.player.Experience,
		Desk:       dialog.NewDesk(),
		Tuning:     ai.DefaultTuning(),
		Rewards:    ai.DefaultRewards(),
	}
	cfg := config.Autopilot{
		Enabled:          true,
		ThinkDelay:       time.Second,
		InterruptChance:  interruptChance,
		CallOfficerEvery: 10 * time.Second,
	}
	d.pilot = NewAutopilot(cfg, d.player, d.shelf, d.ticks, []*model.Station{d.station, d.station}, d.caller, rand.New(rand.NewPCG(1, 2)))
	return d
}

// queued spawns a visitor and walks it into the queue.
func (d *desk) queued(id uint32, role model.Role) *ai.VisitorAI {
	d.t.Helper()
	v := model.NewVisitor(id, role, d.station)
	require.NoError(d.t, d.station.Bind(id))
	a, err := ai.NewVisitorAI(v, d.deps)
	require.NoError(d.t, err)
	require.NoError(d.t, d.ticks.Register(a))
	require.NoError(d.t, a.Enter(d.now))
	require.True(d.t, d.nav.Arrive(id))
	d.ticks.TickAll(d.now)
	require.Equal(d.t, model.StateQueued, a.State())
	return a
}

// think advances one think delay and lets the autopilot act.
func (d *desk) think() {
	d.now = d.now.Add(time.Second)
	d.pilot.Tick(d.now)
}

// tick advances time by dt and ticks visitors only.
func (d *desk) tick(dt time.Duration) {
	d.now = d.now.Add(dt)
	d.ticks.TickAll(d.now)
}

func TestAutopilot_PatronThenSearcher(t *testing.T) {
	d := newDesk(t, 0)

	patron := d.queued(100001, model.RolePatron)
	patron.Visitor().SetHeldItem(testutil.MustItem(1, "Umbrella", false))

	d.think()
	assert.Equal(t, model.StateInDialog, patron.State())
	id, talking := d.pilot.Talking()
	assert.True(t, talking)
	assert.Equal(t, patron.ID(), id)

	d.think() // accept
	assert.Equal(t, model.StateFinished, patron.State())
	assert.Equal(t, "Umbrella", d.player.Hands.CurrentItem().Name())
	_, talking = d.pilot.Talking()
	assert.True(t, talking, "farewell on screen")

	d.think() // waits for the farewell
	assert.True(t, d.player.Hands.HasItem())

	d.tick(2 * time.Second)
	d.think() // stash
	_, talking = d.pilot.Talking()
	assert.False(t, talking)
	assert.False(t, d.player.Hands.HasItem())
	assert.Equal(t, 1, d.shelf.Len())

	searcher := d.queued(100002, model.RoleSearcher)
	searcher.Visitor().SetWantedItem(&model.WantedItem{Name: "Umbrella", Description: "Black.", Real: true})

	d.think() // greeting
	d.think() // tell more
	d.think() // search: loop back
	assert.Equal(t, model.StateQueued, searcher.State())
	assert.True(t, searcher.Visitor().Searching())

	d.think() // reopen at question, umbrella taken from shelf
	require.NotNil(t, searcher.Session())
	assert.Equal(t, dialog.NodeQuestion, searcher.Session().Current())
	assert.True(t, d.player.Hands.HasItem())
	assert.Equal(t, 0, d.shelf.Len())

	d.think() // found
	assert.Equal(t, model.StateFinished, searcher.State())
	assert.False(t, d.player.Hands.HasItem())
	assert.Equal(t, int64(1100), d.player.Wallet.Balance())
	assert.Equal(t, 15, d.player.Experience.Total())
}

func TestAutopilot_InterruptsAndResumes(t *testing.T) {
	d := newDesk(t, 1)
	patron := d.queued(100001, model.RolePatron)
	patron.Visitor().SetHeldItem(testutil.MustItem(1, "Scarf", false))

	d.think() // open
	d.think() // interrupt
	require.NotNil(t, patron.Session())
	assert.True(t, patron.Session().Interrupted())
	assert.Equal(t, model.StateQueued, patron.State())
	_, busy := d.deps.Desk.Owner()
	assert.False(t, busy)

	d.think() // resume
	assert.Equal(t, model.StateInDialog, patron.State())

	d.think() // accept, no second interrupt
	assert.Equal(t, model.StateFinished, patron.State())
	assert.Equal(t, "Scarf", d.player.Hands.CurrentItem().Name())
}

func TestAutopilot_OfficerConfiscatesFromShelf(t *testing.T) {
	d := newDesk(t, 0)
	d.shelf.Put(testutil.MustItem(1, "Umbrella", false))
	d.shelf.Put(testutil.MustItem(5, "Vial", true))
	officer := d.queued(100001, model.RoleOfficer)

	for range 5 { // open, P1, P2, P3, P4
		d.think()
	}
	assert.Equal(t, model.StateFinished, officer.State())
	assert.Equal(t, 60, d.player.Reputation.Value())
	assert.Equal(t, 15, d.player.Experience.Total())
	assert.Equal(t, 1, d.shelf.Len(), "umbrella stays")
	assert.False(t, d.player.Hands.HasItem())
}

func TestAutopilot_OfficerFalseAlarm(t *testing.T) {
	d := newDesk(t, 0)
	officer := d.queued(100001, model.RoleOfficer)

	for range 3 { // open, P1 false alarm, P6 close
		d.think()
	}
	assert.Equal(t, model.StateFinished, officer.State())
	assert.Equal(t, int64(500), d.player.Wallet.Balance())
}

func TestAutopilot_CallsOfficerOnSchedule(t *testing.T) {
	d := newDesk(t, 0)

	d.pilot.Tick(d.now)
	assert.Equal(t, 0, d.caller.calls)

	d.pilot.Tick(d.now.Add(9 * time.Second))
	assert.Equal(t, 0, d.caller.calls)

	d.pilot.Tick(d.now.Add(10 * time.Second))
	assert.Equal(t, 1, d.caller.calls)
}

func TestAutopilot_Disabled(t *testing.T) {
	d := newDesk(t, 0)
	d.pilot.cfg.Enabled = false
	patron := d.queued(100001, model.RolePatron)

	d.think()
	assert.Equal(t, model.StateQueued, patron.State())
}
