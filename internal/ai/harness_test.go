package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
	"github.com/udisondev/frontdesk/internal/testutil"
	"github.com/udisondev/frontdesk/internal/world"
)

type recorder struct {
	events   []Event
	outcomes []Outcome
}

func (r *recorder) RecordEvent(e Event)     { r.events = append(r.events, e) }
func (r *recorder) RecordOutcome(o Outcome) { r.outcomes = append(r.outcomes, o) }

// states returns lifecycle states visitor passed through, in order.
func (r *recorder) states(id uint32) []model.LifecycleState {
	var out []model.LifecycleState
	for _, e := range r.events {
		if e.VisitorID == id && e.Kind == EventState {
			out = append(out, e.State)
		}
	}
	return out
}

type harness struct {
	t      *testing.T
	nav    *testutil.FakeNavigator
	ren    *testutil.RecordingRenderer
	inv    *testutil.FakeInventory
	wallet *testutil.FakeWallet
	rep    *testutil.FakeReputation
	exp    *testutil.FakeExperience
	rec    *recorder
	deps   *Deps
	ticks  *TickManager
	reg    *world.Registry
	now    time.Time
}

func newHarness(t *testing.T, playerItem *model.Item) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		nav:    testutil.NewFakeNavigator(),
		ren:    testutil.NewRecordingRenderer(),
		inv:    testutil.NewFakeInventory(playerItem),
		wallet: &testutil.FakeWallet{Balance: 1000},
		rep:    &testutil.FakeReputation{Value: 50},
		exp:    &testutil.FakeExperience{},
		rec:    &recorder{},
		ticks:  NewTickManager(),
		reg:    world.NewRegistry(),
		now:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	h.deps = &Deps{
		Nav:        h.nav,
		Renderer:   h.ren,
		Texts:      testutil.NodeTexts{},
		Inventory:  h.inv,
		Wallet:     h.wallet,
		Reputation: h.rep,
		Experience: h.exp,
		Desk:       dialog.NewDesk(),
		Events:     []EventSink{h.rec},
		Outcomes:   []OutcomeSink{h.rec},
		Tuning:     DefaultTuning(),
		Rewards:    DefaultRewards(),
	}
	return h
}

// spawn binds, registers and enters a visitor the way the spawner does.
func (h *harness) spawn(id uint32, role model.Role, st *model.Station) *VisitorAI {
	h.t.Helper()
	v := model.NewVisitor(id, role, st)
	require.NoError(h.t, st.Bind(id))
	a, err := NewVisitorAI(v, h.deps)
	require.NoError(h.t, err)
	require.NoError(h.t, h.reg.Add(v))
	require.NoError(h.t, h.ticks.Register(a))
	require.NoError(h.t, a.Enter(h.now))
	return a
}

// step advances simulated time and ticks every visitor.
func (h *harness) step(d time.Duration) {
	h.now = h.now.Add(d)
	h.ticks.TickAll(h.now)
}

// queue walks a door-less visitor to the queue.
func (h *harness) queue(a *VisitorAI) {
	h.t.Helper()
	require.True(h.t, h.nav.Arrive(a.ID()))
	h.step(100 * time.Millisecond)
	require.Equal(h.t, model.StateQueued, a.State())
}

func (h *harness) advance(a *VisitorAI, choices ...dialog.Choice) {
	h.t.Helper()
	for _, c := range choices {
		_, err := a.Advance(h.now, c)
		require.NoError(h.t, err, "choice %s", c)
	}
}
