package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontdesk/internal/model"
	"github.com/udisondev/frontdesk/internal/testutil"
)

type countingController struct {
	id        uint32
	started   bool
	stopped   bool
	log       *[]uint32
	destroyed bool
}

func (c *countingController) ID() uint32                  { return c.id }
func (c *countingController) Start()                      { c.started = true }
func (c *countingController) Stop()                       { c.stopped = true }
func (c *countingController) State() model.LifecycleState { return model.StateIdle }
func (c *countingController) Destroyed() bool             { return c.destroyed }
func (c *countingController) Tick(time.Time)              { *c.log = append(*c.log, c.id) }

func TestTickManager_RegisterUnregister(t *testing.T) {
	mgr := NewTickManager()
	var log []uint32
	c := &countingController{id: 1, log: &log}

	require.NoError(t, mgr.Register(c))
	assert.True(t, c.started)
	assert.Equal(t, 1, mgr.Count())
	assert.Error(t, mgr.Register(c), "duplicate")

	got, err := mgr.Controller(1)
	require.NoError(t, err)
	assert.Same(t, c, got)

	_, ok := mgr.Visitor(1)
	assert.False(t, ok, "not a visitor AI")

	mgr.Unregister(1)
	assert.True(t, c.stopped)
	assert.Equal(t, 0, mgr.Count())
	_, err = mgr.Controller(1)
	assert.Error(t, err)

	mgr.Unregister(1) // no-op
	assert.Equal(t, 0, mgr.Count())
}

func TestTickManager_TickOrder(t *testing.T) {
	mgr := NewTickManager()
	var log []uint32
	for _, id := range []uint32{30, 10, 20} {
		require.NoError(t, mgr.Register(&countingController{id: id, log: &log}))
	}

	mgr.TickAll(time.Now())
	assert.Equal(t, []uint32{10, 20, 30}, log)
}

func TestTickManager_Reap(t *testing.T) {
	mgr := NewTickManager()
	var log []uint32
	alive := &countingController{id: 1, log: &log}
	gone := &countingController{id: 2, log: &log, destroyed: true}
	require.NoError(t, mgr.Register(alive))
	require.NoError(t, mgr.Register(gone))

	assert.Equal(t, []uint32{2}, mgr.Reap())
	assert.Equal(t, 1, mgr.Count())
	assert.True(t, gone.stopped)
	assert.Empty(t, mgr.Reap())
}

func TestTickManager_VisitorLookup(t *testing.T) {
	h := newHarness(t, nil)
	a := h.spawn(100001, model.RolePatron, testutil.NewStation("desk", 1, false))

	got, ok := h.ticks.Visitor(a.ID())
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestDebugLogging_Toggle(t *testing.T) {
	EnableDebugLogging(true)
	assert.True(t, IsDebugEnabled())
	EnableDebugLogging(false)
	assert.False(t, IsDebugEnabled())
}
