package db

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontdesk/internal/ai"
	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
	"github.com/udisondev/frontdesk/internal/player"
	"github.com/udisondev/frontdesk/internal/testutil"
)

func TestOutcomeRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewOutcomeRepository(pool)
	ctx := testutil.ContextWithTimeout(t, time.Minute)

	run := uuid.New()
	other := uuid.New()
	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	rows := []OutcomeRow{
		NewOutcomeRow(run, ai.Outcome{
			At: at, VisitorID: 100001, Role: model.RolePatron, Station: "front_desk",
			Node: dialog.NodeGreeting, Choice: dialog.ChoiceAccept, Result: dialog.ResultFinish,
			Item: "Umbrella", ItemGiven: true, Exp: 5,
		}),
		NewOutcomeRow(run, ai.Outcome{
			At: at.Add(time.Minute), VisitorID: 100002, Role: model.RoleSearcher, Station: "front_desk",
			Node: dialog.NodeDetail, Choice: dialog.ChoiceSearch, Result: dialog.ResultLoopBack,
		}),
		NewOutcomeRow(other, ai.Outcome{
			At: at, VisitorID: 100003, Role: model.RoleOfficer, Station: "officer_post",
			Node: dialog.NodePanel1, Choice: dialog.ChoiceFalseAlarm, Result: dialog.ResultContinue,
			Money: -500,
		}),
	}
	require.NoError(t, repo.InsertOutcomes(ctx, rows))
	require.NoError(t, repo.InsertOutcomes(ctx, nil))

	got, err := repo.ListByRun(ctx, run)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, run, got[0].RunID)
	assert.Equal(t, uint32(100001), got[0].VisitorID)
	assert.Equal(t, "patron", got[0].Role)
	assert.Equal(t, "Umbrella", got[0].Item)
	assert.True(t, got[0].ItemGiven)
	assert.Equal(t, 5, got[0].Exp)
	assert.True(t, got[0].At.Equal(at))
	assert.Equal(t, "loop_back", got[1].Result)

	counts, err := repo.CountByResult(ctx, run)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"finish": 1, "loop_back": 1}, counts)
}

func TestProgressRepository(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	repo := NewProgressRepository(pool)
	ctx := testutil.ContextWithTimeout(t, time.Minute)

	_, ok, err := repo.Load(ctx, "desk")
	require.NoError(t, err)
	assert.False(t, ok)

	want := player.Progress{Level: 3, Exp: 40, Balance: 1250, Reputation: 70}
	require.NoError(t, repo.Save(ctx, "desk", want))

	got, ok, err := repo.Load(ctx, "desk")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	want.Balance = 10
	require.NoError(t, repo.Save(ctx, "desk", want))
	got, _, err = repo.Load(ctx, "desk")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Balance)
}
