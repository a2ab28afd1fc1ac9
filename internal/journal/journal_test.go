package journal

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/frontdesk/internal/ai"
	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

var at = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func TestWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "visits.jsonl.zst")
	runID := uuid.NewString()

	w, err := Create(path, runID, zstd.SpeedFastest)
	require.NoError(t, err)

	w.RecordEvent(ai.Event{At: at, VisitorID: 100001, Role: "patron", Kind: ai.EventSpawned})
	w.RecordEvent(ai.Event{At: at, VisitorID: 100001, Role: "patron", Kind: ai.EventYield, Yielded: true})
	w.RecordOutcome(ai.Outcome{
		At:        at,
		VisitorID: 100002,
		Role:      model.RoleSearcher,
		Station:   "front_desk",
		Node:      dialog.NodeQuestion,
		Choice:    dialog.ChoiceFound,
		Result:    dialog.ResultFinish,
		Item:      "Umbrella",
		ItemTaken: true,
		Exp:       10,
		Money:     100,
	})
	assert.Equal(t, uint64(3), w.Count())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	var recs []Record
	require.NoError(t, ReadFile(path, func(r Record) error {
		recs = append(recs, r)
		return nil
	}))
	require.Len(t, recs, 3)

	for i, r := range recs {
		assert.Equal(t, runID, r.RunID)
		assert.Equal(t, uint64(i+1), r.Seq)
	}
	assert.Equal(t, KindEvent, recs[0].Kind)
	require.NotNil(t, recs[0].Event)
	assert.Equal(t, ai.EventSpawned, recs[0].Event.Kind)
	assert.True(t, recs[0].Event.At.Equal(at))

	require.NotNil(t, recs[2].Outcome)
	out := recs[2].Outcome
	assert.Equal(t, KindOutcome, recs[2].Kind)
	assert.Equal(t, "searcher", out.Role)
	assert.Equal(t, "finish", out.Result)
	assert.Equal(t, "found", out.Choice)
	assert.Equal(t, "Umbrella", out.Item)
	assert.True(t, out.ItemTaken)

	sum, err := Summarize(path)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Records)
	assert.Equal(t, 1, sum.Spawned)
	assert.Equal(t, 1, sum.Yields)
	assert.Equal(t, map[string]int{"finish": 1}, sum.Outcomes)
	assert.Equal(t, int64(100), sum.Money)
	assert.Equal(t, 10, sum.Exp)
}

func TestWriter_FlushMakesRecordsReadable(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "run", zstd.SpeedDefault)
	require.NoError(t, err)

	w.RecordEvent(ai.Event{At: at, VisitorID: 1, Kind: ai.EventQueued, Slot: 2})
	require.NoError(t, w.Flush())

	n := 0
	// the frame is still open, so reading ends with an unexpected EOF
	_ = Read(bytes.NewReader(buf.Bytes()), func(r Record) error {
		n++
		assert.Equal(t, 2, r.Event.Slot)
		return nil
	})
	assert.Equal(t, 1, n)
	require.NoError(t, w.Close())
}

func TestWriter_WriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "run", zstd.SpeedDefault)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w.RecordEvent(ai.Event{Kind: ai.EventState})
	assert.ErrorIs(t, w.Err(), ErrClosed)
	assert.ErrorIs(t, w.Flush(), ErrClosed)
	assert.Equal(t, uint64(0), w.Count())
}

func TestRead_StopsOnCallbackError(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, "run", zstd.SpeedDefault)
	require.NoError(t, err)
	for range 5 {
		w.RecordEvent(ai.Event{Kind: ai.EventState})
	}
	require.NoError(t, w.Close())

	stop := errors.New("stop")
	n := 0
	err = Read(&buf, func(Record) error {
		n++
		if n == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, n)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zstd.EncoderLevel
		wantErr bool
	}{
		{"", zstd.SpeedDefault, false},
		{"fastest", zstd.SpeedFastest, false},
		{"Better", zstd.SpeedBetterCompression, false},
		{"best", zstd.SpeedBestCompression, false},
		{"ultra", zstd.SpeedDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
