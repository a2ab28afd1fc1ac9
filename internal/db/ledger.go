package db

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/frontdesk/internal/ai"
)

// OutcomeWriter stores outcome batches.
type OutcomeWriter interface {
	InsertOutcomes(ctx context.Context, rows []OutcomeRow) error
}

const (
	ledgerBuffer        = 1024
	ledgerBatch         = 128
	ledgerFlushInterval = time.Second
	ledgerFinalTimeout  = 5 * time.Second
)

// Ledger is an ai.OutcomeSink that persists outcomes in the background.
// RecordOutcome never blocks the simulation: when the buffer is full the
// outcome is dropped and counted.
type Ledger struct {
	w     OutcomeWriter
	runID uuid.UUID
	ch    chan ai.Outcome

	saved   atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewLedger creates ledger for a run.
func NewLedger(w OutcomeWriter, runID uuid.UUID) *Ledger {
	return &Ledger{
		w:     w,
		runID: runID,
		ch:    make(chan ai.Outcome, ledgerBuffer),
	}
}

// RecordOutcome implements ai.OutcomeSink.
func (l *Ledger) RecordOutcome(o ai.Outcome) {
	select {
	case l.ch <- o:
	default:
		l.dropped.Add(1)
		slog.Warn("outcome ledger full, dropping outcome", "visitorID", o.VisitorID)
	}
}

// Run flushes buffered outcomes until ctx is cancelled, then drains what
// is left with a short deadline.
func (l *Ledger) Run(ctx context.Context) error {
	ticker := time.NewTicker(ledgerFlushInterval)
	defer ticker.Stop()

	batch := make([]OutcomeRow, 0, ledgerBatch)
	for {
		select {
		case <-ctx.Done():
			l.drain(&batch)
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), ledgerFinalTimeout)
			l.flush(final, &batch)
			cancel()
			return nil
		case o := <-l.ch:
			batch = append(batch, NewOutcomeRow(l.runID, o))
			if len(batch) >= ledgerBatch {
				l.flush(ctx, &batch)
			}
		case <-ticker.C:
			l.flush(ctx, &batch)
		}
	}
}

func (l *Ledger) drain(batch *[]OutcomeRow) {
	for {
		select {
		case o := <-l.ch:
			*batch = append(*batch, NewOutcomeRow(l.runID, o))
		default:
			return
		}
	}
}

func (l *Ledger) flush(ctx context.Context, batch *[]OutcomeRow) {
	if len(*batch) == 0 {
		return
	}
	if err := l.w.InsertOutcomes(ctx, *batch); err != nil {
		l.failed.Add(int64(len(*batch)))
		slog.Error("saving outcomes", "count", len(*batch), "error", err)
	} else {
		l.saved.Add(int64(len(*batch)))
	}
	*batch = (*batch)[:0]
}

// Stats returns saved, dropped and failed counters.
func (l *Ledger) Stats() (saved, dropped, failed int64) {
	return l.saved.Load(), l.dropped.Load(), l.failed.Load()
}
