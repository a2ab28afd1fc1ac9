// Package journal writes the visitor event trace as zstd-compressed JSON
// lines, one record per event or dialog outcome.
package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/udisondev/frontdesk/internal/ai"
)

// ErrClosed is returned when writing to a closed journal.
var ErrClosed = errors.New("journal closed")

// Record kinds.
const (
	KindEvent   = "event"
	KindOutcome = "outcome"
)

// Record is one journal line.
type Record struct {
	RunID   string         `json:"run_id"`
	Seq     uint64         `json:"seq"`
	Kind    string         `json:"kind"`
	Event   *ai.Event      `json:"event,omitempty"`
	Outcome *OutcomeRecord `json:"outcome,omitempty"`
}

// OutcomeRecord is the JSON form of ai.Outcome.
type OutcomeRecord struct {
	At              time.Time `json:"at"`
	VisitorID       uint32    `json:"visitor_id"`
	Role            string    `json:"role"`
	Station         string    `json:"station"`
	Node            string    `json:"node"`
	Choice          string    `json:"choice"`
	Result          string    `json:"result"`
	Item            string    `json:"item,omitempty"`
	ItemGiven       bool      `json:"item_given,omitempty"`
	ItemTaken       bool      `json:"item_taken,omitempty"`
	Exp             int       `json:"exp,omitempty"`
	Money           int64     `json:"money,omitempty"`
	ReputationDelta int       `json:"reputation_delta,omitempty"`
	Note            string    `json:"note,omitempty"`
}

func outcomeRecord(o ai.Outcome) *OutcomeRecord {
	return &OutcomeRecord{
		At:              o.At,
		VisitorID:       o.VisitorID,
		Role:            o.Role.String(),
		Station:         o.Station,
		Node:            string(o.Node),
		Choice:          string(o.Choice),
		Result:          o.Result.String(),
		Item:            o.Item,
		ItemGiven:       o.ItemGiven,
		ItemTaken:       o.ItemTaken,
		Exp:             o.Exp,
		Money:           o.Money,
		ReputationDelta: o.ReputationDelta,
		Note:            o.Note,
	}
}

// ParseLevel maps config level name to zstd encoder level.
func ParseLevel(s string) (zstd.EncoderLevel, error) {
	switch strings.ToLower(s) {
	case "fastest":
		return zstd.SpeedFastest, nil
	case "", "default":
		return zstd.SpeedDefault, nil
	case "better":
		return zstd.SpeedBetterCompression, nil
	case "best":
		return zstd.SpeedBestCompression, nil
	default:
		return zstd.SpeedDefault, fmt.Errorf("unknown journal level %q", s)
	}
}

// Writer appends records to a zstd stream. It implements ai.EventSink and
// ai.OutcomeSink; sink methods cannot fail, so the first write error is
// kept and reported by Err and Close.
type Writer struct {
	runID string

	mu     sync.Mutex
	closer io.Closer // underlying file, nil for NewWriter
	enc    *zstd.Encoder
	w      *bufio.Writer
	seq    uint64
	err    error
	closed bool
}

// Create opens (truncating) a journal file.
func Create(path, runID string, level zstd.EncoderLevel) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating journal %s: %w", path, err)
	}
	w, err := NewWriter(f, runID, level)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// NewWriter wraps dst. Close does not close dst.
func NewWriter(dst io.Writer, runID string, level zstd.EncoderLevel) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return &Writer{
		runID: runID,
		enc:   enc,
		w:     bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// RecordEvent implements ai.EventSink.
func (w *Writer) RecordEvent(e ai.Event) {
	w.write(Record{Kind: KindEvent, Event: &e})
}

// RecordOutcome implements ai.OutcomeSink.
func (w *Writer) RecordOutcome(o ai.Outcome) {
	w.write(Record{Kind: KindOutcome, Outcome: outcomeRecord(o)})
}

func (w *Writer) write(r Record) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		w.fail(ErrClosed)
		return
	}
	if w.err != nil {
		return
	}

	w.seq++
	r.RunID = w.runID
	r.Seq = w.seq

	b, err := json.Marshal(r)
	if err != nil {
		w.fail(fmt.Errorf("encoding journal record: %w", err))
		return
	}
	if _, err := w.w.Write(b); err != nil {
		w.fail(err)
		return
	}
	if err := w.w.WriteByte('\n'); err != nil {
		w.fail(err)
	}
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
		slog.Error("journal write failed", "error", err)
	}
}

// Count returns number of records written.
func (w *Writer) Count() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq
}

// Err returns the first write error.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Flush pushes buffered records into a complete zstd block.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flushing journal: %w", err)
	}
	if err := w.enc.Flush(); err != nil {
		return fmt.Errorf("flushing journal: %w", err)
	}
	return w.err
}

// Close flushes and finishes the zstd frame.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	errs = append(errs, w.err)
	if err := w.w.Flush(); err != nil {
		errs = append(errs, err)
	}
	if err := w.enc.Close(); err != nil {
		errs = append(errs, err)
	}
	if w.closer != nil {
		if err := w.closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
