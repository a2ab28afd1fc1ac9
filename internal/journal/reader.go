package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/udisondev/frontdesk/internal/ai"
)

const maxLine = 1 << 20

// Read decodes records from a zstd JSONL stream and passes them to fn.
// It stops at the first error returned by fn.
func Read(r io.Reader, fn func(Record) error) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			return fmt.Errorf("decoding journal line %d: %w", line, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading journal: %w", err)
	}
	return nil
}

// ReadFile reads a journal file.
func ReadFile(path string, fn func(Record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, fn)
}

// Summary counts what a run produced.
type Summary struct {
	Records  int
	Spawned  int
	Despawn  int
	Yields   int
	Outcomes map[string]int // by result
	Money    int64
	Exp      int
}

// Summarize reads a journal file and aggregates it.
func Summarize(path string) (Summary, error) {
	s := Summary{Outcomes: make(map[string]int)}
	err := ReadFile(path, func(r Record) error {
		s.Records++
		switch r.Kind {
		case KindEvent:
			if r.Event == nil {
				return nil
			}
			switch r.Event.Kind {
			case ai.EventSpawned:
				s.Spawned++
			case ai.EventDespawned:
				s.Despawn++
			case ai.EventYield:
				if r.Event.Yielded {
					s.Yields++
				}
			}
		case KindOutcome:
			if r.Outcome == nil {
				return nil
			}
			s.Outcomes[r.Outcome.Result]++
			s.Money += r.Outcome.Money
			s.Exp += r.Outcome.Exp
		}
		return nil
	})
	return s, err
}
