package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/frontdesk/internal/ai"
)

// OutcomeRow is a stored dialog outcome.
type OutcomeRow struct {
	RunID           uuid.UUID
	At              time.Time
	VisitorID       uint32
	Role            string
	Station         string
	Node            string
	Choice          string
	Result          string
	Item            string
	ItemGiven       bool
	ItemTaken       bool
	Exp             int
	Money           int64
	ReputationDelta int
	Note            string
}

// NewOutcomeRow converts outcome for storage.
func NewOutcomeRow(runID uuid.UUID, o ai.Outcome) OutcomeRow {
	return OutcomeRow{
		RunID:           runID,
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

var outcomeColumns = []string{
	"run_id", "at", "visitor_id", "role", "station", "node", "choice", "result",
	"item", "item_given", "item_taken", "exp", "money", "reputation_delta", "note",
}

// OutcomeRepository управляет журналом исходов диалогов.
type OutcomeRepository struct {
	db *pgxpool.Pool
}

// NewOutcomeRepository создаёт новый OutcomeRepository.
func NewOutcomeRepository(db *pgxpool.Pool) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

// InsertOutcomes bulk-inserts rows via COPY.
func (r *OutcomeRepository) InsertOutcomes(ctx context.Context, rows []OutcomeRow) error {
	if len(rows) == 0 {
		return nil
	}

	data := make([][]any, 0, len(rows))
	for _, o := range rows {
		data = append(data, []any{
			o.RunID, o.At, int64(o.VisitorID), o.Role, o.Station, o.Node, o.Choice, o.Result,
			o.Item, o.ItemGiven, o.ItemTaken, int32(o.Exp), o.Money, int32(o.ReputationDelta), o.Note,
		})
	}

	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"visit_outcomes"}, outcomeColumns, pgx.CopyFromRows(data))
	if err != nil {
		return fmt.Errorf("inserting %d outcomes: %w", len(rows), err)
	}

	slog.Debug("saved visit outcomes", "count", n)
	return nil
}

// ListByRun returns outcomes of a run ordered by time.
func (r *OutcomeRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]OutcomeRow, error) {
	query := `
		SELECT run_id, at, visitor_id, role, station, node, choice, result,
		       item, item_given, item_taken, exp, money, reputation_delta, note
		FROM visit_outcomes
		WHERE run_id = $1
		ORDER BY at, id
	`
	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []OutcomeRow
	for rows.Next() {
		var (
			o         OutcomeRow
			visitorID int64
			exp       int32
			repDelta  int32
		)
		err := rows.Scan(
			&o.RunID, &o.At, &visitorID, &o.Role, &o.Station, &o.Node, &o.Choice, &o.Result,
			&o.Item, &o.ItemGiven, &o.ItemTaken, &exp, &o.Money, &repDelta, &o.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning outcome row: %w", err)
		}
		o.VisitorID = uint32(visitorID)
		o.Exp = int(exp)
		o.ReputationDelta = int(repDelta)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcome rows: %w", err)
	}
	return out, nil
}

// CountByResult aggregates a run's outcomes by result name.
func (r *OutcomeRepository) CountByResult(ctx context.Context, runID uuid.UUID) (map[string]int, error) {
	rows, err := r.db.Query(ctx,
		`SELECT result, count(*) FROM visit_outcomes WHERE run_id = $1 GROUP BY result`, runID)
	if err != nil {
		return nil, fmt.Errorf("counting outcomes for run %s: %w", runID, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var result string
		var n int64
		if err := rows.Scan(&result, &n); err != nil {
			return nil, fmt.Errorf("scanning outcome count: %w", err)
		}
		counts[result] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating outcome counts: %w", err)
	}
	return counts, nil
}
