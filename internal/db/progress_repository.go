package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/frontdesk/internal/player"
)

// ProgressRepository сохраняет прогресс игрока между запусками.
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository создаёт новый ProgressRepository.
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Load returns saved progress. ok is false when the profile has none.
func (r *ProgressRepository) Load(ctx context.Context, profile string) (pr player.Progress, ok bool, err error) {
	var level, exp, reputation int32
	err = r.db.QueryRow(ctx,
		`SELECT level, exp, balance, reputation FROM player_progress WHERE profile = $1`, profile,
	).Scan(&level, &exp, &pr.Balance, &reputation)
	if errors.Is(err, pgx.ErrNoRows) {
		return player.Progress{}, false, nil
	}
	if err != nil {
		return player.Progress{}, false, fmt.Errorf("loading progress for %q: %w", profile, err)
	}
	pr.Level = int(level)
	pr.Exp = int(exp)
	pr.Reputation = int(reputation)
	return pr, true, nil
}

// Save upserts progress.
func (r *ProgressRepository) Save(ctx context.Context, profile string, pr player.Progress) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO player_progress (profile, level, exp, balance, reputation, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now())
		 ON CONFLICT (profile) DO UPDATE SET
		   level = EXCLUDED.level,
		   exp = EXCLUDED.exp,
		   balance = EXCLUDED.balance,
		   reputation = EXCLUDED.reputation,
		   updated_at = now()`,
		profile, int32(pr.Level), int32(pr.Exp), pr.Balance, int32(pr.Reputation),
	)
	if err != nil {
		return fmt.Errorf("saving progress for %q: %w", profile, err)
	}
	return nil
}
