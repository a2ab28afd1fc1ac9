package player

import (
	"log/slog"
	"sync"
)

// Curve describes experience required per level.
// Level 1→2 needs BaseToLevel2, every next level Increment more.
type Curve struct {
	BaseToLevel2 int
	Increment    int
	MaxLevel     int
}

// Required returns experience needed to reach targetLevel from the level
// below it.
func (c Curve) Required(targetLevel int) int {
	if targetLevel <= 1 {
		return 0
	}
	return c.BaseToLevel2 + (targetLevel-2)*c.Increment
}

// Experience tracks level and experience within the current level.
// Leftover experience carries over on level up; at max level gains are
// dropped.
type Experience struct {
	mu    sync.RWMutex
	curve Curve
	level int
	exp   int
	total int
}

// NewExperience creates level 1 progress.
func NewExperience(curve Curve) *Experience {
	curve.MaxLevel = max(1, curve.MaxLevel)
	return &Experience{curve: curve, level: 1}
}

// Level returns current level.
func (e *Experience) Level() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.level
}

// Current returns experience within the current level.
func (e *Experience) Current() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.exp
}

// Total returns all experience ever awarded, including gains dropped at max level.
func (e *Experience) Total() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.total
}

// ToNext returns experience needed for the next level, 0 at max level.
func (e *Experience) ToNext() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.toNextLocked()
}

func (e *Experience) toNextLocked() int {
	if e.level >= e.curve.MaxLevel {
		return 0
	}
	return e.curve.Required(e.level + 1)
}

// Restore sets progress loaded from storage.
func (e *Experience) Restore(level, exp int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.level = min(max(level, 1), e.curve.MaxLevel)
	e.exp = max(0, exp)
	if need := e.toNextLocked(); need == 0 {
		e.exp = 0
	} else {
		e.exp = min(e.exp, need-1)
	}
}

// Award adds experience, leveling up as many times as it covers.
func (e *Experience) Award(amount int, reason string) {
	if amount <= 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.total += amount
	remaining := amount
	for remaining > 0 {
		need := e.toNextLocked()
		if need == 0 {
			e.exp = 0
			break
		}
		step := min(need-e.exp, remaining)
		e.exp += step
		remaining -= step

		if e.exp >= need {
			e.level++
			e.exp = 0
			slog.Info("level up", "level", e.level, "reason", reason)
		}
	}

	slog.Debug("experience awarded",
		"amount", amount,
		"reason", reason,
		"level", e.level,
		"exp", e.exp)
}
