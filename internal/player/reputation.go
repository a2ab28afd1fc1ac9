package player

import "sync"

// Reputation — репутация игрока в пределах [min, max].
type Reputation struct {
	mu       sync.Mutex
	value    int
	min, max int
}

// NewReputation создаёт репутацию. Стартовое значение обрезается границами.
func NewReputation(start, lo, hi int) *Reputation {
	if lo > hi {
		lo, hi = hi, lo
	}
	return &Reputation{value: min(max(start, lo), hi), min: lo, max: hi}
}

// Value возвращает текущее значение.
func (r *Reputation) Value() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Adjust прибавляет delta и возвращает новое значение.
func (r *Reputation) Adjust(delta int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.value = min(max(r.value+delta, r.min), r.max)
	return r.value
}
