package player

import "sync"

// Wallet хранит баланс игрока. Баланс не уходит ниже нуля.
type Wallet struct {
	mu      sync.Mutex
	balance int64
}

// NewWallet создаёт кошелёк со стартовым балансом.
func NewWallet(starting int64) *Wallet {
	return &Wallet{balance: max(0, starting)}
}

// Balance возвращает текущий баланс.
func (w *Wallet) Balance() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

// Adjust меняет баланс на amount (штраф — отрицательный).
// Результат обрезается нулём. Возвращает новый баланс.
func (w *Wallet) Adjust(amount int64) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.balance = max(0, w.balance+amount)
	return w.balance
}
