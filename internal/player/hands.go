package player

import (
	"log/slog"
	"sync"

	"github.com/udisondev/frontdesk/internal/model"
)

// Hands — инвентарь игрока на один предмет.
type Hands struct {
	mu   sync.RWMutex
	item *model.Item
}

// NewHands создаёт пустые руки.
func NewHands() *Hands {
	return &Hands{}
}

// HasItem сообщает, занят ли слот.
func (h *Hands) HasItem() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.item != nil
}

// CurrentItem возвращает предмет в руках (nil если пусто).
func (h *Hands) CurrentItem() *model.Item {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.item
}

// AddItem кладёт предмет. Возвращает false, если руки заняты.
func (h *Hands) AddItem(item *model.Item) bool {
	if item == nil {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.item != nil {
		return false
	}
	h.item = item

	slog.Debug("item picked up", "itemID", item.ID(), "name", item.Name())
	return true
}

// RemoveItem забирает предмет из рук.
func (h *Hands) RemoveItem() *model.Item {
	h.mu.Lock()
	defer h.mu.Unlock()

	item := h.item
	h.item = nil
	return item
}
