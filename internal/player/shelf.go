package player

import (
	"strings"
	"sync"

	"github.com/udisondev/frontdesk/internal/model"
)

// Shelf — склад найденных вещей за стойкой.
type Shelf struct {
	mu       sync.Mutex
	items    []*model.Item
	capacity int // 0 = без ограничений
}

// NewShelf создаёт склад.
func NewShelf(capacity int) *Shelf {
	return &Shelf{capacity: max(0, capacity)}
}

// Put кладёт предмет на склад. Возвращает false, если места нет.
func (s *Shelf) Put(item *model.Item) bool {
	if item == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.capacity > 0 && len(s.items) >= s.capacity {
		return false
	}
	s.items = append(s.items, item)
	return true
}

// TakeByName забирает первый предмет с таким именем (без учёта регистра).
func (s *Shelf) TakeByName(name string) *model.Item {
	return s.take(func(it *model.Item) bool {
		return strings.EqualFold(it.Name(), name)
	})
}

// TakeContraband забирает первый запрещённый предмет.
func (s *Shelf) TakeContraband() *model.Item {
	return s.take((*model.Item).IsContraband)
}

func (s *Shelf) take(match func(*model.Item) bool) *model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, it := range s.items {
		if match(it) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return it
		}
	}
	return nil
}

// Len возвращает число предметов на складе.
func (s *Shelf) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
