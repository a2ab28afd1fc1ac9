package world

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/udisondev/frontdesk/internal/model"
)

// ErrDuplicateVisitor is returned when a visitor ID is registered twice.
var ErrDuplicateVisitor = errors.New("visitor already registered")

// Registry is the process-wide collection of live visitors,
// indexed by ID and role. Updated on spawn and despawn.
//
// Passed explicitly to the spawner and proximity monitor; there is no
// global instance.
type Registry struct {
	mu        sync.RWMutex
	visitors map[uint32]*model.Visitor
	byRole   map[model.Role]map[uint32]*model.Visitor

	count atomic.Int32 // cached count (O(1) access)
}

// NewRegistry creates empty registry
func NewRegistry() *Registry {
	return &Registry{
		visitors: make(map[uint32]*model.Visitor),
		byRole:   make(map[model.Role]map[uint32]*model.Visitor),
	}
}

// Add registers visitor in all indexes.
func (r *Registry) Add(v *model.Visitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.visitors[v.ID()]; ok {
		return fmt.Errorf("visitor %d: %w", v.ID(), ErrDuplicateVisitor)
	}

	r.visitors[v.ID()] = v

	if r.byRole[v.Role()] == nil {
		r.byRole[v.Role()] = make(map[uint32]*model.Visitor)
	}
	r.byRole[v.Role()][v.ID()] = v

	r.count.Add(1)
	return nil
}

// Remove deregisters visitor. Returns false if it was not registered.
func (r *Registry) Remove(id uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.visitors[id]
	if !ok {
		return false
	}

	delete(r.visitors, id)
	delete(r.byRole[v.Role()], id)

	r.count.Add(-1)
	return true
}

// Get returns visitor by ID
func (r *Registry) Get(id uint32) (*model.Visitor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.visitors[id]
	return v, ok
}

// Count returns number of registered visitors (O(1) cached count)
func (r *Registry) Count() int {
	return int(r.count.Load())
}

// All returns visitors sorted by ID.
// Deterministic order matters for reproducible simulation runs.
func (r *Registry) All() []*model.Visitor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedValues(r.visitors)
}

// ActiveWithRole counts visitors of role that are not finished yet.
func (r *Registry) ActiveWithRole(role model.Role) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, v := range r.byRole[role] {
		if v.State() != model.StateFinished {
			n++
		}
	}
	return n
}

// Snapshots returns diagnostic copies of all visitors.
func (r *Registry) Snapshots() []model.Snapshot {
	all := r.All()
	out := make([]model.Snapshot, len(all))
	for i, v := range all {
		out[i] = v.Snapshot()
	}
	return out
}

func sortedValues(m map[uint32]*model.Visitor) []*model.Visitor {
	out := make([]*model.Visitor, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b *model.Visitor) int {
		return cmp.Compare(a.ID(), b.ID())
	})
	return out
}
