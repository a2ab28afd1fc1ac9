package spawn

import (
	"fmt"
	"math/rand/v2"

	"github.com/udisondev/frontdesk/internal/config"
	"github.com/udisondev/frontdesk/internal/model"
)

// Catalog holds items visitors bring in or ask about.
type Catalog struct {
	items      []*model.Item
	byID       map[int32]*model.Item
	fictitious []config.Item
}

// NewCatalog builds catalog from config entries.
// Fictitious entries are only names and descriptions a searcher may claim.
func NewCatalog(entries, fictitious []config.Item) (*Catalog, error) {
	c := &Catalog{
		items:      make([]*model.Item, 0, len(entries)),
		byID:       make(map[int32]*model.Item, len(entries)),
		fictitious: fictitious,
	}

	for _, e := range entries {
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("catalog item %d: duplicate id", e.ID)
		}
		item, err := model.NewItem(e.ID, e.Name, e.Description, e.Contraband)
		if err != nil {
			return nil, fmt.Errorf("catalog item %d: %w", e.ID, err)
		}
		c.items = append(c.items, item)
		c.byID[e.ID] = item
	}

	return c, nil
}

// Len returns number of real items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Get returns item by ID.
func (c *Catalog) Get(id int32) (*model.Item, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Random returns a random real item, nil for an empty catalog.
func (c *Catalog) Random(rng *rand.Rand) *model.Item {
	if len(c.items) == 0 {
		return nil
	}
	return c.items[rng.IntN(len(c.items))]
}

// Wanted picks what a searcher asks for. With canLie a searcher may ask
// for an item that does not exist; half of the draws lie when
// fictitious entries are configured.
func (c *Catalog) Wanted(rng *rand.Rand, canLie bool) (*model.WantedItem, bool) {
	detail := model.DetailLevel(rng.IntN(3))

	if canLie && len(c.fictitious) > 0 && (len(c.items) == 0 || rng.IntN(2) == 0) {
		f := c.fictitious[rng.IntN(len(c.fictitious))]
		return &model.WantedItem{Name: f.Name, Description: f.Description, Detail: detail}, true
	}

	item := c.Random(rng)
	if item == nil {
		return nil, false
	}
	return &model.WantedItem{
		Name:        item.Name(),
		Description: item.Description(),
		Detail:      detail,
		Real:        true,
	}, true
}
