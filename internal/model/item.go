package model

import (
	"fmt"
	"strings"
)

// Item is a catalog item a patron can bring or a player can hold.
// Immutable after creation.
type Item struct {
	id          int32
	name        string
	description string
	contraband  bool
}

// NewItem creates item with validation.
func NewItem(id int32, name, description string, contraband bool) (*Item, error) {
	if name == "" {
		return nil, fmt.Errorf("item %d: empty name", id)
	}
	return &Item{
		id:          id,
		name:        name,
		description: description,
		contraband:  contraband,
	}, nil
}

// ID returns catalog ID
func (i *Item) ID() int32 {
	return i.id
}

// Name returns item name
func (i *Item) Name() string {
	return i.name
}

// Description returns full description
func (i *Item) Description() string {
	return i.description
}

// IsContraband reports whether officers confiscate the item.
func (i *Item) IsContraband() bool {
	return i.contraband
}

// DetailLevel controls how much of the description a searcher tells.
type DetailLevel int32

const (
	DetailFull DetailLevel = iota
	DetailHalf
	DetailBrief
)

// String returns human-readable detail level
func (d DetailLevel) String() string {
	switch d {
	case DetailFull:
		return "full"
	case DetailHalf:
		return "half"
	case DetailBrief:
		return "brief"
	default:
		return "unknown"
	}
}

// Apply shortens description according to level.
// Half keeps the first half of runes plus ellipsis, Brief keeps at most two sentences.
func (d DetailLevel) Apply(description string) string {
	switch d {
	case DetailHalf:
		r := []rune(description)
		return string(r[:len(r)/2]) + "..."
	case DetailBrief:
		sentences := strings.Split(description, ".")
		if len(sentences) >= 2 && strings.TrimSpace(sentences[1]) != "" {
			return strings.TrimSpace(sentences[0]) + ". " + strings.TrimSpace(sentences[1]) + "."
		}
		return strings.TrimSpace(sentences[0]) + "."
	default:
		return description
	}
}

// WantedItem is what a searcher claims to have lost.
// Real is false when the searcher lies about a nonexistent item.
type WantedItem struct {
	Name        string
	Description string
	Detail      DetailLevel
	Real        bool
}

// Told returns description as the searcher tells it.
func (w *WantedItem) Told() string {
	return w.Detail.Apply(w.Description)
}
