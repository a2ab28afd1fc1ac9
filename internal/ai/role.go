package ai

import (
	"fmt"

	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

// Role supplies what differs between visitor kinds: the dialog tree,
// the panel data and terminal side effects. The travel, queue and exit
// skeleton is shared in VisitorAI.
type Role interface {
	Kind() model.Role
	Tree() *dialog.Tree

	// StartNode returns the node a fresh session opens at.
	StartNode(v *model.Visitor) dialog.Node

	// PanelData returns template data for node.
	PanelData(v *model.Visitor, node dialog.Node, d *Deps) map[string]any

	// Complete applies terminal side effects. Called exactly once per
	// terminal transition, never on interrupt.
	Complete(v *model.Visitor, s *dialog.Session, step dialog.Step, d *Deps) Outcome
}

// RoleFor returns strategy for role kind.
func RoleFor(kind model.Role) (Role, error) {
	tree, err := dialog.TreeFor(kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case model.RolePatron:
		return &patronRole{tree: tree}, nil
	case model.RoleSearcher:
		return &searcherRole{tree: tree}, nil
	case model.RoleOfficer:
		return &officerRole{tree: tree}, nil
	default:
		return nil, fmt.Errorf("no strategy for role %s", kind)
	}
}

// inventoryFacts answers dialog guards from the player's hands.
type inventoryFacts struct {
	inv Inventory
}

func (f inventoryFacts) Holds(c dialog.Condition) bool {
	if f.inv == nil {
		return false
	}
	switch c {
	case dialog.Always:
		return true
	case dialog.PlayerHoldsItem:
		return f.inv.HasItem()
	case dialog.PlayerHoldsContraband:
		item := f.inv.CurrentItem()
		return item != nil && item.IsContraband()
	default:
		return false
	}
}

func playerItemName(d *Deps) string {
	if d.Inventory == nil {
		return ""
	}
	if item := d.Inventory.CurrentItem(); item != nil {
		return item.Name()
	}
	return ""
}

func award(d *Deps, amount int, reason string) int {
	if d.Experience == nil || amount <= 0 {
		return 0
	}
	d.Experience.Award(amount, reason)
	return amount
}
