package ai

import (
	"log/slog"

	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

// patronRole brings a found item and hands it over if the player accepts.
type patronRole struct {
	tree *dialog.Tree
}

func (r *patronRole) Kind() model.Role   { return model.RolePatron }
func (r *patronRole) Tree() *dialog.Tree { return r.tree }

func (r *patronRole) StartNode(*model.Visitor) dialog.Node {
	return r.tree.Start()
}

func (r *patronRole) PanelData(v *model.Visitor, _ dialog.Node, _ *Deps) map[string]any {
	data := map[string]any{"item": "", "itemDescription": ""}
	if item := v.HeldItem(); item != nil {
		data["item"] = item.Name()
		data["itemDescription"] = item.Description()
	}
	return data
}

func (r *patronRole) Complete(v *model.Visitor, _ *dialog.Session, step dialog.Step, d *Deps) Outcome {
	out := Outcome{Farewell: dialog.NodeRefuse}
	item := v.HeldItem()
	if item != nil {
		out.Item = item.Name()
	}

	if step.Choice != dialog.ChoiceAccept {
		out.Note = "rejected"
		return out
	}

	switch {
	case item == nil:
		out.Note = "nothing_to_give"
	case d.Inventory.HasItem():
		// hands full: patron leaves with the item
		out.Note = "hands_full"
		slog.Info("patron item refused, player hands are full",
			"visitorID", v.ID(),
			"item", item.Name())
	case !d.Inventory.AddItem(item):
		out.Note = "inventory_rejected"
	default:
		v.SetHeldItem(nil)
		out.ItemGiven = true
		out.Farewell = dialog.NodeAccepted
		out.Exp = award(d, d.Rewards.PatronAcceptExp, "patron_accept")
	}
	return out
}
