package ai

import (
	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

// officerRole checks contraband the player reports.
// Confiscation raises reputation; a false alarm costs a fine.
type officerRole struct {
	tree *dialog.Tree
}

func (r *officerRole) Kind() model.Role   { return model.RoleOfficer }
func (r *officerRole) Tree() *dialog.Tree { return r.tree }

func (r *officerRole) StartNode(*model.Visitor) dialog.Node {
	return r.tree.Start()
}

func (r *officerRole) PanelData(_ *model.Visitor, _ dialog.Node, d *Deps) map[string]any {
	return map[string]any{"item": playerItemName(d)}
}

func (r *officerRole) Complete(_ *model.Visitor, s *dialog.Session, step dialog.Step, d *Deps) Outcome {
	out := Outcome{}

	switch step.From {
	case dialog.NodePanel4:
		item := d.Inventory.RemoveItem()
		if item == nil {
			out.Note = "nothing_to_confiscate"
			return out
		}
		out.Item = item.Name()
		out.ItemTaken = true
		if d.Reputation != nil && d.Rewards.ContrabandReputation != 0 {
			d.Reputation.Adjust(d.Rewards.ContrabandReputation)
			out.ReputationDelta = d.Rewards.ContrabandReputation
		}
		out.Exp = award(d, d.Rewards.OfficerContrabandExp, "officer_contraband")
		out.Note = "confiscated"

	case dialog.NodePanel6:
		if s.Took(dialog.ChoiceFalseAlarm) && d.Wallet != nil && d.Rewards.FalseCallFine > 0 {
			d.Wallet.Adjust(-d.Rewards.FalseCallFine)
			out.Money = -d.Rewards.FalseCallFine
			out.Note = "false_call"
			return out
		}
		out.Note = "dismissed"
	}
	return out
}
