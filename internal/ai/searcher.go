package ai

import (
	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

// searcherRole asks for a lost item. The item may not exist at all.
// "Search" sends the visitor back to the queue; on the next talk it opens
// at the question node.
type searcherRole struct {
	tree *dialog.Tree
}

func (r *searcherRole) Kind() model.Role   { return model.RoleSearcher }
func (r *searcherRole) Tree() *dialog.Tree { return r.tree }

func (r *searcherRole) StartNode(v *model.Visitor) dialog.Node {
	if v.Searching() {
		return dialog.NodeQuestion
	}
	return r.tree.Start()
}

func (r *searcherRole) PanelData(v *model.Visitor, _ dialog.Node, _ *Deps) map[string]any {
	data := map[string]any{"item": "", "detail": ""}
	if w := v.WantedItem(); w != nil {
		data["item"] = w.Name
		data["detail"] = w.Told()
	}
	return data
}

func (r *searcherRole) Complete(v *model.Visitor, _ *dialog.Session, step dialog.Step, d *Deps) Outcome {
	out := Outcome{}
	wanted := v.WantedItem()
	if wanted != nil {
		out.Item = wanted.Name
	}

	if step.Result == dialog.ResultLoopBack {
		out.Note = "searching"
		return out
	}
	if step.Choice != dialog.ChoiceFound {
		out.Note = "declined"
		return out
	}

	given := d.Inventory.RemoveItem()
	if given == nil {
		out.Note = "nothing_given"
		return out
	}
	out.ItemTaken = true
	out.Item = given.Name()

	if wanted == nil || !wanted.Real || wanted.Name != given.Name() {
		// a liar takes whatever is handed over and pays nothing
		out.Note = "wrong_item"
		return out
	}

	out.Exp = award(d, d.Rewards.SearcherReturnExp, "searcher_return")
	if d.Wallet != nil && d.Rewards.SearcherReturnMoney > 0 {
		d.Wallet.Adjust(d.Rewards.SearcherReturnMoney)
		out.Money = d.Rewards.SearcherReturnMoney
	}
	return out
}
