package dialog

import (
	"fmt"

	"github.com/udisondev/frontdesk/internal/model"
)

// Node identifies a dialog panel. Names double as template file names.
type Node string

const (
	NodeGreeting Node = "greeting"
	NodeDetail   Node = "detail"
	NodeQuestion Node = "question"
	NodeRefuse   Node = "refuse"
	NodeAccepted Node = "accepted" // patron farewell after a handover

	NodePanel1 Node = "panel1" // initial officer question
	NodePanel2 Node = "panel2" // bring the contraband
	NodePanel3 Node = "panel3" // did you bring the item
	NodePanel4 Node = "panel4" // confiscated
	NodePanel5 Node = "panel5" // nothing found
	NodePanel6 Node = "panel6" // closing remark
)

// Choice is a player button.
type Choice string

const (
	ChoiceAccept     Choice = "accept"
	ChoiceReject     Choice = "reject"
	ChoiceTellMore   Choice = "tell_more"
	ChoiceCannotHelp Choice = "cannot_help"
	ChoiceSearch     Choice = "search"
	ChoiceRefuse     Choice = "refuse"
	ChoiceFound      Choice = "found"
	ChoiceNotFound   Choice = "not_found"
	ChoiceClose      Choice = "close"

	ChoiceHasContraband Choice = "has_contraband"
	ChoiceFalseAlarm    Choice = "false_alarm"
	ChoiceOkay          Choice = "okay"
	ChoiceHandOver      Choice = "hand_over"
	ChoiceMistaken      Choice = "mistaken"
	ChoiceBringAnother  Choice = "bring_another"
	ChoiceNoMore        Choice = "no_more"
)

// Result tells the visitor what a transition means for its lifecycle.
type Result int32

const (
	// ResultContinue - show next node, stay in dialog
	ResultContinue Result = iota
	// ResultFinish - terminal: visitor is done and leaves
	ResultFinish
	// ResultLoopBack - terminal: visitor goes back to waiting at the station
	ResultLoopBack
)

// String returns human-readable result name
func (r Result) String() string {
	switch r {
	case ResultContinue:
		return "continue"
	case ResultFinish:
		return "finish"
	case ResultLoopBack:
		return "loop_back"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the transition ends the session.
func (r Result) IsTerminal() bool {
	return r == ResultFinish || r == ResultLoopBack
}

// Condition guards an edge. Evaluated against Facts at Advance time.
type Condition int32

const (
	Always Condition = iota
	// PlayerHoldsItem - player has something in hands
	PlayerHoldsItem
	// PlayerHoldsContraband - player's item is contraband
	PlayerHoldsContraband
)

// Facts answers guard conditions. Implemented by the visitor AI
// on top of the player inventory.
type Facts interface {
	Holds(c Condition) bool
}

// Edge is one transition out of a node.
// When the guard fails the edge goes to Otherwise (continue),
// or the choice is unavailable if Otherwise is empty.
type Edge struct {
	Next      Node
	Result    Result
	When      Condition
	Otherwise Node
}

type transition struct {
	choice Choice
	edge   Edge
}

// Tree is a role's dialog transition table.
type Tree struct {
	role   model.Role
	start  Node
	nodes  map[Node][]transition // ordered choices per node
	closes map[Node]Choice       // picked by itself when nobody answers
}

func newTree(role model.Role, start Node) *Tree {
	return &Tree{
		role:   role,
		start:  start,
		nodes:  make(map[Node][]transition),
		closes: make(map[Node]Choice),
	}
}

func (t *Tree) node(n Node) *Tree {
	if _, ok := t.nodes[n]; !ok {
		t.nodes[n] = nil
	}
	return t
}

func (t *Tree) on(from Node, choice Choice, edge Edge) *Tree {
	t.nodes[from] = append(t.nodes[from], transition{choice: choice, edge: edge})
	return t
}

func (t *Tree) closeBy(n Node, choice Choice) *Tree {
	t.closes[n] = choice
	return t
}

// Role returns tree owner role
func (t *Tree) Role() model.Role {
	return t.role
}

// Start returns the greeting node.
func (t *Tree) Start() Node {
	return t.start
}

// Has reports whether node belongs to the tree.
func (t *Tree) Has(n Node) bool {
	_, ok := t.nodes[n]
	return ok
}

// Lookup returns edge for (node, choice).
func (t *Tree) Lookup(from Node, choice Choice) (Edge, bool) {
	for _, tr := range t.nodes[from] {
		if tr.choice == choice {
			return tr.edge, true
		}
	}
	return Edge{}, false
}

// Choices returns the node's choices in display order.
func (t *Tree) Choices(n Node) []Choice {
	trs := t.nodes[n]
	out := make([]Choice, len(trs))
	for i, tr := range trs {
		out[i] = tr.choice
	}
	return out
}

// AutoChoice returns the choice applied to node n once it has been on
// screen for the farewell delay.
func (t *Tree) AutoChoice(n Node) (Choice, bool) {
	c, ok := t.closes[n]
	return c, ok
}

// Validate checks that every edge points to a known node.
func (t *Tree) Validate() error {
	if !t.Has(t.start) {
		return fmt.Errorf("%s tree: start node %q missing", t.role, t.start)
	}
	for from, trs := range t.nodes {
		for _, tr := range trs {
			e := tr.edge
			if e.Result == ResultContinue && !t.Has(e.Next) {
				return fmt.Errorf("%s tree: %s/%s -> unknown node %q", t.role, from, tr.choice, e.Next)
			}
			if e.Otherwise != "" && !t.Has(e.Otherwise) {
				return fmt.Errorf("%s tree: %s/%s otherwise -> unknown node %q", t.role, from, tr.choice, e.Otherwise)
			}
		}
	}
	for n, c := range t.closes {
		if _, ok := t.Lookup(n, c); !ok {
			return fmt.Errorf("%s tree: %s closes by %s which it does not offer", t.role, n, c)
		}
	}
	return nil
}

var (
	patronTree   = buildPatronTree()
	searcherTree = buildSearcherTree()
	officerTree  = buildOfficerTree()
)

// TreeFor returns the transition table for role.
func TreeFor(role model.Role) (*Tree, error) {
	switch role {
	case model.RolePatron:
		return patronTree, nil
	case model.RoleSearcher:
		return searcherTree, nil
	case model.RoleOfficer:
		return officerTree, nil
	default:
		return nil, fmt.Errorf("no dialog tree for role %d", role)
	}
}

// Both patron answers are terminal. The closing line (NodeAccepted or
// NodeRefuse) is picked by the patron role after the handover and has no
// choices of its own.
func buildPatronTree() *Tree {
	return newTree(model.RolePatron, NodeGreeting).
		node(NodeGreeting).
		on(NodeGreeting, ChoiceAccept, Edge{Result: ResultFinish}).
		on(NodeGreeting, ChoiceReject, Edge{Result: ResultFinish}).
		node(NodeAccepted).
		node(NodeRefuse)
}

func buildSearcherTree() *Tree {
	return newTree(model.RoleSearcher, NodeGreeting).
		node(NodeGreeting).
		on(NodeGreeting, ChoiceTellMore, Edge{Next: NodeDetail}).
		on(NodeGreeting, ChoiceCannotHelp, Edge{Result: ResultFinish}).
		node(NodeDetail).
		on(NodeDetail, ChoiceSearch, Edge{Result: ResultLoopBack}).
		on(NodeDetail, ChoiceRefuse, Edge{Next: NodeRefuse}).
		node(NodeQuestion).
		on(NodeQuestion, ChoiceFound, Edge{Result: ResultFinish, When: PlayerHoldsItem}).
		on(NodeQuestion, ChoiceNotFound, Edge{Next: NodeRefuse}).
		node(NodeRefuse).
		on(NodeRefuse, ChoiceClose, Edge{Result: ResultFinish})
}

func buildOfficerTree() *Tree {
	return newTree(model.RoleOfficer, NodePanel1).
		node(NodePanel1).
		on(NodePanel1, ChoiceHasContraband, Edge{Next: NodePanel2}).
		on(NodePanel1, ChoiceFalseAlarm, Edge{Next: NodePanel6}).
		node(NodePanel2).
		on(NodePanel2, ChoiceOkay, Edge{Next: NodePanel3}).
		node(NodePanel3).
		on(NodePanel3, ChoiceHandOver, Edge{Next: NodePanel4, When: PlayerHoldsContraband, Otherwise: NodePanel5}).
		on(NodePanel3, ChoiceMistaken, Edge{Next: NodePanel6}).
		node(NodePanel4).
		on(NodePanel4, ChoiceClose, Edge{Result: ResultFinish}).
		node(NodePanel5).
		on(NodePanel5, ChoiceBringAnother, Edge{Next: NodePanel3}).
		on(NodePanel5, ChoiceNoMore, Edge{Next: NodePanel6}).
		node(NodePanel6).
		on(NodePanel6, ChoiceClose, Edge{Result: ResultFinish}).
		closeBy(NodePanel6, ChoiceClose)
}
