package ai

import (
	"time"

	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

// Navigator moves visitors. The AI never computes a path itself.
type Navigator interface {
	// Place materializes visitor at point.
	Place(visitorID uint32, p model.Point)
	SetDestination(visitorID uint32, p model.Point)
	HasArrived(visitorID uint32, radius float64) bool
	RemainingDistance(visitorID uint32) float64
	HoldMovement(visitorID uint32, hold bool)
	Position(visitorID uint32) (model.Point, bool)
	// Remove forgets visitor after despawn.
	Remove(visitorID uint32)
}

// Renderer displays dialog panels. Pure sink.
type Renderer interface {
	ShowNode(visitorID uint32, node dialog.Node, text string)
	Hide(visitorID uint32)
}

// TextSource produces panel text for a node.
type TextSource interface {
	Text(role model.Role, node dialog.Node, data map[string]any) (string, error)
}

// Inventory is the player's hands: at most one item.
type Inventory interface {
	HasItem() bool
	CurrentItem() *model.Item
	AddItem(item *model.Item) bool
	RemoveItem() *model.Item
}

// Wallet adjusts player money. Returns new balance.
type Wallet interface {
	Adjust(amount int64) int64
}

// Reputation adjusts player reputation. Returns new value.
type Reputation interface {
	Adjust(delta int) int
}

// Experience awards experience points.
type Experience interface {
	Award(amount int, reason string)
}

// EventKind classifies journal events.
type EventKind string

const (
	EventSpawned     EventKind = "spawned"
	EventState       EventKind = "state"
	EventQueued      EventKind = "queued"
	EventNode        EventKind = "node"
	EventInterrupted EventKind = "interrupted"
	EventResumed     EventKind = "resumed"
	EventYield       EventKind = "yield"
	EventDespawned   EventKind = "despawned"
)

// Event is one observable change of a visitor.
type Event struct {
	At        time.Time            `json:"at"`
	VisitorID uint32               `json:"visitor_id"`
	Role      string               `json:"role"`
	Kind      EventKind            `json:"kind"`
	State     model.LifecycleState `json:"-"`
	StateName string               `json:"state,omitempty"`
	Node      dialog.Node          `json:"node,omitempty"`
	Slot      int                  `json:"slot,omitempty"`
	Yielded   bool                 `json:"yielded,omitempty"`
}

// EventSink receives visitor events.
type EventSink interface {
	RecordEvent(e Event)
}

// Outcome describes a terminal dialog transition and the effects it applied.
type Outcome struct {
	At              time.Time
	VisitorID       uint32
	Role            model.Role
	Station         string
	Node            dialog.Node
	Choice          dialog.Choice
	Result          dialog.Result
	Item            string
	ItemGiven       bool // player received item
	ItemTaken       bool // player lost item
	Exp             int
	Money           int64
	ReputationDelta int
	Note            string

	// Farewell is the closing line left on screen before the visitor
	// walks away. Empty closes the panel at once.
	Farewell dialog.Node
}

// OutcomeSink receives terminal outcomes.
type OutcomeSink interface {
	RecordOutcome(o Outcome)
}

// Tuning holds movement and timing parameters.
type Tuning struct {
	DoorArriveRadius    float64
	StationArriveRadius float64
	ArriveRadius        float64
	DespawnThreshold    float64
	QueueSettleRadius   float64
	DoorOpenDelay       time.Duration
	ExitDoorPause       time.Duration
	FarewellDelay       time.Duration
}

// DefaultTuning returns defaults matching the hall layout.
func DefaultTuning() Tuning {
	return Tuning{
		DoorArriveRadius:    0.6,
		StationArriveRadius: 2.5,
		ArriveRadius:        2.0,
		DespawnThreshold:    0.3,
		QueueSettleRadius:   0.3,
		DoorOpenDelay:       time.Second,
		ExitDoorPause:       500 * time.Millisecond,
		FarewellDelay:       2 * time.Second,
	}
}

// despawnSlack is added to the despawn radius so float jitter at the exit
// point does not keep a visitor alive.
const despawnSlack = 0.05

// despawnRadius returns distance to exit at which visitor is destroyed.
func (t Tuning) despawnRadius() float64 {
	return max(t.ArriveRadius, t.DespawnThreshold) + despawnSlack
}

// Rewards holds terminal side effect amounts.
type Rewards struct {
	PatronAcceptExp      int
	SearcherReturnExp    int
	OfficerContrabandExp int
	SearcherReturnMoney  int64
	ContrabandReputation int
	FalseCallFine        int64
}

// DefaultRewards returns default reward table.
func DefaultRewards() Rewards {
	return Rewards{
		PatronAcceptExp:      5,
		SearcherReturnExp:    10,
		OfficerContrabandExp: 15,
		SearcherReturnMoney:  100,
		ContrabandReputation: 10,
		FalseCallFine:        500,
	}
}

// Deps are the collaborators a visitor AI talks to.
// Shared by all visitors of a simulation.
type Deps struct {
	Nav        Navigator
	Renderer   Renderer
	Texts      TextSource
	Inventory  Inventory
	Wallet     Wallet
	Reputation Reputation
	Experience Experience
	Desk       *dialog.Desk

	Events   []EventSink
	Outcomes []OutcomeSink

	Tuning  Tuning
	Rewards Rewards
}

func (d *Deps) emit(e Event) {
	e.StateName = e.State.String()
	for _, s := range d.Events {
		s.RecordEvent(e)
	}
}

func (d *Deps) outcome(o Outcome) {
	for _, s := range d.Outcomes {
		s.RecordOutcome(o)
	}
}
