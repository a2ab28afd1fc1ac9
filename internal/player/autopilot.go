package player

import (
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/udisondev/frontdesk/internal/ai"
	"github.com/udisondev/frontdesk/internal/config"
	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

// OfficerCaller is the police call button.
type OfficerCaller interface {
	CallOfficer(now time.Time) (*ai.VisitorAI, error)
}

// Autopilot plays the desk in headless runs: it talks to the visitor at
// the front of each queue, stores found items on the shelf, brings them
// back to searchers and contraband to officers. Now and then it walks
// away mid-dialog and comes back, exercising interrupt and resume.
type Autopilot struct {
	cfg      config.Autopilot
	player   *Player
	shelf    *Shelf
	ticks    *ai.TickManager
	stations []*model.Station
	caller   OfficerCaller
	rng      *rand.Rand

	nextActAt  time.Time
	nextCallAt time.Time

	current     uint32
	talking     bool
	interrupted map[uint32]bool // visitors already interrupted once
}

// NewAutopilot creates autopilot. Stations shared by several roles may
// be passed once or many times.
func NewAutopilot(
	cfg config.Autopilot,
	p *Player,
	shelf *Shelf,
	ticks *ai.TickManager,
	stations []*model.Station,
	caller OfficerCaller,
	rng *rand.Rand,
) *Autopilot {
	var uniq []*model.Station
	for _, st := range stations {
		if !slices.Contains(uniq, st) {
			uniq = append(uniq, st)
		}
	}
	return &Autopilot{
		cfg:         cfg,
		player:      p,
		shelf:       shelf,
		ticks:       ticks,
		stations:    uniq,
		caller:      caller,
		rng:         rng,
		interrupted: make(map[uint32]bool),
	}
}

// Talking returns the visitor the autopilot is talking to.
func (ap *Autopilot) Talking() (uint32, bool) {
	return ap.current, ap.talking
}

// Tick makes at most one decision per think delay.
func (ap *Autopilot) Tick(now time.Time) {
	if !ap.cfg.Enabled {
		return
	}
	ap.maybeCallOfficer(now)

	if now.Before(ap.nextActAt) {
		return
	}
	ap.nextActAt = now.Add(ap.cfg.ThinkDelay)

	if ap.talking && ap.continueDialog(now) {
		return
	}
	ap.stash()
	ap.openNext(now)
}

func (ap *Autopilot) maybeCallOfficer(now time.Time) {
	if ap.cfg.CallOfficerEvery <= 0 || ap.caller == nil {
		return
	}
	if ap.nextCallAt.IsZero() {
		ap.nextCallAt = now.Add(ap.cfg.CallOfficerEvery)
		return
	}
	if now.Before(ap.nextCallAt) {
		return
	}
	ap.nextCallAt = now.Add(ap.cfg.CallOfficerEvery)

	if _, err := ap.caller.CallOfficer(now); err != nil {
		slog.Info("officer call rejected", "error", err)
	}
}

// stash moves whatever the player holds onto the shelf.
func (ap *Autopilot) stash() {
	hands := ap.player.Hands
	if !hands.HasItem() {
		return
	}
	item := hands.RemoveItem()
	if !ap.shelf.Put(item) {
		// shelf full: keep it in hands
		hands.AddItem(item)
		return
	}
	slog.Debug("item stored on shelf", "name", item.Name(), "shelf", ap.shelf.Len())
}

// openNext opens a dialog with the first visitor waiting in any queue.
func (ap *Autopilot) openNext(now time.Time) {
	for _, st := range ap.stations {
		for _, id := range st.QueuedIDs() {
			a, ok := ap.ticks.Visitor(id)
			if !ok || a.State() != model.StateQueued || !a.CanOpenDialog() {
				continue
			}

			ap.prepare(a.Visitor())
			if err := a.OpenDialog(now); err != nil {
				slog.Debug("autopilot could not open dialog", "visitorID", id, "error", err)
				ap.stash()
				continue
			}
			ap.current, ap.talking = id, true
			return
		}
	}
}

// prepare takes from the shelf what the visitor is going to ask for.
func (ap *Autopilot) prepare(v *model.Visitor) {
	hands := ap.player.Hands
	if hands.HasItem() {
		return
	}

	var item *model.Item
	switch v.Role() {
	case model.RoleSearcher:
		if w := v.WantedItem(); w != nil && v.Searching() {
			item = ap.shelf.TakeByName(w.Name)
		}
	case model.RoleOfficer:
		item = ap.shelf.TakeContraband()
	}
	if item != nil {
		hands.AddItem(item)
	}
}

// continueDialog makes the next move in the current conversation.
// Returns false when the conversation is already over.
func (ap *Autopilot) continueDialog(now time.Time) bool {
	a, ok := ap.ticks.Visitor(ap.current)
	if !ok {
		ap.done()
		return false
	}

	session := a.Session()
	if session == nil {
		if a.InFarewell() {
			return true
		}
		ap.done()
		return false
	}

	if session.Interrupted() {
		if err := a.OpenDialog(now); err != nil {
			slog.Debug("autopilot could not resume dialog", "visitorID", a.ID(), "error", err)
		}
		return true
	}

	if !ap.interrupted[a.ID()] && ap.rng.Float64() < ap.cfg.InterruptChance {
		ap.interrupted[a.ID()] = true
		if err := a.InterruptDialog(now); err != nil {
			slog.Warn("autopilot interrupt failed", "visitorID", a.ID(), "error", err)
		}
		return true
	}

	choices := a.AvailableChoices()
	if len(choices) == 0 {
		ap.done()
		return false
	}

	choice := ap.decide(a.Visitor(), session.Current(), choices)
	if _, err := a.Advance(now, choice); err != nil {
		// guard failed (hands changed); take any other way out
		slog.Debug("autopilot choice rejected", "visitorID", a.ID(), "choice", choice, "error", err)
		for _, c := range choices {
			if c == choice {
				continue
			}
			if _, err := a.Advance(now, c); err == nil {
				break
			}
		}
	}

	if a.State() != model.StateInDialog && !a.InFarewell() {
		ap.done()
	}
	return true
}

func (ap *Autopilot) done() {
	delete(ap.interrupted, ap.current)
	ap.current, ap.talking = 0, false
}

// decide picks a choice for the displayed node.
func (ap *Autopilot) decide(v *model.Visitor, node dialog.Node, choices []dialog.Choice) dialog.Choice {
	hands := ap.player.Hands
	item := hands.CurrentItem()

	var want dialog.Choice
	switch node {
	case dialog.NodeGreeting:
		switch v.Role() {
		case model.RolePatron:
			want = dialog.ChoiceReject
			if item == nil {
				want = dialog.ChoiceAccept
			}
		case model.RoleSearcher:
			want = dialog.ChoiceTellMore
		}
	case dialog.NodeDetail:
		want = dialog.ChoiceSearch
	case dialog.NodeQuestion:
		want = dialog.ChoiceNotFound
		if w := v.WantedItem(); item != nil && w != nil && item.Name() == w.Name {
			want = dialog.ChoiceFound
		}
	case dialog.NodeRefuse, dialog.NodePanel4, dialog.NodePanel6:
		want = dialog.ChoiceClose
	case dialog.NodePanel1:
		want = dialog.ChoiceFalseAlarm
		if item != nil && item.IsContraband() {
			want = dialog.ChoiceHasContraband
		}
	case dialog.NodePanel2:
		want = dialog.ChoiceOkay
	case dialog.NodePanel3:
		want = dialog.ChoiceMistaken
		if item != nil {
			want = dialog.ChoiceHandOver
		}
	case dialog.NodePanel5:
		want = dialog.ChoiceNoMore
	}

	if slices.Contains(choices, want) {
		return want
	}
	return choices[0]
}
