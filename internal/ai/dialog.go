package ai

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/frontdesk/internal/dialog"
	"github.com/udisondev/frontdesk/internal/model"
)

// ErrNoSession is returned by dialog operations on a visitor without a session.
var ErrNoSession = errors.New("visitor has no dialog session")

// CanOpenDialog reports whether OpenDialog would pass the state check.
func (a *VisitorAI) CanOpenDialog() bool {
	if a.session != nil && a.session.Interrupted() {
		return true
	}
	switch a.v.State() {
	case model.StateQueued:
		return true
	case model.StateIdle:
		return a.v.Role() == model.RoleSearcher && a.v.Searching()
	default:
		return false
	}
}

// OpenDialog starts talking to the visitor, or resumes an interrupted talk.
// Rejected while the player talks to someone else.
func (a *VisitorAI) OpenDialog(now time.Time) error {
	if a.session != nil && a.session.Interrupted() {
		return a.ResumeDialog(now)
	}
	if !a.CanOpenDialog() {
		return fmt.Errorf("visitor %d open dialog from %s: %w", a.v.ID(), a.v.State(), ErrInvalidTransition)
	}

	session, err := dialog.NewSession(a.v.ID(), a.role.Tree(), a.role.StartNode(a.v), a.v.State())
	if err != nil {
		return fmt.Errorf("opening dialog: %w", err)
	}
	if err := a.deps.Desk.Acquire(a.v.ID()); err != nil {
		return err
	}

	a.session = session
	a.setState(now, model.StateInDialog)
	a.hold(model.HoldDialog, true)
	a.show(now)

	slog.Info("dialog opened",
		"visitorID", a.v.ID(),
		"role", a.v.Role(),
		"node", session.Current())
	return nil
}

// AvailableChoices returns choices at the displayed node, or nil outside dialog.
func (a *VisitorAI) AvailableChoices() []dialog.Choice {
	if a.session == nil || a.session.Interrupted() || a.v.State() != model.StateInDialog {
		return nil
	}
	return a.session.Choices()
}

// Advance applies a player choice.
// Terminal transitions apply role side effects exactly once.
func (a *VisitorAI) Advance(now time.Time, choice dialog.Choice) (dialog.Step, error) {
	if a.v.State() != model.StateInDialog || a.session == nil {
		return dialog.Step{}, fmt.Errorf("visitor %d advance from %s: %w", a.v.ID(), a.v.State(), ErrInvalidTransition)
	}

	step, err := a.session.Advance(choice, inventoryFacts{inv: a.deps.Inventory})
	if err != nil {
		return dialog.Step{}, fmt.Errorf("advancing dialog: %w", err)
	}
	a.cancelAutoClose()

	if !step.Result.IsTerminal() {
		a.show(now)
		return step, nil
	}

	out := a.role.Complete(a.v, a.session, step, a.deps)
	out.At = now
	out.VisitorID = a.v.ID()
	out.Role = a.v.Role()
	out.Station = a.v.Station().Name()
	out.Node = step.From
	out.Choice = step.Choice
	out.Result = step.Result
	a.session = nil

	switch {
	case step.Result == dialog.ResultLoopBack:
		a.closeDialog()
		a.v.SetSearching(true)
		a.setState(now, model.StateQueued)
	case out.Farewell != "":
		a.settle(now)
		a.sayFarewell(now, out.Farewell)
	default:
		a.closeDialog()
		a.finish(now)
	}

	a.deps.outcome(out)
	slog.Info("dialog finished",
		"visitorID", a.v.ID(),
		"role", a.v.Role(),
		"node", step.From,
		"choice", step.Choice,
		"result", step.Result,
		"note", out.Note)
	return step, nil
}

// InterruptDialog pauses the dialog: node is kept, no side effects run,
// movement hold and desk are released. Repeated calls are no-ops.
//
// During a farewell the visitor is already Finished: interrupting just
// takes the closing line down and lets the visitor leave.
func (a *VisitorAI) InterruptDialog(now time.Time) error {
	if a.farewell {
		a.wait = nil
		a.endFarewell(now)
		slog.Info("farewell cut short", "visitorID", a.v.ID())
		return nil
	}
	if a.session == nil {
		return fmt.Errorf("visitor %d: %w", a.v.ID(), ErrNoSession)
	}
	if !a.session.Interrupt() {
		return nil
	}

	a.cancelAutoClose()
	a.closeDialog()
	a.setState(now, a.session.EntryState())

	a.deps.emit(Event{At: now, VisitorID: a.v.ID(), Role: a.v.Role().String(), Kind: EventInterrupted, State: a.v.State(), Node: a.session.Current()})
	slog.Info("dialog interrupted",
		"visitorID", a.v.ID(),
		"node", a.session.Current())
	return nil
}

// ResumeDialog re-displays the node shown when the dialog was interrupted.
func (a *VisitorAI) ResumeDialog(now time.Time) error {
	if a.session == nil {
		return fmt.Errorf("visitor %d: %w", a.v.ID(), ErrNoSession)
	}
	if !a.session.Interrupted() {
		return fmt.Errorf("visitor %d: %w", a.v.ID(), dialog.ErrNotInterrupted)
	}
	if err := a.deps.Desk.Acquire(a.v.ID()); err != nil {
		return err
	}
	if err := a.session.Resume(); err != nil {
		a.deps.Desk.Release(a.v.ID())
		return fmt.Errorf("resuming dialog: %w", err)
	}

	a.setState(now, model.StateInDialog)
	a.hold(model.HoldDialog, true)
	a.show(now)

	a.deps.emit(Event{At: now, VisitorID: a.v.ID(), Role: a.v.Role().String(), Kind: EventResumed, State: model.StateInDialog, Node: a.session.Current()})
	return nil
}

// show displays the session's current node and arms its auto-close.
func (a *VisitorAI) show(now time.Time) {
	node := a.session.Current()
	a.showNode(now, node)

	choice, ok := a.session.Tree().AutoChoice(node)
	if !ok {
		return
	}
	a.autoClose = true
	a.after(now, a.deps.Tuning.FarewellDelay, func(now time.Time) {
		a.autoClose = false
		if a.session == nil || a.session.Interrupted() || a.session.Current() != node {
			return
		}
		if _, err := a.Advance(now, choice); err != nil {
			slog.Warn("dialog auto-close failed", "visitorID", a.v.ID(), "node", node, "error", err)
		}
	})
}

func (a *VisitorAI) showNode(now time.Time, node dialog.Node) {
	text, err := a.deps.Texts.Text(a.v.Role(), node, a.role.PanelData(a.v, node, a.deps))
	if err != nil {
		slog.Warn("panel text failed", "visitorID", a.v.ID(), "node", node, "error", err)
		text = "[" + string(node) + "]"
	}
	a.deps.Renderer.ShowNode(a.v.ID(), node, text)
	a.deps.emit(Event{At: now, VisitorID: a.v.ID(), Role: a.v.Role().String(), Kind: EventNode, State: a.v.State(), Node: node})
}

func (a *VisitorAI) cancelAutoClose() {
	if a.autoClose {
		a.autoClose = false
		a.wait = nil
	}
}

// sayFarewell keeps the panel up with the closing line for FarewellDelay.
// The desk stays taken and the visitor stands still until it closes.
func (a *VisitorAI) sayFarewell(now time.Time, node dialog.Node) {
	a.farewell = true
	a.showNode(now, node)
	a.after(now, a.deps.Tuning.FarewellDelay, a.endFarewell)
}

func (a *VisitorAI) endFarewell(now time.Time) {
	a.farewell = false
	a.closeDialog()
	a.depart(now)
}

// InFarewell reports whether the visitor's closing line is still on screen.
func (a *VisitorAI) InFarewell() bool {
	return a.farewell
}

// closeDialog undoes what opening did: panel, desk, movement hold.
func (a *VisitorAI) closeDialog() {
	a.deps.Renderer.Hide(a.v.ID())
	a.deps.Desk.Release(a.v.ID())
	a.hold(model.HoldDialog, false)
}
