package dialog

import (
	"errors"
	"fmt"

	"github.com/udisondev/frontdesk/internal/model"
)

var (
	// ErrInvalidChoice is returned for a choice the current node does not offer.
	ErrInvalidChoice = errors.New("choice not offered at current node")
	// ErrChoiceUnavailable is returned when the choice guard fails and there is no fallback.
	ErrChoiceUnavailable = errors.New("choice unavailable")
	// ErrSessionInterrupted is returned by Advance on a paused session.
	ErrSessionInterrupted = errors.New("dialog session is interrupted")
	// ErrSessionClosed is returned after a terminal transition.
	ErrSessionClosed = errors.New("dialog session is closed")
	// ErrNotInterrupted is returned by Resume on a running session.
	ErrNotInterrupted = errors.New("dialog session is not interrupted")
)

// Step describes one applied transition.
type Step struct {
	From   Node
	Choice Choice
	To     Node // empty for terminal steps
	Result Result
}

// Session tracks which node is displayed for one visitor and whether the
// player walked away mid-conversation.
//
// Not safe for concurrent use: owned by the visitor AI on the tick goroutine.
type Session struct {
	visitorID   uint32
	tree        *Tree
	current     Node
	interrupted bool
	closed      bool
	entryState  model.LifecycleState
	taken       map[Choice]int
}

// NewSession creates session starting at node.
// entryState is the lifecycle state restored on interrupt.
func NewSession(visitorID uint32, tree *Tree, start Node, entryState model.LifecycleState) (*Session, error) {
	if !tree.Has(start) {
		return nil, fmt.Errorf("visitor %d: node %q not in %s tree", visitorID, start, tree.Role())
	}
	return &Session{
		visitorID:  visitorID,
		tree:       tree,
		current:    start,
		entryState: entryState,
		taken:      make(map[Choice]int),
	}, nil
}

// VisitorID returns owner visitor ID
func (s *Session) VisitorID() uint32 {
	return s.visitorID
}

// Tree returns transition table
func (s *Session) Tree() *Tree {
	return s.tree
}

// Current returns displayed node
func (s *Session) Current() Node {
	return s.current
}

// Interrupted reports whether the session is paused.
func (s *Session) Interrupted() bool {
	return s.interrupted
}

// Closed reports whether a terminal transition happened.
func (s *Session) Closed() bool {
	return s.closed
}

// EntryState returns lifecycle state before the dialog started.
func (s *Session) EntryState() model.LifecycleState {
	return s.entryState
}

// Took reports whether the player picked choice during this session.
func (s *Session) Took(c Choice) bool {
	return s.taken[c] > 0
}

// Choices returns choices offered at current node.
func (s *Session) Choices() []Choice {
	if s.closed {
		return nil
	}
	return s.tree.Choices(s.current)
}

// Advance applies the player's choice.
// On error the session is left unchanged.
func (s *Session) Advance(choice Choice, facts Facts) (Step, error) {
	switch {
	case s.closed:
		return Step{}, fmt.Errorf("visitor %d: %w", s.visitorID, ErrSessionClosed)
	case s.interrupted:
		return Step{}, fmt.Errorf("visitor %d: %w", s.visitorID, ErrSessionInterrupted)
	}

	edge, ok := s.tree.Lookup(s.current, choice)
	if !ok {
		return Step{}, fmt.Errorf("visitor %d node %s choice %s: %w", s.visitorID, s.current, choice, ErrInvalidChoice)
	}

	if edge.When != Always && (facts == nil || !facts.Holds(edge.When)) {
		if edge.Otherwise == "" {
			return Step{}, fmt.Errorf("visitor %d node %s choice %s: %w", s.visitorID, s.current, choice, ErrChoiceUnavailable)
		}
		edge = Edge{Next: edge.Otherwise, Result: ResultContinue}
	}

	step := Step{From: s.current, Choice: choice, Result: edge.Result}
	s.taken[choice]++

	if edge.Result.IsTerminal() {
		s.closed = true
		return step, nil
	}

	s.current = edge.Next
	step.To = edge.Next
	return step, nil
}

// Interrupt pauses the session. Returns false if it was already paused.
// Current node is kept.
func (s *Session) Interrupt() bool {
	if s.interrupted || s.closed {
		return false
	}
	s.interrupted = true
	return true
}

// Resume continues a paused session at the same node.
func (s *Session) Resume() error {
	if s.closed {
		return fmt.Errorf("visitor %d: %w", s.visitorID, ErrSessionClosed)
	}
	if !s.interrupted {
		return fmt.Errorf("visitor %d: %w", s.visitorID, ErrNotInterrupted)
	}
	s.interrupted = false
	return nil
}
