package dialog

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDeskBusy is returned when the player is already talking to someone else.
var ErrDeskBusy = errors.New("player is busy with another visitor")

// Desk enforces that the player talks to one visitor at a time.
// A visitor whose session is interrupted does not hold the desk.
type Desk struct {
	mu    sync.Mutex
	owner uint32
	busy  bool
}

// NewDesk creates a free desk
func NewDesk() *Desk {
	return &Desk{}
}

// Acquire takes the desk for visitor. Re-acquire by the owner is allowed.
func (d *Desk) Acquire(visitorID uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.busy && d.owner != visitorID {
		return fmt.Errorf("visitor %d (desk held by %d): %w", visitorID, d.owner, ErrDeskBusy)
	}
	d.owner = visitorID
	d.busy = true
	return nil
}

// Release frees the desk if visitor owns it.
func (d *Desk) Release(visitorID uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.busy && d.owner == visitorID {
		d.busy = false
		d.owner = 0
	}
}

// Owner returns current owner.
func (d *Desk) Owner() (uint32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.owner, d.busy
}
