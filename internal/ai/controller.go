package ai

import (
	"time"

	"github.com/udisondev/frontdesk/internal/model"
)

// Controller represents AI controller interface for visitors
type Controller interface {
	// ID returns controlled visitor object ID
	ID() uint32

	// Start starts AI controller
	Start()

	// Stop stops AI controller
	Stop()

	// State returns current lifecycle state
	State() model.LifecycleState

	// Tick performs AI tick at simulated time now
	Tick(now time.Time)

	// Destroyed reports whether the visitor left and can be reaped
	Destroyed() bool
}
