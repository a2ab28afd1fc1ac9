package ai

import "time"

// continuation is a timed wait: fn runs on the first tick at or after at.
// Replaces stack-suspended waits; at most one is pending per visitor.
type continuation struct {
	at time.Time
	fn func(now time.Time)
}

// due reports whether the continuation should fire at now.
func (c *continuation) due(now time.Time) bool {
	return !now.Before(c.at)
}
