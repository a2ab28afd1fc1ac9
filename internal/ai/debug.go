package ai

import "sync/atomic"

// debugLoggingEnabled controls whether per-tick debug logging is enabled for visitor AI.
// Package-level flag to avoid checking log level on every tick.
// Set via EnableDebugLogging() during initialization based on config.LogLevel.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for AI subsystem.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard per-tick debug log calls:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("visitor retargeted", "visitorID", id, "target", p)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
