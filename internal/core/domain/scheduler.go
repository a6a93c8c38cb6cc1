package domain

import "time"

// TriggerConfig controls when the background trigger checks whether a
// round is due.
type TriggerConfig struct {
	// Enabled is the master switch for the background trigger.
	Enabled bool

	// StartupDelay is how long to wait after start before the first check,
	// so the check never blocks initial readiness.
	StartupDelay time.Duration

	// CheckInterval is how often to re-check after the first check.
	// Every check is gated by the watermark.
	CheckInterval time.Duration
}

// DefaultTriggerConfig returns sensible defaults for the trigger.
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		Enabled:       true,
		StartupDelay:  3 * time.Second,
		CheckInterval: 1 * time.Minute,
	}
}

// RunHistoryLimit is how many runs are kept per source.
const RunHistoryLimit = 100
