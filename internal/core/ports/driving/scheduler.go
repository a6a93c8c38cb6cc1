package driving

import "context"

// Trigger invokes the sync orchestrator's run-if-due entry point in the
// background.
type Trigger interface {
	// Start begins checking for due rounds.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the trigger, waiting for an in-flight check.
	Stop() error
}
