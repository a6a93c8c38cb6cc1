package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driving"
	"github.com/custodia-labs/tingsync/internal/logger"
)

// Ensure Trigger implements the interface.
var _ driving.Trigger = (*Trigger)(nil)

// Trigger calls MaybeSync in the background: once shortly after start,
// then on every tick. The orchestrator's gate decides whether a round
// actually runs, so ticks can be far more frequent than the interval.
type Trigger struct {
	config   domain.TriggerConfig
	syncOrch driving.SyncOrchestrator

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewTrigger creates a trigger with configuration.
func NewTrigger(config domain.TriggerConfig, syncOrch driving.SyncOrchestrator) *Trigger {
	defaults := domain.DefaultTriggerConfig()
	if config.StartupDelay < 0 {
		config.StartupDelay = defaults.StartupDelay
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = defaults.CheckInterval
	}
	return &Trigger{
		config:   config,
		syncOrch: syncOrch,
	}
}

// Start begins the trigger loop. This method blocks until Stop is called
// or ctx is cancelled. A disabled trigger returns immediately.
func (t *Trigger) Start(ctx context.Context) error {
	if !t.config.Enabled || t.syncOrch == nil {
		logger.Debug("Sync trigger disabled")
		return nil
	}

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return nil // Already running
	}
	t.running = true
	t.stopCh = make(chan struct{})
	stopCh := t.stopCh
	t.mu.Unlock()

	err := t.run(ctx, stopCh)

	// A loop ended by its context may be started again.
	t.mu.Lock()
	if t.stopCh == stopCh {
		t.running = false
	}
	t.mu.Unlock()

	return err
}

// Stop gracefully shuts down the trigger, waiting for an in-flight check.
func (t *Trigger) Stop() error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = false
	close(t.stopCh)
	t.mu.Unlock()

	t.wg.Wait()

	return nil
}

// run is the main trigger loop.
func (t *Trigger) run(ctx context.Context, stopCh <-chan struct{}) error {
	// Wait out the startup delay so the first round never blocks readiness
	delay := time.NewTimer(t.config.StartupDelay)
	defer delay.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-stopCh:
		return nil
	case <-delay.C:
		t.check(ctx)
	}

	ticker := time.NewTicker(t.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			t.check(ctx)
		}
	}
}

// check asks the orchestrator to run a round if one is due.
func (t *Trigger) check(ctx context.Context) {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.wg.Add(1)
	t.mu.Unlock()
	defer t.wg.Done()

	result, err := t.syncOrch.MaybeSync(ctx)
	if err != nil {
		logger.Error("Sync check failed: %v", err)
		return
	}
	if result.Skipped {
		logger.Debug("Sync skipped: %s", result.SkipReason)
		return
	}
	if n := result.Rejected(); n > 0 {
		logger.Warn("Sync round %s: %d of %d sources rejected", result.ID, n, len(result.Results))
	}
}
