package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
	"github.com/custodia-labs/tingsync/internal/core/ports/driving"
	"github.com/custodia-labs/tingsync/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator runs synchronisation rounds. A round fetches every
// source concurrently, normalises and reconciles each source's records,
// waits for all sources to settle and then advances the watermark.
type SyncOrchestrator struct {
	sources    []domain.SyncSource
	fetcher    driven.Fetcher
	registry   driven.NormaliserRegistry
	reconciler *Reconciler
	watermarks driven.WatermarkStore
	runs       driven.RunStore // optional

	interval time.Duration
	now      func() time.Time

	// active guards against overlapping rounds within this process
	active atomic.Bool
}

// SyncOption configures a SyncOrchestrator.
type SyncOption func(*SyncOrchestrator)

// WithSyncClock sets the clock used for round timestamps and gating.
func WithSyncClock(now func() time.Time) SyncOption {
	return func(o *SyncOrchestrator) { o.now = now }
}

// WithMinInterval overrides the gate interval derived from the sources.
func WithMinInterval(d time.Duration) SyncOption {
	return func(o *SyncOrchestrator) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithRunStore records per-source run history.
func WithRunStore(runs driven.RunStore) SyncOption {
	return func(o *SyncOrchestrator) { o.runs = runs }
}

// NewSyncOrchestrator creates a new sync orchestrator.
func NewSyncOrchestrator(
	sources []domain.SyncSource,
	fetcher driven.Fetcher,
	registry driven.NormaliserRegistry,
	entities driven.EntityStore,
	watermarks driven.WatermarkStore,
	opts ...SyncOption,
) *SyncOrchestrator {
	o := &SyncOrchestrator{
		sources:    append([]domain.SyncSource(nil), sources...),
		fetcher:    fetcher,
		registry:   registry,
		reconciler: NewReconciler(entities),
		watermarks: watermarks,
		interval:   domain.GateInterval(sources),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Sources returns the configured sources.
func (o *SyncOrchestrator) Sources() []domain.SyncSource {
	return append([]domain.SyncSource(nil), o.sources...)
}

// Interval returns the gate interval.
func (o *SyncOrchestrator) Interval() time.Duration {
	return o.interval
}

// MaybeSync runs a round if the watermark says one is due.
func (o *SyncOrchestrator) MaybeSync(ctx context.Context) (*domain.RoundResult, error) {
	return o.round(ctx, false)
}

// ForceSync runs a round regardless of the watermark.
func (o *SyncOrchestrator) ForceSync(ctx context.Context) (*domain.RoundResult, error) {
	return o.round(ctx, true)
}

func (o *SyncOrchestrator) round(ctx context.Context, force bool) (*domain.RoundResult, error) {
	if !o.active.CompareAndSwap(false, true) {
		logger.Debug("Sync round already in progress, skipping")
		return &domain.RoundResult{Skipped: true, SkipReason: domain.SkipInProgress}, nil
	}
	defer o.active.Store(false)

	start := o.now()

	if !force {
		wm, err := o.watermarks.Get(ctx)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get watermark: %w", err)
		}
		if !wm.Due(start, o.interval) {
			logger.Debug("Sync not due: last round at %s, interval %s", wm.LastSync.Format(time.RFC3339), o.interval)
			return &domain.RoundResult{Skipped: true, SkipReason: domain.SkipNotDue}, nil
		}
	}

	round := &domain.RoundResult{
		ID:        uuid.NewString(),
		StartedAt: start,
	}

	logger.Section("Sync round " + round.ID)
	logger.Info("Synchronising %d sources", len(o.sources))

	// A started round always runs to completion. Fetches are bounded by the
	// fetcher's own request timeout, not by the caller.
	roundCtx := context.WithoutCancel(ctx)

	round.Results = o.fanOut(roundCtx, round.ID)
	round.EndedAt = o.now()

	o.recordRuns(roundCtx, round.Results)

	if err := o.watermarks.Save(roundCtx, domain.Watermark{LastSync: start}); err != nil {
		logger.Error("Failed to save watermark: %v", err)
		return round, fmt.Errorf("save watermark: %w", err)
	}

	logger.Info("Sync round %s complete: %d sources, %d rejected", round.ID, len(round.Results), round.Rejected())
	return round, nil
}

// fanOut syncs every source concurrently and waits for all of them.
// Each goroutine writes only its own slot of results.
func (o *SyncOrchestrator) fanOut(ctx context.Context, roundID string) []domain.SyncRunResult {
	results := make([]domain.SyncRunResult, len(o.sources))

	var wg sync.WaitGroup
	for i := range o.sources {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = o.syncSource(ctx, roundID, o.sources[i])
		}(i)
	}
	wg.Wait()

	return results
}

// syncSource fetches, normalises and reconciles one source. It never
// returns an error: failures become a rejected result.
func (o *SyncOrchestrator) syncSource(ctx context.Context, roundID string, source domain.SyncSource) (result domain.SyncRunResult) {
	result = domain.SyncRunResult{
		RoundID:   roundID,
		Source:    source.ID,
		StartedAt: o.now(),
	}

	defer func() {
		if r := recover(); r != nil {
			o.reject(&result, fmt.Sprintf("panic: %v", r))
		}
		result.EndedAt = o.now()
	}()

	normaliser, err := o.registry.Get(source.Kind)
	if err != nil {
		o.reject(&result, err.Error())
		return result
	}

	raw, err := o.fetcher.Fetch(ctx, source)
	if err != nil {
		if !domain.IsSourceFatal(err) {
			err = &domain.TransportError{Source: source.ID, URL: source.URL, Err: err}
		}
		o.reject(&result, err.Error())
		return result
	}
	result.TotalFetched = len(raw)

	records := make([]domain.Record, len(raw))
	for i := range raw {
		records[i] = normaliser.Normalise(source, raw[i])
	}

	rec := o.reconciler.Reconcile(ctx, source, records)
	result.Inserted = rec.Inserted
	result.Updated = rec.Updated
	result.RecordErrors = rec.Errors

	if rec.Failed(len(raw)) {
		o.reject(&result, fmt.Sprintf("all %d records failed: %v", len(raw), rec.Errors[0].Err))
		return result
	}

	result.Outcome = domain.OutcomeSuccess
	result.Message = fmt.Sprintf("fetched %d, inserted %d, updated %d, %d errors",
		result.TotalFetched, result.Inserted, result.Updated, len(result.RecordErrors))
	logger.Info("Source %s: %s", source.ID, result.Message)
	return result
}

func (o *SyncOrchestrator) reject(result *domain.SyncRunResult, message string) {
	result.Outcome = domain.OutcomeRejected
	result.Message = message
	logger.Warn("Source %s rejected: %s", result.Source, message)
}

// recordRuns appends results to the run history. Best effort.
func (o *SyncOrchestrator) recordRuns(ctx context.Context, results []domain.SyncRunResult) {
	if o.runs == nil {
		return
	}
	for i := range results {
		if err := o.runs.RecordRun(ctx, &results[i]); err != nil {
			logger.Warn("Failed to record run for %s: %v", results[i].Source, err)
		}
	}
	if err := o.runs.PruneRuns(ctx, domain.RunHistoryLimit); err != nil {
		logger.Warn("Failed to prune run history: %v", err)
	}
}

// Status returns the watermark, whether a round is running and the
// latest run of every source.
func (o *SyncOrchestrator) Status(ctx context.Context) (*domain.SyncStatus, error) {
	wm, err := o.watermarks.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get watermark: %w", err)
	}

	status := &domain.SyncStatus{
		Running:  o.active.Load(),
		Interval: o.interval,
	}
	if wm != nil {
		status.Watermark = wm
		status.NextDue = wm.LastSync.Add(o.interval)
	}

	if o.runs != nil {
		recent, err := o.runs.ListRuns(ctx, "", 0)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		status.Recent = recent
	}

	return status, nil
}
