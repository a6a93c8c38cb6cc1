package domain

import "time"

// Watermark is the timestamp of the last completed synchronisation round.
type Watermark struct {
	LastSync time.Time
}

// Due reports whether a new round may start at now.
// A nil watermark is always due.
func (w *Watermark) Due(now time.Time, minInterval time.Duration) bool {
	if w == nil || w.LastSync.IsZero() {
		return true
	}
	return now.Sub(w.LastSync) > minInterval
}

// Millis returns LastSync as epoch milliseconds, the persisted form.
func (w Watermark) Millis() int64 {
	return w.LastSync.UnixMilli()
}

// WatermarkFromMillis rebuilds a watermark from its persisted form.
func WatermarkFromMillis(ms int64) Watermark {
	return Watermark{LastSync: time.UnixMilli(ms).UTC()}
}

// Outcome is the result of one source's attempt in a round.
type Outcome string

const (
	// OutcomeSuccess means records were fetched and reconciled.
	OutcomeSuccess Outcome = "success"

	// OutcomeRejected means the source failed for this round.
	OutcomeRejected Outcome = "rejected"
)

// SyncRunResult is the outcome of one source's synchronisation attempt.
type SyncRunResult struct {
	// RoundID groups the results of one round.
	RoundID string

	// Source is the SyncSource ID.
	Source string

	Outcome Outcome

	TotalFetched int
	Inserted     int
	Updated      int

	// RecordErrors holds the per-record write failures. Never fatal.
	RecordErrors []RecordError

	// Message describes a rejection, or summarises a success.
	Message string

	StartedAt time.Time
	EndedAt   time.Time
}

// Succeeded reports whether the source reconciled.
func (r *SyncRunResult) Succeeded() bool {
	return r.Outcome == OutcomeSuccess
}

// Skip reasons reported by RoundResult.
const (
	SkipNotDue     = "not due"
	SkipInProgress = "in progress"
)

// RoundResult is the outcome of one MaybeSync call. Either Skipped is
// set or Results holds exactly one entry per configured source.
type RoundResult struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	Skipped    bool
	SkipReason string
	Results    []SyncRunResult
}

// Rejected counts the sources that failed.
func (r *RoundResult) Rejected() int {
	n := 0
	for i := range r.Results {
		if !r.Results[i].Succeeded() {
			n++
		}
	}
	return n
}

// Err reports why a skipped round did not run when that reason is an
// error the caller should see. It returns ErrSyncInProgress when another
// round was already running, and nil otherwise.
func (r *RoundResult) Err() error {
	if r.Skipped && r.SkipReason == SkipInProgress {
		return ErrSyncInProgress
	}
	return nil
}

// SyncStatus is a snapshot of the engine's state.
type SyncStatus struct {
	// Watermark is nil when no round has ever completed.
	Watermark *Watermark

	// Running indicates a round is in flight.
	Running bool

	// Interval is the gate interval.
	Interval time.Duration

	// NextDue is when the next round becomes due. Zero means now.
	NextDue time.Time

	// Recent holds the latest run per source, most recent first.
	Recent []SyncRunResult
}
