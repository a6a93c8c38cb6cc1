package driven

import (
	"context"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

// RunStore keeps the history of per-source sync runs.
type RunStore interface {
	// RecordRun logs one source's run result.
	RecordRun(ctx context.Context, result *domain.SyncRunResult) error

	// ListRuns returns recent runs, most recent first.
	// An empty source lists the latest run of every source.
	ListRuns(ctx context.Context, source string, limit int) ([]domain.SyncRunResult, error)

	// PruneRuns keeps the most recent 'keep' runs per source.
	PruneRuns(ctx context.Context, keep int) error
}
