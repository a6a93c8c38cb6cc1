package driving

import (
	"context"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

// SyncOrchestrator coordinates synchronisation rounds across all sources.
type SyncOrchestrator interface {
	// MaybeSync runs a round if one is due and none is in flight.
	// A skipped round returns a RoundResult with Skipped set.
	MaybeSync(ctx context.Context) (*domain.RoundResult, error)

	// ForceSync runs a round regardless of the watermark.
	// Still refuses to overlap an in-flight round.
	ForceSync(ctx context.Context) (*domain.RoundResult, error)

	// Status returns the watermark and recent runs.
	Status(ctx context.Context) (*domain.SyncStatus, error)
}
