package driven

import (
	"context"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

// WatermarkStore persists the synchronisation watermark.
// Only the sync orchestrator writes it.
type WatermarkStore interface {
	// Get returns the watermark, or domain.ErrNotFound when no round has
	// ever completed.
	Get(ctx context.Context) (*domain.Watermark, error)

	// Save stores the watermark.
	Save(ctx context.Context, w domain.Watermark) error
}
