package driving

import (
	"context"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

// EntityService provides read access to synchronised entities.
type EntityService interface {
	// List returns entities of a kind.
	List(ctx context.Context, kind domain.EntityKind, opts domain.ListOptions) ([]domain.Entity, error)

	// Get returns one entity. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, kind domain.EntityKind, externalID string) (*domain.Entity, error)

	// Count returns the number of entities of a kind.
	Count(ctx context.Context, kind domain.EntityKind) (int, error)
}
