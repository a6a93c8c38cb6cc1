package driven

import (
	"context"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

// EntityStore persists canonical records keyed by (kind, external id).
type EntityStore interface {
	// Upsert creates the entity or overwrites every field of the existing
	// one, bumping UpdatedAt. Returns the entity as read back after the
	// write so callers can observe CreatedAt and UpdatedAt.
	// Returns an error wrapping domain.ErrConstraint on uniqueness violations.
	Upsert(ctx context.Context, rec domain.Record) (*domain.Entity, error)

	// Get retrieves an entity. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, kind domain.EntityKind, externalID string) (*domain.Entity, error)

	// List returns entities of a kind ordered by external id.
	List(ctx context.Context, kind domain.EntityKind, opts domain.ListOptions) ([]domain.Entity, error)

	// Count returns the number of entities of a kind.
	Count(ctx context.Context, kind domain.EntityKind) (int, error)
}
