package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
	"github.com/custodia-labs/tingsync/internal/core/ports/driving"
)

// Ensure EntityService implements the interface.
var _ driving.EntityService = (*EntityService)(nil)

// EntityService provides read access to synchronised entities.
type EntityService struct {
	store driven.EntityStore
}

// NewEntityService creates a new entity service.
func NewEntityService(store driven.EntityStore) *EntityService {
	return &EntityService{store: store}
}

// List returns entities of a kind ordered by external id.
func (s *EntityService) List(ctx context.Context, kind domain.EntityKind, opts domain.ListOptions) ([]domain.Entity, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}
	if opts.Offset < 0 {
		return nil, fmt.Errorf("%w: negative offset", domain.ErrInvalidInput)
	}
	return s.store.List(ctx, kind, opts)
}

// Get returns one entity.
func (s *EntityService) Get(ctx context.Context, kind domain.EntityKind, externalID string) (*domain.Entity, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}
	if externalID == "" {
		return nil, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, kind, externalID)
}

// Count returns the number of entities of a kind.
func (s *EntityService) Count(ctx context.Context, kind domain.EntityKind) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}
	return s.store.Count(ctx, kind)
}
