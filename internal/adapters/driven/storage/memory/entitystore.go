package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
)

// Ensure EntityStore implements the interface.
var _ driven.EntityStore = (*EntityStore)(nil)

// EntityStore is an in-memory implementation of driven.EntityStore.
// It enforces the same uniqueness rules as the SQLite store: one entity
// per (kind, external id) and one representative per email.
type EntityStore struct {
	mu       sync.RWMutex
	entities map[domain.EntityKind]map[string]domain.Entity
	now      func() time.Time
	unique   bool
}

// EntityStoreOption configures an EntityStore.
type EntityStoreOption func(*EntityStore)

// WithClock sets the clock used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) EntityStoreOption {
	return func(s *EntityStore) { s.now = now }
}

// WithoutUniqueEmail disables the representative email constraint.
func WithoutUniqueEmail() EntityStoreOption {
	return func(s *EntityStore) { s.unique = false }
}

// NewEntityStore creates a new in-memory entity store.
func NewEntityStore(opts ...EntityStoreOption) *EntityStore {
	s := &EntityStore{
		entities: make(map[domain.EntityKind]map[string]domain.Entity),
		now:      time.Now,
		unique:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert creates or overwrites the entity keyed by the record's external id.
func (s *EntityStore) Upsert(_ context.Context, rec domain.Record) (*domain.Entity, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", domain.ErrInvalidInput)
	}
	if rec.Key() == "" {
		return nil, domain.ErrMissingExternalID
	}
	if !rec.Kind().Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, rec.Kind())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.entities[rec.Kind()]
	if !ok {
		byID = make(map[string]domain.Entity)
		s.entities[rec.Kind()] = byID
	}

	if err := s.checkUnique(byID, rec); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entity := domain.Entity{
		Record:    domain.CloneRecord(rec),
		CreatedAt: now,
		UpdatedAt: now,
		Active:    true,
	}
	if prev, exists := byID[rec.Key()]; exists {
		entity.CreatedAt = prev.CreatedAt
		// updated_at is strictly increasing per entity
		if !now.After(prev.UpdatedAt) {
			entity.UpdatedAt = prev.UpdatedAt.Add(time.Nanosecond)
		}
	}
	byID[rec.Key()] = entity

	out := entity
	out.Record = domain.CloneRecord(entity.Record)
	return &out, nil
}

// checkUnique rejects a representative whose email belongs to another one.
func (s *EntityStore) checkUnique(byID map[string]domain.Entity, rec domain.Record) error {
	if !s.unique {
		return nil
	}
	rep, ok := rec.(*domain.Representative)
	if !ok || rep.Email == nil {
		return nil
	}
	for id, e := range byID {
		if id == rep.ExternalID {
			continue
		}
		other := e.Record.(*domain.Representative)
		if other.Email != nil && *other.Email == *rep.Email {
			return fmt.Errorf("%w: email %q already used by representative %s", domain.ErrConstraint, *rep.Email, id)
		}
	}
	return nil
}

// Get retrieves an entity.
func (s *EntityStore) Get(_ context.Context, kind domain.EntityKind, externalID string) (*domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[kind][externalID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e.Record = domain.CloneRecord(e.Record)
	return &e, nil
}

// List returns entities of a kind ordered by external id.
func (s *EntityStore) List(_ context.Context, kind domain.EntityKind, opts domain.ListOptions) ([]domain.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.entities[kind]
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if opts.Offset >= len(ids) {
		return []domain.Entity{}, nil
	}
	if opts.Offset > 0 {
		ids = ids[opts.Offset:]
	}
	if limit := opts.PageSize(); len(ids) > limit {
		ids = ids[:limit]
	}

	result := make([]domain.Entity, 0, len(ids))
	for _, id := range ids {
		e := byID[id]
		e.Record = domain.CloneRecord(e.Record)
		result = append(result, e)
	}
	return result, nil
}

// Count returns the number of entities of a kind.
func (s *EntityStore) Count(_ context.Context, kind domain.EntityKind) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities[kind]), nil
}
