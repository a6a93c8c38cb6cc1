package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
	"github.com/custodia-labs/tingsync/internal/logger"
)

// ReconcileResult summarises one batch written to the local store.
type ReconcileResult struct {
	Inserted int
	Updated  int

	// Errors holds one entry per record that could not be written.
	Errors []domain.RecordError
}

// Failed reports whether every record of a non-empty batch failed.
func (r ReconcileResult) Failed(total int) bool {
	return total > 0 && len(r.Errors) == total
}

// Reconciler upserts canonical records into the entity store.
type Reconciler struct {
	store driven.EntityStore
}

// NewReconciler creates a reconciler writing to store.
func NewReconciler(store driven.EntityStore) *Reconciler {
	return &Reconciler{store: store}
}

// Reconcile upserts records in order. A failing record is reported and
// the batch continues; no error escapes. Re-running the same batch
// creates no duplicates.
func (r *Reconciler) Reconcile(ctx context.Context, source domain.SyncSource, records []domain.Record) ReconcileResult {
	var result ReconcileResult

	for i, rec := range records {
		entity, err := r.upsert(ctx, source, rec)
		if err != nil {
			recErr := domain.RecordError{Index: i, Err: err}
			if rec != nil {
				recErr.ExternalID = rec.Key()
			}
			logger.Debug("Source %s: %v", source.ID, &recErr)
			result.Errors = append(result.Errors, recErr)
			continue
		}

		if entity.Inserted() {
			result.Inserted++
		} else {
			result.Updated++
		}
	}

	return result
}

func (r *Reconciler) upsert(ctx context.Context, source domain.SyncSource, rec domain.Record) (*domain.Entity, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", domain.ErrInvalidInput)
	}
	if rec.Key() == "" {
		return nil, domain.ErrMissingExternalID
	}
	if rec.Kind() != source.Kind {
		return nil, fmt.Errorf("%w: %s record from %s source", domain.ErrInvalidInput, rec.Kind(), source.Kind)
	}
	return r.store.Upsert(ctx, rec)
}
