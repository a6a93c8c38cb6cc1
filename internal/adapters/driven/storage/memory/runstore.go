package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string][]domain.SyncRunResult // oldest first
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string][]domain.SyncRunResult),
	}
}

// RecordRun logs one source's run result.
func (s *RunStore) RecordRun(_ context.Context, result *domain.SyncRunResult) error {
	if result == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *result
	r.RecordErrors = append([]domain.RecordError(nil), result.RecordErrors...)
	s.runs[r.Source] = append(s.runs[r.Source], r)
	return nil
}

// ListRuns returns recent runs, most recent first.
func (s *RunStore) ListRuns(_ context.Context, source string, limit int) ([]domain.SyncRunResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.SyncRunResult
	if source == "" {
		for _, runs := range s.runs {
			if len(runs) > 0 {
				result = append(result, runs[len(runs)-1])
			}
		}
	} else {
		runs := s.runs[source]
		for i := len(runs) - 1; i >= 0; i-- {
			result = append(result, runs[i])
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// PruneRuns keeps the most recent 'keep' runs per source.
func (s *RunStore) PruneRuns(_ context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for source, runs := range s.runs {
		if len(runs) > keep {
			s.runs[source] = append([]domain.SyncRunResult(nil), runs[len(runs)-keep:]...)
		}
	}
	return nil
}
