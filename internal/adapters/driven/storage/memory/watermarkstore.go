package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
)

// Ensure WatermarkStore implements the interface.
var _ driven.WatermarkStore = (*WatermarkStore)(nil)

// WatermarkStore is an in-memory implementation of driven.WatermarkStore.
type WatermarkStore struct {
	mu        sync.RWMutex
	watermark *domain.Watermark
}

// NewWatermarkStore creates a new in-memory watermark store.
func NewWatermarkStore() *WatermarkStore {
	return &WatermarkStore{}
}

// Save stores the watermark at millisecond precision, like the SQLite store.
func (s *WatermarkStore) Save(_ context.Context, w domain.Watermark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := domain.WatermarkFromMillis(w.Millis())
	s.watermark = &stored
	return nil
}

// Get retrieves the watermark.
func (s *WatermarkStore) Get(_ context.Context) (*domain.Watermark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.watermark == nil {
		return nil, domain.ErrNotFound
	}
	w := *s.watermark
	return &w, nil
}
