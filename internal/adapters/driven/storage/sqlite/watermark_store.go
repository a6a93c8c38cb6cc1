package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
)

// watermarkStore implements driven.WatermarkStore.
// The watermark is a single row persisted as epoch milliseconds.
type watermarkStore struct {
	store *Store
}

var _ driven.WatermarkStore = (*watermarkStore)(nil)

// Save stores the watermark.
func (s *watermarkStore) Save(ctx context.Context, w domain.Watermark) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_watermarks (id, last_sync_ms, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_sync_ms = excluded.last_sync_ms,
			updated_at = excluded.updated_at
	`, w.Millis(), formatTime(s.store.now()))
	if err != nil {
		return fmt.Errorf("saving watermark: %w", err)
	}
	return nil
}

// Get retrieves the watermark.
func (s *watermarkStore) Get(ctx context.Context) (*domain.Watermark, error) {
	var ms int64
	err := s.store.db.QueryRowContext(ctx, "SELECT last_sync_ms FROM sync_watermarks WHERE id = 1").Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading watermark: %w", err)
	}
	w := domain.WatermarkFromMillis(ms)
	return &w, nil
}
