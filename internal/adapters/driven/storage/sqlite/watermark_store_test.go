package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

func TestWatermarkStore_GetEmpty(t *testing.T) {
	watermarks := setupTestStore(t).WatermarkStore()

	w, err := watermarks.Get(context.Background())
	assert.Nil(t, w)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWatermarkStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	watermarks := store.WatermarkStore()
	ctx := context.Background()

	at := time.Date(2024, 3, 1, 10, 0, 0, 987654321, time.UTC)
	require.NoError(t, watermarks.Save(ctx, domain.Watermark{LastSync: at}))

	w, err := watermarks.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, at.Truncate(time.Millisecond), w.LastSync)

	// Overwrite keeps a single row
	require.NoError(t, watermarks.Save(ctx, domain.Watermark{LastSync: at.Add(time.Hour)}))
	w, err = watermarks.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, at.Add(time.Hour).Truncate(time.Millisecond), w.LastSync)

	var rows int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM sync_watermarks").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestWatermarkStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.WatermarkStore().Save(context.Background(), domain.Watermark{LastSync: at}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	w, err := reopened.WatermarkStore().Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, at, w.LastSync)
}
