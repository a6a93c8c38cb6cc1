package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// stepClock returns a clock advancing one second per call.
func stepClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestNewStore_ErrorHandling(t *testing.T) {
	// Test with invalid path (should fail to create directory)
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	// Verify database file was created
	dbPath := filepath.Join(tempDir, DBFile)
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	// Verify database connection is working
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DefaultDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewStore("")
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(home, ".tingsync", "data", DBFile), store.Path())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	// Create store in a nested directory that doesn't exist yet
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")
	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	version, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	tables := []string{
		"representatives",
		"cases",
		"sync_watermarks",
		"sync_runs",
	}

	for _, table := range tables {
		var tableExists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&tableExists)
		require.NoError(t, err)
		assert.Equal(t, 1, tableExists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	_, err = store.db.Exec(`INSERT INTO sync_watermarks (id, last_sync_ms, updated_at) VALUES (1, 42, 'x')`)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Migrations are not re-applied
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	version, err := reopened.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var ms int64
	require.NoError(t, reopened.db.QueryRow("SELECT last_sync_ms FROM sync_watermarks").Scan(&ms))
	assert.Equal(t, int64(42), ms)
}

func TestNewStore_WALMode(t *testing.T) {
	store := setupTestStore(t)

	var mode string
	require.NoError(t, store.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestStore_Close(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Close())

	// Verify connection is closed
	assert.Error(t, store.db.Ping())
}

func TestStore_InterfaceGetters(t *testing.T) {
	store := setupTestStore(t)

	assert.NotNil(t, store.EntityStore())
	assert.NotNil(t, store.WatermarkStore())
	assert.NotNil(t, store.RunStore())
}

func TestTimeFormat_SortsAsText(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.Add(100 * time.Millisecond)
	c := a.Add(time.Second)

	assert.Less(t, formatTime(a), formatTime(b))
	assert.Less(t, formatTime(b), formatTime(c))
	assert.Equal(t, b, parseTime(formatTime(b)))
	assert.True(t, parseTime("garbage").IsZero())
}

func TestHelpers_Nullable(t *testing.T) {
	s := "x"
	assert.Nil(t, nullString(nil))
	assert.Equal(t, "x", nullString(&s))

	yes := true
	assert.Nil(t, nullBool(nil))
	assert.Equal(t, 1, nullBool(&yes))
	assert.Equal(t, 0, boolToInt(false))
}
