// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It implements multiple store interfaces
// through a single database connection:
//
//   - EntityStore: Representatives and cases, upserted by external id
//   - WatermarkStore: The synchronisation watermark
//   - RunStore: Per-source sync run history
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.tingsync/data/tingsync.db
//
// # Thread Safety
//
// All operations are thread-safe. The store runs in WAL mode with a single
// connection, so writers are serialised in-process.
package sqlite
