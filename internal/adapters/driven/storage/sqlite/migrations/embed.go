// Package migrations embeds the versioned schema for the SQLite store.
// Files are named NNN_name.up.sql and applied in version order.
package migrations

import "embed"

// FS holds the migration files.
//
//go:embed *.sql
var FS embed.FS
