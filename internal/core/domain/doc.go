// Package domain defines the core business entities for tingsync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SyncSource: A configured upstream feed
//   - RawRecord: An untyped record as decoded from the upstream API
//   - Record: A normalised canonical record (Representative, Case)
//   - Entity: A persisted record with lifecycle timestamps
//   - Watermark: The timestamp gating synchronisation rounds
//   - SyncRunResult: The outcome of one source's attempt in a round
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
