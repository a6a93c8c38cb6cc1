// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Fetcher: Retrieves an upstream source's records over HTTP
//   - Normaliser: Converts raw records into canonical records
//   - NormaliserRegistry: Selects a normaliser per entity kind
//   - EntityStore: Canonical record persistence (idempotent upserts)
//   - WatermarkStore: Watermark persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RunStore: Sync run history. Without it, status shows no recent runs.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
