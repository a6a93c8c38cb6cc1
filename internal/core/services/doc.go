// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The sync engine lives here: the Reconciler writes a source's records,
// the SyncOrchestrator runs gated rounds over all sources, and the
// Trigger calls the orchestrator in the background.
package services
