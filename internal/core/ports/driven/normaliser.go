package driven

import "github.com/custodia-labs/tingsync/internal/core/domain"

// Normaliser converts a raw upstream record into its canonical shape.
// Each normaliser handles one entity kind.
type Normaliser interface {
	// Kind returns the entity kind this normaliser produces.
	Kind() domain.EntityKind

	// Normalise is total: unmappable or absent fields resolve to nil,
	// never to an error, so one malformed record cannot block a batch.
	Normalise(source domain.SyncSource, raw domain.RawRecord) domain.Record
}

// NormaliserRegistry selects the normaliser for an entity kind.
type NormaliserRegistry interface {
	// Register adds a normaliser, replacing any for the same kind.
	Register(n Normaliser)

	// Get returns the normaliser for kind.
	// Returns domain.ErrUnsupportedKind if none is registered.
	Get(kind domain.EntityKind) (Normaliser, error)
}
