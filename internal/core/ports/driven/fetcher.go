package driven

import (
	"context"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

// Fetcher retrieves one upstream source's full record set.
type Fetcher interface {
	// Fetch performs exactly one request for the source and decodes the
	// envelope's record array.
	// Returns *domain.TransportError when the endpoint is unreachable or
	// answers with a non-success status, and *domain.DecodeError when the
	// body is not the expected envelope.
	Fetch(ctx context.Context, source domain.SyncSource) ([]domain.RawRecord, error)
}
