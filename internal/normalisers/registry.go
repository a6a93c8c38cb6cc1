package normalisers

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
	"github.com/custodia-labs/tingsync/internal/normalisers/cases"
	"github.com/custodia-labs/tingsync/internal/normalisers/representative"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry holds one normaliser per entity kind.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[domain.EntityKind]driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make(map[domain.EntityKind]driven.Normaliser),
	}
}

// Default returns a registry with the built-in normalisers.
func Default() *Registry {
	r := NewRegistry()
	r.Register(representative.New())
	r.Register(cases.New())
	return r
}

// Register adds a normaliser, replacing any for the same kind.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers[n.Kind()] = n
}

// Get returns the normaliser for kind.
func (r *Registry) Get(kind domain.EntityKind) (driven.Normaliser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.normalisers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedKind, kind)
	}
	return n, nil
}
