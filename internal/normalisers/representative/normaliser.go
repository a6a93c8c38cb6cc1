package representative

import (
	"sync"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
	"github.com/custodia-labs/tingsync/internal/normalisers/fields"
)

// Canonical field names. These are the keys of [source.fields] overrides.
const (
	FieldID              = "id"
	FieldName            = "name"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldParty           = "party"
	FieldPartyShort      = "partyShort"
	FieldConstituency    = "constituency"
	FieldRole            = "role"
	FieldEmail           = "email"
	FieldBiography       = "biography"
	FieldBirthDate       = "birthDate"
	FieldStartDate       = "startDate"
	FieldEndDate         = "endDate"
	FieldUpstreamUpdated = "upstreamUpdated"
)

// DefaultRules is the built-in precedence table. Nested forms come before
// flat ones: newer upstream versions nest related objects.
func DefaultRules() domain.FieldRules {
	return domain.FieldRules{
		FieldID:              {"id", "Id", "aktoerid"},
		FieldName:            {"navn", "name"},
		FieldFirstName:       {"fornavn", "firstName"},
		FieldLastName:        {"efternavn", "lastName"},
		FieldParty:           {"parti.navn", "parti_navn", "partinavn"},
		FieldPartyShort:      {"parti.forkortelse", "parti_forkortelse", "gruppenavnkort"},
		FieldConstituency:    {"storkreds.navn", "storkreds_navn", "storkreds"},
		FieldRole:            {"rolle.navn", "rolle_navn", "titel"},
		FieldEmail:           {"kontakt.email", "email"},
		FieldBiography:       {"biografi"},
		FieldBirthDate:       {"foedselsdato", "fødselsdato"},
		FieldStartDate:       {"periode.startdato", "startdato"},
		FieldEndDate:         {"periode.slutdato", "slutdato"},
		FieldUpstreamUpdated: {"opdateringsdato"},
	}
}

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser maps upstream actor records to representatives.
// Merged rules are cached per source ID; sources never change after start.
type Normaliser struct {
	mu    sync.RWMutex
	rules map[string]domain.FieldRules
}

// New creates a representative normaliser.
func New() *Normaliser {
	return &Normaliser{rules: make(map[string]domain.FieldRules)}
}

// Kind returns the entity kind this normaliser produces.
func (n *Normaliser) Kind() domain.EntityKind {
	return domain.KindRepresentative
}

// Normalise converts a raw actor record. It never fails.
func (n *Normaliser) Normalise(source domain.SyncSource, raw domain.RawRecord) domain.Record {
	rules := n.rulesFor(source)
	id := fields.ID(raw, rules.Paths(FieldID))

	return &domain.Representative{
		ExternalID:      id,
		Name:            fields.String(raw, rules.Paths(FieldName)),
		FirstName:       fields.String(raw, rules.Paths(FieldFirstName)),
		LastName:        fields.String(raw, rules.Paths(FieldLastName)),
		Party:           fields.String(raw, rules.Paths(FieldParty)),
		PartyShort:      fields.String(raw, rules.Paths(FieldPartyShort)),
		Constituency:    fields.String(raw, rules.Paths(FieldConstituency)),
		Role:            fields.String(raw, rules.Paths(FieldRole)),
		Email:           fields.String(raw, rules.Paths(FieldEmail)),
		Biography:       fields.String(raw, rules.Paths(FieldBiography)),
		BirthDate:       fields.Date(raw, rules.Paths(FieldBirthDate)),
		StartDate:       fields.Date(raw, rules.Paths(FieldStartDate)),
		EndDate:         fields.Date(raw, rules.Paths(FieldEndDate)),
		UpstreamUpdated: fields.Date(raw, rules.Paths(FieldUpstreamUpdated)),
		ImageURL:        source.DeriveURL(id),
	}
}

// rulesFor returns the default rules merged with the source's overrides.
func (n *Normaliser) rulesFor(source domain.SyncSource) domain.FieldRules {
	n.mu.RLock()
	rules, ok := n.rules[source.ID]
	n.mu.RUnlock()
	if ok {
		return rules
	}

	rules = DefaultRules().Merge(source.Fields)
	n.mu.Lock()
	n.rules[source.ID] = rules
	n.mu.Unlock()
	return rules
}
