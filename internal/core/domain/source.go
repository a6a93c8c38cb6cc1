package domain

import (
	"fmt"
	"strings"
	"time"
)

// EntityKind identifies the canonical entity a source produces.
type EntityKind string

const (
	// KindRepresentative is a member of parliament.
	KindRepresentative EntityKind = "representative"

	// KindCase is a parliamentary case (bill, proposal, inquiry).
	KindCase EntityKind = "case"
)

// Valid reports whether k is a known entity kind.
func (k EntityKind) Valid() bool {
	return k == KindRepresentative || k == KindCase
}

// ParseEntityKind accepts singular and plural spellings.
func ParseEntityKind(s string) (EntityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "representative", "representatives":
		return KindRepresentative, nil
	case "case", "cases":
		return KindCase, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

// DefaultMinInterval is used for sources that do not set one.
const DefaultMinInterval = time.Hour

// DefaultEnvelope is the name of the record array in OData responses.
const DefaultEnvelope = "value"

// FieldRules maps a canonical field name to the ordered raw paths it is
// read from. The first present path wins.
type FieldRules map[string][]string

// Paths returns the precedence list for field, or nil.
func (r FieldRules) Paths(field string) []string {
	if r == nil {
		return nil
	}
	return r[field]
}

// Merge returns a copy of r with every field in override replacing r's list.
func (r FieldRules) Merge(override FieldRules) FieldRules {
	out := make(FieldRules, len(r)+len(override))
	for k, v := range r {
		out[k] = v
	}
	for k, v := range override {
		if len(v) > 0 {
			out[k] = v
		}
	}
	return out
}

// SyncSource is a named upstream feed. Sources are defined at process
// start and never change afterwards.
type SyncSource struct {
	// ID is the unique source name.
	ID string

	// Kind is the canonical entity this feed produces.
	Kind EntityKind

	// URL is the fetch endpoint. One GET per round.
	URL string

	// Envelope is the key of the record array in the response object.
	Envelope string

	// Fields overrides the built-in precedence lists per canonical field.
	Fields FieldRules

	// ResourceURL is a template with an {id} placeholder used to derive
	// the record's resource URL.
	ResourceURL string

	// MinInterval is the minimum time between synchronisations.
	MinInterval time.Duration
}

// EnvelopeKey returns the configured envelope key or the OData default.
func (s *SyncSource) EnvelopeKey() string {
	if s.Envelope == "" {
		return DefaultEnvelope
	}
	return s.Envelope
}

// Interval returns MinInterval, or the default when unset.
func (s *SyncSource) Interval() time.Duration {
	if s.MinInterval <= 0 {
		return DefaultMinInterval
	}
	return s.MinInterval
}

// DeriveURL expands the ResourceURL template for an external id.
// Returns nil when there is no template or no id.
func (s *SyncSource) DeriveURL(externalID string) *string {
	if s.ResourceURL == "" || externalID == "" {
		return nil
	}
	u := strings.ReplaceAll(s.ResourceURL, "{id}", externalID)
	return &u
}

// Validate checks the source is usable.
func (s *SyncSource) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: source id is required", ErrInvalidInput)
	}
	if !s.Kind.Valid() {
		return fmt.Errorf("source %s: %w: %q", s.ID, ErrUnsupportedKind, s.Kind)
	}
	if s.URL == "" {
		return fmt.Errorf("%w: source %s: url is required", ErrInvalidInput, s.ID)
	}
	return nil
}

// GateInterval returns the smallest interval among sources. A round covers
// every source, so the most eager source decides when the next one is due.
func GateInterval(sources []SyncSource) time.Duration {
	if len(sources) == 0 {
		return DefaultMinInterval
	}
	shortest := sources[0].Interval()
	for _, s := range sources[1:] {
		if iv := s.Interval(); iv < shortest {
			shortest = iv
		}
	}
	return shortest
}

// DefaultSources returns the built-in upstream feeds of the Folketing open data API.
func DefaultSources() []SyncSource {
	return []SyncSource{
		{
			ID:          "representatives",
			Kind:        KindRepresentative,
			URL:         "https://oda.ft.dk/api/Akt%C3%B8r?$filter=typeid%20eq%205&$inlinecount=allpages",
			Envelope:    DefaultEnvelope,
			ResourceURL: "https://www.ft.dk/-/media/cv/foto/{id}/portraet.jpg",
			MinInterval: DefaultMinInterval,
		},
		{
			ID:          "cases",
			Kind:        KindCase,
			URL:         "https://oda.ft.dk/api/Sag?$orderby=opdateringsdato%20desc",
			Envelope:    DefaultEnvelope,
			ResourceURL: "https://www.ft.dk/samling/sag/{id}",
			MinInterval: DefaultMinInterval,
		},
	}
}
