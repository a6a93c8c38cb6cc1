package cases

import (
	"sync"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
	"github.com/custodia-labs/tingsync/internal/normalisers/fields"
)

// Canonical field names. These are the keys of [source.fields] overrides.
const (
	FieldID              = "id"
	FieldTitle           = "title"
	FieldShortTitle      = "shortTitle"
	FieldNumber          = "number"
	FieldStatus          = "status"
	FieldCaseType        = "caseType"
	FieldCategory        = "category"
	FieldPeriod          = "period"
	FieldResume          = "resume"
	FieldConclusion      = "conclusion"
	FieldProposedDate    = "proposedDate"
	FieldDecisionDate    = "decisionDate"
	FieldUpstreamUpdated = "upstreamUpdated"
	FieldClosed          = "closed"
	FieldBudgetCase      = "budgetCase"
	FieldParentID        = "parentId"
)

// DefaultRules is the built-in precedence table.
func DefaultRules() domain.FieldRules {
	return domain.FieldRules{
		FieldID:              {"id", "Id", "sagid"},
		FieldTitle:           {"titel", "title"},
		FieldShortTitle:      {"titelkort", "kortTitel"},
		FieldNumber:          {"nummer", "sagsnummer"},
		FieldStatus:          {"status.navn", "status_navn", "status"},
		FieldCaseType:        {"type.navn", "type_navn", "sagstype"},
		FieldCategory:        {"kategori.navn", "kategori_navn", "kategori"},
		FieldPeriod:          {"periode.kode", "periode_kode", "periodeid"},
		FieldResume:          {"resume"},
		FieldConclusion:      {"afstemningskonklusion", "konklusion"},
		FieldProposedDate:    {"fremsat.dato", "fremsatdato", "dato"},
		FieldDecisionDate:    {"afgørelsesdato", "afgoerelsesdato"},
		FieldUpstreamUpdated: {"opdateringsdato"},
		FieldClosed:          {"status.afsluttet", "afsluttet"},
		FieldBudgetCase:      {"statsbudgetsag"},
		FieldParentID:        {"fremsatundersag.id", "fremsatundersagid", "deltundersagid"},
	}
}

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser maps upstream case records to cases.
// Merged rules are cached per source ID; sources never change after start.
type Normaliser struct {
	mu    sync.RWMutex
	rules map[string]domain.FieldRules
}

// New creates a case normaliser.
func New() *Normaliser {
	return &Normaliser{rules: make(map[string]domain.FieldRules)}
}

// Kind returns the entity kind this normaliser produces.
func (n *Normaliser) Kind() domain.EntityKind {
	return domain.KindCase
}

// Normalise converts a raw case record. It never fails.
func (n *Normaliser) Normalise(source domain.SyncSource, raw domain.RawRecord) domain.Record {
	rules := n.rulesFor(source)
	id := fields.ID(raw, rules.Paths(FieldID))

	return &domain.Case{
		ExternalID:      id,
		Title:           fields.String(raw, rules.Paths(FieldTitle)),
		ShortTitle:      fields.String(raw, rules.Paths(FieldShortTitle)),
		Number:          fields.String(raw, rules.Paths(FieldNumber)),
		Status:          fields.String(raw, rules.Paths(FieldStatus)),
		CaseType:        fields.String(raw, rules.Paths(FieldCaseType)),
		Category:        fields.String(raw, rules.Paths(FieldCategory)),
		Period:          fields.String(raw, rules.Paths(FieldPeriod)),
		Resume:          fields.String(raw, rules.Paths(FieldResume)),
		Conclusion:      fields.String(raw, rules.Paths(FieldConclusion)),
		ProposedDate:    fields.Date(raw, rules.Paths(FieldProposedDate)),
		DecisionDate:    fields.Date(raw, rules.Paths(FieldDecisionDate)),
		UpstreamUpdated: fields.Date(raw, rules.Paths(FieldUpstreamUpdated)),
		Closed:          fields.Bool(raw, rules.Paths(FieldClosed)),
		BudgetCase:      fields.Bool(raw, rules.Paths(FieldBudgetCase)),
		ParentID:        fields.String(raw, rules.Paths(FieldParentID)),
		URL:             source.DeriveURL(id),
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
