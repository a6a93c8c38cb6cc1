package domain

import "time"

// Record is a normalised canonical record. It is implemented by
// *Representative and *Case.
type Record interface {
	// Kind identifies the record's entity type.
	Kind() EntityKind

	// Key returns the stable external identifier.
	Key() string
}

// Representative is a member of parliament in canonical form.
// Dates are calendar dates formatted YYYY-MM-DD.
type Representative struct {
	ExternalID      string  `json:"externalId"`
	Name            *string `json:"name"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	Party           *string `json:"party"`
	PartyShort      *string `json:"partyShort"`
	Constituency    *string `json:"constituency"`
	Role            *string `json:"role"`
	Email           *string `json:"email"`
	Biography       *string `json:"biography"`
	BirthDate       *string `json:"birthDate"`
	StartDate       *string `json:"startDate"`
	EndDate         *string `json:"endDate"`
	UpstreamUpdated *string `json:"upstreamUpdated"`
	ImageURL        *string `json:"imageUrl"`
}

// Kind implements Record.
func (r *Representative) Kind() EntityKind { return KindRepresentative }

// Key implements Record.
func (r *Representative) Key() string { return r.ExternalID }

// Case is a parliamentary case in canonical form.
type Case struct {
	ExternalID      string  `json:"externalId"`
	Title           *string `json:"title"`
	ShortTitle      *string `json:"shortTitle"`
	Number          *string `json:"number"`
	Status          *string `json:"status"`
	CaseType        *string `json:"caseType"`
	Category        *string `json:"category"`
	Period          *string `json:"period"`
	Resume          *string `json:"resume"`
	Conclusion      *string `json:"conclusion"`
	ProposedDate    *string `json:"proposedDate"`
	DecisionDate    *string `json:"decisionDate"`
	UpstreamUpdated *string `json:"upstreamUpdated"`
	Closed          *bool   `json:"closed"`
	BudgetCase      *bool   `json:"budgetCase"`
	ParentID        *string `json:"parentId"`
	URL             *string `json:"url"`
}

// Kind implements Record.
func (c *Case) Kind() EntityKind { return KindCase }

// Key implements Record.
func (c *Case) Key() string { return c.ExternalID }

// Entity is a persisted record. Identity is (Kind, Key), unique.
// Entities are created on the first successful upsert, overwritten on
// later ones and never deleted by the sync engine.
type Entity struct {
	Record    Record    `json:"record"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Active    bool      `json:"active"`
}

// Inserted reports whether the last write created the entity.
// Stores keep UpdatedAt strictly increasing across writes, bumping it past
// the previous value when the clock has not advanced, so any overwrite
// reads as an update.
func (e *Entity) Inserted() bool {
	return e.CreatedAt.Equal(e.UpdatedAt)
}

// ListOptions bounds entity listings.
type ListOptions struct {
	Limit  int
	Offset int
}

// DefaultListLimit is used when ListOptions.Limit is not positive.
const DefaultListLimit = 100

// CloneRecord returns a shallow copy of r. Field pointers are shared;
// records are never mutated after normalisation.
func CloneRecord(r Record) Record {
	switch v := r.(type) {
	case *Representative:
		c := *v
		return &c
	case *Case:
		c := *v
		return &c
	default:
		return r
	}
}

// PageSize returns the effective page size.
func (o ListOptions) PageSize() int {
	if o.Limit <= 0 {
		return DefaultListLimit
	}
	return o.Limit
}
