package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
)

// entityStore implements driven.EntityStore over the representatives
// and cases tables.
type entityStore struct {
	store *Store
}

var _ driven.EntityStore = (*entityStore)(nil)

// tableFor maps an entity kind to its table.
func tableFor(kind domain.EntityKind) (string, error) {
	switch kind {
	case domain.KindRepresentative:
		return "representatives", nil
	case domain.KindCase:
		return "cases", nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}
}

const representativeColumns = `external_id, name, first_name, last_name, party, party_short,
	constituency, role, email, biography, birth_date, start_date, end_date,
	upstream_updated, image_url, active, created_at, updated_at`

const caseColumns = `external_id, title, short_title, number, status, case_type, category,
	period, resume, conclusion, proposed_date, decision_date, upstream_updated,
	closed, budget_case, parent_id, url, active, created_at, updated_at`

// Upsert creates or overwrites the entity keyed by external id.
// created_at is preserved on conflict; updated_at is strictly increasing.
func (s *entityStore) Upsert(ctx context.Context, rec domain.Record) (*domain.Entity, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", domain.ErrInvalidInput)
	}
	if rec.Key() == "" {
		return nil, domain.ErrMissingExternalID
	}
	table, err := tableFor(rec.Kind())
	if err != nil {
		return nil, err
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning upsert: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := s.store.now().UTC()

	var prevUpdated string
	err = tx.QueryRowContext(ctx, "SELECT updated_at FROM "+table+" WHERE external_id = ?", rec.Key()).Scan(&prevUpdated)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("reading %s %s: %w", rec.Kind(), rec.Key(), err)
	default:
		if prev := parseTime(prevUpdated); !now.After(prev) {
			now = prev.Add(time.Nanosecond)
		}
	}

	switch r := rec.(type) {
	case *domain.Representative:
		err = upsertRepresentative(ctx, tx, r, now)
	case *domain.Case:
		err = upsertCase(ctx, tx, r, now)
	default:
		err = fmt.Errorf("%w: %T", domain.ErrUnsupportedKind, rec)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrConstraint, rec.Kind(), rec.Key(), err)
		}
		return nil, fmt.Errorf("upserting %s %s: %w", rec.Kind(), rec.Key(), err)
	}

	entity, err := getEntity(ctx, tx, rec.Kind(), rec.Key())
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing upsert: %w", err)
	}
	return entity, nil
}

func upsertRepresentative(ctx context.Context, tx *sql.Tx, r *domain.Representative, now time.Time) error {
	ts := formatTime(now)
	_, err := tx.ExecContext(ctx, `
		INSERT INTO representatives (`+representativeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			name = excluded.name,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			party = excluded.party,
			party_short = excluded.party_short,
			constituency = excluded.constituency,
			role = excluded.role,
			email = excluded.email,
			biography = excluded.biography,
			birth_date = excluded.birth_date,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			upstream_updated = excluded.upstream_updated,
			image_url = excluded.image_url,
			active = 1,
			updated_at = excluded.updated_at
	`, r.ExternalID, nullString(r.Name), nullString(r.FirstName), nullString(r.LastName),
		nullString(r.Party), nullString(r.PartyShort), nullString(r.Constituency),
		nullString(r.Role), nullString(r.Email), nullString(r.Biography),
		nullString(r.BirthDate), nullString(r.StartDate), nullString(r.EndDate),
		nullString(r.UpstreamUpdated), nullString(r.ImageURL), ts, ts)
	return err
}

func upsertCase(ctx context.Context, tx *sql.Tx, c *domain.Case, now time.Time) error {
	ts := formatTime(now)
	_, err := tx.ExecContext(ctx, `
		INSERT INTO cases (`+caseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(external_id) DO UPDATE SET
			title = excluded.title,
			short_title = excluded.short_title,
			number = excluded.number,
			status = excluded.status,
			case_type = excluded.case_type,
			category = excluded.category,
			period = excluded.period,
			resume = excluded.resume,
			conclusion = excluded.conclusion,
			proposed_date = excluded.proposed_date,
			decision_date = excluded.decision_date,
			upstream_updated = excluded.upstream_updated,
			closed = excluded.closed,
			budget_case = excluded.budget_case,
			parent_id = excluded.parent_id,
			url = excluded.url,
			active = 1,
			updated_at = excluded.updated_at
	`, c.ExternalID, nullString(c.Title), nullString(c.ShortTitle), nullString(c.Number),
		nullString(c.Status), nullString(c.CaseType), nullString(c.Category),
		nullString(c.Period), nullString(c.Resume), nullString(c.Conclusion),
		nullString(c.ProposedDate), nullString(c.DecisionDate), nullString(c.UpstreamUpdated),
		nullBool(c.Closed), nullBool(c.BudgetCase), nullString(c.ParentID), nullString(c.URL), ts, ts)
	return err
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func getEntity(ctx context.Context, q queryer, kind domain.EntityKind, externalID string) (*domain.Entity, error) {
	var row *sql.Row
	switch kind {
	case domain.KindRepresentative:
		row = q.QueryRowContext(ctx, "SELECT "+representativeColumns+" FROM representatives WHERE external_id = ?", externalID)
	case domain.KindCase:
		row = q.QueryRowContext(ctx, "SELECT "+caseColumns+" FROM cases WHERE external_id = ?", externalID)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedKind, kind)
	}

	entity, err := scanEntity(kind, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", kind, err)
	}
	return entity, nil
}

func scanEntity(kind domain.EntityKind, row rowScanner) (*domain.Entity, error) {
	if kind == domain.KindRepresentative {
		return scanRepresentative(row)
	}
	return scanCase(row)
}

func scanRepresentative(row rowScanner) (*domain.Entity, error) {
	var r domain.Representative
	var name, firstName, lastName, party, partyShort, constituency, role, email,
		biography, birthDate, startDate, endDate, upstreamUpdated, imageURL sql.NullString
	var active int
	var createdAt, updatedAt string

	if err := row.Scan(&r.ExternalID, &name, &firstName, &lastName, &party, &partyShort,
		&constituency, &role, &email, &biography, &birthDate, &startDate, &endDate,
		&upstreamUpdated, &imageURL, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	r.Name = stringPtr(name)
	r.FirstName = stringPtr(firstName)
	r.LastName = stringPtr(lastName)
	r.Party = stringPtr(party)
	r.PartyShort = stringPtr(partyShort)
	r.Constituency = stringPtr(constituency)
	r.Role = stringPtr(role)
	r.Email = stringPtr(email)
	r.Biography = stringPtr(biography)
	r.BirthDate = stringPtr(birthDate)
	r.StartDate = stringPtr(startDate)
	r.EndDate = stringPtr(endDate)
	r.UpstreamUpdated = stringPtr(upstreamUpdated)
	r.ImageURL = stringPtr(imageURL)

	return &domain.Entity{
		Record:    &r,
		CreatedAt: parseTime(createdAt),
		UpdatedAt: parseTime(updatedAt),
		Active:    active == 1,
	}, nil
}

func scanCase(row rowScanner) (*domain.Entity, error) {
	var c domain.Case
	var title, shortTitle, number, status, caseType, category, period, resume,
		conclusion, proposedDate, decisionDate, upstreamUpdated, parentID, url sql.NullString
	var closed, budgetCase sql.NullInt64
	var active int
	var createdAt, updatedAt string

	if err := row.Scan(&c.ExternalID, &title, &shortTitle, &number, &status, &caseType,
		&category, &period, &resume, &conclusion, &proposedDate, &decisionDate,
		&upstreamUpdated, &closed, &budgetCase, &parentID, &url, &active,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	c.Title = stringPtr(title)
	c.ShortTitle = stringPtr(shortTitle)
	c.Number = stringPtr(number)
	c.Status = stringPtr(status)
	c.CaseType = stringPtr(caseType)
	c.Category = stringPtr(category)
	c.Period = stringPtr(period)
	c.Resume = stringPtr(resume)
	c.Conclusion = stringPtr(conclusion)
	c.ProposedDate = stringPtr(proposedDate)
	c.DecisionDate = stringPtr(decisionDate)
	c.UpstreamUpdated = stringPtr(upstreamUpdated)
	c.Closed = boolPtr(closed)
	c.BudgetCase = boolPtr(budgetCase)
	c.ParentID = stringPtr(parentID)
	c.URL = stringPtr(url)

	return &domain.Entity{
		Record:    &c,
		CreatedAt: parseTime(createdAt),
		UpdatedAt: parseTime(updatedAt),
		Active:    active == 1,
	}, nil
}

// Get retrieves an entity by external id.
func (s *entityStore) Get(ctx context.Context, kind domain.EntityKind, externalID string) (*domain.Entity, error) {
	return getEntity(ctx, s.store.db, kind, externalID)
}

// List returns entities of a kind ordered by external id.
func (s *entityStore) List(ctx context.Context, kind domain.EntityKind, opts domain.ListOptions) ([]domain.Entity, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	columns := caseColumns
	if kind == domain.KindRepresentative {
		columns = representativeColumns
	}

	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+columns+" FROM "+table+" ORDER BY external_id LIMIT ? OFFSET ?",
		opts.PageSize(), max(opts.Offset, 0))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	entities := []domain.Entity{}
	for rows.Next() {
		entity, err := scanEntity(kind, rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", kind, err)
		}
		entities = append(entities, *entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", table, err)
	}
	return entities, nil
}

// Count returns the number of entities of a kind.
func (s *entityStore) Count(ctx context.Context, kind domain.EntityKind) (int, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}
