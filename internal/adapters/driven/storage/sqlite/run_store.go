package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/tingsync/internal/core/domain"
	"github.com/custodia-labs/tingsync/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// storedRecordError is the persisted form of a domain.RecordError.
type storedRecordError struct {
	Index      int    `json:"index"`
	ExternalID string `json:"externalId,omitempty"`
	Error      string `json:"error"`
}

const runColumns = `round_id, source, outcome, total_fetched, inserted, updated,
	record_errors, message, started_at, ended_at`

// RecordRun logs one source's run result.
func (s *runStore) RecordRun(ctx context.Context, result *domain.SyncRunResult) error {
	if result == nil {
		return domain.ErrInvalidInput
	}

	var recordErrors any
	if len(result.RecordErrors) > 0 {
		stored := make([]storedRecordError, len(result.RecordErrors))
		for i, e := range result.RecordErrors {
			stored[i] = storedRecordError{Index: e.Index, ExternalID: e.ExternalID}
			if e.Err != nil {
				stored[i].Error = e.Err.Error()
			}
		}
		data, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("marshalling record errors: %w", err)
		}
		recordErrors = string(data)
	}

	var message any
	if result.Message != "" {
		message = result.Message
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, result.RoundID, result.Source, string(result.Outcome),
		result.TotalFetched, result.Inserted, result.Updated,
		recordErrors, message,
		formatTime(result.StartedAt), formatTime(result.EndedAt))
	if err != nil {
		return fmt.Errorf("recording sync run: %w", err)
	}
	return nil
}

// ListRuns returns recent runs, most recent first.
// An empty source lists the latest run of every source.
func (s *runStore) ListRuns(ctx context.Context, source string, limit int) ([]domain.SyncRunResult, error) {
	var query string
	var args []any
	if source == "" {
		query = `
			SELECT ` + runColumns + ` FROM (
				SELECT *, ROW_NUMBER() OVER (PARTITION BY source ORDER BY started_at DESC, id DESC) AS rn
				FROM sync_runs
			) WHERE rn = 1
			ORDER BY started_at DESC, id DESC`
	} else {
		query = `SELECT ` + runColumns + ` FROM sync_runs WHERE source = ? ORDER BY started_at DESC, id DESC`
		args = append(args, source)
	}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sync runs: %w", err)
	}
	defer rows.Close()

	var results []domain.SyncRunResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		result, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sync runs: %w", err)
	}
	return results, nil
}

// PruneRuns removes old runs beyond the retention limit.
// Keeps the most recent 'keep' runs per source.
func (s *runStore) PruneRuns(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM sync_runs
		WHERE id NOT IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY source ORDER BY started_at DESC, id DESC) AS rn
				FROM sync_runs
			) WHERE rn <= ?
		)
	`, max(keep, 0))
	if err != nil {
		return fmt.Errorf("pruning sync runs: %w", err)
	}
	return nil
}

func scanRun(rows *sql.Rows) (*domain.SyncRunResult, error) {
	var result domain.SyncRunResult
	var outcome, startedAt, endedAt string
	var recordErrors, message sql.NullString

	if err := rows.Scan(&result.RoundID, &result.Source, &outcome,
		&result.TotalFetched, &result.Inserted, &result.Updated,
		&recordErrors, &message, &startedAt, &endedAt); err != nil {
		return nil, fmt.Errorf("scanning sync run: %w", err)
	}

	result.Outcome = domain.Outcome(outcome)
	result.Message = message.String
	result.StartedAt = parseTime(startedAt)
	result.EndedAt = parseTime(endedAt)

	if recordErrors.Valid && recordErrors.String != "" {
		var stored []storedRecordError
		if err := json.Unmarshal([]byte(recordErrors.String), &stored); err != nil {
			return nil, fmt.Errorf("unmarshalling record errors: %w", err)
		}
		result.RecordErrors = make([]domain.RecordError, len(stored))
		for i, e := range stored {
			result.RecordErrors[i] = domain.RecordError{
				Index:      e.Index,
				ExternalID: e.ExternalID,
				Err:        errors.New(e.Error),
			}
		}
	}

	return &result, nil
}
