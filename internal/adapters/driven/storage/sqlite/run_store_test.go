package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tingsync/internal/core/domain"
)

func testRun(source string, minute int) *domain.SyncRunResult {
	start := time.Date(2024, 1, 1, 0, minute, 0, 0, time.UTC)
	return &domain.SyncRunResult{
		RoundID:      fmt.Sprintf("round-%d", minute),
		Source:       source,
		Outcome:      domain.OutcomeSuccess,
		TotalFetched: 10,
		Inserted:     7,
		Updated:      2,
		Message:      "fetched 10",
		StartedAt:    start,
		EndedAt:      start.Add(1500 * time.Millisecond),
	}
}

func TestRunStore_RecordAndList(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	first := testRun("cases", 1)
	first.RecordErrors = []domain.RecordError{
		{Index: 3, ExternalID: "77", Err: errors.New("constraint: email")},
		{Index: 5, Err: domain.ErrMissingExternalID},
	}
	require.NoError(t, runs.RecordRun(ctx, first))
	require.NoError(t, runs.RecordRun(ctx, testRun("cases", 2)))

	got, err := runs.ListRuns(ctx, "cases", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "round-2", got[0].RoundID)

	older := got[1]
	assert.Equal(t, "round-1", older.RoundID)
	assert.Equal(t, domain.OutcomeSuccess, older.Outcome)
	assert.Equal(t, 10, older.TotalFetched)
	assert.Equal(t, 7, older.Inserted)
	assert.Equal(t, 2, older.Updated)
	assert.Equal(t, "fetched 10", older.Message)
	assert.Equal(t, first.StartedAt, older.StartedAt)
	assert.Equal(t, first.EndedAt, older.EndedAt)
	require.Len(t, older.RecordErrors, 2)
	assert.Equal(t, 3, older.RecordErrors[0].Index)
	assert.Equal(t, "77", older.RecordErrors[0].ExternalID)
	assert.EqualError(t, older.RecordErrors[0].Err, "constraint: email")
	assert.EqualError(t, older.RecordErrors[1].Err, domain.ErrMissingExternalID.Error())

	limited, err := runs.ListRuns(ctx, "cases", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestRunStore_RecordNil(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	assert.ErrorIs(t, runs.RecordRun(context.Background(), nil), domain.ErrInvalidInput)
}

func TestRunStore_ListLatestPerSource(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	rejected := testRun("representatives", 3)
	rejected.Outcome = domain.OutcomeRejected
	rejected.Message = "transport: representatives: GET x: status 503"

	require.NoError(t, runs.RecordRun(ctx, testRun("cases", 1)))
	require.NoError(t, runs.RecordRun(ctx, testRun("cases", 5)))
	require.NoError(t, runs.RecordRun(ctx, rejected))

	latest, err := runs.ListRuns(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "round-5", latest[0].RoundID)
	assert.Equal(t, "round-3", latest[1].RoundID)
	assert.Equal(t, domain.OutcomeRejected, latest[1].Outcome)
	assert.Empty(t, latest[1].RecordErrors)
}

func TestRunStore_Prune(t *testing.T) {
	runs := setupTestStore(t).RunStore()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, runs.RecordRun(ctx, testRun("cases", i)))
	}
	require.NoError(t, runs.RecordRun(ctx, testRun("representatives", 0)))

	require.NoError(t, runs.PruneRuns(ctx, 3))

	got, err := runs.ListRuns(ctx, "cases", 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "round-9", got[0].RoundID)
	assert.Equal(t, "round-7", got[2].RoundID)

	reps, err := runs.ListRuns(ctx, "representatives", 0)
	require.NoError(t, err)
	assert.Len(t, reps, 1)
}
